package memory

import (
	"context"
	"fmt"

	"github.com/sunnet-n/quiz-game/internal/domain"
)

// StaticBankLoader is a loader backed by an in-memory map (useful for tests/demos).
type StaticBankLoader struct {
	banks map[string][]domain.Question
}

func NewStaticBankLoader(banks map[string][]domain.Question) *StaticBankLoader {
	return &StaticBankLoader{banks: banks}
}

func (l *StaticBankLoader) LoadBank(_ context.Context, bankID string) ([]domain.Question, error) {
	if qs, ok := l.banks[bankID]; ok {
		return qs, nil
	}
	return nil, fmt.Errorf("question bank %q: %w", bankID, domain.ErrNotFound)
}

// SampleQuestions is the built-in bank used when no other source is configured.
func SampleQuestions() []domain.Question {
	return []domain.Question{
		{
			ID:            1,
			Text:          "What is the capital of France?",
			Options:       []string{"London", "Berlin", "Paris", "Madrid"},
			CorrectAnswer: 2,
		},
		{
			ID:            2,
			Text:          "Which planet is known as the Red Planet?",
			Options:       []string{"Venus", "Mars", "Jupiter", "Saturn"},
			CorrectAnswer: 1,
		},
		{
			ID:            3,
			Text:          "What is 7 × 8?",
			Options:       []string{"54", "56", "58", "64"},
			CorrectAnswer: 1,
		},
		{
			ID:            4,
			Text:          "Who painted the Mona Lisa?",
			Options:       []string{"Vincent van Gogh", "Pablo Picasso", "Leonardo da Vinci", "Michelangelo"},
			CorrectAnswer: 2,
		},
		{
			ID:            5,
			Text:          "What is the largest ocean on Earth?",
			Options:       []string{"Atlantic Ocean", "Indian Ocean", "Arctic Ocean", "Pacific Ocean"},
			CorrectAnswer: 3,
		},
	}
}
