package app

import (
	"context"
	"fmt"

	"github.com/sunnet-n/quiz-game/internal/domain"
)

// BankLoader fetches question bank content from a backing store (file, database, ...).
type BankLoader interface {
	LoadBank(ctx context.Context, bankID string) ([]domain.Question, error)
}

// LoadBank loads bankID through loader and validates it.
func LoadBank(ctx context.Context, loader BankLoader, bankID string) (domain.QuestionBank, error) {
	qs, err := loader.LoadBank(ctx, bankID)
	if err != nil {
		return domain.QuestionBank{}, err
	}
	bank, err := domain.NewQuestionBank(qs)
	if err != nil {
		return domain.QuestionBank{}, fmt.Errorf("question bank %q: %w", bankID, err)
	}
	return bank, nil
}
