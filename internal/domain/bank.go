package domain

import "fmt"

// QuestionBank is an immutable ordered sequence of questions shared by all rooms
// served by one game service.
type QuestionBank struct {
	questions []Question
}

// NewQuestionBank validates and copies questions.
func NewQuestionBank(questions []Question) (QuestionBank, error) {
	if len(questions) == 0 {
		return QuestionBank{}, fmt.Errorf("question bank is empty")
	}
	qs := make([]Question, len(questions))
	for i, q := range questions {
		if len(q.Options) < 2 {
			return QuestionBank{}, fmt.Errorf("question %d: need at least 2 options, got %d", i, len(q.Options))
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return QuestionBank{}, fmt.Errorf("question %d: correct answer %d out of range", i, q.CorrectAnswer)
		}
		options := make([]string, len(q.Options))
		copy(options, q.Options)
		q.Options = options
		qs[i] = q
	}
	return QuestionBank{questions: qs}, nil
}

// Len returns the number of questions.
func (b QuestionBank) Len() int { return len(b.questions) }

// At returns the question at index i.
func (b QuestionBank) At(i int) (Question, bool) {
	if i < 0 || i >= len(b.questions) {
		return Question{}, false
	}
	return b.questions[i], true
}

// Questions returns a copy of the bank contents.
func (b QuestionBank) Questions() []Question {
	out := make([]Question, len(b.questions))
	copy(out, b.questions)
	return out
}
