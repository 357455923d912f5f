package file

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sunnet-n/quiz-game/internal/domain"
)

// BankFile is the YAML layout of a questions file:
//
//	banks:
//	  default:
//	    - id: 1
//	      question: What is 2 + 2?
//	      options: ["3", "4", "5", "6"]
//	      correctAnswer: 1
type BankFile struct {
	Banks map[string][]domain.Question `yaml:"banks"`
}

// BankLoader reads question banks from a YAML file on every call.
type BankLoader struct {
	path string
}

func NewBankLoader(path string) *BankLoader {
	return &BankLoader{path: path}
}

func (l *BankLoader) LoadBank(_ context.Context, bankID string) ([]domain.Question, error) {
	f, err := ReadBankFile(l.path)
	if err != nil {
		return nil, err
	}
	qs, ok := f.Banks[bankID]
	if !ok {
		return nil, fmt.Errorf("question bank %q in %s: %w", bankID, l.path, domain.ErrNotFound)
	}
	return qs, nil
}

// ReadBankFile parses a questions file.
func ReadBankFile(path string) (BankFile, error) {
	var f BankFile
	data, err := os.ReadFile(path)
	if err != nil {
		return f, fmt.Errorf("read questions file: %w", err)
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("parse questions file %s: %w", path, err)
	}
	return f, nil
}
