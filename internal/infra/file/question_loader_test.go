package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sunnet-n/quiz-game/internal/domain"
)

const sampleFile = `
banks:
  geo:
    - id: 10
      question: What is the capital of Peru?
      options: ["Lima", "Cusco", "Arequipa", "Trujillo"]
      correctAnswer: 0
    - id: 11
      question: Which river is the longest?
      options: ["Nile", "Amazon"]
      correctAnswer: 0
`

func TestBankLoaderReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.yaml")
	if err := os.WriteFile(path, []byte(sampleFile), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	loader := NewBankLoader(path)

	qs, err := loader.LoadBank(context.Background(), "geo")
	if err != nil {
		t.Fatalf("load bank: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(qs))
	}
	if qs[0].ID != 10 || qs[0].Text != "What is the capital of Peru?" || qs[0].Options[0] != "Lima" {
		t.Fatalf("unexpected first question %+v", qs[0])
	}

	if _, err := loader.LoadBank(context.Background(), "history"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for unknown bank, got %v", err)
	}
}

func TestBankLoaderMissingFile(t *testing.T) {
	loader := NewBankLoader(filepath.Join(t.TempDir(), "nope.yaml"))
	if _, err := loader.LoadBank(context.Background(), "geo"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
