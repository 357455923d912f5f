package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sunnet-n/quiz-game/internal/config"
	"github.com/sunnet-n/quiz-game/internal/infra/file"
	"github.com/sunnet-n/quiz-game/internal/infra/postgres"
)

// NewSeedCmd copies a question bank from a YAML file into Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	var (
		path   string
		bankID string
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Upsert a question bank from a YAML file into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.Postgres.URL == "" {
				return fmt.Errorf("postgres url not configured")
			}
			if path == "" {
				path = cfg.Quiz.QuestionsFile
			}
			if path == "" {
				return fmt.Errorf("no questions file: pass --file or set quiz.questionsFile")
			}
			if bankID == "" {
				bankID = cfg.BankID()
			}

			bf, err := file.ReadBankFile(path)
			if err != nil {
				return err
			}
			questions, ok := bf.Banks[bankID]
			if !ok {
				return fmt.Errorf("bank %q not found in %s", bankID, path)
			}

			db := postgres.OpenBun(cfg.Postgres.URL)
			defer db.Close()
			if err := postgres.SaveBank(cmd.Context(), db, bankID, questions); err != nil {
				return err
			}
			newLogger(cfg).Info("question bank seeded", "bank", bankID, "questions", len(questions))
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "file", "", "YAML file with a top-level banks map (default quiz.questionsFile)")
	cmd.Flags().StringVar(&bankID, "bank", "", "bank id to seed (default quiz.bank)")
	return cmd
}
