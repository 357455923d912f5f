package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/sunnet-n/quiz-game/internal/domain"
)

// OpenBun opens a bun handle over the pgdriver connector.
func OpenBun(dsn string) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

// SaveBank upserts a question bank. The questions are validated first so a
// broken bank never reaches the table.
func SaveBank(ctx context.Context, db bun.IDB, bankID string, questions []domain.Question) error {
	if _, err := domain.NewQuestionBank(questions); err != nil {
		return err
	}
	data, err := json.Marshal(questions)
	if err != nil {
		return fmt.Errorf("marshal question bank: %w", err)
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO question_banks (id, data, updated_at) VALUES (?, ?::jsonb, now())
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
		bankID, string(data))
	if err != nil {
		return fmt.Errorf("save question bank %q: %w", bankID, err)
	}
	return nil
}
