package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// ResetSchema drops the questions table and recreates it empty.
func (s *SQLiteStore) ResetSchema(ctx context.Context) error {
	return resetSchema(ctx, s.db)
}

func resetSchema(ctx context.Context, db execer) error {
	statements := []string{
		`DROP TABLE IF EXISTS questions;`,
		`CREATE TABLE questions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			section TEXT NOT NULL,
			passage TEXT,
			question TEXT NOT NULL,
			-- JSON array of strings.
			choices TEXT NOT NULL,
			answer TEXT NOT NULL
		);`,
		`CREATE INDEX idx_questions_section ON questions(section);`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("reset schema: %w", err)
		}
	}
	return nil
}
