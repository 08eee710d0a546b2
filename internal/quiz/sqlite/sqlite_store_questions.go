package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"section-quiz/internal/quiz"
)

// ReplaceQuestions drops and recreates the questions table and inserts the
// given questions in order. Everything runs in one transaction, so a failed
// load leaves the previous contents in place.
func (s *SQLiteStore) ReplaceQuestions(ctx context.Context, questions []quiz.Question) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if err := resetSchema(ctx, tx); err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(
		ctx,
		`INSERT INTO questions (section, passage, question, choices, answer)
		 VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	inserted := 0
	for _, question := range questions {
		choicesJSON, err := quiz.EncodeChoices(question.Choices)
		if err != nil {
			return 0, err
		}

		var passage sql.NullString
		if question.Passage != nil {
			passage = sql.NullString{String: *question.Passage, Valid: true}
		}

		if _, err := stmt.ExecContext(
			ctx,
			question.Section,
			passage,
			question.Question,
			choicesJSON,
			question.Answer,
		); err != nil {
			return 0, fmt.Errorf("insert question %d of section %q: %w", inserted, question.Section, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

func (s *SQLiteStore) SectionCounts(ctx context.Context) ([]quiz.SectionCount, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT section, COUNT(id) AS question_count
		 FROM questions
		 GROUP BY section
		 ORDER BY section ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make([]quiz.SectionCount, 0)
	for rows.Next() {
		var row quiz.SectionCount
		if err := rows.Scan(&row.Section, &row.Count); err != nil {
			return nil, err
		}
		counts = append(counts, row)
	}
	return counts, rows.Err()
}

func (s *SQLiteStore) QuestionsBySection(ctx context.Context, section string) ([]quiz.Question, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, section, passage, question, choices, answer
		 FROM questions
		 WHERE section = ?
		 ORDER BY id ASC`,
		section,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := make([]quiz.Question, 0)
	for rows.Next() {
		var (
			question    quiz.Question
			passage     sql.NullString
			choicesJSON string
		)
		if err := rows.Scan(
			&question.ID,
			&question.Section,
			&passage,
			&question.Question,
			&choicesJSON,
			&question.Answer,
		); err != nil {
			return nil, err
		}

		if passage.Valid {
			text := passage.String
			question.Passage = &text
		}

		question.Choices, err = quiz.DecodeChoices(choicesJSON)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", question.ID, err)
		}

		questions = append(questions, question)
	}
	return questions, rows.Err()
}
