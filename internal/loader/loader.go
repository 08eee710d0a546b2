// Package loader replaces the contents of the questions database with the
// questions found in a JSON or YAML document.
package loader

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/google/uuid"

	"section-quiz/internal/quiz"
	"section-quiz/internal/quiz/sqlite"
)

type Config struct {
	QuestionsFile string
	DBPath        string
	DBDriver      string
}

// Run loads cfg.QuestionsFile into cfg.DBPath and reports the inserted count.
// The document is fully parsed and validated before the database is opened,
// so a bad document never touches existing data.
func Run(ctx context.Context, cfg Config, out io.Writer) (int, error) {
	if out == nil {
		out = io.Discard
	}
	if strings.TrimSpace(cfg.QuestionsFile) == "" {
		return 0, fmt.Errorf("questions file is required")
	}

	dbPath := sqlite.ResolvePath(cfg.DBPath)
	runID := uuid.NewString()
	logger := log.New(log.Writer(), "[quiz-loader "+runID[:8]+"] ", log.LstdFlags)

	fmt.Fprintf(out, "Loading questions from %s...\n", cfg.QuestionsFile)
	doc, err := quiz.LoadDocument(cfg.QuestionsFile)
	if err != nil {
		return 0, err
	}
	questions, err := doc.Questions()
	if err != nil {
		return 0, err
	}
	logger.Printf("parsed %d sections, %d questions", len(doc.Sections), len(questions))

	store, err := sqlite.Open(ctx, sqlite.Options{
		Path:   dbPath,
		Driver: cfg.DBDriver,
	})
	if err != nil {
		return 0, err
	}
	defer store.Close()
	fmt.Fprintf(out, "Connected to database %s.\n", dbPath)

	inserted, err := replace(ctx, store, questions)
	if err != nil {
		return 0, err
	}
	logger.Printf("committed %d questions", inserted)

	fmt.Fprintln(out, strings.Repeat("-", 20))
	fmt.Fprintf(out, "Success! Inserted %d questions into %s.\n", inserted, dbPath)
	return inserted, nil
}

func replace(ctx context.Context, store quiz.Replacer, questions []quiz.Question) (int, error) {
	inserted, err := store.ReplaceQuestions(ctx, questions)
	if err != nil {
		return 0, fmt.Errorf("replace questions: %w", err)
	}
	return inserted, nil
}
