package quiz

import (
	"context"
	"errors"
)

var (
	ErrSectionRequired = errors.New("section is required")
	ErrInvalidDocument = errors.New("invalid questions document")
)

// Reader is a short-lived handle on the question store. Callers must Close it.
type Reader interface {
	SectionCounts(ctx context.Context) ([]SectionCount, error)
	QuestionsBySection(ctx context.Context, section string) ([]Question, error)
	Close() error
}

// Opener acquires a Reader for the duration of one operation.
type Opener func(ctx context.Context) (Reader, error)

// Replacer discards every stored question and inserts the given ones.
type Replacer interface {
	ReplaceQuestions(ctx context.Context, questions []Question) (int, error)
}
