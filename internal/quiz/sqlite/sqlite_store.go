package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"section-quiz/internal/quiz"
)

const (
	// DriverCGO is github.com/mattn/go-sqlite3.
	DriverCGO = "sqlite3"
	// DriverPureGo is modernc.org/sqlite.
	DriverPureGo = "sqlite"

	// DefaultPath is used when Options.Path is blank.
	DefaultPath = "quiz.db"
)

type Options struct {
	Path     string
	Driver   string
	ReadOnly bool
}

type SQLiteStore struct {
	db *sql.DB
}

// Open opens a single-connection handle on the questions database. A
// read-only handle never creates the file.
func Open(ctx context.Context, opts Options) (*SQLiteStore, error) {
	driver, err := driverName(opts.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dataSourceName(opts))
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// NewOpener returns an opener that acquires a fresh read-only handle per call.
func NewOpener(opts Options) quiz.Opener {
	opts.ReadOnly = true
	return func(ctx context.Context) (quiz.Reader, error) {
		store, err := Open(ctx, opts)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func driverName(driver string) (string, error) {
	switch strings.TrimSpace(driver) {
	case "", DriverCGO:
		return DriverCGO, nil
	case DriverPureGo:
		return DriverPureGo, nil
	default:
		return "", fmt.Errorf("unsupported sqlite driver %q", driver)
	}
}

// ResolvePath returns the database file a handle on path would open.
func ResolvePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return DefaultPath
	}
	return path
}

func dataSourceName(opts Options) string {
	path := ResolvePath(opts.Path)
	if !opts.ReadOnly {
		return path
	}
	return "file:" + (&url.URL{Path: path}).EscapedPath() + "?mode=ro"
}
