package config

import (
	"errors"
	"flag"
	"strings"
)

// Store selects the questions database.
type Store struct {
	DBPath   string `env:"QUIZ_DB_PATH" envDefault:"quiz.db"`
	DBDriver string `env:"QUIZ_DB_DRIVER" envDefault:"sqlite3"`
}

// Web configures the quiz web server.
type Web struct {
	Store
	HTTPAddr string `env:"QUIZ_HTTP_ADDR" envDefault:":5000"`
	SSL      bool   `env:"QUIZ_HTTP_SSL" envDefault:"false"`
}

// Loader configures the one-shot questions loader.
type Loader struct {
	Store
	QuestionsFile string `env:"QUIZ_QUESTIONS_FILE" envDefault:"questions.json"`
}

func (s *Store) bindFlags(fs *flag.FlagSet) {
	fs.StringVar(&s.DBPath, "db", s.DBPath, "SQLite database path")
	fs.StringVar(&s.DBDriver, "driver", s.DBDriver, "database/sql driver: sqlite3 (cgo) or sqlite (pure Go)")
}

func (s Store) validate() error {
	if strings.TrimSpace(s.DBPath) == "" {
		return errors.New("db path is required")
	}
	switch s.DBDriver {
	case "sqlite3", "sqlite":
		return nil
	default:
		return errors.New("driver must be sqlite3 or sqlite")
	}
}

// ParseWeb reads environment defaults and applies flag overrides.
func ParseWeb(fs *flag.FlagSet, args []string) (Web, error) {
	var cfg Web
	if err := ParseEnv(&cfg); err != nil {
		return Web{}, err
	}

	cfg.bindFlags(fs)
	fs.StringVar(&cfg.HTTPAddr, "addr", cfg.HTTPAddr, "HTTP listen address")
	fs.BoolVar(&cfg.SSL, "ssl", cfg.SSL, "redirect to HTTPS and send HSTS headers")
	if err := fs.Parse(args); err != nil {
		return Web{}, err
	}

	if err := cfg.validate(); err != nil {
		return Web{}, err
	}
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return Web{}, errors.New("addr is required")
	}
	return cfg, nil
}

// ParseLoader reads environment defaults and applies flag overrides.
func ParseLoader(fs *flag.FlagSet, args []string) (Loader, error) {
	var cfg Loader
	if err := ParseEnv(&cfg); err != nil {
		return Loader{}, err
	}

	cfg.bindFlags(fs)
	fs.StringVar(&cfg.QuestionsFile, "file", cfg.QuestionsFile, "questions document (.json, .yaml or .yml)")
	if err := fs.Parse(args); err != nil {
		return Loader{}, err
	}

	if err := cfg.validate(); err != nil {
		return Loader{}, err
	}
	if strings.TrimSpace(cfg.QuestionsFile) == "" {
		return Loader{}, errors.New("file is required")
	}
	return cfg, nil
}
