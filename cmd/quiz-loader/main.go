package main

import (
	"context"
	"flag"
	"os"

	"section-quiz/internal/config"
	"section-quiz/internal/loader"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		config.Exitf("error: %v", err)
	}
	cfg, err := config.ParseLoader(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("error: %v", err)
	}

	_, err = loader.Run(context.Background(), loader.Config{
		QuestionsFile: cfg.QuestionsFile,
		DBPath:        cfg.DBPath,
		DBDriver:      cfg.DBDriver,
	}, os.Stdout)
	if err != nil {
		config.Exitf("error: %v", err)
	}
}
