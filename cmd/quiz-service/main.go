package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"section-quiz/internal/config"
	"section-quiz/internal/httpapi"
	"section-quiz/internal/quiz"
	"section-quiz/internal/quiz/sqlite"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		config.Exitf("error: %v", err)
	}
	cfg, err := config.ParseWeb(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("error: %v", err)
	}
	log.SetPrefix("[quiz-service] ")
	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	service := quiz.NewService(sqlite.NewOpener(sqlite.Options{
		Path:   cfg.DBPath,
		Driver: cfg.DBDriver,
	}))
	router, err := httpapi.NewRouter(service, httpapi.RouterOptions{SSL: cfg.SSL})
	if err != nil {
		log.Fatalf("build router: %v", err)
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("listening on %s (db %s, driver %s)", cfg.HTTPAddr, cfg.DBPath, cfg.DBDriver)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server failed: %v", err)
	}
}
