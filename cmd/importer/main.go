package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/gokatarajesh/trivia-api/internal/app"
	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/question"
	"github.com/gokatarajesh/trivia-api/internal/question/external"
)

func main() {
	var (
		amount     = flag.Int("amount", 20, fmt.Sprintf("Number of questions to request from Open Trivia DB (1-%d)", external.MaxAmount))
		difficulty = flag.String("difficulty", "", "Difficulty filter: easy, medium, hard (empty for any)")
	)
	flag.Parse()

	if *amount < 1 || *amount > external.MaxAmount {
		log.Fatalf("-amount must be between 1 and %d, got %d", external.MaxAmount, *amount)
	}

	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load("configs/.env")
	}

	cfg, err := config.Load(context.Background())
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := logging.New(cfg.Name+"-importer", cfg.Env, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := app.OpenStore(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open store")
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Error().Err(err).Msg("store shutdown error")
		}
	}()

	client := external.NewOpenTDBClient(cfg.OpenTDB.BaseURL, &http.Client{Timeout: cfg.OpenTDB.HTTPTimeout})
	report, err := question.NewImporter(store, client, logger).Import(ctx, *amount, *difficulty)
	if err != nil {
		logger.Error().Err(err).Msg("import failed")
		_ = closeStore()
		os.Exit(1)
	}
	logger.Info().
		Int("fetched", report.Fetched).
		Int("imported", report.Imported).
		Int("skipped", report.Skipped).
		Msg("import complete")
}
