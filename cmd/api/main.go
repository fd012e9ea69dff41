package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auraapi/config"
	"auraapi/controllers"
	"auraapi/dbhelper"
	"auraapi/logging"
	"auraapi/services"

	"github.com/getsentry/sentry-go"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Env,
			Release:          "auraapi@2.0.0",
			Debug:            false,
			TracesSampleRate: 1.0,
		})
		if err != nil {
			logger.Fatalf("sentry.Init: %s", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	var vision services.VisionModel
	var text services.TextModel
	switch cfg.LLMProvider {
	case config.ProviderOpenAI:
		client, err := services.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.VisionModel, cfg.OpenAI.TextModel, logger)
		if err != nil {
			logger.Fatalf("openai client: %v", err)
		}
		vision, text = client, client
	default:
		client, err := services.NewGeminiClient(context.Background(), cfg.Gemini.APIKey,
			services.LLMModelName(cfg.Gemini.VisionModel), services.LLMModelName(cfg.Gemini.TextModel), logger)
		if err != nil {
			logger.Fatalf("gemini client: %v", err)
		}
		vision, text = client, client
	}

	// store stays a nil interface when the database is missing so that
	// recommendations report 503 instead of failing on every query.
	var store services.WardrobeStore
	if cfg.WardrobeConfigured() {
		db, err := dbhelper.SetupDB(cfg.WardrobeDSN)
		if err != nil {
			logger.Warnw("Wardrobe database connection failed, /get-recommendation will not work", "error", err)
		} else {
			store = dbhelper.NewWardrobeRepository(db, cfg.WardrobeTable)
			logger.Infow("Wardrobe database connected", "table", cfg.WardrobeTable)
		}
	} else {
		logger.Warn("SUPABASE_DB_URL is not set, /get-recommendation will not work")
	}

	e := controllers.SetupServer(cfg, vision, text, store, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Infow("Starting Aura AI Backend", "address", cfg.Address, "llm_provider", cfg.LLMProvider, "llm_configured", cfg.LLMConfigured())
		if err := e.Start(cfg.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorw("Server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("Graceful shutdown failed", "error", err)
	}
	logger.Info("Aura AI Backend stopped")
}
