package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/plotkit-org/plotkit/server"
	"github.com/plotkit-org/plotkit/translator"
)

// ============================================================================
// PLOTKITD — HTTP daemon for the chart pipeline
// ============================================================================

func main() {
	cfg, err := server.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	store, err := server.NewStore(cfg.CacheSize)
	if err != nil {
		log.Fatalf("store init failed: %v", err)
	}

	ctx := context.Background()
	var tr translator.Translator
	if cfg.GeminiAPIKey != "" {
		gemini, err := translator.NewGemini(ctx, translator.Config{
			APIKey: cfg.GeminiAPIKey,
			Model:  cfg.GeminiModel,
		})
		if err != nil {
			log.Fatalf("gemini init failed: %v", err)
		}
		tr = gemini
		log.Printf("🧠 PlotKit: Gemini translator enabled (model=%s)", cfg.GeminiModel)
	} else {
		tr = translator.NewPlaceholder()
	}

	api := server.NewAPI(store, tr, cfg)
	srv := server.New(cfg.Port, server.NewMux(api))

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server error: %v", err)
		}
	case sig := <-stop:
		log.Printf("🛑 PlotKit: received %s, shutting down", sig)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Fatalf("shutdown failed: %v", err)
		}
	}
}
