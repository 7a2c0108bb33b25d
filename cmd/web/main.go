package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "go.uber.org/automaxprocs"

	"github.com/contentpm/growth-pm-agent/internal/anthropic"
	"github.com/contentpm/growth-pm-agent/internal/config"
	"github.com/contentpm/growth-pm-agent/internal/httpserver"
	"github.com/contentpm/growth-pm-agent/internal/logger"
	"github.com/contentpm/growth-pm-agent/internal/metrics"
	"github.com/contentpm/growth-pm-agent/internal/strategy"
)

// main boots the app: .env → config → logger → deps → HTTP server.
func main() {
	// Load .env at the very start; absence is fine in production.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if err := logger.Init(cfg.LogLevel, cfg.LogFile); err != nil {
		log.Fatal(err)
	}

	// The store creates its file on first write; a deleted file between
	// runs just regenerates empty.
	store := metrics.NewStore(cfg.MetricsFile)

	client := anthropic.NewClient(cfg.AnthropicAPIKey, cfg.Model)
	agent := strategy.NewAgent(client, cfg.GenerateTimeout, cfg.LLMRequestsPerMinute)

	router, err := httpserver.NewRouter(cfg, agent, store)
	if err != nil {
		logger.Log.Fatal(err)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Log.Infof("listening on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("forced shutdown: %v", err)
	}
}
