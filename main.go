package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/kayratasci4/BorsaAI/agents"
	"github.com/kayratasci4/BorsaAI/config"
	"github.com/kayratasci4/BorsaAI/internal/api"
	"github.com/kayratasci4/BorsaAI/internal/app"
	"github.com/kayratasci4/BorsaAI/marketdata"
	"github.com/kayratasci4/BorsaAI/observability"
	"github.com/kayratasci4/BorsaAI/services"
)

func main() {
	// Load .env file if present (ignore error if it doesn't exist)
	_ = godotenv.Load()

	production := os.Getenv("ENV") == "production"
	observability.InitLogger(production)
	observability.InitMetrics()

	cfg, err := config.Load()
	if err != nil {
		observability.Fatal("invalid configuration", "error", err)
	}

	gemini, err := services.NewGeminiService(cfg)
	if err != nil {
		observability.Fatal("failed to initialize Gemini service", "error", err)
	}

	sentiment := agents.NewSentimentAnalyst(gemini)
	technical := agents.NewTechnicalAnalyst(gemini, cfg.Market.AnalysisWindow)
	generator := marketdata.NewGenerator()

	application := app.New(cfg, generator, sentiment, technical)

	handler := api.NewHandler(application, cfg)
	router := api.NewRouter(handler, cfg)

	server := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second,
	}

	// Warm the default view so the first page load has data
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(),
			time.Duration(cfg.Gemini.TimeoutSeconds)*time.Second*2)
		defer cancel()
		application.FetchDefault(ctx)
	}()

	go func() {
		observability.Info("starting BorsaAI server",
			"port", cfg.HTTP.Port,
			"model", cfg.Gemini.Model)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			observability.Fatal("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	observability.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		observability.Fatal("server forced to shutdown", "error", err)
	}

	observability.Info("server stopped")
}
