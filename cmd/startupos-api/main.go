package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	httpadapter "github.com/neweraservicez/startup-os/internal/adapters/http"
	"github.com/neweraservicez/startup-os/internal/adapters/llm"
	"github.com/neweraservicez/startup-os/internal/adapters/pdf"
	"github.com/neweraservicez/startup-os/internal/adapters/sessionexchange"
	firestorestore "github.com/neweraservicez/startup-os/internal/adapters/storage/firestore"
	memstore "github.com/neweraservicez/startup-os/internal/adapters/storage/memory"
	mongostore "github.com/neweraservicez/startup-os/internal/adapters/storage/mongo"
	"github.com/neweraservicez/startup-os/internal/app/auth"
	"github.com/neweraservicez/startup-os/internal/app/blueprint"
	"github.com/neweraservicez/startup-os/internal/app/conversation"
	"github.com/neweraservicez/startup-os/internal/app/export"
	"github.com/neweraservicez/startup-os/internal/app/generation"
	"github.com/neweraservicez/startup-os/internal/app/waitlist"
	"github.com/neweraservicez/startup-os/internal/config"
	"github.com/neweraservicez/startup-os/internal/domain"
	"github.com/neweraservicez/startup-os/internal/observability"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := observability.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := newStore(ctx, cfg)
	if err != nil {
		log.Error("error initializing store", "backend", cfg.StorageBackend, "error", err)
		os.Exit(1)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			log.Error("error closing store", "error", err)
		}
	}()

	llmClient, err := newLLM(ctx, cfg)
	if err != nil {
		log.Error("error initializing LLM client", "provider", cfg.LLMProvider, "error", err)
		os.Exit(1)
	}

	handler := httpadapter.NewServer(httpadapter.Deps{
		Auth:         auth.NewService(store, store, store, sessionexchange.NewClient(cfg.SessionExchangeURL)),
		Blueprints:   blueprint.NewService(store),
		Generation:   generation.NewService(llmClient),
		Conversation: conversation.NewService(llmClient, store),
		Export:       export.NewService(store, pdf.NewRenderer()),
		Waitlist:     waitlist.NewService(store),
		Store:        store,
		APIPrefix:    cfg.APIPrefix,
		CORSOrigins:  cfg.CORSOrigins,
		CookieSecure: cfg.CookieSecure,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      120 * time.Second, // generation calls are slow
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Info("Startup OS API listening", "addr", srv.Addr, "mode", cfg.Mode, "prefix", cfg.APIPrefix)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	stop()

	log.Info("shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}
}

func newStore(ctx context.Context, cfg *config.Config) (domain.Store, error) {
	log := observability.Logger()

	switch cfg.StorageBackend {
	case config.StorageMongo:
		log.Info("using MongoDB storage", "db", cfg.DBName)
		connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		return mongostore.NewStore(connectCtx, cfg.MongoURL, cfg.DBName)

	case config.StorageFirestore:
		log.Info("using Firestore storage", "project", cfg.GCPProjectID)
		return firestorestore.NewStore(ctx, cfg.GCPProjectID)

	case config.StorageMemory:
		log.Info("using in-memory storage")
		return memstore.NewStore(), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}

func newLLM(ctx context.Context, cfg *config.Config) (domain.LLMClient, error) {
	log := observability.Logger()

	switch cfg.LLMProvider {
	case config.LLMOpenAI:
		log.Info("using OpenAI-compatible LLM client", "model", cfg.LLMModel, "base_url", cfg.OpenAIBaseURL)
		return llm.NewOpenAIClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.LLMModel), nil

	case config.LLMGemini, config.LLMVertex:
		log.Info("using GenAI LLM client", "model", cfg.LLMModel, "vertex", cfg.LLMProvider == config.LLMVertex)
		return llm.NewGenAIClient(ctx, llm.GenAIConfig{
			APIKey:   cfg.GeminiAPIKey,
			Project:  cfg.GCPProjectID,
			Location: cfg.GCPLocation,
			Model:    cfg.LLMModel,
			Vertex:   cfg.LLMProvider == config.LLMVertex,
		})

	case config.LLMMock:
		log.Info("using MOCK LLM client")
		return llm.NewMockLLM(), nil
	}
	return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
}
