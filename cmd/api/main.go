package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"codeguard/config"
	_ "codeguard/docs" // Swagger docs
	"codeguard/internal/analysis"
	"codeguard/internal/formatter"
	"codeguard/internal/httpserver"
	reviewHTTP "codeguard/internal/review/delivery/http"
	"codeguard/internal/review/repository/memory"
	reviewUC "codeguard/internal/review/usecase"
	"codeguard/internal/webhook"
	"codeguard/pkg/github"
	"codeguard/pkg/llmprovider"
	"codeguard/pkg/log"
	"codeguard/pkg/qdrant"
	"codeguard/pkg/voyage"
)

// @title       CodeGuard API
// @description AI-powered pull request review: GitHub webhooks, RAG-backed analysis, and a single continuously updated report comment.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting CodeGuard...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. LLM providers
	providers, err := llmprovider.InitializeProviders(&cfg.LLM)
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize LLM providers: %v", err)
		return
	}
	llmManager := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.LLM.FallbackEnabled,
		RetryAttempts:   cfg.LLM.RetryAttempts,
	}, logger)

	// 4. Retrieval (optional: analysis degrades to no context without it)
	var retriever analysis.Retriever
	if cfg.Voyage.APIKey != "" && cfg.Qdrant.URL != "" {
		embedder, vErr := voyage.New(cfg.Voyage.APIKey)
		if vErr != nil {
			logger.Warnf(ctx, "Voyage client not available (optional): %v", vErr)
		} else {
			store := qdrant.NewClient(cfg.Qdrant.URL)
			retriever = analysis.NewVectorRetriever(embedder, store, cfg.Qdrant.CollectionName)
			logger.Infof(ctx, "Retrieval enabled (collection %s)", cfg.Qdrant.CollectionName)
		}
	} else {
		logger.Warn(ctx, "VOYAGE_API_KEY or QDRANT_URL missing, analysis runs without retrieved context")
	}

	// 5. Review domain
	analyzer := analysis.New(logger, llmManager, retriever)
	gitClient := github.NewClient(github.Config{
		Token:       cfg.GitHub.Token,
		BaseURL:     cfg.GitHub.APIURL,
		MinInterval: cfg.GitHub.MinInterval,
	})
	tracker := memory.New()
	uc := reviewUC.New(logger, gitClient, analyzer, formatter.New(), tracker, reviewUC.Options{
		FileExtension: cfg.GitHub.FileExtension,
		MaxFiles:      cfg.GitHub.MaxFiles,
	})

	// 6. Delivery
	webhookHandler := webhook.NewHandler(uc, webhook.SecurityConfig{
		Secret:          cfg.GitHub.WebhookSecret,
		AllowedIPs:      cfg.GitHub.AllowedIPs,
		RateLimitPerMin: cfg.GitHub.RateLimitPerMin,
	}, logger)
	reviewHandler := reviewHTTP.New(logger, uc)

	// 7. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:         logger,
		Port:           cfg.HTTPServer.Port,
		Mode:           cfg.HTTPServer.Mode,
		Environment:    cfg.Environment.Name,
		WebhookHandler: webhookHandler,
		ReviewHandler:  reviewHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 8. Run
	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
