package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"portfolio-backend/internal/api"
	"portfolio-backend/internal/cache"
	"portfolio-backend/internal/config"
	"portfolio-backend/internal/fetch"
	"portfolio-backend/internal/github"
	"portfolio-backend/internal/llm"
	"portfolio-backend/internal/portfolio"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading configuration: %v", err)
	}

	logger, err := initializeLogger()
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ghCache, err := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL, logger)
	if err != nil {
		// The cache is an optimization; run without it rather than refusing
		// to start.
		logger.Warn("cache disabled", zap.Error(err))
		ghCache = nil
	}
	defer func() { _ = ghCache.Close() }()
	if ghCache != nil {
		logger.Info("github response cache enabled", zap.String("addr", cfg.RedisAddr))
	}

	gh := github.NewCached(github.NewClient(cfg.GitHubToken, logger), ghCache)
	collector := fetch.NewCollector(gh, logger)
	completer := llm.NewClient(cfg.LLMAPIKey, cfg.LLMBaseURL, cfg.LLMModel, logger)
	processor := portfolio.NewProcessor(collector, completer, cfg.GitHubUsername, cfg.ContextBudget, logger)

	handler := api.NewRouter(gh, processor, cfg.GitHubUsername, logger)

	logger.Info("server listening",
		zap.String("port", cfg.Port),
		zap.String("owner", cfg.GitHubUsername),
		zap.String("model", cfg.LLMModel),
	)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func initializeLogger() (*zap.Logger, error) {
	loggerConfig := zap.NewProductionConfig()
	if os.Getenv("LOG_LEVEL") == "debug" {
		loggerConfig.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return loggerConfig.Build()
}
