// Package config loads process-wide configuration once at startup.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultUsername      = "yungryce"
	defaultLLMBaseURL    = "https://api.groq.com/openai/v1"
	defaultLLMModel      = "llama-3.1-8b-instant"
	defaultContextBudget = 24000
	defaultCacheTTL      = time.Hour
	defaultPort          = "8080"
)

// Config is constructed once in main and passed explicitly into each
// component constructor. It is never mutated after Load.
type Config struct {
	GitHubToken    string
	GitHubUsername string

	LLMAPIKey  string
	LLMBaseURL string
	LLMModel   string

	// ContextBudget is the maximum character length of the assembled
	// repository context sent to the LLM.
	ContextBudget int

	// RedisAddr enables the GitHub response cache when non-empty.
	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	Port string
}

// Load reads configuration from the environment. Call godotenv.Load first
// if a .env file should be honored.
func Load() (Config, error) {
	cfg := Config{
		GitHubToken:    os.Getenv("GITHUB_TOKEN"),
		GitHubUsername: getEnvDefault("GITHUB_USERNAME", defaultUsername),
		LLMAPIKey:      os.Getenv("GROQ_API_KEY"),
		LLMBaseURL:     getEnvDefault("LLM_BASE_URL", defaultLLMBaseURL),
		LLMModel:       getEnvDefault("LLM_MODEL", defaultLLMModel),
		ContextBudget:  defaultContextBudget,
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		CacheTTL:       defaultCacheTTL,
		Port:           getEnvDefault("PORT", defaultPort),
	}

	if v := os.Getenv("CONTEXT_BUDGET"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid CONTEXT_BUDGET %q", v)
		}
		cfg.ContextBudget = n
	}

	if v := os.Getenv("CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("invalid CACHE_TTL %q", v)
		}
		cfg.CacheTTL = d
	}

	return cfg, nil
}

func getEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
