// Package config loads VisionBoard settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Enrichment failure policies.
const (
	PolicyBatch   = "batch"
	PolicyPerGoal = "per-goal"
)

// Insight providers.
const (
	ProviderHTTP      = "http"
	ProviderOllama    = "ollama"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Config holds all configuration values.
type Config struct {
	// Backends
	APIBaseURL   string
	AIAPIBaseURL string

	// HTTP behaviour
	HTTPTimeout          time.Duration
	SlowRequestThreshold time.Duration

	// Enrichment
	EnrichPolicy      string
	EnrichConcurrency int
	KeywordCount      int

	// Insight provider
	InsightProvider string
	LLMModel        string
	OllamaHost      string
	OpenAIAPIKey    string
	AnthropicAPIKey string

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Load reads configuration from environment variables.
// The NEXT_PUBLIC_* names are accepted so an existing web .env keeps working.
func Load() Config {
	return Config{
		APIBaseURL:   getEnv("VISIONBOARD_API_BASE_URL", getEnv("NEXT_PUBLIC_API_BASE_URL", "http://localhost:8080")),
		AIAPIBaseURL: getEnv("VISIONBOARD_AI_API_BASE_URL", getEnv("NEXT_PUBLIC_AI_API_BASE_URL", "http://localhost:8000")),

		HTTPTimeout:          parseDuration(getEnv("VISIONBOARD_HTTP_TIMEOUT", "0"), 0),
		SlowRequestThreshold: parseDuration(getEnv("VISIONBOARD_SLOW_REQUEST", "2s"), 2*time.Second),

		EnrichPolicy:      strings.ToLower(getEnv("VISIONBOARD_ENRICH_POLICY", PolicyBatch)),
		EnrichConcurrency: parseInt(getEnv("VISIONBOARD_ENRICH_CONCURRENCY", "0"), 0),
		KeywordCount:      parseInt(getEnv("VISIONBOARD_KEYWORDS", "3"), 3),

		InsightProvider: strings.ToLower(getEnv("VISIONBOARD_INSIGHT_PROVIDER", ProviderHTTP)),
		LLMModel:        getEnv("VISIONBOARD_LLM_MODEL", "llama3.2"),
		OllamaHost:      getEnv("OLLAMA_HOST", "http://localhost:11434"),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),

		LogFile:  getEnv("VISIONBOARD_LOG_FILE", ""),
		LogLevel: parseLogLevel(getEnv("VISIONBOARD_LOG_LEVEL", "INFO")),
	}
}

// Validate checks values that Load cannot reject on its own.
func (c Config) Validate() error {
	for name, raw := range map[string]string{
		"VISIONBOARD_API_BASE_URL":    c.APIBaseURL,
		"VISIONBOARD_AI_API_BASE_URL": c.AIAPIBaseURL,
	} {
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("%s must be an http(s) URL, got %q", name, raw)
		}
	}

	switch c.EnrichPolicy {
	case PolicyBatch, PolicyPerGoal:
	default:
		return fmt.Errorf("unknown enrichment policy %q (expected %s or %s)", c.EnrichPolicy, PolicyBatch, PolicyPerGoal)
	}

	switch c.InsightProvider {
	case ProviderHTTP, ProviderOllama, ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("unsupported insight provider: %s", c.InsightProvider)
	}

	if c.EnrichConcurrency < 0 {
		return fmt.Errorf("enrichment concurrency must not be negative")
	}
	if c.KeywordCount <= 0 {
		return fmt.Errorf("keyword count must be positive")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "0" {
		return 0
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return n
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
