package config

import (
	"log/slog"

	"github.com/caarlos0/env/v10"
)

// Config holds runtime configuration for the assistant. Provider keys are
// optional: a missing key disables that feature at call time instead of
// failing startup.
type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Language model
	OpenAIKey string `env:"OPENAI_API_KEY"`
	LLMModel  string `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`

	// News provider
	NewsAPIKey   string `env:"NEWSAPI_API_KEY"`
	NewsPageSize int    `env:"NEWS_PAGE_SIZE" envDefault:"5"`

	// Weather provider
	OpenWeatherKey string `env:"OPENWEATHER_API_KEY"`

	// Response cache; empty REDIS_ADDR disables caching.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	CacheTTL      int    `env:"CACHE_TTL" envDefault:"300"` // seconds
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}
