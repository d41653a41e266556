package app

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/openai/openai-go/v3"

	"news-assistant/internal/cache"
	"news-assistant/internal/config"
	"news-assistant/internal/llm"
	"news-assistant/internal/logger"
	"news-assistant/internal/markets"
	"news-assistant/internal/news"
	"news-assistant/internal/weather"
)

// Deps bundles the runtime dependencies of the assistant.
type Deps struct {
	Config  config.Config
	Log     *slog.Logger
	LLM     llm.Client
	News    news.Gateway
	Weather weather.Gateway
	Markets markets.Gateway
	Cache   cache.Cache
}

// Build loads the config file into the environment, reads config, and wires
// the gateways. Missing provider keys are not fatal here; those features fail
// gracefully at call time. Only an unreadable config file aborts startup.
func Build() (Deps, error) {
	if err := loadConfigFile(); err != nil {
		return Deps{}, err
	}
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	deps := Deps{
		Config:  cfg,
		Log:     log,
		LLM:     llm.NewOpenAIClient(cfg.OpenAIKey, openai.ChatModel(cfg.LLMModel), log),
		News:    news.NewNewsAPIClient(cfg.NewsAPIKey),
		Weather: weather.NewOpenWeatherClient(cfg.OpenWeatherKey),
		Markets: markets.NewYahooClient(log),
		Cache:   buildCache(cfg, log),
	}

	if cfg.OpenAIKey == "" {
		log.Warn("OPENAI_API_KEY not set; summaries, translation, moderation and free-form queries are disabled")
	}
	if cfg.NewsAPIKey == "" {
		log.Warn("NEWSAPI_API_KEY not set; news search and trending are disabled")
	}
	if cfg.OpenWeatherKey == "" {
		log.Warn("OPENWEATHER_API_KEY not set; weather lookups are disabled")
	}
	return deps, nil
}

// Close releases held connections. Safe to call on a zero value.
func (d Deps) Close() {
	if d.Cache != nil {
		if err := d.Cache.Close(); err != nil && d.Log != nil {
			d.Log.Warn("cache close failed", "err", err)
		}
	}
}

// loadConfigFile reads the key/value config file into the process
// environment. A missing file is fine (keys may come from the environment
// directly); any other read error is fatal.
func loadConfigFile() error {
	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return nil
}

func buildCache(cfg config.Config, log *slog.Logger) cache.Cache {
	if cfg.RedisAddr == "" {
		return cache.NewNoOpCache()
	}
	c, err := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Warn("redis unavailable, responses will not be cached", "addr", cfg.RedisAddr, "err", err)
		return cache.NewNoOpCache()
	}
	log.Info("using redis response cache", "addr", cfg.RedisAddr)
	return c
}
