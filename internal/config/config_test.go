package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	// Save original env and restore after test
	originalEnv := os.Environ()
	defer func() {
		os.Clearenv()
		for _, env := range originalEnv {
			for i, c := range env {
				if c == '=' {
					os.Setenv(env[:i], env[i+1:])
					break
				}
			}
		}
	}()

	// Clear env to test defaults
	os.Clearenv()

	cfg := Load()

	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"LogLevel", cfg.LogLevel, "info"},
		{"LLMModel", cfg.LLMModel, "gpt-4o-mini"},
		{"NewsPageSize", cfg.NewsPageSize, 5},
		{"CacheTTL", cfg.CacheTTL, 300},
		{"OpenAIKey", cfg.OpenAIKey, ""},
		{"NewsAPIKey", cfg.NewsAPIKey, ""},
		{"OpenWeatherKey", cfg.OpenWeatherKey, ""},
		{"RedisAddr", cfg.RedisAddr, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("expected %s=%v, got %v", tt.name, tt.expected, tt.got)
			}
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	originalLevel := os.Getenv("LOG_LEVEL")
	originalPageSize := os.Getenv("NEWS_PAGE_SIZE")
	defer func() {
		os.Setenv("LOG_LEVEL", originalLevel)
		os.Setenv("NEWS_PAGE_SIZE", originalPageSize)
	}()

	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("NEWS_PAGE_SIZE", "8")

	cfg := Load()

	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.LogLevel)
	}
	if cfg.NewsPageSize != 8 {
		t.Errorf("expected page size 8, got %d", cfg.NewsPageSize)
	}
}

func TestMissingKeysDoNotFailLoad(t *testing.T) {
	originalKey := os.Getenv("OPENAI_API_KEY")
	defer os.Setenv("OPENAI_API_KEY", originalKey)

	os.Unsetenv("OPENAI_API_KEY")

	cfg := Load()
	if cfg.OpenAIKey != "" {
		t.Errorf("expected empty key, got %q", cfg.OpenAIKey)
	}
}
