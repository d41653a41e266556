package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"news-assistant/internal/weather"
)

func TestArticleIndex(t *testing.T) {
	tests := []struct {
		input string
		want  int
		ok    bool
	}{
		{"summarize article 3", 3, true},
		{"Summarise the article 12", 12, true},
		{"please summarize article #2 for me", 2, true},
		{"summarize the batch", 0, false},
		{"summarize article one", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := articleIndex(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTranslateTarget(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"translate the last response to Spanish", "Spanish", true},
		{"Translate that to french!", "french", true},
		{"translate to Brazilian Portuguese", "Brazilian Portuguese", true},
		{"translate this", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := translateTarget(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWeatherQuery(t *testing.T) {
	tests := []struct {
		input string
		city  string
		units weather.Units
		ok    bool
	}{
		{"Show me the weather in Tokyo", "Tokyo", weather.UnitsMetric, true},
		{"weather for New York?", "New York", weather.UnitsMetric, true},
		{"what's the weather in Boston in fahrenheit", "Boston", weather.UnitsImperial, true},
		{"weather in São Paulo", "", weather.UnitsMetric, false}, // ascii-only city matching
		{"how is the weather", "", weather.UnitsMetric, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			city, units, ok := weatherQuery(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.units, units)
			if tt.ok {
				assert.Equal(t, tt.city, city)
			}
		})
	}
}

func TestNewsQuery(t *testing.T) {
	tests := []struct {
		input string
		topic string
		count int
		ok    bool
	}{
		{"What's the latest news about AI?", "AI", 5, true},
		{"news on climate change", "climate change", 5, true},
		{"Show me 3 articles about tech", "tech", 3, true},
		{"any news", "", 5, false},
		{"summarize article 2", "", 5, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			topic, count, ok := newsQuery(tt.input, 5)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.topic, topic)
				assert.Equal(t, tt.count, count)
			}
		})
	}
}
