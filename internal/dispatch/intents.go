package dispatch

import (
	"regexp"
	"strconv"
	"strings"

	"news-assistant/internal/weather"
)

// Extraction patterns for the pattern-based intents. All matching is
// case-insensitive; handlers receive the original-case input so city names
// and topics keep their spelling.
var (
	summarizeRe = regexp.MustCompile(`(?i)summari[sz]e\s+(?:the\s+)?article\s+#?(\d+)`)
	translateRe = regexp.MustCompile(`(?i)\btranslate\b.*?\bto\s+([a-zA-Z]+(?:\s+[a-zA-Z]+)?)\s*[.!?]*\s*$`)

	unitHintRe    = regexp.MustCompile(`(?i)\s+in\s+(?:imperial|metric|fahrenheit|celsius)\b`)
	weatherCityRe = regexp.MustCompile(`(?i)\bweather\b.*?\b(?:in|for|at)\s+([a-zA-Z][a-zA-Z .,'-]*?)\s*[.!?]*\s*$`)

	newsTopicRe     = regexp.MustCompile(`(?i)\bnews\b\s+(?:about|on|regarding|for)\s+(.+?)\s*[.!?]*\s*$`)
	articlesAboutRe = regexp.MustCompile(`(?i)\b(\d+)\s+(?:articles|stories|headlines)\s+(?:about|on)\s+(.+?)\s*[.!?]*\s*$`)
)

// articleIndex extracts N from "summarize article N".
func articleIndex(input string) (int, bool) {
	m := summarizeRe.FindStringSubmatch(input)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// translateTarget extracts the target language from "translate ... to X".
func translateTarget(input string) (string, bool) {
	m := translateRe.FindStringSubmatch(input)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// weatherQuery extracts the city and unit system from a weather request.
// ok is false when no city could be found.
func weatherQuery(input string) (city string, units weather.Units, ok bool) {
	units = weather.UnitsMetric
	lowered := strings.ToLower(input)
	if strings.Contains(lowered, "imperial") || strings.Contains(lowered, "fahrenheit") {
		units = weather.UnitsImperial
	}
	cleaned := unitHintRe.ReplaceAllString(input, "")
	m := weatherCityRe.FindStringSubmatch(cleaned)
	if m == nil {
		return "", units, false
	}
	return strings.TrimSpace(m[1]), units, true
}

// newsQuery extracts a topic and article count from a news request.
// defaultCount is used when the input names no count; ok is false when the
// input is not a news request with an extractable topic.
func newsQuery(input string, defaultCount int) (topic string, count int, ok bool) {
	count = defaultCount
	if m := articlesAboutRe.FindStringSubmatch(input); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			count = n
		}
		return strings.TrimSpace(m[2]), count, true
	}
	if m := newsTopicRe.FindStringSubmatch(input); m != nil {
		return strings.TrimSpace(m[1]), count, true
	}
	return "", count, false
}
