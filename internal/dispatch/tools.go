package dispatch

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"news-assistant/internal/llm"
	"news-assistant/internal/markets"
	"news-assistant/internal/session"
	"news-assistant/internal/weather"
)

var validate = validator.New()

// toolResponse is the JSON envelope returned to the model for every tool
// invocation.
type toolResponse struct {
	OK   bool   `json:"ok"`
	Tool string `json:"tool,omitempty"`
	Data any    `json:"data,omitempty"`
	Err  string `json:"error,omitempty"`
}

func marshalToolResponse(tool string, data any, err error) (string, error) {
	resp := toolResponse{OK: err == nil, Tool: tool, Data: data}
	if err != nil {
		resp.Err = err.Error()
	}
	payload, marshalErr := json.Marshal(resp)
	if marshalErr != nil {
		return "", marshalErr
	}
	return string(payload), nil
}

type fetchNewsArgs struct {
	Topic string `json:"topic" validate:"required"`
	Count int    `json:"count" validate:"omitempty,min=1,max=20"`
}

type summarizeArgs struct {
	Index int `json:"index" validate:"required,min=1"`
}

type translateArgs struct {
	TargetLang string `json:"target_lang" validate:"required"`
}

type weatherArgs struct {
	City  string `json:"city" validate:"required"`
	Units string `json:"units" validate:"omitempty,oneof=metric imperial"`
}

type commoditiesArgs struct {
	Commodities []string `json:"commodities" validate:"required,min=1,dive,required"`
}

func decodeArgs(raw json.RawMessage, dest any) error {
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	if err := validate.Struct(dest); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// toolRegistry builds the capability registry for one free-form turn: one
// tool per gateway, each handler closing over st so successful calls update
// the session the same way the keyword intents do.
func (d *Dispatcher) toolRegistry(st *session.State) []llm.Tool {
	return []llm.Tool{
		{
			Name:        "fetch_news",
			Description: "Fetches news articles about a topic. Replaces the current article batch.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"topic": map[string]any{"type": "string", "description": "The topic to fetch news for."},
					"count": map[string]any{"type": "integer", "description": "Number of articles to fetch.", "default": d.pageSize},
				},
				"required": []string{"topic"},
			},
			Handler: func(ctx context.Context, raw json.RawMessage) (string, error) {
				var args fetchNewsArgs
				if err := decodeArgs(raw, &args); err != nil {
					return marshalToolResponse("fetch_news", nil, err)
				}
				reply, next, err := d.fetchNews(ctx, args.Topic, args.Count, *st)
				if err == nil {
					*st = next
				}
				return marshalToolResponse("fetch_news", reply, err)
			},
		},
		{
			Name:        "summarize_article",
			Description: "Summarizes an article by its 1-based index in the most recently fetched batch.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"index": map[string]any{"type": "integer", "description": "1-based index of the article to summarize."},
				},
				"required": []string{"index"},
			},
			Handler: func(ctx context.Context, raw json.RawMessage) (string, error) {
				var args summarizeArgs
				if err := decodeArgs(raw, &args); err != nil {
					return marshalToolResponse("summarize_article", nil, err)
				}
				reply, next, err := d.summarizeArticle(ctx, args.Index, *st)
				if err == nil {
					*st = next
				}
				return marshalToolResponse("summarize_article", reply, err)
			},
		},
		{
			Name:        "translate_text",
			Description: "Translates the assistant's most recent response to the given language.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"target_lang": map[string]any{"type": "string", "description": "Target language, e.g. Spanish, fr, de."},
				},
				"required": []string{"target_lang"},
			},
			Handler: func(ctx context.Context, raw json.RawMessage) (string, error) {
				var args translateArgs
				if err := decodeArgs(raw, &args); err != nil {
					return marshalToolResponse("translate_text", nil, err)
				}
				reply, next, err := d.translateLast(ctx, args.TargetLang, *st)
				if err == nil {
					*st = next
				}
				return marshalToolResponse("translate_text", reply, err)
			},
		},
		{
			Name:        "get_weather",
			Description: "Fetches current weather conditions for a city.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"city":  map[string]any{"type": "string", "description": "Name of the city."},
					"units": map[string]any{"type": "string", "enum": []string{"metric", "imperial"}, "default": "metric"},
				},
				"required": []string{"city"},
			},
			Handler: func(ctx context.Context, raw json.RawMessage) (string, error) {
				var args weatherArgs
				if err := decodeArgs(raw, &args); err != nil {
					return marshalToolResponse("get_weather", nil, err)
				}
				units := weather.Units(args.Units)
				if units == "" {
					units = weather.UnitsMetric
				}
				reply, next, err := d.weatherReport(ctx, args.City, units, *st)
				if err == nil {
					*st = next
				}
				return marshalToolResponse("get_weather", reply, err)
			},
		},
		{
			Name:        "get_commodity_prices",
			Description: "Fetches latest prices for the given commodities.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"commodities": map[string]any{
						"type":        "array",
						"items":       map[string]any{"type": "string", "enum": commodityNames()},
						"description": "Commodities to fetch prices for.",
					},
				},
				"required": []string{"commodities"},
			},
			Handler: func(ctx context.Context, raw json.RawMessage) (string, error) {
				var args commoditiesArgs
				if err := decodeArgs(raw, &args); err != nil {
					return marshalToolResponse("get_commodity_prices", nil, err)
				}
				reply, next, err := d.commodityReport(ctx, args.Commodities, *st)
				if err == nil {
					*st = next
				}
				return marshalToolResponse("get_commodity_prices", reply, err)
			},
		},
	}
}

func commodityNames() []string {
	names := make([]string, len(markets.Commodities))
	for i, c := range markets.Commodities {
		names[i] = c.Name
	}
	return names
}
