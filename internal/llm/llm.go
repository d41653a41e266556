package llm

import (
	"context"
	"encoding/json"
)

// Client is the language-model gateway: summarization, translation,
// moderation, and a tool-calling chat fallback for free-form queries.
type Client interface {
	// SummarizeArticle produces a 2-3 sentence summary of one article.
	SummarizeArticle(ctx context.Context, title, content string) (string, error)

	// Translate returns text translated to targetLang, nothing else.
	Translate(ctx context.Context, text, targetLang string) (string, error)

	// Moderate checks text against the provider's content policy. When the
	// language model is not configured, or the moderation endpoint itself
	// fails, the check fails open so the rest of the assistant keeps working.
	Moderate(ctx context.Context, text string) (Moderation, error)

	// ChatWithTools answers a free-form query. The model may invoke any of
	// the given tools and incorporate their results before replying.
	ChatWithTools(ctx context.Context, userInput string, tools []Tool) (string, error)
}

// Moderation is the normalized moderation verdict.
type Moderation struct {
	Flagged    bool
	Categories []string
}

// Tool is one entry in the capability registry passed to ChatWithTools:
// a name, a JSON-schema parameter description, and the handler that runs
// when the model calls it. The registry is always passed explicitly; there
// is no global tool table.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]any
	Handler     func(ctx context.Context, args json.RawMessage) (string, error)
}
