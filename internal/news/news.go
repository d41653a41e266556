package news

import (
	"context"
	"time"
)

// Article is one normalized news result. Position within a batch is implicit;
// user-facing indices are 1-based.
type Article struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
}

// Gateway wraps the news-search provider.
type Gateway interface {
	// Search returns up to count articles about topic, most recent first as
	// returned by the provider.
	Search(ctx context.Context, topic string, count int) ([]Article, error)

	// TopHeadlines returns up to count current top headlines.
	TopHeadlines(ctx context.Context, count int) ([]Article, error)
}
