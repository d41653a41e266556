package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"news-assistant/internal/fault"
)

const defaultBaseURL = "https://newsapi.org/v2"

// NewsAPIClient fetches articles from newsapi.org. The key is checked per
// call so a missing key disables the feature without blocking startup.
type NewsAPIClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewNewsAPIClient builds a client. An empty apiKey is allowed; calls will
// return a ConfigurationError until one is provided.
func NewNewsAPIClient(apiKey string) *NewsAPIClient {
	return &NewsAPIClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type newsResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

func (c *NewsAPIClient) Search(ctx context.Context, topic string, count int) ([]Article, error) {
	params := url.Values{}
	params.Set("q", topic)
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", fmt.Sprintf("%d", count))
	return c.fetch(ctx, "/everything", params)
}

func (c *NewsAPIClient) TopHeadlines(ctx context.Context, count int) ([]Article, error) {
	params := url.Values{}
	params.Set("category", "general")
	params.Set("pageSize", fmt.Sprintf("%d", count))
	return c.fetch(ctx, "/top-headlines", params)
}

func (c *NewsAPIClient) fetch(ctx context.Context, endpoint string, params url.Values) ([]Article, error) {
	if c.apiKey == "" {
		return nil, &fault.ConfigurationError{Feature: "news search (NEWSAPI_API_KEY)"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &fault.ProviderError{Provider: "NewsAPI", Err: err}
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &fault.ProviderError{Provider: "NewsAPI", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &fault.ProviderError{Provider: "NewsAPI", Err: err}
	}

	articles, err := parseArticles(body, resp.StatusCode)
	if err != nil {
		return nil, err
	}
	return articles, nil
}

// parseArticles decodes a NewsAPI response body. NewsAPI reports errors both
// via HTTP status and a status/message pair in the body; either one fails the
// call.
func parseArticles(body []byte, statusCode int) ([]Article, error) {
	var decoded newsResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, &fault.ProviderError{Provider: "NewsAPI", Err: err}
	}
	if statusCode != http.StatusOK || decoded.Status == "error" {
		msg := decoded.Message
		if msg == "" {
			msg = fmt.Sprintf("status %d", statusCode)
		}
		return nil, &fault.ProviderError{Provider: "NewsAPI", Err: fmt.Errorf("%s", msg)}
	}

	articles := make([]Article, 0, len(decoded.Articles))
	for _, a := range decoded.Articles {
		published, _ := time.Parse(time.RFC3339, a.PublishedAt)
		articles = append(articles, Article{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			Source:      a.Source.Name,
			PublishedAt: published,
		})
	}
	return articles, nil
}
