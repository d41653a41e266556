package markets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

const defaultBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// YahooClient fetches quotes from the Yahoo Finance chart endpoint. No API
// key is required, but failures are frequent enough that every symbol is
// fetched independently and reported as "no data" on its own.
type YahooClient struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

func NewYahooClient(log *slog.Logger) *YahooClient {
	return &YahooClient{
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				RegularMarketOpen  float64 `json:"regularMarketOpen"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (c *YahooClient) Quotes(ctx context.Context, names []string) ([]Quote, error) {
	quotes := make([]Quote, 0, len(names))
	for _, name := range names {
		commodity, ok := SymbolFor(name)
		if !ok {
			quotes = append(quotes, Quote{Name: name})
			continue
		}
		quote, err := c.fetchOne(ctx, commodity)
		if err != nil {
			c.log.Warn("quote fetch failed", "symbol", commodity.Symbol, "err", err)
			quotes = append(quotes, Quote{Name: commodity.Name, Symbol: commodity.Symbol})
			continue
		}
		quotes = append(quotes, quote)
	}
	return quotes, nil
}

func (c *YahooClient) fetchOne(ctx context.Context, commodity Commodity) (Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s", c.baseURL, commodity.Symbol), nil)
	if err != nil {
		return Quote{}, err
	}
	// Yahoo rejects requests without a browser-ish user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; news-assistant/1.0)")

	resp, err := c.http.Do(req)
	if err != nil {
		return Quote{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Quote{}, fmt.Errorf("status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Quote{}, err
	}
	return parseQuote(body, commodity)
}

func parseQuote(body []byte, commodity Commodity) (Quote, error) {
	var decoded chartResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return Quote{}, err
	}
	if decoded.Chart.Error != nil {
		return Quote{}, fmt.Errorf("%s", decoded.Chart.Error.Description)
	}
	if len(decoded.Chart.Result) == 0 {
		return Quote{}, fmt.Errorf("empty result")
	}

	meta := decoded.Chart.Result[0].Meta
	if meta.RegularMarketPrice == 0 {
		return Quote{}, fmt.Errorf("no recent price")
	}

	price := decimal.NewFromFloat(meta.RegularMarketPrice).Round(2)
	open := decimal.NewFromFloat(meta.RegularMarketOpen)
	change := decimal.Zero
	changePercent := decimal.Zero
	if !open.IsZero() {
		change = price.Sub(open).Round(2)
		changePercent = change.Div(open).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return Quote{
		Name:          commodity.Name,
		Symbol:        commodity.Symbol,
		HasData:       true,
		Price:         price,
		Change:        change,
		ChangePercent: changePercent,
	}, nil
}
