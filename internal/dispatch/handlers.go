package dispatch

import (
	"context"
	"fmt"
	"strings"

	"news-assistant/internal/cache"
	"news-assistant/internal/fault"
	"news-assistant/internal/markets"
	"news-assistant/internal/news"
	"news-assistant/internal/session"
	"news-assistant/internal/weather"
)

const helpText = `Available commands and features:
  help      Show this help message
  trending  Show current trending topics
  exit      Quit the assistant

News:       "What's the latest news about AI?", "Show me 5 articles about tech"
Summaries:  "summarize article 2" (after fetching news)
Translation: "translate the last response to Spanish"
Weather:    "Show me the weather in Tokyo" (add "in imperial" for °F)
Commodities: Gold, Silver, Copper, Platinum, Palladium, Crude Oil,
             Brent Crude, Natural Gas — e.g. "Get gold and silver prices"

Anything else is answered by the language model, which can call the same
tools on your behalf.`

func (d *Dispatcher) handleHelp(_ context.Context, _ string, st session.State) (string, session.State, error) {
	return helpText, st, nil
}

func (d *Dispatcher) handleTrending(ctx context.Context, _ string, st session.State) (string, session.State, error) {
	key := cache.Key("trending")
	var batch []news.Article
	hit, err := d.cache.Get(ctx, key, &batch)
	if err != nil {
		d.log.Warn("cache read failed", "key", key, "err", err)
		hit = false
	}
	if !hit {
		batch, err = d.news.TopHeadlines(ctx, trendingCount)
		if err != nil {
			return "", st, err
		}
		d.cacheSet(ctx, key, batch)
	}
	if len(batch) == 0 {
		return "", st, &fault.NotFoundError{What: "no trending topics right now"}
	}

	var b strings.Builder
	b.WriteString("Here are the current trending topics:\n")
	for i, a := range batch {
		title := a.Title
		if title == "" {
			title = a.Description
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, title)
	}
	reply := strings.TrimRight(b.String(), "\n")
	return reply, st.WithArticles(batch).WithResponse(reply), nil
}

func (d *Dispatcher) handleNews(ctx context.Context, input string, st session.State) (string, session.State, error) {
	topic, count, ok := newsQuery(input, d.pageSize)
	if !ok {
		return "", st, &fault.NotFoundError{What: `a topic in that request; try "news about <topic>"`}
	}
	return d.fetchNews(ctx, topic, count, st)
}

// fetchNews is the shared core for the keyword intent and the fetch_news
// tool. A fetched batch fully replaces the previous one, cached or not, so
// article indices always refer to the batch just shown.
func (d *Dispatcher) fetchNews(ctx context.Context, topic string, count int, st session.State) (string, session.State, error) {
	if count <= 0 {
		count = d.pageSize
	}
	key := cache.Key("news", topic, fmt.Sprintf("%d", count))
	var batch []news.Article
	hit, err := d.cache.Get(ctx, key, &batch)
	if err != nil {
		d.log.Warn("cache read failed", "key", key, "err", err)
		hit = false
	}
	if !hit {
		batch, err = d.news.Search(ctx, topic, count)
		if err != nil {
			return "", st, err
		}
		d.cacheSet(ctx, key, batch)
	}
	if len(batch) == 0 {
		return "", st, &fault.NotFoundError{What: fmt.Sprintf("no articles about %q", topic)}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here are the top %d articles for %q:\n", len(batch), topic)
	for i, a := range batch {
		fmt.Fprintf(&b, "%d. %s\n", i+1, a.Title)
		if a.Description != "" {
			fmt.Fprintf(&b, "   %s\n", a.Description)
		}
		fmt.Fprintf(&b, "   (URL: %s)\n", a.URL)
	}
	reply := strings.TrimRight(b.String(), "\n")
	return reply, st.WithArticles(batch).WithResponse(reply), nil
}

func (d *Dispatcher) handleSummarize(ctx context.Context, input string, st session.State) (string, session.State, error) {
	n, ok := articleIndex(input)
	if !ok {
		return "", st, &fault.NotFoundError{What: "an article number in that request"}
	}
	return d.summarizeArticle(ctx, n, st)
}

func (d *Dispatcher) summarizeArticle(ctx context.Context, n int, st session.State) (string, session.State, error) {
	if len(st.Articles) == 0 {
		return "", st, &fault.NotFoundError{What: "no articles fetched yet; ask for news about a topic first"}
	}
	article, ok := st.Article(n)
	if !ok {
		return "", st, &fault.NotFoundError{What: fmt.Sprintf("no such article (the current batch has %d)", len(st.Articles))}
	}
	summary, err := d.llm.SummarizeArticle(ctx, article.Title, article.Description)
	if err != nil {
		return "", st, err
	}
	reply := "Here's the summary:\n" + summary
	return reply, st.WithResponse(reply), nil
}

func (d *Dispatcher) handleTranslate(ctx context.Context, input string, st session.State) (string, session.State, error) {
	lang, ok := translateTarget(input)
	if !ok {
		return "", st, &fault.NotFoundError{What: "a target language in that request"}
	}
	return d.translateLast(ctx, lang, st)
}

func (d *Dispatcher) translateLast(ctx context.Context, lang string, st session.State) (string, session.State, error) {
	if st.LastResponse == "" {
		return "", st, &fault.NotFoundError{What: "nothing to translate yet"}
	}
	translated, err := d.llm.Translate(ctx, st.LastResponse, lang)
	if err != nil {
		return "", st, err
	}
	return translated, st.WithResponse(translated), nil
}

func (d *Dispatcher) handleWeather(ctx context.Context, input string, st session.State) (string, session.State, error) {
	city, units, ok := weatherQuery(input)
	if !ok {
		return "", st, &fault.NotFoundError{What: `a city in that request; try "weather in <city>"`}
	}
	return d.weatherReport(ctx, city, units, st)
}

func (d *Dispatcher) weatherReport(ctx context.Context, city string, units weather.Units, st session.State) (string, session.State, error) {
	key := cache.Key("weather", city, string(units))
	var reading weather.Reading
	hit, err := d.cache.Get(ctx, key, &reading)
	if err != nil {
		d.log.Warn("cache read failed", "key", key, "err", err)
		hit = false
	}
	if !hit {
		reading, err = d.weather.Current(ctx, city, units)
		if err != nil {
			return "", st, err
		}
		d.cacheSet(ctx, key, reading)
	}

	sym := reading.Units.TemperatureSymbol()
	var b strings.Builder
	fmt.Fprintf(&b, "Current weather in %s:\n", reading.City)
	fmt.Fprintf(&b, "  Temperature: %.1f%s (feels like %.1f%s)\n", reading.Temperature, sym, reading.FeelsLike, sym)
	if reading.Conditions != "" {
		fmt.Fprintf(&b, "  Conditions: %s\n", reading.Conditions)
	}
	fmt.Fprintf(&b, "  Humidity: %d%%\n", reading.Humidity)
	fmt.Fprintf(&b, "  Wind: %.1f %s", reading.WindSpeed, reading.Units.WindUnit())
	reply := b.String()
	return reply, st.WithResponse(reply), nil
}

func (d *Dispatcher) handleCommodities(ctx context.Context, input string, st session.State) (string, session.State, error) {
	return d.commodityReport(ctx, markets.Match(input), st)
}

func (d *Dispatcher) commodityReport(ctx context.Context, names []string, st session.State) (string, session.State, error) {
	if len(names) == 0 {
		return "", st, &fault.NotFoundError{What: "a known commodity in that request"}
	}
	key := cache.Key("quotes", names...)
	var quotes []markets.Quote
	hit, err := d.cache.Get(ctx, key, &quotes)
	if err != nil {
		d.log.Warn("cache read failed", "key", key, "err", err)
		hit = false
	}
	if !hit {
		quotes, err = d.markets.Quotes(ctx, names)
		if err != nil {
			return "", st, err
		}
		d.cacheSet(ctx, key, quotes)
	}

	var b strings.Builder
	b.WriteString("Latest commodity prices (USD):\n")
	for _, q := range quotes {
		b.WriteString("  " + formatQuote(q) + "\n")
	}
	reply := strings.TrimRight(b.String(), "\n")
	return reply, st.WithResponse(reply), nil
}

func formatQuote(q markets.Quote) string {
	if !q.HasData {
		return fmt.Sprintf("%s: no data", q.Name)
	}
	sign := ""
	if !q.Change.IsNegative() {
		sign = "+"
	}
	return fmt.Sprintf("%s (%s): %s (%s%s, %s%s%%)",
		q.Name, q.Symbol, q.Price.StringFixed(2), sign, q.Change.StringFixed(2), sign, q.ChangePercent.StringFixed(2))
}

func (d *Dispatcher) handleFreeForm(ctx context.Context, input string, st session.State) (string, session.State, error) {
	// Tools mutate a local copy of the state; it only becomes the session
	// state if the whole chat turn succeeds.
	working := st
	reply, err := d.llm.ChatWithTools(ctx, input, d.toolRegistry(&working))
	if err != nil {
		return "", st, err
	}
	return reply, working.WithResponse(reply), nil
}

func (d *Dispatcher) cacheSet(ctx context.Context, key string, value any) {
	if err := d.cache.Set(ctx, key, value, d.cacheTTL); err != nil {
		d.log.Warn("cache write failed", "key", key, "err", err)
	}
}
