// Package dispatch routes one line of user input to a gateway call or to the
// language-model fallback, threading the session state through every turn.
//
// Intents are an ordered list of (predicate, handler) pairs; the first match
// wins. The documented precedence is: literal commands (help, trending; exit
// is handled by the loop), then referential commands (summarize article N,
// translate ... to X), then keyword intents (weather, news, commodities),
// then the tool-calling fallback. Referential commands come before keyword
// intents so "summarize article 2 about gold" never turns into a quote
// request.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"news-assistant/internal/cache"
	"news-assistant/internal/fault"
	"news-assistant/internal/llm"
	"news-assistant/internal/markets"
	"news-assistant/internal/news"
	"news-assistant/internal/session"
	"news-assistant/internal/weather"
)

const (
	defaultPageSize = 5
	defaultCacheTTL = 5 * time.Minute
	trendingCount   = 10
)

// Fixed refusal texts for moderation rejections. Resubmitting the same
// flagged text always yields the same message.
const (
	RefusalInput  = "Your input contains inappropriate content. Please try again."
	RefusalOutput = "I generated a response that violates guidelines. Please rephrase your request."
)

// Options bundles the collaborators a Dispatcher needs.
type Options struct {
	LLM      llm.Client
	News     news.Gateway
	Weather  weather.Gateway
	Markets  markets.Gateway
	Cache    cache.Cache
	CacheTTL time.Duration
	PageSize int
}

type handlerFunc func(ctx context.Context, input string, st session.State) (string, session.State, error)

type rule struct {
	name  string
	match func(lowered string) bool
	run   handlerFunc
}

// Dispatcher turns user input plus session state into a reply plus updated
// state. It never returns an error: everything recoverable becomes a
// user-visible string and the state is left unchanged on failure.
type Dispatcher struct {
	log      *slog.Logger
	llm      llm.Client
	news     news.Gateway
	weather  weather.Gateway
	markets  markets.Gateway
	cache    cache.Cache
	cacheTTL time.Duration
	pageSize int
	rules    []rule
}

func New(log *slog.Logger, opts Options) *Dispatcher {
	d := &Dispatcher{
		log:      log,
		llm:      opts.LLM,
		news:     opts.News,
		weather:  opts.Weather,
		markets:  opts.Markets,
		cache:    opts.Cache,
		cacheTTL: opts.CacheTTL,
		pageSize: opts.PageSize,
	}
	if d.cache == nil {
		d.cache = cache.NewNoOpCache()
	}
	if d.cacheTTL <= 0 {
		d.cacheTTL = defaultCacheTTL
	}
	if d.pageSize <= 0 {
		d.pageSize = defaultPageSize
	}
	d.rules = []rule{
		{name: "help", match: func(in string) bool { return in == "help" }, run: d.handleHelp},
		{name: "trending", match: func(in string) bool { return in == "trending" }, run: d.handleTrending},
		{name: "summarize-article", match: func(in string) bool { return summarizeRe.MatchString(in) }, run: d.handleSummarize},
		{name: "translate-last", match: func(in string) bool { return translateRe.MatchString(in) }, run: d.handleTranslate},
		{name: "get-weather", match: func(in string) bool { return strings.Contains(in, "weather") }, run: d.handleWeather},
		{name: "fetch-news", match: func(in string) bool { _, _, ok := newsQuery(in, 0); return ok }, run: d.handleNews},
		{name: "get-commodities", match: func(in string) bool { return len(markets.Match(in)) > 0 }, run: d.handleCommodities},
		{name: "free-form", match: func(string) bool { return true }, run: d.handleFreeForm},
	}
	return d
}

// Handle dispatches one input line. The returned state replaces the caller's
// copy; on any handler error the prior state is returned untouched along with
// a user-facing explanation.
func (d *Dispatcher) Handle(ctx context.Context, input string, st session.State) (string, session.State) {
	trimmed := strings.TrimSpace(input)
	lowered := strings.ToLower(trimmed)
	for _, r := range d.rules {
		if !r.match(lowered) {
			continue
		}
		d.log.Debug("intent matched", "intent", r.name)
		reply, next, err := r.run(ctx, trimmed, st)
		if err != nil {
			return d.userMessage(r.name, err), st
		}
		return reply, next
	}
	// free-form matches everything, so this is unreachable
	return "", st
}

func (d *Dispatcher) userMessage(intent string, err error) string {
	var cfgErr *fault.ConfigurationError
	if errors.As(err, &cfgErr) {
		d.log.Warn("feature not configured", "intent", intent, "err", err)
		return fmt.Sprintf("That feature is unavailable: %s. Add the key to the config file and restart.", cfgErr.Error())
	}
	var nfErr *fault.NotFoundError
	if errors.As(err, &nfErr) {
		return fmt.Sprintf("Sorry, %s.", nfErr.What)
	}
	var provErr *fault.ProviderError
	if errors.As(err, &provErr) {
		d.log.Error("provider failure", "intent", intent, "provider", provErr.Provider, "err", provErr.Err)
		return fmt.Sprintf("Sorry, the %s service could not complete that request: %v.", provErr.Provider, provErr.Err)
	}
	var modErr *fault.ModerationRejection
	if errors.As(err, &modErr) {
		return RefusalOutput
	}
	d.log.Error("unexpected dispatch failure", "intent", intent, "err", err)
	return "Sorry, something went wrong handling that request."
}
