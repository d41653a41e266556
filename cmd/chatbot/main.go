package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"news-assistant/internal/app"
	"news-assistant/internal/dispatch"
)

func main() {
	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	defer deps.Close()

	d := dispatch.New(deps.Log, dispatch.Options{
		LLM:      deps.LLM,
		News:     deps.News,
		Weather:  deps.Weather,
		Markets:  deps.Markets,
		Cache:    deps.Cache,
		CacheTTL: time.Duration(deps.Config.CacheTTL) * time.Second,
		PageSize: deps.Config.NewsPageSize,
	})

	if err := run(context.Background(), deps, d, os.Stdin, os.Stdout); err != nil {
		deps.Log.Error("session ended with error", "err", err)
		os.Exit(1)
	}
}
