package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"news-assistant/internal/app"
	"news-assistant/internal/dispatch"
	"news-assistant/internal/llm"
	"news-assistant/internal/markets"
	"news-assistant/internal/news"
	"news-assistant/internal/weather"
)

func newTestHarness() (app.Deps, *dispatch.Dispatcher, *llm.MockClient) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	mockLLM := new(llm.MockClient)
	deps := app.Deps{Log: log, LLM: mockLLM}
	d := dispatch.New(log, dispatch.Options{
		LLM:     mockLLM,
		News:    new(news.MockGateway),
		Weather: new(weather.MockGateway),
		Markets: new(markets.MockGateway),
	})
	return deps, d, mockLLM
}

func clean() llm.Moderation { return llm.Moderation{} }

func TestExitEndsLoopCleanly(t *testing.T) {
	deps, d, mockLLM := newTestHarness()
	var out bytes.Buffer

	err := run(context.Background(), deps, d, strings.NewReader("exit\n"), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Goodbye!")
	mockLLM.AssertNotCalled(t, "Moderate", mock.Anything, mock.Anything)
}

func TestEndOfInputEndsLoopCleanly(t *testing.T) {
	deps, d, _ := newTestHarness()
	var out bytes.Buffer

	err := run(context.Background(), deps, d, strings.NewReader(""), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Welcome")
}

func TestEmptyLinesAreSkipped(t *testing.T) {
	deps, d, mockLLM := newTestHarness()
	var out bytes.Buffer

	err := run(context.Background(), deps, d, strings.NewReader("\n   \nexit\n"), &out)
	require.NoError(t, err)
	mockLLM.AssertNotCalled(t, "Moderate", mock.Anything, mock.Anything)
}

func TestHelpTurn(t *testing.T) {
	deps, d, mockLLM := newTestHarness()
	var out bytes.Buffer

	mockLLM.On("Moderate", mock.Anything, "help").Return(clean(), nil).Once()
	mockLLM.On("Moderate", mock.Anything, mock.MatchedBy(func(s string) bool {
		return strings.Contains(s, "Available commands")
	})).Return(clean(), nil).Once()

	err := run(context.Background(), deps, d, strings.NewReader("help\nexit\n"), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Available commands")
	mockLLM.AssertExpectations(t)
}

func TestFlaggedInputIsRefusedIdempotently(t *testing.T) {
	deps, d, mockLLM := newTestHarness()
	var out bytes.Buffer

	// The same flagged text yields the same refusal every time; nothing is
	// ever forwarded to the dispatcher.
	mockLLM.On("Moderate", mock.Anything, "something awful").
		Return(llm.Moderation{Flagged: true, Categories: []string{"harassment"}}, nil).Twice()

	input := "something awful\nsomething awful\nexit\n"
	err := run(context.Background(), deps, d, strings.NewReader(input), &out)
	require.NoError(t, err)

	refusals := strings.Count(out.String(), dispatch.RefusalInput)
	assert.Equal(t, 2, refusals)
	assert.Contains(t, out.String(), "harassment")
	mockLLM.AssertNotCalled(t, "ChatWithTools", mock.Anything, mock.Anything, mock.Anything)
	mockLLM.AssertExpectations(t)
}

func TestFlaggedOutputIsDroppedFromSession(t *testing.T) {
	deps, d, mockLLM := newTestHarness()
	var out bytes.Buffer

	mockLLM.On("Moderate", mock.Anything, "tell me something").Return(clean(), nil).Once()
	mockLLM.On("ChatWithTools", mock.Anything, "tell me something", mock.Anything).
		Return("a reply that gets flagged", nil).Once()
	mockLLM.On("Moderate", mock.Anything, "a reply that gets flagged").
		Return(llm.Moderation{Flagged: true}, nil).Once()

	// The flagged reply must not survive as the last response, so the
	// follow-up translation has nothing to work on.
	mockLLM.On("Moderate", mock.Anything, "translate that to Spanish").Return(clean(), nil).Once()
	mockLLM.On("Moderate", mock.Anything, mock.MatchedBy(func(s string) bool {
		return strings.Contains(s, "nothing to translate yet")
	})).Return(clean(), nil).Once()

	input := "tell me something\ntranslate that to Spanish\nexit\n"
	err := run(context.Background(), deps, d, strings.NewReader(input), &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), dispatch.RefusalOutput)
	assert.NotContains(t, out.String(), "a reply that gets flagged")
	assert.Contains(t, out.String(), "nothing to translate yet")
	mockLLM.AssertExpectations(t)
}
