package markets

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestQuotesMixedBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/GC=F":
			fmt.Fprint(w, `{"chart":{"result":[{"meta":{"regularMarketPrice":2411.5,"regularMarketOpen":2399.2}}]}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := &YahooClient{baseURL: srv.URL, http: srv.Client(), log: testLogger()}

	quotes, err := c.Quotes(context.Background(), []string{"Gold", "Silver", "dogecoin"})
	require.NoError(t, err)
	require.Len(t, quotes, 3, "one entry per requested name, data or not")

	assert.True(t, quotes[0].HasData)
	assert.Equal(t, "Gold", quotes[0].Name)

	assert.False(t, quotes[1].HasData, "provider 404 becomes a no-data entry")
	assert.Equal(t, "Silver", quotes[1].Name)

	assert.False(t, quotes[2].HasData, "unknown name becomes a no-data entry")
	assert.Equal(t, "dogecoin", quotes[2].Name)
}

func TestQuotesSendsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, `{"chart":{"result":[{"meta":{"regularMarketPrice":30.1,"regularMarketOpen":30.0}}]}}`)
	}))
	defer srv.Close()

	c := &YahooClient{baseURL: srv.URL, http: srv.Client(), log: testLogger()}
	_, err := c.Quotes(context.Background(), []string{"Silver"})
	require.NoError(t, err)
	assert.NotEmpty(t, gotUA)
}
