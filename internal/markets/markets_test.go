package markets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolFor(t *testing.T) {
	tests := []struct {
		name   string
		symbol string
		ok     bool
	}{
		{"Gold", "GC=F", true},
		{"gold", "GC=F", true},
		{"  CRUDE OIL  ", "CL=F", true},
		{"Brent Crude", "BZ=F", true},
		{"Natural Gas", "NG=F", true},
		{"oil", "", false},
		{"bitcoin", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := SymbolFor(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.symbol, c.Symbol)
		})
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"Get gold and silver prices", []string{"Gold", "Silver"}},
		{"how is brent crude doing", []string{"Brent Crude"}},
		{"compare natural gas with crude oil", []string{"Crude Oil", "Natural Gas"}},
		{"what's the weather in Tokyo", nil},
		{"oil prices please", nil}, // bare "oil" is ambiguous, left to the model
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.input))
		})
	}
}

func TestParseQuote(t *testing.T) {
	gold := Commodity{Name: "Gold", Symbol: "GC=F"}

	body := []byte(`{"chart":{"result":[{"meta":{"regularMarketPrice":2411.5,"regularMarketOpen":2399.2}}],"error":null}}`)
	q, err := parseQuote(body, gold)
	require.NoError(t, err)
	assert.True(t, q.HasData)
	assert.Equal(t, "2411.50", q.Price.StringFixed(2))
	assert.Equal(t, "12.30", q.Change.StringFixed(2))
	assert.Equal(t, "0.51", q.ChangePercent.StringFixed(2))
}

func TestParseQuoteProviderError(t *testing.T) {
	body := []byte(`{"chart":{"result":[],"error":{"description":"No data found, symbol may be delisted"}}}`)
	_, err := parseQuote(body, Commodity{Name: "Gold", Symbol: "GC=F"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No data found")
}

func TestParseQuoteEmptyResult(t *testing.T) {
	_, err := parseQuote([]byte(`{"chart":{"result":[]}}`), Commodity{Name: "Gold", Symbol: "GC=F"})
	assert.Error(t, err)
}

func TestParseQuoteZeroPriceIsNoData(t *testing.T) {
	body := []byte(`{"chart":{"result":[{"meta":{"regularMarketPrice":0,"regularMarketOpen":0}}]}}`)
	_, err := parseQuote(body, Commodity{Name: "Gold", Symbol: "GC=F"})
	assert.Error(t, err)
}
