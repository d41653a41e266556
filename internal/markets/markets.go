// Package markets provides commodity price quotes via a fixed name-to-ticker
// table and the Yahoo Finance chart endpoint.
package markets

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

// Commodity pairs a display name with its futures ticker.
type Commodity struct {
	Name   string
	Symbol string
}

// Commodities is the fixed lookup table, in display order. Matching is
// case-insensitive on the whole name; a bare "oil" does not match.
var Commodities = []Commodity{
	{Name: "Gold", Symbol: "GC=F"},
	{Name: "Silver", Symbol: "SI=F"},
	{Name: "Copper", Symbol: "HG=F"},
	{Name: "Platinum", Symbol: "PL=F"},
	{Name: "Palladium", Symbol: "PA=F"},
	{Name: "Crude Oil", Symbol: "CL=F"},
	{Name: "Brent Crude", Symbol: "BZ=F"},
	{Name: "Natural Gas", Symbol: "NG=F"},
}

// Quote is one commodity price result. HasData is false when the provider
// returned nothing usable; the numeric fields are zero in that case.
type Quote struct {
	Name          string          `json:"name"`
	Symbol        string          `json:"symbol"`
	HasData       bool            `json:"has_data"`
	Price         decimal.Decimal `json:"price"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"change_percent"`
}

// Gateway wraps the financial-quote provider.
type Gateway interface {
	// Quotes returns exactly one Quote per requested name, in request order.
	// Unknown names and provider failures yield HasData=false entries; the
	// batch itself only fails on unrecoverable errors.
	Quotes(ctx context.Context, names []string) ([]Quote, error)
}

// SymbolFor resolves a commodity name to its ticker, case-insensitively.
func SymbolFor(name string) (Commodity, bool) {
	for _, c := range Commodities {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			return c, true
		}
	}
	return Commodity{}, false
}

// Match scans free text for commodity names and returns them in table order,
// at most once each.
func Match(input string) []string {
	lower := strings.ToLower(input)
	var found []string
	for _, c := range Commodities {
		if strings.Contains(lower, strings.ToLower(c.Name)) {
			found = append(found, c.Name)
		}
	}
	return found
}
