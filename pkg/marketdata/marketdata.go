// Package marketdata resolves ticker symbols to normalized financial snapshots.
//
// Two providers implement the lookup: a live Yahoo Finance client and a
// deterministic fallback fed by a small known-ticker table. The Resolver
// composes them so that callers always get a usable snapshot, no matter what
// the live provider is doing.
package marketdata

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Snapshot is a normalized view of a single symbol.
// Price is always positive; TargetPrice may be zero when unknown.
type Snapshot struct {
	Symbol      string  `json:"symbol"`
	Company     string  `json:"company"`
	Price       float64 `json:"price"`
	TargetPrice float64 `json:"target_price"`
	Upside      string  `json:"upside_potential"`
	Rating      string  `json:"analyst_rating"`
	PERatio     string  `json:"pe_ratio"`
}

// Provider looks up a snapshot for a symbol.
type Provider interface {
	// Snapshot fetches the latest data for symbol.
	Snapshot(ctx context.Context, symbol string) (*Snapshot, error)
}

// New builds a display-ready snapshot: prices rounded to two decimals and
// the upside label computed from the raw values.
func New(symbol, company string, price, target float64, rating, peRatio string) *Snapshot {
	return &Snapshot{
		Symbol:      symbol,
		Company:     company,
		Price:       round2(price),
		TargetPrice: round2(target),
		Upside:      UpsideLabel(price, target),
		Rating:      rating,
		PERatio:     peRatio,
	}
}

// UpsideLabel formats the analyst upside as a percentage with one decimal,
// or "N/A" when either side of the ratio is unusable.
func UpsideLabel(price, target float64) string {
	if price <= 0 || target <= 0 {
		return "N/A"
	}
	pct := (target - price) / price * 100
	return fmt.Sprintf("%.1f%%", pct)
}

// HumanizeRating turns a provider recommendation key like "strong_buy"
// into display form ("Strong Buy").
func HumanizeRating(key string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(key, "_", " "))
}

// formatPE renders a trailing P/E for display.
func formatPE(pe float64) string {
	if pe <= 0 {
		return "N/A"
	}
	return strconv.FormatFloat(round2(pe), 'f', -1, 64)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
