// Package market supplies current prices for the trading API: a synthetic
// random-walk feed over a fixed symbol table, and an optional Alpha Vantage
// live provider that falls back to the synthetic feed when quotes are
// unavailable. The ledger never talks to this package; callers resolve an
// execution price first and hand it to the ledger.
package market

import "time"

// Quote is a point-in-time market quote for a listed symbol.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"change_percent"`
	Volume        int64     `json:"volume"`
	High          float64   `json:"high"`
	Low           float64   `json:"low"`
	Open          float64   `json:"open"`
	MarketCap     int64     `json:"market_cap"`
	Sector        string    `json:"sector"`
	LastUpdate    time.Time `json:"last_update"`
}

// Feed supplies quotes for the listed symbols. Implementations must be
// safe for concurrent use.
type Feed interface {
	// Quotes returns all listed symbols in listing order.
	Quotes() []Quote
	// Quote returns the quote for symbol, or false if it is not listed.
	Quote(symbol string) (Quote, bool)
	// Price returns the current price for symbol, or false if no price
	// is available.
	Price(symbol string) (float64, bool)
}

// marketOpen reports whether the simulated market session is trading.
// Sessions run 09:00–15:00 local time, matching the original simulation.
func marketOpen(t time.Time) bool {
	hour := t.Hour()
	return hour >= 9 && hour < 15
}
