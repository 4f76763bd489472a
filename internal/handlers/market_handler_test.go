package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"papertrade/internal/market"
)

// stubFeed serves a fixed quote table.
type stubFeed struct {
	quotes map[string]market.Quote
}

func (f *stubFeed) Quotes() []market.Quote {
	out := make([]market.Quote, 0, len(f.quotes))
	for _, q := range f.quotes {
		out = append(out, q)
	}
	return out
}

func (f *stubFeed) Quote(symbol string) (market.Quote, bool) {
	q, ok := f.quotes[symbol]
	return q, ok
}

func (f *stubFeed) Price(symbol string) (float64, bool) {
	q, ok := f.quotes[symbol]
	return q.Price, ok
}

func setupMarketRouter(handler *MarketHandler) *gin.Engine {
	r := gin.New()
	r.GET("/market/quotes", handler.GetQuotes)
	r.GET("/market/quotes/:symbol", handler.GetQuote)
	return r
}

func TestMarketHandler_GetQuotes(t *testing.T) {
	feed := &stubFeed{quotes: map[string]market.Quote{
		"TCS":  {Symbol: "TCS", Price: 3924.15},
		"INFY": {Symbol: "INFY", Price: 1789.60},
	}}
	handler := NewMarketHandler(feed)
	r := setupMarketRouter(handler)

	rec := doRequest(r, "GET", "/market/quotes", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	quotes := result["quotes"].([]interface{})
	if len(quotes) != 2 {
		t.Errorf("expected 2 quotes, got %d", len(quotes))
	}
}

func TestMarketHandler_GetQuote(t *testing.T) {
	feed := &stubFeed{quotes: map[string]market.Quote{
		"TCS": {Symbol: "TCS", Name: "Tata Consultancy Services", Price: 3924.15},
	}}
	handler := NewMarketHandler(feed)
	r := setupMarketRouter(handler)

	t.Run("returns 200 for listed symbol", func(t *testing.T) {
		rec := doRequest(r, "GET", "/market/quotes/TCS", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		quote := parseJSON(t, rec)["quote"].(map[string]interface{})
		if quote["symbol"] != "TCS" {
			t.Errorf("expected TCS, got %v", quote["symbol"])
		}
	})

	t.Run("symbol is case insensitive", func(t *testing.T) {
		rec := doRequest(r, "GET", "/market/quotes/tcs", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("returns 404 for unlisted symbol", func(t *testing.T) {
		rec := doRequest(r, "GET", "/market/quotes/AAPL", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "SYMBOL_NOT_FOUND")
	})
}
