package market

import (
	"testing"
	"time"
)

// tradingTime returns a timestamp inside market hours.
func tradingTime() time.Time {
	return time.Date(2026, 3, 10, 11, 0, 0, 0, time.Local)
}

func TestNewSynthetic(t *testing.T) {
	s := NewSynthetic()

	quotes := s.Quotes()
	if len(quotes) != len(listings) {
		t.Fatalf("expected %d quotes, got %d", len(listings), len(quotes))
	}

	for i, q := range quotes {
		l := listings[i]
		if q.Symbol != l.symbol {
			t.Errorf("quote %d: expected symbol %s, got %s (listing order not preserved)", i, l.symbol, q.Symbol)
		}
		if q.Price <= 0 {
			t.Errorf("%s: non-positive opening price %v", q.Symbol, q.Price)
		}
		// Opening jitter is bounded by the opening volatility.
		lo := l.basePrice * (1 - openingVolatility - 1e-9)
		hi := l.basePrice * (1 + openingVolatility + 1e-9)
		if q.Price < lo-0.01 || q.Price > hi+0.01 {
			t.Errorf("%s: opening price %v outside [%v, %v]", q.Symbol, q.Price, lo, hi)
		}
		if q.Volume < 50000 {
			t.Errorf("%s: volume %d below floor", q.Symbol, q.Volume)
		}
		if q.Sector == "" || q.Name == "" {
			t.Errorf("%s: listing metadata missing: %+v", q.Symbol, q)
		}
	}
}

func TestSyntheticQuote(t *testing.T) {
	s := NewSynthetic()

	q, ok := s.Quote("TCS")
	if !ok {
		t.Fatal("expected TCS to be listed")
	}
	if q.Name != "Tata Consultancy Services" {
		t.Errorf("unexpected name %q", q.Name)
	}

	if _, ok := s.Quote("AAPL"); ok {
		t.Error("expected AAPL to be unlisted")
	}

	price, ok := s.Price("TCS")
	if !ok || price != q.Price {
		t.Errorf("Price disagrees with Quote: %v vs %v", price, q.Price)
	}
	if _, ok := s.Price("AAPL"); ok {
		t.Error("expected no price for unlisted symbol")
	}
}

func TestSyntheticTick(t *testing.T) {
	t.Run("reprices_within_bounds", func(t *testing.T) {
		s := NewSynthetic()
		s.now = tradingTime

		for i := 0; i < 50; i++ {
			s.Tick()
		}

		for _, q := range s.Quotes() {
			var base float64
			for _, l := range listings {
				if l.symbol == q.Symbol {
					base = l.basePrice
				}
			}
			lo := base * (1 - tickVolatility)
			hi := base * (1 + tickVolatility)
			// Quotes never ticked still carry the wider opening jitter.
			openLo := base * (1 - openingVolatility)
			openHi := base * (1 + openingVolatility)
			if lo > openLo {
				lo = openLo
			}
			if hi < openHi {
				hi = openHi
			}
			if q.Price < lo-0.01 || q.Price > hi+0.01 {
				t.Errorf("%s: price %v drifted outside [%v, %v]", q.Symbol, q.Price, lo, hi)
			}
			if q.Low > q.Price || q.High < q.Price {
				t.Errorf("%s: price %v outside high/low [%v, %v] after ticks", q.Symbol, q.Price, q.Low, q.High)
			}
		}
	})

	t.Run("noop_outside_market_hours", func(t *testing.T) {
		s := NewSynthetic()
		s.now = func() time.Time {
			return time.Date(2026, 3, 10, 20, 0, 0, 0, time.Local)
		}

		before := s.Quotes()
		for i := 0; i < 10; i++ {
			s.Tick()
		}
		after := s.Quotes()

		for i := range before {
			if before[i].Price != after[i].Price || before[i].Volume != after[i].Volume {
				t.Errorf("%s: quote changed outside market hours", before[i].Symbol)
			}
		}
	})
}

func TestMarketOpen(t *testing.T) {
	tests := []struct {
		hour int
		want bool
	}{
		{8, false},
		{9, true},
		{12, true},
		{14, true},
		{15, false},
		{23, false},
	}
	for _, tt := range tests {
		at := time.Date(2026, 3, 10, tt.hour, 30, 0, 0, time.Local)
		if got := marketOpen(at); got != tt.want {
			t.Errorf("marketOpen at %02d:30 = %v, want %v", tt.hour, got, tt.want)
		}
	}
}
