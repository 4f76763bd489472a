package market

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"papertrade/internal/logger"
)

// listing is a tradable instrument with its reference price. The table and
// base prices mirror the NSE large caps the simulation has always offered.
type listing struct {
	symbol    string
	name      string
	sector    string
	marketCap int64
	basePrice float64
}

var listings = []listing{
	{"RELIANCE", "Reliance Industries Ltd", "Oil & Gas", 1800000, 2486.75},
	{"TCS", "Tata Consultancy Services", "Information Technology", 1500000, 3924.15},
	{"HDFCBANK", "HDFC Bank Ltd", "Financial Services", 1200000, 1634.20},
	{"INFY", "Infosys Ltd", "Information Technology", 800000, 1789.60},
	{"ICICIBANK", "ICICI Bank Ltd", "Financial Services", 700000, 1256.40},
	{"HINDUNILVR", "Hindustan Unilever Ltd", "FMCG", 600000, 2387.30},
	{"LT", "Larsen & Toubro Ltd", "Construction", 400000, 3654.80},
	{"SBIN", "State Bank of India", "Financial Services", 500000, 867.50},
	{"BHARTIARTL", "Bharti Airtel Ltd", "Telecommunications", 450000, 1654.30},
	{"KOTAKBANK", "Kotak Mahindra Bank", "Financial Services", 350000, 1735.90},
	{"ASIANPAINT", "Asian Paints Ltd", "Consumer Goods", 300000, 2456.75},
	{"WIPRO", "Wipro Ltd", "Information Technology", 250000, 298.45},
	{"MARUTI", "Maruti Suzuki India Ltd", "Automobile", 320000, 11234.50},
	{"HCLTECH", "HCL Technologies Ltd", "Information Technology", 200000, 1687.20},
	{"AXISBANK", "Axis Bank Ltd", "Financial Services", 280000, 1098.65},
}

const (
	openingVolatility = 0.01
	tickVolatility    = 0.008
	// Fraction of symbols repriced on each tick.
	tickFraction = 0.3
)

// Synthetic is a random-walk quote feed over the fixed listing table.
// Prices jitter around each listing's base price rather than drifting,
// which keeps the simulation stable across long sessions.
type Synthetic struct {
	mu     sync.RWMutex
	quotes map[string]Quote
	order  []string
	rng    *rand.Rand
	now    func() time.Time
}

// NewSynthetic creates a feed with an opening quote for every listing.
func NewSynthetic() *Synthetic {
	s := &Synthetic{
		quotes: make(map[string]Quote, len(listings)),
		order:  make([]string, 0, len(listings)),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		now:    time.Now,
	}
	for _, l := range listings {
		price, change, changePct := s.reprice(l.basePrice, openingVolatility)
		s.quotes[l.symbol] = Quote{
			Symbol:        l.symbol,
			Name:          l.name,
			Price:         price,
			Change:        change,
			ChangePercent: changePct,
			Volume:        s.rng.Int63n(1000000) + 50000,
			High:          price * (1 + s.rng.Float64()*0.03),
			Low:           price * (1 - s.rng.Float64()*0.03),
			Open:          price * (1 + (s.rng.Float64()-0.5)*0.02),
			MarketCap:     l.marketCap,
			Sector:        l.sector,
			LastUpdate:    s.now(),
		}
		s.order = append(s.order, l.symbol)
	}
	return s
}

// reprice draws a new price around base with the given volatility.
func (s *Synthetic) reprice(base, volatility float64) (price, change, changePct float64) {
	factor := (s.rng.Float64() - 0.5) * 2
	change = base * volatility * factor
	price = math.Round((base+change)*100) / 100
	change = math.Round(change*100) / 100
	changePct = math.Round(change/base*100*100) / 100
	return price, change, changePct
}

// Tick reprices a random subset of listings. No-op outside market hours.
func (s *Synthetic) Tick() {
	now := s.now()
	if !marketOpen(now) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range listings {
		if s.rng.Float64() > tickFraction {
			continue
		}
		q := s.quotes[l.symbol]
		q.Price, q.Change, q.ChangePercent = s.reprice(l.basePrice, tickVolatility)
		if q.Price > q.High {
			q.High = q.Price
		}
		if q.Price < q.Low {
			q.Low = q.Price
		}
		q.Volume += s.rng.Int63n(10000)
		q.LastUpdate = now
		s.quotes[l.symbol] = q
	}
}

// Run reprices the feed on the given interval until ctx is cancelled.
func (s *Synthetic) Run(ctx context.Context, interval time.Duration) {
	log := logger.Get()
	log.Infow("synthetic market feed started", "symbols", len(listings), "interval", interval.String())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info("synthetic market feed stopped")
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Quotes implements Feed.
func (s *Synthetic) Quotes() []Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Quote, 0, len(s.order))
	for _, symbol := range s.order {
		out = append(out, s.quotes[symbol])
	}
	return out
}

// Quote implements Feed.
func (s *Synthetic) Quote(symbol string) (Quote, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.quotes[symbol]
	return q, ok
}

// Price implements Feed.
func (s *Synthetic) Price(symbol string) (float64, bool) {
	q, ok := s.Quote(symbol)
	if !ok {
		return 0, false
	}
	return q.Price, true
}
