package market

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"papertrade/internal/logger"
)

const (
	alphaVantageBaseURL = "https://www.alphavantage.co"
	quoteTimeout        = 5 * time.Second
)

// globalQuoteResponse is the Alpha Vantage GLOBAL_QUOTE payload. The API
// prefixes field names with ordinal numbers.
type globalQuoteResponse struct {
	GlobalQuote struct {
		Symbol        string `json:"01. symbol"`
		Price         string `json:"05. price"`
		Change        string `json:"09. change"`
		ChangePercent string `json:"10. change percent"`
	} `json:"Global Quote"`
}

// AlphaVantage fetches live quotes from the Alpha Vantage GLOBAL_QUOTE
// endpoint. Plain symbols are suffixed with .BSE, matching how the
// simulation's Indian listings are keyed there.
type AlphaVantage struct {
	client *resty.Client
	apiKey string
}

// NewAlphaVantage creates a live quote provider using the given API key.
func NewAlphaVantage(apiKey string) *AlphaVantage {
	client := resty.New().
		SetBaseURL(alphaVantageBaseURL).
		SetTimeout(quoteTimeout).
		SetRetryCount(1)
	return &AlphaVantage{client: client, apiKey: apiKey}
}

// GlobalQuote fetches the current quote for symbol. Returns an error when
// the API is unreachable, the key is missing, or no quote exists.
func (p *AlphaVantage) GlobalQuote(ctx context.Context, symbol string) (price, change, changePct float64, err error) {
	if p.apiKey == "" {
		return 0, 0, 0, fmt.Errorf("alpha vantage: api key not configured")
	}

	avSymbol := symbol
	if !strings.Contains(symbol, ".") {
		avSymbol = symbol + ".BSE"
	}

	var body globalQuoteResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"function": "GLOBAL_QUOTE",
			"symbol":   avSymbol,
			"apikey":   p.apiKey,
		}).
		SetResult(&body).
		Get("/query")
	if err != nil {
		return 0, 0, 0, fmt.Errorf("alpha vantage: %w", err)
	}
	if resp.IsError() {
		return 0, 0, 0, fmt.Errorf("alpha vantage: status %d", resp.StatusCode())
	}

	price, err = strconv.ParseFloat(body.GlobalQuote.Price, 64)
	if err != nil || price <= 0 {
		return 0, 0, 0, fmt.Errorf("alpha vantage: no quote for %s", symbol)
	}
	change, _ = strconv.ParseFloat(body.GlobalQuote.Change, 64)
	changePct, _ = strconv.ParseFloat(strings.TrimSuffix(body.GlobalQuote.ChangePercent, "%"), 64)
	return price, change, changePct, nil
}

// Live layers the Alpha Vantage provider over a fallback feed. Quote
// lookups try the live provider first and fall back to the stale synthetic
// quote on any failure, so a provider outage never blocks trading.
type Live struct {
	fallback Feed
	provider *AlphaVantage
}

// NewLive creates a live feed over the given fallback.
func NewLive(provider *AlphaVantage, fallback Feed) *Live {
	return &Live{fallback: fallback, provider: provider}
}

// Quotes implements Feed. The listing table comes from the fallback feed;
// live pricing is per-symbol on demand.
func (l *Live) Quotes() []Quote { return l.fallback.Quotes() }

// Quote implements Feed.
func (l *Live) Quote(symbol string) (Quote, bool) {
	q, ok := l.fallback.Quote(symbol)
	if !ok {
		return Quote{}, false
	}

	ctx, cancel := context.WithTimeout(context.Background(), quoteTimeout)
	defer cancel()

	price, change, changePct, err := l.provider.GlobalQuote(ctx, symbol)
	if err != nil {
		logger.Get().Warnw("live quote failed, serving stale price", "symbol", symbol, "error", err.Error())
		return q, true
	}

	q.Price = price
	q.Change = change
	q.ChangePercent = changePct
	q.LastUpdate = time.Now()
	return q, true
}

// Price implements Feed.
func (l *Live) Price(symbol string) (float64, bool) {
	q, ok := l.Quote(symbol)
	if !ok {
		return 0, false
	}
	return q.Price, true
}
