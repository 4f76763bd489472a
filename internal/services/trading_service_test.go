package services

import (
	"context"
	"testing"

	"papertrade/internal/ledger"
	"papertrade/internal/market"
	"papertrade/internal/pagination"
	"papertrade/internal/store"
	"papertrade/internal/testutil"
)

// stubFeed serves fixed prices for a map of symbols.
type stubFeed struct {
	prices map[string]float64
}

func (f *stubFeed) Quotes() []market.Quote { return nil }

func (f *stubFeed) Quote(symbol string) (market.Quote, bool) {
	price, ok := f.prices[symbol]
	if !ok {
		return market.Quote{}, false
	}
	return market.Quote{Symbol: symbol, Price: price}, true
}

func (f *stubFeed) Price(symbol string) (float64, bool) {
	price, ok := f.prices[symbol]
	return price, ok
}

func newTradingFixture(prices map[string]float64) TradingServicer {
	return NewTradingService(store.NewMemory(), &stubFeed{prices: prices})
}

func marketBuy(symbol string, qty int64, price float64) OrderInput {
	return OrderInput{
		Symbol:   symbol,
		Name:     symbol + " Ltd",
		Side:     ledger.SideBuy,
		Type:     ledger.OrderTypeMarket,
		Quantity: qty,
		Price:    price,
	}
}

func TestTradingPlaceOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("market_order_executes_at_feed_price", func(t *testing.T) {
		svc := newTradingFixture(map[string]float64{"TCS": 105})

		// The client submitted a stale price of 100; the feed wins.
		conf, err := svc.PlaceOrder(ctx, 1, marketBuy("TCS", 10, 100))
		testutil.AssertNoError(t, err)
		testutil.AssertMoneyEqual(t, "executed price", conf.ExecutedPrice, 105)
		testutil.AssertMoneyEqual(t, "total amount", conf.TotalAmount, 1070)
	})

	t.Run("market_order_falls_back_to_client_price", func(t *testing.T) {
		svc := newTradingFixture(map[string]float64{})

		conf, err := svc.PlaceOrder(ctx, 1, marketBuy("UNLISTED", 10, 100))
		testutil.AssertNoError(t, err)
		testutil.AssertMoneyEqual(t, "executed price", conf.ExecutedPrice, 100)
	})

	t.Run("limit_order_ignores_feed_price", func(t *testing.T) {
		svc := newTradingFixture(map[string]float64{"TCS": 105})

		input := marketBuy("TCS", 10, 98)
		input.Type = ledger.OrderTypeLimit
		conf, err := svc.PlaceOrder(ctx, 1, input)
		testutil.AssertNoError(t, err)
		testutil.AssertMoneyEqual(t, "executed price", conf.ExecutedPrice, 98)
	})

	t.Run("market_order_without_any_price", func(t *testing.T) {
		svc := newTradingFixture(map[string]float64{})

		_, err := svc.PlaceOrder(ctx, 1, marketBuy("UNLISTED", 10, 0))
		testutil.AssertAppError(t, err, "QUOTE_UNAVAILABLE")
	})

	t.Run("validation_errors_propagate", func(t *testing.T) {
		svc := newTradingFixture(map[string]float64{"TCS": 105})

		_, err := svc.PlaceOrder(ctx, 1, marketBuy("TCS", 0, 0))
		testutil.AssertAppError(t, err, "INVALID_QUANTITY")
	})
}

func TestTradingGetPortfolio(t *testing.T) {
	ctx := context.Background()
	svc := newTradingFixture(map[string]float64{"TCS": 110})

	_, err := svc.PlaceOrder(ctx, 1, marketBuy("TCS", 10, 0))
	testutil.AssertNoError(t, err)

	view, err := svc.GetPortfolio(ctx, 1)
	testutil.AssertNoError(t, err)

	// Bought 10 at the feed price of 110: gross 1100, fee 20.
	testutil.AssertMoneyEqual(t, "available cash", view.AvailableCash, ledger.InitialCash-1120)
	testutil.AssertMoneyEqual(t, "invested amount", view.InvestedAmount, 1100)
	testutil.AssertMoneyEqual(t, "total pnl", view.TotalPnL, 0)
	if len(view.Positions) != 1 {
		t.Fatalf("expected 1 position, got %d", len(view.Positions))
	}
	if len(view.Orders) != 1 {
		t.Fatalf("expected 1 recent order, got %d", len(view.Orders))
	}
	if view.Orders[0].Side != ledger.SideBuy {
		t.Errorf("unexpected order %+v", view.Orders[0])
	}
}

func TestTradingGetOrders(t *testing.T) {
	ctx := context.Background()
	svc := newTradingFixture(map[string]float64{"TCS": 100})

	for i := 0; i < 5; i++ {
		_, err := svc.PlaceOrder(ctx, 1, marketBuy("TCS", 1, 0))
		testutil.AssertNoError(t, err)
	}

	t.Run("defaults", func(t *testing.T) {
		page, err := svc.GetOrders(ctx, 1, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if page.Page != 1 || page.PageSize != 20 {
			t.Errorf("expected default paging 1/20, got %d/%d", page.Page, page.PageSize)
		}
		if page.TotalItems != 5 || len(page.Data) != 5 {
			t.Errorf("expected all 5 orders, got total=%d len=%d", page.TotalItems, len(page.Data))
		}
	})

	t.Run("paged", func(t *testing.T) {
		page, err := svc.GetOrders(ctx, 1, pagination.PageRequest{Page: 2, PageSize: 2})
		testutil.AssertNoError(t, err)
		if len(page.Data) != 2 {
			t.Errorf("expected 2 orders on page 2, got %d", len(page.Data))
		}
		if page.TotalPages != 3 {
			t.Errorf("expected 3 total pages, got %d", page.TotalPages)
		}
	})
}

func TestTradingResetPortfolio(t *testing.T) {
	ctx := context.Background()
	svc := newTradingFixture(map[string]float64{"TCS": 100})

	_, err := svc.PlaceOrder(ctx, 1, marketBuy("TCS", 10, 0))
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, svc.ResetPortfolio(ctx, 1))

	view, err := svc.GetPortfolio(ctx, 1)
	testutil.AssertNoError(t, err)
	testutil.AssertMoneyEqual(t, "cash", view.AvailableCash, ledger.InitialCash)
	if len(view.Positions) != 0 || len(view.Orders) != 0 {
		t.Errorf("expected empty portfolio, got %d positions %d orders", len(view.Positions), len(view.Orders))
	}
}

func TestTradingRefreshPrices(t *testing.T) {
	ctx := context.Background()
	feed := &stubFeed{prices: map[string]float64{"TCS": 100}}
	svc := NewTradingService(store.NewMemory(), feed)

	_, err := svc.PlaceOrder(ctx, 1, marketBuy("TCS", 10, 0))
	testutil.AssertNoError(t, err)

	feed.prices["TCS"] = 130
	view, err := svc.RefreshPrices(ctx, 1)
	testutil.AssertNoError(t, err)

	if len(view.Positions) != 1 {
		t.Fatalf("expected 1 position, got %d", len(view.Positions))
	}
	pos := view.Positions[0]
	testutil.AssertMoneyEqual(t, "refreshed price", pos.CurrentPrice, 130)
	testutil.AssertMoneyEqual(t, "pnl", pos.PnL, 300)
	// Cost basis survives the refresh.
	testutil.AssertMoneyEqual(t, "invested value", pos.InvestedValue, 1000)
}
