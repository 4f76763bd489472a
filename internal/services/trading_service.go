package services

import (
	"context"

	"papertrade/internal/ledger"
	"papertrade/internal/market"
	"papertrade/internal/pagination"
)

// Number of recent orders embedded in a portfolio view.
const portfolioOrderLimit = 50

// tradingService orchestrates the ledger and the market feed. It resolves
// execution prices before invoking the ledger, so the ledger stays free of
// market-data concerns.
type tradingService struct {
	ledger *ledger.Ledger
	store  ledger.Store
	feed   market.Feed
}

// NewTradingService creates a new TradingServicer.
func NewTradingService(store ledger.Store, feed market.Feed) TradingServicer {
	return &tradingService{
		ledger: ledger.New(store),
		store:  store,
		feed:   feed,
	}
}

// PlaceOrder resolves the execution price and executes the order. MARKET
// orders execute at the feed's current price, falling back to the price
// submitted by the client when the symbol is not listed on the feed; LIMIT
// orders execute at the limit price.
func (s *tradingService) PlaceOrder(ctx context.Context, userID uint, input OrderInput) (*ledger.Confirmation, error) {
	executionPrice := input.Price
	if input.Type == ledger.OrderTypeMarket {
		if price, ok := s.feed.Price(input.Symbol); ok {
			executionPrice = price
		}
	}

	return s.ledger.PlaceOrder(ctx, userID, ledger.OrderRequest{
		Symbol:   input.Symbol,
		Name:     input.Name,
		Side:     input.Side,
		Type:     input.Type,
		Quantity: input.Quantity,
		Price:    executionPrice,
	})
}

// GetPortfolio returns the valuated portfolio with recent orders attached.
func (s *tradingService) GetPortfolio(ctx context.Context, userID uint) (*ledger.PortfolioView, error) {
	cash, positions, err := s.store.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := ledger.Valuate(cash, positions, s.feed.Price)

	orders, _, err := s.store.Orders(ctx, userID, portfolioOrderLimit, 0)
	if err != nil {
		return nil, err
	}
	view.Orders = orders
	return &view, nil
}

// GetOrders returns a page of the user's order history, newest first.
func (s *tradingService) GetOrders(ctx context.Context, userID uint, page pagination.PageRequest) (*pagination.PageResponse[ledger.Order], error) {
	page.Defaults()

	orders, total, err := s.store.Orders(ctx, userID, page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}

	result := pagination.NewPageResponse(orders, page.Page, page.PageSize, total)
	return &result, nil
}

// ResetPortfolio restores the user's ledger to its initial state.
func (s *tradingService) ResetPortfolio(ctx context.Context, userID uint) error {
	return s.ledger.Reset(ctx, userID)
}

// RefreshPrices overwrites stored position prices from the feed and
// returns the refreshed portfolio.
func (s *tradingService) RefreshPrices(ctx context.Context, userID uint) (*ledger.PortfolioView, error) {
	if err := s.ledger.Refresh(ctx, userID, s.feed.Price); err != nil {
		return nil, err
	}
	return s.GetPortfolio(ctx, userID)
}
