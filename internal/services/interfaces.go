package services

import (
	"context"

	"papertrade/internal/ledger"
	"papertrade/internal/models"
	"papertrade/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
	TouchLastLogin(userID uint) error
}

// OrderInput is a validated order submission from the API layer. Price is
// the client's view of the market price for MARKET orders (used as a
// fallback when the feed has no quote) and the limit price for LIMIT orders.
type OrderInput struct {
	Symbol   string
	Name     string
	Side     ledger.Side
	Type     ledger.OrderType
	Quantity int64
	Price    float64
}

// TradingServicer defines the contract for portfolio and order operations.
type TradingServicer interface {
	PlaceOrder(ctx context.Context, userID uint, input OrderInput) (*ledger.Confirmation, error)
	GetPortfolio(ctx context.Context, userID uint) (*ledger.PortfolioView, error)
	GetOrders(ctx context.Context, userID uint, page pagination.PageRequest) (*pagination.PageResponse[ledger.Order], error)
	ResetPortfolio(ctx context.Context, userID uint) error
	RefreshPrices(ctx context.Context, userID uint) (*ledger.PortfolioView, error)
}
