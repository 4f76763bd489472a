package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"papertrade/internal/ledger"
	"papertrade/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestPortfolio creates a portfolio row with the initial cash balance.
func CreateTestPortfolio(t *testing.T, db *gorm.DB, userID uint) *models.Portfolio {
	t.Helper()
	return CreateTestPortfolioWithCash(t, db, userID, ledger.InitialCash)
}

// CreateTestPortfolioWithCash creates a portfolio row with the given cash balance.
func CreateTestPortfolioWithCash(t *testing.T, db *gorm.DB, userID uint, cash float64) *models.Portfolio {
	t.Helper()

	portfolio := &models.Portfolio{
		UserID:        userID,
		AvailableCash: cash,
	}
	if err := db.Create(portfolio).Error; err != nil {
		t.Fatalf("failed to create test portfolio: %v", err)
	}
	return portfolio
}

// CreateTestPosition creates an open position for the given symbol.
func CreateTestPosition(t *testing.T, db *gorm.DB, userID uint, symbol string, quantity int64, avgPrice float64) *models.Position {
	t.Helper()

	position := &models.Position{
		UserID:        userID,
		Symbol:        symbol,
		Name:          fmt.Sprintf("%s Ltd", symbol),
		Quantity:      quantity,
		AvgPrice:      avgPrice,
		InvestedValue: float64(quantity) * avgPrice,
		CurrentPrice:  avgPrice,
	}
	if err := db.Create(position).Error; err != nil {
		t.Fatalf("failed to create test position: %v", err)
	}
	return position
}

// CreateTestOrder creates an executed order record.
func CreateTestOrder(t *testing.T, db *gorm.DB, userID uint, symbol, side string, quantity int64, price float64) *models.Order {
	t.Helper()

	gross := float64(quantity) * price
	fee := ledger.Brokerage(gross)
	total := gross + fee
	if side == "SELL" {
		total = gross - fee
	}

	order := &models.Order{
		UserID:      userID,
		Symbol:      symbol,
		Name:        fmt.Sprintf("%s Ltd", symbol),
		Side:        side,
		OrderType:   "MARKET",
		Quantity:    quantity,
		Price:       price,
		Status:      "EXECUTED",
		Timestamp:   time.Now().UTC(),
		Brokerage:   fee,
		TotalAmount: total,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("failed to create test order: %v", err)
	}
	return order
}
