package models

// Position represents an open holding. The composite unique index enforces
// at most one open position per (user, symbol).
type Position struct {
	Base
	UserID        uint    `gorm:"not null;uniqueIndex:uq_positions_user_symbol" json:"user_id"`
	Symbol        string  `gorm:"not null;uniqueIndex:uq_positions_user_symbol" json:"symbol"`
	Name          string  `gorm:"not null" json:"name"`
	Quantity      int64   `gorm:"not null" json:"quantity"`
	AvgPrice      float64 `gorm:"not null" json:"avg_price"`
	InvestedValue float64 `gorm:"not null" json:"invested_value"`
	CurrentPrice  float64 `gorm:"not null" json:"current_price"`
}
