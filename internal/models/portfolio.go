package models

// Portfolio holds a user's available (uninvested) cash. One row per user,
// created with the initial virtual balance the first time the user's
// portfolio is touched. Only the ledger mutates it.
type Portfolio struct {
	Base
	UserID        uint    `gorm:"uniqueIndex;not null" json:"user_id"`
	AvailableCash float64 `gorm:"not null" json:"available_cash"`
}
