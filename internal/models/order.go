package models

import (
	"time"

	"gorm.io/gorm"

	"papertrade/internal/uuid"
)

// Order is one executed order in the append-only order log. Immutable
// time-series data, so there is no Base embed and no soft delete. The UUIDv7 primary
// key keeps the log chronologically ordered by id.
type Order struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index:idx_orders_user_time,priority:1" json:"user_id"`
	Symbol      string    `gorm:"not null" json:"symbol"`
	Name        string    `gorm:"not null" json:"name"`
	Side        string    `gorm:"not null" json:"type"`
	OrderType   string    `gorm:"not null" json:"order_type"`
	Quantity    int64     `gorm:"not null" json:"quantity"`
	Price       float64   `gorm:"not null" json:"price"`
	Status      string    `gorm:"not null" json:"status"`
	Timestamp   time.Time `gorm:"not null;index:idx_orders_user_time,priority:2,sort:desc" json:"timestamp"`
	Brokerage   float64   `gorm:"not null" json:"brokerage"`
	TotalAmount float64   `gorm:"not null" json:"total_amount"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New()
	}
	return nil
}
