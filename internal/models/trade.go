package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	TradeTypeBuy  = "buy"
	TradeTypeSell = "sell"
)

// Trade represents one executed trade recorded by the execution subsystem.
// The dashboard only ever reads these rows.
type Trade struct {
	gorm.Model
	Timestamp  time.Time `gorm:"index" json:"timestamp"`
	TradeType  string    `gorm:"not null" json:"trade_type"` // "buy" or "sell"
	Price      float64   `json:"price"`
	Amount     float64   `json:"amount"`
	TotalValue float64   `json:"total_value"`
	Fee        float64   `json:"fee"`
	Success    bool      `json:"success"`
}
