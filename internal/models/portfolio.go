package models

import (
	"time"

	"gorm.io/gorm"
)

// PortfolioSnapshot is one periodic valuation of the account.
// The most recent snapshot is authoritative for the "current" valuation.
type PortfolioSnapshot struct {
	gorm.Model
	Date        time.Time `gorm:"index" json:"date"`
	TotalValue  float64   `json:"total_value"`
	KRWBalance  float64   `json:"krw_balance"`
	BTCBalance  float64   `json:"btc_balance"`
	BTCAvgPrice float64   `json:"btc_avg_price"`
}
