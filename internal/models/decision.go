package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	DecisionBuy  = "BUY"
	DecisionSell = "SELL"
	DecisionHold = "HOLD"
)

// AIDecisionLog is one decision event produced by the AI analysis pipeline.
// Confidence is stored raw: the pipeline has emitted categorical labels
// ("HIGH"), numbers-as-strings ("0.85") and plain numbers over time, so the
// column keeps whatever arrived and normalization happens at read time.
type AIDecisionLog struct {
	gorm.Model
	Timestamp           time.Time `gorm:"index" json:"timestamp"`
	Decision            string    `gorm:"column:ai_decision" json:"ai_decision"` // BUY, SELL or HOLD
	Confidence          string    `gorm:"column:ai_confidence" json:"ai_confidence"`
	Reason              string    `gorm:"column:ai_reason;type:text" json:"ai_reason"`
	CurrentPrice        float64   `json:"current_price"`
	KRWBalance          float64   `json:"krw_balance"`
	BTCBalance          float64   `json:"btc_balance"`
	TotalPortfolioValue float64   `json:"total_portfolio_value"`
	MarketDataJSON      string    `gorm:"type:text" json:"market_data_json,omitempty"`
}
