package models

import (
	"time"

	"gorm.io/gorm"
)

// Reflection is a periodic AI self-review over a window of past trades.
// It is consumed as-is for display.
type Reflection struct {
	gorm.Model
	ReflectionDate         time.Time `gorm:"index" json:"reflection_date"`
	AnalysisPeriodStart    time.Time `json:"analysis_period_start"`
	AnalysisPeriodEnd      time.Time `json:"analysis_period_end"`
	TotalTradesAnalyzed    int       `json:"total_trades_analyzed"`
	SuccessfulTrades       int       `json:"successful_trades"`
	FailedTrades           int       `json:"failed_trades"`
	WinRate                float64   `json:"win_rate"`
	TotalProfitLoss        float64   `json:"total_profit_loss"`
	ReflectionContent      string    `gorm:"type:text" json:"reflection_content"`
	LessonsLearned         string    `gorm:"type:text" json:"lessons_learned,omitempty"`
	ImprovementSuggestions string    `gorm:"type:text" json:"improvement_suggestions,omitempty"`
}
