package store

import (
	"fmt"
	"time"

	"btc-dashboard-go/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TradingStats is the aggregate view over the whole trade log.
type TradingStats struct {
	TotalTrades      int64   `json:"total_trades"`
	SuccessfulTrades int64   `json:"successful_trades"`
	FailedTrades     int64   `json:"failed_trades"`
	WinRate          float64 `json:"win_rate"`
}

// Store is the read accessor over the trading log database. The log is owned
// by the execution subsystem; the dashboard never writes to it.
type Store struct {
	db *gorm.DB
}

// NewStore opens the trading log database and ensures the schema exists.
func NewStore(dsn string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Create missing tables only; existing log data is never dropped.
	if err := db.AutoMigrate(
		&models.Trade{},
		&models.PortfolioSnapshot{},
		&models.AIDecisionLog{},
		&models.Reflection{},
	); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	return &Store{db: db}, nil
}

// NewStoreWithDB wraps an existing gorm connection, mainly for tests.
func NewStoreWithDB(db *gorm.DB) *Store {
	return &Store{db: db}
}

// GetTradesByDate returns trades in [start, end], most recent first.
func (s *Store) GetTradesByDate(start, end time.Time) ([]models.Trade, error) {
	var trades []models.Trade
	err := s.db.
		Where("timestamp >= ? AND timestamp <= ?", start, end).
		Order("timestamp desc").
		Find(&trades).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	return trades, nil
}

// GetPortfolioHistory returns the n most recent portfolio snapshots, most
// recent first.
func (s *Store) GetPortfolioHistory(n int) ([]models.PortfolioSnapshot, error) {
	var snapshots []models.PortfolioSnapshot
	err := s.db.Order("date desc").Limit(n).Find(&snapshots).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio history: %w", err)
	}
	return snapshots, nil
}

// GetRecentLogs returns the n most recent AI decision records, most recent
// first.
func (s *Store) GetRecentLogs(n int) ([]models.AIDecisionLog, error) {
	var logs []models.AIDecisionLog
	err := s.db.Order("timestamp desc").Limit(n).Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query decision logs: %w", err)
	}
	return logs, nil
}

// GetTradingStats aggregates success/failure counts over the whole log.
func (s *Store) GetTradingStats() (TradingStats, error) {
	var stats TradingStats
	if err := s.db.Model(&models.Trade{}).Count(&stats.TotalTrades).Error; err != nil {
		return TradingStats{}, fmt.Errorf("failed to count trades: %w", err)
	}
	if err := s.db.Model(&models.Trade{}).Where("success = ?", true).Count(&stats.SuccessfulTrades).Error; err != nil {
		return TradingStats{}, fmt.Errorf("failed to count successful trades: %w", err)
	}
	stats.FailedTrades = stats.TotalTrades - stats.SuccessfulTrades
	if stats.TotalTrades > 0 {
		stats.WinRate = float64(stats.SuccessfulTrades) / float64(stats.TotalTrades) * 100
	}
	return stats, nil
}

// GetRecentReflections returns the n most recent AI self-review records.
func (s *Store) GetRecentReflections(n int) ([]models.Reflection, error) {
	var reflections []models.Reflection
	err := s.db.Order("reflection_date desc").Limit(n).Find(&reflections).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query reflections: %w", err)
	}
	return reflections, nil
}
