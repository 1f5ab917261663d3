package analytics

import (
	"btc-dashboard-go/internal/models"

	"go.uber.org/zap"
)

// PerformanceMetrics summarizes a set of trade records against the latest
// portfolio valuation. Derived on demand, never persisted.
type PerformanceMetrics struct {
	TotalTrades           int     `json:"total_trades"`
	BuyCount              int     `json:"buy_count"`
	SellCount             int     `json:"sell_count"`
	TotalBuyValue         float64 `json:"total_buy_value"`
	TotalSellValue        float64 `json:"total_sell_value"`
	TotalFees             float64 `json:"total_fees"`
	NetProfit             float64 `json:"net_profit"`
	ROI                   float64 `json:"roi"`
	CurrentPortfolioValue float64 `json:"current_portfolio_value"`
}

// Calculator computes performance metrics. The logger makes the degraded
// valuation fallbacks visible instead of silent.
type Calculator struct {
	logger *zap.Logger
}

// NewCalculator creates a metrics calculator.
func NewCalculator(logger *zap.Logger) *Calculator {
	return &Calculator{logger: logger}
}

// Compute aggregates trades and the latest snapshot into summary metrics.
// latest may be nil when no snapshot exists; lastKnownValue is the most
// recent total portfolio value the caller has seen (0 when unknown) and is
// only consulted when latest is nil. Returns ok=false for an empty trade set.
//
// ROI deliberately distinguishes realized from unrealized P&L: once any sell
// exists the result is realized (sell minus buy, snapshot ignored); with
// buys only the still-held position is marked against the snapshot.
func (c *Calculator) Compute(trades []models.Trade, latest *models.PortfolioSnapshot, lastKnownValue float64) (PerformanceMetrics, bool) {
	if len(trades) == 0 {
		return PerformanceMetrics{}, false
	}

	var m PerformanceMetrics
	m.TotalTrades = len(trades)

	for _, t := range trades {
		m.TotalFees += t.Fee
		switch t.TradeType {
		case models.TradeTypeBuy:
			m.BuyCount++
			m.TotalBuyValue += t.TotalValue
		case models.TradeTypeSell:
			m.SellCount++
			m.TotalSellValue += t.TotalValue
		}
	}

	if latest != nil {
		m.CurrentPortfolioValue = latest.TotalValue
	} else {
		m.CurrentPortfolioValue = lastKnownValue
	}

	if m.TotalBuyValue == 0 {
		// No capital deployed, ROI is undefined; report zero.
		return m, true
	}

	if m.SellCount > 0 {
		// Realized P&L from completed round trips.
		m.NetProfit = m.TotalSellValue - m.TotalBuyValue
	} else {
		// Unrealized P&L: mark the held position at the latest valuation.
		currentAssetValue := c.currentAssetValue(latest, lastKnownValue)
		m.NetProfit = currentAssetValue - m.TotalBuyValue
	}
	m.ROI = m.NetProfit / m.TotalBuyValue * 100

	return m, true
}

// currentAssetValue resolves the valuation used for the unrealized path:
// snapshot balances, then the last known portfolio value, then zero as an
// explicit last resort. The fallbacks degrade display accuracy only and are
// logged so stale valuations do not pass unnoticed.
func (c *Calculator) currentAssetValue(latest *models.PortfolioSnapshot, lastKnownValue float64) float64 {
	if latest != nil {
		return latest.BTCBalance*latest.BTCAvgPrice + latest.KRWBalance
	}
	if lastKnownValue != 0 {
		c.logger.Warn("No portfolio snapshot available, using last known portfolio value for unrealized P&L",
			zap.Float64("last_known_value", lastKnownValue))
		return lastKnownValue
	}
	c.logger.Warn("No portfolio valuation available, treating current asset value as zero")
	return 0
}
