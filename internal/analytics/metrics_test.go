package analytics

import (
	"testing"

	"btc-dashboard-go/internal/models"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func buy(value, fee float64) models.Trade {
	return models.Trade{TradeType: models.TradeTypeBuy, TotalValue: value, Fee: fee}
}

func sell(value, fee float64) models.Trade {
	return models.Trade{TradeType: models.TradeTypeSell, TotalValue: value, Fee: fee}
}

func TestComputeEmptyTrades(t *testing.T) {
	calc := NewCalculator(zap.NewNop())

	_, ok := calc.Compute(nil, nil, 0)
	assert.False(t, ok)
}

func TestCompute(t *testing.T) {
	snapshot := &models.PortfolioSnapshot{
		TotalValue:  1_500_000,
		KRWBalance:  0,
		BTCBalance:  0.01,
		BTCAvgPrice: 150_000_000,
	}

	testCases := []struct {
		name          string
		trades        []models.Trade
		latest        *models.PortfolioSnapshot
		lastKnown     float64
		expectedNet   float64
		expectedROI   float64
		expectedValue float64
	}{
		{
			name:          "Realized path ignores snapshot",
			trades:        []models.Trade{buy(1_000_000, 500), sell(1_200_000, 600)},
			latest:        snapshot,
			expectedNet:   200_000,
			expectedROI:   20.0,
			expectedValue: 1_500_000,
		},
		{
			name:          "Unrealized path marks position at snapshot",
			trades:        []models.Trade{buy(1_000_000, 500)},
			latest:        snapshot,
			expectedNet:   500_000,
			expectedROI:   50.0,
			expectedValue: 1_500_000,
		},
		{
			name:          "No snapshot falls back to last known value",
			trades:        []models.Trade{buy(1_000_000, 500)},
			latest:        nil,
			lastKnown:     1_100_000,
			expectedNet:   100_000,
			expectedROI:   10.0,
			expectedValue: 1_100_000,
		},
		{
			name:          "No valuation at all treats current value as zero",
			trades:        []models.Trade{buy(1_000_000, 500)},
			latest:        nil,
			lastKnown:     0,
			expectedNet:   -1_000_000,
			expectedROI:   -100.0,
			expectedValue: 0,
		},
		{
			name:          "Zero buy value yields zero ROI regardless of sells",
			trades:        []models.Trade{sell(1_200_000, 600)},
			latest:        snapshot,
			expectedNet:   0,
			expectedROI:   0,
			expectedValue: 1_500_000,
		},
	}

	calc := NewCalculator(zap.NewNop())

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			metrics, ok := calc.Compute(tc.trades, tc.latest, tc.lastKnown)

			assert.True(t, ok)
			assert.InDelta(t, tc.expectedNet, metrics.NetProfit, 0.01)
			assert.InDelta(t, tc.expectedROI, metrics.ROI, 0.01)
			assert.InDelta(t, tc.expectedValue, metrics.CurrentPortfolioValue, 0.01)
		})
	}
}

func TestComputeCounts(t *testing.T) {
	trades := []models.Trade{
		buy(1_000_000, 500),
		buy(500_000, 250),
		sell(800_000, 400),
	}

	calc := NewCalculator(zap.NewNop())
	metrics, ok := calc.Compute(trades, nil, 0)

	assert.True(t, ok)
	assert.Equal(t, 3, metrics.TotalTrades)
	assert.Equal(t, 2, metrics.BuyCount)
	assert.Equal(t, 1, metrics.SellCount)
	assert.Equal(t, metrics.TotalTrades, metrics.BuyCount+metrics.SellCount)
	assert.InDelta(t, 1_500_000, metrics.TotalBuyValue, 0.01)
	assert.InDelta(t, 800_000, metrics.TotalSellValue, 0.01)
	assert.InDelta(t, 1150, metrics.TotalFees, 0.01)
}
