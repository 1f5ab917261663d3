package store

import (
	"time"

	"btc-dashboard-go/internal/cache"
	"btc-dashboard-go/internal/models"
)

// Cache keys for the trading-log query classes.
const (
	KeyRecentTrades      = "recent_trades"
	KeyPortfolioHistory  = "portfolio_history"
	KeyRecentLogs        = "recent_logs"
	KeyTradingStats      = "trading_stats"
	KeyRecentReflections = "recent_reflections"
)

// DatabaseKeys lists every trading-log cache key, for bulk invalidation.
var DatabaseKeys = []string{
	KeyRecentTrades,
	KeyPortfolioHistory,
	KeyRecentLogs,
	KeyTradingStats,
	KeyRecentReflections,
}

// CachedStore wraps a Store behind the TTL cache so repeated renders within
// the validity window reuse the previously fetched records.
type CachedStore struct {
	store *Store
	cache *cache.Cache
}

// NewCachedStore wraps store with the given cache.
func NewCachedStore(store *Store, c *cache.Cache) *CachedStore {
	return &CachedStore{store: store, cache: c}
}

// Invalidate forces the next read of every trading-log query to hit the
// database again.
func (c *CachedStore) Invalidate() {
	c.cache.Invalidate(DatabaseKeys...)
}

func (c *CachedStore) GetTradesByDate(start, end time.Time) ([]models.Trade, error) {
	v, err := c.cache.GetOrFetch(KeyRecentTrades, func() (any, error) {
		return c.store.GetTradesByDate(start, end)
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Trade), nil
}

func (c *CachedStore) GetPortfolioHistory(n int) ([]models.PortfolioSnapshot, error) {
	v, err := c.cache.GetOrFetch(KeyPortfolioHistory, func() (any, error) {
		return c.store.GetPortfolioHistory(n)
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.PortfolioSnapshot), nil
}

func (c *CachedStore) GetRecentLogs(n int) ([]models.AIDecisionLog, error) {
	v, err := c.cache.GetOrFetch(KeyRecentLogs, func() (any, error) {
		return c.store.GetRecentLogs(n)
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.AIDecisionLog), nil
}

func (c *CachedStore) GetTradingStats() (TradingStats, error) {
	v, err := c.cache.GetOrFetch(KeyTradingStats, func() (any, error) {
		return c.store.GetTradingStats()
	})
	if err != nil {
		return TradingStats{}, err
	}
	return v.(TradingStats), nil
}

func (c *CachedStore) GetRecentReflections(n int) ([]models.Reflection, error) {
	v, err := c.cache.GetOrFetch(KeyRecentReflections, func() (any, error) {
		return c.store.GetRecentReflections(n)
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Reflection), nil
}
