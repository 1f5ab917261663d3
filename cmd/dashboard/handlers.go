package main

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"btc-dashboard-go/internal/analytics"
	"btc-dashboard-go/internal/cache"
	"btc-dashboard-go/internal/config"
	"btc-dashboard-go/internal/market"
	"btc-dashboard-go/internal/models"
	"btc-dashboard-go/internal/store"

	"go.uber.org/zap"
)

// keyMarketData caches the live market read separately from the trading-log
// reads; it carries the shorter TTL.
const keyMarketData = "market_data"

// APIHandler holds dependencies for the API endpoints.
type APIHandler struct {
	log    *zap.Logger
	store  *store.CachedStore
	cache  *cache.Cache
	market market.ClientInterface
	calc   *analytics.Calculator
	cfg    *config.Config

	startTime time.Time

	// lastKnownValue remembers the most recent total portfolio value seen by
	// a successful history read, so the metrics calculator has a degraded
	// valuation to fall back on when the snapshot read fails.
	mu             sync.Mutex
	lastKnownValue float64
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(log *zap.Logger, cached *store.CachedStore, c *cache.Cache, mkt market.ClientInterface, cfg *config.Config) *APIHandler {
	return &APIHandler{
		log:       log,
		store:     cached,
		cache:     c,
		market:    mkt,
		calc:      analytics.NewCalculator(log),
		cfg:       cfg,
		startTime: time.Now(),
	}
}

func (h *APIHandler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("Failed to encode response", zap.Error(err))
	}
}

// writeUnavailable renders the degraded "no data" state. A failed backing
// read never turns into a hard failure; the caller shows a warning instead.
func (h *APIHandler) writeUnavailable(w http.ResponseWriter, section string, err error) {
	h.log.Warn("Data unavailable for section", zap.String("section", section), zap.Error(err))
	h.writeJSON(w, map[string]any{
		"status":  "unavailable",
		"section": section,
	})
}

// tradeWindow is the query window for trade history.
func (h *APIHandler) tradeWindow() (time.Time, time.Time) {
	end := time.Now()
	start := end.AddDate(0, 0, -h.cfg.Dashboard.TradeWindowDays)
	return start, end
}

// latestSnapshot resolves the most recent portfolio snapshot, updating the
// remembered last known value on success.
func (h *APIHandler) latestSnapshot() (latest *models.PortfolioSnapshot, lastKnown float64) {
	h.mu.Lock()
	lastKnown = h.lastKnownValue
	h.mu.Unlock()

	history, err := h.store.GetPortfolioHistory(h.cfg.Dashboard.PortfolioLimit)
	if err != nil || len(history) == 0 {
		if err != nil {
			h.log.Warn("Failed to load portfolio history, falling back to last known value",
				zap.Float64("last_known_value", lastKnown), zap.Error(err))
		}
		return nil, lastKnown
	}

	snap := history[0]
	h.mu.Lock()
	h.lastKnownValue = snap.TotalValue
	h.mu.Unlock()
	return &snap, snap.TotalValue
}

// PerformanceHandler computes and returns the performance metrics summary.
func (h *APIHandler) PerformanceHandler(w http.ResponseWriter, r *http.Request) {
	start, end := h.tradeWindow()
	trades, err := h.store.GetTradesByDate(start, end)
	if err != nil {
		h.writeUnavailable(w, "performance", err)
		return
	}

	latest, lastKnown := h.latestSnapshot()
	metrics, ok := h.calc.Compute(trades, latest, lastKnown)
	if !ok {
		h.writeJSON(w, map[string]any{"status": "empty"})
		return
	}

	h.writeJSON(w, map[string]any{
		"status":  "success",
		"metrics": metrics,
	})
}

// TradesHandler returns the recent trade history, most recent first.
func (h *APIHandler) TradesHandler(w http.ResponseWriter, r *http.Request) {
	start, end := h.tradeWindow()
	trades, err := h.store.GetTradesByDate(start, end)
	if err != nil {
		h.writeUnavailable(w, "trades", err)
		return
	}
	h.writeJSON(w, map[string]any{
		"status": "success",
		"trades": trades,
	})
}

// PortfolioHandler returns the portfolio snapshot history.
func (h *APIHandler) PortfolioHandler(w http.ResponseWriter, r *http.Request) {
	history, err := h.store.GetPortfolioHistory(h.cfg.Dashboard.PortfolioLimit)
	if err != nil {
		h.writeUnavailable(w, "portfolio", err)
		return
	}
	h.writeJSON(w, map[string]any{
		"status":    "success",
		"snapshots": history,
	})
}

// DecisionView is one AI decision record prepared for display: rationale
// sanitized and segmented, confidence normalized.
type DecisionView struct {
	Timestamp       time.Time                   `json:"timestamp"`
	Decision        string                      `json:"decision"`
	Confidence      string                      `json:"confidence"`
	ConfidenceScore float64                     `json:"confidence_score"`
	Reason          string                      `json:"reason"`
	Sections        []analytics.AnalysisSection `json:"sections"`
	CurrentPrice    float64                     `json:"current_price"`
	KRWBalance      float64                     `json:"krw_balance"`
	BTCBalance      float64                     `json:"btc_balance"`
}

// DecisionsHandler returns the recent AI decision log with each record's
// rationale normalized for display.
func (h *APIHandler) DecisionsHandler(w http.ResponseWriter, r *http.Request) {
	logs, err := h.store.GetRecentLogs(h.cfg.Dashboard.DecisionLimit)
	if err != nil {
		h.writeUnavailable(w, "decisions", err)
		return
	}

	views := make([]DecisionView, 0, len(logs))
	for _, l := range logs {
		reason := analytics.Sanitize(l.Reason)
		views = append(views, DecisionView{
			Timestamp:       l.Timestamp,
			Decision:        l.Decision,
			Confidence:      l.Confidence,
			ConfidenceScore: analytics.NormalizeConfidence(l.Confidence),
			Reason:          reason,
			Sections:        analytics.ParseSections(reason),
			CurrentPrice:    l.CurrentPrice,
			KRWBalance:      l.KRWBalance,
			BTCBalance:      l.BTCBalance,
		})
	}

	h.writeJSON(w, map[string]any{
		"status":    "success",
		"decisions": views,
	})
}

// StatsHandler returns the aggregate trading statistics.
func (h *APIHandler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.GetTradingStats()
	if err != nil {
		h.writeUnavailable(w, "stats", err)
		return
	}
	h.writeJSON(w, map[string]any{
		"status": "success",
		"stats":  stats,
	})
}

// ReflectionsHandler returns the recent AI self-review records.
func (h *APIHandler) ReflectionsHandler(w http.ResponseWriter, r *http.Request) {
	reflections, err := h.store.GetRecentReflections(h.cfg.Dashboard.ReflectionLimit)
	if err != nil {
		h.writeUnavailable(w, "reflections", err)
		return
	}
	h.writeJSON(w, map[string]any{
		"status":      "success",
		"reflections": reflections,
	})
}

// MarketData bundles the live market read.
type MarketData struct {
	CurrentPrice  float64         `json:"current_price"`
	DailyCandles  []market.Candle `json:"daily_candles"`
	HourlyCandles []market.Candle `json:"hourly_candles"`
	LastUpdate    time.Time       `json:"last_update"`
}

// MarketHandler returns live market data for the configured symbol, cached
// on the short market TTL.
func (h *APIHandler) MarketHandler(w http.ResponseWriter, r *http.Request) {
	symbol := h.cfg.Market.Symbol
	v, err := h.cache.GetOrFetch(keyMarketData, func() (any, error) {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		price, err := h.market.GetCurrentPrice(ctx, symbol)
		if err != nil {
			return nil, err
		}
		daily, err := h.market.GetDailyCandles(ctx, symbol, 30)
		if err != nil {
			return nil, err
		}
		hourly, err := h.market.GetHourlyCandles(ctx, symbol, 24)
		if err != nil {
			return nil, err
		}
		return MarketData{
			CurrentPrice:  price,
			DailyCandles:  daily,
			HourlyCandles: hourly,
			LastUpdate:    time.Now(),
		}, nil
	})
	if err != nil {
		h.writeUnavailable(w, "market", err)
		return
	}

	h.writeJSON(w, map[string]any{
		"status": "success",
		"market": v.(MarketData),
	})
}

// RefreshHandler invalidates every cached read so the next render hits the
// backing sources again.
func (h *APIHandler) RefreshHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.cache.Clear()
	h.log.Info("Caches cleared on demand")
	h.writeJSON(w, map[string]any{"status": "success"})
}

// StatusHandler reports service liveness and uptime.
func (h *APIHandler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, map[string]any{
		"status":     "success",
		"start_time": h.startTime.Format(time.RFC3339),
		"uptime":     time.Since(h.startTime).String(),
	})
}
