package market

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"btc-dashboard-go/internal/config"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ClientInterface defines the interface for the Upbit market data client.
type ClientInterface interface {
	GetCurrentPrice(ctx context.Context, market string) (float64, error)
	GetDailyCandles(ctx context.Context, market string, count int) ([]Candle, error)
	GetHourlyCandles(ctx context.Context, market string, count int) ([]Candle, error)
}

// Ticker is the subset of the Upbit ticker response the dashboard uses.
type Ticker struct {
	Market     string  `json:"market"`
	TradePrice float64 `json:"trade_price"`
}

// Candle is one OHLCV candle from the Upbit candle endpoints.
type Candle struct {
	Market        string  `json:"market"`
	CandleTimeUTC string  `json:"candle_date_time_utc"`
	OpeningPrice  float64 `json:"opening_price"`
	HighPrice     float64 `json:"high_price"`
	LowPrice      float64 `json:"low_price"`
	TradePrice    float64 `json:"trade_price"`
	Volume        float64 `json:"candle_acc_trade_volume"`
}

// Client is a client for the Upbit public REST API. Only public market-data
// endpoints are used, so no request signing is required.
// It implements the ClientInterface.
type Client struct {
	client  *resty.Client
	logger  *zap.Logger
	limiter *rate.Limiter
}

// ensure Client implements the interface
var _ ClientInterface = (*Client)(nil)

// NewClient creates a new Upbit market data client.
func NewClient(cfg *config.Market, logger *zap.Logger) *Client {
	client := resty.New().SetBaseURL(cfg.BaseURL)

	// rate.Limit is requests per second; Upbit throttles public endpoints.
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimitBurst)

	return &Client{
		client:  client,
		logger:  logger,
		limiter: limiter,
	}
}

// doRequest handles the actual request execution with rate limiting and retry logic.
func (c *Client) doRequest(ctx context.Context, method, url string, req *resty.Request) (*resty.Response, error) {
	var resp *resty.Response
	var err error
	const maxRetries = 3

	for i := 0; i < maxRetries; i++ {
		// Wait for the rate limiter
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait failed: %w", err)
		}

		c.logger.Debug("Executing request", zap.String("method", method), zap.String("url", c.client.BaseURL+url))
		resp, err = req.SetContext(ctx).Execute(method, url)

		if err == nil && !resp.IsError() {
			return resp, nil // Success
		}

		// Analyze error and decide whether to retry
		shouldRetry := false
		var retryAfter time.Duration

		if resp != nil {
			statusCode := resp.StatusCode()
			if statusCode == http.StatusTooManyRequests {
				shouldRetry = true
				retryAfterHeader := resp.Header().Get("Retry-After")
				if seconds, err := strconv.Atoi(retryAfterHeader); err == nil {
					retryAfter = time.Duration(seconds) * time.Second
				}
			} else if statusCode >= 500 { // Server errors
				shouldRetry = true
			}
		} else { // Network or other client-side errors
			shouldRetry = true
		}

		if !shouldRetry {
			return nil, fmt.Errorf("request failed with status %s: %s", resp.Status(), resp.String())
		}

		// If we should retry, calculate wait time
		if retryAfter == 0 {
			// Exponential backoff: 1s, 2s, 4s
			retryAfter = time.Duration(math.Pow(2, float64(i))) * time.Second
		}

		c.logger.Warn("Request failed, retrying...",
			zap.Int("attempt", i+1),
			zap.Duration("retry_after", retryAfter),
			zap.Error(err),
		)

		select {
		case <-time.After(retryAfter):
			continue
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", maxRetries, err)
}

// GetCurrentPrice fetches the latest trade price for a market (e.g. "KRW-BTC").
func (c *Client) GetCurrentPrice(ctx context.Context, market string) (float64, error) {
	var tickers []Ticker

	req := c.client.R().
		SetQueryParam("markets", market).
		SetResult(&tickers)

	if _, err := c.doRequest(ctx, "GET", "/ticker", req); err != nil {
		return 0, fmt.Errorf("failed to get ticker for %s: %w", market, err)
	}

	if len(tickers) == 0 {
		return 0, fmt.Errorf("no ticker data returned for %s", market)
	}
	return tickers[0].TradePrice, nil
}

// GetDailyCandles fetches the most recent daily candles for a market.
func (c *Client) GetDailyCandles(ctx context.Context, market string, count int) ([]Candle, error) {
	return c.getCandles(ctx, "/candles/days", market, count)
}

// GetHourlyCandles fetches the most recent 60-minute candles for a market.
func (c *Client) GetHourlyCandles(ctx context.Context, market string, count int) ([]Candle, error) {
	return c.getCandles(ctx, "/candles/minutes/60", market, count)
}

func (c *Client) getCandles(ctx context.Context, path, market string, count int) ([]Candle, error) {
	var candles []Candle

	req := c.client.R().
		SetQueryParam("market", market).
		SetQueryParam("count", strconv.Itoa(count)).
		SetResult(&candles)

	if _, err := c.doRequest(ctx, "GET", path, req); err != nil {
		return nil, fmt.Errorf("failed to get candles for %s: %w", market, err)
	}

	return candles, nil
}
