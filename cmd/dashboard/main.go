package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"btc-dashboard-go/internal/cache"
	"btc-dashboard-go/internal/config"
	"btc-dashboard-go/internal/logger"
	"btc-dashboard-go/internal/market"
	"btc-dashboard-go/internal/store"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Open the trading log database
	st, err := store.NewStore(cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to open trading log database", zap.Error(err))
	}

	// Cache: trading-log reads expire on the database TTL, the live market
	// read on the shorter market TTL.
	dataCache := cache.New(time.Duration(cfg.Cache.DatabaseTTL) * time.Second)
	dataCache.SetTTL(keyMarketData, time.Duration(cfg.Cache.MarketTTL)*time.Second)

	cached := store.NewCachedStore(st, dataCache)
	marketClient := market.NewClient(&cfg.Market, log)

	// Setup HTTP server
	mux := http.NewServeMux()

	apiHandler := NewAPIHandler(log, cached, dataCache, marketClient, &cfg)

	// API endpoints
	mux.HandleFunc("/api/status", apiHandler.StatusHandler)
	mux.HandleFunc("/api/performance", apiHandler.PerformanceHandler)
	mux.HandleFunc("/api/trades", apiHandler.TradesHandler)
	mux.HandleFunc("/api/portfolio", apiHandler.PortfolioHandler)
	mux.HandleFunc("/api/decisions", apiHandler.DecisionsHandler)
	mux.HandleFunc("/api/stats", apiHandler.StatsHandler)
	mux.HandleFunc("/api/reflections", apiHandler.ReflectionsHandler)
	mux.HandleFunc("/api/market", apiHandler.MarketHandler)
	mux.HandleFunc("/api/refresh", apiHandler.RefreshHandler)

	// Static file serving for the dashboard front-end
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))

	// HTML template serving
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "web/templates/index.html")
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("Starting dashboard server", zap.String("address", addr))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal("Dashboard server failed", zap.Error(err))
	}
}
