// File path: cmd/locached/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nicodishanthj/locache/internal/api"
	"github.com/nicodishanthj/locache/internal/common"
	"github.com/nicodishanthj/locache/internal/lookup"
	"github.com/nicodishanthj/locache/internal/provider"
	"github.com/nicodishanthj/locache/internal/ratelimit"
	"github.com/nicodishanthj/locache/internal/refresh"
	"github.com/nicodishanthj/locache/internal/sqlite"
)

func main() {
	logger := common.Logger()

	if err := godotenv.Load(); err != nil {
		logger.Warn("locache: .env file not loaded", "error", err)
	} else {
		logger.Info("locache: environment loaded from .env")
	}

	addr := flag.String("addr", ":8080", "listen address")
	dbPath := flag.String("db", defaultDBPath(), "path to the SQLite location cache")
	ttlDays := flag.Int("ttl-days", 0, "cache TTL in days (0 uses CACHE_TTL_DAYS or the default)")
	providerURL := flag.String("provider-url", "", "base URL of the location provider (overrides LOCATION_PROVIDER_URL)")
	refreshWorkers := flag.Int("refresh-workers", refresh.DefaultWorkers, "background refresh worker count")
	refreshQueue := flag.Int("refresh-queue", refresh.DefaultQueueSize, "background refresh queue size")
	flag.Parse()

	logger.Info("locache: startup initiated", "addr", *addr, "db", *dbPath)

	store, err := sqlite.Open(*dbPath)
	if err != nil {
		logger.Error("locache: store open failed", "error", err)
		fmt.Println("store error:", err)
		os.Exit(1)
	}
	defer store.Close()

	provCfg, err := provider.LoadConfig()
	if err != nil {
		logger.Error("locache: provider config load failed", "error", err)
		fmt.Println("provider config error:", err)
		os.Exit(1)
	}
	if trimmed := strings.TrimSpace(*providerURL); trimmed != "" {
		provCfg.BaseURL = trimmed
	}
	prov, err := provider.NewHTTP(provCfg)
	if err != nil {
		logger.Error("locache: provider construction failed", "error", err)
		fmt.Println("provider error:", err)
		os.Exit(1)
	}
	logger.Info("locache: location provider ready", "provider", prov.Name(), "timeout", provCfg.Timeout)

	lookupCfg, err := lookup.LoadConfig()
	if err != nil {
		logger.Error("locache: lookup config load failed", "error", err)
		fmt.Println("lookup config error:", err)
		os.Exit(1)
	}
	if *ttlDays > 0 {
		lookupCfg.TTL = time.Duration(*ttlDays) * 24 * time.Hour
	}
	lookupCfg.ProviderTimeout = provCfg.Timeout

	pool := refresh.NewPool(*refreshWorkers, *refreshQueue)
	pool.Start()
	defer pool.Stop()

	orch, err := lookup.New(store, prov, pool, lookupCfg)
	if err != nil {
		logger.Error("locache: orchestrator construction failed", "error", err)
		fmt.Println("orchestrator error:", err)
		os.Exit(1)
	}
	logger.Info("locache: lookup orchestrator ready", "ttl", orch.TTL())

	rateCfg, err := ratelimit.LoadConfig()
	if err != nil {
		logger.Error("locache: rate limit config load failed", "error", err)
		fmt.Println("rate limit config error:", err)
		os.Exit(1)
	}
	limiter := ratelimit.NewLimiter(rateCfg.Window, rateCfg.Limit)
	requests := ratelimit.NewCounter(rateCfg.RequestWindow)

	server, err := api.NewServer(store, orch, limiter, requests)
	if err != nil {
		logger.Error("locache: server construction failed", "error", err)
		fmt.Println("server error:", err)
		os.Exit(1)
	}

	httpServer := &http.Server{Addr: *addr, Handler: server}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("locache: shutdown failed", "error", err)
		}
	}()

	logger.Info("locache: server listening", "addr", *addr, "health", "/healthcheck")
	fmt.Printf("Serving on %s\n", *addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("locache: server stopped", "error", err)
		fmt.Println("server stopped:", err)
		os.Exit(1)
	}
	logger.Info("locache: server stopped")
}

func defaultDBPath() string {
	if path := strings.TrimSpace(os.Getenv("SQLITE_PATH")); path != "" {
		return path
	}
	return filepath.Join("data", "locations.db")
}
