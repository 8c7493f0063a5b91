package main

// GET  /cart                          – Fetch (or lazily create) the visitor's cart
// POST /cart/add                      – Add a variant to the cart
// POST /cart/remove                   – Remove a variant from the cart
// POST /cart/update                   – Set a variant's quantity
// POST /cart/checkout                 – Begin checkout, returns the redirect URL
// GET  /products/{handle}             – Product lookup (cached)
// GET  /collections                   – Collection listing (cached)
// GET  /collections/{handle}/products – Collection products (cached)
// POST /api/revalidate                – Inbound change notification webhook

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"storefront/backend"
	"storefront/cache"
	"storefront/config"
	"storefront/handler"
	"storefront/service"
)

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})).
		With("service", "storefront")
	slog.SetDefault(log)
	return log
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}
	log := newLogger(cfg.LogLevel)

	// --- Transport ---
	client := backend.NewClient(&http.Client{Timeout: 30 * time.Second}, log)

	// --- Backend (selected once at startup) ---
	var b backend.Backend
	switch cfg.Backend {
	case config.BackendShopify:
		b = backend.NewShopify(client, cfg, log)
	default:
		b = backend.NewFourthwall(client, cfg, log)
	}
	log.Info("commerce backend selected", "backend", cfg.Backend)

	// --- Cache invalidation + catalog memo ---
	inv := cache.NewInvalidator()
	store := cache.NewTagStore(inv)

	// --- Cart synchronizer ---
	svc := service.NewCartService(b, inv, log)
	var syncer service.CartSyncer = svc

	// --- Handlers ---
	h := handler.NewHandler(syncer, b, store, inv, cfg, log)

	// --- Router ---
	r := mux.NewRouter()
	h.RegisterRoutes(r)

	// --- Server ---
	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	log.Info("server running", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Error("server error", "err", err)
		os.Exit(1)
	}
}
