package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Backend selectors.
const (
	BackendFourthwall = "fourthwall"
	BackendShopify    = "shopify"
)

// Config is built once in main and passed by reference into the backend
// clients and the identity manager. Business logic never reads the
// environment directly.
type Config struct {
	Backend string

	// Fourthwall (REST)
	FourthwallURL        string
	FourthwallShopID     string
	FourthwallSecret     string
	FourthwallCheckout   string // checkout redirect domain
	FourthwallCollection string // collection used for product lookups

	// Shopify (GraphQL)
	ShopifyDomain string
	ShopifyToken  string

	RevalidationSecret string

	HTTPPort int
	LogLevel string
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Backend:              getEnv("COMMERCE_BACKEND", BackendFourthwall),
		FourthwallURL:        getEnv("FW_URL", "https://api.fourthwall.com"),
		FourthwallShopID:     os.Getenv("FW_SHOPID"),
		FourthwallSecret:     os.Getenv("FW_SECRET"),
		FourthwallCheckout:   os.Getenv("FW_CHECKOUT"),
		FourthwallCollection: getEnv("FW_COLLECTION", "all"),
		ShopifyDomain:        os.Getenv("SHOPIFY_STORE_DOMAIN"),
		ShopifyToken:         os.Getenv("SHOPIFY_STOREFRONT_ACCESS_TOKEN"),
		RevalidationSecret:   os.Getenv("REVALIDATION_SECRET"),
		HTTPPort:             getEnvInt("HTTP_PORT", 8082),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
	}

	switch cfg.Backend {
	case BackendFourthwall, BackendShopify:
	default:
		return nil, fmt.Errorf("unknown commerce backend %q", cfg.Backend)
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
