// Package config collects runtime configuration for both binaries from the
// environment, with an optional .env file for local runs.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Storefront configures the interactive client.
type Storefront struct {
	ServerURL  string
	CartPath   string
	AdminToken string
}

// Livraria configures the bookstore service.
type Livraria struct {
	Port        string
	DatabaseURL string

	AdminSecret string

	MetricsEnabled bool
	MetricsToken   string

	CreateLimit       int
	CreateLimitWindow int
}

func LoadStorefront() Storefront {
	_ = godotenv.Load()

	return Storefront{
		ServerURL:  getenv("LIVRARIA_URL", "http://127.0.0.1:5000"),
		CartPath:   getenv("CART_PATH", defaultCartPath()),
		AdminToken: getenv("ADMIN_TOKEN", ""),
	}
}

func LoadLivraria() Livraria {
	_ = godotenv.Load()

	return Livraria{
		Port:              getenv("PORT", "5000"),
		DatabaseURL:       getenv("DATABASE_URL", ""),
		AdminSecret:       getenv("ADMIN_SECRET", ""),
		MetricsEnabled:    boolenv("METRICS_ENABLED", false),
		MetricsToken:      getenv("METRICS_TOKEN", ""),
		CreateLimit:       atoienv("CREATE_LIMIT", 0),
		CreateLimitWindow: atoienv("CREATE_LIMIT_WINDOW_SECONDS", 60),
	}
}

// defaultCartPath keeps the cart under the user's config dir, named after
// the storage key the shelf has always used.
func defaultCartPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "carrinho.json"
	}
	return filepath.Join(dir, "estante", "carrinho.json")
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func boolenv(key string, def bool) bool {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
