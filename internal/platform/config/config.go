package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port           string
	StorageBackend string
	DatabaseURL    string

	// TokenExpiry bounds how long an issued bearer token stays valid.
	TokenExpiry time.Duration
	BcryptCost  int

	// AdminEmail/AdminPassword optionally seed an ADMIN account at boot.
	AdminEmail    string
	AdminPassword string
}

// Load reads configuration from the environment. A local .env file is applied
// first when present; real env vars win over file values.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:           getenv("PORT", "8080"),
		StorageBackend: getenv("STORAGE_BACKEND", "memory"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		TokenExpiry:    time.Hour,
		BcryptCost:     10,
		AdminEmail:     os.Getenv("ADMIN_EMAIL"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
	}

	if v := os.Getenv("TOKEN_EXPIRY_MS"); v != "" {
		ms, err := strconv.ParseInt(v, 10, 64)
		if err != nil || ms <= 0 {
			return Config{}, fmt.Errorf("TOKEN_EXPIRY_MS must be a positive integer, got %q", v)
		}
		cfg.TokenExpiry = time.Duration(ms) * time.Millisecond
	}
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil || cost < 4 || cost > 31 {
			return Config{}, fmt.Errorf("BCRYPT_COST must be in [4,31], got %q", v)
		}
		cfg.BcryptCost = cost
	}

	if cfg.StorageBackend == "postgres" && cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required when STORAGE_BACKEND=postgres")
	}

	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
