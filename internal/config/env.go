package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr   string
	GinMode   string
	DBUser    string
	DBPass    string
	DBHost    string
	DBName    string
	JWTSecret string

	// MetricsEnabled toggles the /metrics endpoint.
	MetricsEnabled bool
}

func LoadEnv() Env {
	// .env opsional; env vars asli tetap menang
	_ = godotenv.Load()

	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	metricsEnabled := true
	if v := strings.TrimSpace(os.Getenv("METRICS_ENABLED")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			metricsEnabled = b
		}
	}

	return Env{
		AppAddr:        appAddr,
		GinMode:        strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBUser:         envOr("DB_USER", "root"),
		DBPass:         os.Getenv("DB_PASS"),
		DBHost:         envOr("DB_HOST", "127.0.0.1:3306"),
		DBName:         envOr("DB_NAME", "fleet_portal"),
		JWTSecret:      envOr("JWT_SECRET", "super-secret-key-change-me"),
		MetricsEnabled: metricsEnabled,
	}
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
