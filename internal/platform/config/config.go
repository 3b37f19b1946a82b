package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string

	FaucetAddress string
	OwnerAddress  string
	AssetAddress  string
	DripAmount    uint64
	StartPaused   bool

	RelayInterval  time.Duration
	StatusCacheTTL time.Duration

	ClaimRatePerSecond float64
	ClaimRateBurst     int
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "faucet"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	faucetAddress := strings.TrimSpace(os.Getenv("FAUCET_ADDRESS"))
	if faucetAddress == "" {
		faucetAddress = "faucet"
	}

	return Config{
		ServiceName: service,
		HTTPPort:    port,
		PostgresDSN: os.Getenv("POSTGRES_DSN"),

		FaucetAddress: faucetAddress,
		OwnerAddress:  strings.TrimSpace(os.Getenv("FAUCET_OWNER")),
		AssetAddress:  strings.TrimSpace(os.Getenv("FAUCET_ASSET")),
		DripAmount:    envUint64("FAUCET_DRIP_AMOUNT", 0),
		StartPaused:   envBool("FAUCET_START_PAUSED", false),

		RelayInterval:  envDuration("RELAY_INTERVAL", 5*time.Second),
		StatusCacheTTL: envDuration("STATUS_CACHE_TTL", 30*time.Second),

		ClaimRatePerSecond: envFloat("CLAIM_RATE_PER_SECOND", 1),
		ClaimRateBurst:     envInt("CLAIM_RATE_BURST", 3),
	}, nil
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}

func envUint64(name string, fallback uint64) uint64 {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return value
}

func envInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func envFloat(name string, fallback float64) float64 {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return value
}

func envDuration(name string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return value
}
