package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config contains runtime configuration required by the app.
type Config struct {
	AnthropicAPIKey      string
	Model                string
	Port                 string
	MetricsFile          string
	GenerateTimeout      time.Duration
	LLMRequestsPerMinute int
	LogLevel             string
	LogFile              string
}

// Load reads required values from environment variables.
// ANTHROPIC_API_KEY is the only mandatory key; everything else has a
// local-dev fallback so the app runs out-of-the-box.
func Load() (Config, error) {
	apiKey := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	if apiKey == "" {
		return Config{}, errors.New("ANTHROPIC_API_KEY required")
	}

	cfg := Config{
		AnthropicAPIKey:      apiKey,
		Model:                "claude-sonnet-4-20250514",
		Port:                 "8080",
		MetricsFile:          "metrics_data.csv",
		GenerateTimeout:      60 * time.Second,
		LLMRequestsPerMinute: 20,
		LogLevel:             "info",
	}

	if v := strings.TrimSpace(os.Getenv("MODEL")); v != "" {
		cfg.Model = v
	}
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		cfg.Port = v
	}
	if v := strings.TrimSpace(os.Getenv("METRICS_FILE")); v != "" {
		cfg.MetricsFile = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
	cfg.LogFile = strings.TrimSpace(os.Getenv("LOG_FILE"))

	if v := strings.TrimSpace(os.Getenv("GENERATE_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf(`GENERATE_TIMEOUT must be a duration like "45s": %w`, err)
		}
		if d <= 0 {
			return Config{}, errors.New("GENERATE_TIMEOUT must be positive")
		}
		cfg.GenerateTimeout = d
	}

	if v := strings.TrimSpace(os.Getenv("LLM_RPM")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, errors.New("LLM_RPM must be a positive integer")
		}
		cfg.LLMRequestsPerMinute = n
	}

	return cfg, nil
}
