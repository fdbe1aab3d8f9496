package config

import (
	"os"
	"strconv"
)

// LoadFromEnv overrides cfg with ADTKIT_* environment variables
func LoadFromEnv(cfg *Config) {
	if level := os.Getenv("ADTKIT_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if format := os.Getenv("ADTKIT_LOG_FORMAT"); format != "" {
		cfg.Logging.Format = format
	}

	// Containers
	if capacity := os.Getenv("ADTKIT_DEFAULT_CAPACITY"); capacity != "" {
		if c, err := strconv.Atoi(capacity); err == nil {
			cfg.Containers.DefaultCapacity = c
		}
	}
	if alloc := os.Getenv("ADTKIT_ALLOCATOR"); alloc != "" {
		cfg.Containers.Allocator = alloc
	}
	if budget := os.Getenv("ADTKIT_BUDGET_BYTES"); budget != "" {
		if b, err := strconv.ParseInt(budget, 10, 64); err == nil {
			cfg.Containers.BudgetBytes = b
		}
	}

	// Bench
	if iterations := os.Getenv("ADTKIT_BENCH_ITERATIONS"); iterations != "" {
		if n, err := strconv.Atoi(iterations); err == nil {
			cfg.Bench.Iterations = n
		}
	}
	if size := os.Getenv("ADTKIT_BENCH_PAYLOAD_SIZE"); size != "" {
		if n, err := strconv.Atoi(size); err == nil {
			cfg.Bench.PayloadSize = n
		}
	}
	cfg.Bench.MetricsAddr = GetEnvOrDefault("ADTKIT_METRICS_ADDR", cfg.Bench.MetricsAddr)
}

// GetEnvOrDefault returns environment variable or default value
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
