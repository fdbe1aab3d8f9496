package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/FairForge/adtkit/internal/container"
	"github.com/FairForge/adtkit/internal/logging"
	"github.com/FairForge/adtkit/internal/memory"
	"github.com/FairForge/adtkit/internal/metrics"
)

// Allocator kinds
const (
	AllocatorHeap = "heap"
	AllocatorPool = "pool"
)

type Config struct {
	Logging    logging.LoggerConfig `yaml:"logging"`
	Containers ContainerConfig      `yaml:"containers"`
	Bench      BenchConfig          `yaml:"bench"`
}

type ContainerConfig struct {
	DefaultCapacity int    `yaml:"default_capacity" default:"1024"`
	Allocator       string `yaml:"allocator" default:"heap"`
	PoolMaxClass    int    `yaml:"pool_max_class" default:"65536"`
	BudgetBytes     int64  `yaml:"budget_bytes"` // 0 means unbounded
}

type BenchConfig struct {
	Iterations  int    `yaml:"iterations" default:"10000"`
	PayloadSize int    `yaml:"payload_size" default:"16"`
	Seed        int64  `yaml:"seed" default:"1"`
	MetricsAddr string `yaml:"metrics_addr"` // empty disables the endpoint
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Logging: logging.LoggerConfig{
			Level:  logging.LevelInfo,
			Format: logging.FormatJSON,
		},
		Containers: ContainerConfig{
			DefaultCapacity: 1024,
			Allocator:       AllocatorHeap,
			PoolMaxClass:    memory.DefaultMaxClass,
		},
		Bench: BenchConfig{
			Iterations:  10000,
			PayloadSize: 16,
			Seed:        1,
		},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every section
func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if err := c.Containers.Validate(); err != nil {
		return err
	}
	return c.Bench.Validate()
}

func (c *ContainerConfig) Validate() error {
	if c.DefaultCapacity <= 0 || c.DefaultCapacity > container.MaxCapacity {
		return fmt.Errorf("config: default_capacity must be between 1 and %d", container.MaxCapacity)
	}
	switch c.Allocator {
	case AllocatorHeap, AllocatorPool:
	default:
		return fmt.Errorf("config: unknown allocator: %s", c.Allocator)
	}
	if c.PoolMaxClass < 0 {
		return errors.New("config: pool_max_class must not be negative")
	}
	if c.BudgetBytes < 0 {
		return errors.New("config: budget_bytes must not be negative")
	}
	return nil
}

func (c *BenchConfig) Validate() error {
	if c.Iterations <= 0 || c.Iterations > container.MaxCapacity {
		return fmt.Errorf("config: bench iterations must be between 1 and %d", container.MaxCapacity)
	}
	if c.PayloadSize <= 0 || c.PayloadSize > container.MaxPayload {
		return fmt.Errorf("config: bench payload_size must be between 1 and %d", container.MaxPayload)
	}
	return nil
}

// NewAllocator builds the configured allocator, capped by BudgetBytes when
// set and instrumented with collector when it is not nil.
func (c *ContainerConfig) NewAllocator(collector *metrics.Collector) memory.Allocator {
	var a memory.Allocator = memory.Heap
	if c.Allocator == AllocatorPool {
		a = memory.NewPool(c.PoolMaxClass)
	}
	if c.BudgetBytes > 0 {
		a = memory.NewBudget(a, c.BudgetBytes)
	}
	return memory.Instrument(a, collector)
}
