package main

import (
	"fmt"
	"io"
	"os"

	"github.com/go-ini/ini"
	"github.com/hupe1980/gridsig"
)

// Config holds the settings that can come from an INI file. Command-line
// flags override file values.
//
//	[compute]
//	seed = 67890
//	workers = 0
//	band_rows = 16
//	compression = lz4
//	memory_limit = 0
//
//	[store]
//	url = local:./surfaces
//	io_limit = 0
//	region = us-east-1
//	access_key =
//	secret_key =
//	secure = true
//	path_style = false
type Config struct {
	Compute ComputeConfig
	Store   StoreConfig
}

// ComputeConfig configures signature computation.
type ComputeConfig struct {
	Seed        uint64 `ini:"seed"`
	Workers     int    `ini:"workers"`      // 0 = GOMAXPROCS
	BandRows    int    `ini:"band_rows"`    // rows claimed per worker step
	Compression string `ini:"compression"`  // none, lz4, zstd
	MemoryLimit int64  `ini:"memory_limit"` // bytes, 0 = unlimited
}

// StoreConfig configures where surfaces are kept.
type StoreConfig struct {
	URL       string `ini:"url"`
	IOLimit   int64  `ini:"io_limit"` // bytes per second, 0 = unlimited
	Region    string `ini:"region"`
	AccessKey string `ini:"access_key"`
	SecretKey string `ini:"secret_key"`
	Secure    bool   `ini:"secure"`
	PathStyle bool   `ini:"path_style"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Compute: ComputeConfig{
			Seed:        gridsig.DefaultSeed,
			BandRows:    16,
			Compression: "lz4",
		},
		Store: StoreConfig{
			URL:    "local:.",
			Secure: true,
		},
	}
}

// LoadConfig reads path over the defaults. An empty path returns the
// defaults unchanged.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}

	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	if err := cfg.apply(file); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) apply(file *ini.File) error {
	if file.HasSection("compute") {
		if err := file.Section("compute").MapTo(&c.Compute); err != nil {
			return fmt.Errorf("failed to parse [compute]: %w", err)
		}
	}
	if file.HasSection("store") {
		if err := file.Section("store").MapTo(&c.Store); err != nil {
			return fmt.Errorf("failed to parse [store]: %w", err)
		}
	}
	return c.Validate()
}

// Validate checks values that have no meaningful interpretation.
func (c *Config) Validate() error {
	if c.Compute.BandRows < 1 {
		return fmt.Errorf("band_rows must be positive, got %d", c.Compute.BandRows)
	}
	if c.Compute.MemoryLimit < 0 {
		return fmt.Errorf("memory_limit must not be negative, got %d", c.Compute.MemoryLimit)
	}
	if c.Store.IOLimit < 0 {
		return fmt.Errorf("io_limit must not be negative, got %d", c.Store.IOLimit)
	}
	return nil
}

func (c *Config) file() (*ini.File, error) {
	file := ini.Empty()
	if err := file.Section("compute").ReflectFrom(&c.Compute); err != nil {
		return nil, fmt.Errorf("failed to write [compute]: %w", err)
	}
	if err := file.Section("store").ReflectFrom(&c.Store); err != nil {
		return nil, fmt.Errorf("failed to write [store]: %w", err)
	}
	return file, nil
}

// Save writes the configuration to path in INI form.
func (c *Config) Save(path string) error {
	file, err := c.file()
	if err != nil {
		return err
	}
	return file.SaveTo(path)
}

// WriteTo writes the configuration to w in INI form.
func (c *Config) WriteTo(w io.Writer) (int64, error) {
	file, err := c.file()
	if err != nil {
		return 0, err
	}
	return file.WriteTo(w)
}
