package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Catalog  CatalogConfig  `toml:"catalog"`
	Pool     PoolConfig     `toml:"pool"`
	Server   ServerConfig   `toml:"server"`
	Download DownloadConfig `toml:"download"`
}

// CatalogConfig contains settings for the upstream catalog API.
type CatalogConfig struct {
	BaseURL        string  `toml:"base_url"`
	PageSize       int     `toml:"page_size"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	PagesPerSecond float64 `toml:"pages_per_second"`
}

// PoolConfig contains settings for the in-memory track pools.
type PoolConfig struct {
	TTLMinutes int `toml:"ttl_minutes"`
	MaxPages   int `toml:"max_pages"`
	PageOffset int `toml:"page_offset"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// DownloadConfig contains settings for track downloads.
type DownloadConfig struct {
	OutputDir string `toml:"output_dir"`
}

// Timeout returns the per-page catalog request timeout.
func (c CatalogConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// TTL returns the pool freshness window.
func (p PoolConfig) TTL() time.Duration {
	if p.TTLMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(p.TTLMinutes) * time.Minute
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
