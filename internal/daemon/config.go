// Package daemon manages the mapai daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all daemon configuration.
type Config struct {
	API       APIConfig       `toml:"api"`
	Geo       GeoConfig       `toml:"geo"`
	Upstream  UpstreamConfig  `toml:"upstream"`
	Telemetry TelemetryConfig `toml:"telemetry"`
	Logging   LoggingConfig   `toml:"logging"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// GeoConfig locates the province boundary dataset.
type GeoConfig struct {
	Dataset string `toml:"dataset"`
	Watch   bool   `toml:"watch"`
}

// UpstreamConfig points at the external region catalog and chat backend.
type UpstreamConfig struct {
	RegionsURL     string `toml:"regions_url"`
	ChatURL        string `toml:"chat_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	RefreshMinutes int    `toml:"refresh_minutes"`
}

// TelemetryConfig controls observability endpoints.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	home := mapaiHome()
	return Config{
		API: APIConfig{
			Host:        "127.0.0.1",
			Port:        8787,
			CORSOrigins: []string{"*"},
		},
		Geo: GeoConfig{
			Dataset: filepath.Join(home, "drc_provinces.geojson"),
			Watch:   false,
		},
		Upstream: UpstreamConfig{
			TimeoutSeconds: 60,
			RefreshMinutes: 30,
		},
		Telemetry: TelemetryConfig{
			Prometheus: true,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(home, "mapai.log"),
		},
	}
}

// LoadConfig reads config from ~/.mapai/config.toml, falling back to defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(mapaiHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // no config file yet, defaults apply
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the config to ~/.mapai/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(mapaiHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// mapaiHome returns the mapai data directory.
func mapaiHome() string {
	if env := os.Getenv("MAPAI_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".mapai")
}

// MapaiHome returns the mapai data directory.
func MapaiHome() string {
	return mapaiHome()
}
