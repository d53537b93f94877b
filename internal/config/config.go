package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ServerConfig is the bitsd config.toml contract.
type ServerConfig struct {
	Name         string   `toml:"name"`
	Addr         string   `toml:"addr"`
	CorsOrigins  []string `toml:"cors_origins"`
	MaxHexDigits int      `toml:"max_hex_digits"`
	MaxDepth     int      `toml:"max_depth"`
	LogLevel     string   `toml:"log_level"`
	DecodeToken  string   `toml:"decode_token"`
}

func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Name:         "bitsd",
		Addr:         ":9400",
		MaxHexDigits: 64 * 1024,
		MaxDepth:     1024,
	}
}

func LoadServerConfig(path string) (ServerConfig, error) {
	cfg := DefaultServerConfig()
	if err := loadToml(path, &cfg); err != nil {
		return ServerConfig{}, err
	}
	if strings.TrimSpace(cfg.Name) == "" {
		cfg.Name = "bitsd"
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		cfg.Addr = ":9400"
	}
	if err := ValidateServerConfig(cfg); err != nil {
		return ServerConfig{}, err
	}
	return cfg, nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func ValidateServerConfig(cfg ServerConfig) error {
	if strings.TrimSpace(cfg.Name) == "" {
		return fmt.Errorf("server config missing name")
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		return fmt.Errorf("server config missing addr")
	}
	if cfg.MaxHexDigits <= 0 {
		return fmt.Errorf("server config max_hex_digits must be positive")
	}
	if cfg.MaxDepth <= 0 {
		return fmt.Errorf("server config max_depth must be positive")
	}
	for i, origin := range cfg.CorsOrigins {
		if strings.TrimSpace(origin) == "" {
			return fmt.Errorf("cors_origins[%d] is empty", i)
		}
	}
	return nil
}
