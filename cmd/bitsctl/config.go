package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/bitsctl/internal/transmission"
)

// bitsctl config.toml key mapping to CLI options.
type fileConfig struct {
	Mode     string `toml:"mode"`
	Input    string `toml:"input"`
	MaxDepth int    `toml:"max_depth"`
	LogLevel string `toml:"log_level"`
}

type options struct {
	Mode     transmission.Mode
	Input    string
	Limits   transmission.Limits
	LogLevel string
}

func defaultOptions() options {
	return options{
		Mode:     transmission.ModeVersions,
		Input:    "input.txt",
		Limits:   transmission.DefaultLimits(),
		LogLevel: "warn",
	}
}

// loadOptions overlays the keys present in path onto base.
func loadOptions(path string, base options) (options, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return options{}, fmt.Errorf("load bitsctl config: %w", err)
	}

	if meta.IsDefined("mode") {
		mode, err := transmission.ParseMode(raw.Mode)
		if err != nil {
			return options{}, fmt.Errorf("parse mode: %w", err)
		}
		base.Mode = mode
	}
	if meta.IsDefined("input") {
		base.Input = strings.TrimSpace(raw.Input)
	}
	if meta.IsDefined("max_depth") {
		if raw.MaxDepth <= 0 {
			return options{}, fmt.Errorf("max_depth must be positive, got %d", raw.MaxDepth)
		}
		base.Limits.MaxDepth = raw.MaxDepth
	}
	if meta.IsDefined("log_level") {
		base.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return options{}, fmt.Errorf("unknown bitsctl config key %q", undecoded[0].String())
	}
	return base, nil
}
