package config

import (
	"fmt"
	"strings"
)

// Validate checks client config for obvious operator mistakes.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if cfg.Network != Mainnet && cfg.Network != Testnet {
		return fmt.Errorf("network must be %q or %q", Mainnet, Testnet)
	}
	switch {
	case strings.HasPrefix(cfg.URL, "http://"),
		strings.HasPrefix(cfg.URL, "https://"),
		strings.HasPrefix(cfg.URL, "ws://"),
		strings.HasPrefix(cfg.URL, "wss://"):
	default:
		return fmt.Errorf("url must start with http://, https://, ws:// or wss://")
	}
	if cfg.DataDir == "" {
		return fmt.Errorf("datadir must not be empty")
	}
	switch cfg.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error")
	}
	return nil
}
