// Package config handles client configuration: the target node, the
// network (which fixes the address format), and local directories.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/chainx-org/chainx-cli/pkg/types"
)

// NetworkType identifies mainnet or testnet.
type NetworkType string

const (
	Mainnet NetworkType = "mainnet"
	Testnet NetworkType = "testnet"
)

// AddressPrefix returns the SS58 network prefix.
func (n NetworkType) AddressPrefix() uint8 {
	if n == Testnet {
		return types.TestnetPrefix
	}
	return types.MainnetPrefix
}

// Config holds the client's runtime settings.
type Config struct {
	// Core
	Network NetworkType `conf:"network"`
	URL     string      `conf:"url"`
	DataDir string      `conf:"datadir"`

	// Signing
	Signer string `conf:"signer"`

	// Metadata cache (opt-in; the default path keeps no local state)
	Cache bool `conf:"cache"`

	// Logging
	Log LogConfig
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `conf:"log.level"`
	JSON  bool   `conf:"log.json"`
}

// DefaultDataDir returns the platform-specific default data directory.
//
//	Linux:   ~/.chainx-cli
//	macOS:   ~/Library/Application Support/ChainX
//	Windows: %APPDATA%\ChainX
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".chainx-cli"
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "ChainX")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			return filepath.Join(appData, "ChainX")
		}
		return filepath.Join(home, "AppData", "Roaming", "ChainX")
	default:
		return filepath.Join(home, ".chainx-cli")
	}
}

// NetworkDataDir returns the network-specific data directory.
func (c *Config) NetworkDataDir() string {
	return filepath.Join(c.DataDir, string(c.Network))
}

// KeystoreDir returns the keystore directory.
func (c *Config) KeystoreDir() string {
	return filepath.Join(c.NetworkDataDir(), "keystore")
}

// CacheDir returns the metadata cache directory.
func (c *Config) CacheDir() string {
	return filepath.Join(c.NetworkDataDir(), "metacache")
}
