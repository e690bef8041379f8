package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chainx-org/chainx-cli/pkg/types"
)

func writeConf(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chainx.conf")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConf(t, `
# node settings
network = testnet
url = "wss://testnet.example.org"
datadir = '/var/lib/chainx'

log.level = debug
cache = yes
`)
	values, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{
		"network":   "testnet",
		"url":       "wss://testnet.example.org",
		"datadir":   "/var/lib/chainx",
		"log.level": "debug",
		"cache":     "yes",
	}
	if len(values) != len(want) {
		t.Fatalf("got %d keys, want %d: %v", len(values), len(want), values)
	}
	for k, v := range want {
		if values[k] != v {
			t.Errorf("%s = %q, want %q", k, values[k], v)
		}
	}
}

func TestLoadFile_Missing(t *testing.T) {
	values, err := LoadFile(filepath.Join(t.TempDir(), "nope.conf"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if len(values) != 0 {
		t.Errorf("got %v, want empty", values)
	}
}

func TestLoadFile_BadLine(t *testing.T) {
	path := writeConf(t, "network = testnet\nthis is not a setting\n")
	_, err := LoadFile(path)
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("err = %v, want line 2 complaint", err)
	}
}

func TestApplyFileConfig(t *testing.T) {
	cfg := DefaultMainnet()
	err := ApplyFileConfig(cfg, map[string]string{
		"network":   "testnet",
		"url":       "ws://127.0.0.1:8087",
		"signer":    "alice",
		"cache":     "true",
		"log.level": "debug",
		"log.json":  "on",
	})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Network != Testnet {
		t.Errorf("Network = %q", cfg.Network)
	}
	if cfg.URL != "ws://127.0.0.1:8087" {
		t.Errorf("URL = %q", cfg.URL)
	}
	if cfg.Signer != "alice" {
		t.Errorf("Signer = %q", cfg.Signer)
	}
	if !cfg.Cache || !cfg.Log.JSON || cfg.Log.Level != "debug" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestApplyFileConfig_UnknownKey(t *testing.T) {
	cfg := DefaultMainnet()
	err := ApplyFileConfig(cfg, map[string]string{"nodeurl": "x"})
	if err == nil || !strings.Contains(err.Error(), "nodeurl") {
		t.Fatalf("err = %v, want unknown key error naming the key", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"wss url", func(c *Config) { c.URL = "wss://rpc.chainx.org" }, true},
		{"empty log level", func(c *Config) { c.Log.Level = "" }, true},
		{"bad network", func(c *Config) { c.Network = "devnet" }, false},
		{"bad scheme", func(c *Config) { c.URL = "ftp://127.0.0.1" }, false},
		{"empty datadir", func(c *Config) { c.DataDir = "" }, false},
		{"bad log level", func(c *Config) { c.Log.Level = "trace" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultMainnet()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("expected error")
			}
		})
	}

	if err := Validate(nil); err == nil {
		t.Error("nil config accepted")
	}
}

func TestFlags_Apply(t *testing.T) {
	cfg := DefaultMainnet()
	cfg.Cache = true

	f := &Flags{
		Network:  "testnet",
		URL:      "ws://localhost:8087",
		Signer:   "bob",
		LogLevel: "info",
		// Cache parsed as false and explicitly set: must override.
		Cache:    false,
		SetCache: true,
	}
	f.Apply(cfg)

	if cfg.Network != Testnet || cfg.URL != "ws://localhost:8087" || cfg.Signer != "bob" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
	if cfg.Cache {
		t.Error("explicit --cache=false did not override file config")
	}
}

func TestFlags_ApplyUnsetLeavesConfig(t *testing.T) {
	cfg := DefaultTestnet()
	cfg.Log.JSON = true
	(&Flags{}).Apply(cfg)

	if cfg.Network != Testnet || cfg.URL != DefaultURL || !cfg.Log.JSON {
		t.Errorf("zero flags changed config: %+v", cfg)
	}
}

func TestDefaults(t *testing.T) {
	if DefaultURL != "http://localhost:8087" {
		t.Errorf("DefaultURL = %q", DefaultURL)
	}
	cfg := DefaultMainnet()
	if cfg.URL != DefaultURL || cfg.Network != Mainnet || cfg.Log.Level != "warn" {
		t.Errorf("mainnet defaults = %+v", cfg)
	}
	if cfg := DefaultTestnet(); cfg.Network != Testnet || cfg.URL != DefaultURL {
		t.Errorf("testnet defaults = %+v", cfg)
	}
}

func TestNetworkAddressPrefix(t *testing.T) {
	if p := Mainnet.AddressPrefix(); p != types.MainnetPrefix {
		t.Errorf("mainnet prefix = %d", p)
	}
	if p := Testnet.AddressPrefix(); p != types.TestnetPrefix {
		t.Errorf("testnet prefix = %d", p)
	}
}

func TestDataDirs(t *testing.T) {
	cfg := DefaultMainnet()
	cfg.DataDir = "/data"

	if got := cfg.NetworkDataDir(); got != filepath.Join("/data", "mainnet") {
		t.Errorf("NetworkDataDir = %q", got)
	}
	if got := cfg.KeystoreDir(); got != filepath.Join("/data", "mainnet", "keystore") {
		t.Errorf("KeystoreDir = %q", got)
	}
	if got := cfg.CacheDir(); got != filepath.Join("/data", "mainnet", "metacache") {
		t.Errorf("CacheDir = %q", got)
	}
}
