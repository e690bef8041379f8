package config

import (
	"flag"
	"fmt"
	"os"
)

// Flags holds parsed command-line flags. Zero values mean "not set";
// file config and defaults fill the rest.
type Flags struct {
	// Commands
	Help    bool
	Version bool

	// Core
	Network string
	URL     string
	DataDir string
	Config  string

	// Signing
	Signer string

	// Metadata cache
	Cache bool

	// Logging
	LogLevel string
	LogJSON  bool

	// Remaining args: subcommand and its arguments.
	Args []string

	// Explicitly-set bool flags (for true/false overrides).
	SetCache   bool
	SetLogJSON bool
}

// ParseFlags parses the global command-line flags, leaving the
// subcommand and its arguments in Args.
func ParseFlags() *Flags {
	f := &Flags{}
	fs := flag.NewFlagSet("chainx-cli", flag.ContinueOnError)

	fs.BoolVar(&f.Help, "help", false, "Show help message")
	fs.BoolVar(&f.Help, "h", false, "Show help message (shorthand)")
	fs.BoolVar(&f.Version, "version", false, "Show version information")

	fs.StringVar(&f.Network, "network", "", "Network type (mainnet or testnet)")
	fs.StringVar(&f.URL, "url", "", "Node RPC endpoint (http, https, ws or wss)")
	fs.StringVar(&f.DataDir, "datadir", "", "Data directory path")
	fs.StringVar(&f.Config, "config", "", "Config file path")

	fs.StringVar(&f.Signer, "signer", "", "Signing key: a dev account name or a keystore key name")

	fs.BoolVar(&f.Cache, "cache", false, "Cache runtime metadata on disk")

	fs.StringVar(&f.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&f.LogJSON, "log-json", false, "Log as JSON")

	fs.Usage = func() {}
	if err := fs.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "cache":
			f.SetCache = true
		case "log-json":
			f.SetLogJSON = true
		}
	})

	f.Args = fs.Args()
	return f
}

// Apply overlays set flags onto a config.
func (f *Flags) Apply(cfg *Config) {
	if f.Network != "" {
		cfg.Network = NetworkType(f.Network)
	}
	if f.URL != "" {
		cfg.URL = f.URL
	}
	if f.DataDir != "" {
		cfg.DataDir = f.DataDir
	}
	if f.Signer != "" {
		cfg.Signer = f.Signer
	}
	if f.SetCache {
		cfg.Cache = f.Cache
	}
	if f.LogLevel != "" {
		cfg.Log.Level = f.LogLevel
	}
	if f.SetLogJSON {
		cfg.Log.JSON = f.LogJSON
	}
}
