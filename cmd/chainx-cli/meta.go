package main

import (
	"encoding/hex"
	"flag"
	"fmt"

	"github.com/chainx-org/chainx-cli/config"
	"github.com/chainx-org/chainx-cli/internal/client"
	"github.com/chainx-org/chainx-cli/internal/log"
	"github.com/chainx-org/chainx-cli/internal/metacache"
	"github.com/chainx-org/chainx-cli/pkg/metadata"
)

func cmdMeta(cfg *config.Config, args []string) {
	if len(args) == 0 {
		fatal("meta requires a subcommand: get, version")
	}
	switch args[0] {
	case "get":
		cmdMetaGet(cfg, args[1:])
	case "version":
		cmdMetaVersion(cfg)
	default:
		fatal("unknown meta subcommand %q", args[0])
	}
}

func cmdMetaGet(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("meta get", flag.ExitOnError)
	raw := fs.Bool("raw", false, "Print the raw SCALE blob as hex")
	if err := fs.Parse(args); err != nil {
		fatal("%v", err)
	}
	module := ""
	if fs.NArg() > 0 {
		module = fs.Arg(0)
	}

	c := dial(cfg)
	defer c.Close()

	blob := fetchMetadataBlob(cfg, c)
	if *raw {
		fmt.Printf("0x%s\n", hex.EncodeToString(blob))
		return
	}

	meta, err := metadata.Decode(blob)
	if err != nil {
		fatal("decode metadata: %v", err)
	}
	res, err := metadata.Resolve(meta, module)
	if err != nil {
		fatal("%v", err)
	}
	out, err := metadata.Render(res)
	if err != nil {
		fatal("render metadata: %v", err)
	}
	fmt.Println(out)
}

func cmdMetaVersion(cfg *config.Config) {
	c := dial(cfg)
	defer c.Close()

	meta, err := decodeMetadata(cfg, c)
	if err != nil {
		fatal("%v", err)
	}
	fmt.Printf("V%d\n", meta.Version())
}

// decodeMetadata fetches (or loads from cache) and decodes the
// runtime metadata.
func decodeMetadata(cfg *config.Config, c *client.Client) (*metadata.RuntimeMetadata, error) {
	blob := fetchMetadataBlob(cfg, c)
	return metadata.Decode(blob)
}

// fetchMetadataBlob returns the raw metadata blob, consulting the
// on-disk cache when enabled. Cache failures degrade to a plain
// fetch.
func fetchMetadataBlob(cfg *config.Config, c *client.Client) []byte {
	if !cfg.Cache {
		blob, err := c.FetchRawMetadata()
		if err != nil {
			fatal("%v", err)
		}
		return blob
	}

	genesis, err := c.GenesisHash()
	if err != nil {
		fatal("%v", err)
	}
	rv, err := c.GetRuntimeVersion()
	if err != nil {
		fatal("%v", err)
	}

	cache, err := metacache.Open(cfg.CacheDir())
	if err != nil {
		log.Cache.Warn().Err(err).Msg("metadata cache unavailable")
		blob, err := c.FetchRawMetadata()
		if err != nil {
			fatal("%v", err)
		}
		return blob
	}
	defer cache.Close()

	if blob, err := cache.Get(genesis, rv.SpecVersion); err == nil {
		return blob
	}
	blob, err := c.FetchRawMetadata()
	if err != nil {
		fatal("%v", err)
	}
	if err := cache.Put(genesis, rv.SpecVersion, blob); err != nil {
		log.Cache.Warn().Err(err).Msg("cache metadata")
	}
	return blob
}
