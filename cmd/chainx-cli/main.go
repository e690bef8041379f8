// chainx-cli is a command-line client for a ChainX node: runtime
// metadata inspection, node queries and extrinsic submission.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/chainx-org/chainx-cli/config"
	"github.com/chainx-org/chainx-cli/internal/client"
	"github.com/chainx-org/chainx-cli/internal/log"
	"github.com/chainx-org/chainx-cli/pkg/types"
)

var version = "0.1.0"

func main() {
	flags := config.ParseFlags()

	if flags.Version {
		fmt.Printf("chainx-cli %s\n", version)
		return
	}
	if flags.Help || len(flags.Args) == 0 {
		usage()
		if flags.Help {
			return
		}
		os.Exit(1)
	}

	cfg := config.DefaultMainnet()
	if flags.Network == string(config.Testnet) {
		cfg = config.DefaultTestnet()
	}
	if flags.Config != "" {
		values, err := config.LoadFile(flags.Config)
		if err != nil {
			fatal("load config: %v", err)
		}
		if err := config.ApplyFileConfig(cfg, values); err != nil {
			fatal("apply config: %v", err)
		}
	}
	flags.Apply(cfg)
	if err := config.Validate(cfg); err != nil {
		fatal("%v", err)
	}

	types.SetAddressPrefix(cfg.Network.AddressPrefix())
	log.Init(cfg.Log.Level, cfg.Log.JSON)

	cmd := flags.Args[0]
	cmdArgs := flags.Args[1:]

	switch cmd {
	case "meta":
		cmdMeta(cfg, cmdArgs)
	case "rpc":
		cmdRPC(cfg, cmdArgs)
	case "balances":
		cmdBalances(cfg, cmdArgs)
	case "xassets":
		cmdXAssets(cfg, cmdArgs)
	case "xstaking":
		cmdXStaking(cfg, cmdArgs)
	case "sudo":
		cmdSudo(cfg, cmdArgs)
	case "session":
		cmdSession(cfg, cmdArgs)
	case "wallet":
		cmdWallet(cfg, cmdArgs)
	case "help":
		usage()
	default:
		fatal("unknown command %q (run 'chainx-cli help')", cmd)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: chainx-cli [global flags] <command> [flags]

Global flags:
  --url <url>         Node RPC endpoint (default: %s)
  --network <net>     mainnet (default) or testnet
  --datadir <path>    Data directory (default: ~/.chainx-cli)
  --config <path>     Config file (key = value lines)
  --signer <name>     Signing key: dev account (Alice..Two) or keystore key
  --cache             Cache runtime metadata on disk
  --log-level <lvl>   debug, info, warn (default) or error
  --log-json          Log as JSON

Commands:
  meta get [module]               Show runtime metadata, optionally one module
  meta version                    Show the metadata schema version

  rpc header [hash]               Show a block header
  rpc block [hash|height]         Show a block
  rpc block-hash [height]         Show a block hash
  rpc finalized-head              Show the finalized head hash
  rpc genesis                     Show the genesis hash
  rpc runtime-version             Show the runtime version
  rpc next-index <account>        Show an account's next nonce
  rpc storage <key> [hash]        Read a storage key (0x hex)
  rpc system <name|version|chain|properties|health|peers|network-state>
  rpc assets [account]            List assets, or one account's balances
  rpc verify-address <token> <addr> [memo]
  rpc withdrawal-limit <token>    Show withdrawal bounds for a token
  rpc deposit-limit <token>       Show deposit bounds for a token
  rpc withdrawals <chain>         List pending withdrawals
  rpc deposits <chain>            List pending deposits
  rpc nominations <account>       Show staking nominations
  rpc psedu-nominations <account> Show psedu nominations
  rpc intentions                  List validator intentions
  rpc intention <account>         Show one validator intention
  rpc psedu-intentions            List psedu intentions
  rpc trading-pairs               List spot trading pairs
  rpc quotations <pair-id> [pieces]
  rpc orders <account>            List an account's open orders
  rpc binding <account> <chain>   Show an account's binding address
  rpc trustees <chain> [era]      Show a trustee session
  rpc trustee <account>           Show an account's trustee info
  rpc call-fee <call-hex> <tx-len>
  rpc withdraw-tx <chain>         Show the pending withdrawal tx
  rpc mock-trustees <addr>...     Preview a bitcoin trustee set

  balances transfer --to <addr> --amount <n>
  xassets transfer --to <addr> --token <sym> --amount <n> [--memo <text>]
  xstaking bond --target <addr> --amount <n>
  xstaking unbond --target <addr> --amount <n>
  xstaking rebond --from <addr> --to <addr> --amount <n>
  sudo call --call <hex>          Dispatch a raw call as root
  session set-keys --keys <hex>   Rotate session keys

  wallet generate                 Generate a new mnemonic
  wallet create --name <n>        Create a key from a new mnemonic
  wallet import --name <n> --mnemonic "..."
  wallet list                     List keystore keys
  wallet address --name <n>       Show a key's address
  wallet export --name <n>        Export a key's seed
  wallet delete --name <n>        Delete a key
  wallet dev                      List the well-known dev accounts
`, config.DefaultURL)
}

// dial connects to the configured node.
func dial(cfg *config.Config) *client.Client {
	c, err := client.Dial(cfg.URL)
	if err != nil {
		fatal("connect to %s: %v", cfg.URL, err)
	}
	return c
}

// printJSON pretty-prints an RPC result to stdout.
func printJSON(v json.RawMessage, err error) {
	if err != nil {
		fatal("%v", err)
	}
	fmt.Println(string(indentJSON(v)))
}

// indentJSON re-indents an RPC result for display. Anything that does
// not re-marshal cleanly is passed through unchanged rather than
// dropped.
func indentJSON(v json.RawMessage) []byte {
	var buf interface{}
	if err := json.Unmarshal(v, &buf); err != nil {
		return v
	}
	indented, err := json.MarshalIndent(buf, "", "  ")
	if err != nil {
		return v
	}
	return indented
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
