package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"strings"

	"github.com/chainx-org/chainx-cli/config"
	"github.com/chainx-org/chainx-cli/internal/keyring"
	"github.com/chainx-org/chainx-cli/internal/keystore"
	"github.com/chainx-org/chainx-cli/internal/log"
	"github.com/chainx-org/chainx-cli/pkg/extrinsic"
	"github.com/chainx-org/chainx-cli/pkg/scale"
	"github.com/chainx-org/chainx-cli/pkg/types"
)

// resolveSigner loads the configured signing key: a well-known dev
// account by name, otherwise a keystore key unlocked with a password
// prompt.
func resolveSigner(cfg *config.Config) *keyring.Keypair {
	if cfg.Signer == "" {
		fatal("no signer configured (use --signer)")
	}
	if keyring.IsDevAccount(cfg.Signer) {
		kp, err := keyring.Dev(cfg.Signer)
		if err != nil {
			fatal("%v", err)
		}
		return kp
	}
	ks, err := keystore.New(cfg.KeystoreDir())
	if err != nil {
		fatal("%v", err)
	}
	password, err := readPassword("Password: ")
	if err != nil {
		fatal("read password: %v", err)
	}
	kp, err := ks.Unlock(cfg.Signer, password)
	if err != nil {
		fatal("%v", err)
	}
	return kp
}

// submitCall resolves module.call against the node's runtime metadata,
// signs an extrinsic over args and submits it.
func submitCall(cfg *config.Config, module, call string, argBytes []byte) {
	signer := resolveSigner(cfg)
	defer signer.Zero()

	c := dial(cfg)
	defer c.Close()

	meta, err := decodeMetadata(cfg, c)
	if err != nil {
		fatal("%v", err)
	}
	index, err := extrinsic.ResolveCall(meta, module, call)
	if err != nil {
		fatal("%v", err)
	}

	genesis, err := c.GenesisHash()
	if err != nil {
		fatal("%v", err)
	}
	rv, err := c.GetRuntimeVersion()
	if err != nil {
		fatal("%v", err)
	}
	nonce, err := c.AccountNextIndex(signer.AccountID())
	if err != nil {
		fatal("%v", err)
	}

	signed, err := extrinsic.NewSigned(
		extrinsic.Call{Index: index, Args: argBytes},
		signer,
		extrinsic.SigningContext{
			SpecVersion: rv.SpecVersion,
			TxVersion:   rv.TransactionVersion,
			GenesisHash: genesis,
			Nonce:       nonce,
		},
	)
	if err != nil {
		fatal("sign extrinsic: %v", err)
	}

	log.RPC.Debug().
		Str("module", module).
		Str("call", call).
		Uint64("nonce", nonce).
		Int("bytes", len(signed)).
		Msg("submitting extrinsic")

	hash, err := c.SubmitExtrinsic(signed)
	if err != nil {
		fatal("%v", err)
	}
	fmt.Println(hash)
}

func cmdBalances(cfg *config.Config, args []string) {
	if len(args) == 0 || args[0] != "transfer" {
		fatal("balances requires the transfer subcommand")
	}
	fs := flag.NewFlagSet("balances transfer", flag.ExitOnError)
	to := fs.String("to", "", "Destination address (SS58 or 0x hex)")
	amount := fs.Uint64("amount", 0, "Amount in the smallest unit")
	if err := fs.Parse(args[1:]); err != nil {
		fatal("%v", err)
	}
	dest := parseAddressFlag(*to, "--to")

	var callArgs []byte
	callArgs = extrinsic.AppendAddress(callArgs, dest)
	callArgs = extrinsic.AppendBalance(callArgs, *amount)
	submitCall(cfg, "Balances", "transfer", callArgs)
}

func cmdXAssets(cfg *config.Config, args []string) {
	if len(args) == 0 || args[0] != "transfer" {
		fatal("xassets requires the transfer subcommand")
	}
	fs := flag.NewFlagSet("xassets transfer", flag.ExitOnError)
	to := fs.String("to", "", "Destination address (SS58 or 0x hex)")
	token := fs.String("token", "", "Token symbol, e.g. BTC")
	amount := fs.Uint64("amount", 0, "Amount in the token's smallest unit")
	memo := fs.String("memo", "", "Optional transfer memo")
	if err := fs.Parse(args[1:]); err != nil {
		fatal("%v", err)
	}
	if *token == "" {
		fatal("--token is required")
	}
	dest := parseAddressFlag(*to, "--to")

	var callArgs []byte
	callArgs = extrinsic.AppendAddress(callArgs, dest)
	callArgs = scale.AppendText(callArgs, *token)
	callArgs = extrinsic.AppendBalance(callArgs, *amount)
	callArgs = extrinsic.AppendMemo(callArgs, *memo)
	submitCall(cfg, "XAssets", "transfer", callArgs)
}

func cmdXStaking(cfg *config.Config, args []string) {
	if len(args) == 0 {
		fatal("xstaking requires a subcommand: bond, unbond, rebond")
	}
	sub := args[0]
	fs := flag.NewFlagSet("xstaking "+sub, flag.ExitOnError)
	target := fs.String("target", "", "Validator address")
	from := fs.String("from", "", "Validator to move the bond from")
	to := fs.String("to", "", "Validator to move the bond to")
	amount := fs.Uint64("amount", 0, "Amount in the smallest unit")
	if err := fs.Parse(args[1:]); err != nil {
		fatal("%v", err)
	}

	var callArgs []byte
	switch sub {
	case "bond", "unbond":
		callArgs = extrinsic.AppendAccountID(callArgs, parseAddressFlag(*target, "--target"))
		callArgs = extrinsic.AppendBalance(callArgs, *amount)
	case "rebond":
		callArgs = extrinsic.AppendAccountID(callArgs, parseAddressFlag(*from, "--from"))
		callArgs = extrinsic.AppendAccountID(callArgs, parseAddressFlag(*to, "--to"))
		callArgs = extrinsic.AppendBalance(callArgs, *amount)
	default:
		fatal("unknown xstaking subcommand %q", sub)
	}
	submitCall(cfg, "XStaking", sub, callArgs)
}

func cmdSudo(cfg *config.Config, args []string) {
	if len(args) == 0 || args[0] != "call" {
		fatal("sudo requires the call subcommand")
	}
	fs := flag.NewFlagSet("sudo call", flag.ExitOnError)
	call := fs.String("call", "", "SCALE-encoded inner call as 0x hex")
	if err := fs.Parse(args[1:]); err != nil {
		fatal("%v", err)
	}
	inner, err := hex.DecodeString(strings.TrimPrefix(*call, "0x"))
	if err != nil || len(inner) == 0 {
		fatal("--call must be non-empty hex")
	}
	submitCall(cfg, "Sudo", "sudo", inner)
}

func cmdSession(cfg *config.Config, args []string) {
	if len(args) == 0 || args[0] != "set-keys" {
		fatal("session requires the set-keys subcommand")
	}
	fs := flag.NewFlagSet("session set-keys", flag.ExitOnError)
	keys := fs.String("keys", "", "Session keys as 0x hex (from author_rotateKeys)")
	if err := fs.Parse(args[1:]); err != nil {
		fatal("%v", err)
	}
	raw, err := hex.DecodeString(strings.TrimPrefix(*keys, "0x"))
	if err != nil || len(raw) == 0 {
		fatal("--keys must be non-empty hex")
	}

	var callArgs []byte
	callArgs = append(callArgs, raw...)
	callArgs = scale.AppendBytes(callArgs, nil) // empty ownership proof
	submitCall(cfg, "Session", "set_keys", callArgs)
}

func parseAddressFlag(s, name string) types.AccountID {
	if s == "" {
		fatal("%s is required", name)
	}
	who, err := types.ParseAddress(s)
	if err != nil {
		fatal("invalid address %q: %v", s, err)
	}
	return who
}
