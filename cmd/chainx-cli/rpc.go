package main

import (
	"fmt"
	"strconv"

	"github.com/chainx-org/chainx-cli/config"
	"github.com/chainx-org/chainx-cli/internal/client"
	"github.com/chainx-org/chainx-cli/pkg/types"
)

func cmdRPC(cfg *config.Config, args []string) {
	if len(args) == 0 {
		fatal("rpc requires a subcommand (run 'chainx-cli help')")
	}

	c := dial(cfg)
	defer c.Close()

	sub := args[0]
	args = args[1:]

	switch sub {
	case "header":
		printJSON(c.GetHeader(optionalHash(args, 0)))
	case "block":
		if len(args) == 0 {
			printJSON(c.GetBlock(nil))
			return
		}
		hh, err := types.ParseHashOrHeight(args[0])
		if err != nil {
			fatal("%v", err)
		}
		if hh.Height != nil {
			printJSON(c.GetBlockByHeight(*hh.Height))
		} else {
			printJSON(c.GetBlock(hh.Hash))
		}
	case "block-hash":
		if len(args) == 0 {
			printJSON(c.GetBlockHash(nil))
			return
		}
		height := argUint64(args[0], "height")
		printJSON(c.GetBlockHash(&height))
	case "finalized-head":
		printJSON(c.GetFinalizedHead())
	case "genesis":
		hash, err := c.GenesisHash()
		if err != nil {
			fatal("%v", err)
		}
		fmt.Println(hash)
	case "runtime-version":
		rv, err := c.GetRuntimeVersion()
		if err != nil {
			fatal("%v", err)
		}
		fmt.Printf("%s/%s spec=%d impl=%d tx=%d\n",
			rv.SpecName, rv.ImplName, rv.SpecVersion, rv.ImplVersion, rv.TransactionVersion)
	case "next-index":
		nonce, err := c.AccountNextIndex(argAccount(args, 0))
		if err != nil {
			fatal("%v", err)
		}
		fmt.Println(nonce)
	case "storage":
		if len(args) == 0 {
			fatal("rpc storage requires a 0x storage key")
		}
		printJSON(c.GetStorage(args[0], optionalHash(args, 1)))
	case "system":
		cmdRPCSystem(c, args)

	case "assets":
		if len(args) > 0 {
			printJSON(c.GetAssetsByAccount(argAccount(args, 0), 0, 100, nil))
		} else {
			printJSON(c.GetAssets(0, 100, nil))
		}
	case "verify-address":
		if len(args) < 2 {
			fatal("rpc verify-address requires <token> <addr> [memo]")
		}
		memo := ""
		if len(args) > 2 {
			memo = args[2]
		}
		printJSON(c.VerifyAddressValidity(args[0], args[1], memo, nil))
	case "withdrawal-limit":
		printJSON(c.GetWithdrawalLimitByToken(argString(args, 0, "token"), nil))
	case "deposit-limit":
		printJSON(c.GetDepositLimitByToken(argString(args, 0, "token"), nil))
	case "withdrawals":
		printJSON(c.GetWithdrawalList(argString(args, 0, "chain"), 0, 100, nil))
	case "deposits":
		printJSON(c.GetDepositList(argString(args, 0, "chain"), 0, 100, nil))
	case "nominations":
		printJSON(c.GetNominationRecords(argAccount(args, 0), nil))
	case "psedu-nominations":
		printJSON(c.GetPseduNominationRecords(argAccount(args, 0), nil))
	case "next-renominate":
		printJSON(c.GetNextRenominate(argAccount(args, 0), nil))
	case "intentions":
		printJSON(c.GetIntentions(nil))
	case "intention":
		printJSON(c.GetIntentionByAccount(argAccount(args, 0), nil))
	case "psedu-intentions":
		printJSON(c.GetPseduIntentions(nil))
	case "trading-pairs":
		printJSON(c.GetTradingPairs(nil))
	case "quotations":
		pairID := uint32(argUint64(argString(args, 0, "pair-id"), "pair-id"))
		pieces := uint32(10)
		if len(args) > 1 {
			pieces = uint32(argUint64(args[1], "pieces"))
		}
		printJSON(c.GetQuotations(pairID, pieces, nil))
	case "orders":
		printJSON(c.GetOrders(argAccount(args, 0), 0, 100, nil))
	case "binding":
		if len(args) < 2 {
			fatal("rpc binding requires <account> <chain>")
		}
		printJSON(c.GetAddressByAccount(argAccount(args, 0), args[1], nil))
	case "trustees":
		chain := argString(args, 0, "chain")
		var era *uint32
		if len(args) > 1 {
			e := uint32(argUint64(args[1], "era"))
			era = &e
		}
		printJSON(c.GetTrusteeSessionInfo(chain, era, nil))
	case "trustee":
		printJSON(c.GetTrusteeInfoByAccount(argAccount(args, 0), nil))
	case "call-fee":
		if len(args) < 2 {
			fatal("rpc call-fee requires <call-hex> <tx-len>")
		}
		printJSON(c.GetFeeByCallAndLength(args[0], argUint64(args[1], "tx-len"), nil))
	case "withdraw-tx":
		printJSON(c.GetWithdrawTx(argString(args, 0, "chain"), nil))
	case "particular-accounts":
		printJSON(c.GetParticularAccounts(nil))
	case "mock-trustees":
		if len(args) == 0 {
			fatal("rpc mock-trustees requires candidate accounts")
		}
		candidates := make([]types.AccountID, len(args))
		for i := range args {
			candidates[i] = argAccount(args, i)
		}
		printJSON(c.GetMockBitcoinNewTrustees(candidates, nil))

	default:
		fatal("unknown rpc subcommand %q", sub)
	}
}

func cmdRPCSystem(c *client.Client, args []string) {
	if len(args) == 0 {
		fatal("rpc system requires a query name")
	}
	switch args[0] {
	case "name":
		printJSON(c.SystemName())
	case "version":
		printJSON(c.SystemVersion())
	case "chain":
		printJSON(c.SystemChain())
	case "properties":
		printJSON(c.SystemProperties())
	case "health":
		printJSON(c.SystemHealth())
	case "peers":
		printJSON(c.SystemPeers())
	case "network-state":
		printJSON(c.SystemNetworkState())
	default:
		fatal("unknown system query %q", args[0])
	}
}

// optionalHash parses args[i] as a block hash when present.
func optionalHash(args []string, i int) *types.Hash {
	if len(args) <= i {
		return nil
	}
	h, err := types.HexToHash(args[i])
	if err != nil {
		fatal("invalid block hash %q: %v", args[i], err)
	}
	return &h
}

func argAccount(args []string, i int) types.AccountID {
	if len(args) <= i {
		fatal("missing account argument")
	}
	who, err := types.ParseAddress(args[i])
	if err != nil {
		fatal("invalid account %q: %v", args[i], err)
	}
	return who
}

func argString(args []string, i int, name string) string {
	if len(args) <= i {
		fatal("missing %s argument", name)
	}
	return args[i]
}

func argUint64(s, name string) uint64 {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		fatal("invalid %s %q", name, s)
	}
	return n
}
