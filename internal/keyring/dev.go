package keyring

import (
	"fmt"
	"strings"
)

// DevMnemonic is the well-known development mnemonic every substrate
// chain ships with. Never fund these accounts on mainnet.
const DevMnemonic = "bottom drive obey lake curtain smoke basket hold race lonely fit walk"

// devAccounts maps the conventional dev account names to their BIP-44
// account index under DevMnemonic.
var devAccounts = map[string]uint32{
	"alice":   0,
	"bob":     1,
	"charlie": 2,
	"dave":    3,
	"eve":     4,
	"ferdie":  5,
	"one":     6,
	"two":     7,
}

// IsDevAccount reports whether name (case insensitive) is one of the
// well-known development accounts.
func IsDevAccount(name string) bool {
	_, ok := devAccounts[strings.ToLower(name)]
	return ok
}

// Dev returns the keypair for a well-known development account name
// such as "Alice" or "Bob".
func Dev(name string) (*Keypair, error) {
	idx, ok := devAccounts[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("keyring: unknown dev account %q", name)
	}
	return FromMnemonic(DevMnemonic, "", idx)
}
