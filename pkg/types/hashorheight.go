package types

import (
	"fmt"
	"strconv"
	"strings"
)

// HashOrHeight is a block reference given either as a 0x-prefixed hash
// or as a decimal block height. Exactly one of the fields is set.
type HashOrHeight struct {
	Hash   *Hash
	Height *uint64
}

// ParseHashOrHeight interprets s as a block height when it is a plain
// decimal number, otherwise as a 32-byte block hash.
func ParseHashOrHeight(s string) (HashOrHeight, error) {
	if !strings.HasPrefix(s, "0x") {
		if n, err := strconv.ParseUint(s, 10, 64); err == nil {
			return HashOrHeight{Height: &n}, nil
		}
	}
	h, err := HexToHash(s)
	if err != nil {
		return HashOrHeight{}, fmt.Errorf("%q is neither a block height nor a block hash: %w", s, err)
	}
	return HashOrHeight{Hash: &h}, nil
}

// String renders the populated alternative.
func (hh HashOrHeight) String() string {
	switch {
	case hh.Hash != nil:
		return hh.Hash.String()
	case hh.Height != nil:
		return strconv.FormatUint(*hh.Height, 10)
	default:
		return ""
	}
}
