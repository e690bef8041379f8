package types

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

// AccountIDSize is the length of an account ID in bytes.
const AccountIDSize = 32

// AccountID is a 256-bit on-chain account identifier.
type AccountID [AccountIDSize]byte

// SS58 network prefixes.
const (
	// MainnetPrefix is the registered ChainX SS58 prefix.
	MainnetPrefix uint8 = 44
	// TestnetPrefix is the generic substrate dev-chain prefix.
	TestnetPrefix uint8 = 42
)

// addressPrefix is the SS58 network prefix applied by String and
// expected by ParseAddress. Set once at startup from the network flag.
var addressPrefix = MainnetPrefix

// SetAddressPrefix sets the SS58 network prefix for address
// formatting and parsing.
func SetAddressPrefix(prefix uint8) {
	addressPrefix = prefix
}

// ss58Preimage is the checksum domain separator defined by the SS58
// address format.
var ss58Preimage = []byte("SS58PRE")

// String returns the SS58 encoding of the account under the configured
// network prefix.
func (a AccountID) String() string {
	payload := make([]byte, 0, 1+AccountIDSize+2)
	payload = append(payload, addressPrefix)
	payload = append(payload, a[:]...)
	payload = append(payload, ss58Checksum(payload)...)
	return base58.Encode(payload)
}

// Hex returns the 0x-prefixed hex encoding of the raw account bytes.
func (a AccountID) Hex() string {
	return "0x" + hex.EncodeToString(a[:])
}

// IsZero returns true if the account ID is all zeros.
func (a AccountID) IsZero() bool {
	return a == AccountID{}
}

// MarshalJSON encodes the account as its SS58 address.
func (a AccountID) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes an SS58 address or 0x-prefixed hex string.
func (a *AccountID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAddress parses an account from either an SS58 address or a
// 0x-prefixed 32-byte hex string.
func ParseAddress(s string) (AccountID, error) {
	if strings.HasPrefix(s, "0x") {
		b, err := hex.DecodeString(s[2:])
		if err != nil {
			return AccountID{}, fmt.Errorf("invalid account hex: %w", err)
		}
		if len(b) != AccountIDSize {
			return AccountID{}, fmt.Errorf("account must be %d bytes, got %d", AccountIDSize, len(b))
		}
		var a AccountID
		copy(a[:], b)
		return a, nil
	}

	payload, err := base58.Decode(s)
	if err != nil {
		return AccountID{}, fmt.Errorf("invalid ss58 address: %w", err)
	}
	if len(payload) != 1+AccountIDSize+2 {
		return AccountID{}, fmt.Errorf("invalid ss58 address length %d", len(payload))
	}
	if payload[0] != addressPrefix {
		return AccountID{}, fmt.Errorf("ss58 prefix %d does not match network prefix %d", payload[0], addressPrefix)
	}
	body := payload[:1+AccountIDSize]
	if !bytes.Equal(payload[1+AccountIDSize:], ss58Checksum(body)) {
		return AccountID{}, fmt.Errorf("ss58 checksum mismatch")
	}
	var a AccountID
	copy(a[:], body[1:])
	return a, nil
}

// ss58Checksum computes the 2-byte SS58 checksum over the prefixed
// account payload.
func ss58Checksum(data []byte) []byte {
	h, _ := blake2b.New512(nil)
	h.Write(ss58Preimage)
	h.Write(data)
	return h.Sum(nil)[:2]
}
