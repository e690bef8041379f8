// Package keyring manages the secp256k1 keypairs the CLI signs with,
// derived from BIP-39 mnemonics along BIP-44 paths.
package keyring

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/tyler-smith/go-bip32"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/blake2b"

	"github.com/chainx-org/chainx-cli/pkg/types"
)

// BIP-44 derivation path constants.
// Full path: m/44'/ChainXCoinType'/account'/0/0
const (
	purposeBIP44 = bip32.FirstHardenedChild + 44

	// CoinTypeChainX is the SLIP-44 coin type for ChainX (hardened).
	CoinTypeChainX = bip32.FirstHardenedChild + 239
)

// Keypair is a secp256k1 signing key and its derived on-chain account.
type Keypair struct {
	key *secp256k1.PrivateKey
}

// FromSeed wraps a raw 32-byte private key scalar.
func FromSeed(seed []byte) (*Keypair, error) {
	if len(seed) != 32 {
		return nil, fmt.Errorf("keyring: seed must be 32 bytes, got %d", len(seed))
	}
	key := secp256k1.PrivKeyFromBytes(seed)
	if key.Key.IsZero() {
		return nil, fmt.Errorf("keyring: seed is not a valid scalar")
	}
	return &Keypair{key: key}, nil
}

// FromMnemonic derives the keypair at m/44'/239'/account'/0/0 from a
// BIP-39 mnemonic and optional passphrase.
func FromMnemonic(mnemonic, passphrase string, account uint32) (*Keypair, error) {
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, passphrase)
	if err != nil {
		return nil, fmt.Errorf("keyring: derive seed: %w", err)
	}
	master, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("keyring: master key: %w", err)
	}
	node := master
	for _, idx := range []uint32{purposeBIP44, CoinTypeChainX, bip32.FirstHardenedChild + account, 0, 0} {
		if node, err = node.NewChildKey(idx); err != nil {
			return nil, fmt.Errorf("keyring: derive child %d: %w", idx, err)
		}
	}
	return FromSeed(privateScalar(node))
}

// GenerateMnemonic creates a new 24-word BIP-39 mnemonic.
func GenerateMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return "", fmt.Errorf("keyring: generate entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("keyring: generate mnemonic: %w", err)
	}
	return mnemonic, nil
}

// ValidateMnemonic checks word count, wordlist membership and checksum.
func ValidateMnemonic(mnemonic string) bool {
	return bip39.IsMnemonicValid(mnemonic)
}

// bip32 private key material carries a leading 0x00 pad byte.
func privateScalar(k *bip32.Key) []byte {
	raw := k.Key
	if len(raw) == 33 && raw[0] == 0 {
		return raw[1:]
	}
	return raw
}

// Public returns the compressed 33-byte public key.
func (kp *Keypair) Public() []byte {
	return kp.key.PubKey().SerializeCompressed()
}

// Seed returns the raw 32-byte private key scalar.
func (kp *Keypair) Seed() []byte {
	return kp.key.Serialize()
}

// AccountID is the blake2b-256 hash of the compressed public key.
func (kp *Keypair) AccountID() types.AccountID {
	return types.AccountID(blake2b.Sum256(kp.Public()))
}

// Address renders the account in SS58 form under the configured
// network prefix.
func (kp *Keypair) Address() string {
	return kp.AccountID().String()
}

// Sign produces a 65-byte recoverable ECDSA signature (r || s || v)
// over the blake2b-256 digest of msg.
func (kp *Keypair) Sign(msg []byte) ([]byte, error) {
	digest := blake2b.Sum256(msg)
	compact := ecdsa.SignCompact(kp.key, digest[:], true)
	// SignCompact leads with the recovery code; the chain expects it
	// last.
	sig := make([]byte, 65)
	copy(sig, compact[1:])
	sig[64] = compact[0] - 27 - 4
	return sig, nil
}

// Verify checks a 65-byte recoverable signature against msg and the
// compressed public key.
func Verify(msg, sig, pub []byte) bool {
	if len(sig) != 65 {
		return false
	}
	digest := blake2b.Sum256(msg)
	compact := make([]byte, 65)
	compact[0] = sig[64] + 27 + 4
	copy(compact[1:], sig[:64])
	recovered, _, err := ecdsa.RecoverCompact(compact, digest[:])
	if err != nil {
		return false
	}
	got := recovered.SerializeCompressed()
	if len(got) != len(pub) {
		return false
	}
	for i := range got {
		if got[i] != pub[i] {
			return false
		}
	}
	return true
}

// Zero wipes the private key material.
func (kp *Keypair) Zero() {
	kp.key.Zero()
}
