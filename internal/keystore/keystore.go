// Package keystore stores encrypted signing keys on disk, one JSON
// file per named key.
package keystore

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zeebo/blake3"

	"github.com/chainx-org/chainx-cli/internal/keyring"
)

// keyFile is the on-disk JSON format for one encrypted key.
type keyFile struct {
	Version    int       `json:"version"`
	CreatedAt  time.Time `json:"created_at"`
	Address    string    `json:"address"`
	SealedSeed []byte    `json:"sealed_seed"`
	Checksum   string    `json:"checksum"` // blake3 of the sealed seed, hex
}

// Keystore reads and writes encrypted keys under one directory.
type Keystore struct {
	dir string
}

// New opens a keystore directory, creating it if needed.
func New(dir string) (*Keystore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create keystore dir: %w", err)
	}
	return &Keystore{dir: dir}, nil
}

func (ks *Keystore) keyPath(name string) string {
	return filepath.Join(ks.dir, name+".json")
}

// Create seals a keypair's seed under a password and writes it as a
// new named key. Fails if the name is taken.
func (ks *Keystore) Create(name string, kp *keyring.Keypair, password []byte) error {
	path := ks.keyPath(name)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("key %q already exists", name)
	}

	sealed, err := seal(kp.Seed(), password, DefaultKDFParams())
	if err != nil {
		return fmt.Errorf("seal key: %w", err)
	}
	sum := blake3.Sum256(sealed)

	kf := keyFile{
		Version:    1,
		CreatedAt:  time.Now().UTC(),
		Address:    kp.Address(),
		SealedSeed: sealed,
		Checksum:   hex.EncodeToString(sum[:]),
	}
	data, err := json.MarshalIndent(&kf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal key: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write key: %w", err)
	}
	return nil
}

// Unlock decrypts a named key and returns its keypair.
func (ks *Keystore) Unlock(name string, password []byte) (*keyring.Keypair, error) {
	kf, err := ks.read(name)
	if err != nil {
		return nil, err
	}
	seed, err := open(kf.SealedSeed, password)
	if err != nil {
		return nil, fmt.Errorf("unlock key %q: %w", name, err)
	}
	defer zero(seed)
	return keyring.FromSeed(seed)
}

// Address returns a named key's SS58 address without decrypting it.
func (ks *Keystore) Address(name string) (string, error) {
	kf, err := ks.read(name)
	if err != nil {
		return "", err
	}
	return kf.Address, nil
}

// List returns the names of all stored keys.
func (ks *Keystore) List() ([]string, error) {
	entries, err := os.ReadDir(ks.dir)
	if err != nil {
		return nil, fmt.Errorf("read keystore dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if ext := filepath.Ext(name); ext == ".json" {
			names = append(names, name[:len(name)-len(ext)])
		}
	}
	return names, nil
}

// Delete removes a named key.
func (ks *Keystore) Delete(name string) error {
	path := ks.keyPath(name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("key %q not found", name)
	}
	return os.Remove(path)
}

func (ks *Keystore) read(name string) (*keyFile, error) {
	data, err := os.ReadFile(ks.keyPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("key %q not found", name)
		}
		return nil, fmt.Errorf("read key: %w", err)
	}
	var kf keyFile
	if err := json.Unmarshal(data, &kf); err != nil {
		return nil, fmt.Errorf("parse key %q: %w", name, err)
	}
	sum := blake3.Sum256(kf.SealedSeed)
	if kf.Checksum != hex.EncodeToString(sum[:]) {
		return nil, fmt.Errorf("key %q failed integrity check", name)
	}
	return &kf, nil
}
