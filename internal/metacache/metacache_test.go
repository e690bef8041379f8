package metacache

import (
	"bytes"
	"errors"
	"testing"

	"github.com/chainx-org/chainx-cli/pkg/types"
)

func testGenesis() types.Hash {
	var h types.Hash
	h[0] = 0x42
	return h
}

func TestCache_PutGet(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	blob := []byte{0x6d, 0x65, 0x74, 0x61, 12, 1, 2, 3}
	if err := c.Put(testGenesis(), 25, blob); err != nil {
		t.Fatal(err)
	}
	got, err := c.Get(testGenesis(), 25)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, blob) {
		t.Error("cached blob differs")
	}
}

func TestCache_Miss(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if _, err := c.Get(testGenesis(), 25); !errors.Is(err, ErrMiss) {
		t.Errorf("err = %v, want ErrMiss", err)
	}
}

func TestCache_KeyedBySpecVersion(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if err := c.Put(testGenesis(), 25, []byte{1}); err != nil {
		t.Fatal(err)
	}
	if err := c.Put(testGenesis(), 26, []byte{2}); err != nil {
		t.Fatal(err)
	}
	old, err := c.Get(testGenesis(), 25)
	if err != nil {
		t.Fatal(err)
	}
	upgraded, err := c.Get(testGenesis(), 26)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(old, upgraded) {
		t.Error("spec versions share a cache entry")
	}

	var otherChain types.Hash
	otherChain[0] = 0x43
	if _, err := c.Get(otherChain, 25); !errors.Is(err, ErrMiss) {
		t.Errorf("cross-chain lookup err = %v, want ErrMiss", err)
	}
}

func TestCache_Persists(t *testing.T) {
	dir := t.TempDir()

	c, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Put(testGenesis(), 25, []byte{9, 9}); err != nil {
		t.Fatal(err)
	}
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}

	c, err = Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	got, err := c.Get(testGenesis(), 25)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte{9, 9}) {
		t.Error("cache did not persist across reopen")
	}
}
