package types

import (
	"encoding/json"
	"testing"
)

func TestHexToHash(t *testing.T) {
	const hex = "0102030405060708091011121314151617181920212223242526272829303132"
	for _, in := range []string{hex, "0x" + hex} {
		h, err := HexToHash(in)
		if err != nil {
			t.Fatalf("HexToHash(%q): %v", in, err)
		}
		if h.String() != "0x"+hex {
			t.Errorf("String() = %s", h.String())
		}
	}
}

func TestHexToHash_Invalid(t *testing.T) {
	for _, in := range []string{"", "0x01", "0xzz", "0x" + "00"} {
		if _, err := HexToHash(in); err == nil {
			t.Errorf("HexToHash(%q) succeeded", in)
		}
	}
}

func TestHash_JSON(t *testing.T) {
	h, err := HexToHash("0x0102030405060708091011121314151617181920212223242526272829303132")
	if err != nil {
		t.Fatal(err)
	}
	out, err := json.Marshal(h)
	if err != nil {
		t.Fatal(err)
	}
	var back Hash
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatal(err)
	}
	if back != h {
		t.Error("JSON round trip changed hash")
	}
}

func TestParseHashOrHeight(t *testing.T) {
	hh, err := ParseHashOrHeight("12345")
	if err != nil {
		t.Fatal(err)
	}
	if hh.Height == nil || *hh.Height != 12345 {
		t.Errorf("height = %v", hh.Height)
	}

	hh, err = ParseHashOrHeight("0x0102030405060708091011121314151617181920212223242526272829303132")
	if err != nil {
		t.Fatal(err)
	}
	if hh.Hash == nil {
		t.Error("hash not set")
	}

	if _, err := ParseHashOrHeight("not-a-block"); err == nil {
		t.Error("accepted garbage block reference")
	}
}
