package types

import (
	"strings"
	"testing"
)

func testAccount() AccountID {
	var a AccountID
	for i := range a {
		a[i] = byte(i + 1)
	}
	return a
}

func TestAccountID_SS58RoundTrip(t *testing.T) {
	for _, prefix := range []uint8{MainnetPrefix, TestnetPrefix} {
		SetAddressPrefix(prefix)
		a := testAccount()
		addr := a.String()
		parsed, err := ParseAddress(addr)
		if err != nil {
			t.Fatalf("prefix %d: ParseAddress(%q): %v", prefix, addr, err)
		}
		if parsed != a {
			t.Errorf("prefix %d: round trip changed account", prefix)
		}
	}
	SetAddressPrefix(MainnetPrefix)
}

func TestParseAddress_WrongNetwork(t *testing.T) {
	SetAddressPrefix(TestnetPrefix)
	addr := testAccount().String()
	SetAddressPrefix(MainnetPrefix)

	if _, err := ParseAddress(addr); err == nil {
		t.Error("accepted testnet address on mainnet")
	}
}

func TestParseAddress_BadChecksum(t *testing.T) {
	addr := testAccount().String()
	// Swap two distinct trailing characters to corrupt the checksum.
	b := []byte(addr)
	last := len(b) - 1
	if b[last] == '1' {
		b[last] = '2'
	} else {
		b[last] = '1'
	}
	if _, err := ParseAddress(string(b)); err == nil {
		t.Error("accepted corrupted address")
	}
}

func TestParseAddress_Hex(t *testing.T) {
	a := testAccount()
	parsed, err := ParseAddress(a.Hex())
	if err != nil {
		t.Fatal(err)
	}
	if parsed != a {
		t.Error("hex round trip changed account")
	}

	if _, err := ParseAddress("0x0102"); err == nil {
		t.Error("accepted short hex account")
	}
	if _, err := ParseAddress("0xzz"); err == nil {
		t.Error("accepted invalid hex account")
	}
}

func TestAccountID_JSON(t *testing.T) {
	a := testAccount()
	out, err := a.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(out), `"`) {
		t.Fatalf("JSON = %s", out)
	}
	var back AccountID
	if err := back.UnmarshalJSON(out); err != nil {
		t.Fatal(err)
	}
	if back != a {
		t.Error("JSON round trip changed account")
	}
}
