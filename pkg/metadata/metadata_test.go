package metadata

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestDecode_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		fixture *RuntimeMetadata
		version uint8
	}{
		{"v12", sampleV12(), 12},
		{"v13", sampleV13(), 13},
		{"v14", sampleV14(), 14},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wire := tt.fixture.Encode()
			decoded, err := Decode(wire)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if v := decoded.Version(); v != tt.version {
				t.Errorf("Version() = %d, want %d", v, tt.version)
			}
			// Re-encoding the decoded tree must reproduce the wire
			// bytes exactly.
			if got := decoded.Encode(); !bytes.Equal(got, wire) {
				t.Errorf("re-encoded %d bytes differ from original %d bytes", len(got), len(wire))
			}
		})
	}
}

func TestDecode_BadMagic(t *testing.T) {
	wire := sampleV12().Encode()
	wire[0] = 'x'
	if _, err := Decode(wire); !errors.Is(err, ErrBadMagic) {
		t.Errorf("Decode err = %v, want ErrBadMagic", err)
	}
}

func TestDecode_UnsupportedVersion(t *testing.T) {
	for _, version := range []byte{0, 11, 15, 255} {
		wire := sampleV12().Encode()
		wire[4] = version
		_, err := Decode(wire)
		if !errors.Is(err, ErrUnsupportedVersion) {
			t.Errorf("Decode(version %d) err = %v, want ErrUnsupportedVersion", version, err)
		}
	}
}

func TestDecode_TrailingBytes(t *testing.T) {
	wire := append(sampleV12().Encode(), 0xab)
	if _, err := Decode(wire); err == nil {
		t.Error("Decode accepted trailing bytes")
	}
}

// TestDecode_Truncation cuts the fixture at every offset; each prefix
// must fail cleanly, never panic and never succeed.
func TestDecode_Truncation(t *testing.T) {
	for _, fixture := range []*RuntimeMetadata{sampleV12(), sampleV13(), sampleV14()} {
		wire := fixture.Encode()
		for i := 0; i < len(wire); i++ {
			if _, err := Decode(wire[:i]); err == nil {
				t.Fatalf("Decode of %d-byte prefix (full %d) succeeded", i, len(wire))
			}
		}
	}
}

func TestDecode_CorruptLength(t *testing.T) {
	wire := sampleV12().Encode()
	// Offset 6 is the compact module count (after magic, version and
	// the wrapper tag). 0x13 announces an 8-byte big-int length.
	wire[6] = 0x13
	if _, err := Decode(wire); err == nil {
		t.Error("Decode accepted corrupted length prefix")
	}
}

func TestDecodeDifferent_JSON(t *testing.T) {
	decoded := dd("System")
	out, err := json.Marshal(decoded)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `"System"` {
		t.Errorf("decoded JSON = %s", out)
	}

	raw := DecodeDifferent[string]{Raw: []byte{0xde, 0xad}}
	out, err = json.Marshal(raw)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"raw":"0xdead"}` {
		t.Errorf("raw JSON = %s", out)
	}
}

func TestMarshalJSON_VersionKey(t *testing.T) {
	tests := []struct {
		fixture *RuntimeMetadata
		key     string
	}{
		{sampleV12(), `"v12"`},
		{sampleV13(), `"v13"`},
		{sampleV14(), `"v14"`},
	}
	for _, tt := range tests {
		out, err := json.Marshal(tt.fixture)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(string(out), "{"+tt.key) {
			t.Errorf("JSON does not start with %s key: %.40s", tt.key, out)
		}
	}
}

func TestHexBytes_JSON(t *testing.T) {
	out, err := json.Marshal(HexBytes{0x01, 0xff})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `"0x01ff"` {
		t.Errorf("HexBytes JSON = %s", out)
	}
	var back HexBytes
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(back, HexBytes{0x01, 0xff}) {
		t.Errorf("round trip = % x", back)
	}
}

// FuzzDecode feeds arbitrary blobs to the full decoder. Whatever the
// input, it must return an error or a tree, never panic.
func FuzzDecode(f *testing.F) {
	f.Add(sampleV12().Encode())
	f.Add(sampleV13().Encode())
	f.Add(sampleV14().Encode())
	f.Add([]byte{0x6d, 0x65, 0x74, 0x61, 12})
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, data []byte) {
		m, err := Decode(data)
		if err != nil {
			return
		}
		// A successful decode must also survive re-encoding and JSON
		// rendering.
		m.Encode()
		if _, err := json.Marshal(m); err != nil {
			t.Fatalf("marshal accepted tree: %v", err)
		}
	})
}
