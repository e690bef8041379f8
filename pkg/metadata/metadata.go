// Package metadata decodes and queries substrate-style runtime metadata.
//
// A node self-describes its runtime (modules/pallets, calls, events,
// storage, constants) as a SCALE-encoded blob whose layout changed
// incompatibly across schema versions. This package models each
// supported version with its own fully-typed shape, selected by the
// version discriminant embedded in the encoding, and refuses to guess
// when it sees a version it does not know.
package metadata

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/chainx-org/chainx-cli/pkg/scale"
)

// magicNumber is the reserved metadata prefix, read as a little-endian
// u32. The wire bytes spell "meta".
const magicNumber uint32 = 0x6174656d

// Versions understood by this package.
const (
	VersionV12 uint8 = 12
	VersionV13 uint8 = 13
	VersionV14 uint8 = 14
)

// ErrBadMagic is returned when the blob does not start with the
// reserved "meta" prefix.
var ErrBadMagic = errors.New("metadata: bad magic prefix")

// ErrUnsupportedVersion is returned when the version discriminant is
// not one of the supported values. The remaining bytes are not
// interpreted.
var ErrUnsupportedVersion = errors.New("metadata: unsupported version")

// ErrModulesNotDecoded is returned by Resolve when the top-level module
// list was left in its still-encoded state by the producer, so no
// name-based lookup is possible.
var ErrModulesNotDecoded = errors.New("metadata: module list is not decoded")

// NotFoundError is returned by Resolve when no module or pallet matches
// the requested name. It reports an expected user-facing outcome, not a
// defect in the metadata.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("pallet %q not found in metadata", e.Name)
}

// RuntimeMetadata is the decoded metadata tree. Exactly one version
// field is populated, matching the discriminant the blob carried.
type RuntimeMetadata struct {
	V12 *MetadataV12
	V13 *MetadataV13
	V14 *MetadataV14
}

// Version returns the schema version discriminant of the populated
// variant, or 0 if none is populated.
func (m *RuntimeMetadata) Version() uint8 {
	switch {
	case m.V12 != nil:
		return VersionV12
	case m.V13 != nil:
		return VersionV13
	case m.V14 != nil:
		return VersionV14
	default:
		return 0
	}
}

// Decode parses a raw metadata blob: the 4-byte magic prefix, the
// version discriminant, and the version's own payload. The whole buffer
// must be consumed; trailing bytes indicate a shape mismatch.
func Decode(data []byte) (*RuntimeMetadata, error) {
	d := scale.NewDecoder(data)

	magic, err := d.DecodeUint32()
	if err != nil {
		return nil, fmt.Errorf("metadata: read magic: %w", err)
	}
	if magic != magicNumber {
		return nil, fmt.Errorf("%w: got 0x%08x", ErrBadMagic, magic)
	}

	version, err := d.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("metadata: read version: %w", err)
	}

	var m RuntimeMetadata
	switch version {
	case VersionV12:
		m.V12, err = decodeV12(d)
	case VersionV13:
		m.V13, err = decodeV13(d)
	case VersionV14:
		m.V14, err = decodeV14(d)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
	if err != nil {
		return nil, fmt.Errorf("metadata: decode v%d: %w", version, err)
	}

	if n := d.Remaining(); n > 0 {
		return nil, fmt.Errorf("metadata: %d trailing bytes after v%d payload", n, version)
	}
	return &m, nil
}

// Encode serializes the metadata back to its wire form. Decoding then
// encoding a well-formed blob reproduces the original bytes exactly.
func (m *RuntimeMetadata) Encode() []byte {
	buf := scale.AppendUint32(nil, magicNumber)
	switch {
	case m.V12 != nil:
		buf = scale.AppendUint8(buf, VersionV12)
		buf = m.V12.append(buf)
	case m.V13 != nil:
		buf = scale.AppendUint8(buf, VersionV13)
		buf = m.V13.append(buf)
	case m.V14 != nil:
		buf = scale.AppendUint8(buf, VersionV14)
		buf = m.V14.append(buf)
	}
	return buf
}

// MarshalJSON renders the populated variant under a version key so the
// reader can tell which schema shaped the tree.
func (m *RuntimeMetadata) MarshalJSON() ([]byte, error) {
	switch {
	case m.V12 != nil:
		return json.Marshal(struct {
			V12 *MetadataV12 `json:"v12"`
		}{m.V12})
	case m.V13 != nil:
		return json.Marshal(struct {
			V13 *MetadataV13 `json:"v13"`
		}{m.V13})
	case m.V14 != nil:
		return json.Marshal(struct {
			V14 *MetadataV14 `json:"v14"`
		}{m.V14})
	default:
		return []byte("null"), nil
	}
}

// DecodeDifferent is the wire-format wrapper the legacy metadata
// versions use for fields the producer may have left unparsed: either
// the decoded value is present, or the raw still-encoded bytes are
// carried opaquely. A single discriminant byte on the wire selects the
// case (0x00 decoded, 0x01 raw).
type DecodeDifferent[T any] struct {
	Decoded *T
	Raw     []byte
}

// IsDecoded reports whether the decoded value is present.
func (dd DecodeDifferent[T]) IsDecoded() bool {
	return dd.Decoded != nil
}

// MarshalJSON renders the decoded value directly, or the raw bytes as
// {"raw":"0x…"} when the field was left encoded.
func (dd DecodeDifferent[T]) MarshalJSON() ([]byte, error) {
	if dd.Decoded != nil {
		return json.Marshal(dd.Decoded)
	}
	return json.Marshal(struct {
		Raw HexBytes `json:"raw"`
	}{HexBytes(dd.Raw)})
}

const (
	ddTagDecoded = 0x00
	ddTagRaw     = 0x01
)

// decodeDD reads the wrapper discriminant and then either the value via
// dec or the compact-length-prefixed raw bytes.
func decodeDD[T any](d *scale.Decoder, dec func(*scale.Decoder) (T, error)) (DecodeDifferent[T], error) {
	tag, err := d.ReadByte()
	if err != nil {
		return DecodeDifferent[T]{}, err
	}
	switch tag {
	case ddTagDecoded:
		v, err := dec(d)
		if err != nil {
			return DecodeDifferent[T]{}, err
		}
		return DecodeDifferent[T]{Decoded: &v}, nil
	case ddTagRaw:
		raw, err := d.DecodeBytes()
		if err != nil {
			return DecodeDifferent[T]{}, err
		}
		return DecodeDifferent[T]{Raw: raw}, nil
	default:
		return DecodeDifferent[T]{}, fmt.Errorf("invalid decode-different tag 0x%02x", tag)
	}
}

// appendDD appends the wrapper discriminant and payload.
func appendDD[T any](buf []byte, dd DecodeDifferent[T], enc func([]byte, T) []byte) []byte {
	if dd.Decoded != nil {
		buf = append(buf, ddTagDecoded)
		return enc(buf, *dd.Decoded)
	}
	buf = append(buf, ddTagRaw)
	return scale.AppendBytes(buf, dd.Raw)
}

// HexBytes is a byte slice rendered as a 0x-prefixed hex string in
// JSON output.
type HexBytes []byte

// String returns the 0x-prefixed hex encoding.
func (b HexBytes) String() string {
	return "0x" + hex.EncodeToString(b)
}

// MarshalJSON encodes the bytes as a 0x-prefixed hex string.
func (b HexBytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

// UnmarshalJSON decodes a 0x-prefixed hex string.
func (b *HexBytes) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	decoded, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return fmt.Errorf("invalid hex: %w", err)
	}
	*b = decoded
	return nil
}
