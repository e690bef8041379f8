// Package scale implements the SCALE compact binary codec used by
// substrate-style chains for runtime metadata and extrinsics.
package scale

import (
	"errors"
	"fmt"
	"math"
	"unicode/utf8"
)

// ErrTruncated is returned when the input buffer ends before a field is
// fully read. All decoder errors caused by a short buffer wrap it.
var ErrTruncated = errors.New("scale: unexpected end of input")

// ErrOutOfRange is returned when an encoded value does not fit the
// requested Go type (e.g. a compact integer wider than 64 bits).
var ErrOutOfRange = errors.New("scale: value out of range")

// Decoder reads SCALE-encoded values from an in-memory buffer.
// It holds no state beyond the read offset and performs no I/O.
type Decoder struct {
	data []byte
	off  int
}

// NewDecoder creates a decoder over data. The buffer is not copied;
// callers must not mutate it while decoding.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int {
	return len(d.data) - d.off
}

// Offset returns the current read position.
func (d *Decoder) Offset() int {
	return d.off
}

// ReadByte consumes and returns a single byte.
func (d *Decoder) ReadByte() (byte, error) {
	if d.off >= len(d.data) {
		return 0, fmt.Errorf("read byte at offset %d: %w", d.off, ErrTruncated)
	}
	b := d.data[d.off]
	d.off++
	return b, nil
}

// ReadBytes consumes exactly n bytes and returns a copy.
func (d *Decoder) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("read %d bytes: %w", n, ErrOutOfRange)
	}
	if d.Remaining() < n {
		return nil, fmt.Errorf("read %d bytes at offset %d, %d remaining: %w", n, d.off, d.Remaining(), ErrTruncated)
	}
	out := make([]byte, n)
	copy(out, d.data[d.off:d.off+n])
	d.off += n
	return out, nil
}

// DecodeUint8 reads a fixed-width u8.
func (d *Decoder) DecodeUint8() (uint8, error) {
	return d.ReadByte()
}

// DecodeUint16 reads a fixed-width little-endian u16.
func (d *Decoder) DecodeUint16() (uint16, error) {
	b, err := d.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return uint16(b[0]) | uint16(b[1])<<8, nil
}

// DecodeUint32 reads a fixed-width little-endian u32.
func (d *Decoder) DecodeUint32() (uint32, error) {
	b, err := d.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, nil
}

// DecodeUint64 reads a fixed-width little-endian u64.
func (d *Decoder) DecodeUint64() (uint64, error) {
	b, err := d.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(b[i]) << (8 * i)
	}
	return v, nil
}

// DecodeBool reads a bool encoded as a single byte (0x00 or 0x01).
func (d *Decoder) DecodeBool() (bool, error) {
	b, err := d.ReadByte()
	if err != nil {
		return false, err
	}
	switch b {
	case 0x00:
		return false, nil
	case 0x01:
		return true, nil
	default:
		return false, fmt.Errorf("invalid bool byte 0x%02x: %w", b, ErrOutOfRange)
	}
}

// DecodeCompact reads a compact-encoded unsigned integer.
//
// SCALE compact mode is selected by the two low bits of the first byte:
// 0b00 single byte, 0b01 two bytes, 0b10 four bytes, 0b11 big-integer
// mode where the upper six bits hold (byte length - 4). Values wider
// than 64 bits are rejected with ErrOutOfRange.
func (d *Decoder) DecodeCompact() (uint64, error) {
	first, err := d.ReadByte()
	if err != nil {
		return 0, err
	}
	switch first & 0b11 {
	case 0b00:
		return uint64(first >> 2), nil
	case 0b01:
		second, err := d.ReadByte()
		if err != nil {
			return 0, err
		}
		return uint64(first)>>2 | uint64(second)<<6, nil
	case 0b10:
		rest, err := d.ReadBytes(3)
		if err != nil {
			return 0, err
		}
		v := uint64(first) >> 2
		for i, b := range rest {
			v |= uint64(b) << (6 + 8*i)
		}
		return v, nil
	default:
		n := int(first>>2) + 4
		if n > 8 {
			return 0, fmt.Errorf("compact integer of %d bytes: %w", n, ErrOutOfRange)
		}
		rest, err := d.ReadBytes(n)
		if err != nil {
			return 0, err
		}
		var v uint64
		for i, b := range rest {
			v |= uint64(b) << (8 * i)
		}
		return v, nil
	}
}

// DecodeLength reads a compact integer and validates it as a collection
// length: it must fit an int and must not exceed the remaining input,
// so a corrupted length always fails as truncation rather than causing
// a huge allocation.
func (d *Decoder) DecodeLength() (int, error) {
	n, err := d.DecodeCompact()
	if err != nil {
		return 0, err
	}
	if n > math.MaxInt32 {
		return 0, fmt.Errorf("length %d: %w", n, ErrOutOfRange)
	}
	if int(n) > d.Remaining() {
		return 0, fmt.Errorf("length %d exceeds %d remaining bytes: %w", n, d.Remaining(), ErrTruncated)
	}
	return int(n), nil
}

// DecodeBytes reads a compact-length-prefixed byte string.
func (d *Decoder) DecodeBytes() ([]byte, error) {
	n, err := d.DecodeLength()
	if err != nil {
		return nil, err
	}
	return d.ReadBytes(n)
}

// DecodeText reads a compact-length-prefixed UTF-8 string.
func (d *Decoder) DecodeText() (string, error) {
	b, err := d.DecodeBytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("scale: text is not valid UTF-8")
	}
	return string(b), nil
}

// DecodeTextSlice reads a compact-length-prefixed sequence of strings.
func (d *Decoder) DecodeTextSlice() ([]string, error) {
	n, err := d.DecodeLength()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		s, err := d.DecodeText()
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// DecodeOption reads an Option tag byte and reports whether a value
// follows. Tag bytes other than 0x00/0x01 are rejected.
func (d *Decoder) DecodeOption() (bool, error) {
	b, err := d.ReadByte()
	if err != nil {
		return false, err
	}
	switch b {
	case 0x00:
		return false, nil
	case 0x01:
		return true, nil
	default:
		return false, fmt.Errorf("invalid option tag 0x%02x: %w", b, ErrOutOfRange)
	}
}
