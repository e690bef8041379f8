package scale

// Append-style encoding helpers. Each function appends the SCALE
// encoding of a value to buf and returns the extended slice, mirroring
// the encoding read by Decoder byte for byte.

// AppendUint8 appends a fixed-width u8.
func AppendUint8(buf []byte, v uint8) []byte {
	return append(buf, v)
}

// AppendUint16 appends a fixed-width little-endian u16.
func AppendUint16(buf []byte, v uint16) []byte {
	return append(buf, byte(v), byte(v>>8))
}

// AppendUint32 appends a fixed-width little-endian u32.
func AppendUint32(buf []byte, v uint32) []byte {
	return append(buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

// AppendUint64 appends a fixed-width little-endian u64.
func AppendUint64(buf []byte, v uint64) []byte {
	for i := 0; i < 8; i++ {
		buf = append(buf, byte(v>>(8*i)))
	}
	return buf
}

// AppendBool appends a bool as a single byte.
func AppendBool(buf []byte, v bool) []byte {
	if v {
		return append(buf, 0x01)
	}
	return append(buf, 0x00)
}

// AppendCompact appends a compact-encoded unsigned integer using the
// smallest mode that fits the value.
func AppendCompact(buf []byte, v uint64) []byte {
	switch {
	case v < 1<<6:
		return append(buf, byte(v<<2))
	case v < 1<<14:
		return append(buf, byte(v<<2)|0b01, byte(v>>6))
	case v < 1<<30:
		return append(buf, byte(v<<2)|0b10, byte(v>>6), byte(v>>14), byte(v>>22))
	default:
		n := 0
		for x := v; x > 0; x >>= 8 {
			n++
		}
		buf = append(buf, byte(n-4)<<2|0b11)
		for i := 0; i < n; i++ {
			buf = append(buf, byte(v>>(8*i)))
		}
		return buf
	}
}

// AppendBytes appends a compact-length-prefixed byte string.
func AppendBytes(buf, b []byte) []byte {
	buf = AppendCompact(buf, uint64(len(b)))
	return append(buf, b...)
}

// AppendText appends a compact-length-prefixed UTF-8 string.
func AppendText(buf []byte, s string) []byte {
	buf = AppendCompact(buf, uint64(len(s)))
	return append(buf, s...)
}

// AppendTextSlice appends a compact-length-prefixed sequence of strings.
func AppendTextSlice(buf []byte, ss []string) []byte {
	buf = AppendCompact(buf, uint64(len(ss)))
	for _, s := range ss {
		buf = AppendText(buf, s)
	}
	return buf
}

// AppendOption appends an Option tag byte. The caller appends the
// wrapped value when present is true.
func AppendOption(buf []byte, present bool) []byte {
	return AppendBool(buf, present)
}
