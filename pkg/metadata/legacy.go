package metadata

import (
	"encoding/json"
	"fmt"

	"github.com/chainx-org/chainx-cli/pkg/scale"
)

// Children shared by the legacy module-based versions (V12/V13).

// FunctionMetadata describes one dispatchable call of a module.
type FunctionMetadata struct {
	Name DecodeDifferent[string]                     `json:"name"`
	Args DecodeDifferent[[]FunctionArgumentMetadata] `json:"args"`
	Docs DecodeDifferent[[]string]                   `json:"docs"`
}

// FunctionArgumentMetadata is one named, typed call argument.
type FunctionArgumentMetadata struct {
	Name DecodeDifferent[string] `json:"name"`
	Type DecodeDifferent[string] `json:"type"`
}

// EventMetadata describes one event a module can deposit.
type EventMetadata struct {
	Name DecodeDifferent[string]   `json:"name"`
	Args DecodeDifferent[[]string] `json:"args"`
	Docs DecodeDifferent[[]string] `json:"docs"`
}

// ModuleConstantMetadata is a named runtime constant with its
// SCALE-encoded value.
type ModuleConstantMetadata struct {
	Name  DecodeDifferent[string]   `json:"name"`
	Type  DecodeDifferent[string]   `json:"type"`
	Value DecodeDifferent[HexBytes] `json:"value"`
	Docs  DecodeDifferent[[]string] `json:"docs"`
}

// ErrorMetadata describes one dispatch error variant of a module.
type ErrorMetadata struct {
	Name DecodeDifferent[string]   `json:"name"`
	Docs DecodeDifferent[[]string] `json:"docs"`
}

// StorageHasher identifies the hashing algorithm a storage map applies
// to its keys.
type StorageHasher uint8

// Storage hasher variants, in wire order.
const (
	HasherBlake2_128 StorageHasher = iota
	HasherBlake2_256
	HasherBlake2_128Concat
	HasherTwox128
	HasherTwox256
	HasherTwox64Concat
	HasherIdentity
)

var hasherNames = [...]string{
	"Blake2_128", "Blake2_256", "Blake2_128Concat",
	"Twox128", "Twox256", "Twox64Concat", "Identity",
}

func (h StorageHasher) String() string {
	if int(h) < len(hasherNames) {
		return hasherNames[h]
	}
	return fmt.Sprintf("StorageHasher(%d)", uint8(h))
}

// MarshalJSON renders the hasher by name.
func (h StorageHasher) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

func decodeHasher(d *scale.Decoder) (StorageHasher, error) {
	b, err := d.ReadByte()
	if err != nil {
		return 0, err
	}
	if int(b) >= len(hasherNames) {
		return 0, fmt.Errorf("invalid storage hasher tag %d", b)
	}
	return StorageHasher(b), nil
}

// StorageEntryModifier says whether a storage entry always has a value
// (Default) or may be absent (Optional).
type StorageEntryModifier uint8

const (
	ModifierOptional StorageEntryModifier = iota
	ModifierDefault
)

func (m StorageEntryModifier) String() string {
	switch m {
	case ModifierOptional:
		return "Optional"
	case ModifierDefault:
		return "Default"
	default:
		return fmt.Sprintf("StorageEntryModifier(%d)", uint8(m))
	}
}

// MarshalJSON renders the modifier by name.
func (m StorageEntryModifier) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func decodeModifier(d *scale.Decoder) (StorageEntryModifier, error) {
	b, err := d.ReadByte()
	if err != nil {
		return 0, err
	}
	if b > uint8(ModifierDefault) {
		return 0, fmt.Errorf("invalid storage entry modifier tag %d", b)
	}
	return StorageEntryModifier(b), nil
}

// Decode helpers for the shared children. They read the value inside a
// DecodeDifferent wrapper, so the callers compose them with decodeDD.

func decodeText(d *scale.Decoder) (string, error) {
	return d.DecodeText()
}

func decodeTextSlice(d *scale.Decoder) ([]string, error) {
	return d.DecodeTextSlice()
}

func decodeHexBytes(d *scale.Decoder) (HexBytes, error) {
	b, err := d.DecodeBytes()
	if err != nil {
		return nil, err
	}
	return HexBytes(b), nil
}

func decodeSeq[T any](d *scale.Decoder, dec func(*scale.Decoder) (T, error)) ([]T, error) {
	n, err := d.DecodeLength()
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		v, err := dec(d)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func appendSeq[T any](buf []byte, vs []T, enc func([]byte, T) []byte) []byte {
	buf = scale.AppendCompact(buf, uint64(len(vs)))
	for _, v := range vs {
		buf = enc(buf, v)
	}
	return buf
}

func appendHexBytes(buf []byte, b HexBytes) []byte {
	return scale.AppendBytes(buf, b)
}

func decodeFunction(d *scale.Decoder) (FunctionMetadata, error) {
	var fn FunctionMetadata
	var err error
	if fn.Name, err = decodeDD(d, decodeText); err != nil {
		return fn, fmt.Errorf("name: %w", err)
	}
	if fn.Args, err = decodeDD(d, func(d *scale.Decoder) ([]FunctionArgumentMetadata, error) {
		return decodeSeq(d, decodeFunctionArg)
	}); err != nil {
		return fn, fmt.Errorf("args: %w", err)
	}
	if fn.Docs, err = decodeDD(d, decodeTextSlice); err != nil {
		return fn, fmt.Errorf("docs: %w", err)
	}
	return fn, nil
}

func (fn FunctionMetadata) append(buf []byte) []byte {
	buf = appendDD(buf, fn.Name, scale.AppendText)
	buf = appendDD(buf, fn.Args, func(buf []byte, args []FunctionArgumentMetadata) []byte {
		return appendSeq(buf, args, func(buf []byte, a FunctionArgumentMetadata) []byte {
			return a.append(buf)
		})
	})
	return appendDD(buf, fn.Docs, scale.AppendTextSlice)
}

func decodeFunctionArg(d *scale.Decoder) (FunctionArgumentMetadata, error) {
	var arg FunctionArgumentMetadata
	var err error
	if arg.Name, err = decodeDD(d, decodeText); err != nil {
		return arg, fmt.Errorf("name: %w", err)
	}
	if arg.Type, err = decodeDD(d, decodeText); err != nil {
		return arg, fmt.Errorf("type: %w", err)
	}
	return arg, nil
}

func (arg FunctionArgumentMetadata) append(buf []byte) []byte {
	buf = appendDD(buf, arg.Name, scale.AppendText)
	return appendDD(buf, arg.Type, scale.AppendText)
}

func decodeEvent(d *scale.Decoder) (EventMetadata, error) {
	var ev EventMetadata
	var err error
	if ev.Name, err = decodeDD(d, decodeText); err != nil {
		return ev, fmt.Errorf("name: %w", err)
	}
	if ev.Args, err = decodeDD(d, decodeTextSlice); err != nil {
		return ev, fmt.Errorf("args: %w", err)
	}
	if ev.Docs, err = decodeDD(d, decodeTextSlice); err != nil {
		return ev, fmt.Errorf("docs: %w", err)
	}
	return ev, nil
}

func (ev EventMetadata) append(buf []byte) []byte {
	buf = appendDD(buf, ev.Name, scale.AppendText)
	buf = appendDD(buf, ev.Args, scale.AppendTextSlice)
	return appendDD(buf, ev.Docs, scale.AppendTextSlice)
}

func decodeConstant(d *scale.Decoder) (ModuleConstantMetadata, error) {
	var c ModuleConstantMetadata
	var err error
	if c.Name, err = decodeDD(d, decodeText); err != nil {
		return c, fmt.Errorf("name: %w", err)
	}
	if c.Type, err = decodeDD(d, decodeText); err != nil {
		return c, fmt.Errorf("type: %w", err)
	}
	if c.Value, err = decodeDD(d, decodeHexBytes); err != nil {
		return c, fmt.Errorf("value: %w", err)
	}
	if c.Docs, err = decodeDD(d, decodeTextSlice); err != nil {
		return c, fmt.Errorf("docs: %w", err)
	}
	return c, nil
}

func (c ModuleConstantMetadata) append(buf []byte) []byte {
	buf = appendDD(buf, c.Name, scale.AppendText)
	buf = appendDD(buf, c.Type, scale.AppendText)
	buf = appendDD(buf, c.Value, appendHexBytes)
	return appendDD(buf, c.Docs, scale.AppendTextSlice)
}

func decodeError(d *scale.Decoder) (ErrorMetadata, error) {
	var e ErrorMetadata
	var err error
	if e.Name, err = decodeDD(d, decodeText); err != nil {
		return e, fmt.Errorf("name: %w", err)
	}
	if e.Docs, err = decodeDD(d, decodeTextSlice); err != nil {
		return e, fmt.Errorf("docs: %w", err)
	}
	return e, nil
}

func (e ErrorMetadata) append(buf []byte) []byte {
	buf = appendDD(buf, e.Name, scale.AppendText)
	return appendDD(buf, e.Docs, scale.AppendTextSlice)
}
