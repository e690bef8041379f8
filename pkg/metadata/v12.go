package metadata

import (
	"fmt"

	"github.com/chainx-org/chainx-cli/pkg/scale"
)

// MetadataV12 is the module-based schema, version 12. The module list
// itself sits inside a DecodeDifferent wrapper, so a producer may ship
// it still encoded.
type MetadataV12 struct {
	Modules   DecodeDifferent[[]ModuleMetadataV12] `json:"modules"`
	Extrinsic ExtrinsicMetadataV12                 `json:"extrinsic"`
}

// ModuleMetadataV12 is one named module and its children. Storage,
// calls and events are optional: a module may define none of them.
type ModuleMetadataV12 struct {
	Name      DecodeDifferent[string]                    `json:"name"`
	Storage   *DecodeDifferent[StorageMetadataV12]       `json:"storage"`
	Calls     *DecodeDifferent[[]FunctionMetadata]       `json:"calls"`
	Events    *DecodeDifferent[[]EventMetadata]          `json:"events"`
	Constants DecodeDifferent[[]ModuleConstantMetadata]  `json:"constants"`
	Errors    DecodeDifferent[[]ErrorMetadata]           `json:"errors"`
	Index     uint8                                      `json:"index"`
}

// StorageMetadataV12 is a module's storage prefix and entries.
type StorageMetadataV12 struct {
	Prefix  DecodeDifferent[string]            `json:"prefix"`
	Entries DecodeDifferent[[]StorageEntryV12] `json:"entries"`
}

// StorageEntryV12 is one storage item definition.
type StorageEntryV12 struct {
	Name     DecodeDifferent[string]   `json:"name"`
	Modifier StorageEntryModifier      `json:"modifier"`
	Type     StorageEntryTypeV12       `json:"type"`
	Default  DecodeDifferent[HexBytes] `json:"default"`
	Docs     DecodeDifferent[[]string] `json:"docs"`
}

// StorageEntryTypeV12 is the storage entry kind: exactly one of the
// fields is set.
type StorageEntryTypeV12 struct {
	Plain     *DecodeDifferent[string] `json:"plain,omitempty"`
	Map       *MapTypeV12              `json:"map,omitempty"`
	DoubleMap *DoubleMapTypeV12        `json:"double_map,omitempty"`
}

// MapTypeV12 is a single-key storage map.
type MapTypeV12 struct {
	Hasher StorageHasher           `json:"hasher"`
	Key    DecodeDifferent[string] `json:"key"`
	Value  DecodeDifferent[string] `json:"value"`
	Linked bool                    `json:"linked"`
}

// DoubleMapTypeV12 is a two-key storage map.
type DoubleMapTypeV12 struct {
	Hasher     StorageHasher           `json:"hasher"`
	Key1       DecodeDifferent[string] `json:"key1"`
	Key2       DecodeDifferent[string] `json:"key2"`
	Value      DecodeDifferent[string] `json:"value"`
	Key2Hasher StorageHasher           `json:"key2_hasher"`
}

// ExtrinsicMetadataV12 describes the extrinsic format of the runtime.
type ExtrinsicMetadataV12 struct {
	Version          uint8                     `json:"version"`
	SignedExtensions []DecodeDifferent[string] `json:"signed_extensions"`
}

func decodeOptionDD[T any](d *scale.Decoder, dec func(*scale.Decoder) (T, error)) (*DecodeDifferent[T], error) {
	present, err := d.DecodeOption()
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	dd, err := decodeDD(d, dec)
	if err != nil {
		return nil, err
	}
	return &dd, nil
}

func appendOptionDD[T any](buf []byte, dd *DecodeDifferent[T], enc func([]byte, T) []byte) []byte {
	buf = scale.AppendOption(buf, dd != nil)
	if dd != nil {
		buf = appendDD(buf, *dd, enc)
	}
	return buf
}

func decodeV12(d *scale.Decoder) (*MetadataV12, error) {
	var m MetadataV12
	var err error
	if m.Modules, err = decodeDD(d, func(d *scale.Decoder) ([]ModuleMetadataV12, error) {
		return decodeSeq(d, decodeModuleV12)
	}); err != nil {
		return nil, fmt.Errorf("modules: %w", err)
	}
	if m.Extrinsic, err = decodeExtrinsicV12(d); err != nil {
		return nil, fmt.Errorf("extrinsic: %w", err)
	}
	return &m, nil
}

func (m *MetadataV12) append(buf []byte) []byte {
	buf = appendDD(buf, m.Modules, func(buf []byte, mods []ModuleMetadataV12) []byte {
		return appendSeq(buf, mods, func(buf []byte, mod ModuleMetadataV12) []byte {
			return mod.append(buf)
		})
	})
	return m.Extrinsic.append(buf)
}

func decodeModuleV12(d *scale.Decoder) (ModuleMetadataV12, error) {
	var mod ModuleMetadataV12
	var err error
	if mod.Name, err = decodeDD(d, decodeText); err != nil {
		return mod, fmt.Errorf("name: %w", err)
	}
	if mod.Storage, err = decodeOptionDD(d, decodeStorageV12); err != nil {
		return mod, fmt.Errorf("storage: %w", err)
	}
	if mod.Calls, err = decodeOptionDD(d, func(d *scale.Decoder) ([]FunctionMetadata, error) {
		return decodeSeq(d, decodeFunction)
	}); err != nil {
		return mod, fmt.Errorf("calls: %w", err)
	}
	if mod.Events, err = decodeOptionDD(d, func(d *scale.Decoder) ([]EventMetadata, error) {
		return decodeSeq(d, decodeEvent)
	}); err != nil {
		return mod, fmt.Errorf("events: %w", err)
	}
	if mod.Constants, err = decodeDD(d, func(d *scale.Decoder) ([]ModuleConstantMetadata, error) {
		return decodeSeq(d, decodeConstant)
	}); err != nil {
		return mod, fmt.Errorf("constants: %w", err)
	}
	if mod.Errors, err = decodeDD(d, func(d *scale.Decoder) ([]ErrorMetadata, error) {
		return decodeSeq(d, decodeError)
	}); err != nil {
		return mod, fmt.Errorf("errors: %w", err)
	}
	if mod.Index, err = d.DecodeUint8(); err != nil {
		return mod, fmt.Errorf("index: %w", err)
	}
	return mod, nil
}

func (mod ModuleMetadataV12) append(buf []byte) []byte {
	buf = appendDD(buf, mod.Name, scale.AppendText)
	buf = appendOptionDD(buf, mod.Storage, func(buf []byte, s StorageMetadataV12) []byte {
		return s.append(buf)
	})
	buf = appendOptionDD(buf, mod.Calls, func(buf []byte, fns []FunctionMetadata) []byte {
		return appendSeq(buf, fns, func(buf []byte, fn FunctionMetadata) []byte {
			return fn.append(buf)
		})
	})
	buf = appendOptionDD(buf, mod.Events, func(buf []byte, evs []EventMetadata) []byte {
		return appendSeq(buf, evs, func(buf []byte, ev EventMetadata) []byte {
			return ev.append(buf)
		})
	})
	buf = appendDD(buf, mod.Constants, func(buf []byte, cs []ModuleConstantMetadata) []byte {
		return appendSeq(buf, cs, func(buf []byte, c ModuleConstantMetadata) []byte {
			return c.append(buf)
		})
	})
	buf = appendDD(buf, mod.Errors, func(buf []byte, es []ErrorMetadata) []byte {
		return appendSeq(buf, es, func(buf []byte, e ErrorMetadata) []byte {
			return e.append(buf)
		})
	})
	return scale.AppendUint8(buf, mod.Index)
}

func decodeStorageV12(d *scale.Decoder) (StorageMetadataV12, error) {
	var s StorageMetadataV12
	var err error
	if s.Prefix, err = decodeDD(d, decodeText); err != nil {
		return s, fmt.Errorf("prefix: %w", err)
	}
	if s.Entries, err = decodeDD(d, func(d *scale.Decoder) ([]StorageEntryV12, error) {
		return decodeSeq(d, decodeStorageEntryV12)
	}); err != nil {
		return s, fmt.Errorf("entries: %w", err)
	}
	return s, nil
}

func (s StorageMetadataV12) append(buf []byte) []byte {
	buf = appendDD(buf, s.Prefix, scale.AppendText)
	return appendDD(buf, s.Entries, func(buf []byte, es []StorageEntryV12) []byte {
		return appendSeq(buf, es, func(buf []byte, e StorageEntryV12) []byte {
			return e.append(buf)
		})
	})
}

func decodeStorageEntryV12(d *scale.Decoder) (StorageEntryV12, error) {
	var e StorageEntryV12
	var err error
	if e.Name, err = decodeDD(d, decodeText); err != nil {
		return e, fmt.Errorf("name: %w", err)
	}
	if e.Modifier, err = decodeModifier(d); err != nil {
		return e, fmt.Errorf("modifier: %w", err)
	}
	if e.Type, err = decodeStorageEntryTypeV12(d); err != nil {
		return e, fmt.Errorf("type: %w", err)
	}
	if e.Default, err = decodeDD(d, decodeHexBytes); err != nil {
		return e, fmt.Errorf("default: %w", err)
	}
	if e.Docs, err = decodeDD(d, decodeTextSlice); err != nil {
		return e, fmt.Errorf("docs: %w", err)
	}
	return e, nil
}

func (e StorageEntryV12) append(buf []byte) []byte {
	buf = appendDD(buf, e.Name, scale.AppendText)
	buf = scale.AppendUint8(buf, uint8(e.Modifier))
	buf = e.Type.append(buf)
	buf = appendDD(buf, e.Default, appendHexBytes)
	return appendDD(buf, e.Docs, scale.AppendTextSlice)
}

func decodeStorageEntryTypeV12(d *scale.Decoder) (StorageEntryTypeV12, error) {
	var t StorageEntryTypeV12
	tag, err := d.ReadByte()
	if err != nil {
		return t, err
	}
	switch tag {
	case 0:
		plain, err := decodeDD(d, decodeText)
		if err != nil {
			return t, fmt.Errorf("plain: %w", err)
		}
		t.Plain = &plain
	case 1:
		var m MapTypeV12
		if m.Hasher, err = decodeHasher(d); err != nil {
			return t, fmt.Errorf("map hasher: %w", err)
		}
		if m.Key, err = decodeDD(d, decodeText); err != nil {
			return t, fmt.Errorf("map key: %w", err)
		}
		if m.Value, err = decodeDD(d, decodeText); err != nil {
			return t, fmt.Errorf("map value: %w", err)
		}
		if m.Linked, err = d.DecodeBool(); err != nil {
			return t, fmt.Errorf("map linked: %w", err)
		}
		t.Map = &m
	case 2:
		var m DoubleMapTypeV12
		if m.Hasher, err = decodeHasher(d); err != nil {
			return t, fmt.Errorf("double map hasher: %w", err)
		}
		if m.Key1, err = decodeDD(d, decodeText); err != nil {
			return t, fmt.Errorf("double map key1: %w", err)
		}
		if m.Key2, err = decodeDD(d, decodeText); err != nil {
			return t, fmt.Errorf("double map key2: %w", err)
		}
		if m.Value, err = decodeDD(d, decodeText); err != nil {
			return t, fmt.Errorf("double map value: %w", err)
		}
		if m.Key2Hasher, err = decodeHasher(d); err != nil {
			return t, fmt.Errorf("double map key2 hasher: %w", err)
		}
		t.DoubleMap = &m
	default:
		return t, fmt.Errorf("invalid storage entry type tag %d", tag)
	}
	return t, nil
}

func (t StorageEntryTypeV12) append(buf []byte) []byte {
	switch {
	case t.Plain != nil:
		buf = append(buf, 0)
		return appendDD(buf, *t.Plain, scale.AppendText)
	case t.Map != nil:
		buf = append(buf, 1)
		buf = scale.AppendUint8(buf, uint8(t.Map.Hasher))
		buf = appendDD(buf, t.Map.Key, scale.AppendText)
		buf = appendDD(buf, t.Map.Value, scale.AppendText)
		return scale.AppendBool(buf, t.Map.Linked)
	case t.DoubleMap != nil:
		buf = append(buf, 2)
		buf = scale.AppendUint8(buf, uint8(t.DoubleMap.Hasher))
		buf = appendDD(buf, t.DoubleMap.Key1, scale.AppendText)
		buf = appendDD(buf, t.DoubleMap.Key2, scale.AppendText)
		buf = appendDD(buf, t.DoubleMap.Value, scale.AppendText)
		return scale.AppendUint8(buf, uint8(t.DoubleMap.Key2Hasher))
	default:
		return buf
	}
}

func decodeExtrinsicV12(d *scale.Decoder) (ExtrinsicMetadataV12, error) {
	var ex ExtrinsicMetadataV12
	var err error
	if ex.Version, err = d.DecodeUint8(); err != nil {
		return ex, fmt.Errorf("version: %w", err)
	}
	if ex.SignedExtensions, err = decodeSeq(d, func(d *scale.Decoder) (DecodeDifferent[string], error) {
		return decodeDD(d, decodeText)
	}); err != nil {
		return ex, fmt.Errorf("signed extensions: %w", err)
	}
	return ex, nil
}

func (ex ExtrinsicMetadataV12) append(buf []byte) []byte {
	buf = scale.AppendUint8(buf, ex.Version)
	return appendSeq(buf, ex.SignedExtensions, func(buf []byte, dd DecodeDifferent[string]) []byte {
		return appendDD(buf, dd, scale.AppendText)
	})
}
