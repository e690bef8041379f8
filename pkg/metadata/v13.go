package metadata

import (
	"fmt"

	"github.com/chainx-org/chainx-cli/pkg/scale"
)

// MetadataV13 is the last module-based schema. It matches V12 except
// that storage entries gain an n-key map variant, so the storage types
// are distinct.
type MetadataV13 struct {
	Modules   DecodeDifferent[[]ModuleMetadataV13] `json:"modules"`
	Extrinsic ExtrinsicMetadataV12                 `json:"extrinsic"`
}

// ModuleMetadataV13 is one named module and its children.
type ModuleMetadataV13 struct {
	Name      DecodeDifferent[string]                    `json:"name"`
	Storage   *DecodeDifferent[StorageMetadataV13]       `json:"storage"`
	Calls     *DecodeDifferent[[]FunctionMetadata]       `json:"calls"`
	Events    *DecodeDifferent[[]EventMetadata]          `json:"events"`
	Constants DecodeDifferent[[]ModuleConstantMetadata]  `json:"constants"`
	Errors    DecodeDifferent[[]ErrorMetadata]           `json:"errors"`
	Index     uint8                                      `json:"index"`
}

// StorageMetadataV13 is a module's storage prefix and entries.
type StorageMetadataV13 struct {
	Prefix  DecodeDifferent[string]            `json:"prefix"`
	Entries DecodeDifferent[[]StorageEntryV13] `json:"entries"`
}

// StorageEntryV13 is one storage item definition.
type StorageEntryV13 struct {
	Name     DecodeDifferent[string]   `json:"name"`
	Modifier StorageEntryModifier      `json:"modifier"`
	Type     StorageEntryTypeV13       `json:"type"`
	Default  DecodeDifferent[HexBytes] `json:"default"`
	Docs     DecodeDifferent[[]string] `json:"docs"`
}

// StorageEntryTypeV13 is the storage entry kind: exactly one of the
// fields is set.
type StorageEntryTypeV13 struct {
	Plain     *DecodeDifferent[string] `json:"plain,omitempty"`
	Map       *MapTypeV12              `json:"map,omitempty"`
	DoubleMap *DoubleMapTypeV12        `json:"double_map,omitempty"`
	NMap      *NMapTypeV13             `json:"nmap,omitempty"`
}

// NMapTypeV13 is an n-key storage map, new in V13.
type NMapTypeV13 struct {
	Keys    DecodeDifferent[[]string] `json:"keys"`
	Hashers []StorageHasher           `json:"hashers"`
	Value   DecodeDifferent[string]   `json:"value"`
}

func decodeV13(d *scale.Decoder) (*MetadataV13, error) {
	var m MetadataV13
	var err error
	if m.Modules, err = decodeDD(d, func(d *scale.Decoder) ([]ModuleMetadataV13, error) {
		return decodeSeq(d, decodeModuleV13)
	}); err != nil {
		return nil, fmt.Errorf("modules: %w", err)
	}
	if m.Extrinsic, err = decodeExtrinsicV12(d); err != nil {
		return nil, fmt.Errorf("extrinsic: %w", err)
	}
	return &m, nil
}

func (m *MetadataV13) append(buf []byte) []byte {
	buf = appendDD(buf, m.Modules, func(buf []byte, mods []ModuleMetadataV13) []byte {
		return appendSeq(buf, mods, func(buf []byte, mod ModuleMetadataV13) []byte {
			return mod.append(buf)
		})
	})
	return m.Extrinsic.append(buf)
}

func decodeModuleV13(d *scale.Decoder) (ModuleMetadataV13, error) {
	var mod ModuleMetadataV13
	var err error
	if mod.Name, err = decodeDD(d, decodeText); err != nil {
		return mod, fmt.Errorf("name: %w", err)
	}
	if mod.Storage, err = decodeOptionDD(d, decodeStorageV13); err != nil {
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

func (mod ModuleMetadataV13) append(buf []byte) []byte {
	buf = appendDD(buf, mod.Name, scale.AppendText)
	buf = appendOptionDD(buf, mod.Storage, func(buf []byte, s StorageMetadataV13) []byte {
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

func decodeStorageV13(d *scale.Decoder) (StorageMetadataV13, error) {
	var s StorageMetadataV13
	var err error
	if s.Prefix, err = decodeDD(d, decodeText); err != nil {
		return s, fmt.Errorf("prefix: %w", err)
	}
	if s.Entries, err = decodeDD(d, func(d *scale.Decoder) ([]StorageEntryV13, error) {
		return decodeSeq(d, decodeStorageEntryV13)
	}); err != nil {
		return s, fmt.Errorf("entries: %w", err)
	}
	return s, nil
}

func (s StorageMetadataV13) append(buf []byte) []byte {
	buf = appendDD(buf, s.Prefix, scale.AppendText)
	return appendDD(buf, s.Entries, func(buf []byte, es []StorageEntryV13) []byte {
		return appendSeq(buf, es, func(buf []byte, e StorageEntryV13) []byte {
			return e.append(buf)
		})
	})
}

func decodeStorageEntryV13(d *scale.Decoder) (StorageEntryV13, error) {
	var e StorageEntryV13
	var err error
	if e.Name, err = decodeDD(d, decodeText); err != nil {
		return e, fmt.Errorf("name: %w", err)
	}
	if e.Modifier, err = decodeModifier(d); err != nil {
		return e, fmt.Errorf("modifier: %w", err)
	}
	if e.Type, err = decodeStorageEntryTypeV13(d); err != nil {
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

func (e StorageEntryV13) append(buf []byte) []byte {
	buf = appendDD(buf, e.Name, scale.AppendText)
	buf = scale.AppendUint8(buf, uint8(e.Modifier))
	buf = e.Type.append(buf)
	buf = appendDD(buf, e.Default, appendHexBytes)
	return appendDD(buf, e.Docs, scale.AppendTextSlice)
}

func decodeStorageEntryTypeV13(d *scale.Decoder) (StorageEntryTypeV13, error) {
	var t StorageEntryTypeV13
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
	case 3:
		var m NMapTypeV13
		if m.Keys, err = decodeDD(d, decodeTextSlice); err != nil {
			return t, fmt.Errorf("nmap keys: %w", err)
		}
		if m.Hashers, err = decodeSeq(d, decodeHasher); err != nil {
			return t, fmt.Errorf("nmap hashers: %w", err)
		}
		if m.Value, err = decodeDD(d, decodeText); err != nil {
			return t, fmt.Errorf("nmap value: %w", err)
		}
		t.NMap = &m
	default:
		return t, fmt.Errorf("invalid storage entry type tag %d", tag)
	}
	return t, nil
}

func (t StorageEntryTypeV13) append(buf []byte) []byte {
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
	case t.NMap != nil:
		buf = append(buf, 3)
		buf = appendDD(buf, t.NMap.Keys, scale.AppendTextSlice)
		buf = appendSeq(buf, t.NMap.Hashers, func(buf []byte, h StorageHasher) []byte {
			return scale.AppendUint8(buf, uint8(h))
		})
		return appendDD(buf, t.NMap.Value, scale.AppendText)
	default:
		return buf
	}
}
