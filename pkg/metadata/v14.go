package metadata

import (
	"encoding/json"
	"fmt"

	"github.com/chainx-org/chainx-cli/pkg/scale"
)

// MetadataV14 is the pallet-based schema. Type information moves out of
// inline strings into a portable type registry that pallets reference
// by ID, and the Decoded/StillEncoded wrapper is gone: every field is
// fully parsed.
type MetadataV14 struct {
	Types       []PortableType       `json:"types"`
	Pallets     []PalletMetadataV14  `json:"pallets"`
	Extrinsic   ExtrinsicMetadataV14 `json:"extrinsic"`
	RuntimeType TypeID               `json:"runtime_type"`
}

// TypeID is a compact-encoded reference into the type registry.
type TypeID uint64

// PortableType is one registry entry.
type PortableType struct {
	ID   TypeID `json:"id"`
	Type SiType `json:"type"`
}

// SiType is a registered type: its path, generic parameters, shape and
// docs.
type SiType struct {
	Path   []string          `json:"path"`
	Params []SiTypeParameter `json:"params"`
	Def    SiTypeDef         `json:"def"`
	Docs   []string          `json:"docs"`
}

// SiTypeParameter is one generic parameter of a registered type.
type SiTypeParameter struct {
	Name string  `json:"name"`
	Type *TypeID `json:"type"`
}

// SiTypeDef is the shape of a registered type: exactly one field is
// set.
type SiTypeDef struct {
	Composite   *SiComposite   `json:"composite,omitempty"`
	Variant     *SiVariantDef  `json:"variant,omitempty"`
	Sequence    *SiSequence    `json:"sequence,omitempty"`
	Array       *SiArray       `json:"array,omitempty"`
	Tuple       *SiTuple       `json:"tuple,omitempty"`
	Primitive   *SiPrimitive   `json:"primitive,omitempty"`
	Compact     *SiCompact     `json:"compact,omitempty"`
	BitSequence *SiBitSequence `json:"bit_sequence,omitempty"`
}

// SiTuple is a tuple of element type references. A pointer to it keeps
// the empty tuple (the unit type) distinguishable from an unset def.
type SiTuple []TypeID

// SiComposite is a struct-like type.
type SiComposite struct {
	Fields []SiField `json:"fields"`
}

// SiVariantDef is an enum-like type.
type SiVariantDef struct {
	Variants []SiVariant `json:"variants"`
}

// SiVariant is one enum case.
type SiVariant struct {
	Name   string    `json:"name"`
	Fields []SiField `json:"fields"`
	Index  uint8     `json:"index"`
	Docs   []string  `json:"docs"`
}

// SiField is one field of a composite or variant.
type SiField struct {
	Name     *string  `json:"name"`
	Type     TypeID   `json:"type"`
	TypeName *string  `json:"type_name"`
	Docs     []string `json:"docs"`
}

// SiSequence is a variable-length sequence of one element type.
type SiSequence struct {
	Type TypeID `json:"type"`
}

// SiArray is a fixed-length array.
type SiArray struct {
	Len  uint32 `json:"len"`
	Type TypeID `json:"type"`
}

// SiPrimitive is a primitive type tag.
type SiPrimitive uint8

var primitiveNames = [...]string{
	"bool", "char", "str",
	"u8", "u16", "u32", "u64", "u128", "u256",
	"i8", "i16", "i32", "i64", "i128", "i256",
}

func (p SiPrimitive) String() string {
	if int(p) < len(primitiveNames) {
		return primitiveNames[p]
	}
	return fmt.Sprintf("SiPrimitive(%d)", uint8(p))
}

// MarshalJSON renders the primitive by name.
func (p SiPrimitive) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// SiCompact is a compact-encoded wrapper around another type.
type SiCompact struct {
	Type TypeID `json:"type"`
}

// SiBitSequence is a bit vector with explicit store and order types.
type SiBitSequence struct {
	BitStoreType TypeID `json:"bit_store_type"`
	BitOrderType TypeID `json:"bit_order_type"`
}

// PalletMetadataV14 is one named pallet. Call, event and error
// definitions are references into the type registry.
type PalletMetadataV14 struct {
	Name      string                `json:"name"`
	Storage   *PalletStorageV14     `json:"storage"`
	Calls     *PalletCallV14        `json:"calls"`
	Events    *PalletEventV14       `json:"events"`
	Constants []PalletConstantV14   `json:"constants"`
	Errors    *PalletErrorV14       `json:"errors"`
	Index     uint8                 `json:"index"`
}

// PalletStorageV14 is a pallet's storage prefix and entries.
type PalletStorageV14 struct {
	Prefix  string            `json:"prefix"`
	Entries []StorageEntryV14 `json:"entries"`
}

// StorageEntryV14 is one storage item definition.
type StorageEntryV14 struct {
	Name     string               `json:"name"`
	Modifier StorageEntryModifier `json:"modifier"`
	Type     StorageEntryTypeV14  `json:"type"`
	Default  HexBytes             `json:"default"`
	Docs     []string             `json:"docs"`
}

// StorageEntryTypeV14 is the storage entry kind: exactly one of the
// fields is set. V14 collapses map/double-map/n-map into one map shape
// with a hasher list.
type StorageEntryTypeV14 struct {
	Plain *TypeID     `json:"plain,omitempty"`
	Map   *MapTypeV14 `json:"map,omitempty"`
}

// MapTypeV14 is a storage map keyed by one or more hashed keys.
type MapTypeV14 struct {
	Hashers []StorageHasher `json:"hashers"`
	Key     TypeID          `json:"key"`
	Value   TypeID          `json:"value"`
}

// PalletCallV14 references the enum type holding the pallet's calls.
type PalletCallV14 struct {
	Type TypeID `json:"type"`
}

// PalletEventV14 references the enum type holding the pallet's events.
type PalletEventV14 struct {
	Type TypeID `json:"type"`
}

// PalletErrorV14 references the enum type holding the pallet's errors.
type PalletErrorV14 struct {
	Type TypeID `json:"type"`
}

// PalletConstantV14 is a named runtime constant with its SCALE-encoded
// value.
type PalletConstantV14 struct {
	Name  string   `json:"name"`
	Type  TypeID   `json:"type"`
	Value HexBytes `json:"value"`
	Docs  []string `json:"docs"`
}

// ExtrinsicMetadataV14 describes the extrinsic format of the runtime.
type ExtrinsicMetadataV14 struct {
	Type             TypeID              `json:"type"`
	Version          uint8               `json:"version"`
	SignedExtensions []SignedExtensionV14 `json:"signed_extensions"`
}

// SignedExtensionV14 is one signed extension of the extrinsic.
type SignedExtensionV14 struct {
	Identifier       string `json:"identifier"`
	Type             TypeID `json:"type"`
	AdditionalSigned TypeID `json:"additional_signed"`
}

func decodeTypeID(d *scale.Decoder) (TypeID, error) {
	v, err := d.DecodeCompact()
	if err != nil {
		return 0, err
	}
	return TypeID(v), nil
}

func appendTypeID(buf []byte, id TypeID) []byte {
	return scale.AppendCompact(buf, uint64(id))
}

func decodeV14(d *scale.Decoder) (*MetadataV14, error) {
	var m MetadataV14
	var err error
	if m.Types, err = decodeSeq(d, decodePortableType); err != nil {
		return nil, fmt.Errorf("types: %w", err)
	}
	if m.Pallets, err = decodeSeq(d, decodePalletV14); err != nil {
		return nil, fmt.Errorf("pallets: %w", err)
	}
	if m.Extrinsic, err = decodeExtrinsicV14(d); err != nil {
		return nil, fmt.Errorf("extrinsic: %w", err)
	}
	if m.RuntimeType, err = decodeTypeID(d); err != nil {
		return nil, fmt.Errorf("runtime type: %w", err)
	}
	return &m, nil
}

func (m *MetadataV14) append(buf []byte) []byte {
	buf = appendSeq(buf, m.Types, func(buf []byte, t PortableType) []byte {
		return t.append(buf)
	})
	buf = appendSeq(buf, m.Pallets, func(buf []byte, p PalletMetadataV14) []byte {
		return p.append(buf)
	})
	buf = m.Extrinsic.append(buf)
	return appendTypeID(buf, m.RuntimeType)
}

func decodePortableType(d *scale.Decoder) (PortableType, error) {
	var t PortableType
	var err error
	if t.ID, err = decodeTypeID(d); err != nil {
		return t, fmt.Errorf("id: %w", err)
	}
	if t.Type, err = decodeSiType(d); err != nil {
		return t, fmt.Errorf("type: %w", err)
	}
	return t, nil
}

func (t PortableType) append(buf []byte) []byte {
	buf = appendTypeID(buf, t.ID)
	return t.Type.append(buf)
}

func decodeSiType(d *scale.Decoder) (SiType, error) {
	var t SiType
	var err error
	if t.Path, err = d.DecodeTextSlice(); err != nil {
		return t, fmt.Errorf("path: %w", err)
	}
	if t.Params, err = decodeSeq(d, decodeSiTypeParameter); err != nil {
		return t, fmt.Errorf("params: %w", err)
	}
	if t.Def, err = decodeSiTypeDef(d); err != nil {
		return t, fmt.Errorf("def: %w", err)
	}
	if t.Docs, err = d.DecodeTextSlice(); err != nil {
		return t, fmt.Errorf("docs: %w", err)
	}
	return t, nil
}

func (t SiType) append(buf []byte) []byte {
	buf = scale.AppendTextSlice(buf, t.Path)
	buf = appendSeq(buf, t.Params, func(buf []byte, p SiTypeParameter) []byte {
		return p.append(buf)
	})
	buf = t.Def.append(buf)
	return scale.AppendTextSlice(buf, t.Docs)
}

func decodeSiTypeParameter(d *scale.Decoder) (SiTypeParameter, error) {
	var p SiTypeParameter
	var err error
	if p.Name, err = d.DecodeText(); err != nil {
		return p, fmt.Errorf("name: %w", err)
	}
	present, err := d.DecodeOption()
	if err != nil {
		return p, fmt.Errorf("type: %w", err)
	}
	if present {
		id, err := decodeTypeID(d)
		if err != nil {
			return p, fmt.Errorf("type: %w", err)
		}
		p.Type = &id
	}
	return p, nil
}

func (p SiTypeParameter) append(buf []byte) []byte {
	buf = scale.AppendText(buf, p.Name)
	buf = scale.AppendOption(buf, p.Type != nil)
	if p.Type != nil {
		buf = appendTypeID(buf, *p.Type)
	}
	return buf
}

func decodeSiTypeDef(d *scale.Decoder) (SiTypeDef, error) {
	var def SiTypeDef
	tag, err := d.ReadByte()
	if err != nil {
		return def, err
	}
	switch tag {
	case 0:
		fields, err := decodeSeq(d, decodeSiField)
		if err != nil {
			return def, fmt.Errorf("composite: %w", err)
		}
		def.Composite = &SiComposite{Fields: fields}
	case 1:
		variants, err := decodeSeq(d, decodeSiVariant)
		if err != nil {
			return def, fmt.Errorf("variant: %w", err)
		}
		def.Variant = &SiVariantDef{Variants: variants}
	case 2:
		id, err := decodeTypeID(d)
		if err != nil {
			return def, fmt.Errorf("sequence: %w", err)
		}
		def.Sequence = &SiSequence{Type: id}
	case 3:
		var arr SiArray
		if arr.Len, err = d.DecodeUint32(); err != nil {
			return def, fmt.Errorf("array len: %w", err)
		}
		if arr.Type, err = decodeTypeID(d); err != nil {
			return def, fmt.Errorf("array type: %w", err)
		}
		def.Array = &arr
	case 4:
		ids, err := decodeSeq(d, decodeTypeID)
		if err != nil {
			return def, fmt.Errorf("tuple: %w", err)
		}
		tuple := SiTuple(ids)
		def.Tuple = &tuple
	case 5:
		b, err := d.ReadByte()
		if err != nil {
			return def, fmt.Errorf("primitive: %w", err)
		}
		if int(b) >= len(primitiveNames) {
			return def, fmt.Errorf("invalid primitive tag %d", b)
		}
		p := SiPrimitive(b)
		def.Primitive = &p
	case 6:
		id, err := decodeTypeID(d)
		if err != nil {
			return def, fmt.Errorf("compact: %w", err)
		}
		def.Compact = &SiCompact{Type: id}
	case 7:
		var bs SiBitSequence
		if bs.BitStoreType, err = decodeTypeID(d); err != nil {
			return def, fmt.Errorf("bit store: %w", err)
		}
		if bs.BitOrderType, err = decodeTypeID(d); err != nil {
			return def, fmt.Errorf("bit order: %w", err)
		}
		def.BitSequence = &bs
	default:
		return def, fmt.Errorf("invalid type def tag %d", tag)
	}
	return def, nil
}

func (def SiTypeDef) append(buf []byte) []byte {
	switch {
	case def.Composite != nil:
		buf = append(buf, 0)
		return appendSeq(buf, def.Composite.Fields, func(buf []byte, f SiField) []byte {
			return f.append(buf)
		})
	case def.Variant != nil:
		buf = append(buf, 1)
		return appendSeq(buf, def.Variant.Variants, func(buf []byte, v SiVariant) []byte {
			return v.append(buf)
		})
	case def.Sequence != nil:
		buf = append(buf, 2)
		return appendTypeID(buf, def.Sequence.Type)
	case def.Array != nil:
		buf = append(buf, 3)
		buf = scale.AppendUint32(buf, def.Array.Len)
		return appendTypeID(buf, def.Array.Type)
	case def.Tuple != nil:
		buf = append(buf, 4)
		return appendSeq(buf, []TypeID(*def.Tuple), appendTypeID)
	case def.Primitive != nil:
		buf = append(buf, 5)
		return scale.AppendUint8(buf, uint8(*def.Primitive))
	case def.Compact != nil:
		buf = append(buf, 6)
		return appendTypeID(buf, def.Compact.Type)
	case def.BitSequence != nil:
		buf = append(buf, 7)
		buf = appendTypeID(buf, def.BitSequence.BitStoreType)
		return appendTypeID(buf, def.BitSequence.BitOrderType)
	default:
		return buf
	}
}

func decodeSiField(d *scale.Decoder) (SiField, error) {
	var f SiField
	present, err := d.DecodeOption()
	if err != nil {
		return f, fmt.Errorf("name: %w", err)
	}
	if present {
		name, err := d.DecodeText()
		if err != nil {
			return f, fmt.Errorf("name: %w", err)
		}
		f.Name = &name
	}
	if f.Type, err = decodeTypeID(d); err != nil {
		return f, fmt.Errorf("type: %w", err)
	}
	present, err = d.DecodeOption()
	if err != nil {
		return f, fmt.Errorf("type name: %w", err)
	}
	if present {
		tn, err := d.DecodeText()
		if err != nil {
			return f, fmt.Errorf("type name: %w", err)
		}
		f.TypeName = &tn
	}
	if f.Docs, err = d.DecodeTextSlice(); err != nil {
		return f, fmt.Errorf("docs: %w", err)
	}
	return f, nil
}

func (f SiField) append(buf []byte) []byte {
	buf = scale.AppendOption(buf, f.Name != nil)
	if f.Name != nil {
		buf = scale.AppendText(buf, *f.Name)
	}
	buf = appendTypeID(buf, f.Type)
	buf = scale.AppendOption(buf, f.TypeName != nil)
	if f.TypeName != nil {
		buf = scale.AppendText(buf, *f.TypeName)
	}
	return scale.AppendTextSlice(buf, f.Docs)
}

func decodeSiVariant(d *scale.Decoder) (SiVariant, error) {
	var v SiVariant
	var err error
	if v.Name, err = d.DecodeText(); err != nil {
		return v, fmt.Errorf("name: %w", err)
	}
	if v.Fields, err = decodeSeq(d, decodeSiField); err != nil {
		return v, fmt.Errorf("fields: %w", err)
	}
	if v.Index, err = d.DecodeUint8(); err != nil {
		return v, fmt.Errorf("index: %w", err)
	}
	if v.Docs, err = d.DecodeTextSlice(); err != nil {
		return v, fmt.Errorf("docs: %w", err)
	}
	return v, nil
}

func (v SiVariant) append(buf []byte) []byte {
	buf = scale.AppendText(buf, v.Name)
	buf = appendSeq(buf, v.Fields, func(buf []byte, f SiField) []byte {
		return f.append(buf)
	})
	buf = scale.AppendUint8(buf, v.Index)
	return scale.AppendTextSlice(buf, v.Docs)
}

func decodePalletV14(d *scale.Decoder) (PalletMetadataV14, error) {
	var p PalletMetadataV14
	var err error
	if p.Name, err = d.DecodeText(); err != nil {
		return p, fmt.Errorf("name: %w", err)
	}
	present, err := d.DecodeOption()
	if err != nil {
		return p, fmt.Errorf("storage: %w", err)
	}
	if present {
		var s PalletStorageV14
		if s.Prefix, err = d.DecodeText(); err != nil {
			return p, fmt.Errorf("storage prefix: %w", err)
		}
		if s.Entries, err = decodeSeq(d, decodeStorageEntryV14); err != nil {
			return p, fmt.Errorf("storage entries: %w", err)
		}
		p.Storage = &s
	}
	if p.Calls, err = decodeTypeRef[PalletCallV14](d); err != nil {
		return p, fmt.Errorf("calls: %w", err)
	}
	if p.Events, err = decodeTypeRef[PalletEventV14](d); err != nil {
		return p, fmt.Errorf("events: %w", err)
	}
	if p.Constants, err = decodeSeq(d, decodePalletConstantV14); err != nil {
		return p, fmt.Errorf("constants: %w", err)
	}
	if p.Errors, err = decodeTypeRef[PalletErrorV14](d); err != nil {
		return p, fmt.Errorf("errors: %w", err)
	}
	if p.Index, err = d.DecodeUint8(); err != nil {
		return p, fmt.Errorf("index: %w", err)
	}
	return p, nil
}

// typeRef constrains the single-field wrappers around a registry
// reference so one decode helper serves calls, events and errors.
type typeRef interface {
	PalletCallV14 | PalletEventV14 | PalletErrorV14
}

func decodeTypeRef[T typeRef](d *scale.Decoder) (*T, error) {
	present, err := d.DecodeOption()
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	id, err := decodeTypeID(d)
	if err != nil {
		return nil, err
	}
	v := T{Type: id}
	return &v, nil
}

func (p PalletMetadataV14) append(buf []byte) []byte {
	buf = scale.AppendText(buf, p.Name)
	buf = scale.AppendOption(buf, p.Storage != nil)
	if p.Storage != nil {
		buf = scale.AppendText(buf, p.Storage.Prefix)
		buf = appendSeq(buf, p.Storage.Entries, func(buf []byte, e StorageEntryV14) []byte {
			return e.append(buf)
		})
	}
	buf = scale.AppendOption(buf, p.Calls != nil)
	if p.Calls != nil {
		buf = appendTypeID(buf, p.Calls.Type)
	}
	buf = scale.AppendOption(buf, p.Events != nil)
	if p.Events != nil {
		buf = appendTypeID(buf, p.Events.Type)
	}
	buf = appendSeq(buf, p.Constants, func(buf []byte, c PalletConstantV14) []byte {
		return c.append(buf)
	})
	buf = scale.AppendOption(buf, p.Errors != nil)
	if p.Errors != nil {
		buf = appendTypeID(buf, p.Errors.Type)
	}
	return scale.AppendUint8(buf, p.Index)
}

func decodeStorageEntryV14(d *scale.Decoder) (StorageEntryV14, error) {
	var e StorageEntryV14
	var err error
	if e.Name, err = d.DecodeText(); err != nil {
		return e, fmt.Errorf("name: %w", err)
	}
	if e.Modifier, err = decodeModifier(d); err != nil {
		return e, fmt.Errorf("modifier: %w", err)
	}
	tag, err := d.ReadByte()
	if err != nil {
		return e, fmt.Errorf("type: %w", err)
	}
	switch tag {
	case 0:
		id, err := decodeTypeID(d)
		if err != nil {
			return e, fmt.Errorf("plain type: %w", err)
		}
		e.Type.Plain = &id
	case 1:
		var m MapTypeV14
		if m.Hashers, err = decodeSeq(d, decodeHasher); err != nil {
			return e, fmt.Errorf("map hashers: %w", err)
		}
		if m.Key, err = decodeTypeID(d); err != nil {
			return e, fmt.Errorf("map key: %w", err)
		}
		if m.Value, err = decodeTypeID(d); err != nil {
			return e, fmt.Errorf("map value: %w", err)
		}
		e.Type.Map = &m
	default:
		return e, fmt.Errorf("invalid storage entry type tag %d", tag)
	}
	var def []byte
	if def, err = d.DecodeBytes(); err != nil {
		return e, fmt.Errorf("default: %w", err)
	}
	e.Default = HexBytes(def)
	if e.Docs, err = d.DecodeTextSlice(); err != nil {
		return e, fmt.Errorf("docs: %w", err)
	}
	return e, nil
}

func (e StorageEntryV14) append(buf []byte) []byte {
	buf = scale.AppendText(buf, e.Name)
	buf = scale.AppendUint8(buf, uint8(e.Modifier))
	switch {
	case e.Type.Plain != nil:
		buf = append(buf, 0)
		buf = appendTypeID(buf, *e.Type.Plain)
	case e.Type.Map != nil:
		buf = append(buf, 1)
		buf = appendSeq(buf, e.Type.Map.Hashers, func(buf []byte, h StorageHasher) []byte {
			return scale.AppendUint8(buf, uint8(h))
		})
		buf = appendTypeID(buf, e.Type.Map.Key)
		buf = appendTypeID(buf, e.Type.Map.Value)
	}
	buf = scale.AppendBytes(buf, e.Default)
	return scale.AppendTextSlice(buf, e.Docs)
}

func decodePalletConstantV14(d *scale.Decoder) (PalletConstantV14, error) {
	var c PalletConstantV14
	var err error
	if c.Name, err = d.DecodeText(); err != nil {
		return c, fmt.Errorf("name: %w", err)
	}
	if c.Type, err = decodeTypeID(d); err != nil {
		return c, fmt.Errorf("type: %w", err)
	}
	var val []byte
	if val, err = d.DecodeBytes(); err != nil {
		return c, fmt.Errorf("value: %w", err)
	}
	c.Value = HexBytes(val)
	if c.Docs, err = d.DecodeTextSlice(); err != nil {
		return c, fmt.Errorf("docs: %w", err)
	}
	return c, nil
}

func (c PalletConstantV14) append(buf []byte) []byte {
	buf = scale.AppendText(buf, c.Name)
	buf = appendTypeID(buf, c.Type)
	buf = scale.AppendBytes(buf, c.Value)
	return scale.AppendTextSlice(buf, c.Docs)
}

func decodeExtrinsicV14(d *scale.Decoder) (ExtrinsicMetadataV14, error) {
	var ex ExtrinsicMetadataV14
	var err error
	if ex.Type, err = decodeTypeID(d); err != nil {
		return ex, fmt.Errorf("type: %w", err)
	}
	if ex.Version, err = d.DecodeUint8(); err != nil {
		return ex, fmt.Errorf("version: %w", err)
	}
	if ex.SignedExtensions, err = decodeSeq(d, decodeSignedExtensionV14); err != nil {
		return ex, fmt.Errorf("signed extensions: %w", err)
	}
	return ex, nil
}

func (ex ExtrinsicMetadataV14) append(buf []byte) []byte {
	buf = appendTypeID(buf, ex.Type)
	buf = scale.AppendUint8(buf, ex.Version)
	return appendSeq(buf, ex.SignedExtensions, func(buf []byte, se SignedExtensionV14) []byte {
		return se.append(buf)
	})
}

func decodeSignedExtensionV14(d *scale.Decoder) (SignedExtensionV14, error) {
	var se SignedExtensionV14
	var err error
	if se.Identifier, err = d.DecodeText(); err != nil {
		return se, fmt.Errorf("identifier: %w", err)
	}
	if se.Type, err = decodeTypeID(d); err != nil {
		return se, fmt.Errorf("type: %w", err)
	}
	if se.AdditionalSigned, err = decodeTypeID(d); err != nil {
		return se, fmt.Errorf("additional signed: %w", err)
	}
	return se, nil
}

func (se SignedExtensionV14) append(buf []byte) []byte {
	buf = scale.AppendText(buf, se.Identifier)
	buf = appendTypeID(buf, se.Type)
	return appendTypeID(buf, se.AdditionalSigned)
}
