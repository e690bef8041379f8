// Package extrinsic builds, signs and encodes version 4 extrinsics.
// Call indices are resolved from runtime metadata rather than
// hardcoded, so the same binary keeps working across runtime upgrades
// that reorder modules.
package extrinsic

import (
	"errors"
	"fmt"

	"github.com/chainx-org/chainx-cli/pkg/metadata"
)

// CallIndex is the two-byte dispatch prefix of a call: the module (or
// pallet) index and the call's position within it.
type CallIndex struct {
	Module uint8
	Call   uint8
}

// ErrCallsEncoded is returned when the module's call list is present
// only as raw undecoded bytes, so names cannot be matched.
var ErrCallsEncoded = errors.New("extrinsic: call list still encoded, cannot resolve by name")

// NoCallsError is returned when the module exists but dispatches no
// calls.
type NoCallsError struct {
	Module string
}

func (e *NoCallsError) Error() string {
	return fmt.Sprintf("extrinsic: module %q has no calls", e.Module)
}

// CallNotFoundError is returned when the module exists but the named
// call does not.
type CallNotFoundError struct {
	Module string
	Call   string
}

func (e *CallNotFoundError) Error() string {
	return fmt.Sprintf("extrinsic: module %q has no call %q", e.Module, e.Call)
}

// ResolveCall finds the dispatch index of module.call in the runtime
// metadata. Matching is exact and case sensitive. Module lookup errors
// come from the metadata package unchanged.
func ResolveCall(m *metadata.RuntimeMetadata, module, call string) (CallIndex, error) {
	res, err := metadata.Resolve(m, module)
	if err != nil {
		return CallIndex{}, err
	}
	switch mod := res.Module.(type) {
	case *metadata.ModuleMetadataV12:
		return resolveLegacy(module, call, mod.Index, mod.Calls)
	case *metadata.ModuleMetadataV13:
		return resolveLegacy(module, call, mod.Index, mod.Calls)
	case *metadata.PalletMetadataV14:
		return resolveV14(m.V14, mod, call)
	default:
		return CallIndex{}, metadata.ErrUnsupportedVersion
	}
}

func resolveLegacy(module, call string, index uint8, calls *metadata.DecodeDifferent[[]metadata.FunctionMetadata]) (CallIndex, error) {
	if calls == nil {
		return CallIndex{}, &NoCallsError{Module: module}
	}
	if !calls.IsDecoded() {
		return CallIndex{}, ErrCallsEncoded
	}
	for i, fn := range *calls.Decoded {
		if !fn.Name.IsDecoded() {
			return CallIndex{}, ErrCallsEncoded
		}
		if *fn.Name.Decoded == call {
			return CallIndex{Module: index, Call: uint8(i)}, nil
		}
	}
	return CallIndex{}, &CallNotFoundError{Module: module, Call: call}
}

func resolveV14(meta *metadata.MetadataV14, pallet *metadata.PalletMetadataV14, call string) (CallIndex, error) {
	if pallet.Calls == nil {
		return CallIndex{}, &NoCallsError{Module: pallet.Name}
	}
	var callType *metadata.SiType
	for i := range meta.Types {
		if meta.Types[i].ID == pallet.Calls.Type {
			callType = &meta.Types[i].Type
			break
		}
	}
	if callType == nil || callType.Def.Variant == nil {
		return CallIndex{}, fmt.Errorf("extrinsic: pallet %q call type %d is not a variant", pallet.Name, pallet.Calls.Type)
	}
	for _, v := range callType.Def.Variant.Variants {
		if v.Name == call {
			return CallIndex{Module: pallet.Index, Call: v.Index}, nil
		}
	}
	return CallIndex{}, &CallNotFoundError{Module: pallet.Name, Call: call}
}
