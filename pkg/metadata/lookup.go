package metadata

// LookupResult is the outcome of a metadata query: either the full
// decoded tree (no name filter) or exactly one module/pallet. It is
// transient, built per query and handed straight to Render.
type LookupResult struct {
	// Full is set when no name filter was supplied.
	Full *RuntimeMetadata

	// Module is set when a name matched. Its concrete type follows the
	// metadata version: *ModuleMetadataV12, *ModuleMetadataV13 or
	// *PalletMetadataV14.
	Module any
}

// Resolve looks up a module/pallet by name within whichever version
// variant the metadata holds. An empty name returns the full tree.
// Matching is exact and case-sensitive against the stored order; the
// first match wins. Name fields the producer left still-encoded cannot
// match.
func Resolve(m *RuntimeMetadata, name string) (*LookupResult, error) {
	if name == "" {
		return &LookupResult{Full: m}, nil
	}

	switch {
	case m.V12 != nil:
		if !m.V12.Modules.IsDecoded() {
			return nil, ErrModulesNotDecoded
		}
		for i := range *m.V12.Modules.Decoded {
			mod := &(*m.V12.Modules.Decoded)[i]
			if mod.Name.IsDecoded() && *mod.Name.Decoded == name {
				return &LookupResult{Module: mod}, nil
			}
		}
	case m.V13 != nil:
		if !m.V13.Modules.IsDecoded() {
			return nil, ErrModulesNotDecoded
		}
		for i := range *m.V13.Modules.Decoded {
			mod := &(*m.V13.Modules.Decoded)[i]
			if mod.Name.IsDecoded() && *mod.Name.Decoded == name {
				return &LookupResult{Module: mod}, nil
			}
		}
	case m.V14 != nil:
		for i := range m.V14.Pallets {
			if m.V14.Pallets[i].Name == name {
				return &LookupResult{Module: &m.V14.Pallets[i]}, nil
			}
		}
	default:
		return nil, ErrUnsupportedVersion
	}

	return nil, &NotFoundError{Name: name}
}
