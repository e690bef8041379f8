package metadata

import (
	"errors"
	"strings"
	"testing"
)

func TestResolve_FullTree(t *testing.T) {
	m := sampleV12()
	res, err := Resolve(m, "")
	if err != nil {
		t.Fatal(err)
	}
	if res.Full != m {
		t.Error("empty name did not return the full tree")
	}
	if res.Module != nil {
		t.Error("empty name set Module")
	}
}

func TestResolve_V12(t *testing.T) {
	res, err := Resolve(sampleV12(), "Balances")
	if err != nil {
		t.Fatal(err)
	}
	mod, ok := res.Module.(*ModuleMetadataV12)
	if !ok {
		t.Fatalf("Module type = %T", res.Module)
	}
	if *mod.Name.Decoded != "Balances" || mod.Index != 4 {
		t.Errorf("resolved %q index %d", *mod.Name.Decoded, mod.Index)
	}
}

func TestResolve_V13(t *testing.T) {
	res, err := Resolve(sampleV13(), "XStaking")
	if err != nil {
		t.Fatal(err)
	}
	mod, ok := res.Module.(*ModuleMetadataV13)
	if !ok {
		t.Fatalf("Module type = %T", res.Module)
	}
	if mod.Index != 7 {
		t.Errorf("index = %d, want 7", mod.Index)
	}
}

func TestResolve_V14(t *testing.T) {
	res, err := Resolve(sampleV14(), "Balances")
	if err != nil {
		t.Fatal(err)
	}
	pallet, ok := res.Module.(*PalletMetadataV14)
	if !ok {
		t.Fatalf("Module type = %T", res.Module)
	}
	if pallet.Index != 5 {
		t.Errorf("index = %d, want 5", pallet.Index)
	}
}

func TestResolve_CaseSensitive(t *testing.T) {
	var nf *NotFoundError
	_, err := Resolve(sampleV12(), "balances")
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
	if nf.Name != "balances" {
		t.Errorf("NotFoundError.Name = %q", nf.Name)
	}
}

func TestResolve_NotFound(t *testing.T) {
	var nf *NotFoundError
	if _, err := Resolve(sampleV14(), "Treasury"); !errors.As(err, &nf) {
		t.Errorf("err = %v, want NotFoundError", err)
	}
}

func TestResolve_Deterministic(t *testing.T) {
	m := sampleV12()
	first, err := Resolve(m, "System")
	if err != nil {
		t.Fatal(err)
	}
	second, err := Resolve(m, "System")
	if err != nil {
		t.Fatal(err)
	}
	if first.Module != second.Module {
		t.Error("repeated lookups returned different modules")
	}
}

func TestResolve_ModulesNotDecoded(t *testing.T) {
	m := &RuntimeMetadata{V12: &MetadataV12{
		Modules: DecodeDifferent[[]ModuleMetadataV12]{Raw: []byte{1, 2, 3}},
	}}
	if _, err := Resolve(m, "System"); !errors.Is(err, ErrModulesNotDecoded) {
		t.Errorf("err = %v, want ErrModulesNotDecoded", err)
	}
	// The full tree remains reachable.
	if _, err := Resolve(m, ""); err != nil {
		t.Errorf("full-tree lookup failed: %v", err)
	}
}

func TestResolve_EmptyVariant(t *testing.T) {
	if _, err := Resolve(&RuntimeMetadata{}, "System"); !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("err = %v, want ErrUnsupportedVersion", err)
	}
}

func TestRender_Module(t *testing.T) {
	res, err := Resolve(sampleV12(), "Balances")
	if err != nil {
		t.Fatal(err)
	}
	out, err := Render(res)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"Balances"`, `"transfer"`, `"InsufficientBalance"`} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered module missing %s", want)
		}
	}
}

func TestRender_FullTree(t *testing.T) {
	res, err := Resolve(sampleV14(), "")
	if err != nil {
		t.Fatal(err)
	}
	out, err := Render(res)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"v14"`) {
		t.Error("full render missing version key")
	}
	if !strings.Contains(out, `"pallets"`) {
		t.Error("full render missing pallets")
	}
}
