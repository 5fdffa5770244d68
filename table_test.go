package d2interface

import (
	"errors"
	"reflect"
	"testing"
)

var tableA = Table{Name: "A", Module: ModuleClient, Fields: []FieldSpec{
	Field("x", DataOf("u32"), Offset(0x100)),
	Field("y", DataOf("u32"), Offset(0x300)),
	Field("z", FuncOf(Sig(Stdcall)), Ordinal(12)),
}}

func TestDeriveOverride(t *testing.T) {
	b, err := Derive(tableA, "B", tableA.At("x", Offset(0x200)))
	if err != nil {
		t.Fatal(err)
	}
	m := &fakeModule{base: 0x400000, exports: map[uint16]uintptr{12: 0x401234}}
	r, err := Resolve(b, m)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]uintptr{
		"x": 0x400200,
		"y": 0x400300,
		"z": 0x401234,
	}
	if got := fieldAddrs(r); !reflect.DeepEqual(got, want) {
		t.Errorf("resolved %v, want %v", got, want)
	}
	if f, _ := tableA.Lookup("x"); f.Address != Offset(0x100) {
		t.Errorf("base table changed: x at %s", f.Address)
	}
	if b.Module != tableA.Module {
		t.Errorf("derived module %s, want %s", b.Module, tableA.Module)
	}
	var names []string
	for _, f := range b.Fields {
		names = append(names, f.Name)
	}
	if !reflect.DeepEqual(names, []string{"x", "y", "z"}) {
		t.Errorf("derived order %v", names)
	}
}

func TestDeriveErrors(t *testing.T) {
	tests := []struct {
		name      string
		overrides []FieldSpec
	}{
		{"unknown field", []FieldSpec{Field("w", DataOf("u32"), Offset(1))}},
		{"duplicate override", []FieldSpec{tableA.At("x", Offset(1)), tableA.At("x", Offset(2))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Derive(tableA, "B", tt.overrides...); !errors.Is(err, ErrInvalidTable) {
				t.Errorf("got %v, want ErrInvalidTable", err)
			}
		})
	}
}

func TestDeriveIsRepeatable(t *testing.T) {
	first := MustDerive(tableA, "B", tableA.At("y", Absent()))
	for i := 0; i < 3; i++ {
		again := MustDerive(tableA, "B", tableA.At("y", Absent()))
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("derivation %d differs", i)
		}
		if first.Digest() != again.Digest() {
			t.Fatalf("digest %d differs", i)
		}
	}
	if first.Digest() == tableA.Digest() {
		t.Error("derived table has the digest of its base")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		table Table
		ok    bool
	}{
		{"ok", tableA, true},
		{"no name", Table{Module: ModuleClient}, false},
		{"no module", Table{Name: "t"}, false},
		{"duplicate", Table{Name: "t", Module: ModuleClient, Fields: []FieldSpec{
			Field("a", DataOf("u32"), Offset(1)),
			Field("a", DataOf("u32"), Offset(2)),
		}}, false},
		{"func without signature", Table{Name: "t", Module: ModuleClient, Fields: []FieldSpec{
			Field("f", Type{Kind: KindFunc}, Offset(1)),
		}}, false},
		{"no kind", Table{Name: "t", Module: ModuleClient, Fields: []FieldSpec{
			Field("f", Type{}, Offset(1)),
		}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.table.Validate()
			if (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, ok %v", err, tt.ok)
			}
		})
	}
}

func TestAddressString(t *testing.T) {
	for addr, want := range map[Address]string{
		Offset(0x10876c): "0x10876c",
		Ordinal(10129):   "#10129",
		Absent():         "absent",
	} {
		if got := addr.String(); got != want {
			t.Errorf("%#v.String() = %q, want %q", addr, got, want)
		}
	}
}

func TestSignatureString(t *testing.T) {
	sig := Sig(Stdcall, "pos @ esi", "x", "y", "room")
	if got, want := sig.String(), "stdcall fn(pos @ esi, x, y, room)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if !sig.HasRegisterParams() {
		t.Error("esi parameter not reported")
	}
	if got, want := Sig(Fastcall, "arg").Returning().String(), "fastcall fn(arg) -> u32"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
