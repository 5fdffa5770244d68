package pe

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/d2fps/d2interface"
	"github.com/d2fps/d2interface/fileversion"
	"github.com/d2fps/d2interface/internal/petest"
)

const testImageBase = 0x6f8e0000

func TestNewFileExports(t *testing.T) {
	image := petest.Image{
		ImageBase:   testImageBase,
		OrdinalBase: 10000,
		Funcs:       []uint32{0x2000, 0, petest.SectionRVA + 0x10, 0x3456},
	}.Bytes(t)
	f, err := NewFile(bytes.NewReader(image))
	if err != nil {
		t.Fatal(err)
	}
	if f.ImageBase != testImageBase {
		t.Errorf("image base 0x%x", f.ImageBase)
	}
	want := []Export{{Ordinal: 10000, RVA: 0x2000}, {Ordinal: 10003, RVA: 0x3456}}
	if got := f.Exports(); !reflect.DeepEqual(got, want) {
		t.Errorf("exports %+v, want %+v", got, want)
	}

	m := f.At(0)
	if m.Base() != testImageBase {
		t.Errorf("module base 0x%x", m.Base())
	}
	if addr, ok := m.Ordinal(10003); !ok || addr != testImageBase+0x3456 {
		t.Errorf("ordinal 10003 = 0x%x, %v", addr, ok)
	}
	if _, ok := m.Ordinal(10002); ok {
		t.Error("forwarded export resolved")
	}
	if addr, _ := f.At(0x400000).Ordinal(10000); addr != 0x402000 {
		t.Errorf("rebased ordinal 10000 = 0x%x", addr)
	}
}

func TestNewFileNoExports(t *testing.T) {
	f, err := NewFile(bytes.NewReader(petest.Image{ImageBase: 0x400000}.Bytes(t)))
	if err != nil {
		t.Fatal(err)
	}
	if n := len(f.Exports()); n != 0 {
		t.Errorf("%d exports", n)
	}
}

func TestNewFileOrdinalRange(t *testing.T) {
	top := petest.Image{ImageBase: testImageBase, OrdinalBase: 0xffff, Funcs: []uint32{0x2000}}
	f, err := NewFile(bytes.NewReader(top.Bytes(t)))
	if err != nil {
		t.Fatal(err)
	}
	if rva, ok := f.Ordinal(0xffff); !ok || rva != 0x2000 {
		t.Errorf("ordinal 0xffff = 0x%x, %v", rva, ok)
	}

	top.Funcs = []uint32{0x2000, 0x3000}
	if _, err := NewFile(bytes.NewReader(top.Bytes(t))); err == nil {
		t.Error("accepted ordinals past 0xffff")
	}
}

func TestNewFileNotPE(t *testing.T) {
	if _, err := NewFile(bytes.NewReader([]byte("not a module"))); err == nil {
		t.Error("parsed garbage")
	}
}

func TestDirResolve(t *testing.T) {
	dir := t.TempDir()
	v := fileversion.MustParse("1.0.11.46")
	write := func(name string, image []byte) {
		if err := os.WriteFile(filepath.Join(dir, name), image, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("game.exe", petest.Image{ImageBase: 0x400000, Version: &v}.Bytes(t))
	write("D2Win.dll", petest.Image{ImageBase: testImageBase, OrdinalBase: 10000, Funcs: []uint32{0x2000}}.Bytes(t))

	d := &Dir{Path: dir, Bases: map[string]uintptr{"d2win.dll": 0x10000000}}
	fp, err := d.Fingerprint()
	if err != nil {
		t.Fatal(err)
	}
	if fp.FileVersion != v {
		t.Errorf("fingerprint %s, want %s", fp, v)
	}

	m, err := d.Module(d2interface.ModuleWin)
	if err != nil {
		t.Fatal(err)
	}
	table := d2interface.Table{Name: "t", Module: d2interface.ModuleWin, Fields: []d2interface.FieldSpec{
		d2interface.Field("fn", d2interface.FuncOf(d2interface.Sig(d2interface.Stdcall)), d2interface.Ordinal(10000)),
		d2interface.Field("missing", d2interface.FuncOf(d2interface.Sig(d2interface.Stdcall)), d2interface.Ordinal(10001)),
	}}
	_, err = d2interface.Resolve(table, m)
	var unresolved *d2interface.UnresolvedSymbolError
	if !errors.As(err, &unresolved) || unresolved.Field != "missing" {
		t.Errorf("resolve: %v", err)
	}
	r, err := d2interface.Resolve(d2interface.MustDerive(table, "t2", table.At("missing", d2interface.Offset(0x10))), m)
	if err != nil {
		t.Fatal(err)
	}
	fields := r.Fields()
	if fields[0].Addr != 0x10002000 || fields[1].Addr != 0x10000010 {
		t.Errorf("resolved %+v", fields)
	}

	if _, err := d.Module(d2interface.ModuleClient); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing module: %v", err)
	}
}
