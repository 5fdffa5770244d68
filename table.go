package d2interface

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Kind is the semantic tag of a field.
type Kind uint8

const (
	// KindData is a readable/writable location holding a value.
	KindData Kind = iota + 1
	// KindPointer is a location holding a pointer that may be null.
	KindPointer
	// KindFunc is code inside the host invoked with a Signature.
	KindFunc
)

func (k Kind) String() string {
	switch k {
	case KindData:
		return "data"
	case KindPointer:
		return "pointer"
	case KindFunc:
		return "func"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Type is the semantic type carried by a field. Sig is set for functions and
// for data locations holding a function pointer.
type Type struct {
	Kind Kind
	Elem string
	Sig  *Signature
}

func DataOf(elem string) Type {
	return Type{Kind: KindData, Elem: elem}
}

func PointerTo(elem string) Type {
	return Type{Kind: KindPointer, Elem: elem}
}

func FuncOf(sig Signature) Type {
	return Type{Kind: KindFunc, Sig: &sig}
}

// FuncSlotOf is a data location holding a pointer to a function with sig.
func FuncSlotOf(sig Signature) Type {
	return Type{Kind: KindData, Elem: "fn", Sig: &sig}
}

func (t Type) String() string {
	switch {
	case t.Kind == KindFunc && t.Sig != nil:
		return t.Sig.String()
	case t.Sig != nil:
		return "*(" + t.Sig.String() + ")"
	case t.Kind == KindPointer:
		return "opt *" + t.Elem
	default:
		return t.Elem
	}
}

type FieldSpec struct {
	Name    string
	Type    Type
	Address Address
}

func Field(name string, typ Type, addr Address) FieldSpec {
	return FieldSpec{Name: name, Type: typ, Address: addr}
}

// Table is the set of fields known for one host module in one host build.
// Tables are values; Derive never mutates its base.
type Table struct {
	Name   string
	Module string
	Fields []FieldSpec
}

var ErrInvalidTable = errors.New("invalid table")

func (t Table) Lookup(name string) (FieldSpec, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

func (t Table) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("%w: unnamed table", ErrInvalidTable)
	}
	if t.Module == "" {
		return fmt.Errorf("%w: table %s has no module", ErrInvalidTable, t.Name)
	}
	seen := make(map[string]struct{}, len(t.Fields))
	for i, f := range t.Fields {
		if f.Name == "" {
			return fmt.Errorf("%w: table %s field %d has no name", ErrInvalidTable, t.Name, i)
		}
		if _, ok := seen[f.Name]; ok {
			return fmt.Errorf("%w: table %s defines %s twice", ErrInvalidTable, t.Name, f.Name)
		}
		seen[f.Name] = struct{}{}
		switch f.Type.Kind {
		case KindData, KindPointer:
		case KindFunc:
			if f.Type.Sig == nil {
				return fmt.Errorf("%w: table %s func %s has no signature", ErrInvalidTable, t.Name, f.Name)
			}
		default:
			return fmt.Errorf("%w: table %s field %s has kind %s", ErrInvalidTable, t.Name, f.Name, f.Type.Kind)
		}
	}
	return nil
}

// Derive returns a table equal to base with each override replacing the
// base field of the same name. The result keeps the base field order.
func Derive(base Table, name string, overrides ...FieldSpec) (Table, error) {
	byName := make(map[string]FieldSpec, len(overrides))
	for _, o := range overrides {
		if _, ok := base.Lookup(o.Name); !ok {
			return Table{}, fmt.Errorf("%w: %s overrides %s, not defined by %s", ErrInvalidTable, name, o.Name, base.Name)
		}
		if _, ok := byName[o.Name]; ok {
			return Table{}, fmt.Errorf("%w: %s overrides %s twice", ErrInvalidTable, name, o.Name)
		}
		byName[o.Name] = o
	}
	out := Table{Name: name, Module: base.Module, Fields: make([]FieldSpec, len(base.Fields))}
	for i, f := range base.Fields {
		if o, ok := byName[f.Name]; ok {
			f = o
		}
		out.Fields[i] = f
	}
	return out, nil
}

// At returns t's field name moved to addr, for use as a Derive override.
// It panics if t has no such field.
func (t Table) At(name string, addr Address) FieldSpec {
	f, ok := t.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("table %s has no field %s", t.Name, name))
	}
	f.Address = addr
	return f
}

func MustDerive(base Table, name string, overrides ...FieldSpec) Table {
	t, err := Derive(base, name, overrides...)
	if err != nil {
		panic(err)
	}
	return t
}

// Digest hashes the effective table. Equal tables always have equal digests.
func (t Table) Digest() uint64 {
	h := xxhash.New()
	var buf [8]byte
	writeString := func(s string) {
		binary.LittleEndian.PutUint32(buf[:4], uint32(len(s)))
		h.Write(buf[:4])
		h.WriteString(s)
	}
	writeString(t.Name)
	writeString(t.Module)
	for _, f := range t.Fields {
		writeString(f.Name)
		writeString(f.Type.String())
		buf[0] = byte(f.Type.Kind)
		buf[1] = byte(f.Address.kind)
		binary.LittleEndian.PutUint16(buf[2:4], f.Address.ordinal)
		binary.LittleEndian.PutUint32(buf[4:8], f.Address.offset)
		h.Write(buf[:])
	}
	return h.Sum64()
}
