package d2interface

import "fmt"

// AddrKind tags how an Address is located in its module.
type AddrKind uint8

const (
	// AddrAbsent marks a field the host build does not have.
	AddrAbsent AddrKind = iota
	AddrOffset
	AddrOrdinal
)

// Address identifies one location in a host module, either as a byte offset
// from the module's load base or as an export-table ordinal. The zero value
// is Absent.
type Address struct {
	kind    AddrKind
	offset  uint32
	ordinal uint16
}

func Offset(off uint32) Address {
	return Address{kind: AddrOffset, offset: off}
}

func Ordinal(ord uint16) Address {
	return Address{kind: AddrOrdinal, ordinal: ord}
}

func Absent() Address {
	return Address{}
}

func (a Address) Kind() AddrKind {
	return a.kind
}

// Offset returns the byte delta and whether the address is an offset.
func (a Address) Offset() (uint32, bool) {
	return a.offset, a.kind == AddrOffset
}

// Ordinal returns the export index and whether the address is an ordinal.
func (a Address) Ordinal() (uint16, bool) {
	return a.ordinal, a.kind == AddrOrdinal
}

func (a Address) String() string {
	switch a.kind {
	case AddrOffset:
		return fmt.Sprintf("0x%x", a.offset)
	case AddrOrdinal:
		return fmt.Sprintf("#%d", a.ordinal)
	default:
		return "absent"
	}
}
