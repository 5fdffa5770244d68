package d2interface

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedVersion = errors.New("unsupported host version")
	ErrUnresolvedSymbol   = errors.New("unresolved symbol")
	// ErrAbsent is returned when an accessor for a field the attached build
	// does not have is used.
	ErrAbsent       = errors.New("field absent in this host version")
	ErrInvalidState = errors.New("invalid session state")
	// ErrOpaque is returned when reading or writing a value whose layout is
	// not known.
	ErrOpaque = errors.New("opaque host type")
)

type UnsupportedVersionError struct {
	Fingerprint Fingerprint
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported host version: %s", e.Fingerprint)
}

func (e *UnsupportedVersionError) Is(target error) bool {
	return target == ErrUnsupportedVersion
}

// UnresolvedSymbolError names the field whose ordinal was missing from the
// module's export table.
type UnresolvedSymbolError struct {
	Table   string
	Field   string
	Ordinal uint16
}

func (e *UnresolvedSymbolError) Error() string {
	return fmt.Sprintf("unresolved symbol %s (ordinal %d) in table %s", e.Field, e.Ordinal, e.Table)
}

func (e *UnresolvedSymbolError) Is(target error) bool {
	return target == ErrUnresolvedSymbol
}

// FieldError reports a table that does not fit the accessor group built
// from it.
type FieldError struct {
	Table  string
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("table %s field %s: %s", e.Table, e.Field, e.Reason)
}
