package d2interface

import (
	"fmt"
	"strings"
)

// Convention is the calling convention of a host function.
type Convention uint8

const (
	Stdcall Convention = iota + 1
	Cdecl
	Fastcall
	Thiscall
)

func (c Convention) String() string {
	switch c {
	case Stdcall:
		return "stdcall"
	case Cdecl:
		return "cdecl"
	case Fastcall:
		return "fastcall"
	case Thiscall:
		return "thiscall"
	default:
		return fmt.Sprintf("convention(%d)", uint8(c))
	}
}

// Param is one argument of a host function. Reg names a register the
// argument is passed in outside of the convention's own rules, e.g. "esi".
type Param struct {
	Name string
	Reg  string
}

// Signature documents the argument and return layout of a host function.
// It is a contract between table authors and the host binary and is not
// verified at runtime beyond the argument count.
type Signature struct {
	Convention Convention
	Params     []Param
	Result     bool
}

func Sig(conv Convention, params ...string) Signature {
	s := Signature{Convention: conv}
	for _, p := range params {
		name, reg, _ := strings.Cut(p, "@")
		s.Params = append(s.Params, Param{Name: strings.TrimSpace(name), Reg: strings.TrimSpace(reg)})
	}
	return s
}

// Returning marks the signature as producing a 32-bit result.
func (s Signature) Returning() Signature {
	s.Params = append([]Param(nil), s.Params...)
	s.Result = true
	return s
}

// HasRegisterParams reports whether any argument bypasses the convention.
func (s Signature) HasRegisterParams() bool {
	for _, p := range s.Params {
		if p.Reg != "" {
			return true
		}
	}
	return false
}

func (s Signature) String() string {
	var b strings.Builder
	b.WriteString(s.Convention.String())
	b.WriteString(" fn(")
	for i, p := range s.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
		if p.Reg != "" {
			b.WriteString(" @ ")
			b.WriteString(p.Reg)
		}
	}
	b.WriteString(")")
	if s.Result {
		b.WriteString(" -> u32")
	}
	return b.String()
}
