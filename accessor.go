package d2interface

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Memory is the host's address space. Reads and writes through it cross
// into memory owned by the host, which may change it at any time without
// synchronization; callers that write concurrently must serialize among
// themselves.
type Memory interface {
	ReadMemory(buf []byte, addr uintptr) (int, error)
	WriteMemory(addr uintptr, data []byte) (int, error)
}

// Caller invokes host code at addr following sig. The signature is trusted.
type Caller interface {
	Call(addr uintptr, sig Signature, args []uint32) (uint32, error)
}

// host pointers are 32 bits wide
const hostPtrSize = 4

type handle struct {
	name    string
	addr    uintptr
	present bool
}

func (h handle) Name() string {
	return h.name
}

// Present reports whether the attached host build has this field.
func (h handle) Present() bool {
	return h.present
}

func (h handle) check() error {
	if !h.present {
		return fmt.Errorf("%s: %w", h.name, ErrAbsent)
	}
	return nil
}

func (h handle) read(m Memory, buf []byte) error {
	if err := h.check(); err != nil {
		return err
	}
	n, err := m.ReadMemory(buf, h.addr)
	if err != nil {
		return fmt.Errorf("read %s: %w", h.name, err)
	}
	if n != len(buf) {
		return fmt.Errorf("read %s: %w", h.name, io.ErrUnexpectedEOF)
	}
	return nil
}

func (h handle) loadPtr(m Memory) (uint32, error) {
	var buf [hostPtrSize]byte
	if err := h.read(m, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// Data is a location holding a T. T must have a fixed little-endian size.
type Data[T any] struct {
	handle
}

// layout returns the encoded size of T. Types without a fixed, non-zero size
// are opaque.
func layout[T any]() (int, error) {
	var v T
	size := binary.Size(v)
	if size <= 0 {
		return 0, fmt.Errorf("%w: %T", ErrOpaque, v)
	}
	return size, nil
}

func (d Data[T]) Read(m Memory) (T, error) {
	var v T
	if err := d.check(); err != nil {
		return v, err
	}
	size, err := layout[T]()
	if err != nil {
		return v, fmt.Errorf("read %s: %w", d.name, err)
	}
	buf := make([]byte, size)
	if err := d.read(m, buf); err != nil {
		return v, err
	}
	if _, err := binary.Decode(buf, binary.LittleEndian, &v); err != nil {
		return v, fmt.Errorf("decode %s: %w", d.name, err)
	}
	return v, nil
}

func (d Data[T]) Write(m Memory, v T) error {
	if err := d.check(); err != nil {
		return err
	}
	if _, err := layout[T](); err != nil {
		return fmt.Errorf("write %s: %w", d.name, err)
	}
	buf, err := binary.Append(nil, binary.LittleEndian, v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", d.name, err)
	}
	n, err := m.WriteMemory(d.addr, buf)
	if err != nil {
		return fmt.Errorf("write %s: %w", d.name, err)
	}
	if n != len(buf) {
		return fmt.Errorf("write %s: %w", d.name, io.ErrShortWrite)
	}
	return nil
}

// Opaque is a host structure whose layout is not known. It can be checked
// for presence but not read or written.
type Opaque struct {
	handle
}

// Pointer is a location holding a pointer to a T which may be null. A null
// pointer means the value is not currently present (e.g. no player while in
// the menus); it is not an error. When T is opaque the target can only be
// followed, not read.
type Pointer[T any] struct {
	handle
}

func (p Pointer[T]) Load(m Memory) (Data[T], bool, error) {
	v, err := p.loadPtr(m)
	if err != nil || v == 0 {
		return Data[T]{}, false, err
	}
	return Data[T]{handle{name: "*" + p.name, addr: uintptr(v), present: true}}, true, nil
}

// Func is code inside the host.
type Func struct {
	handle
	sig Signature
}

func (f Func) Signature() Signature {
	return f.sig
}

// Call invokes the function. Arguments are passed as 32-bit words in
// declaration order, register arguments included.
func (f Func) Call(c Caller, args ...uint32) (uint32, error) {
	if err := f.check(); err != nil {
		return 0, err
	}
	if len(args) != len(f.sig.Params) {
		return 0, fmt.Errorf("call %s: want %d args, got %d", f.name, len(f.sig.Params), len(args))
	}
	r, err := c.Call(f.addr, f.sig, args)
	if err != nil {
		return 0, fmt.Errorf("call %s: %w", f.name, err)
	}
	return r, nil
}

// FuncSlot is a location holding a pointer to a function, e.g. a selected
// callback. Load returns false if the slot is null.
type FuncSlot struct {
	handle
	sig Signature
}

func (s FuncSlot) Load(m Memory) (Func, bool, error) {
	v, err := s.loadPtr(m)
	if err != nil || v == 0 {
		return Func{}, false, err
	}
	return Func{handle: handle{name: "*" + s.name, addr: uintptr(v), present: true}, sig: s.sig}, true, nil
}
