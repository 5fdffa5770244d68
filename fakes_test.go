package d2interface

import (
	"errors"
	"fmt"
)

type fakeModule struct {
	base    uintptr
	exports map[uint16]uintptr
	lookups int
}

func (m *fakeModule) Base() uintptr {
	return m.base
}

func (m *fakeModule) Ordinal(ord uint16) (uintptr, bool) {
	m.lookups++
	addr, ok := m.exports[ord]
	return addr, ok
}

// fullModule exports every ordinal used by t at base+0x1000+ordinal.
func fullModule(base uintptr, tables ...Table) *fakeModule {
	m := &fakeModule{base: base, exports: map[uint16]uintptr{}}
	for _, t := range tables {
		for _, f := range t.Fields {
			if ord, ok := f.Address.Ordinal(); ok {
				m.exports[ord] = base + 0x1000 + uintptr(ord)
			}
		}
	}
	return m
}

type fakeMemory struct {
	bytes map[uintptr]byte
}

func newFakeMemory() *fakeMemory {
	return &fakeMemory{bytes: map[uintptr]byte{}}
}

func (m *fakeMemory) ReadMemory(buf []byte, addr uintptr) (int, error) {
	for i := range buf {
		b, ok := m.bytes[addr+uintptr(i)]
		if !ok {
			return i, fmt.Errorf("0x%x not mapped", addr+uintptr(i))
		}
		buf[i] = b
	}
	return len(buf), nil
}

func (m *fakeMemory) WriteMemory(addr uintptr, data []byte) (int, error) {
	for i, b := range data {
		m.bytes[addr+uintptr(i)] = b
	}
	return len(data), nil
}

func (m *fakeMemory) putUint32(addr uintptr, v uint32) {
	m.WriteMemory(addr, []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)})
}

type call struct {
	addr uintptr
	sig  Signature
	args []uint32
}

type fakeCaller struct {
	calls  []call
	result uint32
}

func (c *fakeCaller) Call(addr uintptr, sig Signature, args []uint32) (uint32, error) {
	c.calls = append(c.calls, call{addr: addr, sig: sig, args: append([]uint32(nil), args...)})
	return c.result, nil
}

type fakeHost struct {
	fp      Fingerprint
	fpErr   error
	modules map[string]Module
	opened  []string
}

func (h *fakeHost) Fingerprint() (Fingerprint, error) {
	return h.fp, h.fpErr
}

func (h *fakeHost) Module(file string) (Module, error) {
	h.opened = append(h.opened, file)
	m, ok := h.modules[file]
	if !ok {
		return nil, errors.New("module not loaded")
	}
	return m, nil
}

// hostFor builds a host running v with each module at its own base and every
// ordinal exported.
func hostFor(v *Version) *fakeHost {
	h := &fakeHost{fp: v.Fingerprint, modules: map[string]Module{}}
	bases := map[string]uintptr{
		ModuleClient: 0x6fab0000,
		ModuleGfx:    0x6fa80000,
		ModuleGame:   0x6fc20000,
		ModuleWin:    0x6f8e0000,
	}
	for _, t := range v.Tables() {
		h.modules[t.Module] = fullModule(bases[t.Module], t)
	}
	return h
}

func fieldAddrs(r *Resolution) map[string]uintptr {
	out := map[string]uintptr{}
	for _, f := range r.Fields() {
		if f.Present {
			out[f.Name] = f.Addr
		}
	}
	return out
}
