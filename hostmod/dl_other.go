//go:build !windows
// +build !windows

package hostmod

import "github.com/d2fps/d2interface"

func (p *Process) Fingerprint() (d2interface.Fingerprint, error) {
	return d2interface.Fingerprint{}, ErrUnsupportedPlatform
}

func (p *Process) Module(file string) (d2interface.Module, error) {
	return nil, ErrUnsupportedPlatform
}

func (p *Process) ReadMemory(buf []byte, addr uintptr) (int, error) {
	return 0, ErrUnsupportedPlatform
}

func (p *Process) WriteMemory(addr uintptr, data []byte) (int, error) {
	return 0, ErrUnsupportedPlatform
}
