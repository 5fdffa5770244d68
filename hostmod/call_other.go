//go:build !(windows && 386)
// +build !windows !386

package hostmod

import "github.com/d2fps/d2interface"

func (p *Process) Call(addr uintptr, sig d2interface.Signature, args []uint32) (uint32, error) {
	return 0, ErrUnsupportedPlatform
}
