//go:build windows && 386
// +build windows,386

package hostmod

import (
	"fmt"
	"syscall"

	"github.com/d2fps/d2interface"
)

// Call invokes host code. syscall.SyscallN pushes every argument on the
// stack and restores the stack pointer afterwards, which serves both stdcall
// and cdecl. Register conventions need a trampoline and are refused.
func (p *Process) Call(addr uintptr, sig d2interface.Signature, args []uint32) (uint32, error) {
	switch sig.Convention {
	case d2interface.Stdcall, d2interface.Cdecl:
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedConvention, sig.Convention)
	}
	if sig.HasRegisterParams() {
		return 0, fmt.Errorf("%w: register arguments in %s", ErrUnsupportedConvention, sig)
	}
	words := make([]uintptr, len(args))
	for i, a := range args {
		words[i] = uintptr(a)
	}
	r, _, _ := syscall.SyscallN(addr, words...)
	return uint32(r), nil
}
