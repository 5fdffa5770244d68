//go:build windows
// +build windows

package hostmod

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	readable = windows.PAGE_READONLY | windows.PAGE_READWRITE | windows.PAGE_WRITECOPY |
		windows.PAGE_EXECUTE_READ | windows.PAGE_EXECUTE_READWRITE | windows.PAGE_EXECUTE_WRITECOPY
	writable = windows.PAGE_READWRITE | windows.PAGE_WRITECOPY |
		windows.PAGE_EXECUTE_READWRITE | windows.PAGE_EXECUTE_WRITECOPY
)

// checkRange reports whether every page of [addr, addr+size) is committed
// with one of the protections in mask.
func checkRange(addr, size uintptr, mask uint32) bool {
	return covered(addr, size, func(at uintptr) (region, error) {
		var mbi windows.MemoryBasicInformation
		if err := windows.VirtualQuery(at, &mbi, unsafe.Sizeof(mbi)); err != nil {
			return region{}, err
		}
		ok := mbi.State == windows.MEM_COMMIT && mbi.Protect&windows.PAGE_GUARD == 0 && mbi.Protect&mask != 0
		return region{base: mbi.BaseAddress, size: mbi.RegionSize, ok: ok}, nil
	})
}

// hostBytes views host memory as a slice. This is the only conversion from a
// host address to a Go pointer; the host owns the memory and may change it
// concurrently.
func hostBytes(addr uintptr, n int) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), n)
}

func (p *Process) ReadMemory(buf []byte, addr uintptr) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	if !checkRange(addr, uintptr(len(buf)), readable) {
		return 0, fmt.Errorf("%w: 0x%x+%d", ErrNotReadable, addr, len(buf))
	}
	return copy(buf, hostBytes(addr, len(buf))), nil
}

func (p *Process) WriteMemory(addr uintptr, data []byte) (int, error) {
	if len(data) == 0 {
		return 0, nil
	}
	if !checkRange(addr, uintptr(len(data)), writable) {
		return 0, fmt.Errorf("%w: 0x%x+%d", ErrNotWritable, addr, len(data))
	}
	return copy(hostBytes(addr, len(data)), data), nil
}
