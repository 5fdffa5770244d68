//go:build windows
// +build windows

package hostmod

import (
	"fmt"
	"os"
	"unsafe"

	"github.com/d2fps/d2interface"
	"github.com/d2fps/d2interface/fileversion"
	"golang.org/x/sys/windows"
)

func (p *Process) Fingerprint() (d2interface.Fingerprint, error) {
	exe, err := os.Executable()
	if err != nil {
		return d2interface.Fingerprint{}, err
	}
	size, err := windows.GetFileVersionInfoSize(exe, nil)
	if err != nil {
		return d2interface.Fingerprint{}, fmt.Errorf("version info of %s: %w", exe, err)
	}
	buf := make([]byte, size)
	if err := windows.GetFileVersionInfo(exe, 0, size, unsafe.Pointer(&buf[0])); err != nil {
		return d2interface.Fingerprint{}, fmt.Errorf("version info of %s: %w", exe, err)
	}
	var info *windows.VS_FIXEDFILEINFO
	var infoLen uint32
	if err := windows.VerQueryValue(unsafe.Pointer(&buf[0]), `\`, unsafe.Pointer(&info), &infoLen); err != nil {
		return d2interface.Fingerprint{}, fmt.Errorf("fixed file info of %s: %w", exe, err)
	}
	return d2interface.Fingerprint{FileVersion: fileversion.FromParts(info.FileVersionMS, info.FileVersionLS)}, nil
}

// Module returns an already loaded module. It never loads one.
func (p *Process) Module(file string) (d2interface.Module, error) {
	name, err := windows.UTF16PtrFromString(file)
	if err != nil {
		return nil, err
	}
	var h windows.Handle
	err = windows.GetModuleHandleEx(windows.GET_MODULE_HANDLE_EX_FLAG_UNCHANGED_REFCOUNT, name, &h)
	if err != nil {
		return nil, fmt.Errorf("could not find loaded module %s: %w", file, err)
	}
	return module{h: h}, nil
}

// A module handle is the module's load base.
type module struct {
	h windows.Handle
}

func (m module) Base() uintptr {
	return uintptr(m.h)
}

func (m module) Ordinal(ord uint16) (uintptr, bool) {
	proc, err := windows.GetProcAddressByOrdinal(m.h, uintptr(ord))
	if err != nil {
		return 0, false
	}
	return proc, true
}
