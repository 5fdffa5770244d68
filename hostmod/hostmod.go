// Package hostmod is the live host: the process this code has been loaded
// into. It reads the loader's module list and export tables, and is the one
// place where accessors touch host memory or call host code.
package hostmod

import (
	"errors"

	"github.com/d2fps/d2interface"
)

var (
	ErrUnsupportedPlatform   = errors.New("hostmod: host modules can only be attached from inside a windows/386 process")
	ErrUnsupportedConvention = errors.New("hostmod: calling convention not supported")
	ErrNotReadable           = errors.New("hostmod: address not readable")
	ErrNotWritable           = errors.New("hostmod: address not writable")
)

// Process is the current process acting as the host.
type Process struct{}

func Current() *Process {
	return &Process{}
}

var (
	_ d2interface.Host   = (*Process)(nil)
	_ d2interface.Memory = (*Process)(nil)
	_ d2interface.Caller = (*Process)(nil)
)
