// Package pe reads host modules from disk: their preferred load base and
// export-ordinal table. It lets tables be resolved against an installation
// without a running host.
package pe

import (
	"debug/pe"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
)

// Export is one exported function of a module.
type Export struct {
	Ordinal uint16
	RVA     uint32
}

// File is a parsed module image.
type File struct {
	Name      string
	ImageBase uint64
	exports   map[uint16]uint32
}

func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	file, err := NewFile(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	file.Name = path
	return file, nil
}

func NewFile(r io.ReaderAt) (*File, error) {
	pf, err := pe.NewFile(r)
	if err != nil {
		return nil, err
	}
	defer pf.Close()

	var base uint64
	var dirs []pe.DataDirectory
	switch oh := pf.OptionalHeader.(type) {
	case *pe.OptionalHeader32:
		base = uint64(oh.ImageBase)
		dirs = oh.DataDirectory[:min(oh.NumberOfRvaAndSizes, 16)]
	case *pe.OptionalHeader64:
		base = oh.ImageBase
		dirs = oh.DataDirectory[:min(oh.NumberOfRvaAndSizes, 16)]
	default:
		return nil, errors.New("no optional header")
	}
	file := &File{ImageBase: base, exports: map[uint16]uint32{}}
	if len(dirs) <= pe.IMAGE_DIRECTORY_ENTRY_EXPORT || dirs[pe.IMAGE_DIRECTORY_ENTRY_EXPORT].VirtualAddress == 0 {
		return file, nil
	}
	dir := dirs[pe.IMAGE_DIRECTORY_ENTRY_EXPORT]
	img := image{f: pf}

	var hdr [40]byte
	if err := img.readAt(hdr[:], dir.VirtualAddress); err != nil {
		return nil, fmt.Errorf("export directory: %w", err)
	}
	ordBase := binary.LittleEndian.Uint32(hdr[16:])
	numFuncs := binary.LittleEndian.Uint32(hdr[20:])
	funcsRVA := binary.LittleEndian.Uint32(hdr[28:])
	if numFuncs > 0xffff {
		return nil, fmt.Errorf("export directory: %d functions", numFuncs)
	}
	if numFuncs > 0 && uint64(ordBase)+uint64(numFuncs)-1 > 0xffff {
		return nil, fmt.Errorf("export directory: ordinals %d+%d exceed 16 bits", ordBase, numFuncs)
	}
	funcs := make([]byte, 4*numFuncs)
	if err := img.readAt(funcs, funcsRVA); err != nil {
		return nil, fmt.Errorf("export address table: %w", err)
	}
	for i := uint32(0); i < numFuncs; i++ {
		rva := binary.LittleEndian.Uint32(funcs[4*i:])
		if rva == 0 {
			continue
		}
		// forwarders point back into the export directory
		if rva >= dir.VirtualAddress && rva < dir.VirtualAddress+dir.Size {
			continue
		}
		file.exports[uint16(ordBase+i)] = rva
	}
	return file, nil
}

// Ordinal returns the RVA of an exported ordinal.
func (f *File) Ordinal(ord uint16) (uint32, bool) {
	rva, ok := f.exports[ord]
	return rva, ok
}

// Exports returns every export sorted by ordinal.
func (f *File) Exports() []Export {
	out := make([]Export, 0, len(f.exports))
	for ord, rva := range f.exports {
		out = append(out, Export{Ordinal: ord, RVA: rva})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Ordinal < out[j].Ordinal
	})
	return out
}

// At returns the module loaded at base. A zero base means the preferred
// ImageBase.
func (f *File) At(base uintptr) *Module {
	if base == 0 {
		base = uintptr(f.ImageBase)
	}
	return &Module{file: f, base: base}
}

// Module is a File placed at a load base.
type Module struct {
	file *File
	base uintptr
}

func (m *Module) Base() uintptr {
	return m.base
}

func (m *Module) Ordinal(ord uint16) (uintptr, bool) {
	rva, ok := m.file.exports[ord]
	if !ok {
		return 0, false
	}
	return m.base + uintptr(rva), true
}

type image struct {
	f *pe.File
}

func (img image) readAt(buf []byte, rva uint32) error {
	for _, s := range img.f.Sections {
		size := s.VirtualSize
		if size == 0 {
			size = s.Size
		}
		if rva < s.VirtualAddress || rva >= s.VirtualAddress+size {
			continue
		}
		off := int64(rva - s.VirtualAddress)
		n, err := s.ReadAt(buf, off)
		if n == len(buf) {
			return nil
		}
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return fmt.Errorf("rva 0x%x in %s: %w", rva, s.Name, err)
	}
	return fmt.Errorf("rva 0x%x not in any section", rva)
}
