// Package petest builds minimal PE32 images for tests.
package petest

import (
	"bytes"
	"debug/pe"
	"encoding/binary"
	"testing"

	"github.com/d2fps/d2interface/fileversion"
)

const (
	SectionRVA = 0x1000
	// ExportSize is the size of the export directory at SectionRVA.
	ExportSize = 0x30
	FuncsRVA   = SectionRVA + 0x40

	sectionOff = 0x200
	sectionLen = 0x400
	versionOff = 0x300
)

// Image describes a module with one section holding its export directory,
// export address table and optional version block.
type Image struct {
	ImageBase   uint32
	OrdinalBase uint32
	// Funcs are export RVAs from OrdinalBase on; zero leaves a gap.
	Funcs   []uint32
	Version *fileversion.Quad
}

// Exporting returns an image exporting each ordinal at base+ordinal.
func Exporting(imageBase uint32, ordinals ...uint16) Image {
	img := Image{ImageBase: imageBase}
	if len(ordinals) == 0 {
		return img
	}
	lo, hi := ordinals[0], ordinals[0]
	for _, o := range ordinals {
		lo, hi = min(lo, o), max(hi, o)
	}
	img.OrdinalBase = uint32(lo)
	img.Funcs = make([]uint32, int(hi-lo)+1)
	for _, o := range ordinals {
		img.Funcs[o-lo] = 0x2000 + uint32(o)
	}
	return img
}

func (img Image) Bytes(t testing.TB) []byte {
	t.Helper()
	if FuncsRVA-SectionRVA+4*len(img.Funcs) > versionOff {
		t.Fatalf("%d exports do not fit", len(img.Funcs))
	}
	var buf bytes.Buffer
	dos := make([]byte, 0x40)
	copy(dos, "MZ")
	binary.LittleEndian.PutUint32(dos[0x3c:], 0x40)
	buf.Write(dos)
	buf.WriteString("PE\x00\x00")

	write := func(v any) {
		if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
			t.Fatal(err)
		}
	}
	write(pe.FileHeader{
		Machine:              pe.IMAGE_FILE_MACHINE_I386,
		NumberOfSections:     1,
		SizeOfOptionalHeader: 224,
		Characteristics:      pe.IMAGE_FILE_DLL | pe.IMAGE_FILE_EXECUTABLE_IMAGE,
	})
	oh := pe.OptionalHeader32{
		Magic:               0x10b,
		ImageBase:           img.ImageBase,
		SectionAlignment:    0x1000,
		FileAlignment:       0x200,
		SizeOfImage:         0x2000,
		SizeOfHeaders:       0x200,
		NumberOfRvaAndSizes: 16,
	}
	if len(img.Funcs) > 0 {
		oh.DataDirectory[pe.IMAGE_DIRECTORY_ENTRY_EXPORT] = pe.DataDirectory{VirtualAddress: SectionRVA, Size: ExportSize}
	}
	write(oh)
	var sh pe.SectionHeader32
	copy(sh.Name[:], ".edata")
	sh.VirtualSize = sectionLen
	sh.VirtualAddress = SectionRVA
	sh.SizeOfRawData = sectionLen
	sh.PointerToRawData = sectionOff
	write(sh)
	buf.Write(make([]byte, sectionOff-buf.Len()))

	section := make([]byte, sectionLen)
	binary.LittleEndian.PutUint32(section[16:], img.OrdinalBase)
	binary.LittleEndian.PutUint32(section[20:], uint32(len(img.Funcs)))
	binary.LittleEndian.PutUint32(section[28:], FuncsRVA)
	for i, f := range img.Funcs {
		binary.LittleEndian.PutUint32(section[FuncsRVA-SectionRVA+4*i:], f)
	}
	if v := img.Version; v != nil {
		info := section[versionOff:]
		binary.LittleEndian.PutUint32(info[0:], 0xFEEF04BD)
		binary.LittleEndian.PutUint32(info[4:], 0x00010000)
		binary.LittleEndian.PutUint32(info[8:], uint32(v.Major)<<16|uint32(v.Minor))
		binary.LittleEndian.PutUint32(info[12:], uint32(v.Build)<<16|uint32(v.Revision))
	}
	buf.Write(section)
	return buf.Bytes()
}
