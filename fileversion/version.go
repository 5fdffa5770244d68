package fileversion

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Quad is a four part Windows file version, e.g. 1.0.13.64.
type Quad struct {
	Major, Minor, Build, Revision uint16
}

func (q Quad) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", q.Major, q.Minor, q.Build, q.Revision)
}

// FromParts builds a Quad from the two DWORDs of a VS_FIXEDFILEINFO.
func FromParts(ms, ls uint32) Quad {
	return Quad{
		Major:    uint16(ms >> 16),
		Minor:    uint16(ms),
		Build:    uint16(ls >> 16),
		Revision: uint16(ls),
	}
}

func Parse(s string) (Quad, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 4 {
		return Quad{}, fmt.Errorf("file version %q: want 4 parts, got %d", s, len(parts))
	}
	var v [4]uint16
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 16)
		if err != nil {
			return Quad{}, fmt.Errorf("file version %q: %w", s, err)
		}
		v[i] = uint16(n)
	}
	return Quad{v[0], v[1], v[2], v[3]}, nil
}

func MustParse(s string) Quad {
	q, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return q
}

var ErrNoVersionInfo = errors.New("no VS_FIXEDFILEINFO in image")

// VS_FIXEDFILEINFO.dwSignature
const fixedFileInfoSignature = 0xFEEF04BD

// fixed file info layout: signature, struct version, file version MS, LS
const fixedFileInfoPrefix = 16

// FromImage returns the file version recorded in the first VS_FIXEDFILEINFO
// found in a PE image.
func FromImage(image []byte) (Quad, error) {
	var sig [4]byte
	binary.LittleEndian.PutUint32(sig[:], fixedFileInfoSignature)
	for off := 0; ; {
		i := bytes.Index(image[off:], sig[:])
		if i < 0 {
			return Quad{}, ErrNoVersionInfo
		}
		off += i
		if off+fixedFileInfoPrefix > len(image) {
			return Quad{}, ErrNoVersionInfo
		}
		// struct version is always 1.0
		if binary.LittleEndian.Uint32(image[off+4:]) == 0x00010000 {
			ms := binary.LittleEndian.Uint32(image[off+8:])
			ls := binary.LittleEndian.Uint32(image[off+12:])
			return FromParts(ms, ls), nil
		}
		off += len(sig)
	}
}
