package pe

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/d2fps/d2interface"
	"github.com/d2fps/d2interface/fileversion"
)

// Executable is the host executable whose file version fingerprints a build.
const Executable = "Game.exe"

// Dir is a host installation on disk. It implements d2interface.Host with
// every module placed at its preferred base unless Bases overrides it.
type Dir struct {
	Path  string
	Bases map[string]uintptr
}

func (d *Dir) Fingerprint() (d2interface.Fingerprint, error) {
	path, err := d.find(Executable)
	if err != nil {
		return d2interface.Fingerprint{}, err
	}
	image, err := os.ReadFile(path)
	if err != nil {
		return d2interface.Fingerprint{}, err
	}
	v, err := fileversion.FromImage(image)
	if err != nil {
		return d2interface.Fingerprint{}, fmt.Errorf("%s: %w", path, err)
	}
	return d2interface.Fingerprint{FileVersion: v}, nil
}

func (d *Dir) Module(file string) (d2interface.Module, error) {
	path, err := d.find(file)
	if err != nil {
		return nil, err
	}
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	return f.At(d.base(file)), nil
}

func (d *Dir) base(file string) uintptr {
	for name, base := range d.Bases {
		if strings.EqualFold(name, file) {
			return base
		}
	}
	return 0
}

// find locates file in the installation ignoring case, as Windows does.
func (d *Dir) find(file string) (string, error) {
	path := filepath.Join(d.Path, file)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	entries, err := os.ReadDir(d.Path)
	if err != nil {
		return "", err
	}
	for _, e := range entries {
		if strings.EqualFold(e.Name(), file) {
			return filepath.Join(d.Path, e.Name()), nil
		}
	}
	return "", fmt.Errorf("%s: %w", path, os.ErrNotExist)
}
