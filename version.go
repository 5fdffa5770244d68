package d2interface

import (
	"fmt"
	"sync"

	"github.com/d2fps/d2interface/fileversion"
)

// Fingerprint identifies a host build. The file version of the host
// executable is the only fingerprint currently matched.
type Fingerprint struct {
	FileVersion fileversion.Quad
}

func (f Fingerprint) String() string {
	return "Game.exe " + f.FileVersion.String()
}

// Version is every table for one supported host build.
type Version struct {
	Name        string
	Fingerprint Fingerprint
	Client      Table
	Gfx         Table
	Game        Table
	Win         Table
}

// Tables returns the version's tables in group order.
func (v *Version) Tables() [4]Table {
	return [4]Table{v.Client, v.Gfx, v.Game, v.Win}
}

// Modules returns the distinct module files the version's tables use.
func (v *Version) Modules() []string {
	var mods []string
	seen := make(map[string]struct{}, 4)
	for _, t := range v.Tables() {
		if _, ok := seen[t.Module]; !ok {
			seen[t.Module] = struct{}{}
			mods = append(mods, t.Module)
		}
	}
	return mods
}

func (v *Version) validate() error {
	if v.Name == "" {
		return fmt.Errorf("%w: unnamed version", ErrInvalidTable)
	}
	for _, t := range v.Tables() {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("version %s: %w", v.Name, err)
		}
	}
	return nil
}

// Registry is the set of host builds that can be attached to.
type Registry struct {
	mu       sync.RWMutex
	versions []*Version
}

func NewRegistry() *Registry {
	return &Registry{}
}

// DefaultRegistry holds every built-in version.
var DefaultRegistry = NewRegistry()

func (r *Registry) Register(v *Version) error {
	if err := v.validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.versions {
		if o.Name == v.Name {
			return fmt.Errorf("version %s already registered", v.Name)
		}
		if o.Fingerprint == v.Fingerprint {
			return fmt.Errorf("version %s has the same fingerprint as %s (%s)", v.Name, o.Name, v.Fingerprint)
		}
	}
	r.versions = append(r.versions, v)
	return nil
}

func (r *Registry) MustRegister(v *Version) {
	if err := r.Register(v); err != nil {
		panic(err)
	}
}

// Match returns the version registered for fp. There is no fallback to a
// close version.
func (r *Registry) Match(fp Fingerprint) (*Version, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, v := range r.versions {
		if v.Fingerprint == fp {
			return v, nil
		}
	}
	return nil, &UnsupportedVersionError{Fingerprint: fp}
}

func (r *Registry) Lookup(name string) (*Version, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, v := range r.versions {
		if v.Name == name {
			return v, true
		}
	}
	return nil, false
}

// Versions returns the registered versions in registration order.
func (r *Registry) Versions() []*Version {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Version(nil), r.versions...)
}
