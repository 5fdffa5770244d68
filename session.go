package d2interface

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Host is the attached host process: its build fingerprint and its loader.
type Host interface {
	Fingerprint() (Fingerprint, error)
	// Module returns the loaded module with the given file name.
	Module(file string) (Module, error)
}

type State uint8

const (
	Undetected State = iota
	Detected
	Bound
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Undetected:
		return "undetected"
	case Detected:
		return "detected"
	case Bound:
		return "bound"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Session attaches to one host process. It moves through
// Undetected -> Detected -> Bound -> Ready; any failure moves it to Failed
// for good and Ready is never left. A Session is not safe for concurrent
// use while attaching; once Ready its Accessors may be shared freely.
type Session struct {
	host     Host
	registry *Registry
	log      *slog.Logger

	state     State
	err       error
	version   *Version
	modules   map[string]Module
	resolved  [4]*Resolution
	accessors *Accessors
}

type Option func(*Session)

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		s.log = l
	}
}

func WithRegistry(r *Registry) Option {
	return func(s *Session) {
		s.registry = r
	}
}

func NewSession(host Host, opts ...Option) *Session {
	s := &Session{
		host:     host,
		registry: DefaultRegistry,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) State() State {
	return s.state
}

// Err returns the error that failed the session, if any.
func (s *Session) Err() error {
	return s.err
}

// Version returns the detected version, or nil before detection.
func (s *Session) Version() *Version {
	return s.version
}

// Module returns a module bound by Bind. Modules are released when the
// session fails.
func (s *Session) Module(file string) (Module, bool) {
	m, ok := s.modules[file]
	return m, ok
}

// Resolutions returns the resolved tables in group order once the session
// is Ready.
func (s *Session) Resolutions() []*Resolution {
	if s.state != Ready {
		return nil
	}
	return append([]*Resolution(nil), s.resolved[:]...)
}

// Accessors returns the accessor groups once the session is Ready.
func (s *Session) Accessors() *Accessors {
	if s.state != Ready {
		return nil
	}
	return s.accessors
}

func (s *Session) expect(want State) error {
	if s.state == Failed {
		return s.err
	}
	if s.state != want {
		return fmt.Errorf("%w: %s, want %s", ErrInvalidState, s.state, want)
	}
	return nil
}

func (s *Session) fail(err error) error {
	s.state = Failed
	s.err = err
	s.version = nil
	s.modules = nil
	s.log.Error("attach failed", "err", err)
	return err
}

// Detect matches the host's fingerprint against the registry.
func (s *Session) Detect() error {
	if err := s.expect(Undetected); err != nil {
		return err
	}
	fp, err := s.host.Fingerprint()
	if err != nil {
		return s.fail(fmt.Errorf("fingerprint host: %w", err))
	}
	v, err := s.registry.Match(fp)
	if err != nil {
		return s.fail(err)
	}
	s.version = v
	s.state = Detected
	s.log.Info("detected host version", "version", v.Name, "fingerprint", fp.String())
	return nil
}

// Bind reads the load base and exports of every module the version uses.
func (s *Session) Bind() error {
	if err := s.expect(Detected); err != nil {
		return err
	}
	mods := make(map[string]Module)
	for _, file := range s.version.Modules() {
		m, err := s.host.Module(file)
		if err != nil {
			return s.fail(fmt.Errorf("bind %s: %w", file, err))
		}
		mods[file] = m
		s.log.Debug("bound module", "module", file, "base", fmt.Sprintf("0x%x", m.Base()))
	}
	s.modules = mods
	s.state = Bound
	return nil
}

// Build resolves every table and constructs the accessor groups.
func (s *Session) Build() error {
	if err := s.expect(Bound); err != nil {
		return err
	}
	res, err := resolveVersion(s.version, s.modules)
	if err != nil {
		return s.fail(err)
	}
	acc, err := newAccessors(s.version, res)
	if err != nil {
		return s.fail(err)
	}
	s.resolved = res
	s.accessors = acc
	s.state = Ready
	for _, t := range s.version.Tables() {
		s.log.Debug("resolved table", "table", t.Name, "fields", len(t.Fields), "digest", fmt.Sprintf("%016x", t.Digest()))
	}
	s.log.Info("host interface ready", "version", s.version.Name)
	return nil
}

// Attach runs every remaining step.
func (s *Session) Attach() (*Accessors, error) {
	steps := []struct {
		from State
		run  func() error
	}{
		{Undetected, s.Detect},
		{Detected, s.Bind},
		{Bound, s.Build},
	}
	for _, step := range steps {
		if s.state != step.from {
			continue
		}
		if err := step.run(); err != nil {
			return nil, err
		}
	}
	if s.state == Failed {
		return nil, s.err
	}
	return s.accessors, nil
}

// Attach attaches to host using the default registry.
func Attach(host Host, opts ...Option) (*Accessors, error) {
	return NewSession(host, opts...).Attach()
}

// IsUnsupported reports whether err means the host build is not registered.
func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupportedVersion)
}
