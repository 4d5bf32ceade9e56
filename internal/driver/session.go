package driver

import (
	"fmt"

	"fortio.org/safecast"
	"github.com/go-logr/logr"

	"cppdoc/internal/config"
	"cppdoc/internal/correlate"
	"cppdoc/internal/directive"
	"cppdoc/internal/logging"
	"cppdoc/internal/source"
	"cppdoc/internal/trace"
)

// Session holds everything a run needs. It is owned by the caller; the
// passes themselves keep no global state.
type Session struct {
	FileSet  *source.FileSet
	Config   *config.Config
	Tracer   trace.Tracer
	Logger   logr.Logger
	Cache    *DiskCache // nil disables the disk cache
	Progress ProgressSink
	Registry *directive.Registry // nil means the built-in vocabulary
	Timings  bool

	// sources carries per-file settings resolved by Inputs.
	sources map[string]config.Source
}

// NewSession returns a session with defaults for everything but cfg.
// A nil cfg means config.Default().
func NewSession(cfg *config.Config) *Session {
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	return &Session{
		FileSet: source.NewFileSet(),
		Config:  cfg,
		Tracer:  trace.Nop,
		Logger:  logging.Log(),
		sources: make(map[string]config.Source),
	}
}

// Hidden returns the tokens hidden from the lexer for path.
func (s *Session) Hidden(path string) []string {
	if src, ok := s.sources[path]; ok {
		return src.Hidden
	}
	return s.Config.Parse.HideTokens
}

func (s *Session) maxDiagnostics() int {
	return s.Config.Diagnostics.Max
}

func (s *Session) maxErrors() uint {
	n, err := safecast.Conv[uint](s.Config.Diagnostics.Max)
	if err != nil {
		return 0
	}
	return n
}

func (s *Session) policy() (correlate.Policy, error) {
	p, err := correlate.ParsePolicy(s.Config.Correlate.Copybrief)
	if err != nil {
		return 0, fmt.Errorf("correlate.copybrief: %w", err)
	}
	return p, nil
}
