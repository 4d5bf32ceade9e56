package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the manifest searched for upward from the working directory.
const FileName = "cppdoc.toml"

// ErrUnsupportedFormat is returned for configuration files that are neither
// TOML nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported configuration format")

// DefaultInclude lists the globs used when no input is configured.
var DefaultInclude = []string{"**/*.hpp", "**/*.cpp", "**/*.cxx", "**/*.hxx", "**/*.h"}

type Config struct {
	// Path is the file the configuration was loaded from, "" for defaults.
	Path        string      `toml:"-"`
	Inputs      []Input     `toml:"input" validate:"dive"`
	Parse       Parse       `toml:"parse"`
	Correlate   Correlate   `toml:"correlate"`
	Index       Index       `toml:"index"`
	Diagnostics Diagnostics `toml:"diagnostics"`
}

// Input is one group of source files sharing front-end settings.
type Input struct {
	Include        []string `toml:"include" validate:"required,dive,glob"`
	Exclude        []string `toml:"exclude" validate:"dive,glob"`
	HideTokens     []string `toml:"hide_tokens" validate:"dive,identifier"`
	CompileOptions []string `toml:"compile_options"`
}

type Parse struct {
	// HideTokens are identifiers (export macros and similar) lexed as whitespace.
	HideTokens []string `toml:"hide_tokens" validate:"dive,identifier"`
	// CompileOptions are passed through untouched.
	CompileOptions []string `toml:"compile_options"`
}

type Correlate struct {
	Copybrief string `toml:"copybrief" validate:"omitempty,oneof=nearest first strict"`
}

type Index struct {
	// Repository is a URL template; {TAG} is replaced by the git tag.
	Repository     string            `toml:"repository"`
	IncludeSource  bool              `toml:"include_source"`
	DocumentedOnly bool              `toml:"documented_only"`
	Groups         map[string]string `toml:"groups"`
}

type Diagnostics struct {
	Max int `toml:"max" validate:"gte=0"`
}

// Default returns the configuration used without a manifest.
func Default() Config {
	return Config{
		Inputs:      []Input{{Include: append([]string(nil), DefaultInclude...)}},
		Correlate:   Correlate{Copybrief: "nearest"},
		Index:       Index{DocumentedOnly: true, Groups: map[string]string{}},
		Diagnostics: Diagnostics{Max: 100},
	}
}

// Find walks up from startDir to locate cppdoc.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads and validates the configuration at path. Settings missing from
// the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = loadTOML(path, &cfg)
	case ".yml", ".yaml":
		err = loadYAML(path, &cfg)
	default:
		return Config{}, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	if err != nil {
		return Config{}, err
	}
	cfg.Path = path
	if err := Validate(&cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover loads cppdoc.toml found upward from startDir, or the defaults.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

func loadTOML(path string, cfg *Config) error {
	inputs := cfg.Inputs
	cfg.Inputs = nil
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if len(cfg.Inputs) == 0 {
		cfg.Inputs = inputs
	}
	return nil
}

// HiddenFor returns the hide_tokens in effect for an input: the global list
// followed by the input's own.
func (c *Config) HiddenFor(in Input) []string {
	out := make([]string, 0, len(c.Parse.HideTokens)+len(in.HideTokens))
	out = append(out, c.Parse.HideTokens...)
	return append(out, in.HideTokens...)
}

// RepositoryURL substitutes tag into the repository template.
func (c *Config) RepositoryURL(tag string) string {
	return strings.ReplaceAll(c.Index.Repository, "{TAG}", tag)
}
