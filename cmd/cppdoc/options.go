package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cppdoc/internal/config"
	"cppdoc/internal/diag"
	"cppdoc/internal/diagfmt"
	"cppdoc/internal/driver"
	"cppdoc/internal/logging"
	"cppdoc/internal/trace"
)

func initLogging(verbosity int) {
	logging.Init(verbosity)
}

// colorEnabled resolves --color for output f and applies it to fatih/color.
func colorEnabled(cmd *cobra.Command, f *os.File) (bool, error) {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	var on bool
	switch strings.ToLower(value) {
	case "on", "always":
		on = true
	case "off", "never":
		on = false
	case "auto", "":
		on = isTerminal(f) && os.Getenv("NO_COLOR") == ""
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
	color.NoColor = !on
	return on, nil
}

// loadConfig reads --config or discovers cppdoc.toml from the working directory.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return config.Load(path)
	}
	return config.Discover(".")
}

// newSession builds a driver session from the configuration and global flags.
func newSession(cmd *cobra.Command) (*driver.Session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	root := cmd.Root().PersistentFlags()
	if root.Changed("max-diagnostics") {
		if cfg.Diagnostics.Max, err = root.GetInt("max-diagnostics"); err != nil {
			return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}

	sess := driver.NewSession(&cfg)
	sess.Tracer = trace.FromContext(cmd.Context())
	if sess.Timings, err = root.GetBool("timings"); err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}

	useCache, err := root.GetBool("disk-cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get disk-cache flag: %w", err)
	}
	if useCache {
		cache, err := driver.OpenDiskCache("cppdoc")
		if err != nil {
			sess.Logger.Error(err, "disk cache disabled")
		} else {
			sess.Cache = cache
		}
	}
	sess.Logger.V(1).Info("session ready", "config", cfg.Path, "cache", sess.Cache != nil)
	return sess, nil
}

// configRoot is the directory configured inputs are relative to.
func configRoot(sess *driver.Session) string {
	if sess.Config.Path == "" {
		return "."
	}
	return filepath.Dir(sess.Config.Path)
}

func pathMode(fullPath bool) diagfmt.PathMode {
	if fullPath {
		return diagfmt.PathModeAbsolute
	}
	return diagfmt.PathModeAuto
}

// warningPolicy adjusts warning severity in place.
type warningPolicy struct {
	noWarnings       bool
	warningsAsErrors bool
	quiet            bool
}

func (p warningPolicy) apply(bag *diag.Bag) {
	if bag == nil {
		return
	}
	if p.noWarnings {
		bag.Filter(func(d *diag.Diagnostic) bool { return d.Severity != diag.SevWarning })
	}
	if p.quiet {
		bag.Filter(func(d *diag.Diagnostic) bool { return d.Severity != diag.SevInfo || d.Code == diag.ObsTimings })
	}
	if p.warningsAsErrors {
		bag.Transform(func(d *diag.Diagnostic) {
			if d.Severity == diag.SevWarning {
				d.Severity = diag.SevError
			}
		})
	}
}
