package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cppdoc/internal/prof"
)

var activeProfiler *prof.Profiler

// setupProfiling inspects persistent profiling flags and enables the
// corresponding profilers.
func setupProfiling(cmd *cobra.Command) error {
	root := cmd.Root().PersistentFlags()

	var cfg prof.Config
	var err error
	if cfg.CPU, err = root.GetString("cpu-profile"); err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if cfg.Mem, err = root.GetString("mem-profile"); err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if cfg.Trace, err = root.GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !cfg.Enabled() {
		return nil
	}

	p, err := prof.Start(cfg)
	if err != nil {
		return err
	}
	activeProfiler = p
	return nil
}

// finishProfiling stops profilers started by setupProfiling; safe to call
// multiple times.
func finishProfiling() error {
	p := activeProfiler
	activeProfiler = nil
	return p.Stop()
}
