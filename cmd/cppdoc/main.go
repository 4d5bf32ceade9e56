package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cppdoc/internal/version"
)

// errDiagnostics signals exit status 1 after diagnostics were printed.
var errDiagnostics = errors.New("errors reported")

var rootCmd = &cobra.Command{
	Use:   "cppdoc",
	Short: "C++ documentation comment correlator",
	Long: `cppdoc reads C++ headers and sources, attaches documentation comments
to the declarations they document and exports the result as a JSON index`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupRun,
}

func init() {
	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics per file")
	pf.String("config", "", "configuration file (cppdoc.toml or legacy .yml); searched upward when empty")
	pf.CountP("verbose", "v", "increase log verbosity (repeatable)")
	pf.String("trace", "", "write pipeline trace to file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.String("trace-format", "auto", "trace encoding (auto|text|ndjson)")
	pf.Int("trace-ring-size", 4096, "events kept in memory for ring mode")
	pf.String("ui", "auto", "progress UI for multi-file runs (auto|on|off)")
	pf.Bool("disk-cache", false, "cache front-end results on disk keyed by content hash")
	pf.String("cpu-profile", "", "write CPU profile to file")
	pf.String("mem-profile", "", "write heap profile to file on exit")
	pf.String("runtime-trace", "", "write Go runtime trace to file")

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(diagCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(versionCmd)
}

// main executes the root command; any error, including errors reported
// as diagnostics, exits with status 1.
func main() {
	rootCmd.Version = version.Version

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	finishTracing(rootCmd.ErrOrStderr())
	if perr := finishProfiling(); perr != nil {
		fmt.Fprintln(os.Stderr, "profiling:", perr)
	}

	if err != nil {
		if !errors.Is(err, errDiagnostics) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

// setupRun applies global flags before any subcommand runs.
func setupRun(cmd *cobra.Command, _ []string) error {
	verbosity, err := cmd.Root().PersistentFlags().GetCount("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	initLogging(verbosity)

	if _, err := colorEnabled(cmd, os.Stdout); err != nil {
		return err
	}
	if err := setupTracing(cmd); err != nil {
		return err
	}
	return setupProfiling(cmd)
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
