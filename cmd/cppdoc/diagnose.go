package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"cppdoc/internal/diag"
	"cppdoc/internal/diagfmt"
	"cppdoc/internal/driver"
	"cppdoc/internal/source"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] [file|directory]...",
	Short: "Report documentation and parsing diagnostics",
	Long: `Run the correlation pipeline and report diagnostics for C++ source files,
directories of sources, or the inputs configured in cppdoc.toml when no
argument is given`,
	RunE: runDiagnose,
}

// init registers CLI flags for the diag command used by runDiagnose.
func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	diagCmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	diagCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	diagCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	diagCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	diagCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	diagCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
}

// runDiagnose executes the "diag" command: it correlates every input,
// prints the diagnostics in the chosen format and fails with errDiagnostics
// when any file reports an error.
func runDiagnose(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic(cmd.Context())

	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json", "short":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	var policy warningPolicy
	if policy.noWarnings, err = cmd.Flags().GetBool("no-warnings"); err != nil {
		return fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	if policy.warningsAsErrors, err = cmd.Flags().GetBool("warnings-as-errors"); err != nil {
		return fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	if policy.noWarnings && policy.warningsAsErrors {
		return fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}
	if policy.quiet, err = cmd.Root().PersistentFlags().GetBool("quiet"); err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	suggest, err := cmd.Flags().GetBool("suggest")
	if err != nil {
		return fmt.Errorf("failed to get suggest flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}

	sess, err := newSession(cmd)
	if err != nil {
		return err
	}
	paths, err := sess.Inputs(configRoot(sess), args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no input files")
	}

	results, err := correlate(cmd, sess, paths, jobs)
	if err != nil {
		return fmt.Errorf("diagnosis failed: %w", err)
	}

	exit := false
	for _, r := range results {
		policy.apply(r.Bag)
		if r.Bag.HasErrors() {
			exit = true
		}
	}
	if sess.Timings && len(results) > 0 {
		last := results[len(results)-1]
		driver.AppendTimingDiagnostic(last.Bag, "diag", "", driver.TimingReport(results))
	}

	useColor, err := colorEnabled(cmd, os.Stdout)
	if err != nil {
		return err
	}
	mode := pathMode(fullPath)
	prettyOpts := diagfmt.PrettyOpts{
		Color:     useColor,
		Context:   2,
		PathMode:  mode,
		ShowNotes: withNotes,
		ShowFixes: suggest,
	}
	jsonOpts := diagfmt.JSONOpts{
		IncludePositions: true,
		PathMode:         mode,
		IncludeNotes:     withNotes,
		IncludeFixes:     suggest,
		IncludePreviews:  suggest,
	}

	out := cmd.OutOrStdout()
	switch format {
	case "short":
		for _, r := range results {
			if err := diagfmt.Short(out, r.Bag, sess.FileSet, prettyOpts); err != nil {
				return err
			}
		}
	case "pretty":
		printPretty(out, results, sess.FileSet, prettyOpts, policy.quiet)
	case "json":
		if err := printJSON(out, results, sess.FileSet, jsonOpts); err != nil {
			return fmt.Errorf("failed to encode diagnostics output: %w", err)
		}
	}

	if exit {
		return errDiagnostics
	}
	return nil
}

func printPretty(out io.Writer, results []*driver.FileResult, fs *source.FileSet, opts diagfmt.PrettyOpts, quiet bool) {
	printed := 0
	for _, r := range results {
		if r.Bag.Len() == 0 {
			continue
		}
		if len(results) > 1 && !quiet {
			if printed > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "== %s ==\n", displayPath(r, fs, opts.PathMode))
		}
		diagfmt.Pretty(out, r.Bag, fs, opts)
		printed++
	}
}

// printJSON prints one object for a single file and a path-keyed map otherwise.
func printJSON(out io.Writer, results []*driver.FileResult, fs *source.FileSet, opts diagfmt.JSONOpts) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if len(results) == 1 {
		return encoder.Encode(diagfmt.BuildDiagnosticsOutput(results[0].Bag, fs, opts))
	}
	output := make(map[string]diagfmt.DiagnosticsOutput, len(results))
	for _, r := range results {
		output[displayPath(r, fs, opts.PathMode)] = diagfmt.BuildDiagnosticsOutput(r.Bag, fs, opts)
	}
	return encoder.Encode(output)
}

func displayPath(r *driver.FileResult, fs *source.FileSet, mode diagfmt.PathMode) string {
	if r.File != nil {
		return r.File.FormatPath(mode.String(), fs.BaseDir())
	}
	if mode == diagfmt.PathModeAbsolute {
		if abs, err := source.AbsolutePath(r.Path); err == nil {
			return abs
		}
	}
	return r.Path
}

// countDiagnostics sums diagnostics per severity over results.
func countDiagnostics(results []*driver.FileResult) (errs, warns int) {
	for _, r := range results {
		for _, d := range r.Bag.Items() {
			switch d.Severity {
			case diag.SevError:
				errs++
			case diag.SevWarning:
				warns++
			}
		}
	}
	return errs, warns
}
