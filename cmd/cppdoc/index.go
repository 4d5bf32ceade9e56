package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"cppdoc/internal/diagfmt"
	"cppdoc/internal/index"
	"cppdoc/internal/logging"
)

var indexCmd = &cobra.Command{
	Use:   "index [flags] [file|directory]...",
	Short: "Export the documentation index as JSON",
	Long: `Correlate every input and write the JSON index consumed by the
documentation generator. Without arguments the inputs configured in
cppdoc.toml are used`,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().StringP("output", "o", "-", "index file (- for stdout)")
	indexCmd.Flags().Bool("git", false, "record `git describe` of the source root as git_tag")
	indexCmd.Flags().String("root", "", "directory file paths are made relative to (default: config directory)")
	indexCmd.Flags().String("repository", "", "repository URL template, {TAG} is replaced by the git tag")
	indexCmd.Flags().Bool("include-source", false, "store declaration source text")
	indexCmd.Flags().Bool("all", false, "export undocumented declarations too")
	indexCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
}

func runIndex(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic(cmd.Context())

	flags := cmd.Flags()
	output, err := flags.GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	useGit, err := flags.GetBool("git")
	if err != nil {
		return fmt.Errorf("failed to get git flag: %w", err)
	}
	root, err := flags.GetString("root")
	if err != nil {
		return fmt.Errorf("failed to get root flag: %w", err)
	}
	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	all, err := flags.GetBool("all")
	if err != nil {
		return fmt.Errorf("failed to get all flag: %w", err)
	}

	sess, err := newSession(cmd)
	if err != nil {
		return err
	}
	cfg := sess.Config
	if flags.Changed("repository") {
		if cfg.Index.Repository, err = flags.GetString("repository"); err != nil {
			return fmt.Errorf("failed to get repository flag: %w", err)
		}
	}
	if flags.Changed("include-source") {
		if cfg.Index.IncludeSource, err = flags.GetBool("include-source"); err != nil {
			return fmt.Errorf("failed to get include-source flag: %w", err)
		}
	}
	if root == "" {
		root = configRoot(sess)
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
		return fmt.Errorf("index failed: %w", err)
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	useColor, err := colorEnabled(cmd, os.Stderr)
	if err != nil {
		return err
	}
	failed := false
	units := make([]index.Unit, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			failed = true
		} else {
			units = append(units, index.Unit{File: r.File, Model: r.Model})
		}
		warningPolicy{quiet: true}.apply(r.Bag)
		if !quiet || r.Bag.HasErrors() {
			diagfmt.Pretty(cmd.ErrOrStderr(), r.Bag, sess.FileSet, diagfmt.PrettyOpts{Color: useColor, Context: 1})
		}
	}

	tag := ""
	if useGit {
		// без git индекс всё равно пишется, как и раньше
		if tag, err = index.GitTag(cmd.Context(), root); err != nil {
			sess.Logger.Error(err, "git describe failed", "root", root)
		}
	}

	idx := index.Build(units, index.Options{
		Root:           root,
		Repository:     cfg.Index.Repository,
		GitTag:         tag,
		IncludeSource:  cfg.Index.IncludeSource,
		DocumentedOnly: cfg.Index.DocumentedOnly && !all,
		Groups:         cfg.Index.Groups,
	})
	if err := writeIndex(cmd.OutOrStdout(), output, idx); err != nil {
		return err
	}

	errs, warns := countDiagnostics(results)
	sess.Logger.Info("index written", "output", output, "files", len(units),
		"entities", len(idx.Index), "errors", errs, "warnings", warns)
	sess.Logger.V(1).Info("inputs", "paths", logging.Paths(paths))
	if sess.Timings && !quiet {
		fmt.Fprint(cmd.ErrOrStderr(), driverReport(results))
	}

	if failed {
		return errDiagnostics
	}
	return nil
}

// writeIndex writes idx to path, or to stdout for "-". A file is replaced
// only after the index was encoded completely.
func writeIndex(stdout io.Writer, path string, idx *index.Index) error {
	if path == "" || path == "-" {
		return idx.Write(stdout)
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".index-*.json")
	if err != nil {
		return fmt.Errorf("create index file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if err := idx.Write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close index file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write index file: %w", err)
	}
	return nil
}
