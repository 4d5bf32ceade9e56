package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cppdoc/internal/diagfmt"
	"cppdoc/internal/driver"
)

var extractCmd = &cobra.Command{
	Use:   "extract [flags] <file>",
	Short: "List the declarations found in a C++ source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runExtract(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic(cmd.Context())

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	sess, err := newSession(cmd)
	if err != nil {
		return err
	}
	result, err := driver.Extract(sess, args[0])
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		useColor, err := colorEnabled(cmd, os.Stderr)
		if err != nil {
			return err
		}
		diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag, result.FileSet, diagfmt.PrettyOpts{Color: useColor, Context: 2})
	}

	switch format {
	case "pretty":
		return diagfmt.FormatRecordsPretty(cmd.OutOrStdout(), result.Records)
	case "json":
		return diagfmt.FormatRecordsJSON(cmd.OutOrStdout(), result.Records)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
