package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cppdoc/internal/diagfmt"
	"cppdoc/internal/driver"
)

var showCmd = &cobra.Command{
	Use:   "show [flags] <file> [qualified-name]",
	Short: "Print the documented entity tree of a file",
	Long: `Correlate one file and print its entities with their resolved
documentation. With a qualified name only the matching entities (all
overloads) and their members are printed`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runShow,
}

func init() {
	showCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	showCmd.Flags().Bool("documented", false, "hide undocumented entities")
	showCmd.Flags().Bool("no-docs", false, "print the tree without documentation text")
}

func runShow(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic(cmd.Context())

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	documented, err := cmd.Flags().GetBool("documented")
	if err != nil {
		return fmt.Errorf("failed to get documented flag: %w", err)
	}
	noDocs, err := cmd.Flags().GetBool("no-docs")
	if err != nil {
		return fmt.Errorf("failed to get no-docs flag: %w", err)
	}
	opts := diagfmt.TreeOpts{DocumentedOnly: documented, ShowDocs: !noDocs}

	sess, err := newSession(cmd)
	if err != nil {
		return err
	}
	res, err := driver.CorrelateFile(cmd.Context(), sess, args[0])
	if err != nil {
		return err
	}
	if res.Bag.HasErrors() {
		diagfmt.Pretty(cmd.ErrOrStderr(), res.Bag, sess.FileSet, diagfmt.PrettyOpts{Context: 1})
	}

	out := cmd.OutOrStdout()
	if len(args) == 1 {
		switch format {
		case "pretty":
			return diagfmt.FormatEntitiesPretty(out, res.Model, opts)
		case "json":
			return diagfmt.FormatEntitiesJSON(out, res.Model, opts)
		default:
			return fmt.Errorf("unknown format: %s", format)
		}
	}

	matches := res.Model.Lookup(args[1])
	if len(matches) == 0 {
		return fmt.Errorf("%s: no entity named %q", args[0], args[1])
	}
	if format != "pretty" {
		return fmt.Errorf("a qualified name supports only the pretty format")
	}
	for _, e := range matches {
		if err := diagfmt.FormatEntityPretty(out, res.Model, e, opts); err != nil {
			return err
		}
	}
	return nil
}
