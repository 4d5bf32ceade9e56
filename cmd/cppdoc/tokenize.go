package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cppdoc/internal/diagfmt"
	"cppdoc/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file>",
	Short: "Tokenize a C++ source file",
	Long:  `Tokenize lexes a C++ source file and prints its tokens or its documentation comment blocks`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Bool("blocks", false, "print documentation comment blocks instead of tokens")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	blocks, err := cmd.Flags().GetBool("blocks")
	if err != nil {
		return fmt.Errorf("failed to get blocks flag: %w", err)
	}

	sess, err := newSession(cmd)
	if err != nil {
		return err
	}
	result, err := driver.Tokenize(sess, filePath)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	if result.Bag.Len() > 0 {
		useColor, err := colorEnabled(cmd, os.Stderr)
		if err != nil {
			return err
		}
		diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag, result.FileSet, diagfmt.PrettyOpts{Color: useColor, Context: 2})
	}

	out := cmd.OutOrStdout()
	switch {
	case blocks && format == "pretty":
		return diagfmt.FormatBlocksPretty(out, result.Blocks)
	case blocks:
		return fmt.Errorf("--blocks supports only the pretty format")
	case format == "pretty":
		return diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
	case format == "json":
		return diagfmt.FormatTokensJSON(out, result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
