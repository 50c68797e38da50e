package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rsnfmt/internal/diagfmt"
	"rsnfmt/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.rsn",
	Short: "Print the token stream of an RSN file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	result, err := driver.Tokenize(filePath)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим токены в выбранном формате
	switch format {
	case "json":
		err = diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens, result.File)
	default:
		err = diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens, result.File)
	}
	if err != nil {
		return err
	}

	// Ошибка лексера идёт в stderr после токенов, прочитанных до неё
	if result.Err != nil {
		colored, cerr := useColor(cmd, os.Stderr)
		if cerr != nil {
			return cerr
		}
		d := diagfmt.FromError(filePath, result.File, result.Err)
		if err := diagfmt.Pretty(cmd.ErrOrStderr(), d, diagfmt.PrettyOpts{Color: colored}); err != nil {
			return err
		}
		return &exitError{"tokenization failed"}
	}
	return nil
}
