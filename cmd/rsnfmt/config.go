package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rsnfmt/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the configuration rsnfmt would use here",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	configCmd.Flags().Bool("print", true, "print the resolved configuration as TOML")
	configCmd.Flags().Bool("sources", false, "list the files the configuration was read from")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	printCfg, err := cmd.Flags().GetBool("print")
	if err != nil {
		return err
	}
	showSources, err := cmd.Flags().GetBool("sources")
	if err != nil {
		return err
	}

	loaded, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	out := cmd.OutOrStdout()
	if showSources {
		if len(loaded.Sources) == 0 {
			fmt.Fprintln(out, "# no config files, built-in defaults")
		}
		for _, s := range loaded.Sources {
			fmt.Fprintf(out, "# %s\n", s)
		}
	}
	if printCfg {
		data, err := config.Encode(loaded.Config)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}
	return nil
}
