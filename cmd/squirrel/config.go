package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/squirrel-yarn/internal/config"
)

var flagFormat string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the runner config",
}

var configDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the effective config",
	Long: `Print the config a run would use after the search order and
--difficulty are applied. The output is a valid config file.

Examples:
  squirrel config dump > ~/.squirrel-yarn/configs/runner.yaml
  squirrel config dump --format toml --difficulty hard`,
	Args: cobra.NoArgs,
	Run:  runConfigDump,
}

func init() {
	configDumpCmd.Flags().StringVar(&flagFormat, "format", "yaml", "Output format: yaml or toml")
	configCmd.AddCommand(configDumpCmd)
}

func runConfigDump(cmd *cobra.Command, args []string) {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := loadConfig(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	out, err := config.Encode(cfg, flagFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
}
