package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/squirrel-yarn/internal/storage"
)

var flagYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase records and run history",
	Long: `Erase the persisted record from the selected store, and the run history
when the store keeps one. Requires --yes.

Examples:
  squirrel reset --yes
  squirrel reset --store gdata --yes`,
	Args: cobra.NoArgs,
	Run:  runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&flagYes, "yes", false, "Confirm erasing")
}

func runReset(cmd *cobra.Command, args []string) {
	if !flagYes {
		fmt.Fprintln(os.Stderr, "Refusing to erase without --yes.")
		os.Exit(1)
	}

	logger, err := newLogger(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, closeStore, err := openStore(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening record store: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()

	clearers := []storage.Clearer{}
	if h, ok := store.(historyStore); ok {
		if c, ok := h.RecordStore.(storage.Clearer); ok {
			clearers = append(clearers, c)
		}
		clearers = append(clearers, h.runs)
	} else if c, ok := store.(storage.Clearer); ok {
		clearers = append(clearers, c)
	}

	for _, c := range clearers {
		if err := c.Clear(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
	}
	logger.Info("records erased", "store", flagStore)
	fmt.Println("Records erased.")
}
