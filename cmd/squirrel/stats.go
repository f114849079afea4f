package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/squirrel-yarn/internal/storage"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print lifetime statistics",
	Long:  `Print the persisted record and aggregates over the run history.`,
	Args:  cobra.NoArgs,
	Run:   runStats,
}

func runStats(cmd *cobra.Command, args []string) {
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

	rec := store.Load()
	fmt.Printf("Record (%s store)\n", flagStore)
	fmt.Printf("  Best stash:     %d\n", rec.BestStash)
	fmt.Printf("  Best distance:  %.1fm\n", rec.BestDistance)
	fmt.Printf("  Runs:           %d\n", rec.TotalRuns)
	fmt.Printf("  Yarn collected: %d\n", rec.TotalYarn)

	var db *storage.SQLiteStore
	switch s := store.(type) {
	case *storage.SQLiteStore:
		db = s
	case historyStore:
		db = s.runs
	default:
		return
	}

	stats, err := db.Stats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading history: %v\n", err)
		return
	}
	fmt.Println()
	fmt.Println("History")
	fmt.Printf("  Runs:           %d\n", stats.Runs)
	if stats.Runs == 0 {
		return
	}
	fmt.Printf("  Avg stash:      %.1f\n", stats.AvgStash)
	fmt.Printf("  Avg distance:   %.1fm\n", stats.AvgDistance)
	fmt.Printf("  Time played:    %s\n", stats.TotalDuration.Round(time.Second))
	fmt.Printf("  Last played:    %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
}
