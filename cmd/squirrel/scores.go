package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/squirrel-yarn/internal/platform/tui"
	"github.com/vovakirdan/squirrel-yarn/internal/storage"
)

var (
	flagPlain bool
	flagOrder string
	flagLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Browse run history",
	Long: `Show finished runs from the history database. By default an interactive
board opens; --plain prints a table instead.

Examples:
  squirrel scores
  squirrel scores --plain --order distance --limit 20`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain table instead of the interactive board")
	scoresCmd.Flags().StringVar(&flagOrder, "order", "stash", "Sort order for --plain: stash, distance, recent")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs for --plain")
}

func parseOrder(s string) (storage.RunOrder, error) {
	switch s {
	case "stash":
		return storage.ByStash, nil
	case "distance":
		return storage.ByDistance, nil
	case "recent":
		return storage.ByRecent, nil
	default:
		return 0, fmt.Errorf("unknown order %q (want stash, distance or recent)", s)
	}
}

func runScores(cmd *cobra.Command, args []string) {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	db, err := storage.OpenSQLite(flagDBPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run history: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if !flagPlain {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunHistory(db, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	order, err := parseOrder(flagOrder)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	runs, err := db.TopRuns(order, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	fmt.Printf("Run History - by %s\n", flagOrder)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'squirrel play' to record the first run!")
		return
	}

	fmt.Printf("  %-4s  %-6s  %-9s  %-6s  %-5s  %s\n", "Rank", "Stash", "Distance", "Time", "Out", "Date")
	fmt.Printf("  %-4s  %-6s  %-9s  %-6s  %-5s  %s\n", "----", "-----", "--------", "----", "---", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-6d  %-9s  %-6s  %-5s  %s\n",
			i+1, r.Stash, fmt.Sprintf("%.1fm", r.Distance), fmt.Sprintf("%.0fs", r.Duration.Seconds()),
			r.Cause, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
