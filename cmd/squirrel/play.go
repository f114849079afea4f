package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/squirrel-yarn/internal/config"
	"github.com/vovakirdan/squirrel-yarn/internal/core"
	"github.com/vovakirdan/squirrel-yarn/internal/games/runner"
	"github.com/vovakirdan/squirrel-yarn/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a run",
	Long: `Start a run in the terminal.

Controls:
  Space/W/Up   - Jump
  A/Left       - Slow down (hold)
  D/Right      - Speed up (hold)
  P/Esc        - Pause
  R            - Restart (after game over)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Logs go to ~/.squirrel-yarn/squirrel.log while playing.

Examples:
  squirrel play
  squirrel play --difficulty hard
  squirrel play --seed 42 --store file`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	logPath := config.UserDataPath("squirrel.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	logger, err := newLogger(logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := loadConfig(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store, closeStore, err := openStore(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening record store: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()

	game, err := runner.New(cfg, store, runner.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	logger.Info("run starting", "seed", rt.Seed, "store", flagStore, "size", fmt.Sprintf("%dx%d", width, height))
	if err := tui.Run(game, rt, logger); err != nil {
		// Deferred closers would be skipped by os.Exit.
		closeStore()
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
