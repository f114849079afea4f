package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/squirrel-yarn/internal/core"
	"github.com/vovakirdan/squirrel-yarn/internal/games/runner"
	"github.com/vovakirdan/squirrel-yarn/internal/storage"
)

var (
	flagTicks int
	flagSteer int
	flagSave  bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the autopilot headlessly",
	Long: `Play a run with the built-in autopilot at a fixed time step and print a
summary of what happened. The same seed and flags always give the same run,
which makes sim useful for tuning configs.

Examples:
  squirrel sim --seed 7
  squirrel sim --ticks 36000 --steer 1 --config ./fast.yaml
  squirrel sim --save`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagTicks, "ticks", 60*60, "Maximum ticks to simulate")
	simCmd.Flags().IntVar(&flagSteer, "steer", 0, "Held steering: -1, 0 or 1")
	simCmd.Flags().BoolVar(&flagSave, "save", false, "Persist the result to the record store")
}

// simSummary tallies the events of a headless run.
type simSummary struct {
	Ticks       int
	Landings    int
	BushHits    int
	Scattered   int
	Pickups     int
	PickedValue int
	TierUnlocks int
	Milestone   bool
	GameOver    bool
	Cause       runner.Cause
	Stash       int
	Distance    float64
	Elapsed     float64
	StashRecord bool
	DistRecord  bool
}

// simulate drives g with the autopilot for at most ticks steps of dt.
func simulate(g *runner.Game, pilot *runner.Autopilot, ticks int, dt float64) simSummary {
	var s simSummary
	for s.Ticks < ticks && !g.State().GameOver {
		ev := g.Update(dt, pilot.Intents(g))
		s.Ticks++
		if ev.Landed {
			s.Landings++
		}
		if ev.HitBush {
			s.BushHits++
		}
		s.Scattered += ev.Scatter
		s.Pickups += len(ev.Collected)
		s.PickedValue += ev.CollectedValue()
		if ev.TierUnlocked {
			s.TierUnlocks++
		}
		s.Milestone = s.Milestone || ev.PassedMilestone
		if ev.GameOver {
			s.GameOver = true
			s.Cause = ev.Cause
			s.StashRecord = ev.NewStashRecord
			s.DistRecord = ev.NewDistanceRecord
		}
	}
	snap := g.Snapshot()
	s.Stash = snap.Stash
	s.Distance = snap.Distance
	s.Elapsed = snap.Elapsed
	return s
}

func runSim(cmd *cobra.Command, args []string) {
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

	var store storage.RecordStore = storage.NewMemoryStore(storage.Record{})
	closeStore := func() {}
	if flagSave {
		store, closeStore, err = openStore(logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening record store: %v\n", err)
			os.Exit(1)
		}
	}
	defer closeStore()

	game, err := runner.New(cfg, store, runner.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rt := core.DefaultConfig()
	rt.Seed = seed
	rt.TickRate = max(1, flagFPS)
	game.Reset(rt)

	pilot := runner.NewAutopilot()
	pilot.Steer = max(-1, min(1, flagSteer))

	start := time.Now()
	s := simulate(game, pilot, flagTicks, 1/float64(rt.TickRate))
	logger.Debug("simulation finished", "wall", time.Since(start), "ticks", s.Ticks)

	if flagSave && s.GameOver {
		if err := game.FinishRun(); err != nil {
			logger.Error("saving run failed", "err", err)
		}
	}

	printSummary(seed, s)
}

func printSummary(seed int64, s simSummary) {
	fmt.Printf("Seed:        %d\n", seed)
	fmt.Printf("Ticks:       %d (%.1fs)\n", s.Ticks, s.Elapsed)
	fmt.Printf("Distance:    %.1fm\n", s.Distance)
	fmt.Printf("Stash:       %d\n", s.Stash)
	fmt.Printf("Pickups:     %d (worth %d)\n", s.Pickups, s.PickedValue)
	fmt.Printf("Bush hits:   %d (%d yarn scattered)\n", s.BushHits, s.Scattered)
	fmt.Printf("Landings:    %d\n", s.Landings)
	fmt.Printf("Tier ups:    %d\n", s.TierUnlocks)
	if s.Milestone {
		fmt.Println("Passed the previous best.")
	}
	if !s.GameOver {
		fmt.Println("Outcome:     still running")
		return
	}
	fmt.Printf("Outcome:     game over (%s)\n", s.Cause)
	if s.StashRecord || s.DistRecord {
		fmt.Printf("Records:     stash=%v distance=%v\n", s.StashRecord, s.DistRecord)
	}
}
