// squirrel is an endless terminal runner: a squirrel dashes over gaps and
// bushes collecting yarn.
//
// Usage:
//
//	squirrel play            - Play a run
//	squirrel sim             - Run the autopilot headlessly
//	squirrel scores          - Browse run history
//	squirrel stats           - Print lifetime statistics
//	squirrel config dump     - Print the effective config
//	squirrel reset           - Erase records and history
//
// Global flags:
//
//	--config <path>      - Runner config (YAML or TOML)
//	--difficulty <name>  - easy, normal, hard or fixed
//	--fps <rate>         - Tick rate (default: 60)
//	--seed <value>       - RNG seed for reproducible terrain
//	--store <kind>       - Record store: sqlite, file or gdata
//	--db <path>          - Run history database
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/squirrel-yarn/internal/config"
	"github.com/vovakirdan/squirrel-yarn/internal/storage"
)

var (
	// Global flags
	flagConfig     string
	flagDifficulty string
	flagFPS        int
	flagSeed       int64
	flagStore      string
	flagDBPath     string
	flagRecordPath string
	flagLogLevel   string
)

// appName names the gdata application directory.
const appName = "squirrel-yarn"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "squirrel",
	Short: "Squirrel Yarn - an endless runner in your terminal",
	Long: `Squirrel Yarn is an endless side-scrolling runner. Jump gaps, dodge
bushes and collect yarn; rarer colors unlock the farther you run.

Examples:
  squirrel play
  squirrel play --difficulty hard --seed 42
  squirrel sim --ticks 7200
  squirrel scores
  squirrel config dump --format toml`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to runner config (YAML or TOML)")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagStore, "store", "sqlite", "Record store: sqlite, file, gdata")
	pf.StringVar(&flagDBPath, "db", "~/"+config.AppDir+"/runs.db", "Path to run history database")
	pf.StringVar(&flagRecordPath, "record", "~/"+config.AppDir+"/record.json", "Path to record file (--store file)")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(resetCmd)
}

// newLogger builds the structured logger all commands share.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          "squirrel",
		ReportTimestamp: true,
		Level:           level,
	}), nil
}

// loadConfig loads the runner config and applies --difficulty.
func loadConfig(logger *log.Logger) (config.RunnerConfig, error) {
	cfg, source, err := config.LoadWithSource(flagConfig)
	if err != nil {
		return cfg, err
	}
	if preset := config.ParsePreset(flagDifficulty); preset != "" {
		config.ApplyPreset(&cfg, preset)
	} else if flagDifficulty != "" {
		logger.Warn("unknown difficulty preset, ignoring", "difficulty", flagDifficulty)
	}
	logger.Debug("config loaded", "source", source, "difficulty", flagDifficulty)
	return cfg, nil
}

// historyStore adds sqlite run history to a record store that lacks it.
type historyStore struct {
	storage.RecordStore
	runs *storage.SQLiteStore
}

func (h historyStore) SaveRun(run storage.RunResult) (int64, error) {
	return h.runs.SaveRun(run)
}

// openStore opens the record store chosen by --store. Finished runs always
// go to the sqlite history when it can be opened. A sqlite store that cannot
// be opened degrades to an in-memory record. The returned func
// releases everything that was opened.
func openStore(logger *log.Logger) (storage.RecordStore, func(), error) {
	db, dbErr := storage.OpenSQLite(flagDBPath, logger)
	closeDB := func() {
		if db != nil {
			db.Close()
		}
	}

	var rec storage.RecordStore
	switch flagStore {
	case "sqlite":
		if dbErr != nil {
			// A damaged database must not block play. Records live in
			// memory for this session and the file is left for inspection.
			logger.Warn("record database unusable, records will not be saved",
				"err", &storage.PersistenceError{Op: "open", Path: flagDBPath, Err: dbErr})
			return storage.NewMemoryStore(storage.Record{}), closeDB, nil
		}
		return db, closeDB, nil
	case "file":
		fs, err := storage.NewFileStore(flagRecordPath, logger)
		if err != nil {
			closeDB()
			return nil, nil, err
		}
		rec = fs
	case "gdata":
		gs, err := storage.OpenGdata(appName, logger)
		if err != nil {
			closeDB()
			return nil, nil, err
		}
		rec = gs
	default:
		closeDB()
		return nil, nil, fmt.Errorf("unknown --store %q (want sqlite, file or gdata)", flagStore)
	}

	if dbErr != nil {
		logger.Warn("run history unavailable", "err", dbErr)
		return rec, closeDB, nil
	}
	return historyStore{RecordStore: rec, runs: db}, closeDB, nil
}
