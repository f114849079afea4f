// Package runner is the Squirrel Yarn coordinator. It owns the live
// entities and runs each tick in a fixed order: move the player, extend the
// terrain, resolve collisions, then update progression and the camera.
package runner

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/squirrel-yarn/internal/config"
	"github.com/vovakirdan/squirrel-yarn/internal/core"
	"github.com/vovakirdan/squirrel-yarn/internal/games/runner/sim"
	"github.com/vovakirdan/squirrel-yarn/internal/games/runner/terrain"
	"github.com/vovakirdan/squirrel-yarn/internal/games/runner/world"
	"github.com/vovakirdan/squirrel-yarn/internal/storage"
)

// Broadphase cell size in world units.
const indexCell = 64

// Game runs one Squirrel Yarn session. It is not safe for concurrent use.
type Game struct {
	cfg     config.RunnerConfig
	store   storage.RecordStore
	record  storage.Record
	logger  *log.Logger
	runtime core.RuntimeConfig

	player   *sim.Player
	camera   *sim.Camera
	progress *sim.Progression
	gen      *terrain.Generator
	arena    *world.Arena

	elapsed    float64
	tick       int
	paused     bool
	over       bool
	finished   bool
	cause      Cause
	milestoneX float64 // world x of the previous best distance, 0 when none
	passed     bool
	fallbacks  int
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger for diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		g.logger = l
	}
}

// New validates cfg, loads the persisted record from store and prepares a
// run. A nil store keeps records in memory.
func New(cfg config.RunnerConfig, store storage.RecordStore, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if store == nil {
		store = storage.NewMemoryStore(storage.Record{})
	}
	g := &Game{cfg: cfg, store: store}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = log.Default()
	}

	g.record = store.Load()
	g.player = sim.NewPlayer(cfg)
	g.camera = sim.NewCamera(cfg)
	g.progress = sim.NewProgression(cfg)
	g.gen = terrain.NewGenerator(cfg, g.logger)
	g.Reset(core.DefaultConfig())
	return g, nil
}

// Reset starts a new run. The seed in runtime fixes the terrain.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	startX := g.cfg.Player.StartX

	g.elapsed = 0
	g.tick = 0
	g.paused = false
	g.over = false
	g.finished = false
	g.cause = CauseNone
	g.passed = false
	g.fallbacks = 0

	g.player.Reset(startX)
	g.camera.Reset(startX)
	g.progress.Reset(startX, g.record.BestStash, g.record.BestDistance)

	g.milestoneX = 0
	if g.record.BestDistance > 0 {
		g.milestoneX = startX + g.record.BestDistance*g.cfg.Scoring.PxPerMeter
	}

	g.arena = g.newArena()
	g.gen.Reset(runtime.Seed, 0, startX)
	g.extendTerrain()
}

// newArena sizes the broadphase window to hold everything between the
// retire line and the generation horizon with room to spare.
func (g *Game) newArena() *world.Arena {
	s := g.cfg.Screen
	t := g.cfg.Terrain
	span := s.Width + t.Lookahead + 2*t.RunMax + g.gen.Physics().Overshoot() + t.RetireMargin
	width := 4 * span
	return world.NewArena(-width/4, -s.Height, width, 3*s.Height, indexCell)
}

// Update advances the simulation by dt seconds.
func (g *Game) Update(dt float64, in core.Intents) FrameEvents {
	var ev FrameEvents
	if g.over {
		return ev
	}
	if in.Pause {
		g.paused = !g.paused
	}
	if g.paused {
		return ev
	}

	// NaN fails every comparison, so reject it before clamping.
	if !(dt > 0) {
		return ev
	}
	dt = core.ClampF(dt, 0, g.cfg.Sim.MaxDT)
	g.elapsed += dt
	g.tick++

	p := g.player
	if in.JumpPressed {
		p.Jump()
	}
	prev := p.Box()
	p.Integrate(dt, in.Steer())

	g.extendTerrain()

	g.resolveSupport(prev, &ev)
	g.collectYarn(prev, &ev)
	g.checkBushes(&ev)
	if !ev.GameOver {
		g.checkFallOut(&ev)
	}

	if g.progress.Advance(p.Pos.X) {
		ev.TierUnlocked = true
	}
	g.camera.Update(dt, p.Pos.X, p.SpeedMultiplier)
	g.arena.RetireBefore(g.camera.X() - g.cfg.Terrain.RetireMargin)
	g.checkMilestone(&ev)

	if ev.GameOver {
		g.endRun(&ev)
	}
	return ev
}

// extendTerrain generates chunks until the frontier is past the lookahead
// horizon.
func (g *Game) extendTerrain() {
	g.arena.Recenter(g.player.Pos.X)
	horizon := g.camera.X() + g.cfg.Screen.Width + g.cfg.Terrain.Lookahead
	for g.gen.Frontier() < horizon {
		chunk := g.gen.Next(terrain.Context{Elapsed: g.elapsed, Tier: g.progress.Tier})
		if chunk.Fallback {
			g.fallbacks++
		}
		g.spawn(chunk)
	}
}

func (g *Game) spawn(c terrain.Chunk) {
	for _, p := range c.Pieces {
		switch p.Kind {
		case world.KindBush:
			g.arena.AddBush(p.Box, p.Hitbox)
		case world.KindYarn:
			g.arena.AddYarn(p.Box, p.Yarn)
		default:
			g.arena.AddSegment(p.Kind, p.Box)
		}
	}
}

func (g *Game) checkMilestone(ev *FrameEvents) {
	if g.milestoneX == 0 || g.passed {
		return
	}
	if g.player.Box().CenterX() >= g.milestoneX {
		g.passed = true
		ev.PassedMilestone = true
	}
}

func (g *Game) endRun(ev *FrameEvents) {
	g.over = true
	g.cause = ev.Cause
	ev.NewDistanceRecord = g.progress.NewDistanceRecord()
	ev.NewStashRecord = g.progress.NewStashRecord()
}

// FinishRun folds the ended run into the record and persists it. Call it
// after the tick that reported GameOver; further calls do nothing.
func (g *Game) FinishRun() error {
	if !g.over || g.finished {
		return nil
	}
	g.finished = true

	run := g.Result()
	next, stashRec, distRec := g.record.Merge(run)
	g.record = next

	g.logger.Info("run finished",
		"cause", run.Cause,
		"stash", run.Stash,
		"distance", run.Distance,
		"hits", run.Hits,
		"seed", run.Seed,
		"stash_record", stashRec,
		"distance_record", distRec,
		"chunks", g.gen.Emitted(),
		"fallback_chunks", g.fallbacks,
	)

	var errs []error
	if err := g.store.Save(next); err != nil {
		errs = append(errs, err)
	}
	if rr, ok := g.store.(storage.RunRecorder); ok {
		if _, err := rr.SaveRun(run); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Result describes the current run.
func (g *Game) Result() storage.RunResult {
	return storage.RunResult{
		Seed:      g.runtime.Seed,
		Stash:     g.progress.Stash,
		Distance:  g.progress.Distance,
		Collected: g.progress.Collected,
		Hits:      g.progress.Hits,
		Duration:  time.Duration(g.elapsed * float64(time.Second)),
		Cause:     string(g.cause),
	}
}

// State returns the coarse run status.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.progress.Stash,
		GameOver: g.over,
		Paused:   g.paused,
	}
}

// Record returns the persisted record as of the last finished run.
func (g *Game) Record() storage.Record {
	return g.record
}

// Config returns the validated configuration.
func (g *Game) Config() config.RunnerConfig {
	return g.cfg
}

// Player returns the player. Callers must not mutate it.
func (g *Game) Player() *sim.Player {
	return g.player
}

// Progress returns run progression. Callers must not mutate it.
func (g *Game) Progress() *sim.Progression {
	return g.progress
}

// Elapsed returns simulated seconds since the run started.
func (g *Game) Elapsed() float64 {
	return g.elapsed
}
