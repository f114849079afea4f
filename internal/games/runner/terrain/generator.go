// Package terrain generates the runner's endless level. Each call appends
// one chunk built from a weighted rule template whose sizes are capped below
// what the player can physically jump, then re-checked before it is emitted.
package terrain

import (
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/squirrel-yarn/internal/config"
	"github.com/vovakirdan/squirrel-yarn/internal/core"
	"github.com/vovakirdan/squirrel-yarn/internal/games/runner/world"
)

// Context is the run state the generator conditions on.
type Context struct {
	Elapsed float64    // seconds of simulated run time
	Tier    world.Tier // highest tier currently unlocked
}

// caps are the hard limits derived from physics, with config values clamped
// to them.
type caps struct {
	gap      float64
	rise     float64
	step     float64
	overshot float64
	runway   float64
}

// Generator produces terrain chunks left to right from a frontier.
type Generator struct {
	cfg      config.RunnerConfig
	phys     Physics
	diff     *config.DifficultyManager
	logger   *log.Logger
	rng      *rand.Rand
	caps     caps
	startX   float64 // world x of distance zero
	frontier float64 // rightmost generated x
	safeFrom float64 // no gap may start before this x
	groundY  float64
	emitted  int
}

// NewGenerator creates a generator. Config ranges that exceed the physical
// caps are clamped here and logged.
func NewGenerator(cfg config.RunnerConfig, logger *log.Logger) *Generator {
	if logger == nil {
		logger = log.Default()
	}
	g := &Generator{
		cfg:     cfg,
		phys:    NewPhysics(cfg),
		logger:  logger,
		groundY: cfg.Screen.GroundY,
	}
	g.caps = caps{
		gap:      g.phys.GapCap(),
		rise:     math.Min(g.phys.RiseCap(), cfg.Terrain.MaxSurfaceRise),
		step:     g.phys.RiseCap(),
		overshot: g.phys.Overshoot(),
		runway:   StunRunway(cfg),
	}
	g.clampBands()
	g.Reset(1, 0, cfg.Player.StartX)
	return g
}

func (g *Generator) clampBands() {
	d := &g.cfg.Difficulty
	for _, b := range []*config.Band{&d.Easy, &d.Hard} {
		if b.GapMax > g.caps.gap {
			g.logger.Info("gap range clamped to jump reach", "gap_max", b.GapMax, "cap", g.caps.gap)
			b.GapMax = g.caps.gap
			b.GapMin = math.Min(b.GapMin, b.GapMax)
		}
		if b.RiseMax > g.caps.rise {
			g.logger.Info("rise range clamped to jump apex", "rise_max", b.RiseMax, "cap", g.caps.rise)
			b.RiseMax = g.caps.rise
			b.RiseMin = math.Min(b.RiseMin, b.RiseMax)
		}
		if b.StepMax > g.caps.step {
			g.logger.Info("step range clamped to jump apex", "step_max", b.StepMax, "cap", g.caps.step)
			b.StepMax = g.caps.step
			b.StepMin = math.Min(b.StepMin, b.StepMax)
		}
	}
	g.diff = config.NewDifficultyManager(*d)
}

// Reset restarts generation from frontier with a new seed.
func (g *Generator) Reset(seed int64, frontier, startX float64) {
	g.rng = rand.New(rand.NewSource(seed))
	g.frontier = frontier
	g.safeFrom = frontier
	g.startX = startX
	g.emitted = 0
}

// Frontier returns the rightmost generated x.
func (g *Generator) Frontier() float64 {
	return g.frontier
}

// Physics returns the jump model the generator plans against.
func (g *Generator) Physics() Physics {
	return g.phys
}

// GapCap returns the widest gap the generator will ever emit.
func (g *Generator) GapCap() float64 {
	return g.caps.gap
}

// meters converts a world x to run distance.
func (g *Generator) meters(x float64) float64 {
	return math.Max(0, (x-g.startX)/g.cfg.Scoring.PxPerMeter)
}

// Next generates the chunk starting at the frontier and advances it.
func (g *Generator) Next(ctx Context) Chunk {
	at := g.meters(g.frontier)
	band := g.diff.Band(at, ctx.Elapsed)
	rule := g.pickRule(band, at)

	chunk := g.build(rule, band, ctx)
	if err := g.verify(chunk, ctx); err != nil {
		g.logger.Warn("infeasible chunk replaced with flat run", "error", err, "x", g.frontier)
		chunk = g.groundRun(band, ctx, false)
		chunk.Fallback = true
	}

	g.frontier = chunk.EndX
	g.emitted++
	return chunk
}

func (g *Generator) build(rule Rule, band config.Band, ctx Context) Chunk {
	switch rule {
	case RuleGroundRunWithBush:
		return g.groundRun(band, ctx, true)
	case RuleGapBridge:
		return g.gapBridge(band, ctx)
	case RuleStaircase:
		return g.staircase(band, ctx)
	default:
		return g.groundRun(band, ctx, false)
	}
}

// pickRule draws a rule by band weight. Early distances are gated: only flat
// ground during warmup, no bushes before bush_after, no gaps before gap_after.
func (g *Generator) pickRule(band config.Band, at float64) Rule {
	t := g.cfg.Terrain
	if at < t.WarmupDistance {
		return RuleGroundRun
	}
	w := band.Weights
	weights := []float64{w.GroundRun, w.GroundRunWithBush, w.GapBridge, w.Staircase}
	if at < t.BushAfter {
		weights[RuleGroundRunWithBush] = 0
	}
	if at < t.GapAfter {
		weights[RuleGapBridge] = 0
	}

	total := 0.0
	for _, v := range weights {
		total += v
	}
	if total <= 0 {
		return RuleGroundRun
	}
	r := g.rng.Float64() * total
	for i, v := range weights {
		if r < v {
			return Rule(i)
		}
		r -= v
	}
	return RuleGroundRun
}

// uniform returns a value in [min, max].
func (g *Generator) uniform(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + g.rng.Float64()*(max-min)
}

func (g *Generator) runLength() float64 {
	return g.uniform(g.cfg.Terrain.RunMin, g.cfg.Terrain.RunMax)
}

func (g *Generator) ground(x0, x1 float64) Piece {
	return Piece{Kind: world.KindGround, Box: core.NewAABB(x0, g.groundY, x1-x0, g.cfg.Terrain.GroundDepth)}
}

func (g *Generator) platform(x0, width, rise float64) Piece {
	return Piece{Kind: world.KindPlatform, Box: core.NewAABB(x0, g.groundY-rise, width, g.cfg.Terrain.PlatformThickness)}
}

func (g *Generator) bush(x float64) Piece {
	t := g.cfg.Terrain
	box := core.NewAABB(x, g.groundY-t.BushHeight, t.BushWidth, t.BushHeight)
	hw := t.BushWidth * t.BushHitboxScale
	hh := t.BushHeight * t.BushHitboxScale
	hit := core.NewAABB(x+(t.BushWidth-hw)/2, box.Y+(t.BushHeight-hh)*0.75, hw, hh)
	return Piece{Kind: world.KindBush, Box: box, Hitbox: hit}
}

// bushClearance is the height above ground the player's feet must pass.
func bushClearance(p Piece, groundY float64) float64 {
	return groundY - p.Hitbox.Y
}

// Emitted returns how many chunks were generated since the last Reset.
func (g *Generator) Emitted() int {
	return g.emitted
}
