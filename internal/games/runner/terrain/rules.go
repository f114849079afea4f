package terrain

import (
	"math"

	"github.com/vovakirdan/squirrel-yarn/internal/config"
	"github.com/vovakirdan/squirrel-yarn/internal/core"
	"github.com/vovakirdan/squirrel-yarn/internal/games/runner/world"
)

// groundRun is a flat stretch, optionally with one or two bushes.
func (g *Generator) groundRun(band config.Band, ctx Context, withBush bool) Chunk {
	t := g.cfg.Terrain
	x0 := g.frontier
	length := g.runLength()
	c := Chunk{Rule: RuleGroundRun, StartX: x0}

	var bushes []Piece
	if withBush {
		c.Rule = RuleGroundRunWithBush
		bx := x0 + t.BushLead + g.uniform(0, length/3)
		bushes = append(bushes, g.bush(bx))
		if g.rng.Float64() < band.BushRate {
			// A player clearing the first bush at top speed must land and
			// take off again before the second.
			bx2 := bx + t.BushWidth + g.caps.overshot + g.uniform(0, t.BushLead)
			bushes = append(bushes, g.bush(bx2))
		}
		last := bushes[len(bushes)-1].Box
		length = math.Max(length, last.Right()-x0+t.BushLead)
		g.safeFrom = math.Max(g.safeFrom, last.Right()+g.caps.runway)
	}

	c.EndX = x0 + length
	c.add(g.ground(x0, c.EndX))
	avoid := make([]core.AABB, 0, len(bushes))
	for _, b := range bushes {
		c.add(b)
		avoid = append(avoid, b.Box)
	}
	g.groundYarn(&c, x0, c.EndX, band, ctx, avoid)
	return c
}

// gapBridge is ground, a gap with a one-way bridge above it, then ground.
// The gap alone is jumpable at the slowest speed; the bridge is optional.
func (g *Generator) gapBridge(band config.Band, ctx Context) Chunk {
	t := g.cfg.Terrain
	x0 := g.frontier
	c := Chunk{Rule: RuleGapBridge, StartX: x0}

	lead := math.Max(g.runLength(), g.safeFrom-x0)
	gap := core.ClampF(g.uniform(band.GapMin, band.GapMax), 0, g.caps.gap)
	g0 := x0 + lead
	g1 := g0 + gap
	landing := math.Max(g.runLength(), g.caps.overshot-gap+1)
	c.EndX = g1 + landing

	rise := core.ClampF(g.uniform(band.RiseMin, band.RiseMax), 0, g.caps.rise)
	bridge := g.platform(g0-t.BridgeOverhang, gap+2*t.BridgeOverhang, rise)

	c.add(g.ground(x0, g0))
	c.add(Piece{Kind: world.KindGap, Box: core.NewAABB(g0, g.groundY, gap, t.GroundDepth)})
	c.add(g.ground(g1, c.EndX))
	c.add(bridge)

	avoid := []core.AABB{core.NewAABB(bridge.Box.X, 0, bridge.Box.W, 1)}
	g.groundYarn(&c, x0, g0, band, ctx, avoid)
	c.add(g.yarnAt(bridge.Box.CenterX(), bridge.Box.Y, g.cfg.Terrain.YarnHeights[0], band, ctx))
	if gap > 0 {
		// Arc pickup at the top of a level jump over the gap.
		c.add(g.yarnAt(g0+gap/2, g.groundY, g.arcHeight(), band, ctx))
	}
	g.groundYarn(&c, g1, c.EndX, band, ctx, avoid)
	return c
}

// staircase is continuous ground with n platforms climbing to the right.
func (g *Generator) staircase(band config.Band, ctx Context) Chunk {
	t := g.cfg.Terrain
	x0 := g.frontier
	c := Chunk{Rule: RuleStaircase, StartX: x0}

	steps := t.StairStepsMin
	if t.StairStepsMax > t.StairStepsMin {
		steps += g.rng.Intn(t.StairStepsMax - t.StairStepsMin + 1)
	}

	lead := t.RunMin / 2
	x := x0 + lead
	rise := core.ClampF(g.uniform(band.RiseMin, band.RiseMax), 0, g.caps.rise)
	platforms := make([]Piece, 0, steps)
	for i := 0; i < steps; i++ {
		w := g.uniform(t.PlatformMinWidth, t.PlatformMaxWidth)
		platforms = append(platforms, g.platform(x, w, rise))
		x += w
		if i == steps-1 {
			break
		}
		step := core.ClampF(g.uniform(band.StepMin, band.StepMax), 0, g.caps.step)
		step = math.Min(step, t.MaxSurfaceRise-rise)
		if step < 0 {
			step = 0
		}
		hi := math.Min(t.StairSpacingMax, g.phys.StepSpacingCap(step))
		spacing := g.uniform(math.Min(t.StairSpacingMin, hi), hi)
		x += spacing
		rise += step
	}

	c.EndX = math.Max(x0+g.runLength(), x+lead)
	c.add(g.ground(x0, c.EndX))
	avoid := make([]core.AABB, 0, len(platforms))
	for _, p := range platforms {
		c.add(p)
		c.add(g.yarnAt(p.Box.CenterX(), p.Box.Y, t.YarnHeights[0], band, ctx))
		avoid = append(avoid, p.Box)
	}
	g.groundYarn(&c, x0, c.EndX, band, ctx, avoid)
	return c
}

// arcHeight is the yarn height over a gap: half a jump's apex, never below
// the lowest configured yarn height.
func (g *Generator) arcHeight() float64 {
	return math.Max(g.phys.Apex()/2, g.cfg.Terrain.YarnHeights[0])
}
