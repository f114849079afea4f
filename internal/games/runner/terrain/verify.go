package terrain

import (
	"math"
	"sort"

	"github.com/vovakirdan/squirrel-yarn/internal/core"
	"github.com/vovakirdan/squirrel-yarn/internal/games/runner/world"
)

// verify re-checks a built chunk against the jump model. Limits come from
// the physics directly, not from the clamped bands the builders used.
func (g *Generator) verify(c Chunk, ctx Context) error {
	if err := g.verifyGround(c); err != nil {
		return err
	}
	if err := g.verifyPlatforms(c); err != nil {
		return err
	}
	for _, p := range c.Pieces {
		switch p.Kind {
		case world.KindBush:
			height := bushClearance(p, g.groundY)
			if !g.phys.ClearsBush(p.Hitbox.W, height) {
				return &InvariantViolation{Rule: c.Rule, What: "bush height", Leap: height, Limit: g.phys.RiseCap()}
			}
		case world.KindYarn:
			if p.Yarn.Tier > ctx.Tier {
				return &InvariantViolation{Rule: c.Rule, What: "yarn tier", Leap: float64(p.Yarn.Tier), Limit: float64(ctx.Tier)}
			}
		}
	}
	return nil
}

func (g *Generator) verifyGround(c Chunk) error {
	grounds := c.Grounds()
	if len(grounds) == 0 {
		return &InvariantViolation{Rule: c.Rule, What: "ground coverage", Leap: c.EndX - c.StartX, Limit: 0}
	}
	sort.Slice(grounds, func(i, j int) bool { return grounds[i].X < grounds[j].X })

	// Edges are sums of widths, so compare them with the landing tolerance.
	const eps = core.LandingEpsilon
	if grounds[0].X > c.StartX+eps {
		return &InvariantViolation{Rule: c.Rule, What: "lead-in gap", Leap: grounds[0].X - c.StartX, Limit: 0}
	}
	if last := grounds[len(grounds)-1]; last.Right() < c.EndX-eps {
		return &InvariantViolation{Rule: c.Rule, What: "trailing gap", Leap: c.EndX - last.Right(), Limit: 0}
	}

	gapCap := g.phys.GapCap()
	for i := 1; i < len(grounds); i++ {
		gap := grounds[i].X - grounds[i-1].Right()
		if gap > gapCap+eps {
			return &InvariantViolation{Rule: c.Rule, What: "gap width", Leap: gap, Limit: gapCap}
		}
	}

	over := g.phys.Overshoot()
	for _, gap := range c.Gaps() {
		if gap.X < g.safeFrom-eps {
			return &InvariantViolation{Rule: c.Rule, What: "stun runway", Leap: g.safeFrom - gap.X, Limit: 0}
		}
		landing := 0.0
		for _, gr := range grounds {
			if gr.X >= gap.Right()-eps {
				landing = gr.Right()
				break
			}
		}
		if span := landing - gap.X; span < over-eps {
			return &InvariantViolation{Rule: c.Rule, What: "landing overshoot", Leap: over, Limit: span}
		}
	}
	return nil
}

// verifyPlatforms checks platforms in emission order: each must be reachable
// from the ground or from the platform before it.
func (g *Generator) verifyPlatforms(c Chunk) error {
	riseCap := g.phys.RiseCap()
	maxRise := g.cfg.Terrain.MaxSurfaceRise
	var prev *core.AABB
	for _, p := range c.Platforms() {
		p := p
		rise := g.groundY - p.Y
		if rise > maxRise+core.LandingEpsilon {
			return &InvariantViolation{Rule: c.Rule, What: "surface rise", Leap: rise, Limit: maxRise}
		}
		if prev == nil || p.X < prev.Right() {
			if rise > riseCap+core.LandingEpsilon {
				return &InvariantViolation{Rule: c.Rule, What: "platform rise", Leap: rise, Limit: riseCap}
			}
			prev = &p
			continue
		}
		step := math.Max(0, prev.Y-p.Y)
		if step > riseCap+core.LandingEpsilon {
			return &InvariantViolation{Rule: c.Rule, What: "step rise", Leap: step, Limit: riseCap}
		}
		spacing := p.X - prev.Right()
		if limit := g.phys.StepSpacingCap(step); spacing > limit+core.LandingEpsilon {
			return &InvariantViolation{Rule: c.Rule, What: "step spacing", Leap: spacing, Limit: limit}
		}
		prev = &p
	}
	return nil
}
