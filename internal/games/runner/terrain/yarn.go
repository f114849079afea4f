package terrain

import (
	"github.com/vovakirdan/squirrel-yarn/internal/config"
	"github.com/vovakirdan/squirrel-yarn/internal/core"
	"github.com/vovakirdan/squirrel-yarn/internal/games/runner/world"
)

// pickTier draws a tier no higher than the unlocked one. Band tier bias
// shifts weight toward higher tiers as difficulty rises.
func (g *Generator) pickTier(band config.Band, unlocked world.Tier) world.Tier {
	top := int(unlocked)
	if top >= len(g.cfg.Tiers) {
		top = len(g.cfg.Tiers) - 1
	}
	total := 0.0
	weights := make([]float64, top+1)
	for i := 0; i <= top; i++ {
		weights[i] = g.cfg.Tiers[i].Weight * (1 + band.TierBias*float64(i))
		total += weights[i]
	}
	if total <= 0 {
		return world.TierBasic
	}
	r := g.rng.Float64() * total
	for i, w := range weights {
		if r < w {
			return world.Tier(i)
		}
		r -= w
	}
	return world.Tier(top)
}

// yarnAt builds a pickup centered at cx, h above the surface top.
func (g *Generator) yarnAt(cx, top, h float64, band config.Band, ctx Context) Piece {
	size := g.cfg.Terrain.YarnSize
	tier := g.pickTier(band, ctx.Tier)
	tc := g.cfg.Tiers[tier]
	color := tc.Colors[g.rng.Intn(len(tc.Colors))]
	return Piece{
		Kind: world.KindYarn,
		Box:  core.NewAABB(cx-size/2, top-h-size/2, size, size),
		Yarn: world.YarnData{Tier: tier, Value: tc.Value, Color: color},
	}
}

// groundYarn scatters pickups over [x0, x1) on the ground, one slot per
// yarn spacing, skipping slots that share x with anything in avoid.
func (g *Generator) groundYarn(c *Chunk, x0, x1 float64, band config.Band, ctx Context, avoid []core.AABB) {
	t := g.cfg.Terrain
	half := t.YarnSize / 2
	for x := x0 + t.YarnSpacing/2; x+half <= x1; x += t.YarnSpacing {
		if g.rng.Float64() >= band.YarnRate {
			continue
		}
		slot := core.NewAABB(x-half, 0, t.YarnSize, 1)
		blocked := false
		for _, a := range avoid {
			if slot.OverlapsX(a) {
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}
		h := t.YarnHeights[g.rng.Intn(len(t.YarnHeights))]
		c.add(g.yarnAt(x, g.groundY, h, band, ctx))
	}
}
