package runner

import (
	"math"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/yohamta/donburi"

	"github.com/vovakirdan/squirrel-yarn/internal/collide"
	"github.com/vovakirdan/squirrel-yarn/internal/core"
	"github.com/vovakirdan/squirrel-yarn/internal/games/runner/sim"
	"github.com/vovakirdan/squirrel-yarn/internal/games/runner/world"
)

// query returns broadphase candidates in id order so that outcomes never
// depend on the index's internal ordering.
func (g *Game) query(box core.AABB, tag string) []donburi.Entity {
	ids := g.arena.Query(box, tag)
	slices.Sort(ids)
	return slices.Compact(ids)
}

// support returns the solid surface the box is standing on.
func (g *Game) support(box core.AABB) (core.AABB, world.Kind, bool) {
	feet := core.NewAABB(box.X, box.Bottom()-1, box.W, 2)
	for _, e := range g.query(feet, collide.TagSolid) {
		body := g.arena.Body(e)
		if body == nil || !body.Box.OverlapsX(box) {
			continue
		}
		if math.Abs(body.Box.Y-box.Bottom()) <= core.LandingEpsilon {
			return body.Box, body.Kind, true
		}
	}
	return core.AABB{}, 0, false
}

// resolveSupport keeps a grounded player on its surface and lands a falling
// one on the first surface top it crossed this tick. Solids are one-way: a
// rising player passes through them.
func (g *Game) resolveSupport(prev core.AABB, ev *FrameEvents) {
	p := g.player
	next := p.Box()

	if p.Grounded {
		if top, _, ok := g.support(next); ok {
			p.Land(top.Y)
			return
		}
		p.LoseSupport()
		return
	}

	if next.Y < prev.Y {
		if g.logger.GetLevel() <= log.DebugLevel {
			for _, e := range g.query(next, collide.TagSolid) {
				if body := g.arena.Body(e); body != nil && body.Box.Overlaps(next) {
					g.logger.Debug("rising through solid, resolution skipped", "x", next.X, "top", body.Box.Y)
					break
				}
			}
		}
		return
	}

	best := math.Inf(1)
	for _, e := range g.query(prev.Union(next), collide.TagSolid) {
		body := g.arena.Body(e)
		if body == nil {
			continue
		}
		if core.SweepLanding(prev, next, body.Box) && body.Box.Y < best {
			best = body.Box.Y
		}
	}
	if !math.IsInf(best, 1) {
		p.Land(best)
		ev.Landed = true
	}
}

// collectYarn picks up every pickup the player swept through this tick.
func (g *Game) collectYarn(prev core.AABB, ev *FrameEvents) {
	sweep := prev.Union(g.player.Box())
	for _, e := range g.query(sweep, collide.TagYarn) {
		y := g.arena.Yarn(e)
		body := g.arena.Body(e)
		if y == nil || y.Collected || !body.Box.Overlaps(sweep) {
			continue
		}
		y.Collected = true
		g.progress.Collect(y.Value)
		ev.Collected = append(ev.Collected, Pickup{Tier: y.Tier, Value: y.Value, Color: y.Color})
		g.arena.Remove(e)
	}
}

// checkBushes applies at most one bush hit per tick. A stunned player
// passes through bushes.
func (g *Game) checkBushes(ev *FrameEvents) {
	p := g.player
	if p.State == sim.StateStunned {
		return
	}
	box := p.Box()
	for _, e := range g.query(box, collide.TagBush) {
		b := g.arena.Bush(e)
		if b == nil || b.Consumed || !b.Hitbox.Overlaps(box) {
			continue
		}
		b.Consumed = true
		ev.HitBush = true

		lost, over := g.progress.Hit()
		if over {
			ev.GameOver = true
			ev.Cause = CauseBush
			return
		}
		ev.Scatter = lost
		p.Stun()
		g.camera.Shake()
		g.cullAboveTier()
		return
	}
}

// cullAboveTier removes uncollected pickups above the unlocked tier.
func (g *Game) cullAboveTier() {
	tier := g.progress.Tier
	g.arena.Each(func(e donburi.Entity, body *world.BodyData) {
		if body.Kind != world.KindYarn {
			return
		}
		if y := g.arena.Yarn(e); y != nil && y.Tier > tier {
			g.arena.Remove(e)
		}
	})
}

// checkFallOut ends the run once an unsupported player drops past the
// fall-out line.
func (g *Game) checkFallOut(ev *FrameEvents) {
	p := g.player
	if p.Grounded || p.Pos.Y <= g.cfg.Screen.FallOutY() {
		return
	}
	ev.EnteredGap = true
	ev.GameOver = true
	ev.Cause = CauseGap
}
