package runner

import (
	"github.com/vovakirdan/squirrel-yarn/internal/collide"
	"github.com/vovakirdan/squirrel-yarn/internal/core"
	"github.com/vovakirdan/squirrel-yarn/internal/games/runner/sim"
	"github.com/vovakirdan/squirrel-yarn/internal/games/runner/world"
)

// Autopilot plays the game headlessly: it jumps off ground edges and over
// bushes, timing bush jumps so it comes down on ground. Steer is held for
// the whole run.
type Autopilot struct {
	Steer int

	// EdgeLead is how close to a ground edge the player's front may get
	// before it jumps.
	EdgeLead float64
	// LastChance is how many seconds of travel before a bush the autopilot
	// stops waiting for a safe landing and jumps anyway.
	LastChance float64
}

// NewAutopilot returns an autopilot tuned for the default physics.
func NewAutopilot() *Autopilot {
	return &Autopilot{EdgeLead: 12, LastChance: 1.0 / 30}
}

// Intents decides this tick's input.
func (a *Autopilot) Intents(g *Game) core.Intents {
	in := core.Intents{SteerLeft: a.Steer < 0, SteerRight: a.Steer > 0}
	p := g.player
	if p.State != sim.StateRunning || !p.Grounded {
		return in
	}
	box := p.Box()

	if surface, kind, ok := g.support(box); ok && kind == world.KindGround {
		if surface.Right()-box.Right() <= a.EdgeLead && !g.groundContinues(surface) {
			in.JumpPressed = true
			return in
		}
	}

	phys := g.gen.Physics()
	v := p.Vel.X
	airtime, _ := phys.Airtime(0)
	safe := g.groundUnder(box.Translate(core.Vec2{X: v * airtime}))

	ahead := core.NewAABB(box.Right(), box.Y, v*airtime, box.H)
	for _, e := range g.query(ahead, collide.TagBush) {
		b := g.arena.Bush(e)
		if b == nil || b.Consumed || !b.Hitbox.Overlaps(ahead) {
			continue
		}
		h := box.Bottom() - b.Hitbox.Y
		rise, ok := phys.RiseTime(h)
		if !ok {
			continue
		}
		d := b.Hitbox.X - box.Right()
		clears := d >= v*rise && d+b.Hitbox.W+box.W <= v*(rise+phys.TimeAbove(h))
		if (clears && safe) || d <= v*(rise+a.LastChance) {
			in.JumpPressed = true
			break
		}
	}
	return in
}

// groundContinues reports whether another ground segment starts where
// surface ends.
func (g *Game) groundContinues(surface core.AABB) bool {
	edge := core.NewAABB(surface.Right()-1, surface.Y, 2, 1)
	for _, e := range g.query(edge, collide.TagSolid) {
		body := g.arena.Body(e)
		if body == nil || body.Kind != world.KindGround || body.Box.Y != surface.Y {
			continue
		}
		if body.Box.X <= surface.Right()+core.LandingEpsilon && body.Box.Right() > surface.Right() {
			return true
		}
	}
	return false
}

// groundUnder reports whether ground lies beneath any part of box.
func (g *Game) groundUnder(box core.AABB) bool {
	footing := core.NewAABB(box.X, g.cfg.Screen.GroundY, box.W, 1)
	for _, e := range g.query(footing, collide.TagSolid) {
		if body := g.arena.Body(e); body != nil && body.Kind == world.KindGround && body.Box.OverlapsX(box) {
			return true
		}
	}
	return false
}
