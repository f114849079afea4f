package runner

import (
	"github.com/yohamta/donburi"

	"github.com/vovakirdan/squirrel-yarn/internal/core"
	"github.com/vovakirdan/squirrel-yarn/internal/games/runner/world"
)

// RenderKind is what a renderable depicts.
type RenderKind int

const (
	RenderGround RenderKind = iota
	RenderPlatform
	RenderMilestone
	RenderBush
	RenderYarn
	RenderPlayer
)

// Renderable is one draw call for the renderer. Boxes are in world space.
type Renderable struct {
	Kind      RenderKind
	Box       core.AABB
	SpriteKey string
	AnimFrame int
}

// Yarn spin animation.
const (
	yarnFrames     = 4
	yarnFrameTicks = 8
)

// Renderables returns a fresh back-to-front list of everything in or near
// the view.
func (g *Game) Renderables() []Renderable {
	view := core.NewAABB(g.camera.ViewX()-g.cfg.Camera.ShakeAmplitude, -g.cfg.Screen.Height,
		g.cfg.Screen.Width+2*g.cfg.Camera.ShakeAmplitude, 3*g.cfg.Screen.Height)

	var terrain, props, pickups []Renderable
	g.arena.Each(func(e donburi.Entity, body *world.BodyData) {
		if !body.Box.OverlapsX(view) {
			return
		}
		switch body.Kind {
		case world.KindGround:
			terrain = append(terrain, Renderable{Kind: RenderGround, Box: body.Box, SpriteKey: "ground"})
		case world.KindPlatform:
			terrain = append(terrain, Renderable{Kind: RenderPlatform, Box: body.Box, SpriteKey: "platform"})
		case world.KindBush:
			frame := 0
			if b := g.arena.Bush(e); b != nil && b.Consumed {
				frame = 1
			}
			props = append(props, Renderable{Kind: RenderBush, Box: body.Box, SpriteKey: "bush", AnimFrame: frame})
		case world.KindYarn:
			y := g.arena.Yarn(e)
			if y == nil || y.Collected {
				return
			}
			pickups = append(pickups, Renderable{
				Kind:      RenderYarn,
				Box:       body.Box,
				SpriteKey: "yarn_" + y.Color,
				AnimFrame: (g.tick / yarnFrameTicks) % yarnFrames,
			})
		}
	})

	out := make([]Renderable, 0, len(terrain)+len(props)+len(pickups)+2)
	out = append(out, terrain...)
	if g.milestoneX > 0 && g.milestoneX >= view.X && g.milestoneX <= view.Right() {
		sign := core.NewAABB(g.milestoneX-4, g.cfg.Screen.GroundY-64, 8, 64)
		out = append(out, Renderable{Kind: RenderMilestone, Box: sign, SpriteKey: "milestone"})
	}
	out = append(out, props...)
	out = append(out, pickups...)

	key, frame := g.player.Sprite()
	out = append(out, Renderable{Kind: RenderPlayer, Box: g.player.Box(), SpriteKey: key, AnimFrame: frame})
	return out
}

// Snapshot is the HUD-level view of a run.
type Snapshot struct {
	Stash           int
	Distance        float64
	Tier            world.Tier
	BestStash       int
	BestDistance    float64
	SpeedMultiplier float64
	State           string
	Elapsed         float64
	Paused          bool
	GameOver        bool
	Cause           Cause
	CameraX         float64
	ViewX           float64
	Entities        int
}

// Snapshot returns the current HUD values.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Stash:           g.progress.Stash,
		Distance:        g.progress.Distance,
		Tier:            g.progress.Tier,
		BestStash:       g.record.BestStash,
		BestDistance:    g.record.BestDistance,
		SpeedMultiplier: g.player.SpeedMultiplier,
		State:           g.player.State.String(),
		Elapsed:         g.elapsed,
		Paused:          g.paused,
		GameOver:        g.over,
		Cause:           g.cause,
		CameraX:         g.camera.X(),
		ViewX:           g.camera.ViewX(),
		Entities:        g.arena.Len(),
	}
}
