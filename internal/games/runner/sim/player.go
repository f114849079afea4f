// Package sim holds the runner's per-tick state machines: the squirrel's
// kinematics, the follow camera and run progression. None of it touches the
// terrain directly; the coordinator feeds it collision outcomes.
package sim

import (
	"math"

	"github.com/vovakirdan/squirrel-yarn/internal/config"
	"github.com/vovakirdan/squirrel-yarn/internal/core"
)

// State is the player's movement state.
type State int

const (
	StateRunning State = iota
	StateJumping
	StateStunned
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateJumping:
		return "jumping"
	case StateStunned:
		return "stunned"
	default:
		return "unknown"
	}
}

// trigger is an input to the state transition table.
type trigger int

const (
	onJump trigger = iota
	onFall
	onLand
	onHit
	onRecover
)

// transitions lists every legal state change. A trigger missing from a
// state's row leaves the state unchanged.
var transitions = map[State]map[trigger]State{
	StateRunning: {onJump: StateJumping, onFall: StateJumping, onHit: StateStunned},
	StateJumping: {onLand: StateRunning, onHit: StateStunned},
	StateStunned: {onRecover: StateRunning},
}

// Animation timing.
const (
	runFrames    = 4
	runFrameTime = 0.12 // seconds per frame at speed multiplier 1
	hitFrames    = 3
	hitFrameTime = 0.1
)

// Player is the squirrel. Pos is the top-left corner of its box.
type Player struct {
	Pos             core.Vec2
	Vel             core.Vec2
	W, H            float64
	State           State
	Grounded        bool
	Facing          int // 1 right, -1 left
	SpeedMultiplier float64
	StunTimer       float64

	animTime float64
	phys     config.PhysicsConfig
	stun     config.StunConfig
	groundY  float64
}

// NewPlayer creates a player standing on the ground at the start position.
func NewPlayer(cfg config.RunnerConfig) *Player {
	p := &Player{
		W:       cfg.Player.Width,
		H:       cfg.Player.Height,
		phys:    cfg.Physics,
		stun:    cfg.Stun,
		groundY: cfg.Screen.GroundY,
	}
	p.Reset(cfg.Player.StartX)
	return p
}

// Reset puts the player back on the ground at x.
func (p *Player) Reset(x float64) {
	p.Pos = core.Vec2{X: x, Y: p.groundY - p.H}
	p.Vel = core.Vec2{X: p.phys.BaseSpeed}
	p.State = StateRunning
	p.Grounded = true
	p.Facing = 1
	p.SpeedMultiplier = 1
	p.StunTimer = 0
	p.animTime = 0
}

// Box returns the player's collision box.
func (p *Player) Box() core.AABB {
	return core.NewAABB(p.Pos.X, p.Pos.Y, p.W, p.H)
}

func (p *Player) fire(t trigger) bool {
	next, ok := transitions[p.State][t]
	if !ok {
		return false
	}
	p.State = next
	return true
}

// Jump starts a jump. It is a no-op unless the player is running on a
// surface.
func (p *Player) Jump() bool {
	if p.State != StateRunning || !p.Grounded {
		return false
	}
	p.fire(onJump)
	p.Vel.Y = -p.phys.JumpImpulse
	p.Grounded = false
	return true
}

// Integrate advances speed and position by dt. steer is -1, 0 or 1.
func (p *Player) Integrate(dt float64, steer int) {
	if p.State == StateStunned {
		p.StunTimer -= dt
		if p.StunTimer <= 0 {
			p.StunTimer = 0
			p.fire(onRecover)
			if !p.Grounded {
				p.fire(onFall)
			}
		}
	} else {
		p.SpeedMultiplier = math.Min(p.phys.MaxSpeedMultiplier, p.SpeedMultiplier+p.phys.SpeedRamp*dt)
	}

	if steer != 0 {
		p.Facing = steer
	} else {
		p.Facing = 1
	}
	p.Vel.X = p.phys.BaseSpeed * p.SpeedMultiplier * (1 + float64(steer)*p.phys.SteerFactor)
	p.Pos.X += p.Vel.X * dt

	if p.Grounded {
		p.Vel.Y = 0
	} else {
		g := p.phys.Gravity
		if p.Pos.Y+p.H > p.groundY {
			g = p.phys.GapGravity
		}
		p.Pos.Y += p.Vel.Y*dt + 0.5*g*dt*dt
		p.Vel.Y = math.Min(p.Vel.Y+g*dt, p.phys.MaxFallSpeed)
	}

	p.animTime += dt
}

// Land rests the player on a surface whose top is at y.
func (p *Player) Land(top float64) {
	p.Pos.Y = top - p.H
	p.Vel.Y = 0
	p.Grounded = true
	p.fire(onLand)
}

// LoseSupport marks the player airborne after running off an edge.
func (p *Player) LoseSupport() {
	if !p.Grounded {
		return
	}
	p.Grounded = false
	p.fire(onFall)
}

// Stun applies a bush hit: the speed multiplier drops to the post-hit floor
// and the ramp pauses until the stun wears off.
func (p *Player) Stun() bool {
	if !p.fire(onHit) {
		return false
	}
	p.StunTimer = p.stun.Duration
	p.SpeedMultiplier = math.Min(p.SpeedMultiplier, p.stun.SpeedFloor)
	p.animTime = 0
	return true
}

// Sprite returns the sprite key and animation frame for the current state.
// The run cycle speeds up with the speed multiplier; the hit animation
// plays once and holds its last frame.
func (p *Player) Sprite() (string, int) {
	switch p.State {
	case StateStunned:
		return "squirrel_hit", min(hitFrames-1, int(p.animTime/hitFrameTime))
	case StateJumping:
		if p.Vel.Y < 0 {
			return "squirrel_jump", 0
		}
		return "squirrel_jump", 1
	default:
		frame := int(p.animTime*p.SpeedMultiplier/runFrameTime) % runFrames
		return "squirrel_run", frame
	}
}
