package terrain

import (
	"fmt"
	"math"

	"github.com/vovakirdan/squirrel-yarn/internal/config"
)

// Physics is the closed-form jump model the generator plans against. It
// mirrors the player integrator: constant gravity, fixed takeoff impulse,
// constant horizontal speed while airborne.
type Physics struct {
	Gravity  float64
	Impulse  float64
	MinSpeed float64 // slowest possible run: multiplier 1.0 with full brake
	MaxSpeed float64 // fastest possible run: max multiplier with full push
	PlayerW  float64
	Safety   float64
}

// NewPhysics derives the jump model from config.
func NewPhysics(cfg config.RunnerConfig) Physics {
	p := cfg.Physics
	return Physics{
		Gravity:  p.Gravity,
		Impulse:  p.JumpImpulse,
		MinSpeed: p.BaseSpeed * (1 - p.SteerFactor),
		MaxSpeed: p.BaseSpeed * p.MaxSpeedMultiplier * (1 + p.SteerFactor),
		PlayerW:  cfg.Player.Width,
		Safety:   cfg.Terrain.SafetyFactor,
	}
}

// Apex returns the highest rise of a jump.
func (p Physics) Apex() float64 {
	return p.Impulse * p.Impulse / (2 * p.Gravity)
}

// Airtime returns how long a jump takes to come back down to a surface rise
// units above the takeoff surface. Negative rise means a lower surface.
// ok is false when the surface is above the apex.
func (p Physics) Airtime(rise float64) (t float64, ok bool) {
	disc := p.Impulse*p.Impulse - 2*p.Gravity*rise
	if disc < 0 {
		return 0, false
	}
	return (p.Impulse + math.Sqrt(disc)) / p.Gravity, true
}

// Reach returns the horizontal distance covered at MinSpeed before landing
// on a surface rise units higher. Zero when unreachable.
func (p Physics) Reach(rise float64) float64 {
	t, ok := p.Airtime(rise)
	if !ok {
		return 0
	}
	return p.MinSpeed * t
}

// Overshoot returns the horizontal distance covered at MaxSpeed during a
// level jump.
func (p Physics) Overshoot() float64 {
	t, _ := p.Airtime(0)
	return p.MaxSpeed * t
}

// RiseTime returns how long after takeoff the player's feet first reach
// height h. ok is false above the apex.
func (p Physics) RiseTime(h float64) (t float64, ok bool) {
	disc := p.Impulse*p.Impulse - 2*p.Gravity*h
	if disc < 0 {
		return 0, false
	}
	return (p.Impulse - math.Sqrt(disc)) / p.Gravity, true
}

// TimeAbove returns how long a jump keeps the player's feet above height h.
func (p Physics) TimeAbove(h float64) float64 {
	disc := p.Impulse*p.Impulse - 2*p.Gravity*h
	if disc <= 0 {
		return 0
	}
	return 2 * math.Sqrt(disc) / p.Gravity
}

// GapCap is the widest gap the generator may emit.
func (p Physics) GapCap() float64 {
	return p.Safety * p.Reach(0)
}

// RiseCap is the highest single climb the generator may ask for.
func (p Physics) RiseCap() float64 {
	return p.Safety * p.Apex()
}

// StepSpacingCap is the widest horizontal spacing to a surface rise higher.
func (p Physics) StepSpacingCap(rise float64) float64 {
	return p.Safety * p.Reach(rise)
}

// ClearsBush reports whether a jump at MinSpeed passes over an obstacle of
// the given width whose top is height above the ground.
func (p Physics) ClearsBush(width, height float64) bool {
	if height > p.RiseCap() {
		return false
	}
	return p.MinSpeed*p.TimeAbove(height) >= width+p.PlayerW
}

// StunRunway is the ground a stunned player may cover after a hit before it
// can jump again.
func StunRunway(cfg config.RunnerConfig) float64 {
	p := cfg.Physics
	fastest := p.BaseSpeed * cfg.Stun.SpeedFloor * (1 + p.SteerFactor)
	return cfg.Stun.Duration*fastest + cfg.Player.Width
}

// InvariantViolation reports a chunk that would demand more than the player
// can physically do. It never reaches the tick loop: the generator logs it
// and emits a flat run instead.
type InvariantViolation struct {
	Rule  Rule
	What  string
	Leap  float64
	Limit float64
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("terrain: %s: %s %.1f exceeds limit %.1f", e.Rule, e.What, e.Leap, e.Limit)
}
