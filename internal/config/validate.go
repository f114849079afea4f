package config

import (
	"fmt"
	"math"
)

// ConfigError reports a missing or invalid tunable. A run must not start
// with a config that fails validation.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// TierCount is the number of yarn tiers the runner expects.
const TierCount = 4

// Validate checks every tunable and returns the first problem as a
// *ConfigError.
func (c RunnerConfig) Validate() error {
	checks := []struct {
		field string
		val   float64
	}{
		{"screen.width", c.Screen.Width},
		{"screen.height", c.Screen.Height},
		{"screen.ground_y", c.Screen.GroundY},
		{"screen.fall_out_margin", c.Screen.FallOutMargin},
		{"physics.gravity", c.Physics.Gravity},
		{"physics.jump_impulse", c.Physics.JumpImpulse},
		{"physics.gap_gravity", c.Physics.GapGravity},
		{"physics.max_fall_speed", c.Physics.MaxFallSpeed},
		{"physics.base_speed", c.Physics.BaseSpeed},
		{"physics.max_speed_multiplier", c.Physics.MaxSpeedMultiplier},
		{"player.width", c.Player.Width},
		{"player.height", c.Player.Height},
		{"stun.duration", c.Stun.Duration},
		{"stun.speed_floor", c.Stun.SpeedFloor},
		{"camera.lerp", c.Camera.Lerp},
		{"terrain.ground_depth", c.Terrain.GroundDepth},
		{"terrain.run_min", c.Terrain.RunMin},
		{"terrain.run_max", c.Terrain.RunMax},
		{"terrain.platform_thickness", c.Terrain.PlatformThickness},
		{"terrain.platform_min_width", c.Terrain.PlatformMinWidth},
		{"terrain.platform_max_width", c.Terrain.PlatformMaxWidth},
		{"terrain.stair_spacing_min", c.Terrain.StairSpacingMin},
		{"terrain.stair_spacing_max", c.Terrain.StairSpacingMax},
		{"terrain.max_surface_rise", c.Terrain.MaxSurfaceRise},
		{"terrain.bush_width", c.Terrain.BushWidth},
		{"terrain.bush_height", c.Terrain.BushHeight},
		{"terrain.bush_hitbox_scale", c.Terrain.BushHitboxScale},
		{"terrain.yarn_size", c.Terrain.YarnSize},
		{"terrain.yarn_spacing", c.Terrain.YarnSpacing},
		{"terrain.safety_factor", c.Terrain.SafetyFactor},
		{"scoring.px_per_meter", c.Scoring.PxPerMeter},
		{"sim.max_dt", c.Sim.MaxDT},
	}
	for _, chk := range checks {
		if math.IsNaN(chk.val) || chk.val <= 0 {
			return invalid(chk.field, "must be positive, got %v", chk.val)
		}
	}

	nonNegative := []struct {
		field string
		val   float64
	}{
		{"player.start_x", c.Player.StartX},
		{"physics.speed_ramp", c.Physics.SpeedRamp},
		{"camera.shake_amplitude", c.Camera.ShakeAmplitude},
		{"camera.shake_duration", c.Camera.ShakeDuration},
		{"terrain.bridge_overhang", c.Terrain.BridgeOverhang},
		{"terrain.bush_lead", c.Terrain.BushLead},
		{"terrain.warmup_distance", c.Terrain.WarmupDistance},
		{"terrain.bush_after", c.Terrain.BushAfter},
		{"terrain.gap_after", c.Terrain.GapAfter},
		{"terrain.lookahead", c.Terrain.Lookahead},
		{"terrain.retire_margin", c.Terrain.RetireMargin},
	}
	for _, chk := range nonNegative {
		if math.IsNaN(chk.val) || chk.val < 0 {
			return invalid(chk.field, "must not be negative, got %v", chk.val)
		}
	}

	if c.Screen.GroundY >= c.Screen.Height {
		return invalid("screen.ground_y", "must be above the screen bottom (%v)", c.Screen.Height)
	}
	if c.Physics.MaxSpeedMultiplier < 1 {
		return invalid("physics.max_speed_multiplier", "must be at least 1.0, got %v", c.Physics.MaxSpeedMultiplier)
	}
	if c.Physics.SteerFactor < 0 || c.Physics.SteerFactor >= 1 {
		return invalid("physics.steer_factor", "must be in [0, 1), got %v", c.Physics.SteerFactor)
	}
	if c.Stun.SpeedFloor < 1 || c.Stun.SpeedFloor > c.Physics.MaxSpeedMultiplier {
		return invalid("stun.speed_floor", "must be in [1, max_speed_multiplier], got %v", c.Stun.SpeedFloor)
	}
	if c.Camera.SlowAnchor < 0 || c.Camera.SlowAnchor > 1 {
		return invalid("camera.slow_anchor", "must be in [0, 1], got %v", c.Camera.SlowAnchor)
	}
	if c.Camera.FastAnchor < 0 || c.Camera.FastAnchor > 1 {
		return invalid("camera.fast_anchor", "must be in [0, 1], got %v", c.Camera.FastAnchor)
	}
	if c.Terrain.RunMin > c.Terrain.RunMax {
		return invalid("terrain.run_min", "exceeds run_max (%v > %v)", c.Terrain.RunMin, c.Terrain.RunMax)
	}
	if c.Terrain.PlatformMinWidth > c.Terrain.PlatformMaxWidth {
		return invalid("terrain.platform_min_width", "exceeds platform_max_width")
	}
	if c.Terrain.StairSpacingMin > c.Terrain.StairSpacingMax {
		return invalid("terrain.stair_spacing_min", "exceeds stair_spacing_max (%v > %v)", c.Terrain.StairSpacingMin, c.Terrain.StairSpacingMax)
	}
	if c.Terrain.StairStepsMin < 1 || c.Terrain.StairStepsMin > c.Terrain.StairStepsMax {
		return invalid("terrain.stair_steps_min", "must be in [1, stair_steps_max]")
	}
	if c.Terrain.BushHitboxScale > 1 {
		return invalid("terrain.bush_hitbox_scale", "must not exceed 1, got %v", c.Terrain.BushHitboxScale)
	}
	if c.Terrain.SafetyFactor > 1 {
		return invalid("terrain.safety_factor", "must not exceed 1, got %v", c.Terrain.SafetyFactor)
	}
	if len(c.Terrain.YarnHeights) == 0 {
		return invalid("terrain.yarn_heights", "missing")
	}
	for i, h := range c.Terrain.YarnHeights {
		if h <= 0 {
			return invalid(fmt.Sprintf("terrain.yarn_heights[%d]", i), "must be positive, got %v", h)
		}
	}

	if err := c.validateTiers(); err != nil {
		return err
	}
	return c.Difficulty.validate()
}

func (c RunnerConfig) validateTiers() error {
	if len(c.Tiers) != TierCount {
		return invalid("tiers", "expected %d tiers, got %d", TierCount, len(c.Tiers))
	}
	if c.Tiers[0].Threshold != 0 {
		return invalid("tiers[0].threshold", "basic tier must unlock at 0, got %v", c.Tiers[0].Threshold)
	}
	for i, t := range c.Tiers {
		field := fmt.Sprintf("tiers[%d]", i)
		if t.Value <= 0 {
			return invalid(field+".value", "must be positive, got %d", t.Value)
		}
		if t.Weight < 0 {
			return invalid(field+".weight", "must not be negative, got %v", t.Weight)
		}
		if len(t.Colors) == 0 {
			return invalid(field+".colors", "missing")
		}
		if i > 0 && t.Threshold < c.Tiers[i-1].Threshold {
			return invalid(field+".threshold", "must not decrease (%v < %v)", t.Threshold, c.Tiers[i-1].Threshold)
		}
	}
	if c.Tiers[0].Weight <= 0 {
		return invalid("tiers[0].weight", "basic tier must have positive weight")
	}
	return nil
}

func (d DifficultyConfig) validate() error {
	switch d.Progression.Type {
	case ProgressionDistance, ProgressionTime, ProgressionNone:
	default:
		return invalid("difficulty.progression.type", "unknown type %q", d.Progression.Type)
	}
	if d.InitialLevel < 0 || d.InitialLevel > 1 {
		return invalid("difficulty.initial_level", "must be in [0, 1], got %v", d.InitialLevel)
	}
	if d.Progression.Type != ProgressionNone && d.Progression.MaxAt <= 0 {
		return invalid("difficulty.progression.max_at", "must be positive, got %v", d.Progression.MaxAt)
	}
	if err := d.Easy.validate("difficulty.easy"); err != nil {
		return err
	}
	return d.Hard.validate("difficulty.hard")
}

func (b Band) validate(prefix string) error {
	ranges := []struct {
		field    string
		min, max float64
	}{
		{"gap", b.GapMin, b.GapMax},
		{"rise", b.RiseMin, b.RiseMax},
		{"step", b.StepMin, b.StepMax},
	}
	for _, r := range ranges {
		if r.min <= 0 {
			return invalid(prefix+"."+r.field+"_min", "must be positive, got %v", r.min)
		}
		if r.min > r.max {
			return invalid(prefix+"."+r.field+"_min", "exceeds %s_max (%v > %v)", r.field, r.min, r.max)
		}
	}
	for field, p := range map[string]float64{"bush_rate": b.BushRate, "yarn_rate": b.YarnRate} {
		if p < 0 || p > 1 {
			return invalid(prefix+"."+field, "must be in [0, 1], got %v", p)
		}
	}
	if b.TierBias < 0 {
		return invalid(prefix+".tier_bias", "must not be negative, got %v", b.TierBias)
	}
	w := b.Weights
	if w.GroundRun < 0 || w.GroundRunWithBush < 0 || w.GapBridge < 0 || w.Staircase < 0 {
		return invalid(prefix+".weights", "must not be negative")
	}
	if w.Total() <= 0 {
		return invalid(prefix+".weights", "at least one rule needs a positive weight")
	}
	return nil
}
