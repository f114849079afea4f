// Package config provides YAML/TOML configuration loading, validation and
// difficulty management for the runner.
package config

// RunnerConfig contains every tunable the simulation reads. Nothing in the
// simulation hard-codes these values.
type RunnerConfig struct {
	Screen     ScreenConfig     `yaml:"screen" toml:"screen"`
	Physics    PhysicsConfig    `yaml:"physics" toml:"physics"`
	Player     PlayerConfig     `yaml:"player" toml:"player"`
	Stun       StunConfig       `yaml:"stun" toml:"stun"`
	Camera     CameraConfig     `yaml:"camera" toml:"camera"`
	Terrain    TerrainConfig    `yaml:"terrain" toml:"terrain"`
	Tiers      []TierConfig     `yaml:"tiers" toml:"tiers"`
	Scoring    ScoringConfig    `yaml:"scoring" toml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
	Sim        SimConfig        `yaml:"sim" toml:"sim"`
}

// ScreenConfig defines the world viewport in world units (pixels).
type ScreenConfig struct {
	Width         float64 `yaml:"width" toml:"width"`
	Height        float64 `yaml:"height" toml:"height"`
	GroundY       float64 `yaml:"ground_y" toml:"ground_y"`               // top of ground segments
	FallOutMargin float64 `yaml:"fall_out_margin" toml:"fall_out_margin"` // player top below ground_y + margin is out
}

// FallOutY returns the world y past which an unsupported player is lost.
func (s ScreenConfig) FallOutY() float64 {
	return s.GroundY + s.FallOutMargin
}

// PhysicsConfig defines player kinematics. Velocities are in px/s and
// accelerations in px/s^2; y grows downward.
type PhysicsConfig struct {
	Gravity            float64 `yaml:"gravity" toml:"gravity"`
	JumpImpulse        float64 `yaml:"jump_impulse" toml:"jump_impulse"` // upward speed at takeoff
	GapGravity         float64 `yaml:"gap_gravity" toml:"gap_gravity"`   // applied once below the ground line
	MaxFallSpeed       float64 `yaml:"max_fall_speed" toml:"max_fall_speed"`
	BaseSpeed          float64 `yaml:"base_speed" toml:"base_speed"`
	SpeedRamp          float64 `yaml:"speed_ramp" toml:"speed_ramp"` // multiplier gained per second
	MaxSpeedMultiplier float64 `yaml:"max_speed_multiplier" toml:"max_speed_multiplier"`
	SteerFactor        float64 `yaml:"steer_factor" toml:"steer_factor"` // fraction of speed added/removed by steering
}

// PlayerConfig defines the squirrel's box and start position.
type PlayerConfig struct {
	StartX float64 `yaml:"start_x" toml:"start_x"`
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// StunConfig defines the bush-hit penalty.
type StunConfig struct {
	Duration   float64 `yaml:"duration" toml:"duration"`       // seconds
	SpeedFloor float64 `yaml:"speed_floor" toml:"speed_floor"` // speed multiplier after a hit
}

// CameraConfig defines the follow camera.
type CameraConfig struct {
	Lerp           float64 `yaml:"lerp" toml:"lerp"`
	SlowAnchor     float64 `yaml:"slow_anchor" toml:"slow_anchor"` // player screen x fraction at speed 1.0
	FastAnchor     float64 `yaml:"fast_anchor" toml:"fast_anchor"` // player screen x fraction at max speed
	ShakeAmplitude float64 `yaml:"shake_amplitude" toml:"shake_amplitude"`
	ShakeDuration  float64 `yaml:"shake_duration" toml:"shake_duration"`
}

// TerrainConfig defines geometry shared by all generator rules.
type TerrainConfig struct {
	GroundDepth       float64   `yaml:"ground_depth" toml:"ground_depth"`
	RunMin            float64   `yaml:"run_min" toml:"run_min"`
	RunMax            float64   `yaml:"run_max" toml:"run_max"`
	PlatformThickness float64   `yaml:"platform_thickness" toml:"platform_thickness"`
	PlatformMinWidth  float64   `yaml:"platform_min_width" toml:"platform_min_width"`
	PlatformMaxWidth  float64   `yaml:"platform_max_width" toml:"platform_max_width"`
	StairSpacingMin   float64   `yaml:"stair_spacing_min" toml:"stair_spacing_min"` // horizontal space between stair steps
	StairSpacingMax   float64   `yaml:"stair_spacing_max" toml:"stair_spacing_max"`
	BridgeOverhang    float64   `yaml:"bridge_overhang" toml:"bridge_overhang"`
	StairStepsMin     int       `yaml:"stair_steps_min" toml:"stair_steps_min"`
	StairStepsMax     int       `yaml:"stair_steps_max" toml:"stair_steps_max"`
	MaxSurfaceRise    float64   `yaml:"max_surface_rise" toml:"max_surface_rise"` // highest platform top above ground
	BushWidth         float64   `yaml:"bush_width" toml:"bush_width"`
	BushHeight        float64   `yaml:"bush_height" toml:"bush_height"`
	BushHitboxScale   float64   `yaml:"bush_hitbox_scale" toml:"bush_hitbox_scale"`
	BushLead          float64   `yaml:"bush_lead" toml:"bush_lead"` // clear ground before a bush
	YarnSize          float64   `yaml:"yarn_size" toml:"yarn_size"`
	YarnHeights       []float64 `yaml:"yarn_heights" toml:"yarn_heights"` // above the surface top
	YarnSpacing       float64   `yaml:"yarn_spacing" toml:"yarn_spacing"`
	WarmupDistance    float64   `yaml:"warmup_distance" toml:"warmup_distance"` // meters of flat ground at start
	BushAfter         float64   `yaml:"bush_after" toml:"bush_after"`           // meters
	GapAfter          float64   `yaml:"gap_after" toml:"gap_after"`             // meters
	Lookahead         float64   `yaml:"lookahead" toml:"lookahead"`             // generate this far past the screen
	RetireMargin      float64   `yaml:"retire_margin" toml:"retire_margin"`
	SafetyFactor      float64   `yaml:"safety_factor" toml:"safety_factor"` // fraction of physical reach allowed
}

// TierConfig defines one yarn color tier. Tiers are listed basic first.
type TierConfig struct {
	Name      string   `yaml:"name" toml:"name"`
	Threshold float64  `yaml:"threshold" toml:"threshold"` // meters to unlock
	Value     int      `yaml:"value" toml:"value"`
	Weight    float64  `yaml:"weight" toml:"weight"`
	Colors    []string `yaml:"colors" toml:"colors"`
}

// ScoringConfig defines how travel maps to distance.
type ScoringConfig struct {
	PxPerMeter float64 `yaml:"px_per_meter" toml:"px_per_meter"`
}

// SimConfig defines frame pacing limits.
type SimConfig struct {
	MaxDT float64 `yaml:"max_dt" toml:"max_dt"` // dt clamp in seconds
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled" toml:"enabled"`
	InitialLevel float64           `yaml:"initial_level" toml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression" toml:"progression"`
	Easy         Band              `yaml:"easy" toml:"easy"`
	Hard         Band              `yaml:"hard" toml:"hard"`
}

// ProgressionConfig defines how difficulty increases over a run.
type ProgressionConfig struct {
	Type  string  `yaml:"type" toml:"type"`     // "distance", "time", or "none"
	MaxAt float64 `yaml:"max_at" toml:"max_at"` // meters or seconds at which max difficulty is reached
}

// Progression types.
const (
	ProgressionDistance = "distance"
	ProgressionTime     = "time"
	ProgressionNone     = "none"
)

// Band is the set of generator ranges for one difficulty level.
type Band struct {
	GapMin   float64     `yaml:"gap_min" toml:"gap_min"`
	GapMax   float64     `yaml:"gap_max" toml:"gap_max"`
	RiseMin  float64     `yaml:"rise_min" toml:"rise_min"` // bridge platform height above ground
	RiseMax  float64     `yaml:"rise_max" toml:"rise_max"`
	StepMin  float64     `yaml:"step_min" toml:"step_min"` // staircase height delta
	StepMax  float64     `yaml:"step_max" toml:"step_max"`
	BushRate float64     `yaml:"bush_rate" toml:"bush_rate"` // chance a bush run gets a second bush
	YarnRate float64     `yaml:"yarn_rate" toml:"yarn_rate"` // chance per yarn slot
	TierBias float64     `yaml:"tier_bias" toml:"tier_bias"` // extra weight toward higher tiers
	Weights  RuleWeights `yaml:"weights" toml:"weights"`
}

// RuleWeights are relative weights for the generator's segment rules.
type RuleWeights struct {
	GroundRun         float64 `yaml:"ground_run" toml:"ground_run"`
	GroundRunWithBush float64 `yaml:"ground_run_with_bush" toml:"ground_run_with_bush"`
	GapBridge         float64 `yaml:"gap_bridge" toml:"gap_bridge"`
	Staircase         float64 `yaml:"staircase" toml:"staircase"`
}

// Total returns the sum of all weights.
func (w RuleWeights) Total() float64 {
	return w.GroundRun + w.GroundRunWithBush + w.GapBridge + w.Staircase
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset. Empty and unknown values
// yield "" which leaves the config untouched.
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}
