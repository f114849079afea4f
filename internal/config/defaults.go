package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultYAML returns the embedded default configuration.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}

// DefaultRunnerConfig returns the hard-coded configuration used when the
// embedded YAML cannot be parsed. It mirrors defaults/runner.yaml.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Screen: ScreenConfig{
			Width:         800,
			Height:        600,
			GroundY:       520,
			FallOutMargin: 60,
		},
		Physics: PhysicsConfig{
			Gravity:            1600,
			JumpImpulse:        800,
			GapGravity:         4000,
			MaxFallSpeed:       1400,
			BaseSpeed:          220,
			SpeedRamp:          0.04,
			MaxSpeedMultiplier: 3.0,
			SteerFactor:        0.25,
		},
		Player: PlayerConfig{
			StartX: 100,
			Width:  40,
			Height: 50,
		},
		Stun: StunConfig{
			Duration:   1.0,
			SpeedFloor: 1.25,
		},
		Camera: CameraConfig{
			Lerp:           5.0,
			SlowAnchor:     0.4,
			FastAnchor:     0.2,
			ShakeAmplitude: 8,
			ShakeDuration:  0.35,
		},
		Terrain: TerrainConfig{
			GroundDepth:       80,
			RunMin:            420,
			RunMax:            800,
			PlatformThickness: 16,
			PlatformMinWidth:  120,
			PlatformMaxWidth:  200,
			StairSpacingMin:   32,
			StairSpacingMax:   96,
			BridgeOverhang:    24,
			StairStepsMin:     2,
			StairStepsMax:     3,
			MaxSurfaceRise:    300,
			BushWidth:         48,
			BushHeight:        40,
			BushHitboxScale:   0.667,
			BushLead:          120,
			YarnSize:          24,
			YarnHeights:       []float64{60, 90, 120},
			YarnSpacing:       96,
			WarmupDistance:    40,
			BushAfter:         60,
			GapAfter:          100,
			Lookahead:         400,
			RetireMargin:      200,
			SafetyFactor:      0.9,
		},
		Tiers: []TierConfig{
			{Name: "basic", Threshold: 0, Value: 1, Weight: 1.0, Colors: []string{"red", "green", "blue"}},
			{Name: "mid", Threshold: 100, Value: 2, Weight: 0.5, Colors: []string{"cyan", "magenta", "yellow", "black"}},
			{Name: "late", Threshold: 250, Value: 3, Weight: 0.3, Colors: []string{"orange", "purple", "lime", "teal", "pink", "brown"}},
			{Name: "rare", Threshold: 500, Value: 5, Weight: 0.05, Colors: []string{"rainbow"}},
		},
		Scoring: ScoringConfig{
			PxPerMeter: 10,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  ProgressionDistance,
				MaxAt: 1500,
			},
			Easy: Band{
				GapMin: 64, GapMax: 96,
				RiseMin: 72, RiseMax: 96,
				StepMin: 40, StepMax: 60,
				BushRate: 0.0,
				YarnRate: 0.6,
				TierBias: 0.0,
				Weights:  RuleWeights{GroundRun: 5, GroundRunWithBush: 3, GapBridge: 1.5, Staircase: 1.5},
			},
			Hard: Band{
				GapMin: 96, GapMax: 144,
				RiseMin: 96, RiseMax: 160,
				StepMin: 60, StepMax: 110,
				BushRate: 0.35,
				YarnRate: 0.45,
				TierBias: 1.5,
				Weights:  RuleWeights{GroundRun: 2, GroundRunWithBush: 4, GapBridge: 3, Staircase: 2},
			},
		},
		Sim: SimConfig{
			MaxDT: 0.0333,
		},
	}
}
