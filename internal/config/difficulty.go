package config

import "math"

// DifficultyManager maps run progress to a difficulty level and to the
// generator band for that level. It holds no per-run state, so the same
// inputs always give the same band.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != ProgressionNone
}

// Level returns the difficulty level (0.0 to 1.0) for the given distance in
// meters and elapsed run time in seconds.
func (d *DifficultyManager) Level(distance, elapsed float64) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := d.cfg.Progression.MaxAt
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case ProgressionDistance:
		progress = distance / maxAt
	case ProgressionTime:
		progress = elapsed / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Band returns the generator ranges for the given progress: the easy band
// interpolated toward the hard band by Level.
func (d *DifficultyManager) Band(distance, elapsed float64) Band {
	return LerpBand(d.cfg.Easy, d.cfg.Hard, d.Level(distance, elapsed))
}

// LerpBand interpolates every field of two bands by t in [0, 1].
func LerpBand(a, b Band, t float64) Band {
	t = clampF(t, 0, 1)
	return Band{
		GapMin:   lerp(a.GapMin, b.GapMin, t),
		GapMax:   lerp(a.GapMax, b.GapMax, t),
		RiseMin:  lerp(a.RiseMin, b.RiseMin, t),
		RiseMax:  lerp(a.RiseMax, b.RiseMax, t),
		StepMin:  lerp(a.StepMin, b.StepMin, t),
		StepMax:  lerp(a.StepMax, b.StepMax, t),
		BushRate: lerp(a.BushRate, b.BushRate, t),
		YarnRate: lerp(a.YarnRate, b.YarnRate, t),
		TierBias: lerp(a.TierBias, b.TierBias, t),
		Weights: RuleWeights{
			GroundRun:         lerp(a.Weights.GroundRun, b.Weights.GroundRun, t),
			GroundRunWithBush: lerp(a.Weights.GroundRunWithBush, b.Weights.GroundRunWithBush, t),
			GapBridge:         lerp(a.Weights.GapBridge, b.Weights.GapBridge, t),
			Staircase:         lerp(a.Weights.Staircase, b.Weights.Staircase, t),
		},
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
