package config

import (
	"math"
	"testing"
)

func TestDifficultyLevel(t *testing.T) {
	cfg := DefaultRunnerConfig().Difficulty
	cfg.Progression = ProgressionConfig{Type: ProgressionDistance, MaxAt: 1000}

	tests := []struct {
		name     string
		initial  float64
		distance float64
		elapsed  float64
		expected float64
	}{
		{"start", 0, 0, 0, 0},
		{"halfway", 0, 500, 999, 0.5},
		{"capped", 0, 5000, 0, 1},
		{"initial offset", 0.3, 500, 0, 0.65},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := cfg
			c.InitialLevel = tc.initial
			got := NewDifficultyManager(c).Level(tc.distance, tc.elapsed)
			if math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("Level(%v, %v) = %v, expected %v", tc.distance, tc.elapsed, got, tc.expected)
			}
		})
	}
}

func TestDifficultyLevelByTime(t *testing.T) {
	cfg := DefaultRunnerConfig().Difficulty
	cfg.Progression = ProgressionConfig{Type: ProgressionTime, MaxAt: 60}
	d := NewDifficultyManager(cfg)

	if got := d.Level(10000, 30); got != 0.5 {
		t.Errorf("time progression should ignore distance, got %v", got)
	}
}

func TestDifficultyDisabled(t *testing.T) {
	cfg := DefaultRunnerConfig().Difficulty
	cfg.InitialLevel = 0.4
	d := NewDifficultyManager(cfg)
	d.SetEnabled(false)

	if d.IsEnabled() {
		t.Error("IsEnabled() should be false")
	}
	if got := d.Level(99999, 99999); got != 0.4 {
		t.Errorf("disabled Level() = %v, expected 0.4", got)
	}
}

func TestBandInterpolation(t *testing.T) {
	cfg := DefaultRunnerConfig().Difficulty
	d := NewDifficultyManager(cfg)

	easy := d.Band(0, 0)
	if easy.GapMin != cfg.Easy.GapMin || easy.GapMax != cfg.Easy.GapMax {
		t.Errorf("Band at start should equal easy band, got %+v", easy)
	}

	hard := d.Band(cfg.Progression.MaxAt*2, 0)
	if hard.GapMax != cfg.Hard.GapMax || hard.Weights != cfg.Hard.Weights {
		t.Errorf("Band past max_at should equal hard band, got %+v", hard)
	}

	mid := d.Band(cfg.Progression.MaxAt/2, 0)
	want := (cfg.Easy.GapMax + cfg.Hard.GapMax) / 2
	if math.Abs(mid.GapMax-want) > 1e-9 {
		t.Errorf("mid band GapMax = %v, expected %v", mid.GapMax, want)
	}

	// Pure: same inputs, same band
	if d.Band(321, 12) != d.Band(321, 12) {
		t.Error("Band() should be deterministic")
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultRunnerConfig()
	ApplyPreset(&cfg, DifficultyHard)
	if !cfg.Difficulty.Enabled || cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard preset not applied: %+v", cfg.Difficulty)
	}

	ApplyPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}

	if ParsePreset("bogus") != "" {
		t.Error("unknown preset should parse to empty")
	}
}
