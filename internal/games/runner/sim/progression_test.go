package sim

import (
	"testing"

	"github.com/vovakirdan/squirrel-yarn/internal/config"
	"github.com/vovakirdan/squirrel-yarn/internal/games/runner/world"
)

func newTestProgression() *Progression {
	cfg := config.DefaultRunnerConfig()
	p := NewProgression(cfg)
	p.Reset(cfg.Player.StartX, 0, 0)
	return p
}

// at returns the world x for d meters.
func at(d float64) float64 {
	cfg := config.DefaultRunnerConfig()
	return cfg.Player.StartX + d*cfg.Scoring.PxPerMeter
}

func TestHitHalvesStash(t *testing.T) {
	tests := []struct {
		before int
		after  int
	}{
		{1, 0},
		{2, 1},
		{7, 3},
		{10, 5},
		{101, 50},
	}
	for _, tt := range tests {
		p := newTestProgression()
		p.Collect(tt.before)
		lost, over := p.Hit()
		if over {
			t.Fatalf("stash %d: hit ended the run", tt.before)
		}
		if p.Stash != tt.after || lost != tt.before-tt.after {
			t.Errorf("stash %d: got %d (lost %d), want %d", tt.before, p.Stash, lost, tt.after)
		}
	}
}

func TestHitWithEmptyStashEndsRun(t *testing.T) {
	p := newTestProgression()
	p.Advance(at(300))
	tier := p.Tier

	_, over := p.Hit()
	if !over {
		t.Fatal("hit with empty stash should end the run")
	}
	if p.Tier != tier || p.Stash != 0 {
		t.Error("a fatal hit should not change progression")
	}
}

func TestTierUnlocksByDistance(t *testing.T) {
	tests := []struct {
		d    float64
		want world.Tier
	}{
		{0, world.TierBasic},
		{99.9, world.TierBasic},
		{100, world.TierMid},
		{249, world.TierMid},
		{250, world.TierLate},
		{500, world.TierRare},
		{5000, world.TierRare},
	}
	for _, tt := range tests {
		p := newTestProgression()
		p.Advance(at(tt.d))
		if p.Tier != tt.want {
			t.Errorf("distance %v: tier %s, want %s", tt.d, p.Tier, tt.want)
		}
	}
}

func TestTierReclimbsAfterHit(t *testing.T) {
	p := newTestProgression()
	p.Collect(10)
	p.Advance(at(300))
	if p.Tier != world.TierLate {
		t.Fatalf("tier = %s, want late", p.Tier)
	}

	p.Hit()
	if p.Tier != world.TierBasic {
		t.Fatalf("tier after hit = %s, want basic", p.Tier)
	}
	for d := 300.0; d < 399; d += 5 {
		p.Advance(at(d))
		if p.Tier != world.TierBasic {
			t.Fatalf("distance %v: tier %s before re-crossing mid", d, p.Tier)
		}
	}
	if !p.Advance(at(400)) || p.Tier != world.TierMid {
		t.Errorf("tier at 400 = %s, want mid unlock", p.Tier)
	}
}

func TestDistanceNeverDecreases(t *testing.T) {
	p := newTestProgression()
	p.Collect(4)
	xs := []float64{at(10), at(50), at(40), at(45), at(60)}
	prev := 0.0
	for i, x := range xs {
		p.Advance(x)
		if i == 2 {
			p.Hit()
		}
		if p.Distance < prev {
			t.Fatalf("distance fell from %v to %v", prev, p.Distance)
		}
		prev = p.Distance
	}
	if p.Distance != 60 {
		t.Errorf("distance = %v, want 60", p.Distance)
	}
}

func TestRecords(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	p := NewProgression(cfg)
	p.Reset(cfg.Player.StartX, 10, 100)

	p.Collect(5)
	p.Advance(at(150))
	if p.NewStashRecord() {
		t.Error("stash 5 should not beat 10")
	}
	if !p.NewDistanceRecord() {
		t.Error("150 m should beat 100 m")
	}

	p.Collect(6)
	if !p.NewStashRecord() {
		t.Error("stash 11 should beat 10")
	}
	if p.Collected != 11 {
		t.Errorf("collected = %d, want 11", p.Collected)
	}
}
