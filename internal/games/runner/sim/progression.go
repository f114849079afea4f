package sim

import (
	"github.com/vovakirdan/squirrel-yarn/internal/config"
	"github.com/vovakirdan/squirrel-yarn/internal/games/runner/world"
)

// Progression tracks one run's stash, distance and unlocked tier against
// the persisted bests loaded at run start.
type Progression struct {
	Stash        int
	Distance     float64 // meters, never decreases within a run
	Tier         world.Tier
	BestStash    int
	BestDistance float64
	Collected    int // yarn value picked up this run, before any halving
	Hits         int

	tierBase float64 // distance of the last bush hit; tiers re-climb from here
	startX   float64
	ppm      float64
	tiers    []config.TierConfig
}

// NewProgression creates progression for a run starting at startX.
func NewProgression(cfg config.RunnerConfig) *Progression {
	return &Progression{
		ppm:    cfg.Scoring.PxPerMeter,
		tiers:  cfg.Tiers,
		startX: cfg.Player.StartX,
	}
}

// Reset starts a new run with the given persisted bests.
func (p *Progression) Reset(startX float64, bestStash int, bestDistance float64) {
	*p = Progression{
		BestStash:    bestStash,
		BestDistance: bestDistance,
		startX:       startX,
		ppm:          p.ppm,
		tiers:        p.tiers,
	}
}

// TierFor returns the highest tier whose threshold is at most d meters.
func (p *Progression) TierFor(d float64) world.Tier {
	tier := world.TierBasic
	for i, t := range p.tiers {
		if d >= t.Threshold {
			tier = world.Tier(i)
		}
	}
	return tier
}

// Advance updates distance from the player's x and recomputes the tier.
// It returns true when a new tier unlocked this call.
func (p *Progression) Advance(playerX float64) bool {
	if d := (playerX - p.startX) / p.ppm; d > p.Distance {
		p.Distance = d
	}
	prev := p.Tier
	p.Tier = p.TierFor(p.Distance - p.tierBase)
	return p.Tier > prev
}

// Collect adds a pickup's value to the stash.
func (p *Progression) Collect(value int) {
	p.Stash += value
	p.Collected += value
}

// Hit applies a bush hit. With an empty stash the run is over and nothing
// else changes. Otherwise the stash halves, rounding down, and the tier
// drops to basic until it re-climbs from the current distance.
func (p *Progression) Hit() (lost int, gameOver bool) {
	if p.Stash == 0 {
		return 0, true
	}
	before := p.Stash
	p.Stash /= 2
	p.Hits++
	p.tierBase = p.Distance
	p.Tier = world.TierBasic
	return before - p.Stash, false
}

// NewStashRecord reports whether the run's stash beats the stored best.
func (p *Progression) NewStashRecord() bool {
	return p.Stash > p.BestStash
}

// NewDistanceRecord reports whether the run's distance beats the stored best.
func (p *Progression) NewDistanceRecord() bool {
	return p.Distance > p.BestDistance
}
