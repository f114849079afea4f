package runner

import "github.com/vovakirdan/squirrel-yarn/internal/games/runner/world"

// Pickup describes one collected yarn.
type Pickup struct {
	Tier  world.Tier
	Value int
	Color string
}

// Cause names what ended a run.
type Cause string

const (
	CauseNone Cause = ""
	CauseGap  Cause = "gap"
	CauseBush Cause = "bush"
)

// FrameEvents lists the notable transitions of one tick for the
// presentation layer to react to.
type FrameEvents struct {
	Landed            bool
	EnteredGap        bool
	HitBush           bool
	Scatter           int // yarn value knocked out by the hit
	Collected         []Pickup
	TierUnlocked      bool
	PassedMilestone   bool
	GameOver          bool
	Cause             Cause
	NewDistanceRecord bool
	NewStashRecord    bool
}

// Any reports whether anything happened this tick.
func (e FrameEvents) Any() bool {
	return e.Landed || e.EnteredGap || e.HitBush || len(e.Collected) > 0 ||
		e.TierUnlocked || e.PassedMilestone || e.GameOver
}

// CollectedValue sums the value of every pickup this tick.
func (e FrameEvents) CollectedValue() int {
	total := 0
	for _, p := range e.Collected {
		total += p.Value
	}
	return total
}
