package terrain

import (
	"github.com/vovakirdan/squirrel-yarn/internal/core"
	"github.com/vovakirdan/squirrel-yarn/internal/games/runner/world"
)

// Rule names a segment template.
type Rule int

const (
	RuleGroundRun Rule = iota
	RuleGroundRunWithBush
	RuleGapBridge
	RuleStaircase
)

// String returns the config name of the rule.
func (r Rule) String() string {
	switch r {
	case RuleGroundRun:
		return "ground_run"
	case RuleGroundRunWithBush:
		return "ground_run_with_bush"
	case RuleGapBridge:
		return "gap_bridge"
	case RuleStaircase:
		return "staircase"
	default:
		return "unknown"
	}
}

// Piece is one entity of a chunk, not yet spawned.
type Piece struct {
	Kind   world.Kind
	Box    core.AABB
	Hitbox core.AABB      // bushes only
	Yarn   world.YarnData // yarn only
}

// Chunk is one generated segment unit covering [StartX, EndX).
type Chunk struct {
	Rule     Rule
	StartX   float64
	EndX     float64
	Fallback bool // emitted in place of an infeasible chunk
	Pieces   []Piece
}

// Grounds returns the ground pieces in x order.
func (c Chunk) Grounds() []core.AABB {
	return c.boxes(world.KindGround)
}

// Platforms returns the platform pieces in emission order.
func (c Chunk) Platforms() []core.AABB {
	return c.boxes(world.KindPlatform)
}

// Gaps returns the gap intervals in x order.
func (c Chunk) Gaps() []core.AABB {
	return c.boxes(world.KindGap)
}

func (c Chunk) boxes(kind world.Kind) []core.AABB {
	var out []core.AABB
	for _, p := range c.Pieces {
		if p.Kind == kind {
			out = append(out, p.Box)
		}
	}
	return out
}

func (c *Chunk) add(p Piece) {
	c.Pieces = append(c.Pieces, p)
}
