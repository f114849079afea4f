// Package world holds the runner's entity model: terrain segments, gaps,
// bushes and yarn pickups stored in a donburi world with stable ids.
package world

import (
	"github.com/yohamta/donburi"

	"github.com/vovakirdan/squirrel-yarn/internal/core"
)

// Kind identifies what an entity is.
type Kind int

const (
	KindGround Kind = iota
	KindGap
	KindPlatform
	KindBush
	KindYarn
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindGround:
		return "ground"
	case KindGap:
		return "gap"
	case KindPlatform:
		return "platform"
	case KindBush:
		return "bush"
	case KindYarn:
		return "yarn"
	default:
		return "unknown"
	}
}

// Solid reports whether the kind supports standing.
func (k Kind) Solid() bool {
	return k == KindGround || k == KindPlatform
}

// Tier is a yarn color tier. Higher tiers are worth more and unlock later.
type Tier int

const (
	TierBasic Tier = iota
	TierMid
	TierLate
	TierRare
)

// String returns a human-readable name for the tier.
func (t Tier) String() string {
	switch t {
	case TierBasic:
		return "basic"
	case TierMid:
		return "mid"
	case TierLate:
		return "late"
	case TierRare:
		return "rare"
	default:
		return "unknown"
	}
}

// BodyData is the collidable box shared by every entity.
type BodyData struct {
	Box  core.AABB
	Kind Kind
}

// BushData is the obstacle state. Hitbox is smaller than the drawn box.
type BushData struct {
	Hitbox   core.AABB
	Consumed bool
}

// YarnData is a pickup.
type YarnData struct {
	Tier      Tier
	Value     int
	Color     string
	Collected bool
}

var (
	Body = donburi.NewComponentType[BodyData]()
	Bush = donburi.NewComponentType[BushData]()
	Yarn = donburi.NewComponentType[YarnData]()
)
