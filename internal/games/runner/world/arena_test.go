package world

import (
	"testing"

	"github.com/yohamta/donburi"

	"github.com/vovakirdan/squirrel-yarn/internal/collide"
	"github.com/vovakirdan/squirrel-yarn/internal/core"
)

func newTestArena() *Arena {
	return NewArena(0, -600, 8000, 1800, 64)
}

func TestArenaRetireFrontEviction(t *testing.T) {
	a := newTestArena()
	g1 := a.AddSegment(KindGround, core.NewAABB(0, 520, 400, 80))
	gap := a.AddSegment(KindGap, core.NewAABB(400, 520, 100, 80))
	// Platform inserted after the gap but ending earlier than the next ground
	p := a.AddSegment(KindPlatform, core.NewAABB(380, 440, 140, 16))
	g2 := a.AddSegment(KindGround, core.NewAABB(500, 520, 600, 80))

	if a.Len() != 4 {
		t.Fatalf("Len() = %d, expected 4", a.Len())
	}

	if n := a.RetireBefore(450); n != 1 {
		t.Errorf("RetireBefore(450) removed %d, expected 1", n)
	}
	if a.Valid(g1) {
		t.Error("first ground should be retired")
	}
	if !a.Valid(gap) || !a.Valid(p) || !a.Valid(g2) {
		t.Error("entities ending after 450 must survive")
	}

	if n := a.RetireBefore(530); n != 2 {
		t.Errorf("RetireBefore(530) removed %d, expected gap and platform", n)
	}
	if !a.Valid(g2) {
		t.Error("second ground should survive")
	}
}

func TestArenaRemoveSkipsStaleSlots(t *testing.T) {
	a := newTestArena()
	y := a.AddYarn(core.NewAABB(100, 400, 24, 24), YarnData{Tier: TierRare, Value: 5, Color: "rainbow"})
	g := a.AddSegment(KindGround, core.NewAABB(0, 520, 800, 80))

	a.Remove(y)
	if a.Valid(y) {
		t.Fatal("removed yarn still valid")
	}
	if got := a.Query(core.NewAABB(90, 390, 50, 50), collide.TagYarn); len(got) != 0 {
		t.Errorf("removed yarn still in broadphase: %v", got)
	}

	var seen []donburi.Entity
	a.Each(func(e donburi.Entity, _ *BodyData) { seen = append(seen, e) })
	if len(seen) != 1 || seen[0] != g {
		t.Errorf("Each() = %v, expected only ground", seen)
	}

	// Stale slot at the front is dropped without counting
	if n := a.RetireBefore(200); n != 0 {
		t.Errorf("RetireBefore(200) = %d, expected 0", n)
	}
}

func TestArenaComponentAccess(t *testing.T) {
	a := newTestArena()
	b := a.AddBush(core.NewAABB(300, 480, 48, 40), core.NewAABB(308, 490, 32, 27))
	y := a.AddYarn(core.NewAABB(500, 400, 24, 24), YarnData{Tier: TierMid, Value: 2, Color: "cyan"})

	if a.Bush(b) == nil || a.Yarn(b) != nil {
		t.Error("bush entity should only expose bush data")
	}
	if a.Yarn(y) == nil || a.Bush(y) != nil {
		t.Error("yarn entity should only expose yarn data")
	}

	a.Bush(b).Consumed = true
	if !a.Bush(b).Consumed {
		t.Error("bush data should be mutable in place")
	}

	// Bushes are indexed by their hitbox
	if got := a.Query(core.NewAABB(308, 490, 4, 4), collide.TagBush); len(got) != 1 {
		t.Errorf("bush hitbox query = %v", got)
	}
	if a.Body(b).Kind != KindBush {
		t.Errorf("Body().Kind = %v", a.Body(b).Kind)
	}
}

func TestArenaCompactsQueue(t *testing.T) {
	a := newTestArena()
	for i := 0; i < 200; i++ {
		a.AddSegment(KindGround, core.NewAABB(float64(i*10), 520, 10, 80))
	}
	a.RetireBefore(1505)
	if a.Len() != 50 {
		t.Fatalf("Len() = %d, expected 50", a.Len())
	}
	if a.head != 0 {
		t.Errorf("queue should compact after mass retirement, head = %d", a.head)
	}
	if len(a.order) != 50 {
		t.Errorf("queue length = %d, expected 50", len(a.order))
	}
}
