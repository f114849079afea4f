package collide

import (
	"testing"

	"github.com/yohamta/donburi"

	"github.com/vovakirdan/squirrel-yarn/internal/core"
)

type markerData struct{}

var marker = donburi.NewComponentType[markerData]()

func contains(ids []donburi.Entity, id donburi.Entity) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func TestIndexQueryByTag(t *testing.T) {
	w := donburi.NewWorld()
	ground := w.Create(marker)
	bush := w.Create(marker)
	far := w.Create(marker)

	ix := NewIndex(0, -600, 4000, 1800, 64)
	ix.Insert(ground, core.NewAABB(0, 520, 800, 80), TagSolid)
	ix.Insert(bush, core.NewAABB(300, 480, 48, 40), TagBush)
	ix.Insert(far, core.NewAABB(2000, 480, 48, 40), TagBush)

	if ix.Len() != 3 {
		t.Fatalf("Len() = %d, expected 3", ix.Len())
	}

	player := core.NewAABB(290, 470, 40, 50)

	solids := ix.Query(core.NewAABB(290, 468, 40, 54), TagSolid)
	if !contains(solids, ground) || contains(solids, bush) {
		t.Errorf("solid query = %v, expected ground only", solids)
	}

	bushes := ix.Query(player, TagBush)
	if !contains(bushes, bush) {
		t.Errorf("bush query should find the near bush, got %v", bushes)
	}
	if contains(bushes, far) {
		t.Errorf("bush query should not find a bush 1700px away")
	}
}

func TestIndexRemove(t *testing.T) {
	w := donburi.NewWorld()
	yarn := w.Create(marker)

	ix := NewIndex(0, 0, 1000, 600, 64)
	ix.Insert(yarn, core.NewAABB(100, 100, 24, 24), TagYarn)
	ix.Remove(yarn)
	ix.Remove(yarn) // unknown ids are ignored

	if got := ix.Query(core.NewAABB(90, 90, 50, 50), TagYarn); len(got) != 0 {
		t.Errorf("removed yarn still indexed: %v", got)
	}
	if ix.Len() != 0 {
		t.Errorf("Len() = %d after remove", ix.Len())
	}
}

func TestIndexRecenterKeepsWorldPositions(t *testing.T) {
	w := donburi.NewWorld()
	ahead := w.Create(marker)

	ix := NewIndex(0, 0, 2000, 600, 64)
	ix.Insert(ahead, core.NewAABB(1600, 400, 100, 20), TagSolid)

	ix.Recenter(500) // before the middle: no shift
	if ix.OriginX() != 0 {
		t.Fatalf("OriginX() = %v, expected no shift", ix.OriginX())
	}

	ix.Recenter(1200)
	if ix.OriginX() != 700 {
		t.Fatalf("OriginX() = %v, expected 700", ix.OriginX())
	}

	if got := ix.Query(core.NewAABB(1650, 390, 10, 20), TagSolid); !contains(got, ahead) {
		t.Errorf("query after recenter lost the platform: %v", got)
	}

	// Inserted after the shift at world coordinates that were outside the
	// initial window
	later := w.Create(marker)
	ix.Insert(later, core.NewAABB(2500, 400, 100, 20), TagSolid)
	if got := ix.Query(core.NewAABB(2550, 390, 10, 20), TagSolid); !contains(got, later) {
		t.Errorf("query for platform beyond the old window failed: %v", got)
	}
}
