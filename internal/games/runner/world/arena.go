package world

import (
	"github.com/yohamta/donburi"

	"github.com/vovakirdan/squirrel-yarn/internal/collide"
	"github.com/vovakirdan/squirrel-yarn/internal/core"
)

type slot struct {
	id    donburi.Entity
	right float64
}

// Arena owns every live entity. Entities are kept in a queue ordered by right
// edge so retirement pops from the front; removed entities leave a stale
// slot that is skipped when reached.
type Arena struct {
	world donburi.World
	order []slot
	head  int
	index *collide.Index
}

// NewArena creates an empty arena whose broadphase covers width x height
// world units from (originX, originY).
func NewArena(originX, originY, width, height, cell float64) *Arena {
	return &Arena{
		world: donburi.NewWorld(),
		index: collide.NewIndex(originX, originY, width, height, cell),
	}
}

// Len returns the number of live entities.
func (a *Arena) Len() int {
	return a.world.Len()
}

// AddSegment creates a ground, gap or platform entity.
func (a *Arena) AddSegment(kind Kind, box core.AABB) donburi.Entity {
	e := a.world.Create(Body)
	Body.SetValue(a.world.Entry(e), BodyData{Box: box, Kind: kind})
	if kind.Solid() {
		a.index.Insert(e, box, collide.TagSolid)
	}
	a.enqueue(e, box.Right())
	return e
}

// AddBush creates a bush. The hitbox is what collides; box is what is drawn.
func (a *Arena) AddBush(box, hitbox core.AABB) donburi.Entity {
	e := a.world.Create(Body, Bush)
	entry := a.world.Entry(e)
	Body.SetValue(entry, BodyData{Box: box, Kind: KindBush})
	Bush.SetValue(entry, BushData{Hitbox: hitbox})
	a.index.Insert(e, hitbox, collide.TagBush)
	a.enqueue(e, box.Right())
	return e
}

// AddYarn creates a yarn pickup.
func (a *Arena) AddYarn(box core.AABB, y YarnData) donburi.Entity {
	e := a.world.Create(Body, Yarn)
	entry := a.world.Entry(e)
	Body.SetValue(entry, BodyData{Box: box, Kind: KindYarn})
	Yarn.SetValue(entry, y)
	a.index.Insert(e, box, collide.TagYarn)
	a.enqueue(e, box.Right())
	return e
}

// enqueue inserts keeping the queue sorted by right edge. Generation
// appends in roughly increasing x so the backward scan is short.
func (a *Arena) enqueue(e donburi.Entity, right float64) {
	i := len(a.order)
	a.order = append(a.order, slot{})
	for i > a.head && a.order[i-1].right > right {
		a.order[i] = a.order[i-1]
		i--
	}
	a.order[i] = slot{id: e, right: right}
}

// Valid reports whether the entity is still alive.
func (a *Arena) Valid(e donburi.Entity) bool {
	return a.world.Valid(e)
}

// Body returns the body of a live entity, or nil.
func (a *Arena) Body(e donburi.Entity) *BodyData {
	if !a.world.Valid(e) {
		return nil
	}
	return Body.Get(a.world.Entry(e))
}

// Bush returns the bush data of a live bush, or nil.
func (a *Arena) Bush(e donburi.Entity) *BushData {
	if !a.world.Valid(e) {
		return nil
	}
	entry := a.world.Entry(e)
	if !entry.HasComponent(Bush) {
		return nil
	}
	return Bush.Get(entry)
}

// Yarn returns the yarn data of a live pickup, or nil.
func (a *Arena) Yarn(e donburi.Entity) *YarnData {
	if !a.world.Valid(e) {
		return nil
	}
	entry := a.world.Entry(e)
	if !entry.HasComponent(Yarn) {
		return nil
	}
	return Yarn.Get(entry)
}

// Remove deletes an entity now. Its queue slot is dropped lazily.
func (a *Arena) Remove(e donburi.Entity) {
	if !a.world.Valid(e) {
		return
	}
	a.index.Remove(e)
	a.world.Remove(e)
}

// RetireBefore removes every entity whose right edge is left of x and
// returns how many were removed.
func (a *Arena) RetireBefore(x float64) int {
	n := 0
	for a.head < len(a.order) && a.order[a.head].right < x {
		id := a.order[a.head].id
		a.order[a.head] = slot{}
		a.head++
		if a.world.Valid(id) {
			a.Remove(id)
			n++
		}
	}
	a.compact()
	return n
}

func (a *Arena) compact() {
	if a.head < 64 || a.head < len(a.order)/2 {
		return
	}
	n := copy(a.order, a.order[a.head:])
	a.order = a.order[:n]
	a.head = 0
}

// Query returns live entities with any of tags whose boxes may touch box.
func (a *Arena) Query(box core.AABB, tags ...string) []donburi.Entity {
	return a.index.Query(box, tags...)
}

// Recenter slides the broadphase window toward focusX.
func (a *Arena) Recenter(focusX float64) {
	a.index.Recenter(focusX)
}

// Each calls fn for every live entity in right-edge order.
func (a *Arena) Each(fn func(e donburi.Entity, body *BodyData)) {
	for i := a.head; i < len(a.order); i++ {
		id := a.order[i].id
		if !a.world.Valid(id) {
			continue
		}
		fn(id, Body.Get(a.world.Entry(id)))
	}
}
