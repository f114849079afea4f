// Package collide is the broadphase for the runner: a resolv space over a
// window of the world that slides forward with the player. Candidates it
// returns still need an exact AABB test.
package collide

import (
	"math"

	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"

	"github.com/vovakirdan/squirrel-yarn/internal/core"
)

// Tags attached to indexed objects.
const (
	TagSolid = "solid"
	TagBush  = "bush"
	TagYarn  = "yarn"
)

// Index tracks entity boxes in a resolv.Space. World x is stored relative to
// a moving origin so the space never has to cover the whole run.
type Index struct {
	space   *resolv.Space
	objects map[donburi.Entity]*resolv.Object
	cursor  *resolv.Object
	originX float64
	originY float64
	width   float64
	height  float64
}

// NewIndex creates an index covering width x height world units starting at
// (originX, originY), bucketed into cell x cell squares.
func NewIndex(originX, originY, width, height, cell float64) *Index {
	c := int(math.Max(1, cell))
	space := resolv.NewSpace(int(math.Ceil(width)), int(math.Ceil(height)), c, c)
	cursor := resolv.NewObject(0, 0, 1, 1)
	space.Add(cursor)
	return &Index{
		space:   space,
		objects: make(map[donburi.Entity]*resolv.Object),
		cursor:  cursor,
		originX: originX,
		originY: originY,
		width:   width,
		height:  height,
	}
}

// Len returns the number of indexed entities.
func (ix *Index) Len() int {
	return len(ix.objects)
}

// OriginX returns the world x of the window's left edge.
func (ix *Index) OriginX() float64 {
	return ix.originX
}

// Insert adds or replaces the box for an entity.
func (ix *Index) Insert(id donburi.Entity, box core.AABB, tags ...string) {
	if old, ok := ix.objects[id]; ok {
		ix.space.Remove(old)
	}
	obj := resolv.NewObject(box.X-ix.originX, box.Y-ix.originY, box.W, box.H, tags...)
	obj.SetShape(resolv.NewRectangle(0, 0, box.W, box.H))
	obj.Data = id
	ix.space.Add(obj)
	ix.objects[id] = obj
}

// Remove drops an entity from the index. Unknown ids are ignored.
func (ix *Index) Remove(id donburi.Entity) {
	obj, ok := ix.objects[id]
	if !ok {
		return
	}
	ix.space.Remove(obj)
	delete(ix.objects, id)
}

// Query returns entities carrying any of tags whose cells touch box.
// The result is a superset of the overlapping entities.
func (ix *Index) Query(box core.AABB, tags ...string) []donburi.Entity {
	ix.cursor.X = box.X - ix.originX
	ix.cursor.Y = box.Y - ix.originY
	ix.cursor.W = math.Max(box.W, 1)
	ix.cursor.H = math.Max(box.H, 1)
	ix.cursor.Update()

	check := ix.cursor.Check(0, 0, tags...)
	if check == nil {
		return nil
	}
	out := make([]donburi.Entity, 0, len(check.Objects))
	for _, obj := range check.Objects {
		if id, ok := obj.Data.(donburi.Entity); ok {
			out = append(out, id)
		}
	}
	return out
}

// Recenter slides the window so that focusX sits a quarter of the way in,
// once focusX has passed the middle. Objects keep their world positions.
func (ix *Index) Recenter(focusX float64) {
	if focusX-ix.originX < ix.width/2 {
		return
	}
	shift := math.Floor(focusX - ix.width/4 - ix.originX)
	if shift <= 0 {
		return
	}
	ix.originX += shift
	for _, obj := range ix.objects {
		obj.X -= shift
		obj.Update()
	}
}
