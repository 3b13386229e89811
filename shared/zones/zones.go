// Package zones tracks trigger rectangles (dead zones, checkpoints, finish
// lines) in a resolv space. Zones never take part in collision resolution;
// they are queried after the physics step.
package zones

import (
	"math"

	"github.com/solarlune/resolv"

	"github.com/automoto/platforming/shared/geom"
)

// Zone is a trigger rectangle of a given kind.
type Zone struct {
	Kind string
	Rect geom.Rect
	ID   int

	obj *resolv.Object
}

// Space is a set of zones indexed by a resolv cell grid with one cell per
// tile.
type Space struct {
	space *resolv.Space
	zones []*Zone
}

// New returns a space covering [0, width) x [0, height) tiles. Zones reaching
// outside it are still found, through the clamped edge cells.
func New(width, height int) *Space {
	return &Space{space: resolv.NewSpace(max(width, 1), max(height, 1), 1, 1)}
}

// Add registers a zone and returns it.
func (s *Space) Add(kind string, r geom.Rect, id int) *Zone {
	z := &Zone{Kind: kind, Rect: r, ID: id}
	z.obj = s.newObject(r, kind)
	z.obj.Data = z
	s.space.Add(z.obj)
	s.zones = append(s.zones, z)
	return z
}

// Remove unregisters a zone.
func (s *Space) Remove(z *Zone) {
	s.space.Remove(z.obj)
	for i, other := range s.zones {
		if other == z {
			s.zones = append(s.zones[:i], s.zones[i+1:]...)
			break
		}
	}
}

// Zones returns every zone in insertion order.
func (s *Space) Zones() []*Zone {
	return s.zones
}

// Query returns the zones whose interior overlaps r, in insertion order.
// With kinds given, only zones of those kinds are returned.
func (s *Space) Query(r geom.Rect, kinds ...string) []*Zone {
	probe := s.newObject(r)
	s.space.Add(probe)
	defer s.space.Remove(probe)

	check := probe.Check(0, 0, kinds...)
	if check == nil {
		return nil
	}

	var hits []*Zone
	for _, z := range s.zones {
		if !r.Intersects(z.Rect) {
			continue
		}
		for _, o := range check.Objects {
			if o == z.obj {
				hits = append(hits, z)
				break
			}
		}
	}
	return hits
}

// newObject maps a tile-space rect into the cell grid. Cells are one tile,
// so the rect is clamped to the space and rounded out to whole cells.
func (s *Space) newObject(r geom.Rect, tags ...string) *resolv.Object {
	w, h := float64(s.space.Width()), float64(s.space.Height())
	left := clamp(math.Floor(r.Left), 0, w-1)
	top := clamp(math.Floor(r.Top), 0, h-1)
	right := clamp(math.Ceil(r.Right), left+1, w)
	bottom := clamp(math.Ceil(r.Bottom), top+1, h)
	return resolv.NewObject(left, top, right-left, bottom-top, tags...)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
