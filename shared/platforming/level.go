package platforming

import (
	"cmp"
	"slices"
)

// Reserved collision groups. Every object is in GroupAll; an object whose
// CollisionGroup is GroupNone collides with nothing.
const (
	GroupAll  = "_all"
	GroupNone = "_none"
)

type pendingOp struct {
	body   Body
	groups []string
	remove bool
}

// Level owns a set of bodies and steps them together.
type Level struct {
	objects  []Body
	groups   map[string][]Body
	updating bool
	pending  []pendingOp
}

func NewLevel() *Level {
	return &Level{groups: make(map[string][]Body)}
}

// PushObject adds b to the level and to each named group. Objects are kept
// ordered by ResolvePriority, highest first, in insertion order for ties.
// Calls made while Update is running take effect at the end of the frame.
func (l *Level) PushObject(b Body, groups ...string) {
	if l.updating {
		l.pending = append(l.pending, pendingOp{body: b, groups: groups})
		return
	}
	if l.Contains(b) {
		return
	}

	l.objects = append(l.objects, b)
	for _, g := range groups {
		if g == GroupAll || g == GroupNone || g == "" {
			continue
		}
		l.groups[g] = append(l.groups[g], b)
	}
	slices.SortStableFunc(l.objects, func(x, y Body) int {
		return cmp.Compare(y.PhysicsObject().ResolvePriority, x.PhysicsObject().ResolvePriority)
	})
}

// RemoveObject takes b out of the level and every group and clears any
// ground references other objects hold to it.
func (l *Level) RemoveObject(b Body) {
	if l.updating {
		l.pending = append(l.pending, pendingOp{body: b, remove: true})
		return
	}

	target := b.PhysicsObject()
	same := func(c Body) bool { return c.PhysicsObject() == target }

	l.objects = slices.DeleteFunc(l.objects, same)
	for name, members := range l.groups {
		members = slices.DeleteFunc(members, same)
		if len(members) == 0 {
			delete(l.groups, name)
			continue
		}
		l.groups[name] = members
	}

	for _, other := range l.objects {
		o := other.PhysicsObject()
		if o.GroundPlatform != nil && o.GroundPlatform.PhysicsObject() == target {
			o.GroundPlatform = nil
		}
		if o.LastGroundPlatform != nil && o.LastGroundPlatform.PhysicsObject() == target {
			o.LastGroundPlatform = nil
		}
	}
}

func (l *Level) Contains(b Body) bool {
	target := b.PhysicsObject()
	return slices.ContainsFunc(l.objects, func(c Body) bool { return c.PhysicsObject() == target })
}

// Objects returns the bodies in resolve order. The slice must not be
// modified.
func (l *Level) Objects() []Body {
	return l.objects
}

// Group returns the members of a collision group.
func (l *Level) Group(name string) []Body {
	switch name {
	case GroupAll, "":
		return l.objects
	case GroupNone:
		return nil
	}
	return l.groups[name]
}

// Update steps every body by dt seconds. The four passes each visit every
// object before the next starts: decide dx, resolve x, decide dy, resolve y.
func (l *Level) Update(dt float64) {
	l.updating = true

	for _, b := range l.objects {
		o := b.PhysicsObject()
		o.LastX, o.LastY = o.X, o.Y
		o.LastOnGround, o.LastGroundPlatform = o.OnGround, o.GroundPlatform
		b.DecideDx(dt)
	}
	for _, b := range l.objects {
		l.resolve(b, dt, AxisX)
	}
	for _, b := range l.objects {
		b.DecideDy(dt)
	}
	for _, b := range l.objects {
		l.resolve(b, dt, AxisY)
	}

	for _, b := range l.objects {
		o := b.PhysicsObject()
		dx, dy := o.X-o.LastX, o.Y-o.LastY
		o.FrameDeltaDeltaX, o.FrameDeltaDeltaY = dx-o.FrameDeltaX, dy-o.FrameDeltaY
		o.FrameDeltaX, o.FrameDeltaY = dx, dy
		if o.OnGround {
			o.AirTime = 0
		} else {
			o.AirTime += dt
		}
	}

	l.updating = false
	l.flush()
}

// resolve moves b along one axis. Tile grids that do not take part in
// grid-to-grid collision are moved without resolution.
func (l *Level) resolve(b Body, dt float64, axis Axis) {
	o := b.PhysicsObject()
	if tc, ok := b.(TileCollider); ok && !tc.AffectsMovingTileMaps() {
		if axis == AxisX {
			o.X += o.Dx * dt
		} else {
			o.OnGround, o.GroundPlatform = false, nil
			o.Y += o.Dy * dt
		}
		return
	}
	MoveAndCollide(b, dt, axis, l.Group(o.CollisionGroup))
}

func (l *Level) flush() {
	ops := l.pending
	l.pending = nil
	for _, op := range ops {
		if op.remove {
			l.RemoveObject(op.body)
		} else {
			l.PushObject(op.body, op.groups...)
		}
	}
}
