package physics

import (
	"github.com/lixenwraith/chain-blade/core"
	"github.com/lixenwraith/chain-blade/parameter"
	"github.com/lixenwraith/chain-blade/vmath"
)

// Body is a circular rigid body. Static bodies never move or receive
// impulses but still exert them on dynamic bodies.
type Body struct {
	ID          core.ID
	Pos         vmath.Vec2
	Vel         vmath.Vec2
	Radius      float64
	Mass        float64
	Restitution float64
	Damping     float64
	Static      bool
	Active      bool
	// Tag is a game-specific classification, opaque to the field
	Tag int
}

func (b *Body) invMass() float64 {
	if b.Static {
		return 0
	}
	return 1 / b.Mass
}

// Wall is a static line-segment obstacle with thickness
type Wall struct {
	ID          core.ID
	A, B        vmath.Vec2
	Thickness   float64
	Restitution float64
	Active      bool
	Tag         int
}

// StepSummary reports per-step diagnostics; gameplay logic never reads it
type StepSummary struct {
	SubstepDt  float64
	LiveBodies int
	Resolved   int
	Clipped    int
}

// FieldConfig holds the field-wide tuning; Substeps is clamped on use
type FieldConfig struct {
	Gravity  vmath.Vec2
	Substeps int
}

// DefaultFieldConfig returns the tuning baseline
func DefaultFieldConfig() FieldConfig {
	return FieldConfig{
		Gravity:  vmath.V(0, parameter.BodyGravityY),
		Substeps: parameter.FieldSubsteps,
	}
}

// Field owns a mutable set of circular bodies and static segments and
// advances them in substeps. Removals are deferred to substep boundaries
// so index-based iteration stays valid mid-resolution.
type Field struct {
	cfg    FieldConfig
	bodies []Body
	walls  []Wall

	bounds    vmath.Rect
	hasBounds bool

	// ID → slice index, rebuilt on structural change
	bodyIndex map[core.ID]int
	wallIndex map[core.ID]int

	pendingBodies []core.ID
	pendingWalls  []core.ID
}

// NewField creates an empty field
func NewField(cfg FieldConfig) *Field {
	return &Field{
		cfg:       cfg,
		bodyIndex: make(map[core.ID]int),
		wallIndex: make(map[core.ID]int),
	}
}

// SetBounds enables world-bounds clipping; sanitized on every use
func (f *Field) SetBounds(b vmath.Rect) {
	f.bounds = b
	f.hasBounds = true
}

// AddBody inserts a body, clamping its parameters to valid ranges, and
// returns the assigned ID. A zero ID is replaced with a fresh one.
func (f *Field) AddBody(b Body) core.ID {
	if b.ID == 0 {
		b.ID = core.NextID()
	}
	if b.Radius < parameter.BodyRadiusMin {
		b.Radius = parameter.BodyRadiusMin
	}
	if b.Mass < parameter.BodyMassMin {
		b.Mass = parameter.BodyMassMin
	}
	b.Restitution = vmath.Clamp01(b.Restitution)
	b.Damping = vmath.Clamp01(b.Damping)
	b.Active = true
	f.bodyIndex[b.ID] = len(f.bodies)
	f.bodies = append(f.bodies, b)
	return b.ID
}

// AddWall inserts a static segment obstacle and returns the assigned ID
func (f *Field) AddWall(w Wall) core.ID {
	if w.ID == 0 {
		w.ID = core.NextID()
	}
	if w.Thickness < parameter.WallThicknessMin {
		w.Thickness = parameter.WallThicknessMin
	}
	w.Restitution = vmath.Clamp01(w.Restitution)
	w.Active = true
	f.wallIndex[w.ID] = len(f.walls)
	f.walls = append(f.walls, w)
	return w.ID
}

// RemoveBody schedules a body for removal at the next substep boundary.
// Unknown IDs are ignored.
func (f *Field) RemoveBody(id core.ID) {
	f.pendingBodies = append(f.pendingBodies, id)
}

// RemoveWall schedules a wall for removal at the next substep boundary
func (f *Field) RemoveWall(id core.ID) {
	f.pendingWalls = append(f.pendingWalls, id)
}

// BodyAt returns the body with the given ID by index lookup
func (f *Field) BodyAt(id core.ID) (Body, bool) {
	i, ok := f.bodyIndex[id]
	if !ok {
		return Body{}, false
	}
	return f.bodies[i], true
}

// Bodies returns a copy of the body states for renderers
func (f *Field) Bodies() []Body {
	out := make([]Body, len(f.bodies))
	copy(out, f.bodies)
	return out
}

// Walls returns a copy of the wall states for renderers
func (f *Field) Walls() []Wall {
	out := make([]Wall, len(f.walls))
	copy(out, f.walls)
	return out
}

// Step advances the field by dt seconds split into clamped substeps and
// returns the step diagnostics
func (f *Field) Step(dt float64) StepSummary {
	if dt < 0 {
		dt = 0
	}
	steps := vmath.ClampInt(f.cfg.Substeps, parameter.SubstepsMin, parameter.SubstepsMax)
	h := dt / float64(steps)
	sum := StepSummary{SubstepDt: h}

	for s := 0; s < steps; s++ {
		f.applyRemovals()
		f.integrate(h)
		if f.hasBounds {
			sum.Clipped += f.clipBounds()
		}
		sum.Resolved += f.resolveBodyPairs()
		sum.Resolved += f.resolveWalls()
	}

	for i := range f.bodies {
		if f.bodies[i].Active {
			sum.LiveBodies++
		}
	}
	return sum
}

// applyRemovals compacts the collections and rebuilds the ID indexes
func (f *Field) applyRemovals() {
	if len(f.pendingBodies) > 0 {
		drop := make(map[core.ID]bool, len(f.pendingBodies))
		for _, id := range f.pendingBodies {
			drop[id] = true
		}
		kept := f.bodies[:0]
		for i := range f.bodies {
			if !drop[f.bodies[i].ID] {
				kept = append(kept, f.bodies[i])
			}
		}
		f.bodies = kept
		f.bodyIndex = make(map[core.ID]int, len(f.bodies))
		for i := range f.bodies {
			f.bodyIndex[f.bodies[i].ID] = i
		}
		f.pendingBodies = f.pendingBodies[:0]
	}
	if len(f.pendingWalls) > 0 {
		drop := make(map[core.ID]bool, len(f.pendingWalls))
		for _, id := range f.pendingWalls {
			drop[id] = true
		}
		kept := f.walls[:0]
		for i := range f.walls {
			if !drop[f.walls[i].ID] {
				kept = append(kept, f.walls[i])
			}
		}
		f.walls = kept
		f.wallIndex = make(map[core.ID]int, len(f.walls))
		for i := range f.walls {
			f.wallIndex[f.walls[i].ID] = i
		}
		f.pendingWalls = f.pendingWalls[:0]
	}
}

func (f *Field) integrate(h float64) {
	for i := range f.bodies {
		b := &f.bodies[i]
		if !b.Active || b.Static {
			continue
		}
		b.Vel = b.Vel.Add(f.cfg.Gravity.Scale(h))
		if b.Damping > 0 {
			damp := 1 - b.Damping*h
			if damp < 0 {
				damp = 0
			}
			b.Vel = b.Vel.Scale(damp)
		}
		b.Pos = b.Pos.Add(b.Vel.Scale(h))
	}
}

// clipBounds keeps bodies inside the sanitized world rect, reflecting the
// offending velocity component by the body's restitution
func (f *Field) clipBounds() int {
	b := f.bounds.Sanitized()
	clipped := 0
	for i := range f.bodies {
		body := &f.bodies[i]
		if !body.Active || body.Static {
			continue
		}
		hit := false
		if body.Pos.X-body.Radius < b.Min.X {
			body.Pos.X = b.Min.X + body.Radius
			if body.Vel.X < 0 {
				body.Vel.X = -body.Vel.X * body.Restitution
			}
			hit = true
		} else if body.Pos.X+body.Radius > b.Max.X {
			body.Pos.X = b.Max.X - body.Radius
			if body.Vel.X > 0 {
				body.Vel.X = -body.Vel.X * body.Restitution
			}
			hit = true
		}
		if body.Pos.Y-body.Radius < b.Min.Y {
			body.Pos.Y = b.Min.Y + body.Radius
			if body.Vel.Y < 0 {
				body.Vel.Y = -body.Vel.Y * body.Restitution
			}
			hit = true
		} else if body.Pos.Y+body.Radius > b.Max.Y {
			body.Pos.Y = b.Max.Y - body.Radius
			if body.Vel.Y > 0 {
				body.Vel.Y = -body.Vel.Y * body.Restitution
			}
			hit = true
		}
		if hit {
			clipped++
		}
	}
	return clipped
}

// resolveBodyPairs separates every overlapping pair proportionally to
// inverse mass and, when approaching, exchanges the standard impulse
// j = -(1+e)·vrel·n / (invA + invB)
func (f *Field) resolveBodyPairs() int {
	resolved := 0
	for i := 0; i < len(f.bodies); i++ {
		a := &f.bodies[i]
		if !a.Active {
			continue
		}
		for j := i + 1; j < len(f.bodies); j++ {
			b := &f.bodies[j]
			if !b.Active {
				continue
			}
			if a.Static && b.Static {
				continue
			}
			delta := b.Pos.Sub(a.Pos)
			distSq := delta.LengthSq()
			reach := a.Radius + b.Radius
			if distSq >= reach*reach {
				continue
			}
			if distSq < vmath.Epsilon {
				// Coincident centers, no usable normal
				continue
			}
			dist := delta.Length()
			n := delta.Scale(1 / dist)

			invA, invB := a.invMass(), b.invMass()
			invSum := invA + invB
			penetration := reach - dist
			a.Pos = a.Pos.Sub(n.Scale(penetration * invA / invSum))
			b.Pos = b.Pos.Add(n.Scale(penetration * invB / invSum))

			vrel := b.Vel.Sub(a.Vel).Dot(n)
			if vrel < 0 {
				e := (a.Restitution + b.Restitution) / 2
				imp := -(1 + e) * vrel / invSum
				a.Vel = a.Vel.Sub(n.Scale(imp * invA))
				b.Vel = b.Vel.Add(n.Scale(imp * invB))
			}
			resolved++
		}
	}
	return resolved
}

// resolveWalls pushes bodies out of segment obstacles along the contact
// normal and reflects the inbound velocity component
func (f *Field) resolveWalls() int {
	resolved := 0
	for i := range f.bodies {
		b := &f.bodies[i]
		if !b.Active || b.Static {
			continue
		}
		for j := range f.walls {
			w := &f.walls[j]
			if !w.Active {
				continue
			}
			cp := vmath.ClosestOnSegment(b.Pos, w.A, w.B)
			delta := b.Pos.Sub(cp)
			reach := b.Radius + w.Thickness
			distSq := delta.LengthSq()
			if distSq >= reach*reach {
				continue
			}
			var n vmath.Vec2
			if distSq < vmath.Epsilon {
				// Center on the segment line, fall back to the wall normal
				n = w.B.Sub(w.A).Perp().Normalize()
				if n.IsZero() {
					continue
				}
			} else {
				n = delta.Normalize()
			}
			b.Pos = cp.Add(n.Scale(reach))
			vn := b.Vel.Dot(n)
			if vn < 0 {
				e := (b.Restitution + w.Restitution) / 2
				b.Vel = b.Vel.Sub(n.Scale((1 + e) * vn))
			}
			resolved++
		}
	}
	return resolved
}
