package physics

import (
	"time"

	"github.com/lixenwraith/chain-blade/core"
	"github.com/lixenwraith/chain-blade/parameter"
	"github.com/lixenwraith/chain-blade/vmath"
)

// Point is a rope point-mass. InvMass 0 marks a pinned point that is
// never displaced by integration or constraint relaxation.
type Point struct {
	ID     core.ID
	Pos    vmath.Vec2
	Vel    vmath.Vec2
	Radius float64
	// InvMass is 1/mass; 0 means immovable
	InvMass float64
	Active  bool
}

// Link is a distance constraint between two points, referenced by index
// into the rope's point slice. Once severed (Active false) a link is
// permanently excluded from solving and cut queries.
type Link struct {
	ID        core.ID
	A, B      int
	Rest      float64
	Stiffness float64
	Active    bool
	// Fade is the remaining-life fraction for renderers: 1 while active,
	// running down to 0 after severing
	Fade float64
}

// CutEvent records one severing with the constraint endpoints and the
// closest point on the severed segment
type CutEvent struct {
	Pos  vmath.Vec2
	A, B core.ID
	At   time.Time
}

// RopeSegment is the render view of one link: endpoint pair plus a
// normalized remaining-life fraction for fade-out
type RopeSegment struct {
	A, B vmath.Vec2
	Life float64
}

// RopeConfig describes a linear chain of Segments links between Start and
// End. Out-of-range values are clamped at construction, never rejected.
type RopeConfig struct {
	Start, End vmath.Vec2
	Segments   int
	PinStart   bool
	PinEnd     bool
	Stiffness  float64
	Iterations int
	Gravity    vmath.Vec2
	Damping    float64
	Drag       float64
}

// DefaultRopeConfig returns the tuning baseline for a rope between two anchors
func DefaultRopeConfig(start, end vmath.Vec2, segments int) RopeConfig {
	return RopeConfig{
		Start:      start,
		End:        end,
		Segments:   segments,
		PinStart:   true,
		Stiffness:  parameter.RopeStiffness,
		Iterations: parameter.RopeIterations,
		Gravity:    vmath.V(0, parameter.RopeGravityY),
		Damping:    parameter.RopeDamping,
		Drag:       parameter.RopeDrag,
	}
}

// Rope is a point-mass network with distance constraints, advanced by
// semi-implicit Euler integration plus iterative position relaxation.
// It exclusively owns its point and link collections.
type Rope struct {
	points []Point
	links  []Link
	cfg    RopeConfig

	bounds    vmath.Rect
	hasBounds bool

	// index maps point IDs to slice positions, rebuilt on build
	index map[core.ID]int

	// cuts holds the most recent severing events, oldest evicted
	cuts []CutEvent
}

// NewRope builds a chain of Segments+1 points joined by Segments links of
// equal rest length along the Start→End line
func NewRope(cfg RopeConfig) *Rope {
	if cfg.Segments < parameter.RopeSegmentsMin {
		cfg.Segments = parameter.RopeSegmentsMin
	}
	cfg.Stiffness = vmath.Clamp01(cfg.Stiffness)
	cfg.Iterations = vmath.ClampInt(cfg.Iterations, parameter.RopeIterationsMin, parameter.RopeIterationsMax)
	cfg.Damping = vmath.Clamp(cfg.Damping, 0, 1)
	if cfg.Drag < 0 {
		cfg.Drag = 0
	}

	r := &Rope{
		cfg:    cfg,
		points: make([]Point, cfg.Segments+1),
		links:  make([]Link, cfg.Segments),
		index:  make(map[core.ID]int, cfg.Segments+1),
	}

	n := float64(cfg.Segments)
	rest := cfg.End.Sub(cfg.Start).Length() / n
	for i := range r.points {
		t := float64(i) / n
		p := Point{
			ID:      core.NextID(),
			Pos:     cfg.Start.Lerp(cfg.End, t),
			Radius:  parameter.RopePointRadius,
			InvMass: 1,
			Active:  true,
		}
		if (i == 0 && cfg.PinStart) || (i == cfg.Segments && cfg.PinEnd) {
			p.InvMass = 0
		}
		r.points[i] = p
		r.index[p.ID] = i
	}
	for i := range r.links {
		r.links[i] = Link{
			ID:        core.NextID(),
			A:         i,
			B:         i + 1,
			Rest:      rest,
			Stiffness: cfg.Stiffness,
			Active:    true,
			Fade:      1,
		}
	}
	return r
}

// SetBounds enables world-bounds clipping; the rect is sanitized on use
func (r *Rope) SetBounds(b vmath.Rect) {
	r.bounds = b
	r.hasBounds = true
}

// Step advances the rope by dt seconds: integrate, relax, bound.
// Negative dt is clamped to zero; an empty rope is a no-op.
func (r *Rope) Step(dt float64) {
	if len(r.points) == 0 {
		return
	}
	if dt < 0 {
		dt = 0
	}
	r.integrate(dt)
	for i := 0; i < r.cfg.Iterations; i++ {
		r.relax()
	}
	if r.hasBounds {
		r.bound()
	}
	r.fadeLinks(dt)
}

func (r *Rope) integrate(dt float64) {
	drag := 1.0
	if r.cfg.Drag > 0 {
		if drag = 1 - r.cfg.Drag*dt; drag < 0 {
			drag = 0
		}
	}
	damp := 1 - r.cfg.Damping*dt
	if damp < 0 {
		damp = 0
	}
	for i := range r.points {
		p := &r.points[i]
		if !p.Active || p.InvMass == 0 {
			continue
		}
		p.Vel = p.Vel.Add(r.cfg.Gravity.Scale(dt)).Scale(damp)
		if r.cfg.Drag > 0 {
			p.Vel = p.Vel.Scale(drag)
		}
		p.Pos = p.Pos.Add(p.Vel.Scale(dt))
	}
}

// relax runs one Gauss-Seidel pass of position corrections, distributing
// each link's displacement between its endpoints by inverse mass
func (r *Rope) relax() {
	for i := range r.links {
		l := &r.links[i]
		if !l.Active {
			continue
		}
		a, b := &r.points[l.A], &r.points[l.B]
		if !a.Active || !b.Active {
			continue
		}
		invSum := a.InvMass + b.InvMass
		if invSum == 0 {
			continue
		}
		delta := b.Pos.Sub(a.Pos)
		dist := delta.Length()
		if dist < vmath.Epsilon {
			// Coincident endpoints, skip to avoid division by zero
			continue
		}
		corr := delta.Scale(l.Stiffness * (dist - l.Rest) / dist)
		a.Pos = a.Pos.Add(corr.Scale(a.InvMass / invSum))
		b.Pos = b.Pos.Sub(corr.Scale(b.InvMass / invSum))
	}
}

func (r *Rope) bound() {
	b := r.bounds.Sanitized()
	bounce := parameter.RopeBoundsBounce
	for i := range r.points {
		p := &r.points[i]
		if !p.Active {
			continue
		}
		if p.InvMass == 0 {
			p.Vel = vmath.Vec2{}
			continue
		}
		if p.Pos.X < b.Min.X {
			p.Pos.X = b.Min.X
			if p.Vel.X < 0 {
				p.Vel.X = -p.Vel.X * bounce
			}
		} else if p.Pos.X > b.Max.X {
			p.Pos.X = b.Max.X
			if p.Vel.X > 0 {
				p.Vel.X = -p.Vel.X * bounce
			}
		}
		if p.Pos.Y < b.Min.Y {
			p.Pos.Y = b.Min.Y
			if p.Vel.Y < 0 {
				p.Vel.Y = -p.Vel.Y * bounce
			}
		} else if p.Pos.Y > b.Max.Y {
			p.Pos.Y = b.Max.Y
			if p.Vel.Y > 0 {
				p.Vel.Y = -p.Vel.Y * bounce
			}
		}
	}
}

func (r *Rope) fadeLinks(dt float64) {
	if dt <= 0 {
		return
	}
	decay := dt / parameter.RopeFadeDuration
	for i := range r.links {
		l := &r.links[i]
		if l.Active || l.Fade <= 0 {
			continue
		}
		if l.Fade -= decay; l.Fade < 0 {
			l.Fade = 0
		}
	}
}

// CutAt severs the single active link whose segment lies closest to p,
// provided it is within radius. Only the nearest candidate is cut per
// call. Returns the recorded event and whether anything was severed.
func (r *Rope) CutAt(p vmath.Vec2, radius float64) (CutEvent, bool) {
	best := -1
	bestDist := radius
	var bestPos vmath.Vec2
	for i := range r.links {
		l := &r.links[i]
		if !l.Active {
			continue
		}
		a, b := r.points[l.A].Pos, r.points[l.B].Pos
		if a.DistanceSq(b) < vmath.Epsilon {
			continue
		}
		cp := vmath.ClosestOnSegment(p, a, b)
		if d := p.Distance(cp); d <= bestDist {
			best, bestDist, bestPos = i, d, cp
		}
	}
	if best < 0 {
		return CutEvent{}, false
	}

	l := &r.links[best]
	l.Active = false
	ev := CutEvent{
		Pos: bestPos,
		A:   r.points[l.A].ID,
		B:   r.points[l.B].ID,
		At:  time.Now(),
	}
	r.cuts = append(r.cuts, ev)
	if len(r.cuts) > parameter.CutHistoryLimit {
		r.cuts = r.cuts[len(r.cuts)-parameter.CutHistoryLimit:]
	}
	return ev, true
}

// Cuts returns a copy of the retained severing history, oldest first
func (r *Rope) Cuts() []CutEvent {
	out := make([]CutEvent, len(r.cuts))
	copy(out, r.cuts)
	return out
}

// Points returns a copy of the point-mass states for renderers
func (r *Rope) Points() []Point {
	out := make([]Point, len(r.points))
	copy(out, r.points)
	return out
}

// PointAt returns the point with the given ID by index lookup
func (r *Rope) PointAt(id core.ID) (Point, bool) {
	i, ok := r.index[id]
	if !ok {
		return Point{}, false
	}
	return r.points[i], true
}

// Segments returns the render view: endpoint pairs with remaining-life
// fractions. Severed links are included while they fade out.
func (r *Rope) Segments() []RopeSegment {
	out := make([]RopeSegment, 0, len(r.links))
	for i := range r.links {
		l := &r.links[i]
		if !l.Active && l.Fade <= 0 {
			continue
		}
		out = append(out, RopeSegment{
			A:    r.points[l.A].Pos,
			B:    r.points[l.B].Pos,
			Life: l.Fade,
		})
	}
	return out
}

// Intact reports whether any active link remains
func (r *Rope) Intact() bool {
	for i := range r.links {
		if r.links[i].Active {
			return true
		}
	}
	return false
}

// Length returns the summed current length of all active links
func (r *Rope) Length() float64 {
	total := 0.0
	for i := range r.links {
		l := &r.links[i]
		if !l.Active {
			continue
		}
		total += r.points[l.A].Pos.Distance(r.points[l.B].Pos)
	}
	return total
}
