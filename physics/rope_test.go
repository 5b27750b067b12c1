package physics

import (
	"math"
	"testing"

	"github.com/lixenwraith/chain-blade/vmath"
)

// TestRopePinnedInvariant verifies points with inverse mass 0 are never
// displaced by integration or relaxation
func TestRopePinnedInvariant(t *testing.T) {
	cfg := DefaultRopeConfig(vmath.V(0, 0), vmath.V(100, 0), 5)
	cfg.PinStart = true
	cfg.PinEnd = true
	r := NewRope(cfg)

	start := r.points[0].Pos
	end := r.points[len(r.points)-1].Pos

	for i := 0; i < 300; i++ {
		r.Step(1.0 / 60.0)
	}

	if r.points[0].Pos != start {
		t.Errorf("Pinned start moved from %v to %v", start, r.points[0].Pos)
	}
	if r.points[len(r.points)-1].Pos != end {
		t.Errorf("Pinned end moved from %v to %v", end, r.points[len(r.points)-1].Pos)
	}
}

// TestRopeRelaxConverges verifies a stretched full-stiffness link pulls
// its movable endpoints monotonically toward rest length
func TestRopeRelaxConverges(t *testing.T) {
	cfg := DefaultRopeConfig(vmath.V(0, 0), vmath.V(10, 0), 1)
	cfg.PinStart = false
	cfg.Stiffness = 1
	r := NewRope(cfg)

	// Stretch the single link to double its rest length
	r.points[1].Pos = vmath.V(20, 0)
	rest := r.links[0].Rest

	prev := math.Abs(r.points[0].Pos.Distance(r.points[1].Pos) - rest)
	for i := 0; i < 20; i++ {
		r.relax()
		cur := math.Abs(r.points[0].Pos.Distance(r.points[1].Pos) - rest)
		if cur > prev+1e-9 {
			t.Fatalf("Distance error grew from %v to %v on iteration %d", prev, cur, i)
		}
		prev = cur
	}
	if prev > 1e-6 {
		t.Errorf("Expected convergence to rest length, residual %v", prev)
	}
}

// TestRopeSagsUnderGravity runs the pinned-start chain for one second and
// checks the free end drops while total length stays bounded
func TestRopeSagsUnderGravity(t *testing.T) {
	cfg := DefaultRopeConfig(vmath.V(0, 0), vmath.V(100, 0), 4)
	cfg.PinStart = true
	cfg.PinEnd = false
	cfg.Gravity = vmath.V(0, 780)
	cfg.Iterations = 4
	r := NewRope(cfg)

	rest := r.links[0].Rest
	for i := 0; i < 60; i++ {
		r.Step(1.0 / 60.0)
	}

	free := r.points[len(r.points)-1].Pos
	if free.Y <= 0 {
		t.Errorf("Free endpoint should sag below the pin, y = %v", free.Y)
	}

	const slack = 0.25
	if limit := 4 * rest * (1 + slack); r.Length() > limit {
		t.Errorf("Rope stretched to %v, limit %v", r.Length(), limit)
	}
}

// TestRopeCutNearestOnly verifies only the single closest link is severed
// and re-cutting finds the next candidate or reports none
func TestRopeCutNearestOnly(t *testing.T) {
	cfg := DefaultRopeConfig(vmath.V(0, 0), vmath.V(100, 0), 4)
	r := NewRope(cfg)

	// Between links 1 and 2, nearer to link 1's midpoint
	ev, ok := r.CutAt(vmath.V(36, 3), 10)
	if !ok {
		t.Fatal("Expected a cut within radius")
	}
	if r.links[1].Active {
		t.Error("Nearest link should be severed")
	}
	if !r.links[0].Active || !r.links[2].Active || !r.links[3].Active {
		t.Error("Only the nearest link may be severed")
	}
	if ev.A == 0 || ev.B == 0 {
		t.Error("Cut event should carry endpoint IDs")
	}

	// Same query again: link 1 is gone, link 2's segment starts at x=50
	_, ok = r.CutAt(vmath.V(36, 3), 10)
	if ok {
		t.Error("No remaining link lies within radius of the query")
	}

	// Wider radius reaches the neighbor
	_, ok = r.CutAt(vmath.V(36, 3), 20)
	if !ok {
		t.Error("Wider radius should reach the next active link")
	}
}

// TestRopeCutHistoryBounded verifies the severing history keeps only the
// most recent events
func TestRopeCutHistoryBounded(t *testing.T) {
	cfg := DefaultRopeConfig(vmath.V(0, 0), vmath.V(1000, 0), 64)
	r := NewRope(cfg)

	cuts := 0
	for i := 0; i < 64; i++ {
		x := float64(i)*15.625 + 7.8
		if _, ok := r.CutAt(vmath.V(x, 0), 8); ok {
			cuts++
		}
	}
	if cuts <= 32 {
		t.Fatalf("Setup expected more than 32 cuts, got %d", cuts)
	}
	if got := len(r.Cuts()); got != 32 {
		t.Errorf("Expected history capped at 32, got %d", got)
	}
}

// TestRopeEmptyStepNoOp verifies stepping a rope with no points never panics
func TestRopeEmptyStepNoOp(t *testing.T) {
	r := &Rope{}
	r.Step(1.0 / 60.0)
	r.Step(-1)
}

// TestRopeSegmentsFadeOut verifies severed links report a decaying
// remaining-life fraction and eventually disappear from the render view
func TestRopeSegmentsFadeOut(t *testing.T) {
	cfg := DefaultRopeConfig(vmath.V(0, 0), vmath.V(40, 0), 4)
	cfg.PinStart = true
	cfg.PinEnd = true
	r := NewRope(cfg)

	if _, ok := r.CutAt(vmath.V(15, 0), 5); !ok {
		t.Fatal("Expected a cut")
	}
	segs := r.Segments()
	if len(segs) != 4 {
		t.Fatalf("Severed link should still render while fading, got %d segments", len(segs))
	}

	r.Step(1.0 / 60.0)
	faded := 0
	for _, s := range r.Segments() {
		if s.Life < 1 {
			faded++
		}
	}
	if faded != 1 {
		t.Errorf("Expected exactly one fading segment, got %d", faded)
	}

	for i := 0; i < 120; i++ {
		r.Step(1.0 / 60.0)
	}
	if len(r.Segments()) != 3 {
		t.Errorf("Fully faded link should drop out, got %d segments", len(r.Segments()))
	}
}

// TestRopeConfigClamps verifies out-of-range construction inputs are
// clamped, not rejected
func TestRopeConfigClamps(t *testing.T) {
	cfg := DefaultRopeConfig(vmath.V(0, 0), vmath.V(10, 0), 0)
	cfg.Stiffness = 3
	cfg.Iterations = 99
	r := NewRope(cfg)

	if len(r.links) != 1 {
		t.Errorf("Segments should floor to 1, got %d links", len(r.links))
	}
	if r.cfg.Stiffness != 1 {
		t.Errorf("Stiffness should clamp to 1, got %v", r.cfg.Stiffness)
	}
	if r.cfg.Iterations != 24 {
		t.Errorf("Iterations should clamp to 24, got %v", r.cfg.Iterations)
	}
}
