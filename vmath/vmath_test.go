package vmath

import (
	"math"
	"testing"
)

const tol = 1e-9

// TestNormalizeZeroSafe verifies zero vectors normalize to zero instead of NaN
func TestNormalizeZeroSafe(t *testing.T) {
	n := Vec2{}.Normalize()
	if n.X != 0 || n.Y != 0 {
		t.Errorf("Expected zero vector, got (%v, %v)", n.X, n.Y)
	}

	n = V(3, 4).Normalize()
	if math.Abs(n.Length()-1) > tol {
		t.Errorf("Expected unit length, got %v", n.Length())
	}
}

// TestClampLength verifies magnitude capping preserves direction
func TestClampLength(t *testing.T) {
	v := V(30, 40).ClampLength(5)
	if math.Abs(v.Length()-5) > tol {
		t.Errorf("Expected length 5, got %v", v.Length())
	}
	if math.Abs(v.X-3) > tol || math.Abs(v.Y-4) > tol {
		t.Errorf("Direction not preserved: (%v, %v)", v.X, v.Y)
	}

	// Under the cap, unchanged
	v = V(1, 2).ClampLength(5)
	if v.X != 1 || v.Y != 2 {
		t.Errorf("Short vector should be unchanged, got (%v, %v)", v.X, v.Y)
	}
}

// TestReflect verifies velocity reflection off a unit normal
func TestReflect(t *testing.T) {
	// Falling straight down onto a floor with upward normal
	r := V(0, 5).Reflect(V(0, -1))
	if math.Abs(r.X) > tol || math.Abs(r.Y+5) > tol {
		t.Errorf("Expected (0, -5), got (%v, %v)", r.X, r.Y)
	}
}

// TestClosestOnSegment covers interior, endpoint and degenerate cases
func TestClosestOnSegment(t *testing.T) {
	a, b := V(0, 0), V(10, 0)

	// Projects onto the interior
	p := ClosestOnSegment(V(5, 3), a, b)
	if math.Abs(p.X-5) > tol || math.Abs(p.Y) > tol {
		t.Errorf("Expected (5, 0), got (%v, %v)", p.X, p.Y)
	}

	// Clamps to the near endpoint
	p = ClosestOnSegment(V(-4, 2), a, b)
	if p.X != 0 || p.Y != 0 {
		t.Errorf("Expected clamp to a, got (%v, %v)", p.X, p.Y)
	}

	// Degenerate segment returns the shared endpoint
	p = ClosestOnSegment(V(7, 7), a, a)
	if p.X != 0 || p.Y != 0 {
		t.Errorf("Expected a for degenerate segment, got (%v, %v)", p.X, p.Y)
	}
}

// TestSegmentHitsCircle checks the inflated pass-through test
func TestSegmentHitsCircle(t *testing.T) {
	if !SegmentHitsCircle(V(0, 0), V(10, 0), V(5, 2), 3) {
		t.Error("Segment within radius should hit")
	}
	if SegmentHitsCircle(V(0, 0), V(10, 0), V(5, 5), 3) {
		t.Error("Segment outside radius should miss")
	}
}

// TestRectSanitized verifies degenerate bounds are floored to 1x1
func TestRectSanitized(t *testing.T) {
	r := Rect{Min: V(10, 10), Max: V(10, 5)}.Sanitized()
	if r.Max.X-r.Min.X < 1 || r.Max.Y-r.Min.Y < 1 {
		t.Errorf("Expected at least 1x1 rect, got %v", r)
	}
}

// TestRectInflateContains verifies point containment on the inflated rect
func TestRectInflateContains(t *testing.T) {
	r := RectFromCenter(V(0, 0), V(2, 2))
	if !r.Inflate(1).Contains(V(2.5, 0)) {
		t.Error("Inflated rect should contain (2.5, 0)")
	}
	if r.Contains(V(2.5, 0)) {
		t.Error("Base rect should not contain (2.5, 0)")
	}
}
