package vmath

// ClosestOnSegment returns the point on segment [a,b] closest to p.
// Degenerate segments (a == b) return a.
func ClosestOnSegment(p, a, b Vec2) Vec2 {
	ab := b.Sub(a)
	lenSq := ab.LengthSq()
	if lenSq < Epsilon {
		return a
	}
	t := Clamp01(p.Sub(a).Dot(ab) / lenSq)
	return a.Add(ab.Scale(t))
}

// DistToSegment returns the distance from p to segment [a,b]
func DistToSegment(p, a, b Vec2) float64 {
	return p.Distance(ClosestOnSegment(p, a, b))
}

// SegmentHitsCircle reports whether segment [a,b] passes within r of center
func SegmentHitsCircle(a, b, center Vec2, r float64) bool {
	return DistToSegment(center, a, b) <= r
}

// Rect is an axis-aligned rectangle
type Rect struct {
	Min, Max Vec2
}

// RectFromCenter builds a rect around center with the given half extents
func RectFromCenter(center, half Vec2) Rect {
	return Rect{
		Min: center.Sub(half),
		Max: center.Add(half),
	}
}

// Sanitized returns the rect with width and height floored to min 1,
// anchored at Min, guarding against degenerate or inverted bounds
func (r Rect) Sanitized() Rect {
	out := r
	if out.Max.X-out.Min.X < 1 {
		out.Max.X = out.Min.X + 1
	}
	if out.Max.Y-out.Min.Y < 1 {
		out.Max.Y = out.Min.Y + 1
	}
	return out
}

// Inflate grows the rect by d on every side
func (r Rect) Inflate(d float64) Rect {
	return Rect{
		Min: Vec2{r.Min.X - d, r.Min.Y - d},
		Max: Vec2{r.Max.X + d, r.Max.Y + d},
	}
}

// Contains reports whether p lies inside the rect (inclusive)
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Center returns the rect midpoint
func (r Rect) Center() Vec2 {
	return Vec2{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2}
}

// Corners returns the four corners in clockwise order from Min
func (r Rect) Corners() [4]Vec2 {
	return [4]Vec2{
		{r.Min.X, r.Min.Y},
		{r.Max.X, r.Min.Y},
		{r.Max.X, r.Max.Y},
		{r.Min.X, r.Max.Y},
	}
}
