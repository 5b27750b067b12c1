package core

import (
	"math"

	"github.com/lixenwraith/chain-blade/parameter"
	"github.com/lixenwraith/chain-blade/vmath"
)

// TileKind classifies puzzle tiles; chains only form between equal kinds
type TileKind uint8

const (
	TileAmber TileKind = iota
	TileJade
	TileRuby
	TileCobalt
)

func (k TileKind) String() string {
	switch k {
	case TileAmber:
		return "Amber"
	case TileJade:
		return "Jade"
	case TileRuby:
		return "Ruby"
	case TileCobalt:
		return "Cobalt"
	default:
		return "Unknown"
	}
}

// TileState is the tile lifecycle. Progression is monotonic
// idle → armed → triggered → cleared; the single backward edge is
// armed → idle via Disarm. Cleared is terminal.
type TileState uint8

const (
	TileIdle TileState = iota
	TileArmed
	TileTriggered
	TileCleared
)

func (s TileState) String() string {
	switch s {
	case TileIdle:
		return "Idle"
	case TileArmed:
		return "Armed"
	case TileTriggered:
		return "Triggered"
	case TileCleared:
		return "Cleared"
	default:
		return "Unknown"
	}
}

// Tile is one puzzle piece. The chain resolver mutates tiles it is handed
// by reference; it never owns them.
type Tile struct {
	ID         ID
	Kind       TileKind
	State      TileState
	Pos        vmath.Vec2
	HalfExtent vmath.Vec2
	Angle      float64
	Hits       int
	Goal       int

	// Fuse is the remaining time a triggered tile burns before clearing
	Fuse float64

	// Glow and Wobble are visual intensities driven by state and time.
	// No gameplay rule reads them.
	Glow   float64
	Wobble float64
}

// NewTile builds an idle tile at pos, flooring the hit goal to 1
func NewTile(kind TileKind, pos, half vmath.Vec2, goal int) *Tile {
	if goal < 1 {
		goal = parameter.TileGoalDefault
	}
	return &Tile{
		ID:         NextID(),
		Kind:       kind,
		Pos:        pos,
		HalfExtent: half,
		Goal:       goal,
	}
}

// Bounds returns the tile's axis-aligned bounding rect
func (t *Tile) Bounds() vmath.Rect {
	return vmath.RectFromCenter(t.Pos, t.HalfExtent)
}

// HalfSpan is the scalar half extent used for chain adjacency
func (t *Tile) HalfSpan() float64 {
	return math.Max(t.HalfExtent.X, t.HalfExtent.Y)
}

// RegisterHit accumulates one blade hit. An idle tile arms on its first
// hit; an armed tile triggers once the hit count reaches its goal.
// Returns whether the hit landed and whether it caused a trigger.
// Triggered and cleared tiles ignore further hits.
func (t *Tile) RegisterHit() (landed, triggered bool) {
	switch t.State {
	case TileTriggered, TileCleared:
		return false, false
	case TileIdle:
		t.State = TileArmed
	}
	t.Hits++
	t.Wobble += parameter.TileWobbleKick
	if t.Hits >= t.Goal {
		t.State = TileTriggered
		t.Fuse = parameter.TileClearDelay
		return true, true
	}
	return true, false
}

// Disarm reverts an armed tile to idle and resets its hit count.
// This is the only permitted backward transition.
func (t *Tile) Disarm() bool {
	if t.State != TileArmed {
		return false
	}
	t.State = TileIdle
	t.Hits = 0
	return true
}

// Trigger forces the armed/idle → triggered transition
func (t *Tile) Trigger() bool {
	if t.State == TileTriggered || t.State == TileCleared {
		return false
	}
	t.State = TileTriggered
	t.Fuse = parameter.TileClearDelay
	t.Wobble += parameter.TileWobbleKick
	return true
}

// Clear moves a triggered tile to its terminal state
func (t *Tile) Clear() bool {
	if t.State != TileTriggered {
		return false
	}
	t.State = TileCleared
	return true
}

// Advance burns down the trigger fuse and eases the visual intensities
// toward their state targets. Glow approaches 0 / 0.4 / 1.0 for
// idle / armed / triggered, wobble decays exponentially. Returns true
// on the step where the tile clears.
func (t *Tile) Advance(dt float64) bool {
	if dt <= 0 {
		return false
	}
	cleared := false
	if t.State == TileTriggered {
		t.Fuse -= dt
		if t.Fuse <= 0 {
			cleared = t.Clear()
		}
	}
	var target float64
	switch t.State {
	case TileArmed:
		target = 0.4
	case TileTriggered:
		target = 1.0
	case TileCleared:
		target = 0
	}
	blend := vmath.Clamp01(parameter.TileGlowRate * dt)
	t.Glow = vmath.Lerp(t.Glow, target, blend)
	t.Wobble *= math.Max(0, 1-parameter.TileWobbleDecay*dt)
	return cleared
}
