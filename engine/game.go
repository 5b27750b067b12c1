// Package engine orchestrates the simulation: it owns the rigid body
// field, ropes, tiles and fruit, advances them on a single frame-stepped
// timeline, and translates host gestures into cuts, blade traces and
// slice queries. All mutation happens through the public operations on a
// single logical timeline; callers serialize stepping and gestures.
package engine

import (
	"time"

	"github.com/lixenwraith/chain-blade/chain"
	"github.com/lixenwraith/chain-blade/core"
	"github.com/lixenwraith/chain-blade/parameter"
	"github.com/lixenwraith/chain-blade/physics"
	"github.com/lixenwraith/chain-blade/vmath"
)

// Config is the game-level tuning
type Config struct {
	Field        physics.FieldConfig
	Chain        chain.Config
	BladeRadius  float64
	FruitGravity vmath.Vec2
}

// DefaultConfig returns the tuning baseline
func DefaultConfig() Config {
	return Config{
		Field:        physics.DefaultFieldConfig(),
		Chain:        chain.DefaultConfig(),
		BladeRadius:  parameter.BladeRadius,
		FruitGravity: vmath.V(0, parameter.BodyGravityY),
	}
}

// Game is the frame-stepped simulation root
type Game struct {
	cfg      Config
	field    *physics.Field
	resolver *chain.Resolver
	events   *EventQueue

	ropes []*physics.Rope
	tiles []*core.Tile
	fruit []*core.Fruit

	frame   uint64
	score   int
	summary physics.StepSummary

	strokeActive bool
	strokeLast   vmath.Vec2

	// cuts retains the most recent severing events across all ropes
	cuts []physics.CutEvent
}

// NewGame builds an empty game with the given tuning
func NewGame(cfg Config) *Game {
	if cfg.BladeRadius < 0 {
		cfg.BladeRadius = 0
	}
	return &Game{
		cfg:      cfg,
		field:    physics.NewField(cfg.Field),
		resolver: chain.New(cfg.Chain),
		events:   NewEventQueue(),
	}
}

// Field exposes the rigid body field for scene setup
func (g *Game) Field() *physics.Field {
	return g.field
}

// Events exposes the queue hosts poll for feedback cues
func (g *Game) Events() *EventQueue {
	return g.events
}

// AddRope inserts a rope into the scene
func (g *Game) AddRope(r *physics.Rope) {
	if r != nil {
		g.ropes = append(g.ropes, r)
	}
}

// AddTile inserts a puzzle tile
func (g *Game) AddTile(t *core.Tile) {
	if t != nil {
		g.tiles = append(g.tiles, t)
	}
}

// AddFruit inserts a fruit piece
func (g *Game) AddFruit(f *core.Fruit) {
	if f != nil {
		g.fruit = append(g.fruit, f)
	}
}

// Step advances every component by dt seconds. Callers clamp
// pathologically large deltas before invoking.
func (g *Game) Step(dt float64) {
	g.frame++

	for _, r := range g.ropes {
		r.Step(dt)
	}
	g.summary = g.field.Step(dt)

	for _, t := range g.tiles {
		if t.Advance(dt) {
			g.push(EventTileCleared, []core.ID{t.ID})
		}
	}
	for _, f := range g.fruit {
		if f.Advance(dt, g.cfg.FruitGravity) {
			g.push(EventFruitExpired, f.ID)
		}
	}
}

// StrokeBegin starts a gesture at p
func (g *Game) StrokeBegin(p vmath.Vec2) {
	g.strokeActive = true
	g.strokeLast = p
}

// StrokeMove extends the gesture to p, applying the blade segment from
// the previous sample: rope cuts, tile trace, fruit slices
func (g *Game) StrokeMove(p vmath.Vec2) {
	if !g.strokeActive {
		g.StrokeBegin(p)
		return
	}
	from := g.strokeLast
	g.strokeLast = p
	g.applyBlade(from, p)
}

// StrokeEnd finishes the gesture, applying the final segment when the
// endpoint moved since the last sample
func (g *Game) StrokeEnd(p vmath.Vec2) {
	if g.strokeActive && p != g.strokeLast {
		g.applyBlade(g.strokeLast, p)
	}
	g.strokeActive = false
}

func (g *Game) applyBlade(from, to vmath.Vec2) {
	// Rope severing: nearest link per rope per segment sample
	for _, r := range g.ropes {
		mid := from.Lerp(to, 0.5)
		if ev, ok := r.CutAt(mid, g.cfg.BladeRadius); ok {
			g.recordCut(ev)
			g.push(EventRopeCut, ev)
		}
	}

	// Tile trace + chain resolution
	res := g.resolver.ApplyTrace(g.tiles, from, to)
	if res.DidHit {
		g.push(EventTileHit, res.HitIDs)
	}
	if res.DidTrigger {
		g.push(EventTileTriggered, res.TriggeredIDs)
	}
	if res.DidClear {
		g.push(EventTileCleared, res.ClearedIDs)
	}
	if res.Score > 0 {
		g.score += res.Score
		g.push(EventScore, res.Score)
	}

	// Fruit slicing
	dir := to.Sub(from)
	for _, f := range g.fruit {
		if f.State != core.FruitWhole {
			continue
		}
		if !vmath.SegmentHitsCircle(from, to, f.Pos, f.Radius+g.cfg.BladeRadius) {
			continue
		}
		if f.Slice(dir) {
			g.push(EventFruitSliced, f.ID)
		}
	}
}

func (g *Game) recordCut(ev physics.CutEvent) {
	g.cuts = append(g.cuts, ev)
	if len(g.cuts) > parameter.CutHistoryLimit {
		g.cuts = g.cuts[len(g.cuts)-parameter.CutHistoryLimit:]
	}
}

func (g *Game) push(t EventType, payload any) {
	g.events.Push(GameEvent{
		Type:      t,
		Payload:   payload,
		Frame:     g.frame,
		Timestamp: time.Now(),
	})
}

// Frame returns the current frame counter
func (g *Game) Frame() uint64 {
	return g.frame
}

// Score returns the accumulated chain score
func (g *Game) Score() int {
	return g.score
}

// LastSummary returns the most recent field step diagnostics
func (g *Game) LastSummary() physics.StepSummary {
	return g.summary
}

// CutHistory returns a copy of the retained cut events, oldest first
func (g *Game) CutHistory() []physics.CutEvent {
	out := make([]physics.CutEvent, len(g.cuts))
	copy(out, g.cuts)
	return out
}

// RopeViews returns the render segments of every rope
func (g *Game) RopeViews() [][]physics.RopeSegment {
	out := make([][]physics.RopeSegment, len(g.ropes))
	for i, r := range g.ropes {
		out[i] = r.Segments()
	}
	return out
}

// BodyViews returns a copy of the field's body states
func (g *Game) BodyViews() []physics.Body {
	return g.field.Bodies()
}

// WallViews returns a copy of the field's wall states
func (g *Game) WallViews() []physics.Wall {
	return g.field.Walls()
}

// TileViews returns a copy of the tile states
func (g *Game) TileViews() []core.Tile {
	out := make([]core.Tile, len(g.tiles))
	for i, t := range g.tiles {
		out[i] = *t
	}
	return out
}

// FruitViews returns a copy of the fruit states
func (g *Game) FruitViews() []core.Fruit {
	out := make([]core.Fruit, len(g.fruit))
	for i, f := range g.fruit {
		out[i] = *f
	}
	return out
}
