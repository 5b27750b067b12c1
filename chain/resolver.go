// Package chain groups same-kind puzzle tiles into connected clusters and
// scores them. The resolver holds no tiles of its own; it mutates the
// slice the caller passes in.
package chain

import (
	"github.com/lixenwraith/chain-blade/core"
	"github.com/lixenwraith/chain-blade/parameter"
	"github.com/lixenwraith/chain-blade/vmath"
)

// Config is the resolver tuning. Out-of-range values are clamped by New.
type Config struct {
	// LinkDistance is added to the tiles' half extents when testing adjacency
	LinkDistance float64
	// BladeRadius inflates the blade trace for hit testing
	BladeRadius float64
	// MinCluster is the smallest component size that triggers
	MinCluster           int
	ScorePerTile         int
	ScorePerClusterBonus int
}

// DefaultConfig returns the tuning baseline
func DefaultConfig() Config {
	return Config{
		LinkDistance:         parameter.TileLinkDistance,
		BladeRadius:          parameter.BladeRadius,
		MinCluster:           parameter.MinCluster,
		ScorePerTile:         parameter.ScorePerTile,
		ScorePerClusterBonus: parameter.ScorePerClusterBonus,
	}
}

// Result reports what one resolver call did. Identity lists are in tile
// iteration order; ClearedIDs folds in tiles already cleared among the
// input set, deduplicated.
type Result struct {
	DidHit     bool
	DidTrigger bool
	DidClear   bool
	Score      int

	HitIDs       []core.ID
	TriggeredIDs []core.ID
	ClearedIDs   []core.ID
}

func (r *Result) merge(o Result) {
	r.DidHit = r.DidHit || o.DidHit
	r.DidTrigger = r.DidTrigger || o.DidTrigger
	r.DidClear = r.DidClear || o.DidClear
	r.Score += o.Score
	r.HitIDs = append(r.HitIDs, o.HitIDs...)
	r.TriggeredIDs = dedup(append(r.TriggeredIDs, o.TriggeredIDs...))
	r.ClearedIDs = append(r.ClearedIDs, o.ClearedIDs...)
}

// dedup removes repeated IDs preserving first-seen order
func dedup(ids []core.ID) []core.ID {
	seen := make(map[core.ID]bool, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// Resolver implements blade hit testing and flood-fill chain scoring
type Resolver struct {
	cfg Config
}

// New builds a resolver, clamping the config to valid ranges
func New(cfg Config) *Resolver {
	if cfg.LinkDistance < 0 {
		cfg.LinkDistance = 0
	}
	if cfg.BladeRadius < 0 {
		cfg.BladeRadius = 0
	}
	if cfg.MinCluster < 1 {
		cfg.MinCluster = 1
	}
	if cfg.ScorePerTile < 0 {
		cfg.ScorePerTile = 0
	}
	if cfg.ScorePerClusterBonus < 0 {
		cfg.ScorePerClusterBonus = 0
	}
	return &Resolver{cfg: cfg}
}

// traceHits reports whether the blade segment touches the tile, using the
// inflated-rect-contains plus corner-to-segment proxy. Deliberately
// approximate: gameplay feel depends on the generous hit test.
func (r *Resolver) traceHits(t *core.Tile, from, to vmath.Vec2) bool {
	bounds := t.Bounds()
	inflated := bounds.Inflate(r.cfg.BladeRadius)
	if inflated.Contains(from) || inflated.Contains(to) {
		return true
	}
	for _, c := range bounds.Corners() {
		if vmath.DistToSegment(c, from, to) <= r.cfg.BladeRadius {
			return true
		}
	}
	return vmath.SegmentHitsCircle(from, to, t.Pos, r.cfg.BladeRadius+t.HalfSpan())
}

// ApplyTrace registers a blade stroke segment against every non-cleared
// tile, then runs chain resolution over the same set
func (r *Resolver) ApplyTrace(tiles []*core.Tile, from, to vmath.Vec2) Result {
	var res Result
	for _, t := range tiles {
		if t.State == core.TileCleared {
			continue
		}
		if !r.traceHits(t, from, to) {
			continue
		}
		landed, triggered := t.RegisterHit()
		if !landed {
			continue
		}
		res.DidHit = true
		res.HitIDs = append(res.HitIDs, t.ID)
		if triggered {
			res.DidTrigger = true
			res.TriggeredIDs = append(res.TriggeredIDs, t.ID)
		}
	}
	res.merge(r.Resolve(tiles))
	return res
}

// Resolve flood-fills connected components of armed/triggered same-kind
// tiles and triggers every component at least MinCluster large. Score is
// size*ScorePerTile + max(0, size-MinCluster)*ScorePerClusterBonus summed
// over qualifying components. Deterministic in tile iteration order.
func (r *Resolver) Resolve(tiles []*core.Tile) Result {
	var res Result

	seenCleared := make(map[core.ID]bool)
	for _, t := range tiles {
		if t.State == core.TileCleared && !seenCleared[t.ID] {
			seenCleared[t.ID] = true
			res.ClearedIDs = append(res.ClearedIDs, t.ID)
		}
	}
	res.DidClear = len(res.ClearedIDs) > 0

	visited := make(map[core.ID]bool, len(tiles))
	for _, start := range tiles {
		if visited[start.ID] || !clusterable(start) {
			continue
		}
		component := r.flood(tiles, start, visited)
		if len(component) < r.cfg.MinCluster {
			continue
		}

		// Every member not already triggered is triggered; the whole
		// component is reported so repeated calls over an unchanged
		// snapshot stay deterministic
		for _, t := range component {
			t.Trigger()
			res.TriggeredIDs = append(res.TriggeredIDs, t.ID)
		}
		res.DidTrigger = true
		size := len(component)
		res.Score += size*r.cfg.ScorePerTile + max(0, size-r.cfg.MinCluster)*r.cfg.ScorePerClusterBonus
	}
	return res
}

// flood runs a breadth-first fill from start, restricted to unvisited
// same-kind clusterable tiles. Clusters are disjoint by construction of
// the visited set, so no tile is claimed twice per call.
func (r *Resolver) flood(tiles []*core.Tile, start *core.Tile, visited map[core.ID]bool) []*core.Tile {
	visited[start.ID] = true
	queue := []*core.Tile{start}
	component := []*core.Tile{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, t := range tiles {
			if visited[t.ID] || !clusterable(t) || t.Kind != cur.Kind {
				continue
			}
			if !r.linked(cur, t) {
				continue
			}
			visited[t.ID] = true
			queue = append(queue, t)
			component = append(component, t)
		}
	}
	return component
}

// linked tests chain adjacency: center distance within the summed half
// extents plus the configured link distance
func (r *Resolver) linked(a, b *core.Tile) bool {
	reach := a.HalfSpan() + b.HalfSpan() + r.cfg.LinkDistance
	return a.Pos.DistanceSq(b.Pos) <= reach*reach
}

// clusterable tiles are chain nodes: armed or triggered, not cleared
func clusterable(t *core.Tile) bool {
	return t.State == core.TileArmed || t.State == core.TileTriggered
}
