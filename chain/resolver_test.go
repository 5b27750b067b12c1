package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/chain-blade/core"
	"github.com/lixenwraith/chain-blade/vmath"
)

func armedTile(kind core.TileKind, x, y float64) *core.Tile {
	t := core.NewTile(kind, vmath.V(x, y), vmath.V(5, 5), 1)
	t.State = core.TileArmed
	return t
}

// TestResolveScoresTripleCluster covers the canonical case: three armed
// same-kind tiles within link distance, minCluster 3
func TestResolveScoresTripleCluster(t *testing.T) {
	r := New(Config{
		LinkDistance:         12,
		MinCluster:           3,
		ScorePerTile:         15,
		ScorePerClusterBonus: 25,
	})

	tiles := []*core.Tile{
		armedTile(core.TileJade, 0, 0),
		armedTile(core.TileJade, 15, 0),
		armedTile(core.TileJade, 30, 0),
	}

	res := r.Resolve(tiles)
	require.True(t, res.DidTrigger)
	assert.Equal(t, 3*15+0*25, res.Score)
	assert.Len(t, res.TriggeredIDs, 3)
	for _, tile := range tiles {
		assert.Equal(t, core.TileTriggered, tile.State)
		assert.Contains(t, res.TriggeredIDs, tile.ID)
	}
}

// TestResolveClusterBonus verifies the oversize-cluster bonus term
func TestResolveClusterBonus(t *testing.T) {
	r := New(Config{LinkDistance: 12, MinCluster: 3, ScorePerTile: 15, ScorePerClusterBonus: 25})

	tiles := []*core.Tile{
		armedTile(core.TileRuby, 0, 0),
		armedTile(core.TileRuby, 15, 0),
		armedTile(core.TileRuby, 30, 0),
		armedTile(core.TileRuby, 45, 0),
		armedTile(core.TileRuby, 60, 0),
	}

	res := r.Resolve(tiles)
	assert.Equal(t, 5*15+2*25, res.Score)
}

// TestResolveKindAndDistanceGates verifies neither distant nor
// different-kind tiles join a cluster
func TestResolveKindAndDistanceGates(t *testing.T) {
	r := New(Config{LinkDistance: 12, MinCluster: 3, ScorePerTile: 15, ScorePerClusterBonus: 25})

	tiles := []*core.Tile{
		armedTile(core.TileJade, 0, 0),
		armedTile(core.TileJade, 15, 0),
		armedTile(core.TileRuby, 30, 0),  // wrong kind
		armedTile(core.TileJade, 200, 0), // too far
	}

	res := r.Resolve(tiles)
	assert.False(t, res.DidTrigger)
	assert.Zero(t, res.Score)
	for _, tile := range tiles {
		assert.Equal(t, core.TileArmed, tile.State, "no component reached min cluster")
	}
}

// TestResolveIgnoresIdleTiles verifies idle tiles are not chain nodes even
// when adjacent and same-kind
func TestResolveIgnoresIdleTiles(t *testing.T) {
	r := New(Config{LinkDistance: 12, MinCluster: 3, ScorePerTile: 15, ScorePerClusterBonus: 25})

	idle := core.NewTile(core.TileJade, vmath.V(15, 0), vmath.V(5, 5), 1)
	tiles := []*core.Tile{
		armedTile(core.TileJade, 0, 0),
		idle,
		armedTile(core.TileJade, 30, 0),
	}

	res := r.Resolve(tiles)
	assert.False(t, res.DidTrigger)
	assert.Equal(t, core.TileIdle, idle.State)
}

// TestResolveDeterministic verifies repeated calls over an unchanged
// snapshot report identical score and identity sets
func TestResolveDeterministic(t *testing.T) {
	r := New(DefaultConfig())

	tiles := []*core.Tile{
		armedTile(core.TileCobalt, 0, 0),
		armedTile(core.TileCobalt, 15, 0),
		armedTile(core.TileCobalt, 30, 0),
	}

	first := r.Resolve(tiles)
	second := r.Resolve(tiles)
	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.TriggeredIDs, second.TriggeredIDs)
	assert.Equal(t, first.ClearedIDs, second.ClearedIDs)
}

// TestResolveFoldsClearedTiles verifies already-cleared tiles appear once
// in ClearedIDs and never cluster
func TestResolveFoldsClearedTiles(t *testing.T) {
	r := New(DefaultConfig())

	cleared := armedTile(core.TileJade, 15, 0)
	cleared.Trigger()
	cleared.Clear()

	tiles := []*core.Tile{
		armedTile(core.TileJade, 0, 0),
		cleared,
		cleared, // aliased twice in the active set
	}

	res := r.Resolve(tiles)
	assert.True(t, res.DidClear)
	assert.Equal(t, []core.ID{cleared.ID}, res.ClearedIDs)
	assert.False(t, res.DidTrigger)
}

// TestApplyTraceHitsAndResolves verifies a blade segment registers hits,
// arms idle tiles and immediately resolves the resulting chain
func TestApplyTraceHitsAndResolves(t *testing.T) {
	r := New(Config{
		LinkDistance: 12, BladeRadius: 6,
		MinCluster: 3, ScorePerTile: 15, ScorePerClusterBonus: 25,
	})

	tiles := []*core.Tile{
		core.NewTile(core.TileAmber, vmath.V(10, 0), vmath.V(5, 5), 1),
		core.NewTile(core.TileAmber, vmath.V(25, 0), vmath.V(5, 5), 1),
		core.NewTile(core.TileAmber, vmath.V(40, 0), vmath.V(5, 5), 1),
		core.NewTile(core.TileAmber, vmath.V(300, 300), vmath.V(5, 5), 1),
	}

	res := r.ApplyTrace(tiles, vmath.V(0, 0), vmath.V(50, 0))
	require.True(t, res.DidHit)
	assert.Len(t, res.HitIDs, 3, "distant tile must not be hit")
	assert.True(t, res.DidTrigger)
	assert.Equal(t, 45, res.Score)
	assert.Len(t, res.TriggeredIDs, 3)
	assert.Equal(t, core.TileIdle, tiles[3].State)
}

// TestApplyTraceMiss verifies a clean miss reports nothing
func TestApplyTraceMiss(t *testing.T) {
	r := New(DefaultConfig())
	tiles := []*core.Tile{
		core.NewTile(core.TileAmber, vmath.V(0, 0), vmath.V(5, 5), 1),
	}

	res := r.ApplyTrace(tiles, vmath.V(100, 100), vmath.V(200, 100))
	assert.False(t, res.DidHit)
	assert.Empty(t, res.HitIDs)
	assert.Zero(t, res.Score)
	assert.Equal(t, core.TileIdle, tiles[0].State)
}

// TestApplyTraceSkipsCleared verifies cleared tiles are never hit-tested
func TestApplyTraceSkipsCleared(t *testing.T) {
	r := New(DefaultConfig())
	cleared := armedTile(core.TileJade, 10, 0)
	cleared.Trigger()
	cleared.Clear()
	hits := cleared.Hits

	res := r.ApplyTrace([]*core.Tile{cleared}, vmath.V(0, 0), vmath.V(20, 0))
	assert.False(t, res.DidHit)
	assert.Equal(t, hits, cleared.Hits)
	assert.Equal(t, []core.ID{cleared.ID}, res.ClearedIDs)
}

// TestNewClampsConfig verifies invalid config is clamped, not rejected
func TestNewClampsConfig(t *testing.T) {
	r := New(Config{LinkDistance: -5, BladeRadius: -1, MinCluster: 0, ScorePerTile: -2, ScorePerClusterBonus: -2})
	assert.GreaterOrEqual(t, r.cfg.MinCluster, 1)
	assert.GreaterOrEqual(t, r.cfg.LinkDistance, 0.0)
	assert.GreaterOrEqual(t, r.cfg.BladeRadius, 0.0)
	assert.GreaterOrEqual(t, r.cfg.ScorePerTile, 0)
}
