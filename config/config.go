// Package config loads the optional TOML tuning overlay. A missing file
// yields the defaults; out-of-range values are clamped, never rejected.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/lixenwraith/chain-blade/parameter"
)

// Tuning is the host-adjustable simulation tuning
type Tuning struct {
	RopeGravityY   float64 `toml:"rope_gravity_y"`
	RopeStiffness  float64 `toml:"rope_stiffness"`
	RopeIterations int     `toml:"rope_iterations"`
	RopeDamping    float64 `toml:"rope_damping"`

	BodyGravityY float64 `toml:"body_gravity_y"`
	Substeps     int     `toml:"substeps"`

	BladeRadius          float64 `toml:"blade_radius"`
	LinkDistance         float64 `toml:"link_distance"`
	MinCluster           int     `toml:"min_cluster"`
	ScorePerTile         int     `toml:"score_per_tile"`
	ScorePerClusterBonus int     `toml:"score_per_cluster_bonus"`
}

// Default returns the compiled-in baseline
func Default() Tuning {
	return Tuning{
		RopeGravityY:         parameter.RopeGravityY,
		RopeStiffness:        parameter.RopeStiffness,
		RopeIterations:       parameter.RopeIterations,
		RopeDamping:          parameter.RopeDamping,
		BodyGravityY:         parameter.BodyGravityY,
		Substeps:             parameter.FieldSubsteps,
		BladeRadius:          parameter.BladeRadius,
		LinkDistance:         parameter.TileLinkDistance,
		MinCluster:           parameter.MinCluster,
		ScorePerTile:         parameter.ScorePerTile,
		ScorePerClusterBonus: parameter.ScorePerClusterBonus,
	}
}

// Load reads path on top of the defaults. A missing file returns the
// defaults without error; a malformed file returns the defaults and the
// parse error.
func Load(path string) (Tuning, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read tuning file: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse tuning file: %w", err)
	}
	cfg.clamp()
	return cfg, nil
}

// clamp forces every field into its valid range
func (t *Tuning) clamp() {
	clampF := func(v *float64, lo, hi float64) {
		if *v < lo {
			*v = lo
		}
		if *v > hi {
			*v = hi
		}
	}
	clampI := func(v *int, lo, hi int) {
		if *v < lo {
			*v = lo
		}
		if *v > hi {
			*v = hi
		}
	}

	clampF(&t.RopeStiffness, 0, 1)
	clampF(&t.RopeDamping, 0, 1)
	clampI(&t.RopeIterations, parameter.RopeIterationsMin, parameter.RopeIterationsMax)
	clampI(&t.Substeps, parameter.SubstepsMin, parameter.SubstepsMax)
	if t.BladeRadius < 0 {
		t.BladeRadius = 0
	}
	if t.LinkDistance < 0 {
		t.LinkDistance = 0
	}
	if t.MinCluster < 1 {
		t.MinCluster = 1
	}
	if t.ScorePerTile < 0 {
		t.ScorePerTile = 0
	}
	if t.ScorePerClusterBonus < 0 {
		t.ScorePerClusterBonus = 0
	}
}
