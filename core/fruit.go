package core

import (
	"github.com/lixenwraith/chain-blade/parameter"
	"github.com/lixenwraith/chain-blade/vmath"
)

// FruitKind classifies fruit pieces, used only for presentation
type FruitKind uint8

const (
	FruitMelon FruitKind = iota
	FruitApple
	FruitPlum
	FruitPeach
)

func (k FruitKind) String() string {
	switch k {
	case FruitMelon:
		return "Melon"
	case FruitApple:
		return "Apple"
	case FruitPlum:
		return "Plum"
	case FruitPeach:
		return "Peach"
	default:
		return "Unknown"
	}
}

// FruitState is the fruit lifecycle: whole → sliced → expired, or
// whole → expired on timeout. Expired is terminal.
type FruitState uint8

const (
	FruitWhole FruitState = iota
	FruitSliced
	FruitExpired
)

func (s FruitState) String() string {
	switch s {
	case FruitWhole:
		return "Whole"
	case FruitSliced:
		return "Sliced"
	case FruitExpired:
		return "Expired"
	default:
		return "Unknown"
	}
}

// FruitHalf is one of the two pieces produced by slicing, with its own
// kinematics and remaining life
type FruitHalf struct {
	ID    ID
	Pos   vmath.Vec2
	Vel   vmath.Vec2
	Spin  float64
	Angle float64
	Life  float64
}

// Fruit is a sliceable piece. Once sliced, the whole piece's position and
// velocity are frozen and the two halves carry all further motion.
type Fruit struct {
	ID     ID
	Kind   FruitKind
	State  FruitState
	Pos    vmath.Vec2
	Vel    vmath.Vec2
	Radius float64
	Life   float64
	Halves [2]FruitHalf
}

// NewFruit builds a whole fruit with the default lifetime
func NewFruit(kind FruitKind, pos, vel vmath.Vec2, radius float64) *Fruit {
	if radius <= 0 {
		radius = 1
	}
	return &Fruit{
		ID:     NextID(),
		Kind:   kind,
		Pos:    pos,
		Vel:    vel,
		Radius: radius,
		Life:   parameter.FruitLifetime,
	}
}

// Slice splits a whole fruit along the blade direction, producing exactly
// two halves pushed apart perpendicular to the cut. No-op unless whole.
func (f *Fruit) Slice(dir vmath.Vec2) bool {
	if f.State != FruitWhole {
		return false
	}
	n := dir.Normalize()
	if n.IsZero() {
		n = vmath.V(1, 0)
	}
	side := n.Perp()
	offset := side.Scale(f.Radius / 2)
	kick := side.Scale(parameter.FruitHalfKick)

	f.Halves[0] = FruitHalf{
		ID:   NextID(),
		Pos:  f.Pos.Add(offset),
		Vel:  f.Vel.Add(kick),
		Spin: parameter.FruitHalfSpin,
		Life: parameter.FruitHalfLifetime,
	}
	f.Halves[1] = FruitHalf{
		ID:   NextID(),
		Pos:  f.Pos.Sub(offset),
		Vel:  f.Vel.Sub(kick),
		Spin: -parameter.FruitHalfSpin,
		Life: parameter.FruitHalfLifetime,
	}
	f.State = FruitSliced
	return true
}

// Advance integrates the live kinematics under gravity and runs lifetimes
// down. A whole fruit expires on timeout; a sliced fruit expires once both
// halves are spent. Returns true when the fruit expired during this call.
func (f *Fruit) Advance(dt float64, gravity vmath.Vec2) bool {
	if dt <= 0 || f.State == FruitExpired {
		return false
	}
	switch f.State {
	case FruitWhole:
		f.Vel = f.Vel.Add(gravity.Scale(dt))
		f.Pos = f.Pos.Add(f.Vel.Scale(dt))
		f.Life -= dt
		if f.Life <= 0 {
			f.State = FruitExpired
			return true
		}
	case FruitSliced:
		spent := 0
		for i := range f.Halves {
			h := &f.Halves[i]
			if h.Life <= 0 {
				spent++
				continue
			}
			h.Vel = h.Vel.Add(gravity.Scale(dt))
			h.Pos = h.Pos.Add(h.Vel.Scale(dt))
			h.Angle += h.Spin * dt
			h.Life -= dt
			if h.Life <= 0 {
				spent++
			}
		}
		if spent == len(f.Halves) {
			f.State = FruitExpired
			return true
		}
	}
	return false
}
