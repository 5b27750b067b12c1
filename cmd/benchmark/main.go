// Headless step-throughput benchmark for the rigid body field and rope
// solver. Prints steps per second and collision/clip totals.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"time"

	"github.com/lixenwraith/chain-blade/physics"
	"github.com/lixenwraith/chain-blade/vmath"
)

var (
	bodies   = flag.Int("bodies", 64, "Dynamic body count")
	segments = flag.Int("segments", 32, "Rope segment count")
	duration = flag.Duration("duration", 5*time.Second, "Benchmark duration")
)

func main() {
	flag.Parse()

	cfg := physics.DefaultFieldConfig()
	field := physics.NewField(cfg)
	field.SetBounds(vmath.Rect{Max: vmath.V(800, 600)})
	for i := 0; i < *bodies; i++ {
		field.AddBody(physics.Body{
			Pos:         vmath.V(rand.Float64()*800, rand.Float64()*300),
			Vel:         vmath.V(rand.Float64()*200-100, 0),
			Radius:      4 + rand.Float64()*6,
			Mass:        1,
			Restitution: 0.6,
			Damping:     0.02,
		})
	}
	field.AddWall(physics.Wall{
		A: vmath.V(100, 400), B: vmath.V(700, 480),
		Thickness: 2, Restitution: 0.5,
	})

	rope := physics.NewRope(physics.DefaultRopeConfig(vmath.V(100, 50), vmath.V(700, 50), *segments))
	rope.SetBounds(vmath.Rect{Max: vmath.V(800, 600)})

	const dt = 1.0 / 60.0
	var steps, resolved, clipped int
	start := time.Now()
	for time.Since(start) < *duration {
		sum := field.Step(dt)
		rope.Step(dt)
		steps++
		resolved += sum.Resolved
		clipped += sum.Clipped
	}
	elapsed := time.Since(start)

	fmt.Printf("bodies=%d segments=%d steps=%d elapsed=%v\n", *bodies, *segments, steps, elapsed.Round(time.Millisecond))
	fmt.Printf("steps/sec=%.0f resolved=%d clipped=%d\n", float64(steps)/elapsed.Seconds(), resolved, clipped)
	fmt.Printf("per-step=%.2fµs\n", float64(elapsed.Microseconds())/float64(steps))
}
