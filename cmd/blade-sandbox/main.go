// Interactive terminal sandbox: a rope strung across the top, a grid of
// chainable tiles, falling fruit and a couple of bouncing balls. Drag
// with the mouse to slash; q or Esc quits, r respawns the scene, m
// toggles sound.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/chain-blade/audio"
	"github.com/lixenwraith/chain-blade/chain"
	"github.com/lixenwraith/chain-blade/config"
	"github.com/lixenwraith/chain-blade/core"
	"github.com/lixenwraith/chain-blade/engine"
	"github.com/lixenwraith/chain-blade/physics"
	"github.com/lixenwraith/chain-blade/vmath"
)

var (
	tuningPath = flag.String("tuning", "tuning.toml", "Optional TOML tuning overlay")
	mute       = flag.Bool("mute", false, "Disable audio cues")
)

// cellAspect compensates terminal cells being roughly twice as tall as wide
const cellAspect = 2.0

var tileColors = map[core.TileKind]colorful.Color{
	core.TileAmber:  {R: 1.0, G: 0.72, B: 0.2},
	core.TileJade:   {R: 0.3, G: 0.85, B: 0.5},
	core.TileRuby:   {R: 0.95, G: 0.3, B: 0.35},
	core.TileCobalt: {R: 0.35, G: 0.55, B: 0.95},
}

func main() {
	flag.Parse()

	tuning, err := config.Load(*tuningPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tuning: %v (using defaults)\n", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		panic(err)
	}
	if err := screen.Init(); err != nil {
		panic(err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.SetStyle(tcell.StyleDefault.Background(tcell.NewRGBColor(16, 16, 24)))

	soundOn := !*mute
	if soundOn {
		if err := speaker.Init(audio.DefaultSampleRate, audio.DefaultSampleRate.N(time.Second/10)); err != nil {
			soundOn = false
		} else {
			defer speaker.Close()
		}
	}

	w, h := screen.Size()
	worldW, worldH := float64(w), float64(h)*cellAspect

	game := buildScene(tuning, worldW, worldH)

	eventCh := make(chan tcell.Event, 16)
	go func() {
		for {
			eventCh <- screen.PollEvent()
		}
	}()

	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	dragging := false
	spawnTimer := 0.0
	for {
		select {
		case ev := <-eventCh:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				w, h = screen.Size()
				worldW, worldH = float64(w), float64(h)*cellAspect
				screen.Sync()
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape, ev.Rune() == 'q':
					return
				case ev.Rune() == 'r':
					game = buildScene(tuning, worldW, worldH)
				case ev.Rune() == 'm':
					soundOn = !soundOn
				}
			case *tcell.EventMouse:
				x, y := ev.Position()
				p := vmath.V(float64(x), float64(y)*cellAspect)
				if ev.Buttons()&tcell.Button1 != 0 {
					if dragging {
						game.StrokeMove(p)
					} else {
						game.StrokeBegin(p)
						dragging = true
					}
				} else if dragging {
					game.StrokeEnd(p)
					dragging = false
				}
			}

		case <-ticker.C:
			dt := 1.0 / 60.0
			spawnTimer += dt
			if spawnTimer > 2.5 {
				spawnTimer = 0
				game.AddFruit(randomFruit(worldW))
			}
			game.Step(dt)
			playCues(game, soundOn)
			draw(screen, game, h)
		}
	}
}

func buildScene(tuning config.Tuning, worldW, worldH float64) *engine.Game {
	cfg := engine.DefaultConfig()
	cfg.Field.Gravity = vmath.V(0, tuning.BodyGravityY)
	cfg.Field.Substeps = tuning.Substeps
	cfg.BladeRadius = tuning.BladeRadius
	cfg.Chain = chain.Config{
		LinkDistance:         tuning.LinkDistance,
		BladeRadius:          tuning.BladeRadius,
		MinCluster:           tuning.MinCluster,
		ScorePerTile:         tuning.ScorePerTile,
		ScorePerClusterBonus: tuning.ScorePerClusterBonus,
	}
	game := engine.NewGame(cfg)

	game.Field().SetBounds(vmath.Rect{Max: vmath.V(worldW, worldH)})

	// Rope strung across the top, pinned both ends
	ropeCfg := physics.DefaultRopeConfig(
		vmath.V(worldW*0.15, worldH*0.12),
		vmath.V(worldW*0.85, worldH*0.12),
		12,
	)
	ropeCfg.PinEnd = true
	ropeCfg.Gravity = vmath.V(0, tuning.RopeGravityY)
	ropeCfg.Stiffness = tuning.RopeStiffness
	ropeCfg.Iterations = tuning.RopeIterations
	ropeCfg.Damping = tuning.RopeDamping
	rope := physics.NewRope(ropeCfg)
	rope.SetBounds(vmath.Rect{Max: vmath.V(worldW, worldH)})
	game.AddRope(rope)

	// Tile band across the middle
	kinds := []core.TileKind{core.TileAmber, core.TileJade, core.TileRuby, core.TileCobalt}
	cols := int(worldW / 12)
	for i := 0; i < cols; i++ {
		kind := kinds[rand.Intn(len(kinds))]
		pos := vmath.V(6+float64(i)*12, worldH*0.5)
		game.AddTile(core.NewTile(kind, pos, vmath.V(4, 4), 1))
	}

	// A few bouncing balls and a slanted wall
	for i := 0; i < 4; i++ {
		game.Field().AddBody(physics.Body{
			Pos:         vmath.V(worldW*0.2+float64(i)*worldW*0.18, worldH*0.25),
			Vel:         vmath.V(rand.Float64()*60-30, 0),
			Radius:      3,
			Mass:        1,
			Restitution: 0.7,
			Damping:     0.05,
			Tag:         i,
		})
	}
	game.Field().AddWall(physics.Wall{
		A: vmath.V(worldW*0.1, worldH*0.8),
		B: vmath.V(worldW*0.5, worldH*0.9),
		Thickness: 1, Restitution: 0.6,
	})

	return game
}

func randomFruit(worldW float64) *core.Fruit {
	kinds := []core.FruitKind{core.FruitMelon, core.FruitApple, core.FruitPlum, core.FruitPeach}
	return core.NewFruit(
		kinds[rand.Intn(len(kinds))],
		vmath.V(rand.Float64()*worldW, 0),
		vmath.V(rand.Float64()*30-15, 20),
		3,
	)
}

func playCues(game *engine.Game, soundOn bool) {
	events := game.Events().Consume()
	if !soundOn {
		return
	}
	for _, ev := range events {
		var cue beep.Streamer
		switch ev.Type {
		case engine.EventTileHit:
			cue = audio.HitCue(audio.DefaultSampleRate, 0.5)
		case engine.EventRopeCut, engine.EventFruitSliced:
			cue = audio.SliceCue(audio.DefaultSampleRate, 0.6)
		case engine.EventTileTriggered:
			cue = audio.ClearCue(audio.DefaultSampleRate, 0.7)
		case engine.EventScore:
			cue = audio.ScoreCue(audio.DefaultSampleRate, 0.4)
		}
		if cue != nil {
			speaker.Play(cue)
		}
	}
}

func draw(screen tcell.Screen, game *engine.Game, h int) {
	screen.Clear()

	// Rope segments fade with remaining life
	ropeBase := colorful.Color{R: 0.85, G: 0.75, B: 0.55}
	for _, segments := range game.RopeViews() {
		for _, s := range segments {
			c := dim(ropeBase, s.Life)
			drawCell(screen, s.A.Lerp(s.B, 0.5), '~', c)
		}
	}

	// Tiles glow by state
	for _, t := range game.TileViews() {
		if t.State == core.TileCleared {
			continue
		}
		base := tileColors[t.Kind]
		bright := dim(base, 0.35+0.65*t.Glow)
		drawCell(screen, t.Pos, '◆', bright)
	}

	// Bodies and walls
	ball := colorful.Color{R: 0.8, G: 0.8, B: 0.9}
	for _, b := range game.BodyViews() {
		drawCell(screen, b.Pos, '●', ball)
	}
	wallC := colorful.Color{R: 0.45, G: 0.45, B: 0.5}
	for _, wl := range game.WallViews() {
		steps := int(wl.A.Distance(wl.B))
		for i := 0; i <= steps; i++ {
			drawCell(screen, wl.A.Lerp(wl.B, float64(i)/float64(max(steps, 1))), '═', wallC)
		}
	}

	// Fruit: whole pieces and live halves
	for _, f := range game.FruitViews() {
		switch f.State {
		case core.FruitWhole:
			drawCell(screen, f.Pos, 'O', tileColors[core.TileKind(f.Kind)%4])
		case core.FruitSliced:
			for _, half := range f.Halves {
				if half.Life > 0 {
					drawCell(screen, half.Pos, 'o', dim(colorful.Color{R: 0.9, G: 0.9, B: 0.6}, half.Life))
				}
			}
		}
	}

	status := fmt.Sprintf(" score %d  frame %d  bodies %d ",
		game.Score(), game.Frame(), game.LastSummary().LiveBodies)
	drawText(screen, 0, h-1, status, tcell.StyleDefault.Foreground(tcell.ColorWhite))

	screen.Show()
}

func dim(c colorful.Color, f float64) colorful.Color {
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	// Blend toward near-black in perceptual space
	return c.BlendLab(colorful.Color{R: 0.05, G: 0.05, B: 0.08}, 1-f)
}

func drawCell(screen tcell.Screen, p vmath.Vec2, r rune, c colorful.Color) {
	x := int(p.X)
	y := int(p.Y / cellAspect)
	cr, cg, cb := c.Clamped().RGB255()
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(cr), int32(cg), int32(cb)))
	screen.SetContent(x, y, r, nil, style)
}

func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for i, r := range s {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
