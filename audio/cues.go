// Package audio synthesizes short procedural feedback cues for hosts
// reacting to game events. The simulation core never imports it; hosts
// consume the event queue and pick a cue per event type.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// DefaultSampleRate matches the host speaker initialization
const DefaultSampleRate = beep.SampleRate(44100)

// Cue durations and shaping
const (
	hitCueDuration   = 70 * time.Millisecond
	sliceCueDuration = 220 * time.Millisecond
	clearCueDuration = 450 * time.Millisecond
	scoreCueDuration = 90 * time.Millisecond

	cueAttack  = 4 * time.Millisecond
	cueRelease = 40 * time.Millisecond
)

// WaveShape selects the oscillator waveform
type WaveShape int

const (
	WaveSine WaveShape = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a raw mono wave on both channels
type oscillator struct {
	freq     float64
	sweep    float64 // frequency delta applied over the full duration
	phase    float64
	duration int
	position int
	wave     WaveShape
	rate     beep.SampleRate
}

// NewOscillator creates a fixed-duration wave source. sweep shifts the
// frequency linearly across the duration (negative for a falling tone).
func NewOscillator(freq, sweep float64, duration time.Duration, wave WaveShape, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		sweep:    sweep,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, false
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		f := o.freq
		if o.sweep != 0 && o.duration > 0 {
			f += o.sweep * float64(o.position) / float64(o.duration)
		}
		o.phase += f / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope shapes s with linear attack and release ramps
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, false
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s in a log-scaled volume effect; zero volume is silent
// because math.Log2(0) is -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// HitCue is a short square blip for a blade touching a tile
func HitCue(rate beep.SampleRate, vol float64) beep.Streamer {
	osc := NewOscillator(660, 0, hitCueDuration, WaveSquare, rate)
	return newVolume(NewEnvelope(osc, hitCueDuration, cueAttack, cueRelease, rate), vol)
}

// SliceCue is a falling saw whoosh for a severed rope or split fruit
func SliceCue(rate beep.SampleRate, vol float64) beep.Streamer {
	osc := NewOscillator(900, -600, sliceCueDuration, WaveSaw, rate)
	return newVolume(NewEnvelope(osc, sliceCueDuration, cueAttack, 120*time.Millisecond, rate), vol)
}

// ClearCue is a two-tone sine bell for a triggered chain
func ClearCue(rate beep.SampleRate, vol float64) beep.Streamer {
	fund := NewEnvelope(NewOscillator(880, 0, clearCueDuration, WaveSine, rate),
		clearCueDuration, cueAttack, 400*time.Millisecond, rate)
	over := NewEnvelope(NewOscillator(1760, 0, clearCueDuration, WaveSine, rate),
		clearCueDuration, cueAttack, 160*time.Millisecond, rate)
	mixed := beep.Mix(
		newVolume(fund, 0.7),
		newVolume(over, 0.3),
	)
	return newVolume(mixed, vol)
}

// ScoreCue is a quick rising blip for a score delta
func ScoreCue(rate beep.SampleRate, vol float64) beep.Streamer {
	osc := NewOscillator(987.77, 330, scoreCueDuration, WaveSquare, rate)
	return newVolume(NewEnvelope(osc, scoreCueDuration, cueAttack, cueRelease, rate), vol)
}
