// Package engine implements the audio graph: oscillators, noise generators,
// file players, faders, panners and a reverb, built as streamer nodes and
// mixed down into a single limited master bus.
//
// All node parameters are plain scalars guarded by the engine mutex. The
// output goroutine calls Render while the UI thread calls node setters, so
// setters lock the engine themselves and Stream methods run with the lock
// already held by Render.
package engine

import (
	"sync"

	"github.com/gopxl/beep"

	playground "github.com/nsscreencast/595-audiokit-6"
)

// Attenuator is a node exposing an amplitude field. Conductors that only need
// to scale a source program against this instead of the concrete node type.
type Attenuator interface {
	SetGain(gain float64)
	Gain() float64
}

// Engine owns the master bus and the sample clock. Conductor graphs attach
// once with AddSource and stay attached; an inactive graph renders silence.
type Engine struct {
	mtx        sync.Mutex
	sampleRate int
	master     beep.Mixer
	limiter    *Limiter
	clock      int64
}

func NewEngine(sampleRate int) *Engine {
	e := &Engine{sampleRate: sampleRate}
	e.limiter = newLimiter(sampleRate, limiterCeiling, limiterAttack, limiterDecay)
	return e
}

func (e *Engine) SampleRate() int {
	return e.sampleRate
}

// Now returns the number of sample frames rendered so far. Scheduled starts
// are expressed on this clock.
func (e *Engine) Now() int64 {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	return e.clock
}

// AddSource attaches a graph root to the master bus.
func (e *Engine) AddSource(s beep.Streamer) {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	e.master.Add(s)
}

// Render pulls one buffer's worth of audio through the whole graph and
// advances the sample clock. It is safe to call concurrently with node
// parameter setters.
func (e *Engine) Render(buf playground.AudioBuffer) error {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	if len(buf) == 0 {
		return nil
	}
	buf.Zero()
	e.master.Stream(buf)
	e.limiter.process(buf)
	e.clock += int64(len(buf))
	return nil
}

// ramp glides a parameter linearly toward its target over a fixed number of
// frames so that gain and amplitude changes do not click.
type ramp struct {
	value, target, step float64
	frames              int
}

func (r *ramp) set(target float64, frames int) {
	r.target = target
	if frames <= 0 || r.value == target {
		r.value = target
		r.frames = 0
		return
	}
	r.step = (target - r.value) / float64(frames)
	r.frames = frames
}

func (r *ramp) next() float64 {
	if r.frames > 0 {
		r.value += r.step
		r.frames--
		if r.frames == 0 {
			r.value = r.target
		}
	}
	return r.value
}

// rampFrames is how long parameter glides take; about 5 ms.
func (e *Engine) rampFrames() int {
	return e.sampleRate / 200
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
