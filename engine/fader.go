package engine

import (
	"math"

	"github.com/gopxl/beep"
)

// Fader scales the wrapped source by a ramped linear gain.
type Fader struct {
	e    *Engine
	src  beep.Streamer
	gain ramp
}

func (e *Engine) NewFader(src beep.Streamer, gain float64) *Fader {
	f := &Fader{e: e, src: src}
	f.gain.set(clampUnit(gain), 0)
	return f
}

func (f *Fader) SetGain(gain float64) {
	f.e.mtx.Lock()
	defer f.e.mtx.Unlock()
	f.gain.set(clampUnit(gain), f.e.rampFrames())
}

func (f *Fader) Gain() float64 {
	f.e.mtx.Lock()
	defer f.e.mtx.Unlock()
	return f.gain.target
}

func (f *Fader) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.src.Stream(samples)
	for i := range samples[:n] {
		g := f.gain.next()
		samples[i][0] *= g
		samples[i][1] *= g
	}
	return n, ok
}

func (f *Fader) Err() error {
	return f.src.Err()
}

// Pan places the wrapped source in the stereo field with constant power.
// -1 is hard left, 0 center, 1 hard right. The pan value is ramped like
// gains are, so autopan steps and slider drags stay click free.
type Pan struct {
	e   *Engine
	src beep.Streamer
	pan ramp
}

func (e *Engine) NewPan(src beep.Streamer) *Pan {
	return &Pan{e: e, src: src}
}

func (p *Pan) SetPan(pan float64) {
	p.e.mtx.Lock()
	defer p.e.mtx.Unlock()
	if pan < -1 {
		pan = -1
	} else if pan > 1 {
		pan = 1
	}
	p.pan.set(pan, p.e.rampFrames())
}

func (p *Pan) Pan() float64 {
	p.e.mtx.Lock()
	defer p.e.mtx.Unlock()
	return p.pan.target
}

func (p *Pan) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = p.src.Stream(samples)
	for i := range samples[:n] {
		angle := (p.pan.next() + 1) * math.Pi / 4
		samples[i][0] *= math.Cos(angle)
		samples[i][1] *= math.Sin(angle)
	}
	return n, ok
}

func (p *Pan) Err() error {
	return p.src.Err()
}
