package engine

import (
	"fmt"
	"math"
)

type Shape int

const (
	Sine Shape = iota
	Triangle
	Saw
	Square
)

func (s Shape) String() string {
	switch s {
	case Triangle:
		return "triangle"
	case Saw:
		return "saw"
	case Square:
		return "square"
	default:
		return "sine"
	}
}

// ParseShape maps a waveform name back to its Shape.
func ParseShape(name string) (Shape, error) {
	for _, s := range []Shape{Sine, Triangle, Saw, Square} {
		if s.String() == name {
			return s, nil
		}
	}
	return Sine, fmt.Errorf("unknown waveform %q", name)
}

// Oscillator is a single-voice waveform generator. It streams the waveform
// centered, at a ramped amplitude, so the voice mixer above it decides the
// stereo placement.
type Oscillator struct {
	e     *Engine
	shape Shape
	freq  float64
	phase float64
	amp   ramp
}

// NewOscillator returns a silent oscillator; set an amplitude to hear it.
func (e *Engine) NewOscillator(shape Shape, freq float64) *Oscillator {
	return &Oscillator{e: e, shape: shape, freq: freq}
}

func (o *Oscillator) SetFrequency(f float64) {
	o.e.mtx.Lock()
	defer o.e.mtx.Unlock()
	if f > 0 {
		o.freq = f
	}
}

func (o *Oscillator) Frequency() float64 {
	o.e.mtx.Lock()
	defer o.e.mtx.Unlock()
	return o.freq
}

func (o *Oscillator) SetShape(s Shape) {
	o.e.mtx.Lock()
	defer o.e.mtx.Unlock()
	o.shape = s
}

func (o *Oscillator) Shape() Shape {
	o.e.mtx.Lock()
	defer o.e.mtx.Unlock()
	return o.shape
}

func (o *Oscillator) SetAmplitude(a float64) {
	o.e.mtx.Lock()
	defer o.e.mtx.Unlock()
	o.amp.set(clampUnit(a), o.e.rampFrames())
}

func (o *Oscillator) Amplitude() float64 {
	o.e.mtx.Lock()
	defer o.e.mtx.Unlock()
	return o.amp.target
}

func (o *Oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	rate := float64(o.e.sampleRate)
	for i := range samples {
		_, o.phase = math.Modf(o.phase + o.freq/rate)
		v := o.sample() * o.amp.next()
		samples[i][0] = v
		samples[i][1] = v
	}
	return len(samples), true
}

func (o *Oscillator) sample() float64 {
	switch o.shape {
	case Triangle:
		return 4*math.Abs(o.phase-0.5) - 1
	case Saw:
		return 2*o.phase - 1
	case Square:
		// clipped sine instead of a hard edge, to keep the aliasing mild
		v := math.Sin(2*math.Pi*o.phase) * 5
		if v > 1 {
			return 1
		}
		if v < -1 {
			return -1
		}
		return v
	default:
		return math.Sin(2 * math.Pi * o.phase)
	}
}

func (o *Oscillator) Err() error {
	return nil
}
