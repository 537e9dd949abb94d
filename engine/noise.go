package engine

import (
	"math/rand"
	"time"
)

type NoiseColor int

const (
	White NoiseColor = iota
	Pink
	Brown
)

func (c NoiseColor) String() string {
	switch c {
	case Pink:
		return "pink"
	case Brown:
		return "brown"
	default:
		return "white"
	}
}

// Noise generates white, pink or brown noise, centered, with a ramped gain.
// Pink noise uses the Kellet economy filter; brown noise is a leaky
// integrator over white noise.
type Noise struct {
	e          *Engine
	color      NoiseColor
	rng        *rand.Rand
	gain       ramp
	b0, b1, b2 float64
	last       float64
}

func (e *Engine) NewNoise(color NoiseColor) *Noise {
	return &Noise{e: e, color: color, rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (n *Noise) SetGain(gain float64) {
	n.e.mtx.Lock()
	defer n.e.mtx.Unlock()
	n.gain.set(clampUnit(gain), n.e.rampFrames())
}

func (n *Noise) Gain() float64 {
	n.e.mtx.Lock()
	defer n.e.mtx.Unlock()
	return n.gain.target
}

func (n *Noise) Color() NoiseColor {
	return n.color
}

func (n *Noise) Stream(samples [][2]float64) (num int, ok bool) {
	for i := range samples {
		v := n.sample() * n.gain.next()
		samples[i][0] = v
		samples[i][1] = v
	}
	return len(samples), true
}

func (n *Noise) sample() float64 {
	white := n.rng.Float64()*2 - 1
	switch n.color {
	case Pink:
		n.b0 = 0.99765*n.b0 + white*0.0990460
		n.b1 = 0.96300*n.b1 + white*0.2965164
		n.b2 = 0.57000*n.b2 + white*1.0526913
		return (n.b0 + n.b1 + n.b2 + white*0.1848) * 0.2
	case Brown:
		n.last = (n.last + 0.02*white) / 1.02
		return n.last * 3.5
	default:
		return white
	}
}

func (n *Noise) Err() error {
	return nil
}
