package engine

import "github.com/gopxl/beep"

// Reverb is a small Schroeder reverberator: four parallel feedback comb
// filters into two series allpass filters per channel, the right channel
// running slightly longer delays to widen the tail, and a DC filter on the
// wet signal. Mix blends dry against wet; at mix 0 the input passes through
// untouched.
type Reverb struct {
	e     *Engine
	src   beep.Streamer
	mix   ramp
	combs [2][4]comb
	allps [2][2]allpass
	dc    [2]dcFilter
}

// Comb and allpass delays in samples at 44100 Hz; scaled to the engine rate.
var (
	combDelays    = [4]int{1116, 1188, 1277, 1356}
	allpassDelays = [2]int{225, 556}
)

const (
	combFeedback    = 0.84
	combDamp        = 0.2
	allpassFeedback = 0.5
	stereoSpread    = 23
	reverbInputGain = 0.035
)

func (e *Engine) NewReverb(src beep.Streamer) *Reverb {
	r := &Reverb{e: e, src: src}
	for ch := 0; ch < 2; ch++ {
		for i, d := range combDelays {
			r.combs[ch][i] = newComb(scaleDelay(d+ch*stereoSpread, e.sampleRate))
		}
		for i, d := range allpassDelays {
			r.allps[ch][i] = newAllpass(scaleDelay(d+ch*stereoSpread, e.sampleRate))
		}
	}
	return r
}

func scaleDelay(samples, sampleRate int) int {
	scaled := samples * sampleRate / 44100
	if scaled < 1 {
		return 1
	}
	return scaled
}

// SetMix sets the dry/wet blend: 0 is dry only, 1 is wet only.
func (r *Reverb) SetMix(mix float64) {
	r.e.mtx.Lock()
	defer r.e.mtx.Unlock()
	r.mix.set(clampUnit(mix), r.e.rampFrames())
}

func (r *Reverb) Mix() float64 {
	r.e.mtx.Lock()
	defer r.e.mtx.Unlock()
	return r.mix.target
}

func (r *Reverb) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = r.src.Stream(samples)
	for i := range samples[:n] {
		mix := r.mix.next()
		for ch := 0; ch < 2; ch++ {
			dry := samples[i][ch]
			in := dry * reverbInputGain
			var wet float64
			for c := range r.combs[ch] {
				wet += r.combs[ch][c].process(in)
			}
			for a := range r.allps[ch] {
				wet = r.allps[ch][a].process(wet)
			}
			wet = r.dc[ch].process(wet)
			samples[i][ch] = dry*(1-mix) + wet*mix
		}
	}
	return n, ok
}

func (r *Reverb) Err() error {
	return r.src.Err()
}

// comb is a feedback comb filter with a one-pole lowpass in the loop.
type comb struct {
	buf      []float64
	pos      int
	filtered float64
}

func newComb(delay int) comb {
	return comb{buf: make([]float64, delay)}
}

func (c *comb) process(in float64) float64 {
	out := c.buf[c.pos]
	c.filtered = out*(1-combDamp) + c.filtered*combDamp
	c.buf[c.pos] = in + c.filtered*combFeedback
	c.pos++
	if c.pos >= len(c.buf) {
		c.pos = 0
	}
	return out
}

type allpass struct {
	buf []float64
	pos int
}

func newAllpass(delay int) allpass {
	return allpass{buf: make([]float64, delay)}
}

func (a *allpass) process(in float64) float64 {
	delayed := a.buf[a.pos]
	out := delayed - in
	a.buf[a.pos] = in + delayed*allpassFeedback
	a.pos++
	if a.pos >= len(a.buf) {
		a.pos = 0
	}
	return out
}

// dcFilter removes the offset that the comb feedback can accumulate.
type dcFilter struct {
	lastIn, lastOut float64
}

func (d *dcFilter) process(in float64) float64 {
	out := in - d.lastIn + 0.995*d.lastOut
	d.lastIn = in
	d.lastOut = out
	return out
}
