package engine

import (
	"math"
	"time"

	playground "github.com/nsscreencast/595-audiokit-6"
)

const (
	limiterCeiling = 0.95
	limiterAttack  = 5 * time.Millisecond
	limiterDecay   = 80 * time.Millisecond
)

// Limiter keeps the master bus inside the ceiling. An RMS tracker over the
// attack window drives an exponential gain that dives quickly on overshoot
// and recovers slowly, and a lookahead delay of the same window lets the gain
// drop before the peak itself arrives. The gain never goes above unity, so
// quiet material passes unchanged; a final clip at [-1, 1] catches the stray
// peaks the soft stage lets through.
type Limiter struct {
	limit    float64
	down, up float64
	amp      float64
	rms      rmsTracker
	delay    [2]constDelay
}

func newLimiter(sampleRate int, limit float64, attack, decay time.Duration) *Limiter {
	attackFrames := int(playground.NumSamples(sampleRate, attack))
	if attackFrames < 1 {
		attackFrames = 1
	}
	decayFrames := int(playground.NumSamples(sampleRate, decay))
	if decayFrames < 1 {
		decayFrames = 1
	}
	l := &Limiter{
		limit: limit,
		down:  -1 / float64(attackFrames),
		up:    1 / float64(decayFrames),
		rms:   newRMSTracker(attackFrames),
	}
	l.delay[0] = newConstDelay(attackFrames)
	l.delay[1] = newConstDelay(attackFrames)
	return l
}

func (l *Limiter) process(buf playground.AudioBuffer) {
	for i := range buf {
		m := math.Max(math.Abs(buf[i][0]), math.Abs(buf[i][1]))
		l.rms.add(m)
		gain := math.Exp2(l.amp)
		if y := l.rms.amplitude() / l.limit; y > 0 && math.Tanh(y)/y < gain {
			l.amp += l.down
		} else if l.amp < 0 {
			l.amp += l.up
			if l.amp > 0 {
				l.amp = 0
			}
		}
		buf[i][0] = clip(gain * l.delay[0].process(buf[i][0]))
		buf[i][1] = clip(gain * l.delay[1].process(buf[i][1]))
	}
}

func clip(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// rmsTracker keeps a running root mean square over a fixed window.
type rmsTracker struct {
	buf []float64
	pos int
	sum float64
}

func newRMSTracker(window int) rmsTracker {
	return rmsTracker{buf: make([]float64, window)}
}

func (r *rmsTracker) add(x float64) {
	sq := x * x
	r.sum += sq - r.buf[r.pos]
	if r.sum < 0 {
		r.sum = 0
	}
	r.buf[r.pos] = sq
	r.pos++
	if r.pos >= len(r.buf) {
		r.pos = 0
	}
}

func (r *rmsTracker) amplitude() float64 {
	return math.Sqrt(r.sum / float64(len(r.buf)))
}

type constDelay struct {
	buf []float64
	pos int
}

func newConstDelay(delay int) constDelay {
	return constDelay{buf: make([]float64, delay)}
}

func (d *constDelay) process(x float64) float64 {
	out := d.buf[d.pos]
	d.buf[d.pos] = x
	d.pos++
	if d.pos >= len(d.buf) {
		d.pos = 0
	}
	return out
}
