package conductor

import (
	"math"
	"time"

	"github.com/gopxl/beep"

	"github.com/nsscreencast/595-audiokit-6/engine"
)

const (
	MinAutopanRate = 0.05
	MaxAutopanRate = 5

	defaultAutopanRate  = 0.2
	defaultAutopanDepth = 0.75
	defaultSourceGain   = 0.5
	defaultReverbMix    = 0.35

	// autopanInterval is the nominal sweep tick. The phase accumulator
	// advances by this much per tick regardless of the wall clock, so the
	// sweep is deterministic in the number of ticks taken.
	autopanInterval = 16 * time.Millisecond
)

// autopanOffsets decorrelate the three sources: they sweep the stereo field a
// third of a cycle apart.
var autopanOffsets = [3]float64{0, 2 * math.Pi / 3, 4 * math.Pi / 3}

// AmbienceConductor drives the noise screen: three noise generators (white,
// pink, brown), each behind its own panner, summed into a shared reverb. The
// autopan sweep runs as a ticker entry while enabled and writes each source's
// pan from one shared phase accumulator.
//
// Must only be called from the GUI event loop, like the other conductors.
type AmbienceConductor struct {
	engine  *engine.Engine
	ticker  *Ticker
	bus     *beep.Mixer
	reverb  *engine.Reverb
	sources [3]*ambienceSource

	autopan      bool
	autopanRate  float64
	autopanDepth float64
	phase        float64
	tick         *TickerEntry
	playing      bool
}

type ambienceSource struct {
	noise *engine.Noise
	pan   *engine.Pan
	gain  float64
}

func NewAmbienceConductor(e *engine.Engine, ticker *Ticker) *AmbienceConductor {
	c := &AmbienceConductor{
		engine:       e,
		ticker:       ticker,
		bus:          &beep.Mixer{},
		autopanRate:  defaultAutopanRate,
		autopanDepth: defaultAutopanDepth,
	}
	for i, color := range []engine.NoiseColor{engine.White, engine.Pink, engine.Brown} {
		noise := e.NewNoise(color)
		pan := e.NewPan(noise)
		c.sources[i] = &ambienceSource{noise: noise, pan: pan, gain: defaultSourceGain}
		c.bus.Add(pan)
	}
	c.reverb = e.NewReverb(c.bus)
	c.reverb.SetMix(defaultReverbMix)
	e.AddSource(c.reverb)
	return c
}

func (c *AmbienceConductor) NumSources() int       { return len(c.sources) }
func (c *AmbienceConductor) Playing() bool         { return c.playing }
func (c *AmbienceConductor) Autopan() bool         { return c.autopan }
func (c *AmbienceConductor) AutopanRate() float64  { return c.autopanRate }
func (c *AmbienceConductor) AutopanDepth() float64 { return c.autopanDepth }
func (c *AmbienceConductor) ReverbMix() float64    { return c.reverb.Mix() }
func (c *AmbienceConductor) SourceGain(i int) float64 {
	return c.sources[i].gain
}
func (c *AmbienceConductor) SourcePan(i int) float64 {
	return c.sources[i].pan.Pan()
}
func (c *AmbienceConductor) SourceColor(i int) engine.NoiseColor {
	return c.sources[i].noise.Color()
}

func (c *AmbienceConductor) Play() {
	if c.playing {
		return
	}
	c.playing = true
	for _, s := range c.sources {
		s.noise.SetGain(s.gain)
	}
}

func (c *AmbienceConductor) Stop() {
	if !c.playing {
		return
	}
	c.playing = false
	for _, s := range c.sources {
		s.noise.SetGain(0)
	}
}

func (c *AmbienceConductor) SetSourceGain(i int, gain float64) {
	if i < 0 || i >= len(c.sources) {
		return
	}
	gain = clamp01(gain)
	s := c.sources[i]
	if s.gain == gain {
		return
	}
	s.gain = gain
	if c.playing {
		s.noise.SetGain(gain)
	}
}

// SetSourcePan places a source by hand. While the autopan sweep is on the
// next tick overwrites it.
func (c *AmbienceConductor) SetSourcePan(i int, pan float64) {
	if i < 0 || i >= len(c.sources) {
		return
	}
	c.sources[i].pan.SetPan(pan)
}

func (c *AmbienceConductor) SetReverbMix(mix float64) {
	c.reverb.SetMix(clamp01(mix))
}

// SetAutopan switches the sweep on or off. Switching off leaves the pans
// wherever the last tick put them; switching back on restarts the sweep from
// phase zero.
func (c *AmbienceConductor) SetAutopan(enabled bool) {
	if c.autopan == enabled {
		return
	}
	c.autopan = enabled
	if enabled {
		c.phase = 0
		c.tick = c.ticker.Register(autopanInterval, c.autopanTick)
		return
	}
	c.ticker.Unregister(c.tick)
	c.tick = nil
}

func (c *AmbienceConductor) SetAutopanRate(rate float64) {
	if rate < MinAutopanRate {
		rate = MinAutopanRate
	}
	if rate > MaxAutopanRate {
		rate = MaxAutopanRate
	}
	c.autopanRate = rate
}

func (c *AmbienceConductor) SetAutopanDepth(depth float64) {
	c.autopanDepth = clamp01(depth)
}

func (c *AmbienceConductor) autopanTick(now time.Time) {
	c.phase += 2 * math.Pi * c.autopanRate * autopanInterval.Seconds()
	for i, s := range c.sources {
		s.pan.SetPan(math.Sin(c.phase+autopanOffsets[i]) * c.autopanDepth)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
