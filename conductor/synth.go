package conductor

import (
	"github.com/gopxl/beep"

	playground "github.com/nsscreencast/595-audiokit-6"
	"github.com/nsscreencast/595-audiokit-6/engine"
)

// Slider ranges of the synth screen. MIDI notes are clamped to the same
// frequency range.
const (
	MinSynthFrequency = 110
	MaxSynthFrequency = 1760

	MinDetuneCents = -1200
	MaxDetuneCents = 1200

	defaultSynthFrequency = 440
	defaultDetuneCents    = 8
	defaultOctaveMix      = 50
	defaultDetuneMix      = 50

	// synthOscLevel is the amplitude of a fully mixed-in oscillator. Three
	// oscillators at full level still stay well clear of the limiter.
	synthOscLevel = 0.3

	defaultVoiceGain = 1.0
)

// SynthConductor drives the monophonic three-oscillator synth: a base
// oscillator at the slider frequency, an octave oscillator at exactly twice
// the frequency and a third oscillator a few cents off it. The octave and
// detune mixes are percentages of the base level. All three run through one
// voice fader, which the mute toggle drives.
//
// The conductor is owned by the model and must only be called from the GUI
// event loop; the engine nodes it writes to are safe to set while audio runs.
type SynthConductor struct {
	engine *engine.Engine
	base   *engine.Oscillator
	octave *engine.Oscillator
	detune *engine.Oscillator
	voice  *engine.Fader
	bus    *beep.Mixer

	frequency   float64
	detuneCents float64
	octaveMix   float64 // percent
	detuneMix   float64 // percent
	shape       engine.Shape
	muted       bool
	playing     bool
	note        byte // last MIDI note held, 0 when none
}

// NewSynthConductor builds the synth voice and attaches it to the engine. The
// voice starts silent; Play or a MIDI note brings it up.
func NewSynthConductor(e *engine.Engine) *SynthConductor {
	c := &SynthConductor{
		engine:      e,
		bus:         &beep.Mixer{},
		frequency:   defaultSynthFrequency,
		detuneCents: defaultDetuneCents,
		octaveMix:   defaultOctaveMix,
		detuneMix:   defaultDetuneMix,
		shape:       engine.Sine,
	}
	c.base = e.NewOscillator(c.shape, c.frequency)
	c.octave = e.NewOscillator(c.shape, playground.Octave(c.frequency))
	c.detune = e.NewOscillator(c.shape, playground.Detune(c.frequency, c.detuneCents))
	c.bus.Add(c.base, c.octave, c.detune)
	c.voice = e.NewFader(c.bus, defaultVoiceGain)
	e.AddSource(c.voice)
	return c
}

func (c *SynthConductor) Frequency() float64   { return c.frequency }
func (c *SynthConductor) DetuneCents() float64 { return c.detuneCents }
func (c *SynthConductor) OctaveMix() float64   { return c.octaveMix }
func (c *SynthConductor) DetuneMix() float64   { return c.detuneMix }
func (c *SynthConductor) Shape() engine.Shape  { return c.shape }
func (c *SynthConductor) Muted() bool          { return c.muted }
func (c *SynthConductor) Playing() bool        { return c.playing }

// DetunedFrequency returns the actual frequency of the detuned oscillator,
// for display.
func (c *SynthConductor) DetunedFrequency() float64 {
	return playground.Detune(c.frequency, c.detuneCents)
}

// Voice exposes the voice gain for anything that only needs amplitude
// control over the whole synth.
func (c *SynthConductor) Voice() engine.Attenuator { return c.voice }

func (c *SynthConductor) SetFrequency(hz float64) {
	if hz < MinSynthFrequency {
		hz = MinSynthFrequency
	}
	if hz > MaxSynthFrequency {
		hz = MaxSynthFrequency
	}
	if c.frequency == hz {
		return
	}
	c.frequency = hz
	c.base.SetFrequency(c.frequency)
	c.octave.SetFrequency(playground.Octave(c.frequency))
	c.detune.SetFrequency(playground.Detune(c.frequency, c.detuneCents))
}

func (c *SynthConductor) SetDetuneCents(cents float64) {
	if cents < MinDetuneCents {
		cents = MinDetuneCents
	}
	if cents > MaxDetuneCents {
		cents = MaxDetuneCents
	}
	if c.detuneCents == cents {
		return
	}
	c.detuneCents = cents
	c.detune.SetFrequency(playground.Detune(c.frequency, c.detuneCents))
}

func (c *SynthConductor) SetOctaveMix(percent float64) {
	percent = clampPercent(percent)
	if c.octaveMix == percent {
		return
	}
	c.octaveMix = percent
	c.writeLevels()
}

func (c *SynthConductor) SetDetuneMix(percent float64) {
	percent = clampPercent(percent)
	if c.detuneMix == percent {
		return
	}
	c.detuneMix = percent
	c.writeLevels()
}

func (c *SynthConductor) SetShape(s engine.Shape) {
	if c.shape == s {
		return
	}
	c.shape = s
	c.base.SetShape(s)
	c.octave.SetShape(s)
	c.detune.SetShape(s)
}

// SetMuted maps the mute flag onto the voice gain: muted is gain 0, unmuted
// is the default voice gain.
func (c *SynthConductor) SetMuted(muted bool) {
	if c.muted == muted {
		return
	}
	c.muted = muted
	if muted {
		c.voice.SetGain(0)
	} else {
		c.voice.SetGain(defaultVoiceGain)
	}
}

func (c *SynthConductor) Play() {
	if c.playing {
		return
	}
	c.playing = true
	c.writeLevels()
}

func (c *SynthConductor) Stop() {
	if !c.playing {
		return
	}
	c.playing = false
	c.note = 0
	c.writeLevels()
}

// NoteOn starts or retunes the voice from a MIDI note. The synth is
// monophonic with last-note priority, so a new note steals the voice.
func (c *SynthConductor) NoteOn(note byte) {
	c.note = note
	c.SetFrequency(playground.NoteFrequency(note))
	if !c.playing {
		c.playing = true
		c.writeLevels()
	}
}

// NoteOff releases the voice if note is the one currently sounding. A note
// off for an already stolen note is ignored.
func (c *SynthConductor) NoteOff(note byte) {
	if c.note != note {
		return
	}
	c.note = 0
	c.playing = false
	c.writeLevels()
}

func (c *SynthConductor) writeLevels() {
	level := 0.0
	if c.playing {
		level = synthOscLevel
	}
	c.base.SetAmplitude(level)
	c.octave.SetAmplitude(level * c.octaveMix / 100)
	c.detune.SetAmplitude(level * c.detuneMix / 100)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
