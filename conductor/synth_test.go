package conductor_test

import (
	"math"
	"testing"

	playground "github.com/nsscreencast/595-audiokit-6"
	"github.com/nsscreencast/595-audiokit-6/conductor"
	"github.com/nsscreencast/595-audiokit-6/engine"
)

const testRate = 44100

func TestSynthConductorDefaults(t *testing.T) {
	t.Parallel()
	c := conductor.NewSynthConductor(engine.NewEngine(testRate))
	if got := c.Frequency(); got != 440 {
		t.Errorf("Frequency() = %v, want 440", got)
	}
	if got := c.DetuneCents(); got != 8 {
		t.Errorf("DetuneCents() = %v, want 8", got)
	}
	if c.Playing() {
		t.Error("Playing() = true on a fresh synth")
	}
	if c.Muted() {
		t.Error("Muted() = true on a fresh synth")
	}
	if got := c.Voice().Gain(); got != 1 {
		t.Errorf("Voice().Gain() = %v, want 1", got)
	}
}

func TestSynthConductorClampsFrequency(t *testing.T) {
	t.Parallel()
	c := conductor.NewSynthConductor(engine.NewEngine(testRate))
	c.SetFrequency(50)
	if got := c.Frequency(); got != 110 {
		t.Errorf("Frequency() after SetFrequency(50) = %v, want 110", got)
	}
	c.SetFrequency(99999)
	if got := c.Frequency(); got != 1760 {
		t.Errorf("Frequency() after SetFrequency(99999) = %v, want 1760", got)
	}
}

func TestSynthConductorClampsDetuneAndMixes(t *testing.T) {
	t.Parallel()
	c := conductor.NewSynthConductor(engine.NewEngine(testRate))
	c.SetDetuneCents(-5000)
	if got := c.DetuneCents(); got != -1200 {
		t.Errorf("DetuneCents() = %v, want -1200", got)
	}
	c.SetDetuneCents(5000)
	if got := c.DetuneCents(); got != 1200 {
		t.Errorf("DetuneCents() = %v, want 1200", got)
	}
	c.SetOctaveMix(150)
	if got := c.OctaveMix(); got != 100 {
		t.Errorf("OctaveMix() = %v, want 100", got)
	}
	c.SetDetuneMix(-3)
	if got := c.DetuneMix(); got != 0 {
		t.Errorf("DetuneMix() = %v, want 0", got)
	}
}

func TestSynthConductorDetunedFrequency(t *testing.T) {
	t.Parallel()
	c := conductor.NewSynthConductor(engine.NewEngine(testRate))
	c.SetFrequency(440)
	c.SetDetuneCents(100)
	want := playground.Detune(440, 100)
	if got := c.DetunedFrequency(); math.Abs(got-want) > 1e-12 {
		t.Errorf("DetunedFrequency() = %v, want %v", got, want)
	}
}

func TestSynthConductorMuteMapsToVoiceGain(t *testing.T) {
	t.Parallel()
	c := conductor.NewSynthConductor(engine.NewEngine(testRate))
	c.SetMuted(true)
	if !c.Muted() {
		t.Error("Muted() = false after SetMuted(true)")
	}
	if got := c.Voice().Gain(); got != 0 {
		t.Errorf("Voice().Gain() muted = %v, want 0", got)
	}
	c.SetMuted(false)
	if got := c.Voice().Gain(); got != 1 {
		t.Errorf("Voice().Gain() unmuted = %v, want 1", got)
	}
}

func TestSynthConductorMonophonicLastNotePriority(t *testing.T) {
	t.Parallel()
	c := conductor.NewSynthConductor(engine.NewEngine(testRate))
	c.NoteOn(69)
	if !c.Playing() {
		t.Fatal("Playing() = false after NoteOn")
	}
	if got := c.Frequency(); math.Abs(got-440) > 1e-9 {
		t.Errorf("Frequency() after NoteOn(69) = %v, want 440", got)
	}
	c.NoteOn(81) // steal the voice
	if got := c.Frequency(); math.Abs(got-880) > 1e-9 {
		t.Errorf("Frequency() after NoteOn(81) = %v, want 880", got)
	}
	c.NoteOff(69) // stale note off, the voice moved on
	if !c.Playing() {
		t.Error("Playing() = false after stale NoteOff")
	}
	c.NoteOff(81)
	if c.Playing() {
		t.Error("Playing() = true after NoteOff of the sounding note")
	}
}

func TestSynthConductorNoteFrequencyClamped(t *testing.T) {
	t.Parallel()
	c := conductor.NewSynthConductor(engine.NewEngine(testRate))
	c.NoteOn(21) // A0, below the slider range
	if got := c.Frequency(); got != 110 {
		t.Errorf("Frequency() after NoteOn(21) = %v, want 110", got)
	}
	c.NoteOn(108) // C8, above the slider range
	if got := c.Frequency(); got != 1760 {
		t.Errorf("Frequency() after NoteOn(108) = %v, want 1760", got)
	}
}

func TestSynthConductorAudible(t *testing.T) {
	t.Parallel()
	e := engine.NewEngine(testRate)
	c := conductor.NewSynthConductor(e)
	c.Play()
	c.Play() // second Play is a no-op

	buf := make(playground.AudioBuffer, 4410)
	if err := e.Render(buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	var peak float64
	for _, frame := range buf {
		peak = math.Max(peak, math.Abs(frame[0]))
	}
	if peak < 0.05 {
		t.Errorf("peak while playing = %v, want at least 0.05", peak)
	}

	c.Stop()
	// let the amplitude ramps and the limiter lookahead play out
	if err := e.Render(buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	tail := make(playground.AudioBuffer, 1024)
	if err := e.Render(tail); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for i, frame := range tail {
		if frame[0] != 0 || frame[1] != 0 {
			t.Fatalf("frame %d after Stop = %v, want silence", i, frame)
		}
	}
}
