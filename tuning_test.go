package playground_test

import (
	"math"
	"testing"

	playground "github.com/nsscreencast/595-audiokit-6"
)

func TestDetune(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		f     float64
		cents float64
		want  float64
	}{
		{"unison", 440, 0, 440},
		{"octave up", 440, 1200, 880},
		{"octave down", 440, -1200, 220},
		{"semitone up", 440, 100, 466.16376151808995},
		{"slight sharp", 261.6255653005986, 8, 262.8369973133211},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := playground.Detune(tt.f, tt.cents)
			if math.Abs(got-tt.want) > 1e-9*tt.want {
				t.Errorf("Detune(%v, %v) = %v, want %v", tt.f, tt.cents, got, tt.want)
			}
		})
	}
}

func TestDetuneRaisesFrequency(t *testing.T) {
	t.Parallel()
	for _, f := range []float64{55, 110, 440, 1760} {
		for cents := 1.0; cents <= 1200; cents += 7 {
			if got := playground.Detune(f, cents); got <= f {
				t.Fatalf("Detune(%v, %v) = %v, want > %v", f, cents, got, f)
			}
		}
	}
}

func TestOctave(t *testing.T) {
	t.Parallel()
	for _, f := range []float64{27.5, 220, 440, 523.2511306011972} {
		if got := playground.Octave(f); got != 2*f {
			t.Errorf("Octave(%v) = %v, want %v", f, got, 2*f)
		}
	}
}

func TestNoteFrequency(t *testing.T) {
	t.Parallel()
	tests := []struct {
		note byte
		want float64
	}{
		{69, 440},
		{81, 880},
		{57, 220},
		{60, 261.6255653005986},
		{0, 8.175798915643707},
	}
	for _, tt := range tests {
		got := playground.NoteFrequency(tt.note)
		if math.Abs(got-tt.want) > 1e-9*tt.want {
			t.Errorf("NoteFrequency(%v) = %v, want %v", tt.note, got, tt.want)
		}
	}
	for note := byte(1); note < 128; note++ {
		lo, hi := playground.NoteFrequency(note-1), playground.NoteFrequency(note)
		if hi <= lo {
			t.Fatalf("NoteFrequency(%v) = %v, want > NoteFrequency(%v) = %v", note, hi, note-1, lo)
		}
	}
}
