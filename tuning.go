package playground

import "math"

// Detune returns f shifted by the given amount of cents, one cent being one
// hundredth of a semitone: f * 2^(cents/1200).
func Detune(f, cents float64) float64 {
	return f * math.Exp2(cents/1200)
}

// Octave returns the frequency exactly one octave above f.
func Octave(f float64) float64 {
	return 2 * f
}

// NoteFrequency returns the equal temperament frequency of a MIDI note number,
// tuned to A4 (note 69) = 440 Hz.
func NoteFrequency(note byte) float64 {
	return 440 * math.Exp2((float64(note)-69)/12)
}
