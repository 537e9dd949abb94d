package playground

import "time"

// DefaultSampleRate is the output rate the playground runs at unless told
// otherwise.
const DefaultSampleRate = 44100

// AudioBuffer is a buffer of stereo audio, each frame being a pair of left and
// right channel samples in the nominal range [-1, 1].
type AudioBuffer [][2]float64

// Zero fills the buffer with silence.
func (buf AudioBuffer) Zero() {
	for i := range buf {
		buf[i] = [2]float64{}
	}
}

// Source returns a render function that fills output buffers from buf,
// advancing on every call and zero padding the final partial buffer. Once all
// material has been consumed, the render function returns ErrEndOfBuffer.
func (buf AudioBuffer) Source() func(out AudioBuffer) error {
	pos := 0
	return func(out AudioBuffer) error {
		if pos >= len(buf) {
			return ErrEndOfBuffer
		}
		n := copy(out, buf[pos:])
		pos += n
		out[n:].Zero()
		return nil
	}
}

// AudioContext is the audio output device. Play keeps pulling buffers from
// render in a background goroutine until render returns an error or the
// returned CloserWaiter is closed. There should be only one AudioContext per
// process.
type AudioContext interface {
	Play(render func(buf AudioBuffer) error) CloserWaiter
	Close() error
}

// CloserWaiter is a handle to ongoing playback: Close stops it, Wait blocks
// until it has stopped on its own or was closed.
type CloserWaiter interface {
	Close() error
	Wait()
}

// NumSamples returns how many sample frames the duration d spans at the given
// sample rate.
func NumSamples(sampleRate int, d time.Duration) int64 {
	return int64(d) * int64(sampleRate) / int64(time.Second)
}

// TimeDuration returns how long frames sample frames last at the given sample
// rate.
func TimeDuration(sampleRate int, frames int64) time.Duration {
	return time.Duration(frames) * time.Second / time.Duration(sampleRate)
}
