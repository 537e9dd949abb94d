package conductor

import (
	"sync"
	"time"

	playground "github.com/nsscreencast/595-audiokit-6"
)

type (
	// Broker is the centralized message broker for the playground. The
	// goroutines talk to each other through it: the output callback posts
	// rendered buffers to the level meter, and the meter, the track loader and
	// the MIDI listener post results to the model, which runs in the GUI event
	// loop. Communication is many-to-one, with one channel per recipient.
	// Additionally, the broker has a sync.Pool for *playground.AudioBuffers,
	// from which the output callback can get and return buffers to pass audio
	// around without allocating new memory every time.
	//
	// For closing goroutines, the broker has two channels for each goroutine:
	// CloseXXX and FinishedXXX. The CloseXXX channel has a capacity of 1, so
	// you can always send an empty message (struct{}{}) to it without
	// blocking. If the channel is already full, that means someone else has
	// already requested its closure and the goroutine is already closing, so
	// dropping the message is fine. Then, FinishedXXX is used to signal that a
	// goroutine has successfully closed and cleaned up. Nothing is ever sent
	// to the channel, it is only closed. You can wait until the goroutine is
	// done closing with "<-FinishedXXX", which for avoiding deadlocks can be
	// combined with a timeout:
	//    select {
	//      case <-FinishedXXX:
	//      case <-time.After(3 * time.Second):
	//    }
	Broker struct {
		ToModel chan MsgToModel
		ToMeter chan MsgToMeter

		CloseMeter chan struct{}
		CloseGUI   chan struct{}

		FinishedMeter chan struct{}
		FinishedGUI   chan struct{}

		bufferPool sync.Pool
	}

	// MsgToModel is a message sent to the model. The most often sent data
	// (meter results) is not boxed, to avoid allocations. All the
	// infrequently passed messages go in Data, boxed & cast to any; casting
	// pointer types to any is cheap (does not allocate).
	MsgToModel struct {
		HasMeterResult bool
		MeterResult    MeterResult

		Data any
	}

	// MsgToMeter is a message sent to the level meter. It contains a reset
	// flag and a data field. The data field can contain a
	// *playground.AudioBuffer for the meter to analyze, or a func() which
	// gets executed in the meter goroutine.
	MsgToMeter struct {
		Reset bool
		Data  any
	}
)

func NewBroker() *Broker {
	return &Broker{
		ToModel:       make(chan MsgToModel, 1024),
		ToMeter:       make(chan MsgToMeter, 1024),
		CloseMeter:    make(chan struct{}, 1),
		CloseGUI:      make(chan struct{}, 1),
		FinishedMeter: make(chan struct{}),
		FinishedGUI:   make(chan struct{}),
		bufferPool:    sync.Pool{New: func() any { return &playground.AudioBuffer{} }},
	}
}

// GetAudioBuffer returns an audio buffer from the buffer pool. The buffer is
// guaranteed to be empty. After using the buffer, it should be returned to
// the pool with PutAudioBuffer.
func (b *Broker) GetAudioBuffer() *playground.AudioBuffer {
	return b.bufferPool.Get().(*playground.AudioBuffer)
}

// PutAudioBuffer returns an audio buffer to the buffer pool. If the buffer is
// not empty, its length is resetted (but capacity kept) before returning it
// to the pool.
func (b *Broker) PutAudioBuffer(buf *playground.AudioBuffer) {
	if len(*buf) > 0 {
		*buf = (*buf)[:0]
	}
	b.bufferPool.Put(buf)
}

// TrySend is a helper function to send a value to a channel if it is not
// full. It is guaranteed to be non-blocking. Returns true if the value was
// sent, false otherwise.
func TrySend[T any](c chan<- T, v T) bool {
	select {
	case c <- v:
	default:
		return false
	}
	return true
}

// TimeoutReceive is a helper function to block until a value is received from
// a channel, or timing out after t. ok will be false if the timeout occurred
// or if the channel is closed.
func TimeoutReceive[T any](c <-chan T, t time.Duration) (v T, ok bool) {
	select {
	case v, ok = <-c:
		return v, ok
	case <-time.After(t):
		return v, false
	}
}
