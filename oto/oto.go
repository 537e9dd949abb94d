// Package oto is the audio output device of the playground, wrapping
// ebitengine/oto. The oto player pulls bytes from an io.Reader; Play bridges
// that pull into the engine's render callback.
package oto

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	playground "github.com/nsscreencast/595-audiokit-6"
)

const renderChunkFrames = 1024

type (
	Context struct {
		context    *oto.Context
		sampleRate int
	}

	playback struct {
		player *oto.Player
		reader *renderReader

		closeOnce sync.Once
		closeErr  error
	}

	// renderReader adapts a render callback into the io.Reader the oto player
	// pulls from. Reads happen on oto's goroutine; once render fails the
	// reader keeps returning the error, which stops the player.
	renderReader struct {
		render func(buf playground.AudioBuffer) error
		buf    playground.AudioBuffer
		bytes  []byte
		unread []byte

		mtx      sync.Mutex
		err      error
		finished chan struct{}
	}
)

// NewContext opens the audio device. There can be only one context per
// process, so this is called once, from main.
func NewContext(sampleRate int, bufferLen time.Duration) (*Context, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   bufferLen,
	}
	context, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready
	return &Context{context: context, sampleRate: sampleRate}, nil
}

func (c *Context) SampleRate() int { return c.sampleRate }

// Close is a no-op: oto contexts cannot be closed, the device is released
// when the process exits.
func (c *Context) Close() error { return nil }

// Play starts pulling buffers from render and writing them to the device.
func (c *Context) Play(render func(buf playground.AudioBuffer) error) playground.CloserWaiter {
	reader := &renderReader{
		render:   render,
		buf:      make(playground.AudioBuffer, renderChunkFrames),
		bytes:    make([]byte, renderChunkFrames*8),
		finished: make(chan struct{}),
	}
	p := &playback{player: c.context.NewPlayer(reader), reader: reader}
	p.player.Play()
	return p
}

func (p *playback) Close() error {
	p.closeOnce.Do(func() {
		p.closeErr = p.player.Close()
		p.reader.finish()
	})
	return p.closeErr
}

// Wait blocks until playback has stopped, either because Close was called or
// because the render function returned an error.
func (p *playback) Wait() {
	<-p.reader.finished
}

// Err returns what stopped the playback, nil for a plain Close and for
// material that just ended.
func (p *playback) Err() error {
	p.reader.mtx.Lock()
	defer p.reader.mtx.Unlock()
	if errors.Is(p.reader.err, playground.ErrEndOfBuffer) || errors.Is(p.reader.err, io.EOF) {
		return nil
	}
	return p.reader.err
}

func (r *renderReader) Read(p []byte) (int, error) {
	if len(r.unread) == 0 {
		if err := r.fill(); err != nil {
			return 0, err
		}
	}
	n := copy(p, r.unread)
	r.unread = r.unread[n:]
	return n, nil
}

func (r *renderReader) fill() error {
	r.mtx.Lock()
	err := r.err
	r.mtx.Unlock()
	if err != nil {
		return err
	}
	if err := r.render(r.buf); err != nil {
		r.fail(err)
		return err
	}
	r.unread = frameBytes(r.buf, r.bytes)
	return nil
}

func (r *renderReader) fail(err error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	if r.err != nil {
		return
	}
	r.err = err
	close(r.finished)
}

func (r *renderReader) finish() {
	r.fail(io.EOF)
}
