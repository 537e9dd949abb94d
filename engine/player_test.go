package engine_test

import (
	"testing"
	"time"

	playground "github.com/nsscreencast/595-audiokit-6"
	"github.com/nsscreencast/595-audiokit-6/engine"
)

func rampMaterial(frames int) playground.AudioBuffer {
	buf := make(playground.AudioBuffer, frames)
	for i := range buf {
		v := float64(i+1) / float64(frames)
		buf[i] = [2]float64{v, -v}
	}
	return buf
}

func TestPlayerScheduledStart(t *testing.T) {
	t.Parallel()
	e := engine.NewEngine(testRate)
	material := rampMaterial(100)
	p := e.NewPlayer(material)
	p.PlayFrom(0, e.Now()+50)

	buf := pull(p, 200)
	for i := 0; i < 50; i++ {
		if buf[i] != [2]float64{} {
			t.Fatalf("frame %d = %v, want silence before the scheduled instant", i, buf[i])
		}
	}
	for i := 0; i < 100; i++ {
		if buf[50+i] != material[i] {
			t.Fatalf("frame %d = %v, want material frame %v", 50+i, buf[50+i], material[i])
		}
	}
	for i := 150; i < 200; i++ {
		if buf[i] != [2]float64{} {
			t.Fatalf("frame %d = %v, want silence after the material ends", i, buf[i])
		}
	}
}

func TestPlayersSharingAnInstantStartTogether(t *testing.T) {
	t.Parallel()
	e := engine.NewEngine(testRate)
	a := e.NewPlayer(rampMaterial(64))
	b := e.NewPlayer(rampMaterial(64))
	at := e.Now() + 37
	a.PlayFrom(0, at)
	b.PlayFrom(0, at)

	bufA := pull(a, 128)
	bufB := pull(b, 128)
	onset := func(buf [][2]float64) int {
		for i, frame := range buf {
			if frame != [2]float64{} {
				return i
			}
		}
		return -1
	}
	if ia, ib := onset(bufA), onset(bufB); ia != ib || ia != 37 {
		t.Errorf("onsets = %v and %v, want both at 37", ia, ib)
	}
}

func TestPlayerResumeOffset(t *testing.T) {
	t.Parallel()
	e := engine.NewEngine(testRate)
	material := rampMaterial(testRate) // one second
	p := e.NewPlayer(material)

	offset := 250 * time.Millisecond
	p.PlayFrom(offset, e.Now())
	buf := pull(p, 4)
	if want := material[testRate/4]; buf[0] != want {
		t.Errorf("first frame = %v, want material at 250ms = %v", buf[0], want)
	}
	if got := p.Position(); got < offset {
		t.Errorf("Position() = %v, want at least %v", got, offset)
	}
}

func TestPlayerPause(t *testing.T) {
	t.Parallel()
	e := engine.NewEngine(testRate)
	p := e.NewPlayer(rampMaterial(1000))

	p.Pause() // pausing a stopped player is a no-op
	if p.Playing() {
		t.Fatal("Playing() = true, want false after pausing a stopped player")
	}

	p.PlayFrom(0, e.Now())
	pull(p, 100)
	p.Pause()
	pos := p.Position()
	buf := pull(p, 100)
	for i, frame := range buf {
		if frame != [2]float64{} {
			t.Fatalf("frame %d = %v, want silence while paused", i, frame)
		}
	}
	if got := p.Position(); got != pos {
		t.Errorf("Position() = %v, want %v to survive the pause", got, pos)
	}
}

func TestPlayerOffsetBeyondEnd(t *testing.T) {
	t.Parallel()
	e := engine.NewEngine(testRate)
	p := e.NewPlayer(rampMaterial(100))
	p.PlayFrom(time.Hour, e.Now())
	buf := pull(p, 64)
	for i, frame := range buf {
		if frame != [2]float64{} {
			t.Fatalf("frame %d = %v, want silence for an offset beyond the end", i, frame)
		}
	}
	if !p.Done() {
		t.Error("Done() = false, want true for an offset beyond the end")
	}
}

func TestPlayerLen(t *testing.T) {
	t.Parallel()
	e := engine.NewEngine(testRate)
	p := e.NewPlayer(rampMaterial(testRate / 2))
	if got := p.Len(); got != 500*time.Millisecond {
		t.Errorf("Len() = %v, want 500ms", got)
	}
}
