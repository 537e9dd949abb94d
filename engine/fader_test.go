package engine_test

import (
	"math"
	"testing"

	"github.com/nsscreencast/595-audiokit-6/engine"
)

var (
	_ engine.Attenuator = (*engine.Fader)(nil)
	_ engine.Attenuator = (*engine.Noise)(nil)
)

// constStreamer emits the same frame forever.
type constStreamer [2]float64

func (c constStreamer) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		samples[i] = [2]float64(c)
	}
	return len(samples), true
}

func (c constStreamer) Err() error { return nil }

func TestFaderScales(t *testing.T) {
	t.Parallel()
	e := engine.NewEngine(testRate)
	f := e.NewFader(constStreamer{1, -1}, 0.5)
	buf := pull(f, 256)
	for i, frame := range buf {
		if frame[0] != 0.5 || frame[1] != -0.5 {
			t.Fatalf("frame %d = %v, want {0.5, -0.5}", i, frame)
		}
	}
}

func TestFaderRampsToNewGain(t *testing.T) {
	t.Parallel()
	e := engine.NewEngine(testRate)
	f := e.NewFader(constStreamer{1, 1}, 1)
	pull(f, 16)
	f.SetGain(0)

	buf := pull(f, testRate/100) // well past the ramp
	prev := 1.0
	for i, frame := range buf {
		if frame[0] > prev+1e-12 {
			t.Fatalf("frame %d = %v, want monotonically falling gain", i, frame[0])
		}
		prev = frame[0]
	}
	tail := pull(f, 64)
	for i, frame := range tail {
		if frame[0] != 0 {
			t.Fatalf("frame %d = %v, want exact zero after ramp", i, frame[0])
		}
	}
}

func TestFaderGainClamped(t *testing.T) {
	t.Parallel()
	e := engine.NewEngine(testRate)
	f := e.NewFader(constStreamer{1, 1}, 2)
	if got := f.Gain(); got != 1 {
		t.Errorf("Gain() = %v, want clamped to 1", got)
	}
}

func TestPanHardLeftAndRight(t *testing.T) {
	t.Parallel()
	e := engine.NewEngine(testRate)
	p := e.NewPan(constStreamer{1, 1})

	p.SetPan(-1)
	pull(p, testRate/10) // settle the ramp
	buf := pull(p, 16)
	if math.Abs(buf[0][0]-1) > 1e-9 || math.Abs(buf[0][1]) > 1e-9 {
		t.Errorf("hard left frame = %v, want {1, 0}", buf[0])
	}

	p.SetPan(1)
	pull(p, testRate/10)
	buf = pull(p, 16)
	if math.Abs(buf[0][0]) > 1e-9 || math.Abs(buf[0][1]-1) > 1e-9 {
		t.Errorf("hard right frame = %v, want {0, 1}", buf[0])
	}
}

func TestPanCenterConstantPower(t *testing.T) {
	t.Parallel()
	e := engine.NewEngine(testRate)
	p := e.NewPan(constStreamer{1, 1})
	buf := pull(p, 16)
	want := math.Cos(math.Pi / 4)
	if math.Abs(buf[0][0]-want) > 1e-9 || math.Abs(buf[0][1]-want) > 1e-9 {
		t.Errorf("center frame = %v, want both channels %v", buf[0], want)
	}
}

func TestPanClamped(t *testing.T) {
	t.Parallel()
	e := engine.NewEngine(testRate)
	p := e.NewPan(constStreamer{1, 1})
	p.SetPan(7)
	if got := p.Pan(); got != 1 {
		t.Errorf("Pan() = %v, want clamped to 1", got)
	}
	p.SetPan(-7)
	if got := p.Pan(); got != -1 {
		t.Errorf("Pan() = %v, want clamped to -1", got)
	}
}
