package engine

import (
	"time"

	playground "github.com/nsscreencast/595-audiokit-6"
)

// Player plays buffered material, beginning at a scheduled engine clock
// instant. Arming several players with the same instant is what starts them
// in audible sync.
type Player struct {
	e        *Engine
	material playground.AudioBuffer
	pos      int
	wait     int64
	playing  bool
}

func (e *Engine) NewPlayer(material playground.AudioBuffer) *Player {
	return &Player{e: e, material: material}
}

// PlayFrom arms playback to begin once the engine clock reaches at, starting
// offset into the material. An instant already in the past starts playback on
// the next rendered frame.
func (p *Player) PlayFrom(offset time.Duration, at int64) {
	p.e.mtx.Lock()
	defer p.e.mtx.Unlock()
	frames := playground.NumSamples(p.e.sampleRate, offset)
	if frames < 0 {
		frames = 0
	}
	if frames > int64(len(p.material)) {
		frames = int64(len(p.material))
	}
	p.pos = int(frames)
	p.wait = at - p.e.clock
	if p.wait < 0 {
		p.wait = 0
	}
	p.playing = true
}

// Pause stops emission and keeps the position. Pausing a player that is not
// playing does nothing.
func (p *Player) Pause() {
	p.e.mtx.Lock()
	defer p.e.mtx.Unlock()
	p.playing = false
}

func (p *Player) Playing() bool {
	p.e.mtx.Lock()
	defer p.e.mtx.Unlock()
	return p.playing
}

// Done reports whether the material has been played through to the end.
func (p *Player) Done() bool {
	p.e.mtx.Lock()
	defer p.e.mtx.Unlock()
	return p.pos >= len(p.material)
}

// Position is the current offset into the material.
func (p *Player) Position() time.Duration {
	p.e.mtx.Lock()
	defer p.e.mtx.Unlock()
	return playground.TimeDuration(p.e.sampleRate, int64(p.pos))
}

// Len is the duration of the whole material.
func (p *Player) Len() time.Duration {
	return playground.TimeDuration(p.e.sampleRate, int64(len(p.material)))
}

func (p *Player) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		switch {
		case !p.playing:
			samples[i] = [2]float64{}
		case p.wait > 0:
			samples[i] = [2]float64{}
			p.wait--
		case p.pos < len(p.material):
			samples[i] = p.material[p.pos]
			p.pos++
		default:
			// played out; keep streaming silence until paused or rewound
			samples[i] = [2]float64{}
		}
	}
	return len(samples), true
}

func (p *Player) Err() error {
	return nil
}
