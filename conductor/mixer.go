package conductor

import (
	"fmt"
	"log"
	"time"

	"github.com/gopxl/beep"

	playground "github.com/nsscreencast/595-audiokit-6"
	"github.com/nsscreencast/595-audiokit-6/engine"
)

type MixerState int

const (
	MixerLoading MixerState = iota
	MixerReady
	MixerPlaying
	MixerPaused
	MixerFailed
)

func (s MixerState) String() string {
	switch s {
	case MixerLoading:
		return "loading"
	case MixerReady:
		return "ready"
	case MixerPlaying:
		return "playing"
	case MixerPaused:
		return "paused"
	default:
		return "failed"
	}
}

const (
	// MixerStartLead is how far in the future the shared start instant is
	// placed. It only needs to cover the output buffer in flight, so every
	// player sees the instant before the engine clock passes it.
	MixerStartLead = 250 * time.Millisecond

	progressInterval = 50 * time.Millisecond
)

type (
	// MixerConductor drives the multitrack screen: a manifest of audio files,
	// each loaded into a player behind its own fader, played and paused
	// together. Tracks are scheduled to start at one shared engine clock
	// instant so they stay sample-synchronous from the first frame.
	//
	// Must only be called from the GUI event loop. Decoding runs on a
	// separate goroutine and reports back through the broker; everything
	// else, including the progress update, runs in the event loop.
	MixerConductor struct {
		engine *engine.Engine
		broker *Broker
		ticker *Ticker
		alerts *Alerts
		bus    *beep.Mixer

		state    MixerState
		tracks   []*TrackStrip
		duration time.Duration
		loadSeq  int

		startedAt    time.Time
		pausedOffset time.Duration
		progress     float64
		tick         *TickerEntry
	}

	// TrackStrip is one mixer channel: a named track, its player and its
	// fader. Until loading finishes it has just the name and the manifest
	// volume.
	TrackStrip struct {
		name   string
		player *engine.Player
		fader  *engine.Fader
		volume float64
		loaded bool
	}

	// tracksLoaded is the loader goroutine's report, sent through
	// broker.ToModel. seq pairs it with the Load call that started it, so a
	// result overtaken by a newer Load is dropped.
	tracksLoaded struct {
		seq    int
		tracks []loadedTrack
		err    error
	}

	loadedTrack struct {
		track    playground.Track
		material playground.AudioBuffer
	}
)

func NewMixerConductor(e *engine.Engine, broker *Broker, ticker *Ticker, alerts *Alerts) *MixerConductor {
	c := &MixerConductor{
		engine: e,
		broker: broker,
		ticker: ticker,
		alerts: alerts,
		bus:    &beep.Mixer{},
		state:  MixerLoading,
	}
	e.AddSource(c.bus)
	return c
}

func (c *MixerConductor) State() MixerState { return c.state }
func (c *MixerConductor) Progress() float64 { return c.progress }
func (c *MixerConductor) NumTracks() int    { return len(c.tracks) }
func (c *MixerConductor) Track(i int) *TrackStrip {
	return c.tracks[i]
}

// Duration is the length of the longest track.
func (c *MixerConductor) Duration() time.Duration { return c.duration }

// Position is how far into the material playback is, for display.
func (c *MixerConductor) Position() time.Duration {
	if c.state == MixerPlaying {
		return c.pausedOffset + elapsedSince(c.startedAt)
	}
	return c.pausedOffset
}

func (t *TrackStrip) Name() string    { return t.name }
func (t *TrackStrip) Volume() float64 { return t.volume }
func (t *TrackStrip) Loaded() bool    { return t.loaded }

// Load replaces the mixer's tracks with the manifest's. The strips appear
// immediately, unloaded; decoding runs on its own goroutine and the result
// comes back through the broker, so Model.ProcessMsg applies it in the event
// loop. A track that fails to decode leaves the mixer in the failed state
// with its controls disabled.
func (c *MixerConductor) Load(manifest playground.TrackManifest) {
	c.ticker.Unregister(c.tick)
	c.tick = nil
	for _, t := range c.tracks {
		if t.player != nil {
			t.player.Pause()
		}
	}
	c.bus.Clear()
	c.state = MixerLoading
	c.progress = 0
	c.pausedOffset = 0
	c.duration = 0
	c.loadSeq++
	c.tracks = c.tracks[:0]
	for _, t := range manifest.Tracks {
		c.tracks = append(c.tracks, &TrackStrip{name: t.Name, volume: clamp01(t.Gain)})
	}

	seq := c.loadSeq
	rate := c.engine.SampleRate()
	go func() {
		res := &tracksLoaded{seq: seq, tracks: make([]loadedTrack, 0, len(manifest.Tracks))}
		for _, t := range manifest.Tracks {
			material, err := engine.DecodeFile(t.Path, rate)
			if err != nil {
				res.err = fmt.Errorf("track %q: %w", t.Name, err)
				break
			}
			res.tracks = append(res.tracks, loadedTrack{track: t, material: material})
		}
		TrySend(c.broker.ToModel, MsgToModel{Data: res})
	}()
}

func (c *MixerConductor) finishLoad(res *tracksLoaded) {
	if res.seq != c.loadSeq {
		return
	}
	if res.err != nil {
		log.Printf("mixer: loading tracks: %v", res.err)
		c.alerts.AddNamed("MixerLoad", fmt.Sprintf("Loading tracks failed: %v", res.err), Error)
		c.state = MixerFailed
		return
	}
	for i, lt := range res.tracks {
		strip := c.tracks[i]
		strip.player = c.engine.NewPlayer(lt.material)
		strip.fader = c.engine.NewFader(strip.player, strip.volume)
		strip.loaded = true
		c.bus.Add(strip.fader)
		if d := strip.player.Len(); d > c.duration {
			c.duration = d
		}
	}
	c.state = MixerReady
}

// Play schedules every track to begin at one shared engine clock instant a
// short lead from now, so the output picks all of them up on the same frame.
// Playing from Paused resumes at the recorded offset. Play in any other
// state is a no-op.
func (c *MixerConductor) Play() {
	if c.state != MixerReady && c.state != MixerPaused {
		return
	}
	if c.duration <= 0 {
		return
	}
	at := c.engine.Now() + playground.NumSamples(c.engine.SampleRate(), MixerStartLead)
	for _, t := range c.tracks {
		t.player.PlayFrom(c.pausedOffset, at)
	}
	c.startedAt = time.Now().Add(MixerStartLead)
	c.state = MixerPlaying
	c.tick = c.ticker.Register(progressInterval, c.progressTick)
	TrySend(c.broker.ToMeter, MsgToMeter{Reset: true})
}

// Pause stops emission and records how far into the material playback was,
// floored at zero if the lead time had not elapsed yet. Pause in any state
// but Playing is a no-op.
func (c *MixerConductor) Pause() {
	if c.state != MixerPlaying {
		return
	}
	c.pausedOffset += elapsedSince(c.startedAt)
	for _, t := range c.tracks {
		t.player.Pause()
	}
	c.ticker.Unregister(c.tick)
	c.tick = nil
	c.state = MixerPaused
}

// Stop pauses and rewinds to the beginning.
func (c *MixerConductor) Stop() {
	c.Pause()
	c.pausedOffset = 0
	c.progress = 0
	if c.state == MixerPaused {
		c.state = MixerReady
	}
}

func (c *MixerConductor) SetVolume(i int, volume float64) {
	if i < 0 || i >= len(c.tracks) {
		return
	}
	volume = clamp01(volume)
	t := c.tracks[i]
	if t.volume == volume {
		return
	}
	t.volume = volume
	if t.fader != nil {
		t.fader.SetGain(volume)
	}
}

// progressTick recomputes the progress bar from the wall clock. When the
// longest track has played out, the mixer rewinds and goes back to ready.
func (c *MixerConductor) progressTick(now time.Time) {
	if c.state != MixerPlaying || c.duration <= 0 {
		return
	}
	elapsed := now.Sub(c.startedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	p := float64(c.pausedOffset+elapsed) / float64(c.duration)
	if p >= 1 {
		for _, t := range c.tracks {
			t.player.Pause()
		}
		c.ticker.Unregister(c.tick)
		c.tick = nil
		c.pausedOffset = 0
		c.progress = 0
		c.state = MixerReady
		return
	}
	c.progress = p
}

func elapsedSince(startedAt time.Time) time.Duration {
	e := time.Since(startedAt)
	if e < 0 {
		return 0
	}
	return e
}
