package conductor_test

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	playground "github.com/nsscreencast/595-audiokit-6"
	"github.com/nsscreencast/595-audiokit-6/conductor"
	"github.com/nsscreencast/595-audiokit-6/engine"
)

// writeConstWav writes a wav file holding a constant sample value, so track
// onsets are exact in renders.
func writeConstWav(t *testing.T, path string, seconds float64, value float64) {
	t.Helper()
	buf := make(playground.AudioBuffer, int(float64(testRate)*seconds))
	for i := range buf {
		buf[i] = [2]float64{value, value}
	}
	if err := playground.ExportWavFile(path, testRate, buf); err != nil {
		t.Fatalf("ExportWavFile(%q) error = %v", path, err)
	}
}

func newModel(t *testing.T) *conductor.Model {
	t.Helper()
	return conductor.NewModel(engine.NewEngine(testRate), conductor.NewBroker(), conductor.NullMIDIContext{})
}

// loadMixer runs a Load and pumps the loader's result through the model, the
// way the GUI event loop would.
func loadMixer(t *testing.T, m *conductor.Model, manifest playground.TrackManifest) {
	t.Helper()
	m.Mixer().Load(manifest)
	msg, ok := conductor.TimeoutReceive(m.Broker().ToModel, 5*time.Second)
	if !ok {
		t.Fatal("no load result arrived")
	}
	m.ProcessMsg(msg)
}

func testManifest(t *testing.T) playground.TrackManifest {
	t.Helper()
	dir := t.TempDir()
	drums := filepath.Join(dir, "drums.wav")
	bass := filepath.Join(dir, "bass.wav")
	writeConstWav(t, drums, 1, 0.5)
	writeConstWav(t, bass, 0.5, 0.5)
	return playground.TrackManifest{Tracks: []playground.Track{
		{Name: "drums", Path: drums, Gain: 0.9},
		{Name: "bass", Path: bass, Gain: 0.8},
	}}
}

func TestMixerLoadsTracks(t *testing.T) {
	t.Parallel()
	m := newModel(t)
	mx := m.Mixer()
	if got := mx.State(); got != conductor.MixerLoading {
		t.Fatalf("State() before load = %v, want %v", got, conductor.MixerLoading)
	}
	loadMixer(t, m, testManifest(t))

	if got := mx.State(); got != conductor.MixerReady {
		t.Fatalf("State() = %v, want %v", got, conductor.MixerReady)
	}
	if got := mx.NumTracks(); got != 2 {
		t.Fatalf("NumTracks() = %d, want 2", got)
	}
	wantNames := []string{"drums", "bass"}
	wantVolumes := []float64{0.9, 0.8}
	for i := 0; i < mx.NumTracks(); i++ {
		track := mx.Track(i)
		if track.Name() != wantNames[i] {
			t.Errorf("Track(%d).Name() = %q, want %q", i, track.Name(), wantNames[i])
		}
		if track.Volume() != wantVolumes[i] {
			t.Errorf("Track(%d).Volume() = %v, want %v", i, track.Volume(), wantVolumes[i])
		}
		if !track.Loaded() {
			t.Errorf("Track(%d).Loaded() = false", i)
		}
	}
	if got := mx.Duration(); got != time.Second {
		t.Errorf("Duration() = %v, want 1s (the longest track)", got)
	}
}

func TestMixerLoadFailureDisablesControls(t *testing.T) {
	t.Parallel()
	m := newModel(t)
	manifest := playground.TrackManifest{Tracks: []playground.Track{
		{Name: "ghost", Path: filepath.Join(t.TempDir(), "missing.wav"), Gain: 1},
	}}
	loadMixer(t, m, manifest)

	mx := m.Mixer()
	if got := mx.State(); got != conductor.MixerFailed {
		t.Fatalf("State() = %v, want %v", got, conductor.MixerFailed)
	}
	if mx.NumTracks() != 1 || mx.Track(0).Loaded() {
		t.Error("failed load should leave the strip present but unloaded")
	}
	var sawError bool
	for alert := range m.Alerts().Iterate {
		if alert.Priority == conductor.Error {
			sawError = true
		}
	}
	if !sawError {
		t.Error("no error alert raised for the failed load")
	}
	mx.SetVolume(0, 0.5) // no player behind it; must not panic
	mx.Play()
	if got := mx.State(); got != conductor.MixerFailed {
		t.Errorf("Play() in failed state moved to %v", got)
	}
}

func TestMixerPlayPauseGuards(t *testing.T) {
	t.Parallel()
	m := newModel(t)
	mx := m.Mixer()

	mx.Play() // not loaded yet
	if got := mx.State(); got != conductor.MixerLoading {
		t.Fatalf("Play() before load moved to %v", got)
	}
	loadMixer(t, m, testManifest(t))

	mx.Pause() // pause while ready is a no-op
	if got := mx.State(); got != conductor.MixerReady {
		t.Fatalf("Pause() while ready moved to %v", got)
	}

	mx.Play()
	if got := mx.State(); got != conductor.MixerPlaying {
		t.Fatalf("State() = %v, want %v", got, conductor.MixerPlaying)
	}
	if got := m.Ticker().Len(); got != 1 {
		t.Fatalf("Ticker().Len() = %d, want 1 progress entry", got)
	}
	mx.Play() // play while playing is a no-op
	if got := m.Ticker().Len(); got != 1 {
		t.Errorf("Play() while playing registered another tick entry (%d)", got)
	}

	mx.Pause()
	if got := mx.State(); got != conductor.MixerPaused {
		t.Fatalf("State() = %v, want %v", got, conductor.MixerPaused)
	}
	if got := m.Ticker().Len(); got != 0 {
		t.Errorf("Ticker().Len() after Pause = %d, want 0", got)
	}
	mx.Pause() // pause while paused is a no-op
	if got := mx.State(); got != conductor.MixerPaused {
		t.Errorf("Pause() while paused moved to %v", got)
	}

	mx.Play() // resume
	if got := mx.State(); got != conductor.MixerPlaying {
		t.Errorf("State() after resume = %v, want %v", got, conductor.MixerPlaying)
	}
}

func TestMixerStopRewinds(t *testing.T) {
	t.Parallel()
	m := newModel(t)
	loadMixer(t, m, testManifest(t))
	mx := m.Mixer()

	mx.Play()
	mx.Stop()
	if got := mx.State(); got != conductor.MixerReady {
		t.Errorf("State() after Stop = %v, want %v", got, conductor.MixerReady)
	}
	if got := mx.Position(); got != 0 {
		t.Errorf("Position() after Stop = %v, want 0", got)
	}
	if got := mx.Progress(); got != 0 {
		t.Errorf("Progress() after Stop = %v, want 0", got)
	}
	if got := m.Ticker().Len(); got != 0 {
		t.Errorf("Ticker().Len() after Stop = %d, want 0", got)
	}
}

func TestMixerProgress(t *testing.T) {
	t.Parallel()
	m := newModel(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "only.wav")
	writeConstWav(t, path, 0.5, 0.25)
	loadMixer(t, m, playground.TrackManifest{Tracks: []playground.Track{
		{Name: "only", Path: path, Gain: 1},
	}})
	mx := m.Mixer()

	callTime := time.Now()
	mx.Play()

	// inside the lead time nothing has elapsed yet
	m.Ticker().Tick(callTime)
	if got := mx.Progress(); got != 0 {
		t.Errorf("Progress() inside lead = %v, want 0", got)
	}

	// the shared start instant is 250 ms after Play; half the 500 ms track
	// later, progress is about a half
	m.Ticker().Tick(callTime.Add(250*time.Millisecond + 250*time.Millisecond))
	first := mx.Progress()
	if first < 0.4 || first > 0.55 {
		t.Errorf("Progress() mid-track = %v, want about 0.5", first)
	}

	m.Ticker().Tick(callTime.Add(250*time.Millisecond + 350*time.Millisecond))
	second := mx.Progress()
	if second <= first {
		t.Errorf("Progress() not monotonic: %v then %v", first, second)
	}

	// past the end the mixer rewinds and goes back to ready
	m.Ticker().Tick(callTime.Add(250*time.Millisecond + 700*time.Millisecond))
	if got := mx.State(); got != conductor.MixerReady {
		t.Errorf("State() after playing out = %v, want %v", got, conductor.MixerReady)
	}
	if got := mx.Progress(); got != 0 {
		t.Errorf("Progress() after playing out = %v, want 0", got)
	}
	if got := m.Ticker().Len(); got != 0 {
		t.Errorf("Ticker().Len() after playing out = %d, want 0", got)
	}
}

// TestMixerTracksStartTogether renders the master bus and asserts both tracks
// come in on the very same frame, at the scheduled instant.
func TestMixerTracksStartTogether(t *testing.T) {
	t.Parallel()
	m := newModel(t)
	loadMixer(t, m, testManifest(t))
	e := m.Engine()

	m.Mixer().Play()
	lead := playground.NumSamples(testRate, 250*time.Millisecond)

	buf := make(playground.AudioBuffer, lead+4410)
	if err := e.Render(buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	onset := -1
	for i, frame := range buf {
		if frame[0] != 0 || frame[1] != 0 {
			onset = i
			break
		}
	}
	if onset < 0 {
		t.Fatal("no audio in the render")
	}
	// the limiter lookahead shifts the onset a little past the scheduled
	// instant, but never before it
	if int64(onset) < lead || int64(onset) > lead+441 {
		t.Fatalf("onset at frame %d, want within 10 ms after %d", onset, lead)
	}
	// both tracks must be in on the first audible frame. One track alone
	// comes through the limiter at about 0.42, both together at about 0.68.
	if got := buf[onset][0]; got < 0.55 {
		t.Errorf("first audible frame = %v, want both tracks (at least 0.55)", got)
	}
	if l, r := buf[onset][0], buf[onset][1]; math.Abs(l-r) > 1e-9 {
		t.Errorf("first audible frame = {%v, %v}, want identical channels", l, r)
	}
}

func TestMixerVolumeClamped(t *testing.T) {
	t.Parallel()
	m := newModel(t)
	loadMixer(t, m, testManifest(t))
	mx := m.Mixer()

	mx.SetVolume(0, 1.5)
	if got := mx.Track(0).Volume(); got != 1 {
		t.Errorf("Volume() = %v, want 1", got)
	}
	mx.SetVolume(1, -0.5)
	if got := mx.Track(1).Volume(); got != 0 {
		t.Errorf("Volume() = %v, want 0", got)
	}
	mx.SetVolume(99, 0.5) // out of range index is ignored
}

func TestMixerReloadSupersedesPendingLoad(t *testing.T) {
	t.Parallel()
	m := newModel(t)
	dir := t.TempDir()
	one := filepath.Join(dir, "one.wav")
	two := filepath.Join(dir, "two.wav")
	three := filepath.Join(dir, "three.wav")
	writeConstWav(t, one, 0.1, 0.5)
	writeConstWav(t, two, 0.1, 0.5)
	writeConstWav(t, three, 0.1, 0.5)

	m.Mixer().Load(playground.TrackManifest{Tracks: []playground.Track{
		{Name: "one", Path: one, Gain: 1},
	}})
	m.Mixer().Load(playground.TrackManifest{Tracks: []playground.Track{
		{Name: "two", Path: two, Gain: 1},
		{Name: "three", Path: three, Gain: 1},
	}})

	for i := 0; i < 2; i++ {
		msg, ok := conductor.TimeoutReceive(m.Broker().ToModel, 5*time.Second)
		if !ok {
			t.Fatal("load result missing")
		}
		m.ProcessMsg(msg)
	}
	if got := m.Mixer().NumTracks(); got != 2 {
		t.Errorf("NumTracks() = %d, want the 2 tracks of the newest load", got)
	}
	if got := m.Mixer().State(); got != conductor.MixerReady {
		t.Errorf("State() = %v, want %v", got, conductor.MixerReady)
	}
}
