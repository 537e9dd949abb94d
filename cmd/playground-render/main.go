package main

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	playground "github.com/nsscreencast/595-audiokit-6"
	"github.com/nsscreencast/595-audiokit-6/conductor"
	"github.com/nsscreencast/595-audiokit-6/engine"
	"github.com/nsscreencast/595-audiokit-6/version"
)

const renderChunk = 1024

func main() {
	scene := flag.String("scene", "synth", "Scene to render: synth, ambience or mixer.")
	seconds := flag.Float64("seconds", 8, "How many seconds to render.")
	output := flag.String("o", "", "Output .wav path. Defaults to <scene>.wav.")
	rate := flag.Int("rate", playground.DefaultSampleRate, "Sample rate to render at.")
	preset := flag.String("preset", "", "Synth preset to apply before rendering (synth scene).")
	autopan := flag.Bool("autopan", false, "Enable the autopan sweep (ambience scene).")
	tracks := flag.String("tracks", ".", "Directory with tracks.yml and its audio files (mixer scene).")
	stems := flag.String("stems", "", "Generate the demo stems and tracks.yml into this directory, then exit.")
	versionFlag := flag.Bool("v", false, "Print version.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.String())
		os.Exit(0)
	}
	if *stems != "" {
		if err := generateStems(*stems, *rate); err != nil {
			fmt.Fprintf(os.Stderr, "could not generate stems: %v\n", err)
			os.Exit(1)
		}
		return
	}
	buf, err := renderScene(*scene, *seconds, *rate, *preset, *autopan, *tracks)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not render scene %v: %v\n", *scene, err)
		os.Exit(1)
	}
	path := *output
	if path == "" {
		path = *scene + ".wav"
	}
	if err := playground.ExportWavFile(path, *rate, buf); err != nil {
		fmt.Fprintf(os.Stderr, "could not write %v: %v\n", path, err)
		os.Exit(1)
	}
}

// renderScene brings up the same conductors the GUI drives and pulls the
// engine offline, feeding the tick scheduler synthetic time so the autopan
// sweep and the mixer progress behave like they do live.
func renderScene(scene string, seconds float64, rate int, preset string, autopan bool, tracksDir string) (playground.AudioBuffer, error) {
	if seconds <= 0 {
		return nil, errors.New("seconds must be positive")
	}
	eng := engine.NewEngine(rate)
	broker := conductor.NewBroker()
	model := conductor.NewModel(eng, broker, conductor.NullMIDIContext{})
	var skip int64
	switch scene {
	case "synth":
		if preset != "" && !applyPreset(model, preset) {
			return nil, fmt.Errorf("no synth preset named %q", preset)
		}
		model.Synth().Play()
	case "ambience":
		model.Ambience().SetAutopan(autopan)
		model.Ambience().Play()
	case "mixer":
		manifest, err := playground.LoadTrackManifest(filepath.Join(tracksDir, "tracks.yml"))
		if err != nil {
			return nil, err
		}
		model.Mixer().Load(manifest)
		msg, ok := conductor.TimeoutReceive(broker.ToModel, time.Minute)
		if !ok {
			return nil, errors.New("timed out decoding tracks")
		}
		model.ProcessMsg(msg)
		if state := model.Mixer().State(); state != conductor.MixerReady {
			return nil, fmt.Errorf("mixer did not become ready, state is %v", state)
		}
		model.Mixer().Play()
		skip = playground.NumSamples(rate, conductor.MixerStartLead)
	default:
		return nil, fmt.Errorf("unknown scene %q", scene)
	}

	total := int64(seconds * float64(rate))
	out := make(playground.AudioBuffer, 0, total+skip)
	chunk := make(playground.AudioBuffer, renderChunk)
	now := time.Now()
	for int64(len(out)) < total+skip {
		if err := eng.Render(chunk); err != nil {
			return nil, fmt.Errorf("render failed: %w", err)
		}
		out = append(out, chunk...)
		now = now.Add(playground.TimeDuration(rate, int64(len(chunk))))
		model.Ticker().Tick(now)
	}
	return out[skip : skip+total], nil
}

// applyPreset loads the named preset into the synth.
func applyPreset(model *conductor.Model, name string) bool {
	for i, p := range model.SynthPresets() {
		if p.Name == name {
			model.ApplySynthPreset(i)
			return true
		}
	}
	return false
}

// Demo stems: two bars at 120 BPM, so they loop cleanly in the mixer.
const (
	stemSeconds = 4.0
	stemBeat    = 0.5
	stemChunk   = 64
)

func generateStems(dir string, rate int) error {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("could not create stems directory: %w", err)
	}
	stems := []struct {
		name   string
		render func(rate int) (playground.AudioBuffer, error)
	}{
		{"drums", renderDrums},
		{"bass", renderBass},
		{"chords", renderChords},
	}
	for _, s := range stems {
		buf, err := s.render(rate)
		if err != nil {
			return fmt.Errorf("could not render %v: %w", s.name, err)
		}
		if err := playground.ExportWavFile(filepath.Join(dir, s.name+".wav"), rate, buf); err != nil {
			return err
		}
	}
	f, err := os.Create(filepath.Join(dir, "tracks.yml"))
	if err != nil {
		return fmt.Errorf("could not create tracks.yml: %w", err)
	}
	if err := playground.DefaultTrackManifest().Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// renderStem renders one stem, calling update at the start of every chunk
// with the time so far, so the caller can move gains and frequencies.
func renderStem(e *engine.Engine, rate int, update func(t float64)) (playground.AudioBuffer, error) {
	total := int(stemSeconds * float64(rate))
	out := make(playground.AudioBuffer, 0, total)
	chunk := make(playground.AudioBuffer, stemChunk)
	for len(out) < total {
		n := min(stemChunk, total-len(out))
		update(float64(len(out)) / float64(rate))
		if err := e.Render(chunk[:n]); err != nil {
			return nil, err
		}
		out = append(out, chunk[:n]...)
	}
	return out, nil
}

func renderDrums(rate int) (playground.AudioBuffer, error) {
	e := engine.NewEngine(rate)
	noise := e.NewNoise(engine.White)
	e.AddSource(noise)
	return renderStem(e, rate, func(t float64) {
		sinceBeat := math.Mod(t, stemBeat)
		noise.SetGain(0.8 * math.Exp(-sinceBeat/0.03))
	})
}

func renderBass(rate int) (playground.AudioBuffer, error) {
	e := engine.NewEngine(rate)
	osc := e.NewOscillator(engine.Square, 55)
	e.AddSource(osc)
	notes := []float64{55, 55, 65.41, 49} // A1 A1 C2 G1
	return renderStem(e, rate, func(t float64) {
		sinceBeat := math.Mod(t, stemBeat)
		osc.SetFrequency(notes[int(t/stemBeat)%len(notes)])
		osc.SetAmplitude(0.5 * math.Exp(-sinceBeat/0.15))
	})
}

func renderChords(rate int) (playground.AudioBuffer, error) {
	e := engine.NewEngine(rate)
	var oscs [3]*engine.Oscillator
	for i := range oscs {
		oscs[i] = e.NewOscillator(engine.Sine, 220)
		e.AddSource(oscs[i])
	}
	chords := [2][3]float64{
		{220, 261.63, 329.63}, // A minor
		{174.61, 220, 261.63}, // F major
	}
	return renderStem(e, rate, func(t float64) {
		chord := chords[int(t/(4*stemBeat))%len(chords)]
		for i, o := range oscs {
			o.SetFrequency(chord[i])
			o.SetAmplitude(0.18)
		}
	})
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Renders the playground scenes offline into .wav files.\nUsage: %s [flags]\n", os.Args[0])
	flag.PrintDefaults()
}
