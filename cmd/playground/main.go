package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strings"

	"gioui.org/app"

	playground "github.com/nsscreencast/595-audiokit-6"
	"github.com/nsscreencast/595-audiokit-6/cmd"
	"github.com/nsscreencast/595-audiokit-6/conductor"
	"github.com/nsscreencast/595-audiokit-6/conductor/gioui"
	"github.com/nsscreencast/595-audiokit-6/engine"
	"github.com/nsscreencast/595-audiokit-6/oto"
	"github.com/nsscreencast/595-audiokit-6/version"
)

var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
var memprofile = flag.String("memprofile", "", "write memory profile to `file`")
var defaultMidiInput = flag.String("midi-input", "", "connect MIDI input to matching device name prefix")
var tracksDir = flag.String("tracks", "", "directory with tracks.yml and its audio files (overrides preferences)")
var printVersion = flag.Bool("version", false, "print version and exit")

func main() {
	flag.Parse()
	if *printVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}
	var f *os.File
	if *cpuprofile != "" {
		var err error
		f, err = os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
	}
	preferences := gioui.MakePreferences()
	audioContext, err := oto.NewContext(playground.DefaultSampleRate, preferences.AudioBufferLength())
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	broker := conductor.NewBroker()
	eng := engine.NewEngine(playground.DefaultSampleRate)
	midiContext := cmd.NewMidiContext(broker)
	model := conductor.NewModel(eng, broker, midiContext)
	if isFlagPassed("midi-input") {
		openMidiInput(model, *defaultMidiInput)
	}
	model.Mixer().Load(loadManifest(preferences))

	go conductor.NewMeter(broker).Run()
	audioCloser := audioContext.Play(conductor.RenderSource(eng, broker))

	ui := gioui.NewPlayground(model, preferences)
	go func() {
		ui.Main()
		audioCloser.Close()
		model.Close()
		if *cpuprofile != "" {
			pprof.StopCPUProfile()
			f.Close()
		}
		if *memprofile != "" {
			f, err := os.Create(*memprofile)
			if err != nil {
				log.Fatal("could not create memory profile: ", err)
			}
			defer f.Close() // error handling omitted for example
			runtime.GC()    // get up-to-date statistics
			if err := pprof.WriteHeapProfile(f); err != nil {
				log.Fatal("could not write memory profile: ", err)
			}
		}
		os.Exit(0)
	}()
	app.Main()
}

// loadManifest reads tracks.yml from the tracks directory, falling back to
// the built-in demo manifest when there is none. The mixer reports decode
// problems on its own; this only decides which manifest to hand it.
func loadManifest(preferences gioui.Preferences) playground.TrackManifest {
	dir := preferences.Tracks.Directory
	if *tracksDir != "" {
		dir = *tracksDir
	}
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, "tracks.yml")
	manifest, err := playground.LoadTrackManifest(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("could not load %s: %v", path, err)
		}
		manifest = playground.DefaultTrackManifest()
		manifest.Resolve(dir)
	}
	return manifest
}

// openMidiInput opens the first MIDI input whose name starts with prefix. An
// empty prefix opens the first device there is.
func openMidiInput(model *conductor.Model, prefix string) {
	for _, name := range model.MidiInputs() {
		if strings.HasPrefix(name, prefix) {
			model.SetMidiInput(name)
			return
		}
	}
	log.Printf("no MIDI input device found with prefix '%s'", prefix)
}

func isFlagPassed(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
