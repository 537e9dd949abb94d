package conductor

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/nsscreencast/595-audiokit-6/engine"
)

//go:embed presets/*
var synthPresetFS embed.FS

type (
	// SynthPreset is a saved set of synth screen settings. The name comes
	// from the file name, underscores turned into spaces.
	SynthPreset struct {
		Name        string  `yaml:"-"`
		Frequency   float64 `yaml:"frequency"`
		DetuneCents float64 `yaml:"detunecents"`
		OctaveMix   float64 `yaml:"octavemix"`
		DetuneMix   float64 `yaml:"detunemix"`
		Shape       string  `yaml:"shape"`
		User        bool    `yaml:"-"`
	}
)

// LoadSynthPresets returns the built-in presets plus any user presets found
// under the playground config directory, sorted by name. Files that do not
// parse are skipped silently; a preset is never worth failing startup over.
func LoadSynthPresets() []SynthPreset {
	var presets []SynthPreset
	presets = loadPresetsFromFs(presets, synthPresetFS, false)
	if configDir, err := os.UserConfigDir(); err == nil {
		userDir := filepath.Join(configDir, "playground")
		presets = loadPresetsFromFs(presets, os.DirFS(userDir), true)
	}
	sort.Slice(presets, func(i, j int) bool {
		if presets[i].Name == presets[j].Name {
			return presets[i].User && !presets[j].User
		}
		return presets[i].Name < presets[j].Name
	})
	return presets
}

func loadPresetsFromFs(presets []SynthPreset, fsys fs.FS, user bool) []SynthPreset {
	fs.WalkDir(fsys, "presets", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil
		}
		var p SynthPreset
		if yaml.UnmarshalStrict(data, &p) == nil {
			base := filepath.Base(path)
			noExt := base[:len(base)-len(filepath.Ext(base))]
			p.Name = strings.ReplaceAll(noExt, "_", " ")
			p.User = user
			presets = append(presets, p)
		}
		return nil
	})
	return presets
}

// Apply writes the preset into the synth through the usual setters, so every
// value still gets clamped. An unknown waveform name keeps the current shape.
func (p SynthPreset) Apply(c *SynthConductor) {
	c.SetFrequency(p.Frequency)
	c.SetDetuneCents(p.DetuneCents)
	c.SetOctaveMix(p.OctaveMix)
	c.SetDetuneMix(p.DetuneMix)
	if shape, err := engine.ParseShape(p.Shape); err == nil {
		c.SetShape(shape)
	}
}
