package playground

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Track is one entry in a mixer track manifest: a display name and the audio
// file it plays. Gain is the initial fader setting for the track; zero means
// unset and defaults to unity.
type Track struct {
	Name string  `yaml:"name"`
	Path string  `yaml:"path"`
	Gain float64 `yaml:"gain,omitempty"`
}

// TrackManifest is the fixed list of tracks the mixer loads at startup.
type TrackManifest struct {
	Tracks []Track `yaml:"tracks"`
}

// DefaultTrackManifest lists the demo stems that playground-render -stems
// generates. It returns a fresh copy, so callers may Resolve it freely.
func DefaultTrackManifest() TrackManifest {
	return TrackManifest{
		Tracks: []Track{
			{Name: "drums", Path: "drums.wav", Gain: 0.9},
			{Name: "bass", Path: "bass.wav", Gain: 0.8},
			{Name: "chords", Path: "chords.wav", Gain: 0.7},
		},
	}
}

// ParseTrackManifest decodes and validates a manifest. Unknown fields are an
// error, so typos in hand-edited manifests do not silently disappear.
func ParseTrackManifest(r io.Reader) (TrackManifest, error) {
	var m TrackManifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return TrackManifest{}, fmt.Errorf("could not parse track manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return TrackManifest{}, err
	}
	for i := range m.Tracks {
		if m.Tracks[i].Gain == 0 {
			m.Tracks[i].Gain = 1
		}
	}
	return m, nil
}

// LoadTrackManifest reads the manifest at path and resolves its relative track
// paths against the manifest's own directory.
func LoadTrackManifest(path string) (TrackManifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return TrackManifest{}, fmt.Errorf("could not open track manifest: %w", err)
	}
	defer f.Close()
	m, err := ParseTrackManifest(f)
	if err != nil {
		return TrackManifest{}, fmt.Errorf("%v: %w", path, err)
	}
	m.Resolve(filepath.Dir(path))
	return m, nil
}

// Write encodes the manifest as YAML.
func (m TrackManifest) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("could not encode track manifest: %w", err)
	}
	return enc.Close()
}

// Validate checks that the manifest names at least one track and that every
// track has a file path.
func (m TrackManifest) Validate() error {
	if len(m.Tracks) == 0 {
		return ErrEmptyManifest
	}
	for i, t := range m.Tracks {
		if t.Path == "" {
			return fmt.Errorf("track %d (%q): %w", i, t.Name, ErrNoTrackPath)
		}
	}
	return nil
}

// Resolve turns relative track paths into absolute ones, anchored at dir.
func (m *TrackManifest) Resolve(dir string) {
	for i, t := range m.Tracks {
		if !filepath.IsAbs(t.Path) {
			m.Tracks[i].Path = filepath.Join(dir, t.Path)
		}
	}
}
