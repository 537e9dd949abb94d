package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/flac"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"

	playground "github.com/nsscreencast/595-audiokit-6"
)

const resampleQuality = 4

// DecodeFile reads a whole audio file into memory at the given sample rate,
// resampling when the file rate differs. WAV, MP3, OGG Vorbis and FLAC files
// are recognized by extension.
func DecodeFile(path string, sampleRate int) (playground.AudioBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open audio file: %w", err)
	}
	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		f.Close()
		return nil, fmt.Errorf("%v: %w", path, playground.ErrUnsupportedFormat)
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("could not decode %v: %w", path, err)
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if int(format.SampleRate) != sampleRate {
		src = beep.Resample(resampleQuality, format.SampleRate, beep.SampleRate(sampleRate), streamer)
	}
	material, err := readAll(src)
	if err != nil {
		return nil, fmt.Errorf("could not read %v: %w", path, err)
	}
	return material, nil
}

func readAll(src beep.Streamer) (playground.AudioBuffer, error) {
	var out playground.AudioBuffer
	buf := make([][2]float64, 4096)
	for {
		n, ok := src.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			break
		}
	}
	if err := src.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
