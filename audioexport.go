package playground

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const exportBitDepth = 16

// ExportWav writes buf as a 16-bit stereo PCM wav file. The writer has to be
// seekable because the encoder patches the chunk sizes when it is closed.
func ExportWav(ws io.WriteSeeker, sampleRate int, buf AudioBuffer) error {
	enc := wav.NewEncoder(ws, sampleRate, exportBitDepth, 2, 1)
	data := make([]int, len(buf)*2)
	for i, frame := range buf {
		data[2*i] = pcm16(frame[0])
		data[2*i+1] = pcm16(frame[1])
	}
	intBuf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: exportBitDepth,
	}
	if err := enc.Write(intBuf); err != nil {
		return fmt.Errorf("could not write wav data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("could not finalize wav file: %w", err)
	}
	return nil
}

// ExportWavFile renders buf into a wav file at path.
func ExportWavFile(path string, sampleRate int, buf AudioBuffer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create wav file: %w", err)
	}
	if err := ExportWav(f, sampleRate, buf); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func pcm16(value float64) int {
	return clamp(int(value*math.MaxInt16), math.MinInt16, math.MaxInt16)
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
