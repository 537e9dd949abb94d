package oto

import (
	"encoding/binary"
	"math"

	playground "github.com/nsscreencast/595-audiokit-6"
)

// frameBytes converts stereo frames to the interleaved float32 little-endian
// layout the device consumes, clamping to [-1, 1]. It writes into dst, which
// must have room for 8 bytes per frame, and returns the written slice.
func frameBytes(buf playground.AudioBuffer, dst []byte) []byte {
	dst = dst[:len(buf)*8]
	for i, frame := range buf {
		binary.LittleEndian.PutUint32(dst[i*8:], math.Float32bits(clampFloat32(frame[0])))
		binary.LittleEndian.PutUint32(dst[i*8+4:], math.Float32bits(clampFloat32(frame[1])))
	}
	return dst
}

func clampFloat32(v float64) float32 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return float32(v)
}
