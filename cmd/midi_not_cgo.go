//go:build !cgo

package cmd

import (
	"github.com/nsscreencast/595-audiokit-6/conductor"
)

func NewMidiContext(broker *conductor.Broker) conductor.MIDIContext {
	// with no cgo, we cannot use MIDI, so return a null context
	return conductor.NullMIDIContext{}
}
