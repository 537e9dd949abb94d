//go:build cgo

package cmd

import (
	"github.com/nsscreencast/595-audiokit-6/conductor"
	"github.com/nsscreencast/595-audiokit-6/conductor/gomidi"
)

func NewMidiContext(broker *conductor.Broker) conductor.MIDIContext {
	return gomidi.NewContext(broker)
}
