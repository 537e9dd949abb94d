// Package gomidi is the rtmidi-backed MIDIContext. It needs cgo, so the
// non-cgo build of the playground falls back to conductor.NullMIDIContext.
package gomidi

import (
	"errors"
	"fmt"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/nsscreencast/595-audiokit-6/conductor"
)

type (
	RTMIDIContext struct {
		broker             *conductor.Broker
		driver             *rtmididrv.Driver
		currentIn          drivers.In
		stop               func()
		inputDevices       []RTMIDIDevice
		devicesInitialized bool
	}

	RTMIDIDevice struct {
		context *RTMIDIContext
		in      drivers.In
	}
)

// NewContext opens the driver. Note events from the open input device are
// posted to broker.ToModel as *conductor.NoteEvent.
func NewContext(broker *conductor.Broker) *RTMIDIContext {
	m := RTMIDIContext{broker: broker}
	// there's not much we can do if this fails, so just use m.driver = nil to
	// indicate no driver available
	m.driver, _ = rtmididrv.New()
	return &m
}

func (c *RTMIDIContext) Inputs(yield func(conductor.MIDIInputDevice) bool) {
	if c.devicesInitialized {
		c.yieldCachedInputDevices(yield)
	} else {
		c.initInputDevices(yield)
	}
}

func (c *RTMIDIContext) yieldCachedInputDevices(yield func(conductor.MIDIInputDevice) bool) {
	for _, device := range c.inputDevices {
		if !yield(device) {
			break
		}
	}
}

func (c *RTMIDIContext) initInputDevices(yield func(conductor.MIDIInputDevice) bool) {
	if c.driver == nil {
		return
	}
	ins, err := c.driver.Ins()
	if err != nil {
		return
	}
	for i := 0; i < len(ins); i++ {
		device := RTMIDIDevice{context: c, in: ins[i]}
		c.inputDevices = append(c.inputDevices, device)
		if !yield(device) {
			break
		}
	}
	c.devicesInitialized = true
}

func (c *RTMIDIContext) Close() {
	if c.driver == nil {
		return
	}
	if c.currentIn != nil && c.currentIn.IsOpen() {
		c.closeCurrent()
	}
	c.driver.Close()
}

func (c *RTMIDIContext) Support() conductor.MIDISupport {
	if c.driver == nil {
		return conductor.MIDISupportNoDriver
	}
	return conductor.MIDISupported
}

func (c *RTMIDIContext) closeCurrent() {
	if c.stop != nil {
		c.stop()
		c.stop = nil
	}
	c.currentIn.Close()
	c.currentIn = nil
}

// Open the input device, closing the currently open one if necessary.
func (d RTMIDIDevice) Open() error {
	c := d.context
	if c.currentIn == d.in {
		return nil
	}
	if c.driver == nil {
		return errors.New("no driver available")
	}
	if c.currentIn != nil && c.currentIn.IsOpen() {
		c.closeCurrent()
	}
	if err := d.in.Open(); err != nil {
		return fmt.Errorf("opening MIDI input failed: %w", err)
	}
	stop, err := midi.ListenTo(d.in, c.handleMessage)
	if err != nil {
		d.in.Close()
		return fmt.Errorf("listening to MIDI input failed: %w", err)
	}
	c.currentIn = d.in
	c.stop = stop
	return nil
}

func (d RTMIDIDevice) Close() error {
	if d.context.currentIn != d.in {
		return nil
	}
	d.context.closeCurrent()
	return nil
}

func (d RTMIDIDevice) IsOpen() bool {
	return d.context.currentIn == d.in && d.in.IsOpen()
}

func (d RTMIDIDevice) String() string {
	return d.in.String()
}

// handleMessage runs on the driver's listener goroutine, so it only posts to
// the broker. A note on with zero velocity counts as a note off. If the
// channel is full the message is dropped.
func (c *RTMIDIContext) handleMessage(msg midi.Message, timestampms int32) {
	var channel, key, velocity uint8
	isNoteOn := msg.GetNoteOn(&channel, &key, &velocity)
	isNoteOff := !isNoteOn && msg.GetNoteOff(&channel, &key, &velocity)
	if !isNoteOn && !isNoteOff {
		return
	}
	event := &conductor.NoteEvent{On: isNoteOn && velocity > 0, Note: key}
	conductor.TrySend(c.broker.ToModel, conductor.MsgToModel{Data: event})
}
