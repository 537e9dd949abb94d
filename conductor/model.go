// Package conductor sits between the views and the audio engine. Each screen
// has a conductor owning its engine nodes and exposing plain observable state
// with side-effecting setters: a setter clamps the value to its range,
// compares it to the current state, mutates and issues the engine write. The
// package also carries the shared services: the message broker, the
// cooperative tick scheduler, the alert list and the level meter.
//
// The Model and the conductors are not safe for concurrent use; everything
// except the meter goroutine and the track loader runs in the GUI event loop,
// which drains broker.ToModel into ProcessMsg.
package conductor

import (
	"fmt"
	"time"

	"github.com/nsscreencast/595-audiokit-6/engine"
)

type (
	Model struct {
		broker *Broker
		engine *engine.Engine
		ticker *Ticker
		alerts Alerts

		synth    *SynthConductor
		ambience *AmbienceConductor
		mixer    *MixerConductor

		presets     []SynthPreset
		meterResult MeterResult
		midi        midiState
	}

	midiState struct {
		context MIDIContext
		current MIDIInputDevice
	}
)

func NewModel(e *engine.Engine, broker *Broker, midiContext MIDIContext) *Model {
	m := &Model{
		broker: broker,
		engine: e,
		ticker: NewTicker(),
	}
	m.synth = NewSynthConductor(e)
	m.ambience = NewAmbienceConductor(e, m.ticker)
	m.mixer = NewMixerConductor(e, broker, m.ticker, &m.alerts)
	m.presets = LoadSynthPresets()
	m.midi.context = midiContext
	return m
}

func (m *Model) Engine() *engine.Engine       { return m.engine }
func (m *Model) Broker() *Broker              { return m.broker }
func (m *Model) Ticker() *Ticker              { return m.ticker }
func (m *Model) Alerts() *Alerts              { return &m.alerts }
func (m *Model) Synth() *SynthConductor       { return m.synth }
func (m *Model) Ambience() *AmbienceConductor { return m.ambience }
func (m *Model) Mixer() *MixerConductor       { return m.mixer }
func (m *Model) MeterResult() MeterResult     { return m.meterResult }
func (m *Model) SynthPresets() []SynthPreset  { return m.presets }

// ApplySynthPreset loads preset i into the synth. Out-of-range indices are
// ignored.
func (m *Model) ApplySynthPreset(i int) {
	if i < 0 || i >= len(m.presets) {
		return
	}
	m.presets[i].Apply(m.synth)
	m.alerts.AddNamed("SynthPreset", fmt.Sprintf("Loaded preset: %s", m.presets[i].Name), Info)
}

// ProcessMsg handles one broker message. The GUI event loop drains
// broker.ToModel through it.
func (m *Model) ProcessMsg(msg MsgToModel) {
	if msg.HasMeterResult {
		m.meterResult = msg.MeterResult
	}
	switch data := msg.Data.(type) {
	case *tracksLoaded:
		m.mixer.finishLoad(data)
	case *NoteEvent:
		if data.On {
			m.synth.NoteOn(data.Note)
		} else {
			m.synth.NoteOff(data.Note)
		}
	case Alert:
		m.alerts.AddAlert(data)
	case func():
		data()
	}
}

// MidiInputs returns the names of the available MIDI input devices.
func (m *Model) MidiInputs() []string {
	var names []string
	for input := range m.midi.context.Inputs {
		names = append(names, input.String())
	}
	return names
}

// CurrentMidiInput returns the name of the open MIDI input, or "" when none
// is open.
func (m *Model) CurrentMidiInput() string {
	if m.midi.current == nil {
		return ""
	}
	return m.midi.current.String()
}

// SetMidiInput opens the named MIDI input device, closing the current one
// first. An empty name just closes. Problems raise alerts, never errors: a
// playground without a MIDI device is still fully usable.
func (m *Model) SetMidiInput(name string) {
	if m.midi.current != nil {
		if err := m.midi.current.Close(); err != nil {
			m.alerts.Add(fmt.Sprintf("Failed to close MIDI input port: %v", err), Error)
		}
		m.midi.current = nil
	}
	if name == "" {
		return
	}
	for input := range m.midi.context.Inputs {
		if input.String() != name {
			continue
		}
		if err := input.Open(); err != nil {
			m.alerts.Add(fmt.Sprintf("Failed to open MIDI input port: %v", err), Error)
			return
		}
		m.midi.current = input
		m.alerts.Add(fmt.Sprintf("Opened MIDI input port: %s", name), Info)
		return
	}
	m.alerts.AddNamed("MidiInput", fmt.Sprintf("No MIDI input port named %q", name), Warning)
}

// Close shuts down the model's services: the MIDI context and the meter
// goroutine. Call it once, after the GUI loop has exited.
func (m *Model) Close() {
	m.midi.context.Close()
	TrySend(m.broker.CloseMeter, struct{}{})
	select {
	case <-m.broker.FinishedMeter:
	case <-time.After(3 * time.Second):
	}
}
