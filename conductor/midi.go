package conductor

type (
	// MIDIContext is the bridge to a MIDI driver. The real implementation
	// lives in conductor/gomidi, behind a build tag, because the driver needs
	// cgo; NullMIDIContext stands in everywhere else.
	MIDIContext interface {
		Inputs(yield func(input MIDIInputDevice) bool)
		Close()
		Support() MIDISupport
	}

	MIDIInputDevice interface {
		Open() error
		Close() error
		IsOpen() bool
		String() string
	}

	MIDISupport int

	// NoteEvent is a note message from an open MIDI input, posted to
	// broker.ToModel and routed to the synth: the playground synth is
	// monophonic, so the event carries no channel.
	NoteEvent struct {
		On   bool
		Note byte
	}
)

const (
	MIDISupportNotCompiled MIDISupport = iota
	MIDISupportNoDriver
	MIDISupported
)

// NullMIDIContext is a mockup MIDIContext if you don't want to create a real
// one.
type NullMIDIContext struct{}

func (m NullMIDIContext) Inputs(yield func(input MIDIInputDevice) bool) {}
func (m NullMIDIContext) Close()                                        {}
func (m NullMIDIContext) Support() MIDISupport                          { return MIDISupportNotCompiled }
