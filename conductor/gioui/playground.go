package gioui

import (
	"fmt"
	"image"
	"time"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/nsscreencast/595-audiokit-6/conductor"
	"github.com/nsscreencast/595-audiokit-6/version"
)

type (
	// Playground is the GUI: three tabbed screens over one conductor.Model.
	// Everything here runs in the event loop of Main; the audio, meter and
	// MIDI goroutines reach it only through the broker.
	Playground struct {
		Theme          *material.Theme
		SynthScreen    *SynthScreen
		AmbienceScreen *AmbienceScreen
		MixerScreen    *MixerScreen

		screen Screen
		tabs   [numScreens]widget.Clickable

		preferences Preferences

		*conductor.Model
	}

	// Screen enumerates the tabs.
	Screen int

	C = layout.Context
	D = layout.Dimensions
)

const (
	ScreenSynth Screen = iota
	ScreenAmbience
	ScreenMixer

	numScreens = 3
)

// meterDecibelRange is how many decibels the level bars span.
const meterDecibelRange = 80

func (s Screen) String() string {
	switch s {
	case ScreenAmbience:
		return "Ambience"
	case ScreenMixer:
		return "Mixer"
	default:
		return "Synth"
	}
}

func NewPlayground(model *conductor.Model, preferences Preferences) *Playground {
	p := &Playground{
		Theme:          NewTheme(),
		SynthScreen:    NewSynthScreen(),
		AmbienceScreen: NewAmbienceScreen(),
		MixerScreen:    NewMixerScreen(),
		preferences:    preferences,
		Model:          model,
	}
	if preferences.YmlError != nil {
		model.Alerts().AddAlert(conductor.Alert{
			Priority: conductor.Warning,
			Message:  fmt.Sprintf("Reading preferences failed: %v", preferences.YmlError),
			Duration: 10 * time.Second,
		})
	}
	return p
}

// Screen returns the tab currently showing.
func (p *Playground) Screen() Screen { return p.screen }

// SwitchScreen shows the given tab. The screen being left goes quiet: its
// transport stops and with it any tick entries it had registered. The mixer
// only pauses, so coming back resumes from the recorded offset.
func (p *Playground) SwitchScreen(s Screen) {
	if s < 0 || s >= numScreens || s == p.screen {
		return
	}
	switch p.screen {
	case ScreenAmbience:
		p.Ambience().Stop()
		p.Ambience().SetAutopan(false)
	case ScreenMixer:
		p.Mixer().Pause()
	default:
		p.Synth().Stop()
	}
	p.screen = s
}

// Main runs the GUI event loop until the window closes or a close request
// arrives on broker.CloseGUI. It drains broker.ToModel between frames and
// drives the model's tick scheduler; it closes broker.FinishedGUI on the way
// out so main knows the loop is done.
func (p *Playground) Main() {
	baseTicker := time.NewTicker(conductor.TickerInterval)
	defer baseTicker.Stop()
	var ops op.Ops
	w := p.newWindow()
	acks := make(chan struct{})
	events := make(chan event.Event)
	go func() {
		for {
			ev := w.Event()
			events <- ev
			<-acks
			if _, ok := ev.(app.DestroyEvent); ok {
				return
			}
		}
	}()
F:
	for {
		select {
		case e := <-p.Broker().ToModel:
			p.ProcessMsg(e)
			w.Invalidate()
		case <-p.Broker().CloseGUI:
			w.Perform(system.ActionClose)
		case e := <-events:
			switch e := e.(type) {
			case app.DestroyEvent:
				acks <- struct{}{}
				break F
			case app.FrameEvent:
				gtx := app.NewContext(&ops, e)
				p.Layout(gtx, w)
				e.Frame(gtx.Ops)
			}
			acks <- struct{}{}
		case now := <-baseTicker.C:
			p.Ticker().Tick(now)
			if p.Ticker().Len() > 0 {
				w.Invalidate()
			}
		}
	}
	close(p.Broker().FinishedGUI)
}

func (p *Playground) newWindow() *app.Window {
	w := new(app.Window)
	w.Option(app.Title("Audio Playground"))
	w.Option(app.Size(p.preferences.WindowSize()))
	if p.preferences.Window.Maximized {
		w.Option(app.Maximized.Option())
	}
	return w
}

func (p *Playground) Layout(gtx C, w *app.Window) {
	defer clip.Rect(image.Rectangle{Max: gtx.Constraints.Max}).Push(gtx.Ops).Pop()
	paint.Fill(gtx.Ops, p.Theme.Palette.Bg)
	event.Op(gtx.Ops, p)

	for i := range p.tabs {
		for p.tabs[i].Clicked(gtx) {
			p.SwitchScreen(Screen(i))
		}
	}

	layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(p.layoutTabs),
		layout.Flexed(1, p.layoutScreen),
		layout.Rigid(p.layoutMeterBar),
	)
	p.layoutAlerts(gtx)

	// global hotkeys; the screens have no focusable widgets of their own, so
	// nothing downstream competes for these
	for {
		ev, ok := gtx.Event(
			key.Filter{Name: "F1"},
			key.Filter{Name: "F2"},
			key.Filter{Name: "F3"},
			key.Filter{Name: key.NameSpace},
			key.Filter{Name: key.NameEscape},
		)
		if !ok {
			break
		}
		if e, ok := ev.(key.Event); ok && e.State == key.Press {
			p.keyPress(e, w)
		}
	}
}

func (p *Playground) keyPress(e key.Event, w *app.Window) {
	switch e.Name {
	case "F1":
		p.SwitchScreen(ScreenSynth)
	case "F2":
		p.SwitchScreen(ScreenAmbience)
	case "F3":
		p.SwitchScreen(ScreenMixer)
	case key.NameSpace:
		p.toggleTransport()
	case key.NameEscape:
		w.Perform(system.ActionClose)
	}
}

// toggleTransport starts or stops whatever the showing screen plays.
func (p *Playground) toggleTransport() {
	switch p.screen {
	case ScreenAmbience:
		if p.Ambience().Playing() {
			p.Ambience().Stop()
		} else {
			p.Ambience().Play()
		}
	case ScreenMixer:
		if p.Mixer().State() == conductor.MixerPlaying {
			p.Mixer().Pause()
		} else {
			p.Mixer().Play()
		}
	default:
		if p.Synth().Playing() {
			p.Synth().Stop()
		} else {
			p.Synth().Play()
		}
	}
}

func (p *Playground) layoutTabs(gtx C) D {
	th := p.Theme
	var children []layout.FlexChild
	for i := range p.tabs {
		s := Screen(i)
		btn := &p.tabs[i]
		children = append(children, layout.Rigid(func(gtx C) D {
			tab := LowEmphasisButton(th, btn, fmt.Sprintf("%s (F%d)", s, i+1))
			if p.screen == s {
				tab.Color = tabActiveColor
			} else {
				tab.Color = tabInactiveColor
			}
			return tab.Layout(gtx)
		}))
	}
	children = append(children, layout.Flexed(1, func(gtx C) D {
		return D{Size: gtx.Constraints.Min}
	}))
	if v := version.String(); v != "" {
		children = append(children, layout.Rigid(func(gtx C) D {
			return layout.UniformInset(unit.Dp(6)).Layout(gtx, Label(v, disabledTextColor, th.Shaper))
		}))
	}
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx, children...)
}

func (p *Playground) layoutScreen(gtx C) D {
	switch p.screen {
	case ScreenAmbience:
		return p.AmbienceScreen.Layout(gtx, p)
	case ScreenMixer:
		return p.MixerScreen.Layout(gtx, p)
	default:
		return p.SynthScreen.Layout(gtx, p)
	}
}

func (p *Playground) layoutMeterBar(gtx C) D {
	inset := layout.Inset{Left: unit.Dp(6), Right: unit.Dp(6), Top: unit.Dp(4), Bottom: unit.Dp(4)}
	return inset.Layout(gtx, VuMeter{Result: p.MeterResult(), Range: meterDecibelRange}.Layout)
}
