package gioui

import (
	"fmt"

	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"golang.org/x/exp/shiny/materialdesign/icons"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nsscreencast/595-audiokit-6/conductor"
	"github.com/nsscreencast/595-audiokit-6/engine"
)

var titler = cases.Title(language.English)

var synthShapes = [4]engine.Shape{engine.Sine, engine.Triangle, engine.Saw, engine.Square}

// SynthScreen is the monophonic synth view: transport and mute, waveform
// selector, the four parameter sliders, the preset row and the MIDI input
// row. All state lives in the conductor; the screen only holds widgets.
type SynthScreen struct {
	playBtn    TipClickable
	muteBtn    TipClickable
	shapeBtns  [4]widget.Clickable
	presetBtns []widget.Clickable
	midiBtns   []widget.Clickable

	frequency SliderState
	detune    SliderState
	octaveMix SliderState
	detuneMix SliderState
}

func NewSynthScreen() *SynthScreen {
	return &SynthScreen{}
}

func (s *SynthScreen) Layout(gtx C, p *Playground) D {
	s.update(gtx, p)
	synth := p.Synth()
	th := p.Theme

	frequency := Slider(th, &s.frequency, "Frequency", conductor.MinSynthFrequency, conductor.MaxSynthFrequency, synth.Frequency(), synth.SetFrequency)
	frequency.Hint = fmt.Sprintf("%.0f Hz", synth.Frequency())
	detune := Slider(th, &s.detune, "Detune", conductor.MinDetuneCents, conductor.MaxDetuneCents, synth.DetuneCents(), synth.SetDetuneCents)
	detune.Hint = fmt.Sprintf("%.1f Hz", synth.DetunedFrequency())
	detune.Tooltip = fmt.Sprintf("%+.0f cents off the base oscillator", synth.DetuneCents())
	octaveMix := Slider(th, &s.octaveMix, "Octave mix", 0, 100, synth.OctaveMix(), synth.SetOctaveMix)
	octaveMix.Hint = fmt.Sprintf("%.0f %%", synth.OctaveMix())
	detuneMix := Slider(th, &s.detuneMix, "Detune mix", 0, 100, synth.DetuneMix(), synth.SetDetuneMix)
	detuneMix.Hint = fmt.Sprintf("%.0f %%", synth.DetuneMix())

	return Surface{Gray: 37, Inset: layout.UniformInset(unit.Dp(6))}.Layout(gtx, func(gtx C) D {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx C) D { return s.layoutTransport(gtx, p) }),
			layout.Rigid(func(gtx C) D { return s.layoutShapeRow(gtx, p) }),
			layout.Rigid(frequency.Layout),
			layout.Rigid(detune.Layout),
			layout.Rigid(octaveMix.Layout),
			layout.Rigid(detuneMix.Layout),
			layout.Rigid(func(gtx C) D { return s.layoutPresetRow(gtx, p) }),
			layout.Rigid(func(gtx C) D { return s.layoutMidiRow(gtx, p) }),
		)
	})
}

func (s *SynthScreen) update(gtx C, p *Playground) {
	synth := p.Synth()
	for s.playBtn.Clickable.Clicked(gtx) {
		if synth.Playing() {
			synth.Stop()
		} else {
			synth.Play()
		}
	}
	for s.muteBtn.Clickable.Clicked(gtx) {
		synth.SetMuted(!synth.Muted())
	}
	for i := range s.shapeBtns {
		for s.shapeBtns[i].Clicked(gtx) {
			synth.SetShape(synthShapes[i])
		}
	}
	presets := p.SynthPresets()
	for len(s.presetBtns) < len(presets) {
		s.presetBtns = append(s.presetBtns, widget.Clickable{})
	}
	for i := range presets {
		for s.presetBtns[i].Clicked(gtx) {
			p.ApplySynthPreset(i)
		}
	}
	inputs := p.MidiInputs()
	for len(s.midiBtns) < len(inputs) {
		s.midiBtns = append(s.midiBtns, widget.Clickable{})
	}
	for i, name := range inputs {
		for s.midiBtns[i].Clicked(gtx) {
			if p.CurrentMidiInput() == name {
				p.SetMidiInput("")
			} else {
				p.SetMidiInput(name)
			}
		}
	}
}

func (s *SynthScreen) layoutTransport(gtx C, p *Playground) D {
	synth := p.Synth()
	th := p.Theme
	playIcon, playTip := icons.AVPlayArrow, "Play (Space)"
	if synth.Playing() {
		playIcon, playTip = icons.AVStop, "Stop (Space)"
	}
	muteIcon, muteTip := icons.AVVolumeUp, "Mute"
	if synth.Muted() {
		muteIcon, muteTip = icons.AVVolumeOff, "Unmute"
	}
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			return s.playBtn.Layout(gtx, th, playTip, IconButton(th, &s.playBtn.Clickable, playIcon, true).Layout)
		}),
		layout.Rigid(func(gtx C) D {
			return s.muteBtn.Layout(gtx, th, muteTip, IconButton(th, &s.muteBtn.Clickable, muteIcon, !synth.Muted()).Layout)
		}),
	)
}

func (s *SynthScreen) layoutShapeRow(gtx C, p *Playground) D {
	synth := p.Synth()
	th := p.Theme
	return layoutOptionRow(gtx, th, "Waveform", func(gtx C) D {
		var children []layout.FlexChild
		for i := range synthShapes {
			shape := synthShapes[i]
			btn := &s.shapeBtns[i]
			children = append(children, layout.Rigid(func(gtx C) D {
				text := titler.String(shape.String())
				if synth.Shape() == shape {
					return HighEmphasisButton(th, btn, text).Layout(gtx)
				}
				return LowEmphasisButton(th, btn, text).Layout(gtx)
			}))
		}
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx, children...)
	})
}

func (s *SynthScreen) layoutPresetRow(gtx C, p *Playground) D {
	th := p.Theme
	presets := p.SynthPresets()
	return layoutOptionRow(gtx, th, "Presets", func(gtx C) D {
		var children []layout.FlexChild
		for i := range presets {
			btn := &s.presetBtns[i]
			name := presets[i].Name
			children = append(children, layout.Rigid(LowEmphasisButton(th, btn, name).Layout))
		}
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx, children...)
	})
}

func (s *SynthScreen) layoutMidiRow(gtx C, p *Playground) D {
	th := p.Theme
	inputs := p.MidiInputs()
	return layoutOptionRow(gtx, th, "MIDI in", func(gtx C) D {
		if len(inputs) == 0 {
			return LabelStyle{Text: "no ports", Color: disabledTextColor, Alignment: layout.W, FontSize: th.TextSize * 14.0 / 16.0, Shaper: th.Shaper}.Layout(gtx)
		}
		var children []layout.FlexChild
		for i, name := range inputs {
			btn := &s.midiBtns[i]
			children = append(children, layout.Rigid(func(gtx C) D {
				if p.CurrentMidiInput() == name {
					return HighEmphasisButton(th, btn, name).Layout(gtx)
				}
				return LowEmphasisButton(th, btn, name).Layout(gtx)
			}))
		}
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx, children...)
	})
}

// layoutOptionRow lays a fixed-width row label and the row's widget, matching
// the slider rows so the screens line up in one grid.
func layoutOptionRow(gtx C, th *material.Theme, label string, w layout.Widget) D {
	leftSpacer := layout.Spacer{Width: unit.Dp(6), Height: unit.Dp(32)}.Layout
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(leftSpacer),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min.X = gtx.Dp(unit.Dp(110))
			return LabelStyle{Text: label, Color: mediumEmphasisTextColor, Alignment: layout.W, FontSize: th.TextSize * 14.0 / 16.0, Shaper: th.Shaper}.Layout(gtx)
		}),
		layout.Rigid(w),
	)
}
