package gioui

import (
	"fmt"
	"math"

	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"github.com/nsscreencast/595-audiokit-6/conductor"
)

// AmbienceScreen is the noise generator view: one gain and pan row per noise
// color, the shared reverb mix and the autopan sweep controls.
type AmbienceScreen struct {
	playBtn TipClickable
	autopan widget.Bool

	gains  [3]SliderState
	pans   [3]SliderState
	reverb SliderState
	rate   SliderState
	depth  SliderState
}

func NewAmbienceScreen() *AmbienceScreen {
	return &AmbienceScreen{}
}

func (s *AmbienceScreen) Layout(gtx C, p *Playground) D {
	s.update(gtx, p)
	amb := p.Ambience()
	th := p.Theme

	rows := []layout.FlexChild{
		layout.Rigid(func(gtx C) D { return s.layoutTransport(gtx, p) }),
	}
	for i := 0; i < amb.NumSources(); i++ {
		name := titler.String(amb.SourceColor(i).String())
		gain := Slider(th, &s.gains[i], name+" gain", 0, 1, amb.SourceGain(i), func(v float64) { amb.SetSourceGain(i, v) })
		gain.Hint = fmt.Sprintf("%.0f %%", amb.SourceGain(i)*100)
		pan := Slider(th, &s.pans[i], name+" pan", -1, 1, amb.SourcePan(i), func(v float64) { amb.SetSourcePan(i, v) })
		pan.Hint = formatPan(amb.SourcePan(i))
		if amb.Autopan() {
			pan.Tooltip = "Autopan is sweeping this"
		}
		rows = append(rows, layout.Rigid(gain.Layout), layout.Rigid(pan.Layout))
	}

	reverb := Slider(th, &s.reverb, "Reverb mix", 0, 1, amb.ReverbMix(), amb.SetReverbMix)
	reverb.Hint = fmt.Sprintf("%.0f %%", amb.ReverbMix()*100)
	rate := Slider(th, &s.rate, "Sweep rate", conductor.MinAutopanRate, conductor.MaxAutopanRate, amb.AutopanRate(), amb.SetAutopanRate)
	rate.Hint = fmt.Sprintf("%.2f Hz", amb.AutopanRate())
	rate.Disabled = !amb.Autopan()
	depth := Slider(th, &s.depth, "Sweep depth", 0, 1, amb.AutopanDepth(), amb.SetAutopanDepth)
	depth.Hint = fmt.Sprintf("%.0f %%", amb.AutopanDepth()*100)
	depth.Disabled = !amb.Autopan()

	rows = append(rows,
		layout.Rigid(reverb.Layout),
		layout.Rigid(func(gtx C) D { return s.layoutAutopanRow(gtx, p) }),
		layout.Rigid(rate.Layout),
		layout.Rigid(depth.Layout),
	)

	return Surface{Gray: 37, Inset: layout.UniformInset(unit.Dp(6))}.Layout(gtx, func(gtx C) D {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx, rows...)
	})
}

func (s *AmbienceScreen) update(gtx C, p *Playground) {
	amb := p.Ambience()
	for s.playBtn.Clickable.Clicked(gtx) {
		if amb.Playing() {
			amb.Stop()
		} else {
			amb.Play()
		}
	}
	if s.autopan.Update(gtx) {
		amb.SetAutopan(s.autopan.Value)
	}
	s.autopan.Value = amb.Autopan()
}

func (s *AmbienceScreen) layoutTransport(gtx C, p *Playground) D {
	amb := p.Ambience()
	th := p.Theme
	playIcon, playTip := icons.AVPlayArrow, "Play (Space)"
	if amb.Playing() {
		playIcon, playTip = icons.AVStop, "Stop (Space)"
	}
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			return s.playBtn.Layout(gtx, th, playTip, IconButton(th, &s.playBtn.Clickable, playIcon, true).Layout)
		}),
	)
}

func (s *AmbienceScreen) layoutAutopanRow(gtx C, p *Playground) D {
	th := p.Theme
	return layoutOptionRow(gtx, th, "Autopan", func(gtx C) D {
		return layout.Inset{Top: unit.Dp(6), Bottom: unit.Dp(6)}.Layout(gtx, material.Switch(th, &s.autopan, "Autopan").Layout)
	})
}

func formatPan(pan float64) string {
	switch {
	case math.Abs(pan) < 0.005:
		return "center"
	case pan < 0:
		return fmt.Sprintf("%.0f %% left", -pan*100)
	default:
		return fmt.Sprintf("%.0f %% right", pan*100)
	}
}
