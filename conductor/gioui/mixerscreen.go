package gioui

import (
	"fmt"
	"time"

	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"github.com/nsscreencast/595-audiokit-6/conductor"
)

// MixerScreen is the multitrack view: transport, the shared progress bar and
// one volume strip per track. The strips appear as soon as the manifest is
// read; they stay grayed out until decoding finishes.
type MixerScreen struct {
	playBtn TipClickable
	stopBtn TipClickable
	volumes []SliderState
}

func NewMixerScreen() *MixerScreen {
	return &MixerScreen{}
}

func (s *MixerScreen) Layout(gtx C, p *Playground) D {
	s.update(gtx, p)
	mixer := p.Mixer()
	th := p.Theme

	rows := []layout.FlexChild{
		layout.Rigid(func(gtx C) D { return s.layoutTransport(gtx, p) }),
		layout.Rigid(func(gtx C) D { return s.layoutProgressRow(gtx, p) }),
	}
	for len(s.volumes) < mixer.NumTracks() {
		s.volumes = append(s.volumes, SliderState{})
	}
	disabled := mixer.State() == conductor.MixerLoading || mixer.State() == conductor.MixerFailed
	for i := 0; i < mixer.NumTracks(); i++ {
		track := mixer.Track(i)
		volume := Slider(th, &s.volumes[i], track.Name(), 0, 1, track.Volume(), func(v float64) { mixer.SetVolume(i, v) })
		volume.Hint = fmt.Sprintf("%.0f %%", track.Volume()*100)
		volume.Disabled = disabled || !track.Loaded()
		rows = append(rows, layout.Rigid(volume.Layout))
	}

	return Surface{Gray: 37, Inset: layout.UniformInset(unit.Dp(6))}.Layout(gtx, func(gtx C) D {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx, rows...)
	})
}

func (s *MixerScreen) update(gtx C, p *Playground) {
	mixer := p.Mixer()
	for s.playBtn.Clickable.Clicked(gtx) {
		if mixer.State() == conductor.MixerPlaying {
			mixer.Pause()
		} else {
			mixer.Play()
		}
	}
	for s.stopBtn.Clickable.Clicked(gtx) {
		mixer.Stop()
	}
}

func (s *MixerScreen) layoutTransport(gtx C, p *Playground) D {
	mixer := p.Mixer()
	th := p.Theme
	loaded := mixer.State() != conductor.MixerLoading && mixer.State() != conductor.MixerFailed
	playIcon, playTip := icons.AVPlayArrow, "Play (Space)"
	if mixer.State() == conductor.MixerPlaying {
		playIcon, playTip = icons.AVPause, "Pause (Space)"
	}
	stopEnabled := mixer.State() == conductor.MixerPlaying || mixer.State() == conductor.MixerPaused
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			return s.playBtn.Layout(gtx, th, playTip, IconButton(th, &s.playBtn.Clickable, playIcon, loaded).Layout)
		}),
		layout.Rigid(func(gtx C) D {
			return s.stopBtn.Layout(gtx, th, "Stop", IconButton(th, &s.stopBtn.Clickable, icons.AVStop, stopEnabled).Layout)
		}),
		layout.Rigid(func(gtx C) D { return s.layoutStatus(gtx, p) }),
	)
}

// layoutStatus shows the mixer state while there is nothing to play.
func (s *MixerScreen) layoutStatus(gtx C, p *Playground) D {
	th := p.Theme
	switch p.Mixer().State() {
	case conductor.MixerLoading:
		return LabelStyle{Text: "loading tracks...", Color: mediumEmphasisTextColor, Alignment: layout.W, FontSize: th.TextSize * 14.0 / 16.0, Shaper: th.Shaper}.Layout(gtx)
	case conductor.MixerFailed:
		return LabelStyle{Text: "loading tracks failed", Color: errorColor, Alignment: layout.W, FontSize: th.TextSize * 14.0 / 16.0, Shaper: th.Shaper}.Layout(gtx)
	}
	return D{}
}

func (s *MixerScreen) layoutProgressRow(gtx C, p *Playground) D {
	mixer := p.Mixer()
	th := p.Theme
	position := fmt.Sprintf("%s / %s", formatDuration(mixer.Position()), formatDuration(mixer.Duration()))
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(layout.Spacer{Width: unit.Dp(6), Height: unit.Dp(32)}.Layout),
		layout.Flexed(1, func(gtx C) D {
			return layout.Inset{Top: unit.Dp(6), Bottom: unit.Dp(6)}.Layout(gtx, material.ProgressBar(th, float32(mixer.Progress())).Layout)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min.X = gtx.Dp(unit.Dp(110))
			return LabelStyle{Text: position, Color: sliderHintColor, Alignment: layout.E, FontSize: th.TextSize * 14.0 / 16.0, Shaper: th.Shaper}.Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(6)}.Layout),
	)
}

func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
