package gioui

import (
	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"
)

type (
	SliderState struct {
		float   widget.Float
		tipArea component.TipArea
	}

	// SliderStyle is one labeled parameter row: name on the left, slider in
	// the middle, current value readout on the right. The slider maps its
	// normalized position to [Min, Max] and writes through Set on every
	// frame; the conductor setters compare against current state, so
	// unchanged values are free.
	SliderStyle struct {
		Theme    *material.Theme
		State    *SliderState
		Label    string
		Hint     string
		Tooltip  string
		Min, Max float64
		Value    float64
		Set      func(float64)
		Disabled bool
	}
)

func Slider(th *material.Theme, state *SliderState, label string, min, max, value float64, set func(float64)) SliderStyle {
	return SliderStyle{
		Theme: th,
		State: state,
		Label: label,
		Min:   min,
		Max:   max,
		Value: value,
		Set:   set,
	}
}

func (s SliderStyle) Layout(gtx C) D {
	if s.Tooltip != "" {
		return s.State.tipArea.Layout(gtx, Tooltip(s.Theme, s.Tooltip), s.layoutRow)
	}
	return s.layoutRow(gtx)
}

func (s SliderStyle) layoutRow(gtx C) D {
	leftSpacer := layout.Spacer{Width: unit.Dp(6), Height: unit.Dp(32)}.Layout
	rightSpacer := layout.Spacer{Width: unit.Dp(6)}.Layout
	labelColor := mediumEmphasisTextColor
	if s.Disabled {
		labelColor = disabledTextColor
	}
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(leftSpacer),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min.X = gtx.Dp(unit.Dp(110))
			return LabelStyle{Text: s.Label, Color: labelColor, Alignment: layout.W, FontSize: s.Theme.TextSize * 14.0 / 16.0, Shaper: s.Theme.Shaper}.Layout(gtx)
		}),
		layout.Flexed(1, s.layoutSlider),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min.X = gtx.Dp(unit.Dp(86))
			return LabelStyle{Text: s.Hint, Color: sliderHintColor, Alignment: layout.E, FontSize: s.Theme.TextSize * 14.0 / 16.0, Shaper: s.Theme.Shaper}.Layout(gtx)
		}),
		layout.Rigid(rightSpacer),
	)
}

func (s SliderStyle) layoutSlider(gtx C) D {
	if s.Disabled {
		gtx = gtx.Disabled()
	}
	if !s.State.float.Dragging() {
		s.State.float.Value = float32((s.Value - s.Min) / (s.Max - s.Min))
	}
	sliderStyle := material.Slider(s.Theme, &s.State.float)
	sliderStyle.Color = s.Theme.Palette.ContrastBg
	if s.Disabled {
		sliderStyle.Color = disabledTextColor
	}
	dims := sliderStyle.Layout(gtx)
	if !s.Disabled {
		s.Set(s.Min + float64(s.State.float.Value)*(s.Max-s.Min))
	}
	return dims
}
