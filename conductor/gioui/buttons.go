package gioui

import (
	"log"

	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"
)

var iconCache = map[*byte]*widget.Icon{}

// widgetForIcon returns a widget for IconVG data, caching the results
func widgetForIcon(icon []byte) *widget.Icon {
	if widget, ok := iconCache[&icon[0]]; ok {
		return widget
	}
	widget, err := widget.NewIcon(icon)
	if err != nil {
		log.Fatal(err)
	}
	iconCache[&icon[0]] = widget
	return widget
}

// TipClickable is a clickable with tooltip hover state.
type TipClickable struct {
	Clickable widget.Clickable
	tipArea   component.TipArea
}

func (t *TipClickable) Layout(gtx C, th *material.Theme, tip string, w layout.Widget) D {
	return t.tipArea.Layout(gtx, Tooltip(th, tip), w)
}

func IconButton(th *material.Theme, w *widget.Clickable, icon []byte, enabled bool) material.IconButtonStyle {
	ret := material.IconButton(th, w, widgetForIcon(icon), "")
	ret.Background = transparent
	ret.Inset = layout.UniformInset(unit.Dp(6))
	if enabled {
		ret.Color = primaryColor
	} else {
		ret.Color = disabledTextColor
	}
	return ret
}

func LowEmphasisButton(th *material.Theme, w *widget.Clickable, text string) material.ButtonStyle {
	ret := material.Button(th, w, text)
	ret.Color = th.Palette.Fg
	ret.Background = transparent
	ret.Inset = layout.UniformInset(unit.Dp(6))
	return ret
}

func HighEmphasisButton(th *material.Theme, w *widget.Clickable, text string) material.ButtonStyle {
	ret := material.Button(th, w, text)
	ret.Color = th.Palette.ContrastFg
	ret.Background = th.Palette.ContrastBg
	ret.Inset = layout.UniformInset(unit.Dp(6))
	return ret
}

func Tooltip(th *material.Theme, tip string) component.Tooltip {
	tooltip := component.PlatformTooltip(th, tip)
	tooltip.Bg = popupSurfaceColor
	tooltip.Text.Color = highEmphasisTextColor
	return tooltip
}
