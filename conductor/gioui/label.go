package gioui

import (
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
)

// LabelStyle draws a single line of text in the label font.
type LabelStyle struct {
	Text      string
	Color     color.NRGBA
	Alignment layout.Direction
	FontSize  unit.Sp
	Shaper    *text.Shaper
}

func (l LabelStyle) Layout(gtx C) D {
	return l.Alignment.Layout(gtx, func(gtx C) D {
		gtx.Constraints.Min = image.Point{}
		paint.ColorOp{Color: l.Color}.Add(gtx.Ops)
		return widget.Label{Alignment: text.Start, MaxLines: 1}.Layout(gtx, l.Shaper, labelDefaultFont, l.FontSize, l.Text, op.CallOp{})
	})
}

// Label returns a left aligned label widget in the default size.
func Label(str string, color color.NRGBA, shaper *text.Shaper) layout.Widget {
	return LabelStyle{Text: str, Color: color, Alignment: layout.W, FontSize: labelDefaultFontSize, Shaper: shaper}.Layout
}
