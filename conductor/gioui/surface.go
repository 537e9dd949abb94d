package gioui

import (
	"image/color"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
)

// Surface fills the whole constraint area with a flat gray and lays the
// widget on top of it, inset.
type Surface struct {
	Gray  int
	Inset layout.Inset
}

func (s Surface) Layout(gtx C, widget layout.Widget) D {
	gray := min(max(s.Gray, 0), 255)
	color := color.NRGBA{R: uint8(gray), G: uint8(gray), B: uint8(gray), A: 255}
	paint.FillShape(gtx.Ops, color, clip.Rect{
		Max: gtx.Constraints.Max,
	}.Op())
	return s.Inset.Layout(gtx, widget)
}
