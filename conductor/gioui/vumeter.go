package gioui

import (
	"image"

	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"

	"github.com/nsscreencast/595-audiokit-6/conductor"
)

// VuMeter draws the two channel level bars at the bottom of the window:
// an RMS fill, a peak-hold tick and the instantaneous peak tick, which
// turns red at full scale. Range is how many decibels the bar spans.
type VuMeter struct {
	Result conductor.MeterResult
	Range  float32
}

func (v VuMeter) Layout(gtx C) D {
	defer op.Offset(image.Point{}).Push(gtx.Ops).Pop()
	gtx.Constraints.Max.Y = gtx.Dp(unit.Dp(12))
	height := gtx.Dp(unit.Dp(6))
	for chn := 0; chn < 2; chn++ {
		rms := float32(v.Result.RMS[chn]) + v.Range
		if rms > 0 {
			x := int(rms/v.Range*float32(gtx.Constraints.Max.X) + 0.5)
			if x > gtx.Constraints.Max.X {
				x = gtx.Constraints.Max.X
			}
			paint.FillShape(gtx.Ops, meterRMSColor, clip.Rect(image.Rect(0, 0, x, height)).Op())
		}
		hold := float32(v.Result.Hold[chn]) + v.Range
		if hold > 0 {
			x := int(hold/v.Range*float32(gtx.Constraints.Max.X) + 0.5)
			if x > gtx.Constraints.Max.X {
				x = gtx.Constraints.Max.X
			}
			paint.FillShape(gtx.Ops, meterHoldColor, clip.Rect(image.Rect(x-1, 0, x, height)).Op())
		}
		peak := float32(v.Result.Peak[chn]) + v.Range
		if peak > 0 {
			color := white
			if peak >= v.Range {
				color = errorColor
			}
			x := int(peak/v.Range*float32(gtx.Constraints.Max.X) + 0.5)
			if x > gtx.Constraints.Max.X {
				x = gtx.Constraints.Max.X
			}
			paint.FillShape(gtx.Ops, color, clip.Rect(image.Rect(x-1, 0, x, height)).Op())
		}
		op.Offset(image.Point{0, height}).Add(gtx.Ops)
	}
	return D{Size: gtx.Constraints.Max}
}
