package gioui

import (
	"time"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"

	"github.com/nsscreencast/595-audiokit-6/conductor"
)

var alertMargin = layout.UniformInset(unit.Dp(6))
var alertInset = layout.Inset{Top: unit.Dp(6), Bottom: unit.Dp(6), Left: unit.Dp(10), Right: unit.Dp(10)}

func (p *Playground) layoutAlerts(gtx C) D {
	now := time.Now()
	if p.Alerts().Update(now) {
		gtx.Execute(op.InvalidateCmd{At: now.Add(50 * time.Millisecond)})
	}
	var bars []layout.FlexChild
	for alert := range p.Alerts().Iterate {
		bars = append(bars, layout.Rigid(func(gtx C) D {
			return p.layoutAlertBar(gtx, alert)
		}))
	}
	return layout.S.Layout(gtx, func(gtx C) D {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx, bars...)
	})
}

func (p *Playground) layoutAlertBar(gtx C, alert conductor.Alert) D {
	bg := popupSurfaceColor
	fg := highEmphasisTextColor
	switch alert.Priority {
	case conductor.Warning:
		bg = warningColor
		fg = black
	case conductor.Error:
		bg = errorColor
		fg = black
	}
	return alertMargin.Layout(gtx, func(gtx C) D {
		macro := op.Record(gtx.Ops)
		dims := alertInset.Layout(gtx, func(gtx C) D {
			gtx.Constraints.Min.X = gtx.Constraints.Max.X
			return LabelStyle{Text: alert.Message, Color: fg, Alignment: layout.Center, FontSize: p.Theme.TextSize, Shaper: p.Theme.Shaper}.Layout(gtx)
		})
		call := macro.Stop()
		paint.FillShape(gtx.Ops, bg, clip.Rect{Max: dims.Size}.Op())
		call.Add(gtx.Ops)
		return dims
	})
}
