package gioui

import (
	"image/color"

	"gioui.org/font/gofont"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"
)

var fontCollection []text.FontFace = gofont.Collection()

var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
var black = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
var transparent = color.NRGBA{A: 0}

var primaryColor = color.NRGBA{R: 77, G: 208, B: 225, A: 255}
var secondaryColor = color.NRGBA{R: 255, G: 213, B: 79, A: 255}

var highEmphasisTextColor = color.NRGBA{R: 222, G: 222, B: 222, A: 222}
var mediumEmphasisTextColor = color.NRGBA{R: 153, G: 153, B: 153, A: 153}
var disabledTextColor = color.NRGBA{R: 255, G: 255, B: 255, A: 97}

var backgroundColor = color.NRGBA{R: 18, G: 18, B: 18, A: 255}

var labelDefaultFont = fontCollection[0].Font
var labelDefaultFontSize = unit.Sp(18)

var screenSurfaceColor = color.NRGBA{R: 37, G: 37, B: 38, A: 255}
var popupSurfaceColor = color.NRGBA{R: 50, G: 50, B: 51, A: 255}

var tabActiveColor = primaryColor
var tabInactiveColor = mediumEmphasisTextColor

var sliderHintColor = color.NRGBA{R: 200, G: 200, B: 200, A: 255}

var meterRMSColor = color.NRGBA{R: 153, G: 153, B: 153, A: 153}
var meterHoldColor = secondaryColor

var errorColor = color.NRGBA{R: 207, G: 102, B: 121, A: 255}
var warningColor = color.NRGBA{R: 251, G: 192, B: 45, A: 255}

func NewTheme() *material.Theme {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(fontCollection))
	th.Palette = material.Palette{
		Bg:         backgroundColor,
		Fg:         highEmphasisTextColor,
		ContrastBg: primaryColor,
		ContrastFg: black,
	}
	return th
}
