package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/starfall/input"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

var touchLabelFace = text.NewGoXFace(basicfont.Face7x13)

// buttonFill is brighter while a button is held.
func buttonFill(pressed bool) color.Color {
	if pressed {
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x90}
	}
	return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x40}
}

// DrawTouchControls draws each button as a translucent square with its label
// centered inside.
func DrawTouchControls(screen *ebiten.Image, controls *input.TouchControls) {
	if screen == nil || controls == nil {
		return
	}
	for _, b := range controls.Buttons() {
		r := b.Bounds
		vector.FillRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), buttonFill(b.Pressed()), false)
		vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 2, colornames.Lightgrey, false)

		w, h := text.Measure(b.Label, touchLabelFace, 0)
		op := &text.DrawOptions{}
		op.GeoM.Translate(r.X+(r.W-w)/2, r.Y+(r.H-h)/2)
		op.ColorScale.ScaleWithColor(colornames.White)
		text.Draw(screen, b.Label, touchLabelFace, op)
	}
}
