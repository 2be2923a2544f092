// Package ui draws the game-over dialogue and the on-screen touch buttons.
package ui

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// GameOverOverlay is a centered panel with a title and a restart button,
// drawn over the frozen scene.
type GameOverOverlay struct {
	width, height int

	ui        *ebitenui.UI
	build     func(onClick func()) *ebitenui.UI
	visible   bool
	onRestart func()
}

func NewGameOverOverlay(width, height int) *GameOverOverlay {
	o := &GameOverOverlay{width: width, height: height}
	o.build = o.newUI
	return o
}

// Show makes the overlay visible. onRestart runs once when the player asks
// to restart.
func (o *GameOverOverlay) Show(onRestart func()) {
	if o.ui == nil {
		o.ui = o.build(o.Restart)
	}
	o.onRestart = onRestart
	o.visible = true
}

func (o *GameOverOverlay) Hide() {
	o.visible = false
}

func (o *GameOverOverlay) Visible() bool {
	return o.visible
}

// Restart hides the overlay and fires the handler passed to Show. It does
// nothing while the overlay is hidden.
func (o *GameOverOverlay) Restart() {
	if !o.visible {
		return
	}
	fn := o.onRestart
	o.onRestart = nil
	o.Hide()
	if fn != nil {
		fn()
	}
}

func (o *GameOverOverlay) Update() {
	if o.visible && o.ui != nil {
		o.ui.Update()
	}
}

func (o *GameOverOverlay) Draw(screen *ebiten.Image) {
	if o.visible && o.ui != nil {
		o.ui.Draw(screen)
	}
}

func (o *GameOverOverlay) newUI(onClick func()) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{A: 200})
	btnIdle := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnHover := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	title := widget.NewText(
		widget.TextOpts.Text("Game Over", &face, color.NRGBA{R: 0xff, G: 0x40, B: 0x40, A: 0xff}),
		widget.TextOpts.WidgetOpts(center),
	)

	restart := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnIdle, Hover: btnHover, Pressed: btnIdle}),
		widget.ButtonOpts.Text("Restart", &face, &widget.ButtonTextColor{Idle: white}),
		widget.ButtonOpts.WidgetOpts(center),
		widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(16),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 24, Bottom: 24, Left: 40, Right: 40}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(o.width/3, o.height/4),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(restart)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}
