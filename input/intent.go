// Package input turns keyboard and touch state into movement intents.
package input

import "github.com/hajimehoshi/ebiten/v2"

// Intent is the per-frame movement request read by the scene.
type Intent struct {
	Left  bool
	Right bool
	Jump  bool
}

// Source yields the current intent.
type Source interface {
	Intent() Intent
}

// Keyboard reports the held state of the arrow keys.
type Keyboard interface {
	Left() bool
	Right() bool
	Up() bool
}

// EbitenKeyboard polls the arrow keys through Ebitengine.
type EbitenKeyboard struct{}

func (EbitenKeyboard) Left() bool  { return ebiten.IsKeyPressed(ebiten.KeyArrowLeft) }
func (EbitenKeyboard) Right() bool { return ebiten.IsKeyPressed(ebiten.KeyArrowRight) }
func (EbitenKeyboard) Up() bool    { return ebiten.IsKeyPressed(ebiten.KeyArrowUp) }

// TouchIntent holds the flags written by the on-screen buttons.
type TouchIntent struct {
	Left  bool
	Right bool
	Up    bool
}

// Reset clears every flag.
func (t *TouchIntent) Reset() {
	*t = TouchIntent{}
}

// Adapter ORs keyboard state with touch flags. A nil keyboard leaves the
// adapter touch-only.
type Adapter struct {
	keyboard Keyboard
	touch    *TouchIntent
}

func NewAdapter(keyboard Keyboard, touch *TouchIntent) *Adapter {
	if touch == nil {
		touch = &TouchIntent{}
	}
	return &Adapter{keyboard: keyboard, touch: touch}
}

// Touch returns the flags the touch controls write to.
func (a *Adapter) Touch() *TouchIntent {
	return a.touch
}

// Intent is level-triggered and evaluated on every call.
func (a *Adapter) Intent() Intent {
	var in Intent
	if a.keyboard != nil {
		in.Left = a.keyboard.Left()
		in.Right = a.keyboard.Right()
		in.Jump = a.keyboard.Up()
	}
	if a.touch != nil {
		in.Left = in.Left || a.touch.Left
		in.Right = in.Right || a.touch.Right
		in.Jump = in.Jump || a.touch.Up
	}
	return in
}
