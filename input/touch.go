package input

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// PointerEvent is a transition reported by a TouchButton.
type PointerEvent int

const (
	PointerDown PointerEvent = iota
	PointerUp
	PointerOut
)

func (e PointerEvent) String() string {
	switch e {
	case PointerDown:
		return "pointerdown"
	case PointerUp:
		return "pointerup"
	case PointerOut:
		return "pointerout"
	}
	return "unknown"
}

// Pointer is an active touch or pressed mouse button in screen space.
type Pointer struct {
	ID int
	X  float64
	Y  float64
}

// Rect is an axis-aligned screen rectangle.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

type handler struct {
	id int
	fn func()
}

// TouchButton is an on-screen control that tracks which pointers press it.
type TouchButton struct {
	Label  string
	Bounds Rect

	handlers map[PointerEvent][]handler
	nextID   int
	pressed  map[int]bool
}

func NewTouchButton(label string, bounds Rect) *TouchButton {
	return &TouchButton{
		Label:    label,
		Bounds:   bounds,
		handlers: make(map[PointerEvent][]handler),
		pressed:  make(map[int]bool),
	}
}

// On subscribes fn to event and returns a function that removes it.
func (b *TouchButton) On(event PointerEvent, fn func()) (dispose func()) {
	if fn == nil {
		return func() {}
	}
	b.nextID++
	id := b.nextID
	b.handlers[event] = append(b.handlers[event], handler{id: id, fn: fn})
	return func() {
		hs := b.handlers[event]
		for i, h := range hs {
			if h.id == id {
				b.handlers[event] = append(hs[:i:i], hs[i+1:]...)
				return
			}
		}
	}
}

// Pressed reports whether any pointer currently holds the button.
func (b *TouchButton) Pressed() bool {
	return len(b.pressed) > 0
}

func (b *TouchButton) emit(event PointerEvent) {
	hs := append([]handler(nil), b.handlers[event]...)
	for _, h := range hs {
		h.fn()
	}
}

// update diffs the pointers against the pressed set. A pointer that appears
// inside an idle button presses it. Up and out fire only when the last
// pressing pointer lifts or slides off.
func (b *TouchButton) update(pointers map[int]Pointer, known map[int]bool) {
	ids := make([]int, 0, len(b.pressed))
	for id := range b.pressed {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		p, ok := pointers[id]
		switch {
		case !ok:
			delete(b.pressed, id)
			if len(b.pressed) == 0 {
				b.emit(PointerUp)
			}
		case !b.Bounds.Contains(p.X, p.Y):
			delete(b.pressed, id)
			if len(b.pressed) == 0 {
				b.emit(PointerOut)
			}
		}
	}

	for _, p := range sortedPointers(pointers) {
		if known[p.ID] || b.pressed[p.ID] {
			continue
		}
		if b.Bounds.Contains(p.X, p.Y) {
			first := len(b.pressed) == 0
			b.pressed[p.ID] = true
			if first {
				b.emit(PointerDown)
			}
		}
	}
}

func sortedPointers(pointers map[int]Pointer) []Pointer {
	out := make([]Pointer, 0, len(pointers))
	for _, p := range pointers {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// TouchControls owns the left, right and jump buttons.
type TouchControls struct {
	Left  *TouchButton
	Right *TouchButton
	Up    *TouchButton

	known map[int]bool
}

const (
	touchButtonSize   = 80.0
	touchButtonMargin = 16.0
)

// NewTouchControls lays the buttons out along the bottom of a width x height
// screen: left and right on the left side, jump on the right.
func NewTouchControls(width, height float64) *TouchControls {
	y := height - touchButtonSize - touchButtonMargin
	return &TouchControls{
		Left:  NewTouchButton("<", Rect{X: touchButtonMargin, Y: y, W: touchButtonSize, H: touchButtonSize}),
		Right: NewTouchButton(">", Rect{X: 2*touchButtonMargin + touchButtonSize, Y: y, W: touchButtonSize, H: touchButtonSize}),
		Up:    NewTouchButton("^", Rect{X: width - touchButtonSize - touchButtonMargin, Y: y, W: touchButtonSize, H: touchButtonSize}),
		known: make(map[int]bool),
	}
}

func (c *TouchControls) Buttons() []*TouchButton {
	return []*TouchButton{c.Left, c.Right, c.Up}
}

// Update feeds the pointers active this frame to every button. Only pointers
// that begin inside a button can press it.
func (c *TouchControls) Update(pointers []Pointer) {
	current := make(map[int]Pointer, len(pointers))
	for _, p := range pointers {
		current[p.ID] = p
	}
	for _, b := range c.Buttons() {
		b.update(current, c.known)
	}

	next := make(map[int]bool, len(current))
	for id := range current {
		next[id] = true
	}
	c.known = next
}

// BindIntent wires the buttons to the flags of intent. Calling the returned
// function removes every handler it installed.
func (c *TouchControls) BindIntent(intent *TouchIntent) (dispose func()) {
	var disposers []func()
	bind := func(b *TouchButton, flag *bool) {
		disposers = append(disposers,
			b.On(PointerDown, func() { *flag = true }),
			b.On(PointerUp, func() { *flag = false }),
			b.On(PointerOut, func() { *flag = false }),
		)
	}
	bind(c.Left, &intent.Left)
	bind(c.Right, &intent.Right)
	bind(c.Up, &intent.Up)
	return func() {
		for _, d := range disposers {
			d()
		}
	}
}

const mousePointerID = -1

// EbitenPointers returns the active touches plus the left mouse button.
func EbitenPointers() []Pointer {
	var out []Pointer
	for _, id := range ebiten.AppendTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		out = append(out, Pointer{ID: int(id), X: float64(x), Y: float64(y)})
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		out = append(out, Pointer{ID: mousePointerID, X: float64(x), Y: float64(y)})
	}
	return out
}
