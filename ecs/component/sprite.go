package component

import "image/color"

// Sprite references a texture in the render registry. Frame selects a cell of
// a sprite sheet; -1 draws the whole texture.
type Sprite struct {
	Texture  string
	Frame    int
	Centered bool
	Tint     color.Color
	Hidden   bool
}

var SpriteComponent = NewComponent[Sprite]()
