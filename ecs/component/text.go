package component

import "image/color"

// Text is a label drawn at the entity Transform (top-left anchored).
type Text struct {
	Value string
	Size  float64
	Color color.Color
}

var TextComponent = NewComponent[Text]()
