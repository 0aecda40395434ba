package component

import "image/color"

// OutlineStyle selects the stroke used when drawing an entity's body.
type OutlineStyle struct {
	Color color.Color
	Width float32
}

var OutlineStyleComponent = NewComponent[OutlineStyle]()
