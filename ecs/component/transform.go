package component

// Transform is the entity position in playfield pixels. Physics bodies and
// centered sprites treat (X, Y) as their center.
type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

// Scale returns the draw scale, treating an unset axis as 1.
func (t *Transform) Scale() (float64, float64) {
	sx, sy := t.ScaleX, t.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return sx, sy
}

var TransformComponent = NewComponent[Transform]()
