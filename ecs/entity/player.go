package entity

import (
	"github.com/milk9111/starfall/ecs"
)

func NewPlayerAt(w *ecs.World, prefab string, x, y float64, opts ...BuildOption) (ecs.Entity, error) {
	return BuildEntity(w, prefab, append([]BuildOption{At(x, y)}, opts...)...)
}
