package entity

import (
	"fmt"

	"github.com/milk9111/starfall/ecs"
	"github.com/milk9111/starfall/ecs/component"
)

func NewHazardAt(w *ecs.World, prefab string, x, y float64, opts ...BuildOption) (ecs.Entity, error) {
	e, err := BuildEntity(w, prefab, append([]BuildOption{At(x, y)}, opts...)...)
	if err != nil {
		return 0, err
	}
	if !ecs.Has(w, e, component.HazardComponent.Kind()) {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("hazard: prefab %q has no hazard component", prefab)
	}
	return e, nil
}
