package entity

import (
	"fmt"

	"github.com/milk9111/starfall/ecs"
	"github.com/milk9111/starfall/ecs/component"
)

// NewPickupAt builds a pickup whose home column is x.
func NewPickupAt(w *ecs.World, prefab string, x, y float64, opts ...BuildOption) (ecs.Entity, error) {
	e, err := BuildEntity(w, prefab, append([]BuildOption{At(x, y)}, opts...)...)
	if err != nil {
		return 0, err
	}
	if !ecs.Has(w, e, component.PickupComponent.Kind()) {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("pickup: prefab %q has no pickup component", prefab)
	}
	return e, nil
}
