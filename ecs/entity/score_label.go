package entity

import (
	"fmt"

	"github.com/milk9111/starfall/ecs"
	"github.com/milk9111/starfall/ecs/component"
)

// NewScoreLabel builds the score text at (x, y) showing text.
func NewScoreLabel(w *ecs.World, prefab string, x, y float64, text string, opts ...BuildOption) (ecs.Entity, error) {
	e, err := BuildEntity(w, prefab, append([]BuildOption{At(x, y)}, opts...)...)
	if err != nil {
		return 0, err
	}
	label, ok := ecs.Get(w, e, component.TextComponent.Kind())
	if !ok {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("score label: prefab %q has no text component", prefab)
	}
	label.Value = text
	if !ecs.Has(w, e, component.ScoreLabelTagComponent.Kind()) {
		if err := ecs.Add(w, e, component.ScoreLabelTagComponent.Kind(), &component.ScoreLabelTag{}); err != nil {
			return 0, fmt.Errorf("score label: add tag: %w", err)
		}
	}
	return e, nil
}
