package system

import (
	"fmt"

	"github.com/milk9111/starfall/ecs"
	"github.com/milk9111/starfall/ecs/component"
)

// SetScoreLabel renders score into every score label using format.
func SetScoreLabel(w *ecs.World, format string, score int) {
	next := fmt.Sprintf(format, score)
	for _, e := range w.Query(component.ScoreLabelTagComponent.Kind(), component.TextComponent.Kind()) {
		if label, ok := ecs.Get(w, e, component.TextComponent.Kind()); ok && label.Value != next {
			label.Value = next
		}
	}
}
