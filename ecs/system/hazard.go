package system

import (
	"github.com/milk9111/starfall/ecs"
	"github.com/milk9111/starfall/ecs/component"
)

func HazardCount(w *ecs.World) int {
	return len(w.Query(component.HazardComponent.Kind()))
}

// HazardSpawnRange returns the horizontal span on the far side of the
// playfield from playerX.
func HazardSpawnRange(playerX, width float64) (lo, hi float64) {
	mid := width / 2
	if playerX < mid {
		return mid, width
	}
	return 0, mid
}

// LaunchHazard gives a freshly built hazard its body and initial velocity.
func LaunchHazard(w *ecs.World, ps *PhysicsSystem, e ecs.Entity, vx, vy, bounce float64) {
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.Body == nil {
		body.Elasticity = bounce
	}
	ps.Sync(w)
	ps.SetVelocity(e, vx, vy)
	w.Events().Push(ecs.Event{Type: ecs.EventHazardSpawned, Entity: e, Value: HazardCount(w)})
}
