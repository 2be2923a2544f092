package system

import (
	"github.com/milk9111/starfall/ecs"
	"github.com/milk9111/starfall/ecs/component"
)

// CollectPickup takes an active pickup out of play: its body leaves the
// simulation and its sprite is hidden. It reports false when e was not an
// active pickup.
func CollectPickup(w *ecs.World, ps *PhysicsSystem, e ecs.Entity) bool {
	pickup, ok := ecs.Get(w, e, component.PickupComponent.Kind())
	if !ok || !pickup.Active {
		return false
	}

	pickup.Active = false
	ps.Disable(w, e)
	if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
		sprite.Hidden = true
	}
	w.Events().Push(ecs.Event{Type: ecs.EventPickupCollected, Entity: e})
	return true
}

func ActivePickups(w *ecs.World) int {
	n := 0
	ecs.ForEach(w, component.PickupComponent.Kind(), func(_ ecs.Entity, pickup *component.Pickup) {
		if pickup.Active {
			n++
		}
	})
	return n
}

// RespawnPickups puts every pickup back at its home column at height y and
// returns how many were reactivated.
func RespawnPickups(w *ecs.World, ps *PhysicsSystem, y float64) int {
	n := 0
	ecs.ForEach(w, component.PickupComponent.Kind(), func(e ecs.Entity, pickup *component.Pickup) {
		ps.Enable(w, e, pickup.HomeX, y)
		if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
			sprite.Hidden = false
		}
		if !pickup.Active {
			n++
		}
		pickup.Active = true
	})
	w.Events().Push(ecs.Event{Type: ecs.EventPickupsRespawned, Value: n})
	return n
}
