package system

import (
	"testing"

	"github.com/milk9111/starfall/ecs"
	"github.com/milk9111/starfall/ecs/component"
)

func addBody(t *testing.T, w *ecs.World, x, y float64, body component.PhysicsBody) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}); err != nil {
		t.Fatalf("add transform: %v", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &body); err != nil {
		t.Fatalf("add physics body: %v", err)
	}
	return e
}

func addPlayer(t *testing.T, w *ecs.World, x, y float64) ecs.Entity {
	t.Helper()
	e := addBody(t, w, x, y, component.PhysicsBody{Group: component.GroupPlayer, Width: 32, Height: 48})
	if err := ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		t.Fatalf("add player tag: %v", err)
	}
	if err := ecs.Add(w, e, component.PlayerCollisionComponent.Kind(), &component.PlayerCollision{}); err != nil {
		t.Fatalf("add player collision: %v", err)
	}
	return e
}

func addGround(t *testing.T, w *ecs.World) ecs.Entity {
	t.Helper()
	return addBody(t, w, 400, 568, component.PhysicsBody{Group: component.GroupPlatform, Width: 800, Height: 64, Static: true})
}

func addBounds(t *testing.T, w *ecs.World, width, height float64) {
	t.Helper()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.LevelBoundsComponent.Kind(), &component.LevelBounds{Width: width, Height: height}); err != nil {
		t.Fatalf("add bounds: %v", err)
	}
}

func step(w *ecs.World, ps *PhysicsSystem, n int) {
	for i := 0; i < n; i++ {
		ps.Update(w)
	}
}

func transformOf(t *testing.T, w *ecs.World, e ecs.Entity) *component.Transform {
	t.Helper()
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		t.Fatalf("missing transform on %v", e)
	}
	return tr
}

func TestPhysicsPlayerLandsOnPlatform(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(300, 60, 10)
	addGround(t, w)
	player := addPlayer(t, w, 100, 450)
	ps.Collider(component.GroupPlayer, component.GroupPlatform, nil)

	step(w, ps, 180)

	tr := transformOf(t, w, player)
	// Ground top is 536, player half height is 24.
	if tr.Y < 505 || tr.Y > 515 {
		t.Fatalf("expected player resting near y=512, got %.2f", tr.Y)
	}
	pc, _ := ecs.Get(w, player, component.PlayerCollisionComponent.Kind())
	if !pc.Grounded {
		t.Fatalf("expected player to be grounded")
	}
}

func TestPhysicsUnregisteredPairsPassThrough(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(300, 60, 10)
	addGround(t, w)
	player := addPlayer(t, w, 100, 450)
	ps.Collider(component.GroupPlayer, component.GroupPlatform, nil)
	ps.Ignore(component.GroupPlayer, component.GroupPlatform)

	step(w, ps, 120)

	if tr := transformOf(t, w, player); tr.Y < 568 {
		t.Fatalf("expected player to fall through ignored platform, got y=%.2f", tr.Y)
	}
}

func TestPhysicsOverlapReportsWithoutBlocking(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(0, 60, 10)
	player := addPlayer(t, w, 100, 100)
	pickup := addBody(t, w, 110, 100, component.PhysicsBody{Group: component.GroupPickup, Width: 24, Height: 22, NoGravity: true})

	var calls []ecs.Entity
	ps.Overlap(component.GroupPlayer, component.GroupPickup, func(a, b ecs.Entity) {
		calls = append(calls, a, b)
	})

	step(w, ps, 1)

	if len(calls) != 2 || calls[0] != player || calls[1] != pickup {
		t.Fatalf("expected one overlap (player, pickup), got %v", calls)
	}
	if tr := transformOf(t, w, pickup); tr.X != 110 || tr.Y != 100 {
		t.Fatalf("overlap must not push bodies apart, pickup at (%.2f, %.2f)", tr.X, tr.Y)
	}
}

func TestPhysicsContactsDispatchOncePerStep(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(0, 60, 10)
	addPlayer(t, w, 100, 100)
	addBody(t, w, 106, 104, component.PhysicsBody{Group: component.GroupPickup, Width: 24, Height: 22, NoGravity: true})

	calls := 0
	ps.Overlap(component.GroupPlayer, component.GroupPickup, func(a, b ecs.Entity) { calls++ })

	step(w, ps, 3)

	if calls != 3 {
		t.Fatalf("expected one callback per step, got %d", calls)
	}
}

func TestPhysicsDisabledBodiesDoNotReport(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(0, 60, 10)
	addPlayer(t, w, 100, 100)
	pickup := addBody(t, w, 106, 104, component.PhysicsBody{Group: component.GroupPickup, Width: 24, Height: 22, NoGravity: true})

	calls := 0
	ps.Overlap(component.GroupPlayer, component.GroupPickup, func(a, b ecs.Entity) {
		calls++
		ps.Disable(w, b)
	})

	step(w, ps, 3)
	if calls != 1 {
		t.Fatalf("expected a single callback before disabling, got %d", calls)
	}
	if ps.Enabled(pickup) {
		t.Fatalf("expected pickup body disabled")
	}

	ps.Enable(w, pickup, 300, 0)
	if !ps.Enabled(pickup) {
		t.Fatalf("expected pickup body enabled")
	}
	if tr := transformOf(t, w, pickup); tr.X != 300 || tr.Y != 0 {
		t.Fatalf("expected pickup moved to (300, 0), got (%.2f, %.2f)", tr.X, tr.Y)
	}
}

func TestPhysicsPauseFreezesBodies(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(300, 60, 10)
	player := addPlayer(t, w, 100, 100)

	step(w, ps, 5)
	before := *transformOf(t, w, player)

	ps.Pause()
	if !ps.Paused() {
		t.Fatalf("expected paused")
	}
	step(w, ps, 30)
	after := *transformOf(t, w, player)
	if before != after {
		t.Fatalf("expected no movement while paused: %+v -> %+v", before, after)
	}

	ps.Resume()
	step(w, ps, 5)
	if transformOf(t, w, player).Y <= after.Y {
		t.Fatalf("expected player to keep falling after resume")
	}
}

func TestPhysicsWorldBounds(t *testing.T) {
	tests := []struct {
		name    string
		collide bool
		inside  bool
	}{
		{name: "bounded", collide: true, inside: true},
		{name: "unbounded", collide: false, inside: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			ps := NewPhysicsSystem(0, 60, 10)
			addBounds(t, w, 800, 600)
			hazard := addBody(t, w, 50, 300, component.PhysicsBody{
				Group:              component.GroupHazard,
				Width:              14,
				Height:             14,
				Elasticity:         1,
				NoGravity:          true,
				CollideWorldBounds: tc.collide,
			})
			ps.Sync(w)
			ps.SetVelocity(hazard, -200, 0)

			step(w, ps, 60)

			x := transformOf(t, w, hazard).X
			if inside := x >= 0; inside != tc.inside {
				t.Fatalf("expected inside=%v, got x=%.2f", tc.inside, x)
			}
			if tc.collide {
				if vx, _ := ps.Velocity(hazard); vx <= 0 {
					t.Fatalf("expected hazard to bounce off the left wall, vx=%.2f", vx)
				}
			}
		})
	}
}

func TestPhysicsDestroyedEntityBodyRemoved(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(300, 60, 10)
	player := addPlayer(t, w, 100, 100)
	ps.Sync(w)
	if !ps.Enabled(player) {
		t.Fatalf("expected body after sync")
	}

	ecs.DestroyEntity(w, player)
	ps.Sync(w)
	if ps.Enabled(player) {
		t.Fatalf("expected body removed after destroy")
	}
}
