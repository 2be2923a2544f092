package system

import (
	"testing"

	"github.com/milk9111/starfall/ecs"
	"github.com/milk9111/starfall/ecs/component"
	"github.com/milk9111/starfall/input"
)

type fixedIntent struct {
	intent input.Intent
}

func (f *fixedIntent) Intent() input.Intent { return f.intent }

func addControlledPlayer(t *testing.T, w *ecs.World, x, y float64) ecs.Entity {
	t.Helper()
	e := addPlayer(t, w, x, y)
	if err := ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{MoveSpeed: 160, JumpSpeed: 500}); err != nil {
		t.Fatalf("add player: %v", err)
	}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{Texture: "dude", Frame: 4}); err != nil {
		t.Fatalf("add sprite: %v", err)
	}
	if err := ecs.Add(w, e, component.AnimationComponent.Kind(), &component.Animation{
		Sheet:   "dude",
		Current: "turn",
		Playing: true,
		Defs: map[string]component.AnimationDef{
			"left":  {Name: "left", ColStart: 0, FrameCount: 4, FPS: 10, Loop: true},
			"turn":  {Name: "turn", ColStart: 4, FrameCount: 1, FPS: 20},
			"right": {Name: "right", ColStart: 5, FrameCount: 4, FPS: 10, Loop: true},
		},
	}); err != nil {
		t.Fatalf("add animation: %v", err)
	}
	return e
}

func TestPlayerControllerIntent(t *testing.T) {
	tests := []struct {
		name   string
		intent input.Intent
		wantVX float64
		clip   string
	}{
		{name: "idle", intent: input.Intent{}, wantVX: 0, clip: "turn"},
		{name: "left", intent: input.Intent{Left: true}, wantVX: -160, clip: "left"},
		{name: "right", intent: input.Intent{Right: true}, wantVX: 160, clip: "right"},
		{name: "left wins over right", intent: input.Intent{Left: true, Right: true}, wantVX: -160, clip: "left"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			ps := NewPhysicsSystem(0, 60, 10)
			player := addControlledPlayer(t, w, 100, 100)
			ps.Sync(w)

			ctrl := NewPlayerControllerSystem(&fixedIntent{intent: tc.intent}, ps)
			ctrl.Update(w)

			if vx, _ := ps.Velocity(player); vx != tc.wantVX {
				t.Fatalf("expected vx %v, got %v", tc.wantVX, vx)
			}
			anim, _ := ecs.Get(w, player, component.AnimationComponent.Kind())
			if anim.Current != tc.clip {
				t.Fatalf("expected clip %q, got %q", tc.clip, anim.Current)
			}
		})
	}
}

func TestPlayerControllerJumpOnlyWhenGrounded(t *testing.T) {
	tests := []struct {
		name     string
		grounded bool
		wantVY   float64
	}{
		{name: "grounded", grounded: true, wantVY: -500},
		{name: "airborne", grounded: false, wantVY: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			ps := NewPhysicsSystem(0, 60, 10)
			player := addControlledPlayer(t, w, 100, 100)
			ps.Sync(w)
			pc, _ := ecs.Get(w, player, component.PlayerCollisionComponent.Kind())
			pc.Grounded = tc.grounded

			NewPlayerControllerSystem(&fixedIntent{intent: input.Intent{Jump: true}}, ps).Update(w)

			if _, vy := ps.Velocity(player); vy != tc.wantVY {
				t.Fatalf("expected vy %v, got %v", tc.wantVY, vy)
			}
		})
	}
}

func TestPlayerControllerJumpsFromPlatform(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(300, 60, 10)
	addGround(t, w)
	player := addControlledPlayer(t, w, 100, 450)
	ps.Collider(component.GroupPlayer, component.GroupPlatform, nil)

	src := &fixedIntent{}
	ctrl := NewPlayerControllerSystem(src, ps)
	sched := ecs.NewScheduler(ctrl, ps)
	for i := 0; i < 180; i++ {
		sched.Update(w)
	}
	rest := transformOf(t, w, player).Y

	src.intent = input.Intent{Jump: true}
	sched.Update(w)
	src.intent = input.Intent{}
	for i := 0; i < 10; i++ {
		sched.Update(w)
	}

	if y := transformOf(t, w, player).Y; y >= rest-20 {
		t.Fatalf("expected player to rise after jumping, rest %.2f now %.2f", rest, y)
	}
}

func TestPlayerControllerWithoutInputStopsPlayer(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(0, 60, 10)
	player := addControlledPlayer(t, w, 100, 100)
	ps.Sync(w)
	ps.SetVelocity(player, 80, 0)

	NewPlayerControllerSystem(nil, ps).Update(w)

	if vx, _ := ps.Velocity(player); vx != 0 {
		t.Fatalf("expected player to stop, got vx %v", vx)
	}
}
