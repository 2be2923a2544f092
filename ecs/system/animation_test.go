package system

import (
	"testing"

	"github.com/milk9111/starfall/ecs"
	"github.com/milk9111/starfall/ecs/component"
)

func dudeAnimation() *component.Animation {
	return &component.Animation{
		Sheet: "dude",
		Defs: map[string]component.AnimationDef{
			"left":  {Name: "left", ColStart: 0, FrameCount: 4, FPS: 10, Loop: true},
			"turn":  {Name: "turn", ColStart: 4, FrameCount: 1, FPS: 20},
			"right": {Name: "right", ColStart: 5, FrameCount: 4, FPS: 10, Loop: true},
		},
	}
}

func TestPlayAnimation(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		frame     int
		play      string
		wantOK    bool
		wantClip  string
		wantFrame int
	}{
		{name: "switch_resets_frame", start: "left", frame: 2, play: "right", wantOK: true, wantClip: "right", wantFrame: 0},
		{name: "same_clip_keeps_frame", start: "left", frame: 2, play: "left", wantOK: true, wantClip: "left", wantFrame: 2},
		{name: "unknown_clip", start: "left", frame: 1, play: "jump", wantOK: false, wantClip: "left", wantFrame: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			anim := dudeAnimation()
			PlayAnimation(anim, tc.start)
			anim.Frame = tc.frame

			if ok := PlayAnimation(anim, tc.play); ok != tc.wantOK {
				t.Fatalf("PlayAnimation(%q) = %v, want %v", tc.play, ok, tc.wantOK)
			}
			if anim.Current != tc.wantClip || anim.Frame != tc.wantFrame {
				t.Fatalf("got clip %q frame %d, want %q frame %d", anim.Current, anim.Frame, tc.wantClip, tc.wantFrame)
			}
		})
	}
}

func TestAnimationSystemAdvancesSpriteFrame(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	anim := dudeAnimation()
	PlayAnimation(anim, "right")
	if err := ecs.Add(w, e, component.AnimationComponent.Kind(), anim); err != nil {
		t.Fatal(err)
	}
	sprite := &component.Sprite{}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), sprite); err != nil {
		t.Fatal(err)
	}

	sys := NewAnimationSystem(60)
	sys.Update(w)
	if sprite.Texture != "dude" || sprite.Frame != 5 {
		t.Fatalf("expected dude frame 5, got %q %d", sprite.Texture, sprite.Frame)
	}

	// 10 fps at 60 tps advances every 6 ticks.
	for i := 0; i < 5; i++ {
		sys.Update(w)
	}
	if sprite.Frame != 6 {
		t.Fatalf("expected frame 6 after six ticks, got %d", sprite.Frame)
	}

	for i := 0; i < 18; i++ {
		sys.Update(w)
	}
	if sprite.Frame != 5 {
		t.Fatalf("expected looping back to frame 5, got %d", sprite.Frame)
	}
}

func TestAnimationSystemStopsNonLoopingClip(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	anim := dudeAnimation()
	PlayAnimation(anim, "turn")
	_ = ecs.Add(w, e, component.AnimationComponent.Kind(), anim)
	sprite := &component.Sprite{}
	_ = ecs.Add(w, e, component.SpriteComponent.Kind(), sprite)

	sys := NewAnimationSystem(60)
	for i := 0; i < 10; i++ {
		sys.Update(w)
	}
	if anim.Playing {
		t.Fatalf("expected single-frame clip to stop")
	}
	if sprite.Frame != 4 {
		t.Fatalf("expected turn frame 4, got %d", sprite.Frame)
	}
}

func TestAnimationSystemFollowsTPS(t *testing.T) {
	tests := []struct {
		name  string
		tps   int
		ticks int
	}{
		{name: "60 tps", tps: 60, ticks: 6},
		{name: "30 tps", tps: 30, ticks: 3},
		{name: "120 tps", tps: 120, ticks: 12},
		{name: "unset", tps: 0, ticks: 6},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e := ecs.CreateEntity(w)
			anim := dudeAnimation()
			PlayAnimation(anim, "right")
			_ = ecs.Add(w, e, component.AnimationComponent.Kind(), anim)
			sprite := &component.Sprite{}
			_ = ecs.Add(w, e, component.SpriteComponent.Kind(), sprite)

			sys := NewAnimationSystem(tc.tps)
			for i := 0; i < tc.ticks-1; i++ {
				sys.Update(w)
			}
			if sprite.Frame != 5 {
				t.Fatalf("expected frame 5 before %d ticks, got %d", tc.ticks, sprite.Frame)
			}
			sys.Update(w)
			if sprite.Frame != 6 {
				t.Fatalf("expected frame 6 after %d ticks, got %d", tc.ticks, sprite.Frame)
			}
		})
	}
}
