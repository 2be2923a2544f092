package system

import (
	"github.com/milk9111/starfall/ecs"
	"github.com/milk9111/starfall/ecs/component"
	"github.com/milk9111/starfall/input"
)

const (
	animLeft  = "left"
	animRight = "right"
	animTurn  = "turn"
)

// PlayerControllerSystem turns the current input intent into player velocity
// and animation. It must run before the physics step.
type PlayerControllerSystem struct {
	input   input.Source
	physics *PhysicsSystem
}

func NewPlayerControllerSystem(src input.Source, physics *PhysicsSystem) *PlayerControllerSystem {
	return &PlayerControllerSystem{input: src, physics: physics}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil || p.physics == nil {
		return
	}

	var intent input.Intent
	if p.input != nil {
		intent = p.input.Intent()
	}

	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, player *component.Player, _ *component.PhysicsBody) {
		if !p.physics.Enabled(e) {
			return
		}

		_, vy := p.physics.Velocity(e)
		vx, clip := 0.0, animTurn
		switch {
		case intent.Left:
			vx, clip = -player.MoveSpeed, animLeft
		case intent.Right:
			vx, clip = player.MoveSpeed, animRight
		}

		if intent.Jump {
			if pc, ok := ecs.Get(w, e, component.PlayerCollisionComponent.Kind()); ok && pc.Grounded {
				vy = -player.JumpSpeed
			}
		}

		p.physics.SetVelocity(e, vx, vy)
		if anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok {
			PlayAnimation(anim, clip)
		}
	})
}
