package system

import (
	"github.com/milk9111/starfall/ecs"
	"github.com/milk9111/starfall/ecs/component"
)

type AnimationSystem struct {
	tps int
}

// NewAnimationSystem paces clips for a loop running tps updates per second.
func NewAnimationSystem(tps int) *AnimationSystem {
	if tps <= 0 {
		tps = 60
	}
	return &AnimationSystem{tps: tps}
}

// PlayAnimation switches anim to the named clip. Playing the current clip
// again keeps its frame position. It reports false for unknown clips.
func PlayAnimation(anim *component.Animation, name string) bool {
	if anim == nil {
		return false
	}
	if _, ok := anim.Defs[name]; !ok {
		return false
	}
	if anim.Current == name && anim.Playing {
		return true
	}
	anim.Current = name
	anim.Frame = 0
	anim.FrameTimer = 0
	anim.Playing = true
	return true
}

func (a *AnimationSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.AnimationComponent.Kind(), component.SpriteComponent.Kind(), func(e ecs.Entity, anim *component.Animation, sprite *component.Sprite) {
		def, ok := anim.Defs[anim.Current]
		if !ok || def.FrameCount <= 0 {
			return
		}

		if anim.Playing {
			ticksPerFrame := 1
			if def.FPS > 0 {
				ticksPerFrame = int(float64(a.tps) / def.FPS)
			}
			if ticksPerFrame < 1 {
				ticksPerFrame = 1
			}

			anim.FrameTimer++
			if anim.FrameTimer >= ticksPerFrame {
				anim.FrameTimer = 0
				anim.Frame++
				if anim.Frame >= def.FrameCount {
					if def.Loop {
						anim.Frame = 0
					} else {
						anim.Frame = def.FrameCount - 1
						anim.Playing = false
					}
				}
			}
		}

		if anim.Sheet != "" {
			sprite.Texture = anim.Sheet
		}
		sprite.Frame = def.ColStart + anim.Frame
	})
}
