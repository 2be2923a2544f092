package scene

import (
	"github.com/milk9111/starfall/ecs"
	"github.com/milk9111/starfall/ecs/component"
	"github.com/milk9111/starfall/ecs/entity"
	"github.com/milk9111/starfall/ecs/system"
)

// active reports whether s is the session currently being played.
func (c *Controller) active(s *session) bool {
	st, ok := c.state.(playing)
	return ok && st.session == s
}

func (c *Controller) collect(s *session, player, pickup ecs.Entity) {
	if !c.active(s) {
		return
	}
	if !system.CollectPickup(s.world, s.physics, pickup) {
		return
	}

	s.score += c.spec.Pickups.Score
	system.SetScoreLabel(s.world, c.spec.ScoreLabel.Format, s.score)

	if system.ActivePickups(s.world) > 0 {
		return
	}
	system.RespawnPickups(s.world, s.physics, c.spec.Pickups.RespawnY)

	x := 0.0
	if tr, ok := ecs.Get(s.world, player, component.TransformComponent.Kind()); ok {
		x = tr.X
	}
	c.spawnHazard(s, x)
}

func (c *Controller) spawnHazard(s *session, playerX float64) {
	policy := c.hazards
	if policy.MaxActive > 0 && system.HazardCount(s.world) >= policy.MaxActive {
		c.logger.Debug("hazard cap reached", "max_active", policy.MaxActive)
		return
	}

	lo, hi := system.HazardSpawnRange(playerX, c.opts.Width)
	x := lo + c.rng.Float64()*(hi-lo)
	e, err := entity.NewHazardAt(s.world, c.spec.Prefabs.Hazard, x, policy.SpawnY, entity.FromCatalog(c.catalog))
	if err != nil {
		c.logger.Error("spawn hazard", "err", err)
		return
	}
	vx := policy.VelocityXMin + c.rng.Float64()*(policy.VelocityXMax-policy.VelocityXMin)
	system.LaunchHazard(s.world, s.physics, e, vx, policy.VelocityY, policy.Bounce)
}

func (c *Controller) hit(s *session, player, _ ecs.Entity) {
	if !c.active(s) {
		return
	}

	s.physics.Pause()
	if sprite, ok := ecs.Get(s.world, player, component.SpriteComponent.Kind()); ok && c.spec.GameOver.Tint != nil {
		sprite.Tint = c.spec.GameOver.Tint.Color
	}
	if anim, ok := ecs.Get(s.world, player, component.AnimationComponent.Kind()); ok && c.spec.GameOver.Idle != "" {
		system.PlayAnimation(anim, c.spec.GameOver.Idle)
	}
	c.state = gameOver{s}
	s.world.Events().Push(ecs.Event{Type: ecs.EventGameOver, Entity: player, Value: s.score})

	c.showOverlay()
}
