package entity

import (
	"fmt"

	"github.com/milk9111/starfall/ecs"
	"github.com/milk9111/starfall/ecs/component"
	"github.com/milk9111/starfall/prefabs"
)

// LoadLevelToWorld creates the playfield bounds, the background and the static
// platforms of a scene layout. opts apply to every prefab built.
func LoadLevelToWorld(w *ecs.World, spec prefabs.SceneSpec, width, height float64, opts ...BuildOption) ([]ecs.Entity, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("level: invalid size %vx%v", width, height)
	}

	bounds := ecs.CreateEntity(w)
	if err := ecs.Add(w, bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Width:  width,
		Height: height,
	}); err != nil {
		return nil, fmt.Errorf("level: add bounds: %w", err)
	}

	if spec.Prefabs.Background != "" {
		if _, err := BuildEntity(w, spec.Prefabs.Background, append([]BuildOption{At(spec.Background.X, spec.Background.Y)}, opts...)...); err != nil {
			return nil, fmt.Errorf("level: background: %w", err)
		}
	}

	platforms := make([]ecs.Entity, 0, len(spec.Platforms))
	for i, p := range spec.Platforms {
		platformOpts := append([]BuildOption{At(p.X, p.Y)}, opts...)
		if p.Scale != 0 {
			platformOpts = append(platformOpts, Scaled(p.Scale))
		}
		e, err := BuildEntity(w, spec.Prefabs.Platform, platformOpts...)
		if err != nil {
			return nil, fmt.Errorf("level: platform %d: %w", i, err)
		}
		platforms = append(platforms, e)
	}
	return platforms, nil
}
