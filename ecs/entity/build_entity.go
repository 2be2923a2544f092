package entity

import (
	"fmt"
	"sort"
	"strings"

	"github.com/milk9111/starfall/ecs"
	"github.com/milk9111/starfall/ecs/component"
	"github.com/milk9111/starfall/prefabs"
)

type buildContext struct {
	PrefabPath string

	catalog prefabs.Catalog
	placed  bool
	x, y    float64
	scale   float64
}

// BuildOption adjusts a prefab while it is being built.
type BuildOption func(*buildContext)

// At places the entity at (x, y) before any component reads its transform.
func At(x, y float64) BuildOption {
	return func(ctx *buildContext) {
		ctx.placed = true
		ctx.x = x
		ctx.y = y
	}
}

// Scaled multiplies the prefab transform scale. Physics bodies that set
// scale_with_transform grow with it.
func Scaled(s float64) BuildOption {
	return func(ctx *buildContext) {
		ctx.scale = s
	}
}

// FromCatalog builds from specs decoded earlier instead of reading the prefab
// file again.
func FromCatalog(c prefabs.Catalog) BuildOption {
	return func(ctx *buildContext) {
		ctx.catalog = c
	}
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":       addPlayerTag,
	"platform_tag":     addPlatformTag,
	"score_label_tag":  addScoreLabelTag,
	"player":           addPlayer,
	"player_collision": addPlayerCollision,
	"transform":        addTransform,
	"sprite":           addSprite,
	"render_layer":     addRenderLayer,
	"animation":        addAnimation,
	"physics_body":     addPhysicsBody,
	"pickup":           addPickup,
	"hazard":           addHazard,
	"text":             addText,
}

// Transform must precede sprite, animation, physics_body and pickup, which
// read it while building.
var componentBuildOrder = []string{
	"player_tag",
	"platform_tag",
	"score_label_tag",
	"player",
	"player_collision",
	"transform",
	"sprite",
	"render_layer",
	"animation",
	"physics_body",
	"pickup",
	"hazard",
	"text",
}

func BuildEntity(w *ecs.World, prefabPath string, opts ...BuildOption) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	ctx := &buildContext{PrefabPath: prefabPath}
	for _, opt := range opts {
		opt(ctx)
	}

	var (
		spec prefabs.EntityBuildSpec
		err  error
	)
	if ctx.catalog != nil {
		spec, err = ctx.catalog.Spec(prefabPath)
	} else {
		spec, err = prefabs.LoadEntityBuildSpec(prefabPath)
	}
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	// Catalog specs are shared, so work on a copy.
	remaining := make(map[string]any, len(spec.Components)+1)
	for k, v := range spec.Components {
		remaining[k] = v
	}

	// Placement needs somewhere to land.
	if _, ok := remaining["transform"]; !ok && (ctx.placed || ctx.scale != 0) {
		remaining["transform"] = nil
	}

	e := ecs.CreateEntity(w)

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for components %s", prefabPath, strings.Join(names, ", "))
	}

	return e, nil
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addPlatformTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlatformTagComponent.Kind(), &component.PlatformTag{})
}

func addScoreLabelTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.ScoreLabelTagComponent.Kind(), &component.ScoreLabelTag{})
}

type playerSpec = prefabs.PlayerComponentSpec

func addPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[playerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	if spec.MoveSpeed < 0 || spec.JumpSpeed < 0 {
		return fmt.Errorf("player speeds must not be negative")
	}
	return ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		MoveSpeed: spec.MoveSpeed,
		JumpSpeed: spec.JumpSpeed,
	})
}

func addPlayerCollision(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerCollisionComponent.Kind(), &component.PlayerCollision{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	if ctx != nil {
		if ctx.placed {
			spec.X = ctx.x
			spec.Y = ctx.y
		}
		if ctx.scale != 0 {
			spec.ScaleX *= ctx.scale
			spec.ScaleY *= ctx.scale
		}
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	})
}

type spriteSpec = prefabs.SpriteComponentSpec

func addSprite(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[spriteSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}
	if spec.Image == "" {
		return fmt.Errorf("sprite image is required")
	}

	// Sprites are centered on their transform unless the prefab says otherwise.
	sprite := component.Sprite{
		Texture:  spec.Image,
		Frame:    -1,
		Centered: true,
		Hidden:   spec.Hidden,
	}
	if spec.Frame != nil {
		sprite.Frame = *spec.Frame
	}
	if spec.Centered != nil {
		sprite.Centered = *spec.Centered
	}
	if spec.Tint != nil {
		sprite.Tint = spec.Tint.Color
	}

	return ecs.Add(w, e, component.SpriteComponent.Kind(), &sprite)
}

type renderLayerSpec = prefabs.RenderLayerComponentSpec

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[renderLayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

type animationSpec = prefabs.AnimationComponentSpec

func addAnimation(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[animationSpec](raw)
	if err != nil {
		return fmt.Errorf("decode animation spec: %w", err)
	}
	if spec.Sheet == "" {
		return fmt.Errorf("animation sheet is required")
	}

	defs := make(map[string]component.AnimationDef, len(spec.Defs))
	for name, def := range spec.Defs {
		if def.FrameCount <= 0 {
			return fmt.Errorf("animation %q: frame_count must be positive", name)
		}
		defs[name] = component.AnimationDef{
			Name:       name,
			ColStart:   def.ColStart,
			FrameCount: def.FrameCount,
			FPS:        def.FPS,
			Loop:       def.Loop,
		}
	}
	if spec.Current != "" {
		if _, ok := defs[spec.Current]; !ok {
			return fmt.Errorf("animation current %q is not defined", spec.Current)
		}
	}

	playing := true
	if spec.Playing != nil {
		playing = *spec.Playing
	}

	anim := &component.Animation{
		Sheet:   spec.Sheet,
		Defs:    defs,
		Current: spec.Current,
		Playing: playing,
	}
	if err := ecs.Add(w, e, component.AnimationComponent.Kind(), anim); err != nil {
		return err
	}

	// Show the first frame of the current clip before the first tick.
	if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok && spec.Current != "" {
		sprite.Texture = spec.Sheet
		sprite.Frame = defs[spec.Current].ColStart
	}
	return nil
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

func parseBodyGroup(s string) (component.BodyGroup, error) {
	switch g := component.BodyGroup(s); g {
	case component.GroupPlatform, component.GroupPlayer, component.GroupPickup, component.GroupHazard:
		return g, nil
	default:
		return "", fmt.Errorf("unknown body group %q", s)
	}
}

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	group, err := parseBodyGroup(spec.Group)
	if err != nil {
		return err
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return fmt.Errorf("physics body size must be positive, got %vx%v", spec.Width, spec.Height)
	}

	width := spec.Width
	height := spec.Height
	if spec.ScaleWithTransform {
		if tr, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok && tr != nil {
			width *= tr.ScaleX
			height *= tr.ScaleY
		}
	}
	if !spec.Static && spec.Mass == 0 {
		spec.Mass = 1
	}

	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Group:              group,
		Width:              width,
		Height:             height,
		Mass:               spec.Mass,
		Friction:           spec.Friction,
		Elasticity:         spec.Elasticity,
		GravityY:           spec.GravityY,
		NoGravity:          spec.NoGravity,
		Static:             spec.Static,
		CollideWorldBounds: spec.CollideWorldBounds,
	})
}

type pickupSpec = prefabs.PickupComponentSpec

func addPickup(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[pickupSpec](raw)
	if err != nil {
		return fmt.Errorf("decode pickup spec: %w", err)
	}
	pickup := &component.Pickup{Active: true}
	if spec.Active != nil {
		pickup.Active = *spec.Active
	}
	if tr, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		pickup.HomeX = tr.X
	}
	return ecs.Add(w, e, component.PickupComponent.Kind(), pickup)
}

func addHazard(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.HazardComponent.Kind(), &component.Hazard{})
}

type textSpec = prefabs.TextComponentSpec

func addText(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[textSpec](raw)
	if err != nil {
		return fmt.Errorf("decode text spec: %w", err)
	}
	label := &component.Text{Value: spec.Value, Size: spec.Size}
	if spec.Color != nil {
		label.Color = spec.Color.Color
	}
	return ecs.Add(w, e, component.TextComponent.Kind(), label)
}
