package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type PlayerComponentSpec struct {
	MoveSpeed float64 `yaml:"move_speed"`
	JumpSpeed float64 `yaml:"jump_speed"`
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type SpriteComponentSpec struct {
	Image    string     `yaml:"image"`
	Frame    *int       `yaml:"frame"`
	Centered *bool      `yaml:"centered"`
	Tint     *YAMLColor `yaml:"tint"`
	Hidden   bool       `yaml:"hidden"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

type AnimationComponentSpec struct {
	Sheet   string                      `yaml:"sheet"`
	Defs    map[string]AnimationDefSpec `yaml:"defs"`
	Current string                      `yaml:"current"`
	Playing *bool                       `yaml:"playing"`
}

type AnimationDefSpec struct {
	ColStart   int     `yaml:"col_start"`
	FrameCount int     `yaml:"frame_count"`
	FPS        float64 `yaml:"fps"`
	Loop       bool    `yaml:"loop"`
}

type PhysicsBodyComponentSpec struct {
	Group              string  `yaml:"group"`
	Width              float64 `yaml:"width"`
	Height             float64 `yaml:"height"`
	Mass               float64 `yaml:"mass"`
	Friction           float64 `yaml:"friction"`
	Elasticity         float64 `yaml:"elasticity"`
	GravityY           float64 `yaml:"gravity_y"`
	NoGravity          bool    `yaml:"no_gravity"`
	Static             bool    `yaml:"static"`
	CollideWorldBounds bool    `yaml:"collide_world_bounds"`
	ScaleWithTransform bool    `yaml:"scale_with_transform"`
}

type PickupComponentSpec struct {
	Active *bool `yaml:"active"`
}

type TextComponentSpec struct {
	Value string     `yaml:"value"`
	Size  float64    `yaml:"size"`
	Color *YAMLColor `yaml:"color"`
}
