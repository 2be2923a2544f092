package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// SceneSpec is the layout of the play scene.
type SceneSpec struct {
	Prefabs    ScenePrefabsSpec `yaml:"prefabs"`
	Background PointSpec        `yaml:"background"`
	Platforms  []PlatformSpec   `yaml:"platforms"`
	Player     PointSpec        `yaml:"player"`
	Pickups    PickupsSpec      `yaml:"pickups"`
	ScoreLabel ScoreLabelSpec   `yaml:"score_label"`
	Hazards    HazardsSpec      `yaml:"hazards"`
	GameOver   GameOverSpec     `yaml:"game_over"`
}

// ScenePrefabsSpec names the prefab file used for each kind of entity.
type ScenePrefabsSpec struct {
	Background string `yaml:"background"`
	Platform   string `yaml:"platform"`
	Player     string `yaml:"player"`
	Pickup     string `yaml:"pickup"`
	Hazard     string `yaml:"hazard"`
	ScoreLabel string `yaml:"score_label"`
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type PlatformSpec struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Scale float64 `yaml:"scale"`
}

// PickupsSpec places Count pickups at StartX + i*StepX.
type PickupsSpec struct {
	Count     int     `yaml:"count"`
	StartX    float64 `yaml:"start_x"`
	StepX     float64 `yaml:"step_x"`
	Y         float64 `yaml:"y"`
	BounceMin float64 `yaml:"bounce_min"`
	BounceMax float64 `yaml:"bounce_max"`
	Score     int     `yaml:"score"`
	RespawnY  float64 `yaml:"respawn_y"`
}

type ScoreLabelSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Format string  `yaml:"format"`
}

type HazardsSpec struct {
	Script string `yaml:"script"`
}

type GameOverSpec struct {
	Tint *YAMLColor `yaml:"tint"`
	Idle string     `yaml:"idle"`
}

func LoadSceneSpec(filename string) (SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](filename)
	if err != nil {
		return SceneSpec{}, err
	}
	if err := spec.Validate(); err != nil {
		return SceneSpec{}, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return spec, nil
}

// Validate rejects layouts the scene cannot be built from.
func (s SceneSpec) Validate() error {
	p := s.Prefabs
	if p.Player == "" || p.Platform == "" || p.Pickup == "" || p.Hazard == "" || p.ScoreLabel == "" {
		return fmt.Errorf("scene: every prefab name except background is required")
	}
	if s.Pickups.Count <= 0 {
		return fmt.Errorf("scene: pickups.count must be positive, got %d", s.Pickups.Count)
	}
	if s.Pickups.BounceMin > s.Pickups.BounceMax {
		return fmt.Errorf("scene: pickups bounce range [%v, %v] is inverted", s.Pickups.BounceMin, s.Pickups.BounceMax)
	}
	if s.Pickups.Score < 0 {
		return fmt.Errorf("scene: pickups.score must not be negative")
	}
	if s.ScoreLabel.Format == "" {
		return fmt.Errorf("scene: score_label.format is required")
	}
	return nil
}

// YAMLColor accepts "#rrggbb", "#rrggbbaa" or an SVG color name such as "red".
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(value.Value)]; ok {
		c.Color = named
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
