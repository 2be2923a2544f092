package prefabs

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// HazardPolicy tunes how hazards are launched when the pickups run out.
type HazardPolicy struct {
	SpawnY       float64
	VelocityXMin float64
	VelocityXMax float64
	VelocityY    float64
	Bounce       float64
	// MaxActive caps live hazards; 0 leaves them unbounded.
	MaxActive int
}

func DefaultHazardPolicy() HazardPolicy {
	return HazardPolicy{
		SpawnY:       16,
		VelocityXMin: -200,
		VelocityXMax: 200,
		VelocityY:    20,
		Bounce:       1,
	}
}

// LoadHazardPolicy runs a tengo script and reads its globals. Globals the
// script leaves undefined keep their default values.
func LoadHazardPolicy(scriptName string) (HazardPolicy, error) {
	src, err := LoadScript(scriptName)
	if err != nil {
		return HazardPolicy{}, fmt.Errorf("prefabs: load script %s: %w", scriptName, err)
	}
	policy, err := ParseHazardPolicy(src)
	if err != nil {
		return HazardPolicy{}, fmt.Errorf("prefabs: script %s: %w", scriptName, err)
	}
	return policy, nil
}

func ParseHazardPolicy(src []byte) (HazardPolicy, error) {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Run()
	if err != nil {
		return HazardPolicy{}, err
	}

	policy := DefaultHazardPolicy()
	floats := []struct {
		name string
		dst  *float64
	}{
		{"spawn_y", &policy.SpawnY},
		{"velocity_x_min", &policy.VelocityXMin},
		{"velocity_x_max", &policy.VelocityXMax},
		{"velocity_y", &policy.VelocityY},
		{"bounce", &policy.Bounce},
	}
	for _, f := range floats {
		if v := compiled.Get(f.name); v != nil && !v.IsUndefined() {
			*f.dst = v.Float()
		}
	}
	if v := compiled.Get("max_active"); v != nil && !v.IsUndefined() {
		policy.MaxActive = v.Int()
	}

	if policy.VelocityXMin > policy.VelocityXMax {
		return HazardPolicy{}, fmt.Errorf("velocity_x_min %v exceeds velocity_x_max %v", policy.VelocityXMin, policy.VelocityXMax)
	}
	if policy.MaxActive < 0 {
		return HazardPolicy{}, fmt.Errorf("max_active must not be negative, got %d", policy.MaxActive)
	}
	return policy, nil
}
