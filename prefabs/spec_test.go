package prefabs

import (
	"image/color"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestLoadSceneSpec(t *testing.T) {
	spec, err := LoadSceneSpec("scene.yaml")
	if err != nil {
		t.Fatalf("load scene: %v", err)
	}

	if len(spec.Platforms) != 4 {
		t.Fatalf("expected 4 platforms, got %d", len(spec.Platforms))
	}
	if g := spec.Platforms[0]; g.X != 400 || g.Y != 568 || g.Scale != 2 {
		t.Fatalf("unexpected ground platform %+v", g)
	}
	if spec.Player.X != 100 || spec.Player.Y != 450 {
		t.Fatalf("unexpected player position %+v", spec.Player)
	}
	if spec.Pickups.Count != 12 || spec.Pickups.StartX != 12 || spec.Pickups.StepX != 70 {
		t.Fatalf("unexpected pickups %+v", spec.Pickups)
	}
	if spec.Pickups.Score != 10 {
		t.Fatalf("expected 10 points per pickup, got %d", spec.Pickups.Score)
	}
	if spec.GameOver.Tint == nil {
		t.Fatalf("expected game over tint")
	}
	if got := color.NRGBAModel.Convert(spec.GameOver.Tint.Color).(color.NRGBA); got != (color.NRGBA{R: 255, A: 255}) {
		t.Fatalf("expected red tint, got %+v", got)
	}
}

func TestSceneSpecReferencesLoadablePrefabs(t *testing.T) {
	spec, err := LoadSceneSpec("scene.yaml")
	if err != nil {
		t.Fatalf("load scene: %v", err)
	}

	p := spec.Prefabs
	for _, name := range []string{p.Background, p.Platform, p.Player, p.Pickup, p.Hazard, p.ScoreLabel} {
		build, err := LoadEntityBuildSpec(name)
		if err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
		if len(build.Components) == 0 {
			t.Fatalf("%s has no components", name)
		}
	}
}

func TestSceneSpecValidate(t *testing.T) {
	valid := func() SceneSpec {
		return SceneSpec{
			Prefabs: ScenePrefabsSpec{
				Platform:   "platform.yaml",
				Player:     "player.yaml",
				Pickup:     "star.yaml",
				Hazard:     "bomb.yaml",
				ScoreLabel: "score_label.yaml",
			},
			Pickups:    PickupsSpec{Count: 12, BounceMin: 0.4, BounceMax: 0.8, Score: 10},
			ScoreLabel: ScoreLabelSpec{Format: "Score: %d"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*SceneSpec)
		wantErr bool
	}{
		{name: "valid", mutate: func(*SceneSpec) {}},
		{name: "missing player prefab", mutate: func(s *SceneSpec) { s.Prefabs.Player = "" }, wantErr: true},
		{name: "no pickups", mutate: func(s *SceneSpec) { s.Pickups.Count = 0 }, wantErr: true},
		{name: "inverted bounce", mutate: func(s *SceneSpec) { s.Pickups.BounceMin = 0.9 }, wantErr: true},
		{name: "negative score", mutate: func(s *SceneSpec) { s.Pickups.Score = -1 }, wantErr: true},
		{name: "missing label format", mutate: func(s *SceneSpec) { s.ScoreLabel.Format = "" }, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spec := valid()
			tc.mutate(&spec)
			err := spec.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestYAMLColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{in: `"#ff0000"`, want: color.NRGBA{R: 255, A: 255}},
		{in: `"00ff0080"`, want: color.NRGBA{G: 255, A: 128}},
		{in: `red`, want: color.NRGBA{R: 255, A: 255}},
		{in: `Gold`, want: color.NRGBA{R: 255, G: 215, A: 255}},
		{in: `"#fff"`, wantErr: true},
		{in: `"#zz0000"`, wantErr: true},
		{in: `[1, 2]`, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			var c YAMLColor
			err := yaml.Unmarshal([]byte(tc.in), &c)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %s", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got := color.NRGBAModel.Convert(c.Color).(color.NRGBA); got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestDecodeComponentSpec(t *testing.T) {
	build, err := LoadEntityBuildSpec("player.yaml")
	if err != nil {
		t.Fatalf("load player: %v", err)
	}

	player, err := DecodeComponentSpec[PlayerComponentSpec](build.Components["player"])
	if err != nil {
		t.Fatalf("decode player: %v", err)
	}
	if player.MoveSpeed != 160 || player.JumpSpeed != 500 {
		t.Fatalf("unexpected player spec %+v", player)
	}

	anim, err := DecodeComponentSpec[AnimationComponentSpec](build.Components["animation"])
	if err != nil {
		t.Fatalf("decode animation: %v", err)
	}
	if len(anim.Defs) != 3 || !anim.Defs["left"].Loop || anim.Defs["turn"].Loop {
		t.Fatalf("unexpected animation defs %+v", anim.Defs)
	}

	empty, err := DecodeComponentSpec[TransformComponentSpec](nil)
	if err != nil || empty != (TransformComponentSpec{}) {
		t.Fatalf("expected zero spec for nil input, got %+v, %v", empty, err)
	}
}

func TestCleanPaths(t *testing.T) {
	tests := []struct {
		in         string
		wantPrefab string
		wantScript string
	}{
		{in: "", wantPrefab: "", wantScript: ""},
		{in: "hazard.tengo", wantPrefab: "hazard.tengo", wantScript: "scripts/hazard.tengo"},
		{in: "prefabs/player.yaml", wantPrefab: "player.yaml", wantScript: "scripts/player.yaml"},
		{in: "prefabs/scripts/hazard.tengo", wantPrefab: "scripts/hazard.tengo", wantScript: "scripts/hazard.tengo"},
		{in: "scripts/hazard.tengo", wantPrefab: "scripts/hazard.tengo", wantScript: "scripts/hazard.tengo"},
	}

	for _, tc := range tests {
		if got := cleanPrefabPath(tc.in); got != tc.wantPrefab {
			t.Errorf("cleanPrefabPath(%q) = %q, want %q", tc.in, got, tc.wantPrefab)
		}
		if got := cleanScriptPath(tc.in); got != tc.wantScript {
			t.Errorf("cleanScriptPath(%q) = %q, want %q", tc.in, got, tc.wantScript)
		}
	}
}
