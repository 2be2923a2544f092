package prefabs

import "testing"

func TestLoadHazardPolicyEmbedded(t *testing.T) {
	policy, err := LoadHazardPolicy("hazard.tengo")
	if err != nil {
		t.Fatalf("load policy: %v", err)
	}
	if policy != DefaultHazardPolicy() {
		t.Fatalf("embedded script should match defaults, got %+v", policy)
	}
}

func TestParseHazardPolicy(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		want    HazardPolicy
		wantErr bool
	}{
		{
			name: "empty script keeps defaults",
			src:  ``,
			want: DefaultHazardPolicy(),
		},
		{
			name: "overrides",
			src:  "speed := 100\nvelocity_x_min := -speed\nvelocity_x_max := speed\nmax_active := 3",
			want: HazardPolicy{SpawnY: 16, VelocityXMin: -100, VelocityXMax: 100, VelocityY: 20, Bounce: 1, MaxActive: 3},
		},
		{
			name: "integer globals convert to floats",
			src:  "spawn_y := 40\nbounce := 0.5",
			want: HazardPolicy{SpawnY: 40, VelocityXMin: -200, VelocityXMax: 200, VelocityY: 20, Bounce: 0.5},
		},
		{
			name:    "inverted range",
			src:     "velocity_x_min := 50\nvelocity_x_max := -50",
			wantErr: true,
		},
		{
			name:    "negative cap",
			src:     "max_active := -1",
			wantErr: true,
		},
		{
			name:    "syntax error",
			src:     "spawn_y := ",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseHazardPolicy([]byte(tc.src))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestLoadHazardPolicyMissingScript(t *testing.T) {
	if _, err := LoadHazardPolicy("missing.tengo"); err == nil {
		t.Fatalf("expected error for missing script")
	}
}
