package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// isolate points the home directory and working directory at empty temp dirs.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Chdir(t.TempDir())
	return home
}

func TestLoadSearchOrder(t *testing.T) {
	tests := []struct {
		name      string
		custom    string
		user      string
		local     string
		wantTitle string
		wantErr   bool
	}{
		{name: "embedded_default", wantTitle: "Starfall"},
		{name: "local_file", local: "window:\n  title: Local\n", wantTitle: "Local"},
		{name: "user_beats_local", user: "window:\n  title: User\n", local: "window:\n  title: Local\n", wantTitle: "User"},
		{name: "custom_beats_all", custom: "window:\n  title: Custom\n", user: "window:\n  title: User\n", wantTitle: "Custom"},
		{name: "broken_local_falls_back", local: "window: [", wantTitle: "Starfall"},
		{name: "broken_custom_errors", custom: "window: [", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			home := isolate(t)
			if tc.user != "" {
				writeFile(t, filepath.Join(home, ".starfall", "configs", "game.yaml"), tc.user)
			}
			if tc.local != "" {
				writeFile(t, localConfigPath, tc.local)
			}
			customPath := ""
			if tc.custom != "" {
				customPath = filepath.Join(t.TempDir(), "custom.yaml")
				writeFile(t, customPath, tc.custom)
			}

			cfg, err := Load(customPath)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.Window.Title != tc.wantTitle {
				t.Fatalf("title = %q, want %q", cfg.Window.Title, tc.wantTitle)
			}
		})
	}
}

func TestLoadKeepsDefaultsForMissingFields(t *testing.T) {
	isolate(t)
	writeFile(t, localConfigPath, "physics:\n  gravity_y: 500\n")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Physics.GravityY != 500 {
		t.Fatalf("gravity = %v, want 500", cfg.Physics.GravityY)
	}
	if cfg.Window.Width != 800 || cfg.Physics.TPS != 60 {
		t.Fatalf("expected defaults for unset fields, got %+v", cfg)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	isolate(t)
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing custom config")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "default", mutate: func(*Config) {}},
		{name: "zero_width", mutate: func(c *Config) { c.Window.Width = 0 }, wantErr: true},
		{name: "zero_tps", mutate: func(c *Config) { c.Physics.TPS = 0 }, wantErr: true},
		{name: "negative_iterations", mutate: func(c *Config) { c.Physics.Iterations = -1 }, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tc.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("embedded default %+v differs from DefaultConfig %+v", cfg, DefaultConfig())
	}
}
