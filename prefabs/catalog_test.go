package prefabs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCatalogServesCachedSpecs(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	scene, err := LoadSceneSpec("scene.yaml")
	if err != nil {
		t.Fatalf("load scene: %v", err)
	}
	c, err := LoadCatalog(scene.Prefabs.Names()...)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	if len(c) != 6 {
		t.Fatalf("expected 6 prefabs, got %d", len(c))
	}

	// A broken edit on disk after loading does not reach the catalog.
	if err := os.MkdirAll(filepath.Join(dir, "prefabs"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "prefabs", "player.yaml"), []byte("components: ["), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadEntityBuildSpec("player.yaml"); err == nil {
		t.Fatalf("expected the broken file to fail a direct load")
	}

	for _, name := range []string{"player.yaml", "prefabs/player.yaml"} {
		spec, err := c.Spec(name)
		if err != nil {
			t.Fatalf("spec %s: %v", name, err)
		}
		if _, ok := spec.Components["player"]; !ok {
			t.Fatalf("spec %s lost its player component", name)
		}
	}

	if _, err := c.Spec("missing.yaml"); err == nil {
		t.Fatalf("expected error for unknown prefab")
	}
}

func TestLoadCatalogReportsBrokenPrefab(t *testing.T) {
	if _, err := LoadCatalog("star.yaml", "missing.yaml"); err == nil {
		t.Fatalf("expected error for missing prefab")
	}
}
