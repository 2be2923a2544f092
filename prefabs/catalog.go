package prefabs

import "fmt"

// Catalog holds entity build specs decoded once, keyed by prefab file name.
type Catalog map[string]EntityBuildSpec

// LoadCatalog reads every named prefab. Empty names are skipped.
func LoadCatalog(names ...string) (Catalog, error) {
	c := make(Catalog, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		key := cleanPrefabPath(name)
		if _, ok := c[key]; ok {
			continue
		}
		spec, err := LoadEntityBuildSpec(name)
		if err != nil {
			return nil, err
		}
		c[key] = spec
	}
	return c, nil
}

// Spec returns the cached prefab without touching disk.
func (c Catalog) Spec(name string) (EntityBuildSpec, error) {
	spec, ok := c[cleanPrefabPath(name)]
	if !ok {
		return EntityBuildSpec{}, fmt.Errorf("prefabs: %s is not in the catalog", name)
	}
	return spec, nil
}

// Names lists the prefab files a scene builds from.
func (p ScenePrefabsSpec) Names() []string {
	return []string{p.Background, p.Platform, p.Player, p.Pickup, p.Hazard, p.ScoreLabel}
}
