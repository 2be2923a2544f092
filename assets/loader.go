package assets

// FrameConfig is the cell size of a sprite sheet grid.
type FrameConfig struct {
	FrameWidth  int
	FrameHeight int
}

// ResourceLoader receives load requests. Failures are the loader's to record.
type ResourceLoader interface {
	SetPath(base string)
	Image(key, path string)
	SpriteSheet(key, path string, frames FrameConfig)
}

// Load sets the base path once, then issues one request per entry.
func Load(loader ResourceLoader, m Manifest) {
	loader.SetPath(m.BasePath)
	for _, d := range m.Entries {
		switch d.Kind {
		case KindImage:
			loader.Image(d.Key, d.Path)
		case KindSpriteSheet:
			loader.SpriteSheet(d.Key, d.Path, FrameConfig{FrameWidth: d.FrameWidth, FrameHeight: d.FrameHeight})
		}
	}
}
