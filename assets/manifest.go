package assets

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Kind distinguishes plain images from sprite sheets.
type Kind string

const (
	KindImage       Kind = "image"
	KindSpriteSheet Kind = "spritesheet"
)

// Descriptor names one resource and how to load it.
type Descriptor struct {
	Key         string `yaml:"key"`
	Path        string `yaml:"path"`
	Kind        Kind   `yaml:"kind"`
	FrameWidth  int    `yaml:"frame_width,omitempty"`
	FrameHeight int    `yaml:"frame_height,omitempty"`
}

// Manifest is the full asset list plus the path every entry is relative to.
type Manifest struct {
	BasePath string       `yaml:"base_path"`
	Entries  []Descriptor `yaml:"entries"`
}

var (
	ErrDuplicateKey = errors.New("assets: duplicate key")
	ErrInvalidEntry = errors.New("assets: invalid entry")
)

// ParseManifest decodes and validates a YAML manifest.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("assets: parse manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// DefaultManifest returns the embedded manifest.yaml.
func DefaultManifest() (Manifest, error) {
	data, err := assetsFS.ReadFile("manifest.yaml")
	if err != nil {
		return Manifest{}, fmt.Errorf("assets: read manifest: %w", err)
	}
	return ParseManifest(data)
}

// Validate checks that keys are unique and sprite sheets carry a frame size.
func (m Manifest) Validate() error {
	seen := make(map[string]struct{}, len(m.Entries))
	for i, d := range m.Entries {
		if d.Key == "" || d.Path == "" {
			return fmt.Errorf("%w: entry %d needs key and path", ErrInvalidEntry, i)
		}
		if _, dup := seen[d.Key]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateKey, d.Key)
		}
		seen[d.Key] = struct{}{}

		switch d.Kind {
		case KindImage:
		case KindSpriteSheet:
			if d.FrameWidth <= 0 || d.FrameHeight <= 0 {
				return fmt.Errorf("%w: sprite sheet %q needs a positive frame size", ErrInvalidEntry, d.Key)
			}
		default:
			return fmt.Errorf("%w: %q has unknown kind %q", ErrInvalidEntry, d.Key, d.Kind)
		}
	}
	return nil
}

// Lookup returns the descriptor for key.
func (m Manifest) Lookup(key string) (Descriptor, bool) {
	for _, d := range m.Entries {
		if d.Key == key {
			return d, true
		}
	}
	return Descriptor{}, false
}
