package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/milk9111/starfall/assets"
)

// LoadImage decodes path from the embedded assets, falling back to the
// working directory so local edits show up without a rebuild.
func LoadImage(path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("empty image path")
	}
	if img, err := assets.LoadImage(path); err == nil {
		return img, nil
	}
	tried := []string{path, filepath.Join("assets", path), filepath.Base(path)}
	for _, p := range tried {
		if b, err := os.ReadFile(p); err == nil {
			if im, _, err := image.Decode(bytes.NewReader(b)); err == nil {
				return im, nil
			}
		}
	}
	return nil, fmt.Errorf("failed to load image %s", path)
}
