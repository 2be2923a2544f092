package render

import (
	"errors"
	"fmt"
	"image"
	"path"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/starfall/assets"
)

// Registry is the texture store fed by assets.Load. Sources are decoded when
// requested; GPU images are created on first draw.
type Registry struct {
	base    string
	decode  func(path string) (image.Image, error)
	sources map[string]image.Image
	frames  map[string][]image.Rectangle
	images  map[string]*ebiten.Image
	sub     map[string][]*ebiten.Image
	errs    []error
}

var _ assets.ResourceLoader = (*Registry)(nil)

// NewRegistry creates a registry that decodes through LoadImage.
func NewRegistry() *Registry {
	return NewRegistryWithDecoder(LoadImage)
}

func NewRegistryWithDecoder(decode func(path string) (image.Image, error)) *Registry {
	return &Registry{
		decode:  decode,
		sources: make(map[string]image.Image),
		frames:  make(map[string][]image.Rectangle),
		images:  make(map[string]*ebiten.Image),
		sub:     make(map[string][]*ebiten.Image),
	}
}

func (r *Registry) SetPath(base string) {
	r.base = base
}

func (r *Registry) Image(key, file string) {
	src, ok := r.load(key, file)
	if !ok {
		return
	}
	r.sources[key] = src
	r.frames[key] = []image.Rectangle{src.Bounds()}
}

// SpriteSheet slices the image into a row-major grid of frames.
func (r *Registry) SpriteSheet(key, file string, cfg assets.FrameConfig) {
	if cfg.FrameWidth <= 0 || cfg.FrameHeight <= 0 {
		r.errs = append(r.errs, fmt.Errorf("render: sprite sheet %q: invalid frame size %dx%d", key, cfg.FrameWidth, cfg.FrameHeight))
		return
	}
	src, ok := r.load(key, file)
	if !ok {
		return
	}

	b := src.Bounds()
	var rects []image.Rectangle
	for y := b.Min.Y; y+cfg.FrameHeight <= b.Max.Y; y += cfg.FrameHeight {
		for x := b.Min.X; x+cfg.FrameWidth <= b.Max.X; x += cfg.FrameWidth {
			rects = append(rects, image.Rect(x, y, x+cfg.FrameWidth, y+cfg.FrameHeight))
		}
	}
	if len(rects) == 0 {
		r.errs = append(r.errs, fmt.Errorf("render: sprite sheet %q: image %v smaller than one frame", key, b.Size()))
		return
	}
	r.sources[key] = src
	r.frames[key] = rects
}

func (r *Registry) load(key, file string) (image.Image, bool) {
	full := file
	if r.base != "" {
		full = path.Join(r.base, file)
	}
	src, err := r.decode(full)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("render: load %q: %w", key, err))
		return nil, false
	}
	return src, true
}

// Err joins every failure recorded while loading.
func (r *Registry) Err() error {
	return errors.Join(r.errs...)
}

func (r *Registry) Has(key string) bool {
	_, ok := r.sources[key]
	return ok
}

// FrameCount is 1 for images and the grid size for sprite sheets.
func (r *Registry) FrameCount(key string) int {
	return len(r.frames[key])
}

// FrameSize returns the size of one frame of key.
func (r *Registry) FrameSize(key string) (int, int) {
	rects := r.frames[key]
	if len(rects) == 0 {
		return 0, 0
	}
	return rects[0].Dx(), rects[0].Dy()
}

// Texture returns the whole image stored under key.
func (r *Registry) Texture(key string) *ebiten.Image {
	if img := r.images[key]; img != nil {
		return img
	}
	src, ok := r.sources[key]
	if !ok {
		return nil
	}
	img := ebiten.NewImageFromImage(src)
	r.images[key] = img
	return img
}

// Frame returns cell index of key, or nil when out of range.
func (r *Registry) Frame(key string, index int) *ebiten.Image {
	rects := r.frames[key]
	if index < 0 || index >= len(rects) {
		return nil
	}
	subs := r.sub[key]
	if subs == nil {
		subs = make([]*ebiten.Image, len(rects))
		r.sub[key] = subs
	}
	if subs[index] != nil {
		return subs[index]
	}
	tex := r.Texture(key)
	if tex == nil {
		return nil
	}
	img, ok := tex.SubImage(rects[index]).(*ebiten.Image)
	if !ok {
		return nil
	}
	subs[index] = img
	return img
}
