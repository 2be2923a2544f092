package system

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/starfall/ecs"
	"github.com/milk9111/starfall/ecs/component"
	"golang.org/x/image/font/gofont/goregular"
)

// TextureSource resolves sprite texture keys to images.
type TextureSource interface {
	Texture(key string) *ebiten.Image
	Frame(key string, index int) *ebiten.Image
}

type RenderSystem struct {
	textures TextureSource
	font     *text.GoTextFaceSource
	faces    map[float64]*text.GoTextFace
}

func NewRenderSystem(textures TextureSource) (*RenderSystem, error) {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("render: load font: %w", err)
	}
	return &RenderSystem{
		textures: textures,
		font:     s,
		faces:    make(map[float64]*text.GoTextFace),
	}, nil
}

func layerOf(w *ecs.World, e ecs.Entity) int {
	if layer, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
		return layer.Index
	}
	return 0
}

// drawOrder sorts by render layer, then by creation order.
func drawOrder(w *ecs.World, entities []ecs.Entity) {
	sort.SliceStable(entities, func(i, j int) bool {
		li := layerOf(w, entities[i])
		lj := layerOf(w, entities[j])
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	entities := w.Query(component.TransformComponent.Kind(), component.SpriteComponent.Kind())
	drawOrder(w, entities)
	for _, e := range entities {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		s, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
		r.drawSprite(screen, t, s)
	}

	labels := w.Query(component.TransformComponent.Kind(), component.TextComponent.Kind())
	drawOrder(w, labels)
	for _, e := range labels {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		label, _ := ecs.Get(w, e, component.TextComponent.Kind())
		r.drawText(screen, t, label)
	}
}

func (r *RenderSystem) drawSprite(screen *ebiten.Image, t *component.Transform, s *component.Sprite) {
	if s.Hidden || r.textures == nil {
		return
	}

	var img *ebiten.Image
	if s.Frame >= 0 {
		img = r.textures.Frame(s.Texture, s.Frame)
	} else {
		img = r.textures.Texture(s.Texture)
	}
	if img == nil {
		return
	}

	op := &ebiten.DrawImageOptions{}
	if s.Centered {
		b := img.Bounds()
		op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
	}

	op.GeoM.Scale(t.Scale())
	op.GeoM.Rotate(t.Rotation)
	op.GeoM.Translate(t.X, t.Y)
	if s.Tint != nil {
		op.ColorScale.ScaleWithColor(s.Tint)
	}

	screen.DrawImage(img, op)
}

func (r *RenderSystem) drawText(screen *ebiten.Image, t *component.Transform, label *component.Text) {
	if label.Value == "" {
		return
	}
	size := label.Size
	if size <= 0 {
		size = 16
	}
	face := r.faces[size]
	if face == nil {
		face = &text.GoTextFace{Source: r.font, Size: size}
		r.faces[size] = face
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(t.X, t.Y)
	if label.Color != nil {
		op.ColorScale.ScaleWithColor(label.Color)
	}
	text.Draw(screen, label.Value, face, op)
}
