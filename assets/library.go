package assets

import (
	"errors"
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/quadbatch/render"
)

var (
	ErrNotFound    = errors.New("asset not found")
	ErrUnknownFont = errors.New("unknown font")
)

// Uploader turns a decoded image into a device texture.
type Uploader func(img image.Image) render.Texture

// EbitenUpload uploads to an *ebiten.Image.
func EbitenUpload(img image.Image) render.Texture {
	return ebiten.NewImageFromImage(img)
}

// Library owns the textures and fonts a renderer draws with and serves them
// by index. It implements render.Assets.
type Library struct {
	upload Uploader

	textures []render.Texture
	sizes    []render.Vec2i
	byName   map[string]int

	fonts     []*Font
	fontTex   []render.Texture
	fontNames map[string]int
}

// NewLibrary returns an empty library. A nil upload uses EbitenUpload.
func NewLibrary(upload Uploader) *Library {
	if upload == nil {
		upload = EbitenUpload
	}
	return &Library{
		upload:    upload,
		byName:    map[string]int{},
		fontNames: map[string]int{},
	}
}

// AddImage uploads img under name. Adding a name again replaces the texture
// in place and keeps its index.
func (l *Library) AddImage(name string, img image.Image) int {
	size := render.Vec2i{X: img.Bounds().Dx(), Y: img.Bounds().Dy()}
	tex := l.upload(img)
	if i, ok := l.byName[name]; ok {
		l.textures[i] = tex
		l.sizes[i] = size
		return i
	}
	l.textures = append(l.textures, tex)
	l.sizes = append(l.sizes, size)
	l.byName[name] = len(l.textures) - 1
	return len(l.textures) - 1
}

// LoadTexture decodes path and adds it, keyed by path. Already loaded paths
// return their existing index.
func (l *Library) LoadTexture(path string) (int, error) {
	if path == "" {
		return 0, fmt.Errorf("assets: empty texture path")
	}
	if i, ok := l.byName[path]; ok {
		return i, nil
	}
	img, err := DecodeImage(path)
	if err != nil {
		return 0, err
	}
	return l.AddImage(path, img), nil
}

// LoadEmbeddedTextures adds every embedded texture in name order.
func (l *Library) LoadEmbeddedTextures() error {
	paths, err := EmbeddedTextures()
	if err != nil {
		return err
	}
	for _, p := range paths {
		if _, err := l.LoadTexture(p); err != nil {
			return err
		}
	}
	return nil
}

// TextureIndex looks a texture up by the name it was added under.
func (l *Library) TextureIndex(name string) (int, bool) {
	i, ok := l.byName[name]
	return i, ok
}

func (l *Library) TextureCount() int { return len(l.textures) }

// AddFont uploads a baked font's atlas under name.
func (l *Library) AddFont(name string, f *Font) int {
	tex := l.upload(f.Atlas)
	if i, ok := l.fontNames[name]; ok {
		l.fonts[i] = f
		l.fontTex[i] = tex
		return i
	}
	l.fonts = append(l.fonts, f)
	l.fontTex = append(l.fontTex, tex)
	l.fontNames[name] = len(l.fonts) - 1
	return len(l.fonts) - 1
}

// FontIndex looks a font up by the name it was added under.
func (l *Library) FontIndex(name string) (int, error) {
	i, ok := l.fontNames[name]
	if !ok {
		return 0, fmt.Errorf("assets: %w: %s", ErrUnknownFont, name)
	}
	return i, nil
}

func (l *Library) FontCount() int { return len(l.fonts) }

func (l *Library) Texture(i int) render.Texture {
	if i < 0 || i >= len(l.textures) {
		return nil
	}
	return l.textures[i]
}

func (l *Library) TextureSize(i int) render.Vec2i {
	if i < 0 || i >= len(l.sizes) {
		return render.Vec2i{}
	}
	return l.sizes[i]
}

func (l *Library) FontTexture(f int) render.Texture {
	if f < 0 || f >= len(l.fontTex) {
		return nil
	}
	return l.fontTex[f]
}

func (l *Library) FontMetrics(f int) *render.FontMetrics {
	if f < 0 || f >= len(l.fonts) {
		return nil
	}
	return l.fonts[f].Metrics
}

var _ render.Assets = (*Library)(nil)
