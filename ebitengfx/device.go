// Package ebitengfx draws render batches with ebiten.
//
// Ebiten samples one image per DrawTriangles call, so a sprite batch is
// submitted as one call per bound texture unit; ebiten merges consecutive
// calls into as few GPU draws as it can. Vertices are kept on the CPU and
// transformed there, which also means the projection matrix is unused:
// ebiten's destination coordinates are already window pixels.
package ebitengfx

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/quadbatch/render"
)

// DefaultTextureUnits is what the device reports when none is given.
const DefaultTextureUnits = 16

// VertexBuffer is CPU-side quad storage handed to ebiten at draw time.
type VertexBuffer struct {
	data []float32
}

func (b *VertexBuffer) Write(offset int, data []float32) {
	copy(b.data[offset:offset+len(data)], data)
}

func (b *VertexBuffer) Zero() {
	clear(b.data)
}

func (b *VertexBuffer) Release() {
	b.data = nil
}

// Floats exposes the raw vertex data.
func (b *VertexBuffer) Floats() []float32 {
	return b.data
}

// Device implements render.Device on an ebiten destination image.
type Device struct {
	target *ebiten.Image
	units  int

	verts   []ebiten.Vertex
	indices []uint16
	opts    ebiten.DrawTrianglesOptions
}

func NewDevice(units int) *Device {
	if units <= 0 {
		units = DefaultTextureUnits
	}
	return &Device{units: units}
}

// SetTarget sets the image the next draws go to, normally the screen
// passed to ebiten.Game.Draw.
func (d *Device) SetTarget(img *ebiten.Image) {
	d.target = img
}

func (d *Device) MaxTextureUnits() int {
	return d.units
}

func (d *Device) NewVertexBuffer(floatsPerQuad, quadCount int) render.VertexBuffer {
	return &VertexBuffer{data: make([]float32, floatsPerQuad*quadCount)}
}

func (d *Device) Clear(c render.Color) {
	if d.target == nil {
		return
	}
	d.target.Fill(c.RGBA8())
}

func (d *Device) DrawSprites(s render.SpriteDraw) {
	if d.target == nil {
		return
	}
	data := floatsOf(s.Vertices)
	quads := s.IndexCount / render.IndicesPerQuad

	for unit, tex := range s.Textures {
		img, ok := tex.(*ebiten.Image)
		if !ok || img == nil {
			continue
		}
		d.verts = appendSpriteVertices(d.verts[:0], data, quads, unit, s.View, img.Bounds().Size())
		d.submit(img)
	}
}

func (d *Device) DrawChars(c render.CharDraw) {
	if d.target == nil {
		return
	}
	img, ok := c.Font.(*ebiten.Image)
	if !ok || img == nil {
		render.Logger().Warn("ebitengfx: char batch without font image", "font", fmt.Sprintf("%T", c.Font))
		return
	}
	data := floatsOf(c.Vertices)
	quads := c.IndexCount / render.IndicesPerQuad

	d.verts = appendCharVertices(d.verts[:0], data, quads, c, img.Bounds().Size())
	d.submit(img)
}

func (d *Device) submit(img *ebiten.Image) {
	if len(d.verts) == 0 {
		return
	}
	d.indices = render.QuadIndices(len(d.verts) / 4)
	d.opts.ColorScaleMode = ebiten.ColorScaleModeStraightAlpha
	d.target.DrawTriangles(d.verts, d.indices, img, &d.opts)
}

func floatsOf(vb render.VertexBuffer) []float32 {
	b, ok := vb.(*VertexBuffer)
	if !ok {
		panic(fmt.Sprintf("ebitengfx: foreign vertex buffer %T", vb))
	}
	return b.data
}
