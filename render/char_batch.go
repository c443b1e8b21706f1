package render

import "fmt"

// CharBatchSlotLimit is the largest capacity a char batch may have.
const CharBatchSlotLimit = 1024

// CharBatchProps are the per-batch display properties applied at draw time.
type CharBatchProps struct {
	Pos      Vec2
	Rotation float32
	Blend    Color
}

// CharBatch renders one string as one quad per visible character, all
// sampled from a single font atlas.
type CharBatch struct {
	capacity int
	font     int
	props    CharBatchProps
	active   int
	verts    VertexBuffer
}

func newCharBatch(dev Device, capacity, font int, pos Vec2) *CharBatch {
	return &CharBatch{
		capacity: capacity,
		font:     font,
		props:    CharBatchProps{Pos: pos, Blend: White},
		verts:    dev.NewVertexBuffer(CharQuadFloats, capacity),
	}
}

func (b *CharBatch) Capacity() int {
	return b.capacity
}

func (b *CharBatch) Font() int {
	return b.font
}

// ActiveSlots returns the length of the last written string.
func (b *CharBatch) ActiveSlots() int {
	return b.active
}

func (b *CharBatch) Props() CharBatchProps {
	return b.props
}

// Write lays out text and replaces the batch's quads with it. The whole
// buffer is zeroed first so a shorter string never leaves stale glyphs.
func (b *CharBatch) Write(text string, alignH HAlign, alignV VAlign, m *FontMetrics) error {
	if len(text) < 1 || len(text) > b.capacity {
		return fmt.Errorf("render: write %d chars to batch of %d: %w", len(text), b.capacity, ErrTextLength)
	}

	layout, err := LayoutText(text, m, alignH, alignV)
	if err != nil {
		return err
	}

	b.verts.Zero()

	var quad [CharQuadFloats]float32
	for _, pg := range layout.Glyphs {
		fillCharQuad(quad[:], pg.Pos, m.Glyphs[pg.Glyph].Src, m.TextureSize)
		b.verts.Write(pg.Slot*CharQuadFloats, quad[:])
	}

	b.active = len(text)
	return nil
}

// Clear zeroes every quad and draws nothing until the next Write.
func (b *CharBatch) Clear() {
	b.verts.Zero()
	b.active = 0
}

func (b *CharBatch) draw(dev Device, assets Assets, view, proj Mat4) {
	if b.active == 0 {
		return
	}
	dev.DrawChars(CharDraw{
		Vertices:   b.verts,
		Font:       assets.FontTexture(b.font),
		IndexCount: IndicesPerQuad * b.active,
		Position:   b.props.Pos,
		Rotation:   b.props.Rotation,
		Blend:      b.props.Blend,
		View:       view,
		Projection: proj,
	})
}

func (b *CharBatch) release() {
	if b.verts != nil {
		b.verts.Release()
		b.verts = nil
	}
}

func fillCharQuad(dst []float32, pos Vec2, src Rect, texSize Vec2i) {
	tw, th := float32(texSize.X), float32(texSize.Y)
	for i, c := range quadCorners {
		o := i * CharVertexFloats
		dst[o+0] = pos.X + c.X*float32(src.Width)
		dst[o+1] = pos.Y + c.Y*float32(src.Height)
		dst[o+2] = float32(src.X+int(c.X)*src.Width) / tw
		dst[o+3] = float32(src.Y+int(c.Y)*src.Height) / th
	}
}
