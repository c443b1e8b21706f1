package render

type fakeBuffer struct {
	data     []float32
	released bool
}

func (b *fakeBuffer) Write(offset int, data []float32) {
	copy(b.data[offset:offset+len(data)], data)
}

func (b *fakeBuffer) Zero() {
	clear(b.data)
}

func (b *fakeBuffer) Release() {
	b.released = true
}

func (b *fakeBuffer) snapshot() []float32 {
	return append([]float32(nil), b.data...)
}

type fakeDevice struct {
	units   int
	buffers []*fakeBuffer
	clears  []Color
	sprites []SpriteDraw
	chars   []CharDraw
}

func newFakeDevice(units int) *fakeDevice {
	return &fakeDevice{units: units}
}

func (d *fakeDevice) MaxTextureUnits() int {
	return d.units
}

func (d *fakeDevice) NewVertexBuffer(floatsPerQuad, quadCount int) VertexBuffer {
	b := &fakeBuffer{data: make([]float32, floatsPerQuad*quadCount)}
	d.buffers = append(d.buffers, b)
	return b
}

func (d *fakeDevice) Clear(c Color) {
	d.clears = append(d.clears, c)
}

func (d *fakeDevice) DrawSprites(s SpriteDraw) {
	d.sprites = append(d.sprites, s)
}

func (d *fakeDevice) DrawChars(c CharDraw) {
	d.chars = append(d.chars, c)
}

func (d *fakeDevice) resetDraws() {
	d.clears = nil
	d.sprites = nil
	d.chars = nil
}

// fakeTexture stands in for a GPU handle; the index makes draws comparable.
type fakeTexture int

type fakeAssets struct {
	sizes map[int]Vec2i
	fonts map[int]*FontMetrics
}

func newFakeAssets() *fakeAssets {
	return &fakeAssets{sizes: map[int]Vec2i{}, fonts: map[int]*FontMetrics{}}
}

func (a *fakeAssets) Texture(index int) Texture {
	return fakeTexture(index)
}

func (a *fakeAssets) TextureSize(index int) Vec2i {
	if s, ok := a.sizes[index]; ok {
		return s
	}
	return Vec2i{16, 16}
}

func (a *fakeAssets) FontTexture(fontIndex int) Texture {
	return fakeTexture(1000 + fontIndex)
}

func (a *fakeAssets) FontMetrics(fontIndex int) *FontMetrics {
	return a.fonts[fontIndex]
}

func bufferOf(vb VertexBuffer) *fakeBuffer {
	return vb.(*fakeBuffer)
}

// testFont has two glyphs with hand-picked metrics, 'H' and 'i', kerned by -1.
func testFont() *FontMetrics {
	m := NewFontMetrics()
	m.LineHeight = 20
	m.TextureSize = Vec2i{128, 64}
	m.Glyphs[0] = Glyph{HorOffset: 0, VerOffset: 10, HorAdvance: 4}
	m.Glyphs['H'-CharRangeBegin] = Glyph{HorOffset: 1, VerOffset: 4, HorAdvance: 10, Src: Rect{0, 0, 8, 12}}
	m.Glyphs['i'-CharRangeBegin] = Glyph{HorOffset: 2, VerOffset: 2, HorAdvance: 5, Src: Rect{8, 0, 2, 14}}
	m.SetKerning('H'-CharRangeBegin, 'i'-CharRangeBegin, -1)
	return m
}

// boxFont has glyphs whose ink fills their advance and starts at the top of
// the line, so aligned text boxes can be checked against exact edges.
func boxFont() *FontMetrics {
	m := NewFontMetrics()
	m.LineHeight = 16
	m.TextureSize = Vec2i{64, 64}
	m.Glyphs[0] = Glyph{HorAdvance: 3}
	m.Glyphs['A'-CharRangeBegin] = Glyph{HorAdvance: 6, Src: Rect{0, 0, 6, 10}}
	m.Glyphs['B'-CharRangeBegin] = Glyph{HorAdvance: 7, Src: Rect{6, 0, 7, 12}}
	return m
}
