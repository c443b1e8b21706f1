package assets

import (
	"image"
	"testing"

	"github.com/milk9111/quadbatch/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

func glyphOf(m *render.FontMetrics, c byte) render.Glyph {
	i, _ := render.GlyphIndex(c)
	return m.Glyphs[i]
}

func TestBuildFontFixedFace(t *testing.T) {
	f, err := BuildFont(basicfont.Face7x13)
	require.NoError(t, err)

	m := f.Metrics
	assert.Equal(t, 13, m.LineHeight)
	assert.Equal(t, render.Vec2i{X: 570, Y: 13}, m.TextureSize)
	assert.Equal(t, image.Rect(0, 0, 570, 13), f.Atlas.Bounds())

	a := glyphOf(m, 'A')
	assert.Equal(t, render.Rect{X: 198, Y: 0, Width: 6, Height: 13}, a.Src)
	assert.Equal(t, 0, a.HorOffset)
	assert.Equal(t, 0, a.VerOffset)
	assert.Equal(t, 7, a.HorAdvance)
	assert.Equal(t, 0, m.Kerning(33, 54))
}

func alphaIn(img *image.RGBA, r render.Rect) int {
	total := 0
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			total += int(img.RGBAAt(x, y).A)
		}
	}
	return total
}

func TestBuildFontRasterizesGlyphs(t *testing.T) {
	f, err := BuildFont(basicfont.Face7x13)
	require.NoError(t, err)

	assert.Zero(t, alphaIn(f.Atlas, glyphOf(f.Metrics, ' ').Src))
	assert.Positive(t, alphaIn(f.Atlas, glyphOf(f.Metrics, 'A').Src))
	assert.Positive(t, alphaIn(f.Atlas, glyphOf(f.Metrics, '#').Src))
}

func TestBuildFontWrapsRows(t *testing.T) {
	face := &basicfont.Face{
		Advance: 20,
		Width:   20,
		Height:  10,
		Ascent:  8,
		Descent: 2,
		Mask:    image.NewAlpha(image.Rect(0, 0, 20, 10*render.CharRangeSize)),
		Ranges:  []basicfont.Range{{Low: ' ', High: '\u007f', Offset: 0}},
	}
	f, err := BuildFont(face)
	require.NoError(t, err)

	m := f.Metrics
	assert.Equal(t, render.Vec2i{X: AtlasSizeLimit, Y: 20}, m.TextureSize)
	assert.Equal(t, render.Rect{X: 1000, Y: 0, Width: 20, Height: 10}, m.Glyphs[50].Src)
	assert.Equal(t, render.Rect{X: 0, Y: 10, Width: 20, Height: 10}, m.Glyphs[51].Src)
	assert.Equal(t, render.Rect{X: 43 * 20, Y: 10, Width: 20, Height: 10}, m.Glyphs[94].Src)
}

func goRegularFace(t *testing.T, size float64) font.Face {
	t.Helper()
	f, err := opentype.Parse(goregular.TTF)
	require.NoError(t, err)
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	require.NoError(t, err)
	t.Cleanup(func() { face.Close() })
	return face
}

func TestBuildFontOpenType(t *testing.T) {
	face := goRegularFace(t, 24)
	f, err := BuildFont(face)
	require.NoError(t, err)

	m := f.Metrics
	assert.Equal(t, face.Metrics().Height.Ceil(), m.LineHeight)
	assert.LessOrEqual(t, m.TextureSize.X, AtlasSizeLimit)
	assert.LessOrEqual(t, m.TextureSize.Y, AtlasSizeLimit)

	bounds := image.Rect(0, 0, m.TextureSize.X, m.TextureSize.Y)
	var placed []image.Rectangle
	for i, g := range m.Glyphs {
		r := image.Rect(g.Src.X, g.Src.Y, g.Src.X+g.Src.Width, g.Src.Y+g.Src.Height)
		if r.Empty() {
			continue
		}
		assert.True(t, r.In(bounds), "glyph %d outside atlas", i)
		for _, p := range placed {
			assert.False(t, r.Overlaps(p), "glyph %d overlaps another", i)
		}
		placed = append(placed, r)
	}

	assert.Positive(t, glyphOf(m, ' ').HorAdvance)
	// Lower case letters start further down the line than capitals.
	assert.Greater(t, glyphOf(m, 'x').VerOffset, glyphOf(m, 'X').VerOffset)

	want := face.Kern('A', 'V').Floor()
	assert.Equal(t, want, m.Kerning(33, 54))
}

func TestDefaultFont(t *testing.T) {
	f, err := DefaultFont(16)
	require.NoError(t, err)
	assert.Positive(t, f.Metrics.LineHeight)
	assert.Positive(t, glyphOf(f.Metrics, 'W').Src.Width)
}

func TestLoadFontRejectsGarbage(t *testing.T) {
	_, err := LoadFont([]byte("not a font"), 12, 72)
	require.Error(t, err)
}
