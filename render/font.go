package render

// Glyphs cover printable ASCII only.
const (
	CharRangeBegin = 32
	CharRangeSize  = 95
)

// Glyph holds the layout metrics of one character in a font atlas.
type Glyph struct {
	HorOffset  int
	VerOffset  int // from the top of the line to the top of the glyph bitmap
	HorAdvance int
	Src        Rect
}

// FontMetrics describes one baked font: its atlas size, line height, glyphs
// and pairwise kerning.
type FontMetrics struct {
	LineHeight  int
	TextureSize Vec2i
	Glyphs      [CharRangeSize]Glyph

	kernings []int
}

// NewFontMetrics returns metrics with an all-zero kerning table.
func NewFontMetrics() *FontMetrics {
	return &FontMetrics{kernings: make([]int, CharRangeSize*CharRangeSize)}
}

// Kerning returns the adjustment applied between glyph prev and glyph cur.
func (m *FontMetrics) Kerning(prev, cur int) int {
	if m.kernings == nil {
		return 0
	}
	return m.kernings[cur*CharRangeSize+prev]
}

func (m *FontMetrics) SetKerning(prev, cur, v int) {
	if m.kernings == nil {
		m.kernings = make([]int, CharRangeSize*CharRangeSize)
	}
	m.kernings[cur*CharRangeSize+prev] = v
}

// GlyphIndex maps a byte to its glyph index.
func GlyphIndex(c byte) (int, bool) {
	if c < CharRangeBegin || int(c) >= CharRangeBegin+CharRangeSize {
		return 0, false
	}
	return int(c) - CharRangeBegin, true
}
