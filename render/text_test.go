package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutTextCenteredHi(t *testing.T) {
	layout, err := LayoutText("Hi", testFont(), HAlignCenter, VAlignCenter)
	require.NoError(t, err)

	// H at pen 0: (0+1, 0+4); i after advance 10 and kerning -1: (9+2, 0+2).
	// Width 14, height = min offset 2 + pen 0 + tallest bottom 16 = 18.
	assert.Equal(t, []float32{14}, layout.LineWidths)
	assert.Equal(t, float32(18), layout.Height)
	require.Len(t, layout.Glyphs, 2)
	assert.Equal(t, PlacedGlyph{Slot: 0, Glyph: 'H' - CharRangeBegin, Pos: Vec2{-6, -5}}, layout.Glyphs[0])
	assert.Equal(t, PlacedGlyph{Slot: 1, Glyph: 'i' - CharRangeBegin, Pos: Vec2{4, -7}}, layout.Glyphs[1])
}

func TestCharBatchWriteVertices(t *testing.T) {
	dev := newFakeDevice(1)
	b := newCharBatch(dev, 4, 0, Vec2{})
	require.NoError(t, b.Write("Hi", HAlignCenter, VAlignCenter, testFont()))

	data := bufferOf(b.verts).data
	assert.Equal(t, []float32{
		-6, -5, 0, 0,
		2, -5, 0.0625, 0,
		2, 7, 0.0625, 0.1875,
		-6, 7, 0, 0.1875,
	}, data[0:16])
	assert.Equal(t, []float32{
		4, -7, 0.0625, 0,
		6, -7, 0.078125, 0,
		6, 7, 0.078125, 0.21875,
		4, 7, 0.0625, 0.21875,
	}, data[16:32])
	for _, f := range data[32:] {
		require.Zero(t, f)
	}
	assert.Equal(t, 2, b.ActiveSlots())
}

func TestCharBatchWriteIsIdempotent(t *testing.T) {
	dev := newFakeDevice(1)
	b := newCharBatch(dev, 32, 0, Vec2{})
	font := testFont()

	require.NoError(t, b.Write("Hi iH\nHiH", HAlignRight, VAlignBottom, font))
	first := bufferOf(b.verts).snapshot()
	require.NoError(t, b.Write("Hi iH\nHiH", HAlignRight, VAlignBottom, font))
	assert.Equal(t, first, bufferOf(b.verts).snapshot())
}

func TestLayoutTextRightBottomTouchesOrigin(t *testing.T) {
	layout, err := LayoutText("AB", boxFont(), HAlignRight, VAlignBottom)
	require.NoError(t, err)
	require.Len(t, layout.Glyphs, 2)

	m := boxFont()
	last := layout.Glyphs[1]
	src := m.Glyphs[last.Glyph].Src
	assert.Equal(t, float32(0), last.Pos.X+float32(src.Width))
	assert.Equal(t, float32(0), last.Pos.Y+float32(src.Height))
	assert.Equal(t, Vec2{-13, -12}, layout.Glyphs[0].Pos)
}

func TestLayoutTextAlignment(t *testing.T) {
	cases := []struct {
		name   string
		alignH HAlign
		alignV VAlign
		wantA  Vec2
		wantB  Vec2
	}{
		// line widths 6 and 7, height = 0 + 16 + 12 = 28
		{"left_top", HAlignLeft, VAlignTop, Vec2{0, 0}, Vec2{0, 16}},
		{"center_center", HAlignCenter, VAlignCenter, Vec2{-3, -14}, Vec2{-3.5, 2}},
		{"right_bottom", HAlignRight, VAlignBottom, Vec2{-6, -28}, Vec2{-7, -12}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			layout, err := LayoutText("A\nB", boxFont(), c.alignH, c.alignV)
			require.NoError(t, err)
			assert.Equal(t, []float32{6, 7}, layout.LineWidths)
			assert.Equal(t, float32(7), layout.Width)
			assert.Equal(t, float32(28), layout.Height)
			require.Len(t, layout.Glyphs, 2)
			assert.Equal(t, 0, layout.Glyphs[0].Slot)
			assert.Equal(t, 2, layout.Glyphs[1].Slot)
			assert.Equal(t, c.wantA, layout.Glyphs[0].Pos)
			assert.Equal(t, c.wantB, layout.Glyphs[1].Pos)
		})
	}
}

func TestLayoutTextSpaceMetricsAnchorLines(t *testing.T) {
	m := boxFont()
	m.Glyphs[0] = Glyph{VerOffset: 2, HorAdvance: 3, Src: Rect{0, 0, 0, 20}}

	// The space glyph reaches lower than A or B, so the last line's bottom
	// comes from it while A still sets the first line's top.
	layout, err := LayoutText("A\nB", m, HAlignLeft, VAlignTop)
	require.NoError(t, err)
	assert.Equal(t, float32(0+16+22), layout.Height)

	layout, err = LayoutText("\n\n", m, HAlignLeft, VAlignTop)
	require.NoError(t, err)
	assert.Empty(t, layout.Glyphs)
	assert.Equal(t, []float32{0, 0, 0}, layout.LineWidths)
	assert.Equal(t, float32(2+32+22), layout.Height)
}

func TestLayoutTextKerningResetsPerLine(t *testing.T) {
	m := testFont()
	m.SetKerning('i'-CharRangeBegin, 'H'-CharRangeBegin, 5)

	layout, err := LayoutText("i\nH", m, HAlignLeft, VAlignTop)
	require.NoError(t, err)
	assert.Equal(t, Vec2{1, 24}, layout.Glyphs[1].Pos)

	layout, err = LayoutText("iH", m, HAlignLeft, VAlignTop)
	require.NoError(t, err)
	assert.Equal(t, Vec2{5 + 5 + 1, 4}, layout.Glyphs[1].Pos)
}

func TestCharBatchSpacesAndStaleGlyphs(t *testing.T) {
	dev := newFakeDevice(1)
	b := newCharBatch(dev, 8, 0, Vec2{})
	font := boxFont()

	require.NoError(t, b.Write("ABABAB", HAlignLeft, VAlignTop, font))
	require.NoError(t, b.Write("A B", HAlignLeft, VAlignTop, font))
	assert.Equal(t, 3, b.ActiveSlots())

	data := bufferOf(b.verts).data
	assert.NotZero(t, data[6], "A quad written")
	for _, f := range data[CharQuadFloats*1 : CharQuadFloats*2] {
		require.Zero(t, f, "space leaves its slot empty")
	}
	assert.Equal(t, float32(9), data[CharQuadFloats*2], "B after A and a space")
	for _, f := range data[CharQuadFloats*3:] {
		require.Zero(t, f, "longer previous text is wiped")
	}

	b.Clear()
	assert.Zero(t, b.ActiveSlots())
	for _, f := range data {
		require.Zero(t, f)
	}
}

func TestCharBatchWriteErrors(t *testing.T) {
	b := newCharBatch(newFakeDevice(1), 4, 0, Vec2{})

	cases := []struct {
		name string
		text string
		want error
	}{
		{"empty", "", ErrTextLength},
		{"too_long", "ABABA", ErrTextLength},
		{"tab", "A\tB", ErrUnsupportedChar},
		{"non_ascii", "é", ErrUnsupportedChar},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := b.Write(c.text, HAlignLeft, VAlignTop, boxFont())
			assert.ErrorIs(t, err, c.want)
		})
	}
}
