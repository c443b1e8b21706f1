package render

import "fmt"

type HAlign int

const (
	HAlignLeft HAlign = iota
	HAlignCenter
	HAlignRight
)

func (a HAlign) factor() float32 {
	switch a {
	case HAlignCenter:
		return 0.5
	case HAlignRight:
		return 1
	}
	return 0
}

type VAlign int

const (
	VAlignTop VAlign = iota
	VAlignCenter
	VAlignBottom
)

func (a VAlign) factor() float32 {
	switch a {
	case VAlignCenter:
		return 0.5
	case VAlignBottom:
		return 1
	}
	return 0
}

// PlacedGlyph is one visible character after layout, positioned in the
// batch's local space.
type PlacedGlyph struct {
	Slot  int // index of the character in the source text
	Glyph int
	Pos   Vec2
}

// TextLayout is the result of laying out a string.
type TextLayout struct {
	Glyphs     []PlacedGlyph
	LineWidths []float32
	Width      float32 // widest line
	Height     float32
}

// LayoutText positions every visible character of text.
//
// Characters are placed in one pass with a pen that starts at the origin. The
// pen advances by each glyph's horizontal advance plus kerning against the
// previous glyph on the same line, and drops by the font's line height on
// '\n'. The pass also records each line's width, the smallest vertical offset
// on the first line and the tallest glyph bottom on the last line; both of
// those start from the space glyph's metrics. The block height is the first
// line's offset plus the final pen height plus the last line's glyph bottom.
//
// A second pass subtracts alignment offsets: the glyph's line width times
// 0, 0.5 or 1 horizontally, and the block height times 0, 0.5 or 1
// vertically. Spaces and newlines produce no glyphs.
func LayoutText(text string, m *FontMetrics, alignH HAlign, alignV VAlign) (TextLayout, error) {
	var pen Vec2
	line := 0

	space := m.Glyphs[0]
	spaceHeight := float32(space.VerOffset + space.Src.Height)

	firstLineMinOffs := float32(space.VerOffset)
	lineMaxHeight := spaceHeight

	positions := make([]Vec2, len(text))
	glyphs := make([]int, len(text))
	lines := make([]int, len(text))
	lineWidths := make([]float32, 0, 1)

	prev := -1

	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '\n' {
			lineWidths = append(lineWidths, pen.X)
			pen.X = 0
			pen.Y += float32(m.LineHeight)
			line++
			lineMaxHeight = spaceHeight
			lines[i] = line
			glyphs[i] = -1
			prev = -1
			continue
		}

		g, ok := GlyphIndex(c)
		if !ok {
			return TextLayout{}, fmt.Errorf("render: layout %q at %d: %w", text, i, ErrUnsupportedChar)
		}
		glyph := m.Glyphs[g]

		if prev != -1 {
			pen.X += float32(m.Kerning(prev, g))
		}

		positions[i] = Vec2{pen.X + float32(glyph.HorOffset), pen.Y + float32(glyph.VerOffset)}
		glyphs[i] = g
		lines[i] = line

		if line == 0 && float32(glyph.VerOffset) < firstLineMinOffs {
			firstLineMinOffs = float32(glyph.VerOffset)
		}
		if h := float32(glyph.VerOffset + glyph.Src.Height); h > lineMaxHeight {
			lineMaxHeight = h
		}

		pen.X += float32(glyph.HorAdvance)
		prev = g
	}

	lineWidths = append(lineWidths, pen.X)

	layout := TextLayout{
		LineWidths: lineWidths,
		Height:     firstLineMinOffs + pen.Y + lineMaxHeight,
	}
	for _, w := range lineWidths {
		layout.Width = max(layout.Width, w)
	}

	offsY := layout.Height * alignV.factor()
	for i := 0; i < len(text); i++ {
		if glyphs[i] <= 0 {
			// newline (-1) or space (0)
			continue
		}
		offsX := lineWidths[lines[i]] * alignH.factor()
		layout.Glyphs = append(layout.Glyphs, PlacedGlyph{
			Slot:  i,
			Glyph: glyphs[i],
			Pos:   Vec2{positions[i].X - offsX, positions[i].Y - offsY},
		})
	}

	return layout, nil
}
