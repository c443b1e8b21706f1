package assets

import (
	"errors"
	"fmt"
	"image"

	"github.com/milk9111/quadbatch/render"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// AtlasSizeLimit bounds both dimensions of a font atlas.
const AtlasSizeLimit = 1024

var ErrAtlasTooLarge = errors.New("font atlas exceeds size limit")

// Font is a baked font: an alpha atlas holding every printable ASCII glyph
// in white, and the metrics to lay text out against it.
type Font struct {
	Atlas   *image.RGBA
	Metrics *render.FontMetrics
}

// LoadFont parses a TrueType/OpenType font and bakes it at the given point
// size.
func LoadFont(data []byte, size, dpi float64) (*Font, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("assets: parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("assets: font face: %w", err)
	}
	defer face.Close()

	return BuildFont(face)
}

// DefaultFont bakes Go Regular at the given point size.
func DefaultFont(size float64) (*Font, error) {
	return LoadFont(goregular.TTF, size, 72)
}

type glyphBitmap struct {
	bounds  image.Rectangle
	advance fixed.Int26_6
}

// BuildFont rasterizes the printable ASCII range of face into a single atlas.
// Glyphs are packed left to right in rows one line high; a glyph that would
// cross the width limit starts a new row.
func BuildFont(face font.Face) (*Font, error) {
	fm := face.Metrics()
	lineHeight := fm.Height.Ceil()
	ascent := fm.Ascent.Ceil()

	var bitmaps [render.CharRangeSize]glyphBitmap
	largest, tallest := 0, 0
	for i := range bitmaps {
		dr, _, _, adv, ok := face.Glyph(fixed.Point26_6{}, rune(render.CharRangeBegin+i))
		if !ok {
			adv, _ = face.GlyphAdvance(rune(render.CharRangeBegin + i))
			dr = image.Rectangle{}
		}
		bitmaps[i] = glyphBitmap{bounds: dr, advance: adv}
		largest = max(largest, dr.Dx())
		tallest = max(tallest, dr.Dy())
	}

	rowHeight := max(lineHeight, tallest, 1)
	width := max(min(largest*render.CharRangeSize, AtlasSizeLimit), 1)

	m := render.NewFontMetrics()
	m.LineHeight = lineHeight

	x, y := 0, 0
	for i, b := range bitmaps {
		w, h := b.bounds.Dx(), b.bounds.Dy()
		if x+w > width {
			x = 0
			y += rowHeight
		}
		m.Glyphs[i] = render.Glyph{
			HorOffset:  b.bounds.Min.X,
			VerOffset:  ascent + b.bounds.Min.Y,
			HorAdvance: b.advance.Floor(),
			Src:        render.Rect{X: x, Y: y, Width: w, Height: h},
		}
		x += w
	}
	height := y + rowHeight
	if height > AtlasSizeLimit {
		return nil, fmt.Errorf("assets: %w: %dx%d", ErrAtlasTooLarge, width, height)
	}
	m.TextureSize = render.Vec2i{X: width, Y: height}

	for cur := 0; cur < render.CharRangeSize; cur++ {
		for prev := 0; prev < render.CharRangeSize; prev++ {
			k := face.Kern(rune(render.CharRangeBegin+prev), rune(render.CharRangeBegin+cur))
			if k != 0 {
				m.SetKerning(prev, cur, k.Floor())
			}
		}
	}

	atlas := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, g := range m.Glyphs {
		if g.Src.Width == 0 || g.Src.Height == 0 {
			continue
		}
		// Faces may reuse their mask buffer, so each glyph is drawn straight
		// after it is rasterized.
		_, mask, maskp, _, ok := face.Glyph(fixed.Point26_6{}, rune(render.CharRangeBegin+i))
		if !ok || mask == nil {
			continue
		}
		dst := image.Rect(g.Src.X, g.Src.Y, g.Src.X+g.Src.Width, g.Src.Y+g.Src.Height)
		draw.DrawMask(atlas, dst, image.White, image.Point{}, mask, maskp, draw.Over)
	}

	return &Font{Atlas: atlas, Metrics: m}, nil
}
