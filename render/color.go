package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/mazznoer/csscolorparser"
	"golang.org/x/image/colornames"
)

// Color is a straight-alpha RGBA colour with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

var (
	White   = Color{1, 1, 1, 1}
	Black   = Color{0, 0, 0, 1}
	Red     = Color{1, 0, 0, 1}
	Green   = Color{0, 1, 0, 1}
	Blue    = Color{0, 0, 1, 1}
	Yellow  = Color{1, 1, 0, 1}
	Cyan    = Color{0, 1, 1, 1}
	Magenta = Color{1, 0, 1, 1}
)

// ColorFrom converts any image/color value.
func ColorFrom(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{
		R: float32(n.R) / 255,
		G: float32(n.G) / 255,
		B: float32(n.B) / 255,
		A: float32(n.A) / 255,
	}
}

// RGBA8 returns c as an 8-bit straight-alpha colour.
func (c Color) RGBA8() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R)*255 + 0.5),
		G: uint8(clamp01(c.G)*255 + 0.5),
		B: uint8(clamp01(c.B)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

// ParseColor accepts an SVG colour name ("cornflowerblue") or any CSS colour
// syntax: "#rgb", "#rrggbb", "#rrggbbaa", "rgb()", "hsl()" and so on.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return Color{}, fmt.Errorf("render: empty colour")
	}
	if c, ok := colornames.Map[s]; ok {
		return ColorFrom(c), nil
	}
	c, err := csscolorparser.Parse(s)
	if err != nil {
		return Color{}, fmt.Errorf("render: parse colour %q: %w", s, err)
	}
	r, g, b, a := c.RGBA255()
	return ColorFrom(color.NRGBA{R: r, G: g, B: b, A: a}), nil
}

func clamp01(f float32) float32 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
