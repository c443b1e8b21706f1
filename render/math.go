package render

import "github.com/chewxy/math32"

type Vec2 struct {
	X, Y float32
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Rotate rotates v around the origin by rad radians.
func (v Vec2) Rotate(rad float32) Vec2 {
	if rad == 0 {
		return v
	}
	s, c := math32.Sin(rad), math32.Cos(rad)
	return Vec2{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

type Vec2i struct {
	X, Y int
}

// Rect is an integer pixel rectangle, used for source rects in textures.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Mat4 is a column-major 4x4 matrix: m[col][row].
type Mat4 [4][4]float32

func Identity() Mat4 {
	var m Mat4
	m[0][0] = 1
	m[1][1] = 1
	m[2][2] = 1
	m[3][3] = 1
	return m
}

// Ortho builds an orthographic projection.
func Ortho(left, right, bottom, top, near, far float32) Mat4 {
	var m Mat4
	m[0][0] = 2 / (right - left)
	m[1][1] = 2 / (top - bottom)
	m[2][2] = -2 / (far - near)
	m[3][0] = -(right + left) / (right - left)
	m[3][1] = -(top + bottom) / (top - bottom)
	m[3][2] = -(far + near) / (far - near)
	m[3][3] = 1
	return m
}

// ScreenOrtho maps window pixel coordinates (y down) to clip space.
func ScreenOrtho(window Vec2i) Mat4 {
	return Ortho(0, float32(window.X), float32(window.Y), 0, -1, 1)
}

// Apply transforms the point (p.X, p.Y, 0, 1) and drops z and w.
func (m Mat4) Apply(p Vec2) Vec2 {
	return Vec2{
		X: m[0][0]*p.X + m[1][0]*p.Y + m[3][0],
		Y: m[0][1]*p.X + m[1][1]*p.Y + m[3][1],
	}
}
