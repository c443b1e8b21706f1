package render

// Camera positions the camera-transformed layers. Pos is the world point
// shown at the window centre.
type Camera struct {
	Pos   Vec2
	scale float32
}

func NewCamera(pos Vec2, scale float32) Camera {
	c := Camera{Pos: pos}
	c.SetScale(scale)
	return c
}

// Scale returns the zoom factor, never below 1.
func (c Camera) Scale() float32 {
	if c.scale < 1 {
		return 1
	}
	return c.scale
}

// SetScale sets the zoom factor, clamped to at least 1.
func (c *Camera) SetScale(s float32) {
	if s < 1 {
		s = 1
	}
	c.scale = s
}

// View returns the matrix taking world coordinates to window pixels.
func (c Camera) View(window Vec2i) Mat4 {
	s := c.Scale()
	m := Identity()
	m[0][0] = s
	m[1][1] = s
	m[3][0] = -c.Pos.X*s + float32(window.X)/2
	m[3][1] = -c.Pos.Y*s + float32(window.Y)/2
	return m
}

// ToScreen converts a world position to window pixels.
func (c Camera) ToScreen(p Vec2, window Vec2i) Vec2 {
	return c.View(window).Apply(p)
}

// ToWorld converts window pixels to a world position.
func (c Camera) ToWorld(p Vec2, window Vec2i) Vec2 {
	half := Vec2{float32(window.X) / 2, float32(window.Y) / 2}
	return p.Sub(half).Scale(1 / c.Scale()).Add(c.Pos)
}
