package render

// Texture is an opaque GPU texture handle. Only the Device that draws with it
// knows its concrete type.
type Texture any

// Assets supplies textures and font data by index.
type Assets interface {
	Texture(index int) Texture
	TextureSize(index int) Vec2i
	FontTexture(fontIndex int) Texture
	FontMetrics(fontIndex int) *FontMetrics
}

// VertexBuffer is GPU-visible vertex storage for a fixed number of quads.
// Offsets and lengths are in float32 units.
type VertexBuffer interface {
	Write(offset int, data []float32)
	Zero()
	Release()
}

// SpriteDraw is one indexed draw of a sprite batch. Textures has one entry
// per texture unit; units with no references are nil.
type SpriteDraw struct {
	Vertices   VertexBuffer
	Textures   []Texture
	IndexCount int
	View       Mat4
	Projection Mat4
}

// CharDraw is one indexed draw of a char batch.
type CharDraw struct {
	Vertices   VertexBuffer
	Font       Texture
	IndexCount int
	Position   Vec2
	Rotation   float32
	Blend      Color
	View       Mat4
	Projection Mat4
}

// Device is the graphics backend the renderer submits to.
type Device interface {
	// MaxTextureUnits reports how many textures one draw may sample.
	MaxTextureUnits() int
	NewVertexBuffer(floatsPerQuad, quadCount int) VertexBuffer
	Clear(c Color)
	DrawSprites(d SpriteDraw)
	DrawChars(d CharDraw)
}
