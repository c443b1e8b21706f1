package render

// Vertex layouts. Sprite vertices carry the per-slot transform so a batch can
// be drawn without CPU-side matrix work; char vertices are already laid out.
const (
	// local x, y | world x, y | size w, h | rotation | texture unit | u, v | alpha
	SpriteVertexFloats = 11
	// x, y | u, v
	CharVertexFloats = 4

	SpriteQuadFloats = SpriteVertexFloats * 4
	CharQuadFloats   = CharVertexFloats * 4

	IndicesPerQuad = 6
)

var quadIndices = buildQuadIndices(max(SpriteBatchSlotLimit, CharBatchSlotLimit))

func buildQuadIndices(quadCount int) []uint16 {
	indices := make([]uint16, quadCount*IndicesPerQuad)
	for i := 0; i < quadCount; i++ {
		v := uint16(i * 4)
		indices[i*6+0] = v + 0
		indices[i*6+1] = v + 1
		indices[i*6+2] = v + 2
		indices[i*6+3] = v + 2
		indices[i*6+4] = v + 3
		indices[i*6+5] = v + 0
	}
	return indices
}

// QuadIndices returns the shared index list for n quads (two triangles per
// quad, corners in TL, TR, BR, BL order). The slice must not be modified.
func QuadIndices(n int) []uint16 {
	return quadIndices[:n*IndicesPerQuad]
}
