package ebitengfx

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/quadbatch/render"
)

// appendSpriteVertices appends the quads of a sprite batch that sample
// through unit. Cleared slots (zero size) are dropped.
func appendSpriteVertices(dst []ebiten.Vertex, data []float32, quads, unit int, view render.Mat4, texSize image.Point) []ebiten.Vertex {
	tw, th := float32(texSize.X), float32(texSize.Y)
	for q := 0; q < quads; q++ {
		quad := data[q*render.SpriteQuadFloats : (q+1)*render.SpriteQuadFloats]
		w, h := quad[4], quad[5]
		if w == 0 && h == 0 {
			continue
		}
		if int(quad[7]) != unit {
			continue
		}

		// rotation and world position are the same on all four vertices
		var geo ebiten.GeoM
		geo.Rotate(float64(quad[6]))
		geo.Translate(float64(quad[2]), float64(quad[3]))
		geo.Concat(viewGeoM(view))

		for v := 0; v < 4; v++ {
			f := quad[v*render.SpriteVertexFloats : (v+1)*render.SpriteVertexFloats]
			dst = appendVertex(dst, &geo, f[0]*w, f[1]*h, f[8]*tw, f[9]*th, render.Color{R: 1, G: 1, B: 1, A: f[10]})
		}
	}
	return dst
}

// appendCharVertices appends the visible glyph quads of a char batch,
// placed by the batch's position and rotation.
func appendCharVertices(dst []ebiten.Vertex, data []float32, quads int, c render.CharDraw, texSize image.Point) []ebiten.Vertex {
	tw, th := float32(texSize.X), float32(texSize.Y)

	var geo ebiten.GeoM
	geo.Rotate(float64(c.Rotation))
	geo.Translate(float64(c.Position.X), float64(c.Position.Y))
	geo.Concat(viewGeoM(c.View))

	for q := 0; q < quads; q++ {
		quad := data[q*render.CharQuadFloats : (q+1)*render.CharQuadFloats]
		// TL and BR coincide for empty slots (spaces, newlines).
		if quad[0] == quad[8] && quad[1] == quad[9] {
			continue
		}

		for v := 0; v < 4; v++ {
			f := quad[v*render.CharVertexFloats : (v+1)*render.CharVertexFloats]
			dst = appendVertex(dst, &geo, f[0], f[1], f[2]*tw, f[3]*th, c.Blend)
		}
	}
	return dst
}

// viewGeoM converts the 2D affine part of a column-major view matrix.
func viewGeoM(m render.Mat4) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, float64(m[0][0]))
	g.SetElement(0, 1, float64(m[1][0]))
	g.SetElement(0, 2, float64(m[3][0]))
	g.SetElement(1, 0, float64(m[0][1]))
	g.SetElement(1, 1, float64(m[1][1]))
	g.SetElement(1, 2, float64(m[3][1]))
	return g
}

func appendVertex(dst []ebiten.Vertex, geo *ebiten.GeoM, x, y, sx, sy float32, c render.Color) []ebiten.Vertex {
	dx, dy := geo.Apply(float64(x), float64(y))
	return append(dst, ebiten.Vertex{
		DstX:   float32(dx),
		DstY:   float32(dy),
		SrcX:   sx,
		SrcY:   sy,
		ColorR: c.R,
		ColorG: c.G,
		ColorB: c.B,
		ColorA: c.A,
	})
}
