package main

import "github.com/milk9111/quadbatch/render"

type glyphDoc struct {
	Char       string `yaml:"char"`
	HorOffset  int    `yaml:"hor_offset"`
	VerOffset  int    `yaml:"ver_offset"`
	HorAdvance int    `yaml:"hor_advance"`
	Src        [4]int `yaml:"src,flow"`
}

type kerningDoc struct {
	Pair   string `yaml:"pair"`
	Offset int    `yaml:"offset"`
}

type metricsDocument struct {
	LineHeight int          `yaml:"line_height"`
	Texture    [2]int       `yaml:"texture,flow"`
	Glyphs     []glyphDoc   `yaml:"glyphs"`
	Kerning    []kerningDoc `yaml:"kerning,omitempty"`
}

// metricsDoc flattens font metrics for YAML. Only non-zero kerning pairs are
// listed.
func metricsDoc(m *render.FontMetrics) metricsDocument {
	doc := metricsDocument{
		LineHeight: m.LineHeight,
		Texture:    [2]int{m.TextureSize.X, m.TextureSize.Y},
		Glyphs:     make([]glyphDoc, 0, render.CharRangeSize),
	}
	for i, g := range m.Glyphs {
		doc.Glyphs = append(doc.Glyphs, glyphDoc{
			Char:       string(rune(render.CharRangeBegin + i)),
			HorOffset:  g.HorOffset,
			VerOffset:  g.VerOffset,
			HorAdvance: g.HorAdvance,
			Src:        [4]int{g.Src.X, g.Src.Y, g.Src.Width, g.Src.Height},
		})
	}
	for prev := 0; prev < render.CharRangeSize; prev++ {
		for cur := 0; cur < render.CharRangeSize; cur++ {
			if k := m.Kerning(prev, cur); k != 0 {
				doc.Kerning = append(doc.Kerning, kerningDoc{
					Pair:   string(rune(render.CharRangeBegin+prev)) + string(rune(render.CharRangeBegin+cur)),
					Offset: k,
				})
			}
		}
	}
	return doc
}
