// Command fontatlas bakes a font into the atlas image and glyph metrics the
// renderer draws text with, and writes both out for inspection.
package main

import (
	"flag"
	"image/png"
	"log"
	"os"

	"github.com/milk9111/quadbatch/assets"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"gopkg.in/yaml.v3"
)

func main() {
	fontPath := flag.String("font", "", "TrueType/OpenType file (default: Go Regular)")
	size := flag.Float64("size", 24, "point size")
	dpi := flag.Float64("dpi", 72, "dots per inch")
	fixed := flag.Bool("fixed", false, "bake the built-in 7x13 bitmap face instead of a TrueType font")
	out := flag.String("out", "atlas.png", "atlas PNG output path")
	metricsOut := flag.String("metrics", "atlas.yaml", "metrics YAML output path (empty to skip)")
	flag.Parse()

	f, err := bake(*fontPath, *size, *dpi, *fixed)
	if err != nil {
		log.Fatalf("fontatlas: %v", err)
	}

	if err := writePNG(*out, f); err != nil {
		log.Fatalf("fontatlas: write %s: %v", *out, err)
	}
	log.Printf("wrote %s (%dx%d)", *out, f.Metrics.TextureSize.X, f.Metrics.TextureSize.Y)

	if *metricsOut == "" {
		return
	}
	data, err := yaml.Marshal(metricsDoc(f.Metrics))
	if err != nil {
		log.Fatalf("fontatlas: marshal metrics: %v", err)
	}
	if err := os.WriteFile(*metricsOut, data, 0o644); err != nil {
		log.Fatalf("fontatlas: write %s: %v", *metricsOut, err)
	}
	log.Printf("wrote %s", *metricsOut)
}

func bake(path string, size, dpi float64, fixed bool) (*assets.Font, error) {
	switch {
	case fixed:
		return assets.BuildFont(basicfont.Face7x13)
	case path == "":
		return assets.LoadFont(goregular.TTF, size, dpi)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return assets.LoadFont(data, size, dpi)
}

func writePNG(path string, f *assets.Font) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(file, f.Atlas); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
