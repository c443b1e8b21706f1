// Command sheetview plays a sprite sheet through the batch renderer, one
// sprite slot whose source rectangle steps across the sheet's frames.
package main

import (
	"flag"
	"fmt"
	"image"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/quadbatch/assets"
	"github.com/milk9111/quadbatch/ebitengfx"
	"github.com/milk9111/quadbatch/render"
)

const windowSize = 512

type viewer struct {
	dev      *ebitengfx.Device
	renderer *render.Renderer
	slot     render.SlotKey
	label    render.CharBatchKey

	anim  *animation
	scale float32
}

func (v *viewer) Update() error {
	if v.anim.step() {
		if err := v.write(); err != nil {
			return err
		}
	}
	return nil
}

func (v *viewer) write() error {
	w := render.NewSpriteWrite(render.Vec2{}, v.anim.src())
	w.Scale = render.Vec2{X: v.scale, Y: v.scale}
	if err := v.renderer.WriteSlot(v.slot, w); err != nil {
		return err
	}
	text := fmt.Sprintf("frame %d/%d", v.anim.current+1, len(v.anim.frames))
	return v.renderer.WriteText(v.label, text, render.HAlignCenter, render.VAlignTop)
}

func (v *viewer) Draw(screen *ebiten.Image) {
	v.dev.SetTarget(screen)
	v.renderer.Draw(render.Vec2i{X: windowSize, Y: windowSize})
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return windowSize, windowSize
}

func newViewer(path string, frameW, frameH, count, fps int, scale float64) (*viewer, error) {
	img, err := assets.DecodeImage(path)
	if err != nil {
		return nil, err
	}
	frames := sheetFrames(img.Bounds().Size(), frameW, frameH, count)
	if len(frames) == 0 {
		return nil, fmt.Errorf("sheetview: %s has no %dx%d frames", path, frameW, frameH)
	}

	lib := assets.NewLibrary(nil)
	tex := lib.AddImage(path, img)
	font, err := assets.DefaultFont(16)
	if err != nil {
		return nil, err
	}
	lib.AddFont("default", font)

	dev := ebitengfx.NewDevice(ebitengfx.DefaultTextureUnits)
	r := render.NewRenderer(dev, lib,
		render.WithCamLayerCount(1),
		render.WithBackground(render.Black),
	)
	if err := r.AddLayer("sheet", render.LayerOptions{SpriteBatchSlotCount: 8, CharBatchLimit: 1}); err != nil {
		return nil, err
	}
	if err := r.LockLayers(); err != nil {
		return nil, err
	}

	slot, err := r.TakeSpriteSlot("sheet", tex)
	if err != nil {
		return nil, err
	}
	label, err := r.AddCharBatch("sheet", 32, 0, render.Vec2{Y: float32(frameH) * float32(scale) / 2})
	if err != nil {
		return nil, err
	}

	v := &viewer{
		dev:      dev,
		renderer: r,
		slot:     slot,
		label:    label,
		anim:     newAnimation(frames, fps),
		scale:    float32(scale),
	}
	return v, v.write()
}

func main() {
	path := flag.String("sheet", "textures/tiles.png", "sprite sheet image (embedded asset or file)")
	frameW := flag.Int("w", 16, "frame width")
	frameH := flag.Int("h", 16, "frame height")
	count := flag.Int("n", 0, "frame count (0 for every frame in the sheet)")
	fps := flag.Int("fps", 4, "frames per second")
	scale := flag.Float64("scale", 8, "display scale")
	flag.Parse()

	v, err := newViewer(*path, *frameW, *frameH, *count, *fps, *scale)
	if err != nil {
		log.Fatal(err)
	}
	defer v.renderer.Close()

	ebiten.SetWindowSize(windowSize, windowSize)
	ebiten.SetWindowTitle("Sprite Sheet Viewer")
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}

// sheetFrames cuts a sheet into frames row by row.
func sheetFrames(size image.Point, frameW, frameH, count int) []render.Rect {
	if frameW <= 0 || frameH <= 0 {
		return nil
	}
	cols := size.X / frameW
	rows := size.Y / frameH
	maxFrames := cols * rows
	if count <= 0 || count > maxFrames {
		count = maxFrames
	}
	frames := make([]render.Rect, count)
	for i := range frames {
		frames[i] = render.Rect{X: (i % cols) * frameW, Y: (i / cols) * frameH, Width: frameW, Height: frameH}
	}
	return frames
}

type animation struct {
	frames      []render.Rect
	current     int
	tick        int
	ticksPerFrm int
}

func newAnimation(frames []render.Rect, fps int) *animation {
	ticks := 1
	if fps > 0 {
		ticks = max(60/fps, 1)
	}
	return &animation{frames: frames, ticksPerFrm: ticks}
}

// step advances one tick and reports whether the frame changed.
func (a *animation) step() bool {
	if len(a.frames) <= 1 {
		return false
	}
	a.tick++
	if a.tick < a.ticksPerFrm {
		return false
	}
	a.tick = 0
	a.current = (a.current + 1) % len(a.frames)
	return true
}

func (a *animation) src() render.Rect {
	return a.frames[a.current]
}
