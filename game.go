package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/quadbatch/assets"
	"github.com/milk9111/quadbatch/config"
	"github.com/milk9111/quadbatch/ebitengfx"
	"github.com/milk9111/quadbatch/render"
	"github.com/milk9111/quadbatch/scene"
)

type Options struct {
	ConfigName string
	SceneName  string
	Debug      bool
	Watch      bool
}

type Game struct {
	opts Options
	spec *config.RendererSpec

	dev      *ebitengfx.Device
	lib      *assets.Library
	renderer *render.Renderer
	scene    *scene.Scene
	watcher  *config.Watcher

	window    render.Vec2i
	configMod time.Time
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewGame(opts Options) (*Game, error) {
	spec, err := config.LoadRendererSpec(opts.ConfigName)
	if err != nil {
		return nil, err
	}

	lib := assets.NewLibrary(nil)
	if err := spec.LoadAssets(lib); err != nil {
		return nil, err
	}

	dev := ebitengfx.NewDevice(ebitengfx.DefaultTextureUnits)
	r := render.NewRenderer(dev, lib)
	if err := spec.Apply(r); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	g := &Game{
		opts:     opts,
		spec:     spec,
		dev:      dev,
		lib:      lib,
		renderer: r,
		window:   spec.WindowSize(),
		ctx:      ctx,
		cancel:   cancel,
	}
	g.configMod, _ = config.ModTime(opts.ConfigName)

	g.scene, err = scene.Load(opts.SceneName, r, lib)
	if err != nil {
		g.Close()
		return nil, err
	}

	if opts.Watch {
		g.watcher, err = config.NewWatcher("config", "scene/scripts")
		if err != nil {
			log.Printf("watch disabled: %v", err)
		}
	}
	return g, nil
}

func (g *Game) WindowSize() render.Vec2i { return g.spec.WindowSize() }

func (g *Game) Title() string {
	if g.spec.Window.Title == "" {
		return "quadbatch"
	}
	return g.spec.Window.Title
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reloadScene()
	}
	g.pollWatcher()

	dt := 1 / float64(ebiten.TPS())
	if err := g.scene.Tick(g.ctx, dt, g.window); err != nil {
		return err
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.dev.SetTarget(screen)
	g.renderer.Draw(g.window)

	if g.opts.Debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.2f  TPS: %.2f  frame: %d", ebiten.ActualFPS(), ebiten.ActualTPS(), g.scene.Frame()))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.window = render.Vec2i{X: outsideWidth, Y: outsideHeight}
	return outsideWidth, outsideHeight
}

// reloadScene compiles the scene again before releasing the old one, so a
// script with errors leaves the running scene untouched.
func (g *Game) reloadScene() {
	next, err := scene.Load(g.opts.SceneName, g.renderer, g.lib)
	if err != nil {
		log.Printf("reload %s: %v", g.opts.SceneName, err)
		return
	}
	if err := g.scene.Close(); err != nil {
		log.Printf("close %s: %v", g.scene.Name(), err)
	}
	g.scene = next
	render.Logger().Info("scene reloaded", "scene", next.Name())
}

func (g *Game) reloadConfig() {
	mod, changed := config.Changed(g.opts.ConfigName, g.configMod)
	if !changed {
		return
	}
	g.configMod = mod

	spec, err := config.LoadRendererSpec(g.opts.ConfigName)
	if err != nil {
		log.Printf("reload %s: %v", g.opts.ConfigName, err)
		return
	}
	if err := spec.ApplyLive(g.renderer); err != nil {
		log.Printf("apply %s: %v", g.opts.ConfigName, err)
		return
	}
	g.spec = spec
	render.Logger().Info("config reloaded", "config", g.opts.ConfigName)
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for _, name := range g.watcher.Poll() {
		switch {
		case config.IsScriptFile(name):
			g.reloadScene()
		case config.IsConfigFile(name):
			g.reloadConfig()
		}
	}
	select {
	case err := <-g.watcher.Errors:
		log.Printf("watch: %v", err)
	default:
	}
}

func (g *Game) Close() {
	g.cancel()
	var errs []error
	if g.watcher != nil {
		errs = append(errs, g.watcher.Close())
	}
	if g.scene != nil {
		errs = append(errs, g.scene.Close())
	}
	g.renderer.Close()
	if err := errors.Join(errs...); err != nil {
		log.Printf("close: %v", err)
	}
}
