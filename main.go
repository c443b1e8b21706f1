package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/quadbatch/config"
	"github.com/milk9111/quadbatch/render"
	"github.com/milk9111/quadbatch/scene"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging and the FPS overlay")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	configName := flag.String("config", config.DefaultName, "renderer config (.yaml, .yml or .toml)")
	sceneName := flag.String("scene", scene.DefaultScript, "scene script in scene/scripts/ (basename, .tengo optional)")
	watch := flag.Bool("watch", false, "reload config and scene scripts when they change on disk")
	flag.Parse()

	if *debug {
		render.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	game, err := NewGame(Options{
		ConfigName: *configName,
		SceneName:  *sceneName,
		Debug:      *debug,
		Watch:      *watch,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	size := game.WindowSize()
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(size.X, size.Y)
	ebiten.SetWindowTitle(game.Title())

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
