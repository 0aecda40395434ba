package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	seed := flag.Int64("seed", 0, "spawn picker seed (0 seeds from the clock)")
	script := flag.String("script", "", "tengo spawn picker in prefabs/scripts (basename, .tengo optional)")
	sceneName := flag.String("scene", "", "scene spec in prefabs/ (defaults to scene.yaml)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle("shapefall")

	game, err := NewGame(Options{
		Scene:  *sceneName,
		Script: *script,
		Seed:   *seed,
		Debug:  *debug,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := game.Close(); err != nil {
			log.Printf("close: %v", err)
		}
	}()

	if err := ebiten.RunGame(game); err != nil {
		log.Print(err)
	}
}
