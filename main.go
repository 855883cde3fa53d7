package main

import (
	"log"

	"voxelcast/internal/config"
	"voxelcast/internal/demo"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	// Load configuration
	cfg := config.MustLoadConfig("config.yaml")

	scale := cfg.Display.WindowScale
	if scale < 1 {
		scale = 1
	}
	ebiten.SetWindowSize(cfg.GetScreenWidth()*scale, cfg.GetScreenHeight()*scale)
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	g := demo.NewGame(cfg)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
