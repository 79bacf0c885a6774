package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/cdebost/nesem/internal/console"
	"github.com/cdebost/nesem/internal/display"
	"github.com/cdebost/nesem/internal/ppu"
)

func runGUI(c *console.Console, scale int) {
	ebiten.SetWindowSize(ppu.Width*scale, ppu.Height*scale)
	ebiten.SetWindowTitle("nesem")
	if err := ebiten.RunGame(display.NewGame(c, scale)); err != nil {
		log.Fatalf("nesem: %v", err)
	}
}
