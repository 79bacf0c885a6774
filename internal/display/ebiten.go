package display

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/cdebost/nesem/internal/console"
	"github.com/cdebost/nesem/internal/input"
	"github.com/cdebost/nesem/internal/ppu"
)

// KeyMap binds host keyboard keys to controller-1 buttons.
type KeyMap map[ebiten.Key]input.Button

// DefaultKeyMap is a reasonable default keyboard layout.
var DefaultKeyMap = KeyMap{
	ebiten.KeyZ:         input.ButtonA,
	ebiten.KeyX:         input.ButtonB,
	ebiten.KeyBackspace: input.ButtonSelect,
	ebiten.KeyEnter:     input.ButtonStart,
	ebiten.KeyUp:        input.ButtonUp,
	ebiten.KeyDown:      input.ButtonDown,
	ebiten.KeyLeft:      input.ButtonLeft,
	ebiten.KeyRight:     input.ButtonRight,
}

// Game implements ebiten.Game, stepping the console once per CPU
// cycle budget and presenting its PPU framebuffer every frame.
type Game struct {
	console *console.Console
	keys    KeyMap
	scale   int

	img *image.RGBA
}

// NewGame returns a Game driving c, rendered at the given integer
// pixel scale.
func NewGame(c *console.Console, scale int) *Game {
	return &Game{
		console: c,
		keys:    DefaultKeyMap,
		scale:   scale,
		img:     image.NewRGBA(image.Rect(0, 0, ppu.Width, ppu.Height)),
	}
}

// cyclesPerFrame approximates the CPU cycles in one NTSC frame
// (29780.5, rounded) so Update advances roughly one frame per call.
const cyclesPerFrame = 29781

func (g *Game) Update() error {
	g.pollInput()

	target := g.console.CPU.Cycles + cyclesPerFrame
	for g.console.CPU.Cycles < target {
		g.console.Step()
	}
	return nil
}

func (g *Game) pollInput() {
	for key, button := range g.keys {
		g.console.Pad1.SetButton(button, ebiten.IsKeyPressed(key))
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	frame := g.console.PPU.Frame
	for i, idx := range frame {
		c := NESPalette[idx&0x3F]
		o := i * 4
		g.img.Pix[o] = c.R
		g.img.Pix[o+1] = c.G
		g.img.Pix[o+2] = c.B
		g.img.Pix[o+3] = c.A
	}
	screen.WritePixels(g.img.Pix)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ppu.Width * g.scale, ppu.Height * g.scale
}
