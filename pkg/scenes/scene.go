package scenes

import (
	"image/color"
	"math"

	"github.com/decker502/mathtd/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// Scene is a type alias for game.Scene to maintain backward compatibility.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

// Shared palette
var (
	colorBackground = color.RGBA{R: 0x1e, G: 0x27, B: 0x3a, A: 0xff}
	colorPanel      = color.RGBA{R: 0x2c, G: 0x3e, B: 0x50, A: 0xff}
	colorPath       = color.RGBA{R: 0xc8, G: 0xa9, B: 0x6e, A: 0xff}
	colorTower      = color.RGBA{R: 0x95, G: 0xa5, B: 0xa6, A: 0xff}
	colorMonster    = color.RGBA{R: 0x8e, G: 0x44, B: 0xad, A: 0xff}
	colorActive     = color.RGBA{R: 0xf1, G: 0xc4, B: 0x0f, A: 0xff}
	colorText       = color.RGBA{R: 0xec, G: 0xf0, B: 0xf1, A: 0xff}
	colorDimText    = color.RGBA{R: 0x95, G: 0xa5, B: 0xa6, A: 0xff}
	colorHighlight  = color.RGBA{R: 0xf3, G: 0x9c, B: 0x12, A: 0xff}
	colorOverlay    = color.RGBA{A: 0xa0}
	colorPromptText = color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}
)

// uiFace is the bitmap face used by every scene.
var uiFace = text.NewGoXFace(basicfont.Face7x13)

// drawText draws s with its top-left corner at (x, y), scaled by scale.
func drawText(screen *ebiten.Image, s string, x, y, scale float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, uiFace, op)
}

// drawCenteredText draws s horizontally centered on cx.
func drawCenteredText(screen *ebiten.Image, s string, cx, y, scale float64, clr color.Color) {
	w, _ := text.Measure(s, uiFace, 0)
	drawText(screen, s, cx-w*scale/2, y, scale, clr)
}

// sinTurns returns sin(2π·turns).
func sinTurns(turns float64) float64 {
	return math.Sin(2 * math.Pi * turns)
}
