package scenes

import (
	"github.com/decker502/mathtd/pkg/config"
	"github.com/decker502/mathtd/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var helpLines = []string{
	"Monsters walk along the path toward your tower.",
	"Each visible monster carries an equation. Solve for x and press Enter.",
	"A correct answer removes the first monster on the path.",
	"Every monster that reaches the tower costs 10 health.",
	"Clear all monsters to advance to the next round. Questions get harder.",
	"",
	"H  - drink a Heal Potion (+20 health)",
	"S  - drink a Time Slow Potion (monsters at 20% speed for 5 seconds)",
	"P  - pause / resume",
	"",
	"Win potions in the Potion Minigame: answer 70% of 10 questions correctly.",
}

// HelpScene shows the rules.
type HelpScene struct {
	switcher game.ScreenSwitcher
}

// NewHelpScene creates the help screen.
func NewHelpScene(switcher game.ScreenSwitcher) *HelpScene {
	return &HelpScene{switcher: switcher}
}

// Update returns to the menu on Escape or Enter.
func (h *HelpScene) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		h.switcher.SwitchToScreen(game.Screen{Type: game.ScreenMenu})
	}
}

// Draw renders the rules.
func (h *HelpScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	drawCenteredText(screen, "HOW TO PLAY", config.GameWindowWidth/2, 40, 3, colorText)
	for i, line := range helpLines {
		drawText(screen, line, 80, 120+float64(i)*30, 1.5, colorText)
	}
	drawCenteredText(screen, "Press Enter to return", config.GameWindowWidth/2, 500, 1.5, colorDimText)
}
