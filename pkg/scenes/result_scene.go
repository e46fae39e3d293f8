package scenes

import (
	"fmt"
	"log"
	"time"

	"github.com/decker502/mathtd/pkg/config"
	"github.com/decker502/mathtd/pkg/game"
	"github.com/decker502/mathtd/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Result buttons
const (
	resultButtonWidth  = 200.0
	resultButtonHeight = 44.0
	resultButtonY      = 460.0
	resultButtonGap    = 40.0
)

// resultButton identifies a result screen button.
type resultButton int

const (
	resultButtonNone resultButton = iota
	resultButtonPlayAgain
	resultButtonMenu
)

// ResultScene is the game-over screen.
// It records the final round on the leaderboard and offers "play again" and "return to menu".
type ResultScene struct {
	switcher    game.ScreenSwitcher
	leaderboard *game.Leaderboard

	finalRound int
	entries    []game.LeaderboardEntry

	// now is replaceable in tests
	now func() time.Time
}

// NewResultScene creates the result screen.
func NewResultScene(switcher game.ScreenSwitcher, leaderboard *game.Leaderboard) *ResultScene {
	return &ResultScene{
		switcher:    switcher,
		leaderboard: leaderboard,
		now:         time.Now,
	}
}

// ShowResult records the run and refreshes the leaderboard.
func (r *ResultScene) ShowResult(finalRound int) {
	r.finalRound = finalRound
	if r.leaderboard == nil {
		log.Printf("[ResultScene] ERROR: Leaderboard not set!")
		r.entries = nil
		return
	}
	r.entries = r.leaderboard.Record(finalRound, r.now())
}

// FinalRound returns the round shown on the screen.
func (r *ResultScene) FinalRound() int {
	return r.finalRound
}

// Entries returns the leaderboard shown on the screen.
func (r *ResultScene) Entries() []game.LeaderboardEntry {
	return r.entries
}

// PlayAgain starts a new run.
func (r *ResultScene) PlayAgain() {
	r.switcher.SwitchToScreen(game.Screen{Type: game.ScreenGame})
}

// ReturnToMenu goes back to the title screen.
func (r *ResultScene) ReturnToMenu() {
	r.switcher.SwitchToScreen(game.Screen{Type: game.ScreenMenu})
}

// buttonRects returns the left edges of the two buttons.
func buttonRects() (playAgainX, menuX float64) {
	cx := float64(config.GameWindowWidth) / 2
	return cx - resultButtonGap/2 - resultButtonWidth, cx + resultButtonGap/2
}

// buttonAt returns the button under (x, y).
func (r *ResultScene) buttonAt(x, y float64) resultButton {
	playX, menuX := buttonRects()
	switch {
	case utils.PointInRect(x, y, playX, resultButtonY, resultButtonWidth, resultButtonHeight):
		return resultButtonPlayAgain
	case utils.PointInRect(x, y, menuX, resultButtonY, resultButtonWidth, resultButtonHeight):
		return resultButtonMenu
	}
	return resultButtonNone
}

// Update handles the two actions.
func (r *ResultScene) Update(deltaTime float64) {
	if pressed, x, y := utils.IsJustTouchedOrClicked(); pressed {
		switch r.buttonAt(float64(x), float64(y)) {
		case resultButtonPlayAgain:
			r.PlayAgain()
			return
		case resultButtonMenu:
			r.ReturnToMenu()
			return
		}
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeyR):
		r.PlayAgain()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyM):
		r.ReturnToMenu()
	}
}

// Draw renders the final round and the top scores.
func (r *ResultScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	cx := float64(config.GameWindowWidth) / 2

	drawCenteredText(screen, "GAME OVER", cx, 60, 4, colorText)
	drawCenteredText(screen, fmt.Sprintf("You reached round %d", r.finalRound), cx, 130, 2, colorHighlight)

	drawCenteredText(screen, "Top Rounds", cx, 190, 2, colorText)
	for i, entry := range r.entries {
		line := fmt.Sprintf("%d.  Round %-4d  %s", i+1, entry.Score, entry.Timestamp)
		drawCenteredText(screen, line, cx, 230+float64(i)*32, 1.5, colorText)
	}

	playX, menuX := buttonRects()
	vector.DrawFilledRect(screen, float32(playX), resultButtonY, resultButtonWidth, resultButtonHeight, colorPanel, false)
	vector.DrawFilledRect(screen, float32(menuX), resultButtonY, resultButtonWidth, resultButtonHeight, colorPanel, false)
	drawCenteredText(screen, "Play Again [Enter]", playX+resultButtonWidth/2, resultButtonY+14, 1.5, colorText)
	drawCenteredText(screen, "Menu [Esc]", menuX+resultButtonWidth/2, resultButtonY+14, 1.5, colorText)
}
