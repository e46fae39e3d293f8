package scenes

import (
	"fmt"
	"strconv"

	"github.com/decker502/mathtd/pkg/config"
	"github.com/decker502/mathtd/pkg/systems"
	"github.com/decker502/mathtd/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Draw renders the path, tower, monsters and HUD.
func (s *GameScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	if !s.visible {
		return
	}

	s.drawPath(screen)
	s.drawTower(screen)
	s.drawMonsters(screen)
	s.drawHUD(screen)
	s.drawQuestionBox(screen)
	s.drawKeypad(screen)

	if s.controller.IsPaused() {
		vector.DrawFilledRect(screen, 0, 0, config.GameWindowWidth, config.GameWindowHeight, colorOverlay, false)
		drawCenteredText(screen, "PAUSED", config.GameWindowWidth/2, 200, 4, colorText)
		drawCenteredText(screen, "Press P to resume", config.GameWindowWidth/2, 270, 1.5, colorDimText)
	}
}

func (s *GameScene) drawPath(screen *ebiten.Image) {
	path := config.MonsterPath
	for i := 1; i < len(path); i++ {
		vector.StrokeLine(screen,
			float32(path[i-1].X), float32(path[i-1].Y),
			float32(path[i].X), float32(path[i].Y),
			28, colorPath, true)
	}
}

func (s *GameScene) drawTower(screen *ebiten.Image) {
	const size = 50
	x := float32(config.TowerX - size/2)
	y := float32(config.TowerY - size/2)
	vector.DrawFilledRect(screen, x, y, size, size, colorTower, false)
	vector.StrokeRect(screen, x, y, size, size, 2, colorText, false)

	// 塔的血条
	ratio := 0.0
	if s.maxHealth > 0 {
		ratio = float64(s.health) / float64(s.maxHealth)
	}
	barColor := utils.LerpColor(systems.ColorWrong, systems.ColorCorrect, ratio)
	vector.DrawFilledRect(screen, x, y-12, size, 6, colorPanel, false)
	vector.DrawFilledRect(screen, x, y-12, float32(size*ratio), 6, barColor, false)
}

func (s *GameScene) drawMonsters(screen *ebiten.Image) {
	var activeID = -1
	if active := s.controller.State().GetCurrentActiveMonster(); active != nil {
		activeID = active.ID
	}

	for _, id := range s.order {
		v := s.visuals[id]
		x, y := utils.PointAlongPath(config.MonsterPath, v.progress)

		fill := colorMonster
		if id == activeID {
			vector.DrawFilledCircle(screen, float32(x), float32(y), config.MonsterRadius+4, colorActive, true)
		}
		vector.DrawFilledCircle(screen, float32(x), float32(y), config.MonsterRadius, fill, true)
		drawCenteredText(screen, strconv.Itoa(id), x, y-6, 1, colorText)
	}
}

func (s *GameScene) drawHUD(screen *ebiten.Image) {
	drawText(screen, fmt.Sprintf("Health: %d/%d", s.health, s.maxHealth), 20, 16, 1.5, colorText)
	drawText(screen, fmt.Sprintf("Round: %d", s.round), 250, 16, 1.5, colorText)
	drawText(screen, fmt.Sprintf("[H] Heal: %d", s.healCount), 430, 16, 1.5, colorText)
	drawText(screen, fmt.Sprintf("[S] Time Slow: %d", s.slowCount), 600, 16, 1.5, colorText)
	drawText(screen, "[P] Pause", 820, 16, 1.5, colorDimText)
}

func (s *GameScene) drawQuestionBox(screen *ebiten.Image) {
	x := float32(config.QuestionBoxX)
	y := float32(config.QuestionBoxY)
	w := float32(config.QuestionBoxWidth)
	h := float32(config.QuestionBoxHeight)

	vector.DrawFilledRect(screen, x, y, w, h, s.QuestionBoxColor(), false)
	vector.StrokeRect(screen, x, y, w, h, 2, colorPanel, false)

	drawText(screen, s.prompt, config.QuestionBoxX+16, config.QuestionBoxY+10, 2, colorPromptText)

	answer := s.input.Component()
	if answer.Text == "" {
		drawText(screen, "> "+answer.Placeholder, config.QuestionBoxX+16, config.QuestionBoxY+40, 1.5, colorDimText)
		return
	}
	line := "> " + answer.Text
	if answer.CursorVisible {
		line += "_"
	}
	drawText(screen, line, config.QuestionBoxX+16, config.QuestionBoxY+40, 1.5, colorPromptText)
}

func (s *GameScene) drawKeypad(screen *ebiten.Image) {
	if !s.keypad.IsVisible() {
		return
	}

	pressed := s.keypad.Component().PressedKey
	for _, key := range s.keypad.Keys() {
		fill := colorPanel
		if key.Action == pressed {
			fill = colorHighlight
		}
		vector.DrawFilledRect(screen, float32(key.X), float32(key.Y), float32(key.Width), float32(key.Height), fill, false)
		drawCenteredText(screen, key.Label, key.X+key.Width/2, key.Y+key.Height/2-10, 1.5, colorText)
	}
}
