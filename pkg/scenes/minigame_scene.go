package scenes

import (
	"fmt"
	"image/color"
	"math/rand"

	"github.com/decker502/mathtd/pkg/config"
	"github.com/decker502/mathtd/pkg/game"
	"github.com/decker502/mathtd/pkg/systems"
	"github.com/decker502/mathtd/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// answerKeys maps number keys to option indices.
var answerKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4}

// Option button layout
const (
	optionWidth  = 400.0
	optionHeight = 46.0
	optionTop    = 200.0
	optionStep   = 60.0
)

// MinigameScene is the potion minigame screen.
// It implements systems.MinigameView; keys 1-4 choose an option, Escape returns to the menu.
type MinigameScene struct {
	controller *systems.MinigameController

	question       game.MinigameQuestion
	options        []game.MinigameOption
	score          int
	questionNumber int
	maxQuestions   int
	enabled        bool

	// Answer feedback (-1 = none)
	selected int
	correct  int

	feedback      string
	feedbackColor color.Color
}

// NewMinigameScene creates the minigame scene and its controller.
func NewMinigameScene(cfg config.MinigameConfig, switcher game.ScreenSwitcher, potions systems.PotionAwarder, rng *rand.Rand) *MinigameScene {
	s := &MinigameScene{
		selected: -1,
		correct:  -1,
	}
	s.controller = systems.NewMinigameController(cfg, s, switcher, potions, rng)
	return s
}

// Controller returns the scene's MinigameController.
func (s *MinigameScene) Controller() *systems.MinigameController {
	return s.controller
}

// Show starts a fresh minigame.
func (s *MinigameScene) Show() {
	s.feedback = ""
	s.controller.Show()
}

// Hide cancels pending feedback when the scene is switched away.
func (s *MinigameScene) Hide() {
	s.controller.Hide()
}

// Update handles option keys and advances the feedback timers.
func (s *MinigameScene) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.controller.BackToMenu()
		return
	}
	for i, key := range answerKeys {
		if inpututil.IsKeyJustPressed(key) {
			s.controller.HandleAnswer(i)
			break
		}
	}
	if pressed, x, y := utils.IsJustTouchedOrClicked(); pressed {
		if i := s.OptionAt(float64(x), float64(y)); i >= 0 {
			s.controller.HandleAnswer(i)
		}
	}
	s.controller.Update(deltaTime)
}

// OptionAt returns the option button under (x, y), or -1.
func (s *MinigameScene) OptionAt(x, y float64) int {
	left := float64(config.GameWindowWidth)/2 - optionWidth/2
	for i := range s.options {
		if utils.PointInRect(x, y, left, optionTop+float64(i)*optionStep, optionWidth, optionHeight) {
			return i
		}
	}
	return -1
}

// Draw renders the question, options, scoreboard and feedback.
func (s *MinigameScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	cx := float64(config.GameWindowWidth) / 2

	drawCenteredText(screen, fmt.Sprintf("Question %d/%d    Score: %d", s.questionNumber, s.maxQuestions, s.score), cx, 30, 1.5, colorDimText)

	// 题干：前缀 + 高亮表达式 + 后缀
	full := s.question.Prefix + s.question.Highlighted + s.question.Suffix
	drawCenteredText(screen, full, cx, 90, 2, colorText)
	drawCenteredText(screen, s.question.Highlighted, cx, 130, 3, colorHighlight)

	for i, opt := range s.options {
		y := optionTop + float64(i)*optionStep
		panel := colorPanel
		switch {
		case i == s.correct:
			panel = systems.ColorFeedbackGood
		case i == s.selected:
			panel = systems.ColorFeedbackBad
		}
		vector.DrawFilledRect(screen, float32(cx-optionWidth/2), float32(y), optionWidth, optionHeight, panel, false)

		labelColor := colorText
		if !s.enabled && i != s.correct && i != s.selected {
			labelColor = colorDimText
		}
		drawCenteredText(screen, fmt.Sprintf("%d)  %s", i+1, opt.Label), cx, y+14, 2, labelColor)
	}

	if s.feedback != "" {
		drawCenteredText(screen, s.feedback, cx, 460, 2, s.feedbackColor)
	}
	drawCenteredText(screen, "Keys 1-4 to answer, Esc for menu", cx, 510, 1, colorDimText)
}

// UpdateQuestion implements systems.MinigameView.
func (s *MinigameScene) UpdateQuestion(q game.MinigameQuestion) {
	s.question = q
}

// UpdateAnswers implements systems.MinigameView.
func (s *MinigameScene) UpdateAnswers(options []game.MinigameOption) {
	s.options = options
	s.selected = -1
	s.correct = -1
	s.feedback = ""
}

// UpdateScoreboard implements systems.MinigameView.
func (s *MinigameScene) UpdateScoreboard(score, questionNumber, maxQuestions int) {
	s.score = score
	s.questionNumber = questionNumber
	s.maxQuestions = maxQuestions
}

// SetButtonsEnabled implements systems.MinigameView.
func (s *MinigameScene) SetButtonsEnabled(enabled bool) {
	s.enabled = enabled
}

// ShowAnswerFeedback implements systems.MinigameView.
func (s *MinigameScene) ShowAnswerFeedback(selected, correct int) {
	s.selected = selected
	s.correct = correct
}

// ShowFeedback implements systems.MinigameView.
func (s *MinigameScene) ShowFeedback(message string, c color.Color) {
	s.feedback = message
	s.feedbackColor = c
}
