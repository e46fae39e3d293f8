package scenes

import (
	"image/color"
	"log"
	"math/rand"
	"time"

	"github.com/decker502/mathtd/pkg/config"
	"github.com/decker502/mathtd/pkg/game"
	"github.com/decker502/mathtd/pkg/systems"
	"github.com/decker502/mathtd/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// maxAnswerLength limits the answer input field.
const maxAnswerLength = 6

// monsterVisual is the on-screen state of one spawned monster.
type monsterVisual struct {
	id         int
	progress   float64
	speed      float64
	onReachEnd func()
}

// GameScene is the main gameplay screen.
// It implements systems.RoundView (monster animation, HUD) and
// systems.GameOverHandler, and feeds keyboard input to the RoundController.
type GameScene struct {
	switcher   game.ScreenSwitcher
	controller *systems.RoundController
	input      *systems.AnswerInputSystem
	keypad     *systems.VirtualKeypadSystem

	// Monster visuals, drawn in spawn order
	visuals        map[int]*monsterVisual
	order          []int
	monstersPaused bool

	// HUD state
	visible   bool
	health    int
	maxHealth int
	round     int
	prompt    string
	healCount int
	slowCount int

	// Question box flash
	boxFlash     color.Color
	boxFadeTotal float64
	boxFadeTime  float64

	// Window focus tracking (focus loss is treated as the page being hidden)
	focused bool
}

// NewGameScene creates the gameplay scene and its RoundController.
//
// Parameters:
//   - cfg: game tuning
//   - switcher: used to reach the result screen on game over
//   - potions: inventory used by the potion hotkeys
//   - rng: question generator source
func NewGameScene(cfg *config.GameConfig, switcher game.ScreenSwitcher, potions systems.PotionInventory, rng *rand.Rand) *GameScene {
	if cfg == nil {
		cfg = config.DefaultGameConfig()
	}

	s := &GameScene{
		switcher:  switcher,
		input:     systems.NewAnswerInputSystem(maxAnswerLength),
		visuals:   make(map[int]*monsterVisual),
		maxHealth: cfg.Round.MaxHealth,
		health:    cfg.Round.MaxHealth,
		round:     1,
		boxFlash:  systems.ColorNeutral,
		focused:   true,
	}
	s.keypad = systems.NewVirtualKeypadSystem(s.input)
	if utils.IsMobile() {
		s.keypad.Show()
	}
	s.controller = systems.NewRoundController(cfg, s, s.input, potions, rng)
	s.controller.SetGameOverHandler(s)
	return s
}

// Controller returns the scene's RoundController.
func (s *GameScene) Controller() *systems.RoundController {
	return s.controller
}

// Input returns the answer input field.
func (s *GameScene) Input() *systems.AnswerInputSystem {
	return s.input
}

// Keypad returns the on-screen keypad used on touch devices.
func (s *GameScene) Keypad() *systems.VirtualKeypadSystem {
	return s.keypad
}

// Start begins a new run.
func (s *GameScene) Start() {
	s.focused = true
	s.controller.StartGame()
}

// Hide serves both game.Hideable and systems.RoundView.
// Switching away stops the run; the controller's own Hide call then finds it Idle.
func (s *GameScene) Hide() {
	s.visible = false
	s.monstersPaused = false
	s.controller.Stop()
}

// ShowGameOver hands the final round to the result screen.
func (s *GameScene) ShowGameOver(finalRound int) {
	log.Printf("[GameScene] Game over, final round %d", finalRound)
	s.switcher.SwitchToScreen(game.Screen{Type: game.ScreenResult, FinalRound: finalRound})
}

// Update processes input, advances monster animation and the controller timers.
func (s *GameScene) Update(deltaTime float64) {
	if focused := ebiten.IsFocused(); focused != s.focused {
		s.focused = focused
		s.controller.HandleVisibilityChange(!focused)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.controller.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		s.controller.UsePotion(game.PotionHeal)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		s.controller.UsePotion(game.PotionTimeSlow)
	}

	// 第一次触摸后显示屏幕键盘
	if utils.IsTouchDevice() {
		s.keypad.Show()
	}

	running := s.controller.Phase() == systems.PhaseRunning
	s.input.SetFocused(running)
	s.input.Update(deltaTime)
	if running {
		s.keypad.Update(deltaTime)
	}

	s.Step(deltaTime)
	s.controller.Update(deltaTime)
}

// Step advances monster movement and the question box fade.
// Monsters that complete the path fire their reach-end callback once.
func (s *GameScene) Step(deltaTime float64) {
	s.boxFadeTime += deltaTime

	if s.monstersPaused {
		return
	}

	// 回调可能销毁其他怪物（游戏结束），遍历顺序表的副本
	ids := append([]int(nil), s.order...)
	for _, id := range ids {
		v, ok := s.visuals[id]
		if !ok {
			continue
		}

		v.progress += v.speed * deltaTime
		if v.progress < 1 {
			s.controller.ReportMonsterProgress(id, v.progress)
			continue
		}

		v.progress = 1
		s.removeVisual(id)
		s.controller.ReportMonsterProgress(id, 1)
		if v.onReachEnd != nil {
			v.onReachEnd()
		}
	}
}

// QuestionBoxColor returns the current (fading) question box color.
func (s *GameScene) QuestionBoxColor() color.RGBA {
	if s.boxFadeTotal <= 0 {
		return systems.ColorNeutral
	}
	t := utils.EaseOutQuad(utils.Clamp01(s.boxFadeTime / s.boxFadeTotal))
	return utils.LerpColor(s.boxFlash, systems.ColorNeutral, t)
}

func (s *GameScene) removeVisual(id int) {
	if _, ok := s.visuals[id]; !ok {
		return
	}
	delete(s.visuals, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Show implements systems.RoundView.
func (s *GameScene) Show() {
	s.visible = true
}

// SpawnMonsterVisual implements systems.RoundView.
func (s *GameScene) SpawnMonsterVisual(id int, speed float64, onReachEnd func()) {
	s.visuals[id] = &monsterVisual{id: id, speed: speed, onReachEnd: onReachEnd}
	s.order = append(s.order, id)
}

// DestroyMonsterVisual implements systems.RoundView.
func (s *GameScene) DestroyMonsterVisual(id int) {
	s.removeVisual(id)
}

// UpdateMonsterSpeed implements systems.RoundView.
func (s *GameScene) UpdateMonsterSpeed(id int, speed float64) {
	if v, ok := s.visuals[id]; ok {
		v.speed = speed
	}
}

// PauseAllMonsters implements systems.RoundView.
func (s *GameScene) PauseAllMonsters() {
	s.monstersPaused = true
}

// ResumeAllMonsters implements systems.RoundView.
func (s *GameScene) ResumeAllMonsters() {
	s.monstersPaused = false
}

// UpdateHealth implements systems.RoundView.
func (s *GameScene) UpdateHealth(health int) {
	s.health = health
}

// UpdateRound implements systems.RoundView.
func (s *GameScene) UpdateRound(round int) {
	s.round = round
}

// UpdateQuestionPrompt implements systems.RoundView.
func (s *GameScene) UpdateQuestionPrompt(text string) {
	s.prompt = text
}

// UpdatePotionCounts implements systems.RoundView.
func (s *GameScene) UpdatePotionCounts(heal, slow int) {
	s.healCount = heal
	s.slowCount = slow
}

// SetQuestionBoxColor implements systems.RoundView.
func (s *GameScene) SetQuestionBoxColor(c color.Color, fade time.Duration) {
	s.boxFlash = c
	s.boxFadeTotal = fade.Seconds()
	s.boxFadeTime = 0
}
