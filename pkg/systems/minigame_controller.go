package systems

import (
	"fmt"
	"image/color"
	"log"
	"math/rand"

	"github.com/decker502/mathtd/pkg/components"
	"github.com/decker502/mathtd/pkg/config"
	"github.com/decker502/mathtd/pkg/game"
)

// 小游戏反馈文本
const (
	MessageMinigameCorrect = "Correct! +%d"
	MessageMinigameWrong   = "Not quite... -%d"
	MessageMinigameWin     = "Success! Earned %s!"
	MessageMinigameLose    = "Failed! Need %d%% to win."
)

// 反馈颜色
var (
	ColorFeedbackGood = color.RGBA{R: 0x2e, G: 0x7d, B: 0x32, A: 0xff}
	ColorFeedbackBad  = color.RGBA{R: 0xb2, G: 0x3a, B: 0x2f, A: 0xff}
)

// MinigameView 小游戏画面接口
type MinigameView interface {
	UpdateQuestion(q game.MinigameQuestion)
	UpdateAnswers(options []game.MinigameOption)
	UpdateScoreboard(score, questionNumber, maxQuestions int)
	SetButtonsEnabled(enabled bool)
	// ShowAnswerFeedback 高亮玩家选择和正确选项
	ShowAnswerFeedback(selected, correct int)
	ShowFeedback(message string, c color.Color)
}

// PotionAwarder 接收小游戏奖励的药水
type PotionAwarder interface {
	AddPotion(t game.PotionType)
}

// MinigameController 小游戏流程控制器
//
// 流程：
//   - 显示时重置引擎并出第一题
//   - 作答后显示反馈，FeedbackDelay 后进入下一题
//   - 最后一题结束后判定胜负，获胜奖励一瓶随机药水，FinishDelay 后返回菜单
type MinigameController struct {
	cfg      config.MinigameConfig
	engine   *game.MinigameEngine
	timers   *TimerSystem
	view     MinigameView
	switcher game.ScreenSwitcher
	potions  PotionAwarder
	rng      *rand.Rand

	accepting     bool
	finished      bool
	feedbackTimer *components.TimerComponent
}

// NewMinigameController 创建小游戏控制器
//
// 参数：
//   - cfg: 小游戏配置
//   - view: 画面接口
//   - switcher: 返回菜单使用的画面切换器
//   - potions: 奖励药水的背包
//   - rng: 出题和奖励使用的随机数源
func NewMinigameController(cfg config.MinigameConfig, view MinigameView, switcher game.ScreenSwitcher, potions PotionAwarder, rng *rand.Rand) *MinigameController {
	return &MinigameController{
		cfg:      cfg,
		engine:   game.NewMinigameEngine(cfg, rng),
		timers:   NewTimerSystem(),
		view:     view,
		switcher: switcher,
		potions:  potions,
		rng:      rng,
	}
}

// Engine 返回小游戏引擎
func (mc *MinigameController) Engine() *game.MinigameEngine {
	return mc.engine
}

// IsAccepting 当前是否接受作答
func (mc *MinigameController) IsAccepting() bool {
	return mc.accepting
}

// IsFinished 本局是否已结算
func (mc *MinigameController) IsFinished() bool {
	return mc.finished
}

// Show 开始新的一局
func (mc *MinigameController) Show() {
	mc.cancelFeedback()
	mc.engine.Reset()
	mc.finished = false
	mc.refreshView()
}

// Hide 离开画面时取消未触发的反馈计时器
func (mc *MinigameController) Hide() {
	mc.cancelFeedback()
	mc.accepting = false
}

// Update 推进反馈计时器
func (mc *MinigameController) Update(deltaTime float64) {
	mc.timers.Update(deltaTime)
}

// HandleAnswer 处理玩家选择的选项
// 反馈显示期间的重复选择忽略
func (mc *MinigameController) HandleAnswer(index int) {
	if !mc.accepting {
		return
	}
	mc.accepting = false
	mc.view.SetButtonsEnabled(false)

	result := mc.engine.SubmitAnswer(index)
	mc.view.ShowAnswerFeedback(index, result.CorrectIndex)
	mc.view.UpdateScoreboard(result.Score, result.QuestionNumber, mc.engine.GetMaxQuestions())
	if result.IsCorrect {
		mc.view.ShowFeedback(fmt.Sprintf(MessageMinigameCorrect, mc.cfg.CorrectPoints), ColorFeedbackGood)
	} else {
		mc.view.ShowFeedback(fmt.Sprintf(MessageMinigameWrong, mc.cfg.WrongPenalty), ColorFeedbackBad)
	}

	mc.feedbackTimer = mc.timers.After("minigame-feedback", mc.cfg.FeedbackDelay(), func() {
		mc.feedbackTimer = nil
		if mc.engine.AdvanceQuestion() {
			mc.refreshView()
			return
		}
		mc.finish()
	})
}

// finish 结算：获胜奖励随机药水
func (mc *MinigameController) finish() {
	mc.finished = true

	if mc.engine.IsWin() {
		reward := game.AllPotionTypes[mc.rng.Intn(len(game.AllPotionTypes))]
		name := string(reward)
		if def, ok := game.LookupPotion(reward); ok {
			name = def.Name
		}
		if mc.potions != nil {
			mc.potions.AddPotion(reward)
		} else {
			log.Printf("[MinigameController] ERROR: Potion inventory not set, reward %s lost", reward)
		}
		mc.view.ShowFeedback(fmt.Sprintf(MessageMinigameWin, name), ColorFeedbackGood)
		log.Printf("[MinigameController] Won minigame (%d/%d), awarded %s", mc.engine.CorrectCount(), mc.engine.AttemptedCount(), reward)
	} else {
		mc.view.ShowFeedback(fmt.Sprintf(MessageMinigameLose, mc.cfg.WinPercent), ColorFeedbackBad)
		log.Printf("[MinigameController] Lost minigame (%d/%d)", mc.engine.CorrectCount(), mc.engine.AttemptedCount())
	}

	mc.feedbackTimer = mc.timers.After("minigame-finish", mc.cfg.FinishDelay(), func() {
		mc.feedbackTimer = nil
		mc.BackToMenu()
	})
}

// BackToMenu 重置并返回菜单
func (mc *MinigameController) BackToMenu() {
	mc.cancelFeedback()
	mc.engine.Reset()
	mc.finished = false
	mc.refreshView()

	if mc.switcher == nil {
		log.Printf("[MinigameController] ERROR: ScreenSwitcher not set!")
		return
	}
	mc.switcher.SwitchToScreen(game.Screen{Type: game.ScreenMenu})
}

func (mc *MinigameController) refreshView() {
	state := mc.engine.GetState()
	mc.view.UpdateQuestion(state.Question)
	mc.view.UpdateAnswers(state.Options)
	mc.view.UpdateScoreboard(state.Score, state.QuestionNumber, state.MaxQuestions)
	mc.view.SetButtonsEnabled(true)
	mc.accepting = true
}

func (mc *MinigameController) cancelFeedback() {
	mc.timers.Cancel(mc.feedbackTimer)
	mc.feedbackTimer = nil
}
