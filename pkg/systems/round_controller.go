package systems

import (
	"fmt"
	"image/color"
	"log"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/decker502/mathtd/pkg/components"
	"github.com/decker502/mathtd/pkg/config"
	"github.com/decker502/mathtd/pkg/game"
)

// RoundPhase 回合控制器状态
type RoundPhase int

const (
	// PhaseIdle 尚未开始或已停止
	PhaseIdle RoundPhase = iota
	// PhaseRunning 游戏进行中
	PhaseRunning
	// PhasePaused 已暂停（手动或失去焦点）
	PhasePaused
	// PhaseGameOver 生命值耗尽，本局结束
	PhaseGameOver
)

// String 返回状态名称（日志用）
func (p RoundPhase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseRunning:
		return "Running"
	case PhasePaused:
		return "Paused"
	case PhaseGameOver:
		return "GameOver"
	default:
		return fmt.Sprintf("RoundPhase(%d)", int(p))
	}
}

// 状态提示文本
const (
	MessageGetReady       = "Get ready..."
	MessageWaiting        = "Waiting for next monster..."
	MessageHealthFull     = "Health Full!"
	MessageTimeSlowed     = "Time Slowed!"
	messageHealedTemplate = "Healed %d Health!"
	messageNoPotion       = "No %s available!"
)

// 答题框颜色
var (
	ColorCorrect = color.RGBA{R: 0x2e, G: 0xcc, B: 0x71, A: 0xff}
	ColorWrong   = color.RGBA{R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff}
	ColorNeutral = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// RoundView 游戏画面的显示接口
// 实现方负责怪物移动动画，怪物走完路线时必须且只能调用一次 onReachEnd；
// DestroyMonsterVisual 可在任何时候调用，之后不得再触发该怪物的 onReachEnd
type RoundView interface {
	Show()
	Hide()
	SpawnMonsterVisual(id int, speed float64, onReachEnd func())
	DestroyMonsterVisual(id int)
	UpdateMonsterSpeed(id int, speed float64)
	PauseAllMonsters()
	ResumeAllMonsters()
	UpdateHealth(health int)
	UpdateRound(round int)
	UpdateQuestionPrompt(text string)
	UpdatePotionCounts(heal, slow int)
	SetQuestionBoxColor(c color.Color, fade time.Duration)
}

// AnswerInput 答案输入端口
type AnswerInput interface {
	// OnSubmit 注册提交回调
	OnSubmit(handler func())
	// Value 返回当前输入内容
	Value() string
	// Reset 清空输入
	Reset()
}

// PotionInventory 药水背包端口
type PotionInventory interface {
	UsePotion(t game.PotionType) bool
	GetCount(t game.PotionType) int
}

// GameOverHandler 接收游戏结束通知
type GameOverHandler interface {
	ShowGameOver(finalRound int)
}

// RoundController 回合流程控制器
//
// 职责：
//   - 回合开始时按固定间隔依次让怪物出场
//   - 暂停/恢复（含失去焦点时的自动暂停）
//   - 把玩家答案路由到当前怪物
//   - 回合推进、游戏结束、药水效果
//
// 架构说明：
//   - 所有延迟逻辑都通过自己的 TimerSystem 调度，由 Update(deltaTime) 推进
//   - 出场、状态提示、减速恢复计时器可暂停；回合重启计时器不可暂停，
//     到期时若处于暂停状态则记下，恢复时再开始新回合
//   - 每局游戏有一个代号，旧代号的回调一律忽略
type RoundController struct {
	cfg       *config.GameConfig
	state     *game.RoundState
	timers    *TimerSystem
	view      RoundView
	input     AnswerInput
	inventory PotionInventory
	gameOver  GameOverHandler

	phase RoundPhase

	// pausedBeforeHidden 失去焦点前是否已处于暂停状态
	pausedBeforeHidden bool

	// roundEnding 本回合已完成并已安排下一回合
	roundEnding bool

	// deferredRoundStart 重启计时器在暂停期间到期，恢复时开始新回合
	deferredRoundStart bool

	// generation 每次 StartGame/Stop 递增，用于识别过期回调
	generation int

	// visuals 已创建显示对象的怪物ID
	visuals map[int]bool

	spawnTimers   []*components.TimerComponent
	statusTimer   *components.TimerComponent
	slowTimer     *components.TimerComponent
	restartTimer  *components.TimerComponent
	slowActive    bool
	slowedMonster map[int]bool
}

// NewRoundController 创建回合控制器
//
// 参数：
//   - cfg: 游戏配置（为 nil 时使用默认配置）
//   - view: 画面接口
//   - input: 答案输入端口，提交事件会被注册到控制器
//   - inventory: 药水背包
//   - rng: 题目生成使用的随机数源
func NewRoundController(cfg *config.GameConfig, view RoundView, input AnswerInput, inventory PotionInventory, rng *rand.Rand) *RoundController {
	if cfg == nil {
		cfg = config.DefaultGameConfig()
	}

	rc := &RoundController{
		cfg:           cfg,
		state:         game.NewRoundState(cfg.Round, rng),
		timers:        NewTimerSystem(),
		view:          view,
		input:         input,
		inventory:     inventory,
		phase:         PhaseIdle,
		visuals:       make(map[int]bool),
		slowedMonster: make(map[int]bool),
	}

	if input != nil {
		input.OnSubmit(rc.HandleAnswerSubmit)
	}
	return rc
}

// SetGameOverHandler 设置游戏结束处理者
func (rc *RoundController) SetGameOverHandler(handler GameOverHandler) {
	rc.gameOver = handler
}

// Phase 返回当前状态
func (rc *RoundController) Phase() RoundPhase {
	return rc.phase
}

// IsPaused 是否处于暂停状态
func (rc *RoundController) IsPaused() bool {
	return rc.phase == PhasePaused
}

// State 返回回合状态（只读使用）
func (rc *RoundController) State() *game.RoundState {
	return rc.state
}

// Timers 返回控制器使用的计时器系统
func (rc *RoundController) Timers() *TimerSystem {
	return rc.timers
}

// StartGame 开始新的一局
// 取消上一局的所有计时器和怪物显示，重置回合状态后开始第一回合
func (rc *RoundController) StartGame() {
	rc.teardown()

	rc.state.Reset()
	rc.phase = PhaseRunning
	rc.pausedBeforeHidden = false

	rc.view.SetQuestionBoxColor(ColorNeutral, 0)
	rc.view.Show()
	rc.view.UpdateHealth(rc.state.GetHealth())
	rc.view.UpdateRound(rc.state.GetRound())
	rc.updatePotionCounts()

	log.Printf("[RoundController] Game started (generation %d)", rc.generation)
	rc.startRound()
}

// Stop 离开游戏画面：取消所有计时器并回到 Idle
func (rc *RoundController) Stop() {
	if rc.phase == PhaseIdle {
		return
	}
	rc.teardown()
	rc.phase = PhaseIdle
	rc.view.Hide()
	log.Printf("[RoundController] Stopped")
}

// teardown 取消计时器并销毁怪物显示，使旧回调失效
func (rc *RoundController) teardown() {
	rc.generation++
	rc.timers.CancelAll()
	rc.destroyAllVisuals()

	rc.spawnTimers = nil
	rc.statusTimer = nil
	rc.slowTimer = nil
	rc.restartTimer = nil
	rc.slowActive = false
	rc.slowedMonster = make(map[int]bool)
	rc.roundEnding = false
	rc.deferredRoundStart = false
}

func (rc *RoundController) destroyAllVisuals() {
	for id := range rc.visuals {
		rc.view.DestroyMonsterVisual(id)
	}
	rc.visuals = make(map[int]bool)
}

// Pause 暂停游戏：冻结出场计划、状态计时器和怪物动画
func (rc *RoundController) Pause() {
	if rc.phase != PhaseRunning {
		return
	}

	log.Printf("[RoundController] Pausing game")
	rc.phase = PhasePaused
	rc.timers.PauseAll()
	rc.view.PauseAllMonsters()
}

// Resume 从暂停中恢复
// 计时器以剩余时长继续；暂停期间到期的回合重启在此执行
func (rc *RoundController) Resume() {
	if rc.phase != PhasePaused {
		return
	}

	log.Printf("[RoundController] Resuming game")
	rc.phase = PhaseRunning
	rc.view.ResumeAllMonsters()
	rc.timers.ResumeAll()

	if rc.deferredRoundStart {
		rc.deferredRoundStart = false
		log.Printf("[RoundController] Starting deferred round %d", rc.state.GetRound())
		rc.startRound()
	}
}

// TogglePause 切换暂停状态
func (rc *RoundController) TogglePause() {
	if rc.phase == PhasePaused {
		rc.Resume()
	} else {
		rc.Pause()
	}
}

// HandleVisibilityChange 处理窗口可见性变化
// 失去焦点前已经暂停的游戏，恢复焦点时保持暂停
func (rc *RoundController) HandleVisibilityChange(hidden bool) {
	if rc.phase != PhaseRunning && rc.phase != PhasePaused {
		return
	}

	if hidden {
		rc.pausedBeforeHidden = rc.phase == PhasePaused
		rc.Pause()
		return
	}
	if !rc.pausedBeforeHidden {
		rc.Resume()
	}
}

// Update 推进控制器的计时器
//
// 参数：
//   - deltaTime: 自上一帧以来经过的时间（秒）
func (rc *RoundController) Update(deltaTime float64) {
	rc.timers.Update(deltaTime)
}

// startRound 生成本回合怪物并安排依次出场
func (rc *RoundController) startRound() {
	rc.state.StartRound()
	rc.roundEnding = false
	rc.restartTimer = nil
	rc.spawnTimers = rc.spawnTimers[:0]
	rc.slowedMonster = make(map[int]bool)

	rc.view.UpdateQuestionPrompt(MessageGetReady)

	generation := rc.generation
	interval := rc.cfg.Round.SpawnInterval()
	for index, monster := range rc.state.GetMonsterManager().GetMonsters() {
		id := monster.ID
		if rc.slowActive {
			rc.applySlowTo(monster)
		}
		timer := rc.timers.After(fmt.Sprintf("spawn-%d", id), time.Duration(index)*interval, func() {
			if generation != rc.generation {
				return
			}
			rc.spawnMonster(id)
		})
		rc.spawnTimers = append(rc.spawnTimers, timer)
	}

	log.Printf("[RoundController] Round %d started with %d monsters", rc.state.GetRound(), len(rc.spawnTimers))
}

// spawnMonster 标记出场、刷新当前题目，再创建显示对象
func (rc *RoundController) spawnMonster(id int) {
	monster := rc.state.GetMonsterManager().GetMonsterByID(id)
	if monster == nil {
		return
	}

	rc.state.MarkMonsterAsSpawned(id)
	rc.updateCurrentQuestion()

	generation := rc.generation
	rc.visuals[id] = true
	rc.view.SpawnMonsterVisual(id, monster.GetSpeed(), func() {
		if generation != rc.generation {
			return
		}
		rc.handleMonsterReachedEnd(id)
	})
	log.Printf("[RoundController] Spawned monster %d (speed %.3f)", id, monster.GetSpeed())
}

// updateCurrentQuestion 显示当前怪物的题目，没有则显示等待提示
func (rc *RoundController) updateCurrentQuestion() {
	if monster := rc.state.GetCurrentActiveMonster(); monster != nil {
		rc.view.UpdateQuestionPrompt(monster.GetQuestion())
		return
	}
	rc.view.UpdateQuestionPrompt(MessageWaiting)
}

// HandleAnswerSubmit 处理答案提交，只在进行中状态生效
// 无法解析的输入按答错处理
func (rc *RoundController) HandleAnswerSubmit() {
	if rc.phase != PhaseRunning {
		return
	}

	monster := rc.state.GetCurrentActiveMonster()
	if monster == nil {
		log.Printf("[RoundController] No monster spawned yet")
		rc.resetInput()
		return
	}

	raw := ""
	if rc.input != nil {
		raw = strings.TrimSpace(rc.input.Value())
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err == nil && value == float64(monster.GetAnswer()) {
		rc.onAnswerSuccess(monster.ID)
		return
	}
	rc.onAnswerFail()
}

func (rc *RoundController) onAnswerSuccess(id int) {
	if eliminated := rc.state.EliminateMonster(id); eliminated != nil {
		rc.destroyVisual(id)
	}

	rc.resetInput()
	rc.view.SetQuestionBoxColor(ColorCorrect, rc.cfg.Round.QuestionFlash())
	rc.updateCurrentQuestion()
	rc.checkRoundEnd()
}

func (rc *RoundController) onAnswerFail() {
	rc.view.SetQuestionBoxColor(ColorWrong, rc.cfg.Round.QuestionFlash())
	rc.resetInput()
}

func (rc *RoundController) resetInput() {
	if rc.input != nil {
		rc.input.Reset()
	}
}

func (rc *RoundController) destroyVisual(id int) {
	if !rc.visuals[id] {
		return
	}
	delete(rc.visuals, id)
	rc.view.DestroyMonsterVisual(id)
}

// handleMonsterReachedEnd 怪物走完路线：扣血，判断游戏结束或回合完成
// 已不再追踪的怪物（已被消灭）忽略
func (rc *RoundController) handleMonsterReachedEnd(id int) {
	if rc.phase != PhaseRunning && rc.phase != PhasePaused {
		return
	}
	if rc.state.GetMonsterManager().GetMonsterByID(id) == nil {
		return
	}

	delete(rc.visuals, id)
	rc.state.HandleMonsterReachedEnd(id)
	rc.view.UpdateHealth(rc.state.GetHealth())

	if rc.state.IsGameOver() {
		rc.endGame()
		return
	}
	rc.updateCurrentQuestion()
	rc.checkRoundEnd()
}

// ReportMonsterProgress 记录显示层上报的怪物路线进度
func (rc *RoundController) ReportMonsterProgress(id int, progress float64) {
	if monster := rc.state.GetMonsterManager().GetMonsterByID(id); monster != nil {
		monster.SetPathProgress(progress)
	}
}

// checkRoundEnd 回合完成时推进回合数，并在延迟后开始下一回合
func (rc *RoundController) checkRoundEnd() {
	if rc.roundEnding || !rc.state.IsRoundComplete() {
		return
	}

	rc.roundEnding = true
	rc.state.NextRound()
	rc.view.UpdateRound(rc.state.GetRound())
	log.Printf("[RoundController] Round complete, next round %d in %v", rc.state.GetRound(), rc.cfg.Round.RoundRestartDelay())

	generation := rc.generation
	rc.restartTimer = rc.timers.AfterUnpausable("round-restart", rc.cfg.Round.RoundRestartDelay(), func() {
		if generation != rc.generation {
			return
		}
		rc.restartTimer = nil
		if rc.phase == PhasePaused {
			log.Printf("[RoundController] Paused when restart delay elapsed, deferring round %d", rc.state.GetRound())
			rc.deferredRoundStart = true
			return
		}
		rc.startRound()
	})
}

// endGame 进入 GameOver：取消所有计时器并通知游戏结束处理者
func (rc *RoundController) endGame() {
	finalRound := rc.state.GetRound()
	rc.phase = PhaseGameOver
	rc.generation++
	rc.timers.CancelAll()
	rc.destroyAllVisuals()
	rc.spawnTimers = nil
	rc.statusTimer = nil
	rc.slowTimer = nil
	rc.restartTimer = nil
	rc.slowActive = false

	log.Printf("[RoundController] Game over at round %d", finalRound)

	if rc.gameOver == nil {
		log.Printf("[RoundController] ERROR: GameOverHandler not set!")
		return
	}
	rc.gameOver.ShowGameOver(finalRound)
}

// UsePotion 使用药水，只在进行中状态生效
//
// 返回：
//   - bool: 药水被消耗时返回 true
func (rc *RoundController) UsePotion(t game.PotionType) bool {
	if rc.phase != PhaseRunning {
		return false
	}

	if t == game.PotionHeal && rc.state.GetHealth() >= rc.state.GetMaxHealth() {
		log.Printf("[RoundController] Health full, cannot use potion")
		rc.showStatus(MessageHealthFull)
		return false
	}

	if rc.inventory == nil || !rc.inventory.UsePotion(t) {
		name := string(t)
		if def, ok := game.LookupPotion(t); ok {
			name = def.Name
		}
		log.Printf("[RoundController] No potion available: %s", t)
		rc.showStatus(fmt.Sprintf(messageNoPotion, name))
		return false
	}

	log.Printf("[RoundController] Using potion: %s", t)
	rc.updatePotionCounts()

	switch t {
	case game.PotionHeal:
		rc.applyHeal()
	case game.PotionTimeSlow:
		rc.applyTimeSlow()
	}
	return true
}

func (rc *RoundController) applyHeal() {
	amount := rc.cfg.Potions.HealAmount
	rc.state.IncreaseHealth(amount)
	rc.view.UpdateHealth(rc.state.GetHealth())
	rc.showStatus(fmt.Sprintf(messageHealedTemplate, amount))
}

// applyTimeSlow 所有被追踪的怪物降到基础速度的一定比例，持续一段时间后恢复
// 效果期间再次使用会重新计时
func (rc *RoundController) applyTimeSlow() {
	rc.slowActive = true
	for _, monster := range rc.state.GetMonsterManager().GetMonsters() {
		rc.applySlowTo(monster)
	}
	rc.showStatus(MessageTimeSlowed)

	rc.timers.Cancel(rc.slowTimer)
	generation := rc.generation
	rc.slowTimer = rc.timers.After("slow-revert", rc.cfg.Potions.SlowDuration(), func() {
		if generation != rc.generation {
			return
		}
		rc.slowTimer = nil
		rc.revertTimeSlow()
	})
}

func (rc *RoundController) applySlowTo(monster *game.Monster) {
	monster.ApplySpeedModifier(rc.cfg.Potions.SlowMultiplier)
	rc.slowedMonster[monster.ID] = true
	if rc.visuals[monster.ID] {
		rc.view.UpdateMonsterSpeed(monster.ID, monster.GetSpeed())
	}
}

func (rc *RoundController) revertTimeSlow() {
	rc.slowActive = false
	for _, monster := range rc.state.GetMonsterManager().GetMonsters() {
		if !rc.slowedMonster[monster.ID] {
			continue
		}
		monster.ApplySpeedModifier(1)
		if rc.visuals[monster.ID] {
			rc.view.UpdateMonsterSpeed(monster.ID, monster.GetSpeed())
		}
	}
	rc.slowedMonster = make(map[int]bool)
	log.Printf("[RoundController] Time slow expired")
	rc.updateCurrentQuestion()
}

// showStatus 暂时用状态提示替换题目，到时后恢复当前题目
func (rc *RoundController) showStatus(message string) {
	rc.view.UpdateQuestionPrompt(message)

	rc.timers.Cancel(rc.statusTimer)
	generation := rc.generation
	rc.statusTimer = rc.timers.After("status-revert", rc.cfg.Potions.StatusMessage(), func() {
		if generation != rc.generation {
			return
		}
		rc.statusTimer = nil
		rc.updateCurrentQuestion()
	})
}

func (rc *RoundController) updatePotionCounts() {
	if rc.inventory == nil {
		rc.view.UpdatePotionCounts(0, 0)
		return
	}
	rc.view.UpdatePotionCounts(rc.inventory.GetCount(game.PotionHeal), rc.inventory.GetCount(game.PotionTimeSlow))
}

// RefreshPotionCounts 重新显示药水数量（例如从小游戏返回后）
func (rc *RoundController) RefreshPotionCounts() {
	rc.updatePotionCounts()
}
