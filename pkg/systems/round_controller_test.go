package systems

import (
	"image/color"
	"math"
	"math/rand"
	"strconv"
	"testing"
	"time"

	"github.com/decker502/mathtd/pkg/config"
	"github.com/decker502/mathtd/pkg/game"
)

// fakeRoundView 记录控制器对画面的调用
type fakeRoundView struct {
	shown      bool
	health     int
	round      int
	prompt     string
	healCount  int
	slowCount  int
	boxColor   color.Color
	paused     bool
	reachEnd   map[int]func()
	speeds     map[int]float64
	destroyed  []int
	spawnOrder []int
}

func newFakeRoundView() *fakeRoundView {
	return &fakeRoundView{
		reachEnd: make(map[int]func()),
		speeds:   make(map[int]float64),
	}
}

func (v *fakeRoundView) Show() { v.shown = true }
func (v *fakeRoundView) Hide() { v.shown = false }

func (v *fakeRoundView) SpawnMonsterVisual(id int, speed float64, onReachEnd func()) {
	v.reachEnd[id] = onReachEnd
	v.speeds[id] = speed
	v.spawnOrder = append(v.spawnOrder, id)
}

func (v *fakeRoundView) DestroyMonsterVisual(id int) {
	delete(v.reachEnd, id)
	delete(v.speeds, id)
	v.destroyed = append(v.destroyed, id)
}

func (v *fakeRoundView) UpdateMonsterSpeed(id int, speed float64) { v.speeds[id] = speed }
func (v *fakeRoundView) PauseAllMonsters()                        { v.paused = true }
func (v *fakeRoundView) ResumeAllMonsters()                       { v.paused = false }
func (v *fakeRoundView) UpdateHealth(health int)                  { v.health = health }
func (v *fakeRoundView) UpdateRound(round int)                    { v.round = round }
func (v *fakeRoundView) UpdateQuestionPrompt(text string)         { v.prompt = text }
func (v *fakeRoundView) UpdatePotionCounts(heal, slow int) {
	v.healCount = heal
	v.slowCount = slow
}
func (v *fakeRoundView) SetQuestionBoxColor(c color.Color, fade time.Duration) { v.boxColor = c }

// finishMonster 模拟怪物走完路线（只触发一次）
func (v *fakeRoundView) finishMonster(t *testing.T, id int) {
	t.Helper()
	cb, ok := v.reachEnd[id]
	if !ok {
		t.Fatalf("monster %d has no visual", id)
	}
	delete(v.reachEnd, id)
	cb()
}

// fakeAnswerInput 可编程的答案输入
type fakeAnswerInput struct {
	value    string
	handler  func()
	resetCnt int
}

func (in *fakeAnswerInput) OnSubmit(handler func()) { in.handler = handler }
func (in *fakeAnswerInput) Value() string           { return in.value }
func (in *fakeAnswerInput) Reset() {
	in.value = ""
	in.resetCnt++
}

func (in *fakeAnswerInput) submit(value string) {
	in.value = value
	in.handler()
}

// fakeGameOver 记录游戏结束通知
type fakeGameOver struct {
	called     bool
	finalRound int
}

func (g *fakeGameOver) ShowGameOver(finalRound int) {
	g.called = true
	g.finalRound = finalRound
}

type controllerFixture struct {
	rc        *RoundController
	view      *fakeRoundView
	input     *fakeAnswerInput
	inventory *game.PotionManager
	gameOver  *fakeGameOver
}

func newControllerFixture(t *testing.T) *controllerFixture {
	t.Helper()
	f := &controllerFixture{
		view:      newFakeRoundView(),
		input:     &fakeAnswerInput{},
		inventory: game.NewPotionManager(nil),
		gameOver:  &fakeGameOver{},
	}
	f.rc = NewRoundController(config.DefaultGameConfig(), f.view, f.input, f.inventory, rand.New(rand.NewSource(99)))
	f.rc.SetGameOverHandler(f.gameOver)
	return f
}

// answerActive 提交当前怪物的正确答案
func (f *controllerFixture) answerActive(t *testing.T) int {
	t.Helper()
	monster := f.rc.State().GetCurrentActiveMonster()
	if monster == nil {
		t.Fatal("no active monster to answer")
	}
	f.input.submit(strconv.Itoa(monster.GetAnswer()))
	return monster.ID
}

func TestRoundController_StartGame(t *testing.T) {
	f := newControllerFixture(t)
	f.rc.StartGame()

	if f.rc.Phase() != PhaseRunning {
		t.Fatalf("phase: got %v, want Running", f.rc.Phase())
	}
	if !f.view.shown || f.view.health != 100 || f.view.round != 1 {
		t.Errorf("view not initialized: shown=%v health=%d round=%d", f.view.shown, f.view.health, f.view.round)
	}
	if f.view.prompt != MessageGetReady {
		t.Errorf("prompt: got %q, want %q", f.view.prompt, MessageGetReady)
	}

	// 第一只怪物延迟为 0，第一帧即出场
	f.rc.Update(0)
	first := f.rc.State().GetMonsterManager().GetMonsters()[0]
	if len(f.view.spawnOrder) != 1 || f.view.spawnOrder[0] != first.ID {
		t.Fatalf("spawn order: got %v, want [%d]", f.view.spawnOrder, first.ID)
	}
	if f.view.prompt != first.GetQuestion() {
		t.Errorf("prompt: got %q, want %q", f.view.prompt, first.GetQuestion())
	}
}

// TestRoundController_StaggeredSpawn 怪物按 1 秒间隔依次出场
func TestRoundController_StaggeredSpawn(t *testing.T) {
	f := newControllerFixture(t)
	f.rc.StartGame()

	steps := []struct {
		dt     float64
		expect int
	}{
		{0, 1},
		{0.5, 1},
		{0.5, 2},
		{0.75, 2},
		{0.25, 3},
		{2, 5},
		{10, 5},
	}
	for i, step := range steps {
		f.rc.Update(step.dt)
		if got := len(f.view.spawnOrder); got != step.expect {
			t.Fatalf("step %d: spawned %d, want %d", i, got, step.expect)
		}
	}

	monsters := f.rc.State().GetMonsterManager().GetMonsters()
	for i, m := range monsters {
		if f.view.spawnOrder[i] != m.ID {
			t.Errorf("spawn order[%d]: got %d, want %d", i, f.view.spawnOrder[i], m.ID)
		}
	}
}

// TestRoundController_Answer 测试答案路由
func TestRoundController_Answer(t *testing.T) {
	f := newControllerFixture(t)
	f.rc.StartGame()

	t.Run("没有怪物时只清空输入", func(t *testing.T) {
		f.input.submit("5")
		if f.input.resetCnt != 1 {
			t.Errorf("input should be reset")
		}
		if f.view.boxColor != ColorNeutral {
			t.Errorf("box color should stay neutral, got %v", f.view.boxColor)
		}
	})

	f.rc.Update(0)

	t.Run("答错", func(t *testing.T) {
		before := f.rc.State().GetMonsterManager().GetAliveMonstersCount()
		f.input.submit("not a number")
		if f.view.boxColor != ColorWrong {
			t.Errorf("box color: got %v, want wrong", f.view.boxColor)
		}
		if f.input.value != "" {
			t.Error("input should be cleared")
		}
		if f.rc.State().GetMonsterManager().GetAliveMonstersCount() != before {
			t.Error("wrong answer must not change state")
		}
	})

	t.Run("答对", func(t *testing.T) {
		id := f.answerActive(t)
		if f.view.boxColor != ColorCorrect {
			t.Errorf("box color: got %v, want correct", f.view.boxColor)
		}
		if f.rc.State().GetMonsterManager().GetMonsterByID(id) != nil {
			t.Error("answered monster should be eliminated")
		}
		if len(f.view.destroyed) != 1 || f.view.destroyed[0] != id {
			t.Errorf("destroyed visuals: got %v, want [%d]", f.view.destroyed, id)
		}
		if f.view.prompt != MessageWaiting {
			t.Errorf("prompt: got %q, want %q", f.view.prompt, MessageWaiting)
		}
	})

	t.Run("小数形式的正确答案", func(t *testing.T) {
		f.rc.Update(1)
		monster := f.rc.State().GetCurrentActiveMonster()
		if monster == nil {
			t.Fatal("expected an active monster")
		}
		f.input.submit(strconv.Itoa(monster.GetAnswer()) + ".0")
		if monster.IsAlive() {
			t.Error("\"N.0\" should be accepted as N")
		}
	})
}

// TestRoundController_PauseResumeRemainingDelay 暂停后以剩余时长继续出场
func TestRoundController_PauseResumeRemainingDelay(t *testing.T) {
	f := newControllerFixture(t)
	f.rc.StartGame()

	f.rc.Update(0.4)
	f.rc.Pause()
	if !f.view.paused || f.rc.Phase() != PhasePaused {
		t.Fatal("controller and view should be paused")
	}

	f.rc.Update(10)
	if len(f.view.spawnOrder) != 1 {
		t.Fatalf("no spawn while paused: got %d", len(f.view.spawnOrder))
	}

	f.rc.Resume()
	f.rc.Update(0.5)
	if len(f.view.spawnOrder) != 1 {
		t.Fatalf("resumed timer fired early: got %d", len(f.view.spawnOrder))
	}
	f.rc.Update(0.1)
	if len(f.view.spawnOrder) != 2 {
		t.Fatalf("resumed timer should fire after remaining 600ms: got %d", len(f.view.spawnOrder))
	}

	// 之后的间隔保持 1 秒
	f.rc.Update(0.75)
	if len(f.view.spawnOrder) != 2 {
		t.Fatalf("third spawn too early")
	}
	f.rc.Update(0.25)
	if len(f.view.spawnOrder) != 3 {
		t.Fatalf("third spawn: got %d", len(f.view.spawnOrder))
	}
}

// TestRoundController_PausedIgnoresInput 暂停时忽略答题和药水
func TestRoundController_PausedIgnoresInput(t *testing.T) {
	f := newControllerFixture(t)
	f.inventory.AddPotion(game.PotionTimeSlow)
	f.rc.StartGame()
	f.rc.Update(0)
	f.rc.Pause()

	monster := f.rc.State().GetCurrentActiveMonster()
	f.input.submit(strconv.Itoa(monster.GetAnswer()))
	if !monster.IsAlive() {
		t.Error("answers must be ignored while paused")
	}
	if f.rc.UsePotion(game.PotionTimeSlow) {
		t.Error("potions must be ignored while paused")
	}
	if f.inventory.GetCount(game.PotionTimeSlow) != 1 {
		t.Error("inventory must be unchanged")
	}
}

// TestRoundController_VisibilityPauseStack 失去焦点前手动暂停的游戏恢复焦点后保持暂停
func TestRoundController_VisibilityPauseStack(t *testing.T) {
	t.Run("运行中失去焦点再恢复", func(t *testing.T) {
		f := newControllerFixture(t)
		f.rc.StartGame()

		f.rc.HandleVisibilityChange(true)
		if f.rc.Phase() != PhasePaused {
			t.Fatalf("hidden: got %v, want Paused", f.rc.Phase())
		}
		f.rc.HandleVisibilityChange(false)
		if f.rc.Phase() != PhaseRunning {
			t.Fatalf("visible: got %v, want Running", f.rc.Phase())
		}
	})

	t.Run("手动暂停后失去焦点再恢复", func(t *testing.T) {
		f := newControllerFixture(t)
		f.rc.StartGame()

		f.rc.TogglePause()
		f.rc.HandleVisibilityChange(true)
		f.rc.HandleVisibilityChange(false)
		if f.rc.Phase() != PhasePaused {
			t.Fatalf("manual pause cleared by visibility restore: got %v", f.rc.Phase())
		}

		f.rc.TogglePause()
		if f.rc.Phase() != PhaseRunning {
			t.Fatalf("toggle: got %v, want Running", f.rc.Phase())
		}
	})

	t.Run("空闲状态忽略可见性变化", func(t *testing.T) {
		f := newControllerFixture(t)
		f.rc.HandleVisibilityChange(true)
		if f.rc.Phase() != PhaseIdle {
			t.Fatalf("got %v, want Idle", f.rc.Phase())
		}
	})
}

// TestRoundController_RoundAdvance 回合完成后延迟 1 秒开始下一回合
func TestRoundController_RoundAdvance(t *testing.T) {
	f := newControllerFixture(t)
	f.rc.StartGame()
	f.rc.Update(0)
	f.answerActive(t)
	for i := 1; i < 5; i++ {
		f.rc.Update(1)
		f.answerActive(t)
	}

	if !f.rc.State().IsRoundComplete() {
		t.Fatal("round should be complete")
	}
	if f.rc.State().GetRound() != 2 || f.view.round != 2 {
		t.Fatalf("round: state=%d view=%d, want 2", f.rc.State().GetRound(), f.view.round)
	}

	f.rc.Update(0.9)
	if !f.rc.State().IsRoundComplete() {
		t.Fatal("next round started before the delay")
	}

	f.rc.Update(0.1)
	if f.rc.State().IsRoundComplete() {
		t.Fatal("next round should start after 1s")
	}
	if f.rc.State().GetCurrentActiveMonster() == nil {
		t.Error("first monster of the new round should spawn immediately")
	}
}

// TestRoundController_DeferredRoundStart 暂停期间到期的回合重启在恢复时执行
func TestRoundController_DeferredRoundStart(t *testing.T) {
	f := newControllerFixture(t)
	f.rc.StartGame()
	f.rc.Update(0)
	f.answerActive(t)
	for i := 1; i < 5; i++ {
		f.rc.Update(1)
		f.answerActive(t)
	}

	f.rc.Pause()
	f.rc.Update(2)
	if !f.rc.State().IsRoundComplete() {
		t.Fatal("round must not start while paused")
	}

	f.rc.Resume()
	if f.rc.State().IsRoundComplete() {
		t.Fatal("deferred round should start on resume")
	}
	if got := len(f.rc.State().GetMonsterManager().GetMonsters()); got != 5 {
		t.Errorf("monsters: got %d, want 5", got)
	}
}

// TestRoundController_ReachEnd 怪物到达终点扣血
func TestRoundController_ReachEnd(t *testing.T) {
	f := newControllerFixture(t)
	f.rc.StartGame()
	f.rc.Update(0)

	id := f.view.spawnOrder[0]
	f.view.finishMonster(t, id)

	if f.rc.State().GetHealth() != 90 || f.view.health != 90 {
		t.Errorf("health: state=%d view=%d, want 90", f.rc.State().GetHealth(), f.view.health)
	}
	if f.rc.State().GetMonsterManager().GetMonsterByID(id) != nil {
		t.Error("monster should be removed")
	}
}

// TestRoundController_EliminatedMonsterCannotDamage 被消灭的怪物不会再造成伤害
func TestRoundController_EliminatedMonsterCannotDamage(t *testing.T) {
	f := newControllerFixture(t)
	f.rc.StartGame()
	f.rc.Update(0)

	id := f.view.spawnOrder[0]
	stale := f.view.reachEnd[id]
	f.answerActive(t)

	stale()
	if f.rc.State().GetHealth() != 100 {
		t.Errorf("stale reach-end callback damaged the tower: health %d", f.rc.State().GetHealth())
	}
}

// TestRoundController_GameOver 生命值耗尽后结束并取消所有计时器
func TestRoundController_GameOver(t *testing.T) {
	f := newControllerFixture(t)
	f.rc.StartGame()

	for round := 1; round <= 2; round++ {
		f.rc.Update(5)
		for _, id := range append([]int(nil), f.view.spawnOrder[len(f.view.spawnOrder)-5:]...) {
			f.view.finishMonster(t, id)
		}
		if round == 1 {
			f.rc.Update(1)
		}
	}

	if f.rc.Phase() != PhaseGameOver {
		t.Fatalf("phase: got %v, want GameOver", f.rc.Phase())
	}
	if !f.gameOver.called || f.gameOver.finalRound != 2 {
		t.Errorf("game over notification: %+v", f.gameOver)
	}
	if f.rc.Timers().PendingCount() != 0 {
		t.Errorf("pending timers after game over: %d", f.rc.Timers().PendingCount())
	}
	if f.rc.State().GetHealth() != 0 {
		t.Errorf("health: got %d, want 0", f.rc.State().GetHealth())
	}
}

// TestRoundController_GameOverWithoutHandler 未设置处理者时只记录错误
func TestRoundController_GameOverWithoutHandler(t *testing.T) {
	f := newControllerFixture(t)
	f.rc.SetGameOverHandler(nil)
	f.rc.StartGame()
	f.rc.State().DecreaseHealth(95)
	f.rc.Update(0)

	f.view.finishMonster(t, f.view.spawnOrder[0])
	if f.rc.Phase() != PhaseGameOver {
		t.Fatalf("phase: got %v, want GameOver", f.rc.Phase())
	}
}

// TestRoundController_HealPotion 治疗药水（满血时拒绝使用）
func TestRoundController_HealPotion(t *testing.T) {
	f := newControllerFixture(t)
	f.inventory.AddPotion(game.PotionHeal)
	f.inventory.AddPotion(game.PotionHeal)
	f.rc.StartGame()
	f.rc.Update(1)

	if f.view.healCount != 2 {
		t.Errorf("potion counts shown: got %d, want 2", f.view.healCount)
	}

	t.Run("满血时不消耗", func(t *testing.T) {
		if f.rc.UsePotion(game.PotionHeal) {
			t.Error("heal at full health should be refused")
		}
		if f.inventory.GetCount(game.PotionHeal) != 2 {
			t.Error("inventory must be unchanged")
		}
		if f.view.prompt != MessageHealthFull {
			t.Errorf("prompt: got %q", f.view.prompt)
		}
		f.rc.Update(1.5)
		if f.view.prompt == MessageHealthFull {
			t.Error("status message should revert after 1.5s")
		}
	})

	t.Run("80血回到100", func(t *testing.T) {
		f.view.finishMonster(t, f.view.spawnOrder[0])
		f.view.finishMonster(t, f.view.spawnOrder[1])
		if f.rc.State().GetHealth() != 80 {
			t.Fatalf("health: got %d, want 80", f.rc.State().GetHealth())
		}

		if !f.rc.UsePotion(game.PotionHeal) {
			t.Fatal("heal should be used")
		}
		if f.rc.State().GetHealth() != 100 || f.view.health != 100 {
			t.Errorf("health: got %d, want 100", f.rc.State().GetHealth())
		}
		if f.inventory.GetCount(game.PotionHeal) != 1 || f.view.healCount != 1 {
			t.Errorf("inventory: got %d, want 1", f.inventory.GetCount(game.PotionHeal))
		}
		if f.view.prompt != "Healed 20 Health!" {
			t.Errorf("prompt: got %q", f.view.prompt)
		}
	})
}

// TestRoundController_TimeSlowPotion 减速药水持续 5 秒
func TestRoundController_TimeSlowPotion(t *testing.T) {
	f := newControllerFixture(t)
	f.inventory.AddPotion(game.PotionTimeSlow)
	f.rc.StartGame()
	f.rc.Update(1)

	if !f.rc.UsePotion(game.PotionTimeSlow) {
		t.Fatal("time slow should be used")
	}
	if f.view.prompt != MessageTimeSlowed {
		t.Errorf("prompt: got %q", f.view.prompt)
	}

	for _, m := range f.rc.State().GetMonsterManager().GetMonsters() {
		want := m.GetBaseSpeed() * 0.2
		if math.Abs(m.GetSpeed()-want) > 1e-9 {
			t.Errorf("monster %d speed: got %v, want %v", m.ID, m.GetSpeed(), want)
		}
	}
	for id, speed := range f.view.speeds {
		if math.Abs(speed-0.08*0.2) > 1e-9 {
			t.Errorf("visual %d speed: got %v", id, speed)
		}
	}

	// 减速期间出场的怪物同样是慢速
	f.rc.Update(1)
	last := f.view.spawnOrder[len(f.view.spawnOrder)-1]
	if math.Abs(f.view.speeds[last]-0.08*0.2) > 1e-9 {
		t.Errorf("monster spawned during slow: speed %v", f.view.speeds[last])
	}

	f.rc.Update(4)
	for _, m := range f.rc.State().GetMonsterManager().GetMonsters() {
		if m.GetSpeed() != m.GetBaseSpeed() {
			t.Errorf("monster %d speed not restored: %v", m.ID, m.GetSpeed())
		}
	}
	for id, speed := range f.view.speeds {
		if speed != 0.08 {
			t.Errorf("visual %d speed not restored: %v", id, speed)
		}
	}
}

// TestRoundController_NoPotion 背包为空时只显示提示
func TestRoundController_NoPotion(t *testing.T) {
	f := newControllerFixture(t)
	f.rc.StartGame()

	if f.rc.UsePotion(game.PotionTimeSlow) {
		t.Error("UsePotion should fail with empty inventory")
	}
	if f.view.prompt != "No Time Slow Potion available!" {
		t.Errorf("prompt: got %q", f.view.prompt)
	}
}

// TestRoundController_RestartCancelsStaleTimers 重新开始时旧计时器和回调全部失效
func TestRoundController_RestartCancelsStaleTimers(t *testing.T) {
	f := newControllerFixture(t)
	f.rc.StartGame()
	f.rc.Update(0)

	oldID := f.view.spawnOrder[0]
	stale := f.view.reachEnd[oldID]

	f.rc.StartGame()
	if f.rc.Timers().PendingCount() != 5 {
		t.Errorf("pending timers: got %d, want 5", f.rc.Timers().PendingCount())
	}

	stale()
	if f.rc.State().GetHealth() != 100 {
		t.Errorf("stale callback from previous game changed health: %d", f.rc.State().GetHealth())
	}
	if first := f.rc.State().GetMonsterManager().GetMonsters()[0]; first.ID != 0 {
		t.Errorf("ids restart at 0 after a full reset, got %d", first.ID)
	}
}

// TestRoundController_Stop 离开画面时停止
func TestRoundController_Stop(t *testing.T) {
	f := newControllerFixture(t)
	f.rc.StartGame()
	f.rc.Update(2)

	f.rc.Stop()
	if f.rc.Phase() != PhaseIdle || f.view.shown {
		t.Errorf("phase=%v shown=%v", f.rc.Phase(), f.view.shown)
	}
	if f.rc.Timers().PendingCount() != 0 {
		t.Errorf("pending timers: %d", f.rc.Timers().PendingCount())
	}
	if len(f.view.reachEnd) != 0 {
		t.Errorf("visuals left: %v", f.view.reachEnd)
	}
}
