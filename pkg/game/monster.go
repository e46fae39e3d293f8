package game

import (
	"fmt"
	"math/rand"
)

// QuestionForm 怪物题目的题型
type QuestionForm int

const (
	// FormAdditive x + a = b
	FormAdditive QuestionForm = iota
	// FormSubtractive x - a = b
	FormSubtractive
	// FormMultiplicative ax = b
	FormMultiplicative
)

// String 返回题型名称（日志用）
func (f QuestionForm) String() string {
	switch f {
	case FormAdditive:
		return "additive"
	case FormSubtractive:
		return "subtractive"
	case FormMultiplicative:
		return "multiplicative"
	default:
		return "unknown"
	}
}

// FormForRound 返回指定回合使用的题型
//
// 难度曲线：
//   - 第 1~3 回合：加法
//   - 第 4~6 回合：减法
//   - 第 7~9 回合：乘法
//   - 第 10 回合起：三种题型随机
//
// 小于 1 的回合号按第 1 回合处理
func FormForRound(round int, rng *rand.Rand) QuestionForm {
	switch {
	case round <= 3:
		return FormAdditive
	case round <= 6:
		return FormSubtractive
	case round <= 9:
		return FormMultiplicative
	default:
		return QuestionForm(rng.Intn(3))
	}
}

// GenerateQuestion 按回合难度生成题目和答案
// 题目与答案同时生成，答案即题目中未知数 x 的值
func GenerateQuestion(round int, rng *rand.Rand) (string, int) {
	switch FormForRound(round, rng) {
	case FormSubtractive:
		x := randRange(rng, 1, 20)
		a := randRange(rng, 1, x)
		return fmt.Sprintf("x - %d = %d", a, x-a), x
	case FormMultiplicative:
		x := randRange(rng, 1, 10)
		a := randRange(rng, 2, 6)
		return fmt.Sprintf("%dx = %d", a, a*x), x
	default:
		x := randRange(rng, 1, 20)
		a := randRange(rng, 1, 10)
		return fmt.Sprintf("x + %d = %d", a, x+a), x
	}
}

// randRange 返回 [lo, hi] 闭区间内的均匀随机整数
func randRange(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

// Monster 单个怪物实体
// 出生时携带一道题目，玩家答对后被消灭
type Monster struct {
	ID int // 怪物ID，由 MonsterManager 单调分配，不会复用

	question string
	answer   int

	alive        bool
	pathProgress float64 // 路径进度 [0, 1]，由外部动画回写

	baseSpeed float64 // 基础速度
	speed     float64 // 当前速度（受状态效果影响）
}

// NewMonster 创建怪物并按回合生成题目
//
// 参数：
//   - id: 怪物ID
//   - round: 当前回合号，决定题型
//   - speed: 基础速度
//   - rng: 随机数源
func NewMonster(id, round int, speed float64, rng *rand.Rand) *Monster {
	question, answer := GenerateQuestion(round, rng)
	return &Monster{
		ID:        id,
		question:  question,
		answer:    answer,
		alive:     true,
		baseSpeed: speed,
		speed:     speed,
	}
}

// IsAlive 怪物是否存活
func (m *Monster) IsAlive() bool {
	return m.alive
}

// Kill 消灭怪物，重复调用无副作用
func (m *Monster) Kill() {
	m.alive = false
}

// GetPathProgress 返回路径进度
func (m *Monster) GetPathProgress() float64 {
	return m.pathProgress
}

// SetPathProgress 设置路径进度，自动限制在 [0, 1]
func (m *Monster) SetPathProgress(progress float64) {
	m.pathProgress = clampFloat(progress, 0, 1)
}

// GetSpeed 返回当前速度
func (m *Monster) GetSpeed() float64 {
	return m.speed
}

// GetBaseSpeed 返回基础速度
func (m *Monster) GetBaseSpeed() float64 {
	return m.baseSpeed
}

// SetSpeed 同时设置基础速度和当前速度
func (m *Monster) SetSpeed(speed float64) {
	m.baseSpeed = speed
	m.speed = speed
}

// ApplySpeedModifier 当前速度 = 基础速度 × multiplier
// 每次调用都从基础速度重新计算，不叠加；multiplier 为 1 时恢复原速
func (m *Monster) ApplySpeedModifier(multiplier float64) {
	m.speed = m.baseSpeed * multiplier
}

// GetQuestion 返回题目文本
func (m *Monster) GetQuestion() string {
	return m.question
}

// GetAnswer 返回题目答案
func (m *Monster) GetAnswer() int {
	return m.answer
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
