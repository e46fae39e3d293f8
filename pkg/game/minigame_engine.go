package game

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/decker502/mathtd/pkg/config"
)

// 小游戏题干固定文本
const (
	minigamePrefix = "Simplify "
	minigameSuffix = " to its full expression:"
)

// 选项数量
const minigameOptionCount = 4

// MinigameOption 一个选项
type MinigameOption struct {
	Label     string
	IsCorrect bool
}

// MinigameQuestion 题干（前缀 + 高亮表达式 + 后缀）
type MinigameQuestion struct {
	Prefix      string
	Highlighted string
	Suffix      string
}

// MinigameState 小游戏当前状态快照
type MinigameState struct {
	Question       MinigameQuestion
	Options        []MinigameOption
	Score          int
	QuestionNumber int
	MaxQuestions   int
}

// SubmitResult 一次作答的结果
type SubmitResult struct {
	IsCorrect      bool
	CorrectIndex   int // 正确选项下标，用于反馈高亮
	Score          int
	QuestionNumber int
}

// MinigameEngine 药水小游戏的出题与计分
//
// 题目形如 m(x ± c)，要求选出展开式 mx ± mc。
// 计分：答对 +CorrectPoints，答错 -WrongPenalty（下限 0）。
// 胜负按独立的答对计数判断，不从截断后的分数反推。
type MinigameEngine struct {
	cfg config.MinigameConfig
	rng *rand.Rand

	score          int
	questionNumber int
	correctCount   int
	attemptedCount int

	// answeredCurrent 当前题目是否已计入答对/作答计数
	answeredCurrent bool

	question MinigameQuestion
	options  []MinigameOption
}

// NewMinigameEngine 创建小游戏引擎并生成第一题
func NewMinigameEngine(cfg config.MinigameConfig, rng *rand.Rand) *MinigameEngine {
	e := &MinigameEngine{cfg: cfg, rng: rng}
	e.Reset()
	return e
}

// Reset 分数清零、回到第 1 题并重新出题
func (e *MinigameEngine) Reset() {
	e.score = 0
	e.questionNumber = 1
	e.correctCount = 0
	e.attemptedCount = 0
	e.generateQuestion()
}

// SubmitAnswer 提交选项下标
// 非法下标按答错处理；作答不会自动进入下一题
func (e *MinigameEngine) SubmitAnswer(index int) SubmitResult {
	correctIndex := e.correctIndex()
	isCorrect := index >= 0 && index < len(e.options) && e.options[index].IsCorrect

	if isCorrect {
		e.score += e.cfg.CorrectPoints
	} else {
		e.score -= e.cfg.WrongPenalty
		if e.score < 0 {
			e.score = 0
		}
	}

	// 同一题多次提交只有第一次计入胜负统计
	if !e.answeredCurrent {
		e.answeredCurrent = true
		e.attemptedCount++
		if isCorrect {
			e.correctCount++
		}
	}

	return SubmitResult{
		IsCorrect:      isCorrect,
		CorrectIndex:   correctIndex,
		Score:          e.score,
		QuestionNumber: e.questionNumber,
	}
}

// AdvanceQuestion 进入下一题
//
// 返回：
//   - bool: 还有题目时返回 true；已答完全部题目时返回 false（不再出题）
func (e *MinigameEngine) AdvanceQuestion() bool {
	e.questionNumber++
	if e.questionNumber > e.cfg.MaxQuestions {
		return false
	}
	e.generateQuestion()
	return true
}

// IsWin 已作答题目中答对比例达到 WinPercent 时获胜
// 尚未作答时不算获胜
func (e *MinigameEngine) IsWin() bool {
	if e.attemptedCount == 0 {
		return false
	}
	return e.correctCount*100 >= e.cfg.WinPercent*e.attemptedCount
}

// GetState 返回当前状态快照
func (e *MinigameEngine) GetState() MinigameState {
	options := make([]MinigameOption, len(e.options))
	copy(options, e.options)
	return MinigameState{
		Question:       e.question,
		Options:        options,
		Score:          e.score,
		QuestionNumber: e.questionNumber,
		MaxQuestions:   e.cfg.MaxQuestions,
	}
}

// GetMaxQuestions 返回每局题目数
func (e *MinigameEngine) GetMaxQuestions() int {
	return e.cfg.MaxQuestions
}

// CorrectCount 返回答对题数
func (e *MinigameEngine) CorrectCount() int {
	return e.correctCount
}

// AttemptedCount 返回已作答题数
func (e *MinigameEngine) AttemptedCount() int {
	return e.attemptedCount
}

func (e *MinigameEngine) correctIndex() int {
	for i, opt := range e.options {
		if opt.IsCorrect {
			return i
		}
	}
	return -1
}

// generateQuestion 生成新题目和四个互不相同的选项
func (e *MinigameEngine) generateQuestion() {
	m := randRange(e.rng, 2, 9)
	c := 0
	for c == 0 {
		c = randRange(e.rng, -9, 9)
	}

	sign := "+"
	if c < 0 {
		sign = "-"
	}
	e.question = MinigameQuestion{
		Prefix:      minigamePrefix,
		Highlighted: fmt.Sprintf("%d(x %s %d)", m, sign, absInt(c)),
		Suffix:      minigameSuffix,
	}

	correct := FormatLinear(m, m*c)
	used := map[string]bool{correct: true}
	options := []MinigameOption{{Label: correct, IsCorrect: true}}

	// 常见错误：只乘一项、系数和常数互换、系数或常数差一
	candidates := []string{
		FormatLinear(m, c),
		FormatLinear(m*c, m),
		FormatLinear(m*c, c),
		FormatLinear(m+1, m*c),
		FormatLinear(m-1, m*c),
		FormatLinear(m, m*(c+1)),
	}
	e.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	for _, label := range candidates {
		if len(options) == minigameOptionCount {
			break
		}
		if used[label] {
			continue
		}
		used[label] = true
		options = append(options, MinigameOption{Label: label})
	}

	// 候选重复过多时随机补齐
	for len(options) < minigameOptionCount {
		label := FormatLinear(randRange(e.rng, 2, 9), randRange(e.rng, -15, 15))
		if used[label] {
			continue
		}
		used[label] = true
		options = append(options, MinigameOption{Label: label})
	}

	e.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	e.options = options
	e.answeredCurrent = false
}

// FormatLinear 把 coef·x + constant 格式化为 "3x + 6"、"x - 2"、"-6x"
// 常数为 0 时省略常数项
func FormatLinear(coef, constant int) string {
	if coef == 0 {
		return strconv.Itoa(constant)
	}

	var b strings.Builder
	switch coef {
	case 1:
		b.WriteString("x")
	case -1:
		b.WriteString("-x")
	default:
		b.WriteString(strconv.Itoa(coef))
		b.WriteString("x")
	}

	switch {
	case constant > 0:
		fmt.Fprintf(&b, " + %d", constant)
	case constant < 0:
		fmt.Fprintf(&b, " - %d", -constant)
	}
	return b.String()
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
