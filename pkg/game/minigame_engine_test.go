package game

import (
	"fmt"
	"math/rand"
	"regexp"
	"testing"

	"github.com/decker502/mathtd/pkg/config"
)

func newTestMinigameEngine(seed int64) *MinigameEngine {
	return NewMinigameEngine(config.DefaultGameConfig().Minigame, rand.New(rand.NewSource(seed)))
}

// findOption 返回正确或错误选项的下标
func findOption(state MinigameState, correct bool) int {
	for i, opt := range state.Options {
		if opt.IsCorrect == correct {
			return i
		}
	}
	return -1
}

// TestMinigameQuestionShape 题干格式与选项约束
func TestMinigameQuestionShape(t *testing.T) {
	highlighted := regexp.MustCompile(`^\d\(x [+-] \d\)$`)

	for seed := int64(0); seed < 200; seed++ {
		e := newTestMinigameEngine(seed)
		state := e.GetState()

		if state.Question.Prefix != "Simplify " || state.Question.Suffix != " to its full expression:" {
			t.Fatalf("seed %d: unexpected prefix/suffix %+v", seed, state.Question)
		}
		if !highlighted.MatchString(state.Question.Highlighted) {
			t.Fatalf("seed %d: highlighted %q does not match m(x ± c)", seed, state.Question.Highlighted)
		}
		if len(state.Options) != 4 {
			t.Fatalf("seed %d: got %d options, want 4", seed, len(state.Options))
		}

		correct := 0
		labels := map[string]bool{}
		for _, opt := range state.Options {
			if opt.IsCorrect {
				correct++
			}
			if labels[opt.Label] {
				t.Fatalf("seed %d: duplicate option %q", seed, opt.Label)
			}
			labels[opt.Label] = true
		}
		if correct != 1 {
			t.Fatalf("seed %d: got %d correct options, want 1", seed, correct)
		}
	}
}

// TestMinigameCorrectExpansion 正确选项是展开式
func TestMinigameCorrectExpansion(t *testing.T) {
	tests := []struct {
		coef     int
		constant int
		expected string
	}{
		{3, 6, "3x + 6"},
		{4, -8, "4x - 8"},
		{1, -2, "x - 2"},
		{-1, 0, "-x"},
		{-6, 0, "-6x"},
		{0, 7, "7"},
	}
	for _, tt := range tests {
		if got := FormatLinear(tt.coef, tt.constant); got != tt.expected {
			t.Errorf("FormatLinear(%d, %d) = %q, want %q", tt.coef, tt.constant, got, tt.expected)
		}
	}

	e := newTestMinigameEngine(42)
	state := e.GetState()
	var m, c int
	var sign string
	if _, err := fmt.Sscanf(state.Question.Highlighted, "%d(x %s %d)", &m, &sign, &c); err != nil {
		t.Fatalf("failed to parse %q: %v", state.Question.Highlighted, err)
	}
	if sign == "-" {
		c = -c
	}
	want := FormatLinear(m, m*c)
	if label := state.Options[findOption(state, true)].Label; label != want {
		t.Errorf("correct option: got %q, want %q", label, want)
	}
}

// TestMinigameScoring 计分下限为 0
func TestMinigameScoring(t *testing.T) {
	e := newTestMinigameEngine(1)

	t.Run("答错不会低于0", func(t *testing.T) {
		result := e.SubmitAnswer(findOption(e.GetState(), false))
		if result.IsCorrect {
			t.Fatal("expected incorrect")
		}
		if result.Score != 0 {
			t.Errorf("score: got %d, want 0", result.Score)
		}
	})

	t.Run("答对加10", func(t *testing.T) {
		e.AdvanceQuestion()
		state := e.GetState()
		correctIndex := findOption(state, true)
		result := e.SubmitAnswer(correctIndex)
		if !result.IsCorrect || result.Score != 10 {
			t.Errorf("result: %+v", result)
		}
		if result.CorrectIndex != correctIndex {
			t.Errorf("CorrectIndex: got %d, want %d", result.CorrectIndex, correctIndex)
		}
		if result.QuestionNumber != 2 {
			t.Errorf("QuestionNumber: got %d, want 2", result.QuestionNumber)
		}
	})

	t.Run("答错扣5", func(t *testing.T) {
		e.AdvanceQuestion()
		result := e.SubmitAnswer(findOption(e.GetState(), false))
		if result.Score != 5 {
			t.Errorf("score: got %d, want 5", result.Score)
		}
	})

	t.Run("非法下标按答错处理", func(t *testing.T) {
		e.AdvanceQuestion()
		result := e.SubmitAnswer(7)
		if result.IsCorrect || result.Score != 0 {
			t.Errorf("result: %+v", result)
		}
		if result.CorrectIndex < 0 || result.CorrectIndex > 3 {
			t.Errorf("CorrectIndex out of range: %d", result.CorrectIndex)
		}
	})
}

// TestMinigamePerfectRun 全部答对得100分并获胜
func TestMinigamePerfectRun(t *testing.T) {
	e := newTestMinigameEngine(7)

	answered := 0
	for {
		e.SubmitAnswer(findOption(e.GetState(), true))
		answered++
		if !e.AdvanceQuestion() {
			break
		}
	}

	if answered != 10 {
		t.Errorf("answered: got %d, want 10", answered)
	}
	if score := e.GetState().Score; score != 100 {
		t.Errorf("score: got %d, want 100", score)
	}
	if !e.IsWin() {
		t.Error("perfect run should win")
	}
}

// TestMinigameWinThreshold 胜负按答对比例判断
func TestMinigameWinThreshold(t *testing.T) {
	tests := []struct {
		name    string
		correct int
		wrong   int
		win     bool
	}{
		{"未作答不算获胜", 0, 0, false},
		{"7对3错刚好70%", 7, 3, true},
		{"6对4错不足70%", 6, 4, false},
		{"全部答错", 0, 10, false},
		{"部分作答也按比例", 3, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestMinigameEngine(3)
			for i := 0; i < tt.wrong; i++ {
				e.SubmitAnswer(findOption(e.GetState(), false))
				e.AdvanceQuestion()
			}
			for i := 0; i < tt.correct; i++ {
				e.SubmitAnswer(findOption(e.GetState(), true))
				e.AdvanceQuestion()
			}
			if e.IsWin() != tt.win {
				t.Errorf("IsWin: got %v, want %v (correct=%d attempted=%d)",
					e.IsWin(), tt.win, e.CorrectCount(), e.AttemptedCount())
			}
		})
	}
}

// TestMinigameRepeatedSubmission 同一题重复提交只统计一次
func TestMinigameRepeatedSubmission(t *testing.T) {
	e := newTestMinigameEngine(9)
	state := e.GetState()

	e.SubmitAnswer(findOption(state, false))
	e.SubmitAnswer(findOption(state, true))

	if e.AttemptedCount() != 1 || e.CorrectCount() != 0 {
		t.Errorf("counts: attempted=%d correct=%d, want 1/0", e.AttemptedCount(), e.CorrectCount())
	}
	if e.GetState().Score != 10 {
		t.Errorf("score should still move on each submission: got %d", e.GetState().Score)
	}
}

// TestMinigameReset 重置后回到初始状态
func TestMinigameReset(t *testing.T) {
	e := newTestMinigameEngine(4)
	e.SubmitAnswer(findOption(e.GetState(), true))
	e.AdvanceQuestion()

	e.Reset()
	state := e.GetState()
	if state.Score != 0 || state.QuestionNumber != 1 || state.MaxQuestions != 10 {
		t.Errorf("state after reset: %+v", state)
	}
	if e.AttemptedCount() != 0 || e.CorrectCount() != 0 {
		t.Error("counters should be cleared")
	}
}
