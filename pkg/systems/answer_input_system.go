package systems

import (
	"log"

	"github.com/decker502/mathtd/pkg/components"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 光标闪烁间隔（秒）
const answerCursorBlinkInterval = 0.5

// AnswerInputSystem 答案输入系统
// 把键盘输入写入 AnswerInputComponent，回车时触发提交回调
//
// 实现 AnswerInput 端口，供 RoundController 读取和清空输入
type AnswerInputSystem struct {
	input    *components.AnswerInputComponent
	onSubmit func()
}

// NewAnswerInputSystem 创建答案输入系统
//
// 参数：
//   - maxLength: 最大字符数（0 = 无限制）
func NewAnswerInputSystem(maxLength int) *AnswerInputSystem {
	return &AnswerInputSystem{
		input: &components.AnswerInputComponent{
			MaxLength:   maxLength,
			Placeholder: "Type answer, Enter to submit",
			IsFocused:   true,
		},
	}
}

// Component 返回输入框组件（渲染用）
func (s *AnswerInputSystem) Component() *components.AnswerInputComponent {
	return s.input
}

// OnSubmit 注册提交回调
func (s *AnswerInputSystem) OnSubmit(handler func()) {
	s.onSubmit = handler
}

// Value 返回当前输入
func (s *AnswerInputSystem) Value() string {
	return s.input.Text
}

// Reset 清空输入
func (s *AnswerInputSystem) Reset() {
	s.input.Text = ""
}

// SetFocused 设置是否接收键盘输入
func (s *AnswerInputSystem) SetFocused(focused bool) {
	s.input.IsFocused = focused
	if !focused {
		s.input.CursorVisible = false
	}
}

// Update 读取本帧键盘输入
func (s *AnswerInputSystem) Update(deltaTime float64) {
	if !s.input.IsFocused {
		s.input.CursorVisible = false
		return
	}

	s.updateCursorBlink(deltaTime)

	if runes := ebiten.AppendInputChars(nil); len(runes) > 0 {
		s.InsertRunes(runes)
	}

	// 第1帧立即响应，按住后每隔3帧删除一个字符
	backspaceDuration := inpututil.KeyPressDuration(ebiten.KeyBackspace)
	if backspaceDuration == 1 || (backspaceDuration >= 30 && backspaceDuration%3 == 0) {
		s.Backspace()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		s.Submit()
	}
}

// updateCursorBlink 更新光标闪烁状态
func (s *AnswerInputSystem) updateCursorBlink(deltaTime float64) {
	s.input.CursorBlinkTimer += deltaTime
	if s.input.CursorBlinkTimer >= answerCursorBlinkInterval {
		s.input.CursorBlinkTimer = 0
		s.input.CursorVisible = !s.input.CursorVisible
	}
}

// InsertRunes 追加字符，只接受数字、负号和小数点
// 负号只能出现在开头
func (s *AnswerInputSystem) InsertRunes(runes []rune) {
	for _, r := range runes {
		switch {
		case r >= '0' && r <= '9', r == '.':
		case r == '-' && s.input.Text == "":
		default:
			continue
		}

		if s.input.MaxLength > 0 && len(s.input.Text) >= s.input.MaxLength {
			log.Printf("[AnswerInputSystem] Max length reached (%d chars)", s.input.MaxLength)
			return
		}
		s.input.Text += string(r)
	}

	// 输入时光标应该可见
	s.input.CursorBlinkTimer = 0
	s.input.CursorVisible = true
}

// Backspace 删除最后一个字符
func (s *AnswerInputSystem) Backspace() {
	if s.input.Text == "" {
		return
	}
	s.input.Text = s.input.Text[:len(s.input.Text)-1]
	s.input.CursorBlinkTimer = 0
	s.input.CursorVisible = true
}

// Submit 触发提交回调
func (s *AnswerInputSystem) Submit() {
	if s.onSubmit == nil {
		log.Printf("[AnswerInputSystem] ERROR: submit handler not set")
		return
	}
	s.onSubmit()
}
