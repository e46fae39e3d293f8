package components

// AnswerInputComponent 答案输入框组件
// 只保存输入状态，键盘处理由 systems.AnswerInputSystem 负责
type AnswerInputComponent struct {
	// 输入框文本
	Text string // 当前输入的答案

	// 光标状态
	CursorVisible    bool    // 光标是否可见（闪烁效果）
	CursorBlinkTimer float64 // 光标闪烁计时器（秒）

	// 输入限制
	MaxLength   int    // 最大字符数（0 = 无限制）
	Placeholder string // 占位符文本（输入框为空时显示）

	// 焦点状态
	IsFocused bool // 是否接收键盘输入
}
