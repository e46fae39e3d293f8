package components

// VirtualKeypadComponent 屏幕数字键盘组件
// 用于触摸设备上的答案输入
type VirtualKeypadComponent struct {
	// 显示状态
	IsVisible bool // 键盘是否可见

	// 按键状态
	PressedKey   string  // 当前被按下的按键（用于视觉反馈）
	PressedTimer float64 // 按下状态计时器（用于短暂高亮）

	// 输入消费状态（用于阻止事件穿透）
	InputConsumedThisFrame bool // 本帧是否消费了输入事件

	// 布局配置
	KeyHeight  float64 // 按键高度（像素）
	KeySpacing float64 // 按键间距（像素）
	KeypadX    float64 // 键盘左边缘
	KeypadY    float64 // 键盘上边缘
	KeypadW    float64 // 键盘总宽度
}

// KeyInfo 按键信息（用于布局计算和点击检测）
type KeyInfo struct {
	Label       string  // 显示的文字
	Action      string  // 按键动作（BACKSPACE, DONE, 或字符本身）
	X           float64 // 按键左上角 X
	Y           float64 // 按键左上角 Y
	Width       float64 // 按键宽度
	Height      float64 // 按键高度
	WidthFactor float64 // 宽度倍数（相对于标准按键）
}

// KeypadLayout 数字键盘布局（单行）
var KeypadLayout = []string{
	"1", "2", "3", "4", "5", "6", "7", "8", "9", "0", "-", ".", "BACKSPACE", "DONE",
}

// 特殊按键宽度倍数
const (
	KeyWidthNormal    = 1.0 // 普通按键
	KeyWidthBackspace = 1.5 // 退格键
	KeyWidthDone      = 1.5 // 提交键
)

// 特殊按键显示标签
const (
	LabelBackspace = "Del"
	LabelDone      = "OK"
)

// GetKeyWidthFactor 获取按键的宽度倍数
func GetKeyWidthFactor(action string) float64 {
	switch action {
	case "BACKSPACE":
		return KeyWidthBackspace
	case "DONE":
		return KeyWidthDone
	default:
		return KeyWidthNormal
	}
}

// GetKeyLabel 获取按键的显示标签
func GetKeyLabel(action string) string {
	switch action {
	case "BACKSPACE":
		return LabelBackspace
	case "DONE":
		return LabelDone
	default:
		return action
	}
}
