package systems

import (
	"log"

	"github.com/decker502/mathtd/pkg/components"
	"github.com/decker502/mathtd/pkg/config"
	"github.com/decker502/mathtd/pkg/utils"
)

// 按键高亮持续时间（秒）
const keyPressHighlightDuration = 0.1

// VirtualKeypadSystem 屏幕数字键盘系统
// 处理触摸/点击并把按键转交给答案输入框
type VirtualKeypadSystem struct {
	keypad *components.VirtualKeypadComponent
	input  *AnswerInputSystem
	keys   []components.KeyInfo
}

// NewVirtualKeypadSystem 创建数字键盘系统，按 config 中的布局计算按键位置
//
// 参数：
//   - input: 目标答案输入框
func NewVirtualKeypadSystem(input *AnswerInputSystem) *VirtualKeypadSystem {
	s := &VirtualKeypadSystem{
		keypad: &components.VirtualKeypadComponent{
			KeyHeight:  config.KeypadHeight,
			KeySpacing: config.KeypadSpacing,
			KeypadX:    config.KeypadX,
			KeypadY:    config.KeypadY,
			KeypadW:    config.KeypadWidth,
		},
		input: input,
	}
	s.keys = s.layoutKeys()
	return s
}

// Component 返回键盘组件（渲染使用）
func (s *VirtualKeypadSystem) Component() *components.VirtualKeypadComponent {
	return s.keypad
}

// Keys 返回所有按键的布局
func (s *VirtualKeypadSystem) Keys() []components.KeyInfo {
	return s.keys
}

// layoutKeys 按宽度倍数把一行按键铺满键盘宽度
func (s *VirtualKeypadSystem) layoutKeys() []components.KeyInfo {
	kp := s.keypad

	totalFactor := 0.0
	for _, action := range components.KeypadLayout {
		totalFactor += components.GetKeyWidthFactor(action)
	}
	gaps := float64(len(components.KeypadLayout)-1) * kp.KeySpacing
	unit := (kp.KeypadW - gaps) / totalFactor

	keys := make([]components.KeyInfo, 0, len(components.KeypadLayout))
	x := kp.KeypadX
	for _, action := range components.KeypadLayout {
		factor := components.GetKeyWidthFactor(action)
		keys = append(keys, components.KeyInfo{
			Label:       components.GetKeyLabel(action),
			Action:      action,
			X:           x,
			Y:           kp.KeypadY,
			Width:       unit * factor,
			Height:      kp.KeyHeight,
			WidthFactor: factor,
		})
		x += unit*factor + kp.KeySpacing
	}
	return keys
}

// Show 显示键盘
func (s *VirtualKeypadSystem) Show() {
	if !s.keypad.IsVisible {
		log.Printf("[VirtualKeypadSystem] Keypad shown")
	}
	s.keypad.IsVisible = true
}

// Hide 隐藏键盘
func (s *VirtualKeypadSystem) Hide() {
	s.keypad.IsVisible = false
	s.keypad.PressedKey = ""
	s.keypad.PressedTimer = 0
}

// IsVisible 检查键盘是否可见
func (s *VirtualKeypadSystem) IsVisible() bool {
	return s.keypad.IsVisible
}

// ConsumeInput 本帧点击是否落在键盘上
// 返回 true 时其他系统应跳过本帧的点击事件
func (s *VirtualKeypadSystem) ConsumeInput() bool {
	return s.keypad.InputConsumedThisFrame
}

// Update 更新高亮计时并处理触摸/点击
func (s *VirtualKeypadSystem) Update(deltaTime float64) {
	s.tick(deltaTime)
	if !s.keypad.IsVisible {
		return
	}
	if pressed, x, y := utils.IsJustTouchedOrClicked(); pressed {
		s.HandlePointer(float64(x), float64(y))
	}
}

func (s *VirtualKeypadSystem) tick(deltaTime float64) {
	kp := s.keypad
	kp.InputConsumedThisFrame = false

	if kp.PressedKey != "" {
		kp.PressedTimer -= deltaTime
		if kp.PressedTimer <= 0 {
			kp.PressedKey = ""
			kp.PressedTimer = 0
		}
	}
}

// HandlePointer 处理一次点击，返回是否命中按键
func (s *VirtualKeypadSystem) HandlePointer(x, y float64) bool {
	if !s.keypad.IsVisible {
		return false
	}
	key := s.hitTestKey(x, y)
	if key == nil {
		return false
	}

	s.keypad.InputConsumedThisFrame = true
	s.PressKey(key.Action)
	return true
}

// hitTestKey 检测点击位置对应的按键
func (s *VirtualKeypadSystem) hitTestKey(x, y float64) *components.KeyInfo {
	for i := range s.keys {
		key := &s.keys[i]
		if utils.PointInRect(x, y, key.X, key.Y, key.Width, key.Height) {
			return key
		}
	}
	return nil
}

// PressKey 执行按键动作并设置高亮
func (s *VirtualKeypadSystem) PressKey(action string) {
	s.keypad.PressedKey = action
	s.keypad.PressedTimer = keyPressHighlightDuration

	if s.input == nil {
		log.Printf("[VirtualKeypadSystem] No target input")
		return
	}

	switch action {
	case "BACKSPACE":
		s.input.Backspace()
	case "DONE":
		s.input.Submit()
	default:
		s.input.InsertRunes([]rune(action))
	}
}
