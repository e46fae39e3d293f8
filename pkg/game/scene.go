package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a game scene (menu, gameplay, minigame, help, result).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Hideable 是一个可选接口，场景被切走时调用 Hide()
// 用于取消场景内尚未触发的计时器
type Hideable interface {
	Hide()
}

// ScreenType 屏幕类型标签
type ScreenType int

const (
	ScreenMenu ScreenType = iota
	ScreenGame
	ScreenMinigame
	ScreenHelp
	ScreenResult
)

// String 返回屏幕类型名称（日志用）
func (t ScreenType) String() string {
	switch t {
	case ScreenMenu:
		return "menu"
	case ScreenGame:
		return "game"
	case ScreenMinigame:
		return "minigame"
	case ScreenHelp:
		return "help"
	case ScreenResult:
		return "result"
	default:
		return "unknown"
	}
}

// Screen 屏幕切换请求
// FinalRound 仅对 ScreenResult 有效
type Screen struct {
	Type       ScreenType
	FinalRound int
}

// ScreenSwitcher 屏幕切换能力，由 SceneManager 实现
type ScreenSwitcher interface {
	SwitchToScreen(screen Screen)
}
