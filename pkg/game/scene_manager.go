package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// ScreenHandler 处理一种屏幕切换请求，返回要激活的场景
// 返回 nil 表示保持当前场景
type ScreenHandler func(screen Screen) Scene

// SceneManager manages the game's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
//
// 每种 ScreenType 注册一个处理函数，SwitchToScreen 按标签分发
type SceneManager struct {
	currentScene Scene
	currentType  ScreenType
	handlers     map[ScreenType]ScreenHandler
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchToScreen to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{
		handlers: make(map[ScreenType]ScreenHandler),
	}
}

// Register 为屏幕类型注册处理函数，重复注册会覆盖
func (sm *SceneManager) Register(screenType ScreenType, handler ScreenHandler) {
	sm.handlers[screenType] = handler
}

// SwitchToScreen 隐藏当前场景并交给对应类型的处理函数
func (sm *SceneManager) SwitchToScreen(screen Screen) {
	handler, ok := sm.handlers[screen.Type]
	if !ok {
		log.Printf("[SceneManager] 错误: 未注册屏幕类型 %s", screen.Type)
		return
	}

	if hideable, ok := sm.currentScene.(Hideable); ok {
		hideable.Hide()
	}

	next := handler(screen)
	if next == nil {
		log.Printf("[SceneManager] 错误: 无法创建场景: %s", screen.Type)
		return
	}

	sm.currentScene = next
	sm.currentType = screen.Type
	log.Printf("[SceneManager] 切换到屏幕: %s", screen.Type)
}

// GetCurrentScene 返回当前活动的场景，没有则返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// GetCurrentType 返回当前屏幕类型
func (sm *SceneManager) GetCurrentType() ScreenType {
	return sm.currentType
}

// Update updates the currently active scene.
// deltaTime is the time elapsed since the last update in seconds.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
