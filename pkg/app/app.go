// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"image/color"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/decker502/mathtd/pkg/config"
	"github.com/decker502/mathtd/pkg/game"
	"github.com/decker502/mathtd/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// GameConfig 游戏调参，为 nil 时使用默认值
	GameConfig *config.GameConfig
	// Seed 出题随机种子，0 表示使用当前时间
	Seed int64
	// StorageAppName 存档目录名，为空时使用 game.StorageAppName
	StorageAppName string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	potions                  *game.PotionManager
	leaderboard              *game.Leaderboard
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，如需加载嵌入配置，必须先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gameConfig := cfg.GameConfig
	if gameConfig == nil {
		gameConfig = config.DefaultGameConfig()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	log.Printf("[App] Random seed: %d", seed)

	appName := cfg.StorageAppName
	if appName == "" {
		appName = game.StorageAppName
	}

	// 存档不可用时 gdata 为 nil，药水和排行榜只保存在内存中
	gdataManager := game.OpenStorage(appName)
	potions := game.NewPotionManager(gdataManager)
	leaderboard := game.NewLeaderboard(gdataManager)

	sceneManager := game.NewSceneManager()

	menuScene := scenes.NewMenuScene(sceneManager, potions)
	gameScene := scenes.NewGameScene(gameConfig, sceneManager, potions, rng)
	minigameScene := scenes.NewMinigameScene(gameConfig.Minigame, sceneManager, potions, rng)
	helpScene := scenes.NewHelpScene(sceneManager)
	resultScene := scenes.NewResultScene(sceneManager, leaderboard)

	sceneManager.Register(game.ScreenMenu, func(game.Screen) game.Scene {
		return menuScene
	})
	sceneManager.Register(game.ScreenGame, func(game.Screen) game.Scene {
		gameScene.Start()
		return gameScene
	})
	sceneManager.Register(game.ScreenMinigame, func(game.Screen) game.Scene {
		minigameScene.Show()
		return minigameScene
	})
	sceneManager.Register(game.ScreenHelp, func(game.Screen) game.Scene {
		return helpScene
	})
	sceneManager.Register(game.ScreenResult, func(screen game.Screen) game.Scene {
		resultScene.ShowResult(screen.FinalRound)
		return resultScene
	})

	sceneManager.SwitchToScreen(game.Screen{Type: game.ScreenMenu})

	return &App{
		sceneManager: sceneManager,
		potions:      potions,
		leaderboard:  leaderboard,
		verbose:      cfg.Verbose,
	}, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// GetPotionManager 返回药水背包
func (a *App) GetPotionManager() *game.PotionManager {
	return a.potions
}

// GetLeaderboard 返回排行榜
func (a *App) GetLeaderboard() *game.Leaderboard {
	return a.leaderboard
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
