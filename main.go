package main

import (
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/decker502/mathtd/pkg/app"
	"github.com/decker502/mathtd/pkg/config"
	"github.com/decker502/mathtd/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"
)

var (
	// 命令行参数
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	configPath = flag.String("config", "", "游戏配置文件路径，为空时使用内置配置")
	seed       = flag.Int64("seed", 0, "出题随机种子，0 表示使用当前时间")
)

func main() {
	// .env 不存在不是错误
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("[Main] Warning: failed to load .env: %v", err)
	}

	flag.Parse()

	// 环境变量作为命令行参数的默认值
	if *configPath == "" {
		*configPath = os.Getenv("MATHTD_CONFIG")
	}
	if !*verbose {
		if v, err := strconv.ParseBool(os.Getenv("MATHTD_VERBOSE")); err == nil {
			*verbose = v
		}
	}

	embedded.Init(dataFS)

	gameConfig, err := loadGameConfig(*configPath)
	if err != nil {
		log.Fatalf("游戏配置加载失败: %v", err)
	}

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		GameConfig: gameConfig,
		Seed:       *seed,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Math Tower Defense")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}

// loadGameConfig 从文件或嵌入资源加载配置
func loadGameConfig(path string) (*config.GameConfig, error) {
	if path != "" {
		return config.LoadGameConfig(path)
	}
	return config.LoadEmbeddedGameConfig(config.DefaultGameConfigPath)
}
