// verify_rounds 无窗口回合验证工具
//
// 用脚本玩家驱动完整的回合流程（出场、答题、到达终点、药水、回合推进、游戏结束），
// 打印时间线，便于在不打开窗口的情况下检查调参。
//
// 用法：
//
//	go run ./cmd/verify_rounds -accuracy 0.8 -think 1.5 -potions 2
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"strconv"

	"github.com/decker502/mathtd/pkg/config"
	"github.com/decker502/mathtd/pkg/game"
	"github.com/decker502/mathtd/pkg/scenes"
	"github.com/decker502/mathtd/pkg/systems"
)

var (
	// 命令行参数
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	configPath = flag.String("config", config.DefaultGameConfigPath, "游戏配置文件路径")
	seed       = flag.Int64("seed", 1, "随机种子")
	accuracy   = flag.Float64("accuracy", 0.8, "脚本玩家的答题正确率 (0-1)")
	think      = flag.Float64("think", 1.5, "脚本玩家每次作答的思考时间（秒）")
	potions    = flag.Int("potions", 0, "开局时每种药水的数量")
	maxSeconds = flag.Float64("max-seconds", 600, "最长模拟时间（秒）")
)

const frameTime = 1.0 / 60.0

// resultSwitcher 记录游戏结束
type resultSwitcher struct {
	finished   bool
	finalRound int
}

func (s *resultSwitcher) SwitchToScreen(screen game.Screen) {
	if screen.Type == game.ScreenResult {
		s.finished = true
		s.finalRound = screen.FinalRound
	}
}

func main() {
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.LoadGameConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		cfg = config.DefaultGameConfig()
	}

	rng := rand.New(rand.NewSource(*seed))
	player := rand.New(rand.NewSource(*seed + 1))

	inventory := game.NewPotionManager(nil)
	for i := 0; i < *potions; i++ {
		inventory.AddPotion(game.PotionHeal)
		inventory.AddPotion(game.PotionTimeSlow)
	}

	switcher := &resultSwitcher{}
	scene := scenes.NewGameScene(cfg, switcher, inventory, rng)
	controller := scene.Controller()
	state := controller.State()

	fmt.Printf("Config: %d monsters/round, speed %.3f, spawn every %v, health %d\n",
		cfg.Round.MonstersPerRound, cfg.Round.MonsterSpeed, cfg.Round.SpawnInterval(), cfg.Round.MaxHealth)
	fmt.Printf("Player: accuracy %.0f%%, think %.1fs, %d potions of each type\n\n", *accuracy*100, *think, *potions)

	scene.Start()

	var (
		elapsed     float64
		nextAnswer  = *think
		lastRound   = state.GetRound()
		lastHealth  = state.GetHealth()
		answered    int
		correct     int
		slowedRound int
	)

	for !switcher.finished && elapsed < *maxSeconds {
		scene.Step(frameTime)
		controller.Update(frameTime)
		elapsed += frameTime

		if h := state.GetHealth(); h != lastHealth {
			fmt.Printf("[%7.2fs] health %d -> %d\n", elapsed, lastHealth, h)
			lastHealth = h
		}
		if r := state.GetRound(); r != lastRound {
			fmt.Printf("[%7.2fs] round %d cleared, next round %d\n", elapsed, lastRound, r)
			lastRound = r
		}

		if controller.Phase() != systems.PhaseRunning {
			continue
		}

		// 生命值过半时喝治疗药水
		if lastHealth <= cfg.Round.MaxHealth/2 && inventory.HasPotion(game.PotionHeal) {
			if controller.UsePotion(game.PotionHeal) {
				fmt.Printf("[%7.2fs] used Heal Potion\n", elapsed)
			}
		}
		// 每回合场上怪物达到 3 只时喝一次减速药水
		if slowedRound != lastRound && spawnedAlive(state) >= 3 && inventory.HasPotion(game.PotionTimeSlow) {
			if controller.UsePotion(game.PotionTimeSlow) {
				slowedRound = lastRound
				fmt.Printf("[%7.2fs] used Time Slow Potion\n", elapsed)
			}
		}

		if elapsed < nextAnswer {
			continue
		}
		monster := state.GetCurrentActiveMonster()
		if monster == nil {
			continue
		}
		nextAnswer = elapsed + *think

		answer := monster.GetAnswer()
		right := player.Float64() < *accuracy
		if !right {
			answer++
		}
		answered++
		if right {
			correct++
		}
		fmt.Printf("[%7.2fs] monster %d: %s  answer %d (%s)\n",
			elapsed, monster.ID, monster.GetQuestion(), answer, verdict(right))

		scene.Input().InsertRunes([]rune(strconv.Itoa(answer)))
		scene.Input().Submit()
	}

	fmt.Println()
	if switcher.finished {
		fmt.Printf("Game over at round %d after %.1fs\n", switcher.finalRound, elapsed)
	} else {
		fmt.Printf("Still alive at round %d with %d health after %.1fs\n", state.GetRound(), state.GetHealth(), elapsed)
	}
	fmt.Printf("Answers: %d/%d correct\n", correct, answered)
}

// spawnedAlive 场上已出场且存活的怪物数
func spawnedAlive(state *game.RoundState) int {
	mm := state.GetMonsterManager()
	count := 0
	for _, m := range mm.GetMonsters() {
		if m.IsAlive() && mm.IsSpawned(m.ID) {
			count++
		}
	}
	return count
}

func verdict(right bool) string {
	if right {
		return "correct"
	}
	return "wrong"
}
