package config

import (
	"fmt"
	"os"
	"time"

	"github.com/decker502/mathtd/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// DefaultGameConfigPath 嵌入的默认配置文件路径
const DefaultGameConfigPath = "data/game_config.yaml"

// GameConfig 游戏调参配置
// 所有时间字段单位为毫秒，通过对应的 Duration 方法转换
type GameConfig struct {
	Round    RoundConfig    `yaml:"round"`    // 回合与怪物参数
	Potions  PotionConfig   `yaml:"potions"`  // 药水效果参数
	Minigame MinigameConfig `yaml:"minigame"` // 小游戏参数
}

// RoundConfig 回合参数
type RoundConfig struct {
	MonstersPerRound    int     `yaml:"monstersPerRound"`    // 每回合怪物数量
	MaxHealth           int     `yaml:"maxHealth"`           // 塔的最大生命值
	ReachEndDamage      int     `yaml:"reachEndDamage"`      // 怪物到达终点造成的伤害
	MonsterSpeed        float64 `yaml:"monsterSpeed"`        // 怪物基础速度（每秒前进的路径比例）
	SpawnIntervalMs     int     `yaml:"spawnIntervalMs"`     // 相邻怪物出场间隔
	RoundRestartDelayMs int     `yaml:"roundRestartDelayMs"` // 回合结束到下一回合开始的延迟
	QuestionFlashMs     int     `yaml:"questionFlashMs"`     // 答题框闪烁后褪色时长
}

// PotionConfig 药水参数
type PotionConfig struct {
	HealAmount      int     `yaml:"healAmount"`      // 治疗药水回复量
	SlowMultiplier  float64 `yaml:"slowMultiplier"`  // 减速药水速度倍率（相对基础速度）
	SlowDurationMs  int     `yaml:"slowDurationMs"`  // 减速持续时间
	StatusMessageMs int     `yaml:"statusMessageMs"` // 状态提示停留时间
}

// MinigameConfig 小游戏参数
type MinigameConfig struct {
	MaxQuestions    int `yaml:"maxQuestions"`    // 每局题目数
	CorrectPoints   int `yaml:"correctPoints"`   // 答对加分
	WrongPenalty    int `yaml:"wrongPenalty"`    // 答错扣分
	WinPercent      int `yaml:"winPercent"`      // 获胜所需正确率（百分比）
	FeedbackDelayMs int `yaml:"feedbackDelayMs"` // 答题反馈停留时间
	FinishDelayMs   int `yaml:"finishDelayMs"`   // 结算提示停留时间
}

// DefaultGameConfig 返回默认配置
func DefaultGameConfig() *GameConfig {
	cfg := &GameConfig{}
	applyDefaults(cfg)
	return cfg
}

// LoadGameConfig 从文件系统加载配置
//
// 参数：
//   - path: 配置文件路径（相对或绝对路径）
//
// 返回：
//   - *GameConfig: 解析并补全默认值后的配置
//   - error: 读取、解析或校验失败时返回错误
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config file %s: %w", path, err)
	}
	return parseGameConfig(path, data)
}

// LoadEmbeddedGameConfig 从嵌入文件系统加载配置
// 路径必须以 "data/" 开头
func LoadEmbeddedGameConfig(path string) (*GameConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded game config %s: %w", path, err)
	}
	return parseGameConfig(path, data)
}

func parseGameConfig(source string, data []byte) (*GameConfig, error) {
	var cfg GameConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config YAML from %s: %w", source, err)
	}

	applyDefaults(&cfg)

	if err := validateGameConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid game config in %s: %w", source, err)
	}

	return &cfg, nil
}

// applyDefaults 为缺失（零值）的字段设置默认值
func applyDefaults(cfg *GameConfig) {
	r := &cfg.Round
	if r.MonstersPerRound == 0 {
		r.MonstersPerRound = 5
	}
	if r.MaxHealth == 0 {
		r.MaxHealth = 100
	}
	if r.ReachEndDamage == 0 {
		r.ReachEndDamage = 10
	}
	if r.MonsterSpeed == 0 {
		r.MonsterSpeed = 0.08
	}
	if r.SpawnIntervalMs == 0 {
		r.SpawnIntervalMs = 1000
	}
	if r.RoundRestartDelayMs == 0 {
		r.RoundRestartDelayMs = 1000
	}
	if r.QuestionFlashMs == 0 {
		r.QuestionFlashMs = 400
	}

	p := &cfg.Potions
	if p.HealAmount == 0 {
		p.HealAmount = 20
	}
	if p.SlowMultiplier == 0 {
		p.SlowMultiplier = 0.2
	}
	if p.SlowDurationMs == 0 {
		p.SlowDurationMs = 5000
	}
	if p.StatusMessageMs == 0 {
		p.StatusMessageMs = 1500
	}

	m := &cfg.Minigame
	if m.MaxQuestions == 0 {
		m.MaxQuestions = 10
	}
	if m.CorrectPoints == 0 {
		m.CorrectPoints = 10
	}
	if m.WrongPenalty == 0 {
		m.WrongPenalty = 5
	}
	if m.WinPercent == 0 {
		m.WinPercent = 70
	}
	if m.FeedbackDelayMs == 0 {
		m.FeedbackDelayMs = 900
	}
	if m.FinishDelayMs == 0 {
		m.FinishDelayMs = 2000
	}
}

// validateGameConfig 校验配置的合法性
func validateGameConfig(cfg *GameConfig) error {
	r := cfg.Round
	if r.MonstersPerRound < 1 {
		return fmt.Errorf("round.monstersPerRound must be at least 1, got %d", r.MonstersPerRound)
	}
	if r.MaxHealth < 1 {
		return fmt.Errorf("round.maxHealth must be at least 1, got %d", r.MaxHealth)
	}
	if r.ReachEndDamage < 0 {
		return fmt.Errorf("round.reachEndDamage must not be negative, got %d", r.ReachEndDamage)
	}
	if r.MonsterSpeed < 0 {
		return fmt.Errorf("round.monsterSpeed must be positive, got %v", r.MonsterSpeed)
	}
	if r.SpawnIntervalMs < 0 || r.RoundRestartDelayMs < 0 || r.QuestionFlashMs < 0 {
		return fmt.Errorf("round durations must not be negative")
	}

	p := cfg.Potions
	if p.HealAmount < 0 {
		return fmt.Errorf("potions.healAmount must not be negative, got %d", p.HealAmount)
	}
	if p.SlowMultiplier < 0 || p.SlowMultiplier > 1 {
		return fmt.Errorf("potions.slowMultiplier must be in (0, 1], got %v", p.SlowMultiplier)
	}
	if p.SlowDurationMs < 0 || p.StatusMessageMs < 0 {
		return fmt.Errorf("potion durations must not be negative")
	}

	m := cfg.Minigame
	if m.MaxQuestions < 1 {
		return fmt.Errorf("minigame.maxQuestions must be at least 1, got %d", m.MaxQuestions)
	}
	if m.WinPercent < 1 || m.WinPercent > 100 {
		return fmt.Errorf("minigame.winPercent must be in [1, 100], got %d", m.WinPercent)
	}
	if m.CorrectPoints < 0 || m.WrongPenalty < 0 {
		return fmt.Errorf("minigame points must not be negative")
	}
	if m.FeedbackDelayMs < 0 || m.FinishDelayMs < 0 {
		return fmt.Errorf("minigame durations must not be negative")
	}

	return nil
}

// msToDuration 毫秒整数转 time.Duration
func msToDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// SpawnInterval 相邻怪物出场间隔
func (r RoundConfig) SpawnInterval() time.Duration { return msToDuration(r.SpawnIntervalMs) }

// RoundRestartDelay 回合间延迟
func (r RoundConfig) RoundRestartDelay() time.Duration { return msToDuration(r.RoundRestartDelayMs) }

// QuestionFlash 答题框褪色时长
func (r RoundConfig) QuestionFlash() time.Duration { return msToDuration(r.QuestionFlashMs) }

// SlowDuration 减速持续时间
func (p PotionConfig) SlowDuration() time.Duration { return msToDuration(p.SlowDurationMs) }

// StatusMessage 状态提示停留时间
func (p PotionConfig) StatusMessage() time.Duration { return msToDuration(p.StatusMessageMs) }

// FeedbackDelay 答题反馈停留时间
func (m MinigameConfig) FeedbackDelay() time.Duration { return msToDuration(m.FeedbackDelayMs) }

// FinishDelay 结算提示停留时间
func (m MinigameConfig) FinishDelay() time.Duration { return msToDuration(m.FinishDelayMs) }
