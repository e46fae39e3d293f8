package game

import (
	"log"
	"math/rand"

	"github.com/decker502/mathtd/pkg/config"
)

// RoundState 一局游戏的回合状态
// 持有塔的生命值、回合数和本回合的怪物管理器
//
// 不变量：
//   - 0 <= health <= maxHealth
//   - IsGameOver() == (health <= 0)，生命值变化是触发游戏结束的唯一途径
//   - round >= 1，只在 Reset 时回到 1
type RoundState struct {
	health         int
	maxHealth      int
	reachEndDamage int
	round          int
	monsters       *MonsterManager
}

// NewRoundState 根据回合配置创建回合状态
//
// 参数：
//   - cfg: 回合配置（怪物数量、最大生命值、终点伤害、怪物速度）
//   - rng: 题目生成使用的随机数源
func NewRoundState(cfg config.RoundConfig, rng *rand.Rand) *RoundState {
	return &RoundState{
		health:         cfg.MaxHealth,
		maxHealth:      cfg.MaxHealth,
		reachEndDamage: cfg.ReachEndDamage,
		round:          1,
		monsters:       NewMonsterManager(cfg.MonstersPerRound, cfg.MonsterSpeed, rng),
	}
}

// StartRound 重置出场记录并为当前回合生成一批新怪物
func (rs *RoundState) StartRound() {
	rs.monsters.ResetSpawnedTracking()
	rs.monsters.SpawnMonsters(rs.round)
}

// MarkMonsterAsSpawned 标记怪物已出场
func (rs *RoundState) MarkMonsterAsSpawned(id int) {
	rs.monsters.MarkMonsterAsSpawned(id)
}

// GetCurrentActiveMonster 返回当前需要回答的怪物，没有则返回 nil
func (rs *RoundState) GetCurrentActiveMonster() *Monster {
	return rs.monsters.GetFirstSpawnedAliveMonster()
}

// EliminateMonster 消灭指定怪物，失败返回 nil
func (rs *RoundState) EliminateMonster(id int) *Monster {
	return rs.monsters.EliminateMonsterByID(id)
}

// HandleMonsterReachedEnd 怪物到达终点：移除怪物并扣除固定生命值
// 无论移除时怪物是否存活，每次调用都会扣血一次
func (rs *RoundState) HandleMonsterReachedEnd(id int) {
	rs.monsters.RemoveMonster(id)
	rs.DecreaseHealth(rs.reachEndDamage)
	log.Printf("[RoundState] Monster %d reached the tower, health %d", id, rs.health)
}

// DecreaseHealth 扣除生命值，下限为 0
func (rs *RoundState) DecreaseHealth(amount int) {
	rs.health = clampInt(rs.health-amount, 0, rs.maxHealth)
}

// IncreaseHealth 回复生命值，上限为最大生命值
func (rs *RoundState) IncreaseHealth(amount int) {
	rs.health = clampInt(rs.health+amount, 0, rs.maxHealth)
}

// GetHealth 返回当前生命值
func (rs *RoundState) GetHealth() int {
	return rs.health
}

// GetMaxHealth 返回最大生命值
func (rs *RoundState) GetMaxHealth() int {
	return rs.maxHealth
}

// IsGameOver 生命值耗尽时游戏结束
func (rs *RoundState) IsGameOver() bool {
	return rs.health <= 0
}

// IsRoundComplete 本回合怪物全部被消灭或到达终点
func (rs *RoundState) IsRoundComplete() bool {
	return rs.monsters.IsRoundComplete()
}

// NextRound 回合数加一，没有上限
func (rs *RoundState) NextRound() {
	rs.round++
}

// GetRound 返回当前回合数
func (rs *RoundState) GetRound() int {
	return rs.round
}

// GetMonsterManager 返回怪物管理器
func (rs *RoundState) GetMonsterManager() *MonsterManager {
	return rs.monsters
}

// Reset 恢复满血、回到第 1 回合并清空怪物
func (rs *RoundState) Reset() {
	rs.health = rs.maxHealth
	rs.round = 1
	rs.monsters.Reset()
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
