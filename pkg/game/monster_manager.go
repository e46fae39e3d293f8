package game

import (
	"log"
	"math/rand"
)

// MonsterManager 管理当前回合的怪物生命周期
//
// 职责：
//   - 每回合批量生成怪物（ID 跨回合单调递增）
//   - 记录哪些怪物已出场（对玩家可见）
//   - 按ID消灭或移除怪物，维护存活计数
//
// 不变量：
//   - aliveCount 恒等于 monsters 中存活怪物的数量
//   - 回合完成当且仅当 monsters 为空
type MonsterManager struct {
	monsters         []*Monster // 按生成顺序排列
	spawned          map[int]bool
	monstersPerRound int
	monsterSpeed     float64
	nextID           int
	aliveCount       int
	rng              *rand.Rand
}

// NewMonsterManager 创建怪物管理器
//
// 参数：
//   - monstersPerRound: 每回合怪物数量
//   - monsterSpeed: 新怪物的基础速度
//   - rng: 题目生成使用的随机数源
func NewMonsterManager(monstersPerRound int, monsterSpeed float64, rng *rand.Rand) *MonsterManager {
	return &MonsterManager{
		monsters:         make([]*Monster, 0, monstersPerRound),
		spawned:          make(map[int]bool),
		monstersPerRound: monstersPerRound,
		monsterSpeed:     monsterSpeed,
		rng:              rng,
	}
}

// MonstersPerRound 返回每回合怪物数量
func (mm *MonsterManager) MonstersPerRound() int {
	return mm.monstersPerRound
}

// SpawnMonsters 清空当前怪物并生成新一批
// round 决定每只怪物的题型；ID 从内部计数器继续，不按回合重置
func (mm *MonsterManager) SpawnMonsters(round int) {
	mm.monsters = make([]*Monster, 0, mm.monstersPerRound)
	mm.spawned = make(map[int]bool)

	for i := 0; i < mm.monstersPerRound; i++ {
		monster := NewMonster(mm.nextID, round, mm.monsterSpeed, mm.rng)
		mm.nextID++
		mm.monsters = append(mm.monsters, monster)
	}
	mm.aliveCount = mm.monstersPerRound

	log.Printf("[MonsterManager] Spawned %d monsters for round %d (next id %d)", mm.monstersPerRound, round, mm.nextID)
}

// MarkMonsterAsSpawned 标记怪物已出场，未知ID忽略
func (mm *MonsterManager) MarkMonsterAsSpawned(id int) {
	if mm.GetMonsterByID(id) == nil {
		return
	}
	mm.spawned[id] = true
}

// IsSpawned 怪物是否已出场
func (mm *MonsterManager) IsSpawned(id int) bool {
	return mm.spawned[id]
}

// GetFirstSpawnedAliveMonster 按生成顺序返回第一只已出场且存活的怪物
// 这只怪物的题目就是当前需要回答的题目；没有则返回 nil
func (mm *MonsterManager) GetFirstSpawnedAliveMonster() *Monster {
	for _, m := range mm.monsters {
		if m.IsAlive() && mm.spawned[m.ID] {
			return m
		}
	}
	return nil
}

// EliminateMonsterByID 玩家答对时消灭怪物
//
// 返回：
//   - *Monster: 被消灭的怪物；ID 未知或怪物已死亡时返回 nil
func (mm *MonsterManager) EliminateMonsterByID(id int) *Monster {
	index := mm.indexOf(id)
	if index == -1 {
		return nil
	}

	monster := mm.monsters[index]
	if !monster.IsAlive() {
		return nil
	}

	monster.Kill()
	mm.removeAt(index)
	mm.aliveCount--
	delete(mm.spawned, id)

	log.Printf("[MonsterManager] Eliminated monster %d, %d alive", id, mm.aliveCount)
	return monster
}

// RemoveMonster 无条件移除怪物（怪物到达终点时使用）
// 怪物仍存活时递减存活计数
//
// 返回：
//   - *Monster: 被移除的怪物；ID 未知时返回 nil
func (mm *MonsterManager) RemoveMonster(id int) *Monster {
	index := mm.indexOf(id)
	if index == -1 {
		return nil
	}

	monster := mm.monsters[index]
	mm.removeAt(index)
	if monster.IsAlive() {
		mm.aliveCount--
	}
	delete(mm.spawned, id)

	log.Printf("[MonsterManager] Removed monster %d, %d alive", id, mm.aliveCount)
	return monster
}

// GetMonsterByID 按ID查找当前追踪的怪物，未找到返回 nil
func (mm *MonsterManager) GetMonsterByID(id int) *Monster {
	if index := mm.indexOf(id); index != -1 {
		return mm.monsters[index]
	}
	return nil
}

// GetMonsters 返回当前怪物的有序快照
func (mm *MonsterManager) GetMonsters() []*Monster {
	snapshot := make([]*Monster, len(mm.monsters))
	copy(snapshot, mm.monsters)
	return snapshot
}

// GetAliveMonstersCount 返回存活怪物数量
func (mm *MonsterManager) GetAliveMonstersCount() int {
	return mm.aliveCount
}

// IsRoundComplete 当前没有任何被追踪的怪物时回合完成
// 已死亡但尚未移除的怪物仍算未完成
func (mm *MonsterManager) IsRoundComplete() bool {
	return len(mm.monsters) == 0
}

// ResetSpawnedTracking 清空出场记录，不影响怪物本身
func (mm *MonsterManager) ResetSpawnedTracking() {
	mm.spawned = make(map[int]bool)
}

// Reset 完全重置，包括ID计数器和存活计数
func (mm *MonsterManager) Reset() {
	mm.monsters = make([]*Monster, 0, mm.monstersPerRound)
	mm.spawned = make(map[int]bool)
	mm.nextID = 0
	mm.aliveCount = 0
}

func (mm *MonsterManager) indexOf(id int) int {
	for i, m := range mm.monsters {
		if m.ID == id {
			return i
		}
	}
	return -1
}

func (mm *MonsterManager) removeAt(index int) {
	mm.monsters = append(mm.monsters[:index], mm.monsters[index+1:]...)
}
