package game

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
)

// PotionType 药水类型（持久化时使用的字符串标签）
type PotionType string

const (
	// PotionHeal 治疗药水
	PotionHeal PotionType = "Heal Potion"
	// PotionTimeSlow 减速药水
	PotionTimeSlow PotionType = "Time Slow Potion"
)

// AllPotionTypes 药水类型的固定枚举，顺序即显示顺序
var AllPotionTypes = []PotionType{PotionHeal, PotionTimeSlow}

// Potion 药水定义
type Potion struct {
	Type        PotionType
	Name        string
	Description string
}

// potionDefinitions 静态药水目录，读档时按类型标签重新生成定义
var potionDefinitions = map[PotionType]Potion{
	PotionHeal: {
		Type:        PotionHeal,
		Name:        "Heal Potion",
		Description: "Restores 20 health points.",
	},
	PotionTimeSlow: {
		Type:        PotionTimeSlow,
		Name:        "Time Slow Potion",
		Description: "Slows every monster to 20% speed for 5 seconds.",
	},
}

// LookupPotion 返回药水定义，未知类型返回 false
func LookupPotion(t PotionType) (Potion, bool) {
	p, ok := potionDefinitions[t]
	return p, ok
}

// 存储路径常量
const (
	potionObject = "inventory"

	// PotionStorageKey 药水背包的存储键
	PotionStorageKey = "cse110_team5_potion_inventory"
)

// PotionManager 药水背包
// 背包内容以 JSON 字符串数组（类型标签）保存在 gdata 中
//
// 降级策略：
//   - gdataManager 为 nil 时只在内存中保存
//   - 存档缺失、读取失败或格式损坏时视为空背包
//   - 保存失败只记录日志，不向调用方返回错误
type PotionManager struct {
	gdataManager *gdata.Manager
	inventory    []PotionType
}

// NewPotionManager 创建药水背包并尝试读取存档
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存）
func NewPotionManager(gdataManager *gdata.Manager) *PotionManager {
	pm := &PotionManager{
		gdataManager: gdataManager,
		inventory:    make([]PotionType, 0),
	}

	if err := pm.load(); err != nil {
		log.Printf("[PotionManager] Warning: Failed to load potion inventory: %v (using empty inventory)", err)
		pm.inventory = make([]PotionType, 0)
	}
	return pm
}

// StorageKey 返回存储键
func (pm *PotionManager) StorageKey() string {
	return PotionStorageKey
}

// AddPotion 添加一瓶药水，未知类型忽略
func (pm *PotionManager) AddPotion(t PotionType) {
	def, ok := LookupPotion(t)
	if !ok {
		log.Printf("[PotionManager] ERROR: Unknown potion type %q", t)
		return
	}

	pm.inventory = append(pm.inventory, t)
	log.Printf("[PotionManager] Added %s. Inventory size: %d", def.Name, len(pm.inventory))
	pm.save()
}

// UsePotion 消耗一瓶指定类型的药水
//
// 返回：
//   - bool: 背包中有该药水并成功消耗时返回 true
func (pm *PotionManager) UsePotion(t PotionType) bool {
	for i, owned := range pm.inventory {
		if owned != t {
			continue
		}
		pm.inventory = append(pm.inventory[:i], pm.inventory[i+1:]...)
		log.Printf("[PotionManager] Used %s. Inventory size: %d", t, len(pm.inventory))
		pm.save()
		return true
	}
	return false
}

// HasPotion 背包中是否有指定类型的药水
func (pm *PotionManager) HasPotion(t PotionType) bool {
	return pm.GetCount(t) > 0
}

// GetCount 返回指定类型的药水数量
func (pm *PotionManager) GetCount(t PotionType) int {
	count := 0
	for _, owned := range pm.inventory {
		if owned == t {
			count++
		}
	}
	return count
}

// GetCounts 返回所有类型的数量（包括数量为 0 的类型）
func (pm *PotionManager) GetCounts() map[PotionType]int {
	counts := make(map[PotionType]int, len(AllPotionTypes))
	for _, t := range AllPotionTypes {
		counts[t] = 0
	}
	for _, owned := range pm.inventory {
		counts[owned]++
	}
	return counts
}

// GetInventory 返回背包中药水定义的副本，按获得顺序
func (pm *PotionManager) GetInventory() []Potion {
	result := make([]Potion, 0, len(pm.inventory))
	for _, t := range pm.inventory {
		def, _ := LookupPotion(t)
		result = append(result, def)
	}
	return result
}

// load 从 gdata 读取背包
func (pm *PotionManager) load() error {
	if pm.gdataManager == nil {
		return nil
	}
	if !pm.gdataManager.ObjectPropExists(potionObject, PotionStorageKey) {
		return nil
	}

	data, err := pm.gdataManager.LoadObjectProp(potionObject, PotionStorageKey)
	if err != nil {
		return fmt.Errorf("failed to load potion inventory: %w", err)
	}

	var tags []PotionType
	if err := json.Unmarshal(data, &tags); err != nil {
		return fmt.Errorf("failed to unmarshal potion inventory: %w", err)
	}

	inventory := make([]PotionType, 0, len(tags))
	for _, t := range tags {
		if _, ok := LookupPotion(t); !ok {
			log.Printf("[PotionManager] Warning: Dropping unknown potion type %q", t)
			continue
		}
		inventory = append(inventory, t)
	}
	pm.inventory = inventory

	log.Printf("[PotionManager] Loaded %d potions from storage", len(pm.inventory))
	return nil
}

// save 将背包写入 gdata，失败只记录日志
func (pm *PotionManager) save() {
	if pm.gdataManager == nil {
		return
	}

	data, err := json.Marshal(pm.inventory)
	if err != nil {
		log.Printf("[PotionManager] ERROR: Failed to marshal potion inventory: %v", err)
		return
	}

	if err := pm.gdataManager.SaveObjectProp(potionObject, PotionStorageKey, data); err != nil {
		log.Printf("[PotionManager] ERROR: Failed to save potion inventory: %v", err)
	}
}
