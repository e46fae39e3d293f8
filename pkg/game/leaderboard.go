package game

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/quasilyte/gdata/v2"
)

const (
	leaderboardObject = "leaderboard"

	// LeaderboardStorageKey 排行榜的存储键
	LeaderboardStorageKey = "lemonClickerLeaderboard"

	// MaxLeaderboardEntries 排行榜保留的最高分条数
	MaxLeaderboardEntries = 5
)

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	Score     int    `json:"score"`
	Timestamp string `json:"timestamp"`
}

// Leaderboard 本地排行榜，保存最高的若干次成绩（降序）
// 与 PotionManager 使用相同的 gdata 降级策略
type Leaderboard struct {
	gdataManager *gdata.Manager
	entries      []LeaderboardEntry
}

// NewLeaderboard 创建排行榜并尝试读取存档
func NewLeaderboard(gdataManager *gdata.Manager) *Leaderboard {
	lb := &Leaderboard{gdataManager: gdataManager}
	if err := lb.load(); err != nil {
		log.Printf("[Leaderboard] Warning: Failed to load leaderboard: %v (using empty leaderboard)", err)
		lb.entries = nil
	}
	return lb
}

// Record 记录一次成绩，返回更新后的排行榜
// 同分时先记录的排在前面
func (lb *Leaderboard) Record(score int, at time.Time) []LeaderboardEntry {
	lb.entries = append(lb.entries, LeaderboardEntry{
		Score:     score,
		Timestamp: at.Format("2006-01-02 15:04:05"),
	})
	sort.SliceStable(lb.entries, func(i, j int) bool {
		return lb.entries[i].Score > lb.entries[j].Score
	})
	if len(lb.entries) > MaxLeaderboardEntries {
		lb.entries = lb.entries[:MaxLeaderboardEntries]
	}

	lb.save()
	return lb.Entries()
}

// Entries 返回排行榜副本
func (lb *Leaderboard) Entries() []LeaderboardEntry {
	result := make([]LeaderboardEntry, len(lb.entries))
	copy(result, lb.entries)
	return result
}

func (lb *Leaderboard) load() error {
	if lb.gdataManager == nil || !lb.gdataManager.ObjectPropExists(leaderboardObject, LeaderboardStorageKey) {
		return nil
	}

	data, err := lb.gdataManager.LoadObjectProp(leaderboardObject, LeaderboardStorageKey)
	if err != nil {
		return fmt.Errorf("failed to load leaderboard: %w", err)
	}

	var entries []LeaderboardEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to unmarshal leaderboard: %w", err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	if len(entries) > MaxLeaderboardEntries {
		entries = entries[:MaxLeaderboardEntries]
	}
	lb.entries = entries
	return nil
}

func (lb *Leaderboard) save() {
	if lb.gdataManager == nil {
		return
	}

	data, err := json.Marshal(lb.entries)
	if err != nil {
		log.Printf("[Leaderboard] ERROR: Failed to marshal leaderboard: %v", err)
		return
	}
	if err := lb.gdataManager.SaveObjectProp(leaderboardObject, LeaderboardStorageKey, data); err != nil {
		log.Printf("[Leaderboard] ERROR: Failed to save leaderboard: %v", err)
	}
}
