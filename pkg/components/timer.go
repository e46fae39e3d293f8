package components

import "time"

// TimerState 计时器状态
type TimerState int

const (
	// TimerArmed 已启动，等待触发
	TimerArmed TimerState = iota
	// TimerPaused 已暂停，Remaining 保存剩余时长
	TimerPaused
	// TimerFired 已触发
	TimerFired
	// TimerCancelled 已取消
	TimerCancelled
)

// String 返回状态名称（日志用）
func (s TimerState) String() string {
	switch s {
	case TimerArmed:
		return "armed"
	case TimerPaused:
		return "paused"
	case TimerFired:
		return "fired"
	case TimerCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// TimerComponent 可暂停计时器组件
// 存储一次性延迟回调的计时状态，供 TimerSystem 使用
// 注意：遵循 ECS 原则，组件仅存储数据，暂停/恢复逻辑由 TimerSystem 实现
//
// 时间语义：
//   - 启动时 ArmedAt = 当前虚拟时间，DueAt = ArmedAt + Remaining
//   - 暂停时 Remaining -= (当前时间 - ArmedAt)
//   - 恢复时以剩余时长重新启动，而不是重新计满原始延迟
type TimerComponent struct {
	Name      string        // 计时器名称，如 "spawn_monster_3"
	Remaining time.Duration // 剩余时长（暂停时有效；启动时为本次启动的时长）
	ArmedAt   time.Duration // 最近一次启动的虚拟时间
	DueAt     time.Duration // 预计触发的虚拟时间（仅 Armed 状态有效）
	State     TimerState    // 当前状态
	Pausable  bool          // 是否响应 PauseAll（回合间延迟等计时器不暂停）
	Seq       uint64        // 创建序号，同一时刻到期时按创建顺序触发
	Callback  func()        // 到期回调
}

// IsPending 计时器是否仍会触发（已启动或已暂停）
func (t *TimerComponent) IsPending() bool {
	return t.State == TimerArmed || t.State == TimerPaused
}
