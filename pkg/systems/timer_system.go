package systems

import (
	"log"
	"time"

	"github.com/decker502/mathtd/pkg/components"
)

// TimerSystem 可暂停计时器系统
//
// 职责：
//   - 维护一个由 Update(deltaTime) 推进的虚拟时钟
//   - 按到期时间（相同时按创建顺序）触发一次性回调
//   - 支持单个计时器及全部计时器的暂停/恢复/取消
//
// 架构说明：
//   - 计时状态存储在 components.TimerComponent 中
//   - 回调在 Update 内同步执行，回调中可以安全地创建或取消其他计时器
//   - 单线程使用，不加锁
type TimerSystem struct {
	now     time.Duration
	nextSeq uint64
	timers  []*components.TimerComponent

	// verbose 是否输出详细日志
	verbose bool
}

// NewTimerSystem 创建计时器系统，虚拟时间从 0 开始
func NewTimerSystem() *TimerSystem {
	return &TimerSystem{
		timers: make([]*components.TimerComponent, 0),
	}
}

// Now 返回当前虚拟时间
func (s *TimerSystem) Now() time.Duration {
	return s.now
}

// After 创建一个在 delay 后触发的可暂停计时器
//
// 参数：
//   - name: 计时器名称（日志用）
//   - delay: 延迟时长，负数按 0 处理
//   - callback: 到期回调
//
// 返回：
//   - *components.TimerComponent: 计时器句柄，可用于单独暂停/恢复/取消
func (s *TimerSystem) After(name string, delay time.Duration, callback func()) *components.TimerComponent {
	return s.schedule(name, delay, true, callback)
}

// AfterUnpausable 创建一个不受 PauseAll 影响的计时器
func (s *TimerSystem) AfterUnpausable(name string, delay time.Duration, callback func()) *components.TimerComponent {
	return s.schedule(name, delay, false, callback)
}

func (s *TimerSystem) schedule(name string, delay time.Duration, pausable bool, callback func()) *components.TimerComponent {
	if delay < 0 {
		delay = 0
	}

	s.nextSeq++
	timer := &components.TimerComponent{
		Name:      name,
		Remaining: delay,
		ArmedAt:   s.now,
		DueAt:     s.now + delay,
		State:     components.TimerArmed,
		Pausable:  pausable,
		Seq:       s.nextSeq,
		Callback:  callback,
	}
	s.timers = append(s.timers, timer)

	if s.verbose {
		log.Printf("[TimerSystem] Scheduled %s in %v (due at %v)", name, delay, timer.DueAt)
	}
	return timer
}

// Pause 暂停单个计时器，记录剩余时长
// 对非 Armed 状态的计时器无效
func (s *TimerSystem) Pause(timer *components.TimerComponent) {
	if timer == nil || timer.State != components.TimerArmed {
		return
	}

	elapsed := s.now - timer.ArmedAt
	timer.Remaining -= elapsed
	if timer.Remaining < 0 {
		timer.Remaining = 0
	}
	timer.State = components.TimerPaused
}

// Resume 以剩余时长重新启动单个计时器
// 对非 Paused 状态的计时器无效
func (s *TimerSystem) Resume(timer *components.TimerComponent) {
	if timer == nil || timer.State != components.TimerPaused {
		return
	}

	timer.ArmedAt = s.now
	timer.DueAt = s.now + timer.Remaining
	timer.State = components.TimerArmed
}

// Cancel 取消单个计时器，已触发或已取消的计时器不受影响
func (s *TimerSystem) Cancel(timer *components.TimerComponent) {
	if timer == nil || !timer.IsPending() {
		return
	}
	timer.State = components.TimerCancelled
	timer.Callback = nil
}

// PauseAll 暂停所有可暂停的计时器
func (s *TimerSystem) PauseAll() {
	for _, timer := range s.timers {
		if timer.Pausable {
			s.Pause(timer)
		}
	}
}

// ResumeAll 恢复所有已暂停的计时器
func (s *TimerSystem) ResumeAll() {
	for _, timer := range s.timers {
		s.Resume(timer)
	}
}

// CancelAll 取消所有未触发的计时器
func (s *TimerSystem) CancelAll() {
	cancelled := 0
	for _, timer := range s.timers {
		if timer.IsPending() {
			s.Cancel(timer)
			cancelled++
		}
	}
	s.timers = s.timers[:0]

	if cancelled > 0 {
		log.Printf("[TimerSystem] Cancelled %d pending timers", cancelled)
	}
}

// PendingCount 返回仍会触发的计时器数量（含已暂停）
func (s *TimerSystem) PendingCount() int {
	count := 0
	for _, timer := range s.timers {
		if timer.IsPending() {
			count++
		}
	}
	return count
}

// Update 推进虚拟时钟并触发到期的计时器
//
// 执行流程：
//  1. 计算目标时间 now + deltaTime
//  2. 反复取出最早到期（DueAt <= 目标时间）的计时器，把时钟拨到其 DueAt 后执行回调
//  3. 回调中新建的计时器若在目标时间内到期，同一次 Update 中也会触发
//  4. 时钟停在目标时间，清理已结束的计时器
//
// 参数：
//   - deltaTime: 自上一帧以来经过的时间（秒）
func (s *TimerSystem) Update(deltaTime float64) {
	if deltaTime < 0 {
		deltaTime = 0
	}
	target := s.now + time.Duration(deltaTime*float64(time.Second))

	for {
		next := s.nextDue(target)
		if next == nil {
			break
		}

		if next.DueAt > s.now {
			s.now = next.DueAt
		}
		next.State = components.TimerFired
		next.Remaining = 0
		callback := next.Callback
		next.Callback = nil

		if s.verbose {
			log.Printf("[TimerSystem] Fired %s at %v", next.Name, s.now)
		}
		if callback != nil {
			callback()
		}
	}

	s.now = target
	s.compact()
}

// nextDue 返回最早到期且不晚于 limit 的已启动计时器
func (s *TimerSystem) nextDue(limit time.Duration) *components.TimerComponent {
	var best *components.TimerComponent
	for _, timer := range s.timers {
		if timer.State != components.TimerArmed || timer.DueAt > limit {
			continue
		}
		if best == nil || timer.DueAt < best.DueAt || (timer.DueAt == best.DueAt && timer.Seq < best.Seq) {
			best = timer
		}
	}
	return best
}

// compact 移除已触发或已取消的计时器
func (s *TimerSystem) compact() {
	kept := s.timers[:0]
	for _, timer := range s.timers {
		if timer.IsPending() {
			kept = append(kept, timer)
		}
	}
	for i := len(kept); i < len(s.timers); i++ {
		s.timers[i] = nil
	}
	s.timers = kept
}

// SetVerbose 设置详细日志开关
func (s *TimerSystem) SetVerbose(verbose bool) {
	s.verbose = verbose
}
