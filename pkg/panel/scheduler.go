package panel

import "time"

// Scheduler 单槽延迟任务调度器
//
// 同一时刻最多只有一个待执行任务：再次 Arm 会替换（取消）之前的任务。
// 时间由宿主通过 Advance 推进（通常是每个 Update tick 的 deltaTime），
// 到期的回调在 Advance 的调用方 goroutine 上同步执行。
//
// 每次 Arm 都会分配一个单调递增的 token，触发前必须校验 token 仍然是当前值，
// 因此已取消或已被替换的任务永远不会执行。
type Scheduler struct {
	now      time.Duration // 累计经过的时间
	token    uint64        // 当前任务的 token，0 表示从未 Arm 过
	deadline time.Duration // 当前任务的到期时间
	action   func()        // 当前任务的回调
	armed    bool          // 是否有待执行任务
}

// NewScheduler 创建调度器
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Arm 在 delay 之后执行 fn，取消之前尚未执行的任务
// delay <= 0 时任务在下一次 Advance 时执行
//
// 返回：
//   - uint64: 本次任务的 token
func (s *Scheduler) Arm(delay time.Duration, fn func()) uint64 {
	if delay < 0 {
		delay = 0
	}
	s.token++
	s.deadline = s.now + delay
	s.action = fn
	s.armed = true
	return s.token
}

// Cancel 取消待执行任务，没有任务时为空操作
func (s *Scheduler) Cancel() {
	if !s.armed {
		return
	}
	// token 自增使任何持有旧 token 的触发都失效
	s.token++
	s.clear()
}

// Pending 是否有待执行任务
func (s *Scheduler) Pending() bool {
	return s.armed
}

// Token 返回最近一次 Arm/Cancel 之后的 token
func (s *Scheduler) Token() uint64 {
	return s.token
}

// Now 返回调度器的当前时间（自创建以来累计推进的时长）
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Deadline 返回当前任务的到期时间
func (s *Scheduler) Deadline() (time.Duration, bool) {
	if !s.armed {
		return 0, false
	}
	return s.deadline, true
}

// Remaining 返回当前任务剩余的时间，没有任务时返回 0
func (s *Scheduler) Remaining() time.Duration {
	if !s.armed {
		return 0
	}
	if s.deadline <= s.now {
		return 0
	}
	return s.deadline - s.now
}

// Advance 推进时间 dt，若当前任务到期则执行它
//
// 返回：
//   - bool: 本次是否执行了回调
func (s *Scheduler) Advance(dt time.Duration) bool {
	if dt > 0 {
		s.now += dt
	}
	if !s.armed || s.now < s.deadline {
		return false
	}
	return s.fire(s.token)
}

// fire 执行 token 对应的任务
// token 不是当前值（任务已被取消或替换）时不做任何事
func (s *Scheduler) fire(token uint64) bool {
	if !s.armed || token != s.token {
		return false
	}
	fn := s.action
	// 先清空槽位，回调内部可以安全地再次 Arm
	s.clear()
	if fn != nil {
		fn()
	}
	return true
}

func (s *Scheduler) clear() {
	s.armed = false
	s.action = nil
	s.deadline = 0
}
