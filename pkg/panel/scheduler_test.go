package panel

import (
	"testing"
	"time"
)

// TestSchedulerFiresAfterDelay 测试任务在延迟到期时执行
func TestSchedulerFiresAfterDelay(t *testing.T) {
	s := NewScheduler()
	fired := 0
	s.Arm(time.Second, func() { fired++ })

	if s.Advance(999 * time.Millisecond) {
		t.Fatal("fired before deadline")
	}
	if !s.Pending() {
		t.Fatal("task should still be pending")
	}
	if got := s.Remaining(); got != time.Millisecond {
		t.Errorf("Remaining: got %v, want 1ms", got)
	}

	if !s.Advance(time.Millisecond) {
		t.Fatal("expected fire at deadline")
	}
	if fired != 1 {
		t.Errorf("fired: got %d, want 1", fired)
	}
	if s.Pending() {
		t.Error("slot should be empty after firing")
	}

	// 一次性任务，不会再次执行
	s.Advance(10 * time.Second)
	if fired != 1 {
		t.Errorf("fired after extra advance: got %d, want 1", fired)
	}
}

// TestSchedulerRearmReplacesPrevious 测试重新 Arm 取消之前的任务
// 只执行一次，且在第二次 Arm 之后 delay 时执行
func TestSchedulerRearmReplacesPrevious(t *testing.T) {
	s := NewScheduler()
	var firedAt []time.Duration
	fn := func() { firedAt = append(firedAt, s.Now()) }

	s.Arm(time.Second, fn)
	s.Advance(500 * time.Millisecond)
	s.Arm(time.Second, fn)

	step := 10 * time.Millisecond
	for s.Now() < 3*time.Second {
		s.Advance(step)
	}

	if len(firedAt) != 1 {
		t.Fatalf("fire count: got %d, want 1", len(firedAt))
	}
	if firedAt[0] != 1500*time.Millisecond {
		t.Errorf("fired at %v, want 1.5s", firedAt[0])
	}
}

// TestSchedulerCancel 测试取消
func TestSchedulerCancel(t *testing.T) {
	s := NewScheduler()

	// 没有任务时取消是空操作
	s.Cancel()
	if s.Pending() {
		t.Fatal("Cancel on empty scheduler should not create a task")
	}

	fired := false
	s.Arm(100*time.Millisecond, func() { fired = true })
	s.Cancel()
	s.Advance(time.Second)

	if fired {
		t.Error("cancelled task must not fire")
	}
	if _, ok := s.Deadline(); ok {
		t.Error("Deadline should report no task after cancel")
	}
}

// TestSchedulerStaleTokenIgnored 测试过期 token 的触发被忽略
func TestSchedulerStaleTokenIgnored(t *testing.T) {
	s := NewScheduler()
	first, second := 0, 0

	stale := s.Arm(time.Second, func() { first++ })
	current := s.Arm(time.Second, func() { second++ })
	if current <= stale {
		t.Fatalf("token should increase: %d -> %d", stale, current)
	}

	if s.fire(stale) {
		t.Error("stale token fired")
	}
	if first != 0 || second != 0 {
		t.Errorf("no callback expected, got first=%d second=%d", first, second)
	}
	if !s.Pending() {
		t.Error("current task must survive a stale fire")
	}

	// 取消后当前 token 也失效
	s.Cancel()
	if s.fire(current) {
		t.Error("cancelled token fired")
	}
	if second != 0 {
		t.Errorf("second: got %d, want 0", second)
	}
}

// TestSchedulerRearmInsideCallback 测试回调内部再次 Arm
func TestSchedulerRearmInsideCallback(t *testing.T) {
	s := NewScheduler()
	count := 0
	var tick func()
	tick = func() {
		count++
		if count < 3 {
			s.Arm(100*time.Millisecond, tick)
		}
	}
	s.Arm(100*time.Millisecond, tick)

	for i := 0; i < 10; i++ {
		s.Advance(100 * time.Millisecond)
	}

	if count != 3 {
		t.Errorf("count: got %d, want 3", count)
	}
	if s.Pending() {
		t.Error("no task should remain")
	}
}

// TestSchedulerNonPositiveDelay 测试非正延迟在下一次推进时执行
func TestSchedulerNonPositiveDelay(t *testing.T) {
	tests := []struct {
		name  string
		delay time.Duration
	}{
		{"zero", 0},
		{"negative", -time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScheduler()
			fired := false
			s.Arm(tt.delay, func() { fired = true })

			if fired {
				t.Fatal("Arm must not run the callback synchronously")
			}
			s.Advance(0)
			if !fired {
				t.Error("expected fire on next Advance")
			}
		})
	}
}
