package panel

import "testing"

// TestTrackerShouldRemainVisible 测试保持可见谓词 = directHover || linkedTargetHover
func TestTrackerShouldRemainVisible(t *testing.T) {
	tests := []struct {
		direct bool
		linked bool
		want   bool
	}{
		{false, false, false},
		{true, false, true},
		{false, true, true},
		{true, true, true},
	}

	for _, tt := range tests {
		tr := NewTracker(true, nil)
		if tt.direct {
			tr.OnDirectHoverEnter()
		}
		tr.SetLinkedTargetHover(tt.linked)

		if got := tr.ShouldRemainVisible(); got != tt.want {
			t.Errorf("direct=%v linked=%v: got %v, want %v", tt.direct, tt.linked, got, tt.want)
		}
	}
}

// TestTrackerFlagsIndependent 测试单独切换一个标志会翻转谓词，与另一个无关
func TestTrackerFlagsIndependent(t *testing.T) {
	tr := NewTracker(true, nil)

	tr.OnDirectHoverEnter()
	if !tr.ShouldRemainVisible() {
		t.Fatal("direct hover should keep visible")
	}
	tr.OnDirectHoverExit()
	if tr.ShouldRemainVisible() {
		t.Fatal("exit should clear predicate")
	}

	tr.SetLinkedTargetHover(true)
	if !tr.ShouldRemainVisible() || tr.DirectHover() {
		t.Fatal("linked hover should keep visible without touching direct hover")
	}
	tr.SetLinkedTargetHover(false)
	if tr.ShouldRemainVisible() {
		t.Fatal("clearing linked hover should clear predicate")
	}
}

// TestTrackerActivity 测试活跃回调的触发时机
func TestTrackerActivity(t *testing.T) {
	calls := 0
	tr := NewTracker(true, func() { calls++ })

	tr.OnDirectHoverEnter()
	tr.OnPointerMove()
	tr.OnPointerMove()
	tr.OnDirectHoverExit()
	if calls != 4 {
		t.Errorf("calls after hover/move: got %d, want 4", calls)
	}

	// 移动不改变标志
	if tr.DirectHover() || tr.LinkedTargetHover() {
		t.Error("pointer move must not set flags")
	}

	// 关联悬停只在值变化时计数
	tr.SetLinkedTargetHover(false)
	tr.SetLinkedTargetHover(true)
	tr.SetLinkedTargetHover(true)
	if calls != 5 {
		t.Errorf("calls after linked updates: got %d, want 5", calls)
	}
}

// TestTrackerLinkDisabled 测试未启用关联悬停时忽略上报
func TestTrackerLinkDisabled(t *testing.T) {
	calls := 0
	tr := NewTracker(false, func() { calls++ })

	tr.SetLinkedTargetHover(true)
	if tr.LinkedTargetHover() || tr.ShouldRemainVisible() {
		t.Error("linked hover should be ignored when disabled")
	}
	if calls != 0 {
		t.Errorf("calls: got %d, want 0", calls)
	}
}

func TestTrackerReset(t *testing.T) {
	tr := NewTracker(true, nil)
	tr.OnDirectHoverEnter()
	tr.SetLinkedTargetHover(true)
	tr.Reset()
	if tr.ShouldRemainVisible() {
		t.Error("Reset should clear both flags")
	}
}
