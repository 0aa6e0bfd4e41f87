package panel

import (
	"math/rand"
	"testing"
	"time"
)

// recordingRenderer 记录渲染指令
type recordingRenderer struct {
	appear    int
	disappear int
	layouts   []AvatarLayout
}

func (r *recordingRenderer) Appear()    { r.appear++ }
func (r *recordingRenderer) Disappear() { r.disappear++ }
func (r *recordingRenderer) RenderAvatars(layout AvatarLayout) {
	r.layouts = append(r.layouts, layout)
}

func newTestPanel(linked bool) (*Panel, *recordingRenderer) {
	r := &recordingRenderer{}
	p := New(r, Options{
		Name:        "test",
		IdleDelay:   time.Second,
		Capacity:    50,
		LinkedHover: linked,
	})
	return p, r
}

// TestPanelInitialState 测试初始状态
func TestPanelInitialState(t *testing.T) {
	p, _ := newTestPanel(false)
	if p.State() != Hidden {
		t.Errorf("initial state: got %v, want Hidden", p.State())
	}
	if p.Scheduler().Pending() {
		t.Error("no timer should be armed initially")
	}
}

// TestPanelAutoHideAfterIdle 测试 Show 后无交互时 1000ms 隐藏
func TestPanelAutoHideAfterIdle(t *testing.T) {
	p, r := newTestPanel(false)

	p.Show()
	if !p.IsVisible() || r.appear != 1 {
		t.Fatalf("after Show: state=%v appear=%d", p.State(), r.appear)
	}

	p.Update(999 * time.Millisecond)
	if !p.IsVisible() {
		t.Fatal("hidden before idle delay elapsed")
	}

	p.Update(time.Millisecond)
	if p.IsVisible() {
		t.Fatal("expected Hidden at t=1000ms")
	}
	if r.disappear != 1 {
		t.Errorf("disappear: got %d, want 1", r.disappear)
	}
}

// TestPanelPointerMoveExtendsDeadline 测试 900ms 时移动指针，截止时间变为 1900ms
func TestPanelPointerMoveExtendsDeadline(t *testing.T) {
	p, _ := newTestPanel(false)

	p.Show()
	p.Update(900 * time.Millisecond)
	p.OnPointerMove()

	if !p.IsVisible() {
		t.Fatal("pointer move must not change visibility")
	}
	deadline, ok := p.HideDeadline()
	if !ok || deadline != 1900*time.Millisecond {
		t.Fatalf("deadline: got %v (ok=%v), want 1.9s", deadline, ok)
	}

	p.Update(100 * time.Millisecond) // t=1000ms
	if !p.IsVisible() {
		t.Fatal("panel hid at the stale 1000ms deadline")
	}
	p.Update(899 * time.Millisecond) // t=1899ms
	if !p.IsVisible() {
		t.Fatal("panel hid before 1900ms")
	}
	p.Update(time.Millisecond)
	if p.IsVisible() {
		t.Fatal("expected Hidden at t=1900ms")
	}
}

// TestPanelDirectHoverKeepsVisible 测试计时到期时仍悬停则保持可见
func TestPanelDirectHoverKeepsVisible(t *testing.T) {
	p, r := newTestPanel(false)

	p.Show()
	p.Update(200 * time.Millisecond)
	p.OnDirectHoverEnter()

	// 到期时仍在悬停，触发为空操作
	p.Update(time.Second)
	if !p.IsVisible() {
		t.Fatal("panel must stay visible while hovered")
	}
	if p.Scheduler().Pending() {
		t.Error("no-op fire should not re-arm by itself")
	}

	p.Update(5 * time.Second)
	if !p.IsVisible() {
		t.Fatal("panel must stay visible until hover ends")
	}

	p.OnDirectHoverExit()
	p.Update(999 * time.Millisecond)
	if !p.IsVisible() {
		t.Fatal("hidden before idle delay after exit")
	}
	p.Update(time.Millisecond)
	if p.IsVisible() {
		t.Fatal("expected Hidden one idle delay after hover exit")
	}
	if r.disappear != 1 {
		t.Errorf("disappear: got %d, want 1", r.disappear)
	}
}

// TestPanelLinkedHoverKeepsVisible 测试关联目标悬停保持可见
func TestPanelLinkedHoverKeepsVisible(t *testing.T) {
	p, _ := newTestPanel(true)

	p.Show()
	p.SetLinkedTargetHover(true)
	p.Update(3 * time.Second)
	if !p.IsVisible() {
		t.Fatal("linked hover should keep the panel open")
	}

	// 指针从关联目标移到面板上
	p.OnDirectHoverEnter()
	p.SetLinkedTargetHover(false)
	p.Update(3 * time.Second)
	if !p.IsVisible() {
		t.Fatal("direct hover should keep the panel open")
	}

	p.OnDirectHoverExit()
	p.Update(time.Second)
	if p.IsVisible() {
		t.Fatal("expected Hidden after both hovers ended")
	}
}

// TestPanelLinkedHoverIgnoredWhenDisabled 测试简单变体忽略关联悬停
func TestPanelLinkedHoverIgnoredWhenDisabled(t *testing.T) {
	p, _ := newTestPanel(false)

	p.Show()
	p.SetLinkedTargetHover(true)
	p.Update(time.Second)
	if p.IsVisible() {
		t.Fatal("linked hover must be ignored when disabled")
	}
}

// TestPanelShowWhileVisibleResetsCountdown 测试可见时再次 Show 重置计时但不重复播放动画
func TestPanelShowWhileVisibleResetsCountdown(t *testing.T) {
	p, r := newTestPanel(false)

	p.Show()
	p.Update(800 * time.Millisecond)
	p.Show()

	if r.appear != 1 {
		t.Errorf("appear: got %d, want 1", r.appear)
	}
	p.Update(800 * time.Millisecond)
	if !p.IsVisible() {
		t.Fatal("re-show should restart the idle countdown")
	}
	p.Update(200 * time.Millisecond)
	if p.IsVisible() {
		t.Fatal("expected Hidden one idle delay after the second Show")
	}
}

// TestPanelHide 测试强制隐藏
func TestPanelHide(t *testing.T) {
	p, r := newTestPanel(false)

	// 隐藏状态下 Hide 是空操作
	p.Hide()
	if r.disappear != 0 {
		t.Fatalf("Hide while hidden ran disappear %d times", r.disappear)
	}

	p.Show()
	p.Hide()
	if p.IsVisible() {
		t.Fatal("Hide should transition to Hidden immediately")
	}
	if p.Scheduler().Pending() {
		t.Error("Hide should cancel the pending timer")
	}

	p.Hide()
	if r.disappear != 1 {
		t.Errorf("disappear: got %d, want 1", r.disappear)
	}

	// 重新显示仍然可用
	p.Show()
	if !p.IsVisible() || r.appear != 2 {
		t.Errorf("re-show: state=%v appear=%d", p.State(), r.appear)
	}
}

// TestPanelHoverWhileHiddenDoesNotArm 测试隐藏状态下的悬停事件不计时
func TestPanelHoverWhileHiddenDoesNotArm(t *testing.T) {
	p, _ := newTestPanel(true)

	p.OnDirectHoverEnter()
	p.OnPointerMove()
	p.SetLinkedTargetHover(true)

	if p.Scheduler().Pending() {
		t.Error("hidden panel should not arm the hide timer")
	}
	if p.IsVisible() {
		t.Error("hover alone must not show the panel")
	}
}

// TestPanelShowHideSequences 测试任意 Show/Hide 序列的最终状态取决于最后一次调用
func TestPanelShowHideSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		p, _ := newTestPanel(false)
		n := rng.Intn(10) + 1
		lastShow := false
		for j := 0; j < n; j++ {
			if rng.Intn(2) == 0 {
				p.Show()
				lastShow = true
			} else {
				p.Hide()
				lastShow = false
			}
			// 间隔小于空闲延迟，计时器不会介入
			p.Update(time.Duration(rng.Intn(900)) * time.Millisecond)
		}

		if p.IsVisible() != lastShow {
			t.Fatalf("sequence %d: visible=%v, last call Show=%v", i, p.IsVisible(), lastShow)
		}
	}
}

// TestPanelStateListener 测试状态回调只在状态变化时触发
func TestPanelStateListener(t *testing.T) {
	p, _ := newTestPanel(false)
	var states []VisibilityState
	p.SetStateListener(func(s VisibilityState) { states = append(states, s) })

	p.Show()
	p.Show()
	p.Update(time.Second)
	p.Hide()

	if len(states) != 2 || states[0] != Visible || states[1] != Hidden {
		t.Errorf("states: got %v, want [Visible Hidden]", states)
	}
}

// TestPanelSetUsersRenders 测试 SetUsers 通知渲染层
func TestPanelSetUsersRenders(t *testing.T) {
	p, r := newTestPanel(false)

	p.SetUsers(makeUsers(73))
	if len(r.layouts) != 1 {
		t.Fatalf("RenderAvatars calls: got %d, want 1", len(r.layouts))
	}
	if got := r.layouts[0].OverflowLabel(); got != "+23" {
		t.Errorf("overflow label: got %q, want +23", got)
	}

	p.SetUsers(nil)
	last := r.layouts[len(r.layouts)-1]
	if last.Len() != 0 || last.HasOverflow() {
		t.Errorf("nil users: got %d slots overflow=%d", last.Len(), last.Overflow)
	}
}

func TestPanelDefaults(t *testing.T) {
	p := New(nil, Options{})
	if p.IdleDelay() != DefaultIdleDelay {
		t.Errorf("IdleDelay: got %v, want %v", p.IdleDelay(), DefaultIdleDelay)
	}
	// nil renderer 不应 panic
	p.Show()
	p.SetUsers(makeUsers(3))
	p.Hide()
}
