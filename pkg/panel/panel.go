package panel

import (
	"log"
	"time"
)

// Renderer 渲染协作者
// 面板只发出指令，不关心动画时长和布局细节
type Renderer interface {
	// Appear 清除进行中的变换并播放出现动画
	Appear()
	// Disappear 播放消失动画
	Disappear()
	// RenderAvatars 按给定布局重新渲染头像（无状态）
	RenderAvatars(layout AvatarLayout)
}

// Options 面板参数
type Options struct {
	// Name 面板名称，仅用于日志
	Name string
	// IdleDelay 空闲自动隐藏延迟，<= 0 时使用 DefaultIdleDelay
	IdleDelay time.Duration
	// Capacity 头像容量，<= 0 表示不限
	Capacity int
	// Width 宽度策略，可为 nil
	Width WidthPolicy
	// LinkedHover 是否接受关联目标悬停上报
	LinkedHover bool
}

// Panel 头像浮层面板
//
// 状态转换：
//   - Show(): Hidden→Visible 时播放出现动画；无论当前状态都会重新开始空闲计时
//   - 计时到期: 不应保持可见则 Visible→Hidden，否则忽略
//   - Hide(): 强制 Visible→Hidden 并取消计时；已隐藏时为空操作
type Panel struct {
	name      string
	state     VisibilityState
	idleDelay time.Duration

	tracker   *Tracker
	scheduler *Scheduler
	list      *AvatarList
	renderer  Renderer

	onStateChange func(VisibilityState)
}

// New 创建面板
//
// 参数：
//   - renderer: 渲染协作者，可为 nil（仅维护状态）
//   - opts: 面板参数
func New(renderer Renderer, opts Options) *Panel {
	if renderer == nil {
		renderer = nopRenderer{}
	}
	idle := opts.IdleDelay
	if idle <= 0 {
		idle = DefaultIdleDelay
	}

	p := &Panel{
		name:      opts.Name,
		state:     Hidden,
		idleDelay: idle,
		scheduler: NewScheduler(),
		list:      NewAvatarList(opts.Capacity, opts.Width),
		renderer:  renderer,
	}
	p.tracker = NewTracker(opts.LinkedHover, p.onActivity)
	return p
}

// Name 面板名称
func (p *Panel) Name() string {
	return p.name
}

// State 当前可见状态
func (p *Panel) State() VisibilityState {
	return p.state
}

// IsVisible 是否可见
func (p *Panel) IsVisible() bool {
	return p.state == Visible
}

// IdleDelay 空闲延迟
func (p *Panel) IdleDelay() time.Duration {
	return p.idleDelay
}

// Tracker 返回悬停追踪器
func (p *Panel) Tracker() *Tracker {
	return p.tracker
}

// Scheduler 返回隐藏计时器
func (p *Panel) Scheduler() *Scheduler {
	return p.scheduler
}

// SetStateListener 设置状态变化回调（仅在状态真正改变时调用）
func (p *Panel) SetStateListener(fn func(VisibilityState)) {
	p.onStateChange = fn
}

// Show 显示面板
//
// 面板已可见时只重置空闲计时：新内容推送进来时会反复调用 Show。
func (p *Panel) Show() {
	if p.state == Hidden {
		p.setState(Visible)
		p.renderer.Appear()
	}
	p.armIdle()
}

// Hide 立即隐藏面板并取消待执行的隐藏计时
func (p *Panel) Hide() {
	p.scheduler.Cancel()
	if p.state == Hidden {
		return
	}
	p.setState(Hidden)
	p.renderer.Disappear()
}

// Update 推进时间，由宿主每个 tick 调用
func (p *Panel) Update(dt time.Duration) {
	p.scheduler.Advance(dt)
}

// HideDeadline 返回下一次隐藏检查的时间点（调度器时间轴）
func (p *Panel) HideDeadline() (time.Duration, bool) {
	return p.scheduler.Deadline()
}

// OnDirectHoverEnter 指针进入面板
func (p *Panel) OnDirectHoverEnter() {
	p.tracker.OnDirectHoverEnter()
}

// OnDirectHoverExit 指针离开面板
func (p *Panel) OnDirectHoverExit() {
	p.tracker.OnDirectHoverExit()
}

// OnPointerMove 指针在面板上移动
func (p *Panel) OnPointerMove() {
	p.tracker.OnPointerMove()
}

// SetLinkedTargetHover 关联目标上报悬停状态
func (p *Panel) SetLinkedTargetHover(hovered bool) {
	p.tracker.SetLinkedTargetHover(hovered)
}

// SetUsers 替换头像列表并通知渲染层
// users 为 nil 时视为空列表
func (p *Panel) SetUsers(users []UserEntry) {
	layout := p.list.SetUsers(users)
	p.renderer.RenderAvatars(layout)
}

// Layout 当前头像布局
func (p *Panel) Layout() AvatarLayout {
	return p.list.Layout()
}

// Capacity 头像容量，0 表示不限
func (p *Panel) Capacity() int {
	return p.list.Capacity()
}

func (p *Panel) armIdle() {
	p.scheduler.Arm(p.idleDelay, p.onIdle)
}

// onActivity 悬停信号变化或指针移动
// 隐藏状态下没有需要推迟的隐藏，不计时
func (p *Panel) onActivity() {
	if p.state != Visible {
		return
	}
	p.armIdle()
}

// onIdle 空闲计时到期
func (p *Panel) onIdle() {
	if p.tracker.ShouldRemainVisible() {
		// 仍在悬停，交给追踪器的后续事件重新计时
		return
	}
	p.Hide()
}

func (p *Panel) setState(state VisibilityState) {
	if p.state == state {
		return
	}
	log.Printf("[AvatarPanel] %s: %s -> %s", p.name, p.state, state)
	p.state = state
	if p.onStateChange != nil {
		p.onStateChange(state)
	}
}

type nopRenderer struct{}

func (nopRenderer) Appear() {}
func (nopRenderer) Disappear() {}
func (nopRenderer) RenderAvatars(AvatarLayout) {}
