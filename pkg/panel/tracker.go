package panel

// Tracker 悬停/交互信号汇总
//
// 维护两个标志：
//   - directHover: 指针位于面板自身范围内
//   - linkedTargetHover: 指针位于面板所依附的外部元素范围内（由该元素上报）
//
// 每次悬停进入/离开、每次指针移动、以及关联悬停标志的变化都会调用 activity 回调，
// 由 Panel 用来以完整的空闲时长重新计时。
type Tracker struct {
	directHover       bool
	linkedTargetHover bool

	// linkEnabled 为 false 时忽略 SetLinkedTargetHover（简单变体没有关联目标）
	linkEnabled bool

	activity func()
}

// NewTracker 创建悬停追踪器
//
// 参数：
//   - linkEnabled: 是否接受外部上报的关联目标悬停
//   - activity: 交互发生时的回调，可为 nil
func NewTracker(linkEnabled bool, activity func()) *Tracker {
	return &Tracker{
		linkEnabled: linkEnabled,
		activity:    activity,
	}
}

// OnDirectHoverEnter 指针进入面板
func (t *Tracker) OnDirectHoverEnter() {
	t.directHover = true
	t.touch()
}

// OnDirectHoverExit 指针离开面板
func (t *Tracker) OnDirectHoverExit() {
	t.directHover = false
	t.touch()
}

// OnPointerMove 指针在面板上移动
//
// 不改变任何标志，仅作为活跃信号：底层工具包的进入/离开事件粒度较粗，
// 持续移动视为持续悬停。
func (t *Tracker) OnPointerMove() {
	t.touch()
}

// SetLinkedTargetHover 设置关联目标悬停状态
//
// 外部元素可能每帧都上报，只有值变化时才重新计时，
// 否则持续上报 false 会让面板永远无法到期隐藏。
func (t *Tracker) SetLinkedTargetHover(hovered bool) {
	if !t.linkEnabled || t.linkedTargetHover == hovered {
		return
	}
	t.linkedTargetHover = hovered
	t.touch()
}

// DirectHover 指针是否在面板内
func (t *Tracker) DirectHover() bool {
	return t.directHover
}

// LinkedTargetHover 指针是否在关联目标上
func (t *Tracker) LinkedTargetHover() bool {
	return t.linkedTargetHover
}

// LinkEnabled 是否启用关联目标悬停
func (t *Tracker) LinkEnabled() bool {
	return t.linkEnabled
}

// ShouldRemainVisible 面板是否应保持可见
func (t *Tracker) ShouldRemainVisible() bool {
	return t.directHover || t.linkedTargetHover
}

// Reset 清空所有悬停标志，不触发回调
func (t *Tracker) Reset() {
	t.directHover = false
	t.linkedTargetHover = false
}

func (t *Tracker) touch() {
	if t.activity != nil {
		t.activity()
	}
}
