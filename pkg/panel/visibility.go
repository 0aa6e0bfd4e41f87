package panel

import "time"

// VisibilityState 面板可见状态
type VisibilityState int

const (
	// Hidden 隐藏（初始状态）
	Hidden VisibilityState = iota
	// Visible 可见
	Visible
)

// String 返回状态名称（用于日志）
func (s VisibilityState) String() string {
	switch s {
	case Hidden:
		return "Hidden"
	case Visible:
		return "Visible"
	default:
		return "Unknown"
	}
}

const (
	// DefaultIdleDelay 无人操作时自动隐藏的延迟
	DefaultIdleDelay = 1000 * time.Millisecond

	// DefaultFadeDuration 淡入/淡出动画时长（由渲染层使用，状态机不关心）
	DefaultFadeDuration = 100 * time.Millisecond
)
