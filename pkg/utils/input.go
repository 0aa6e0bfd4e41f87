// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerState 当前帧的指针状态
// 统一处理鼠标和触摸输入
type PointerState struct {
	// 指针位置
	X, Y int
	// 是否刚刚释放（点击在释放瞬间生效）
	JustReleased bool
	// 当前是否由触摸驱动
	IsTouching bool
}

// 保存最后一次触摸位置（触摸释放时已经拿不到位置）
var lastTouchX, lastTouchY int

// ReadPointer 读取当前帧的指针状态
// 优先检测触摸，其次鼠标
func ReadPointer() PointerState {
	state := PointerState{}

	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		state.X, state.Y = ebiten.TouchPosition(touchIDs[0])
		state.IsTouching = true
		lastTouchX, lastTouchY = state.X, state.Y
		return state
	}

	if released := inpututil.AppendJustReleasedTouchIDs(nil); len(released) > 0 {
		state.X, state.Y = lastTouchX, lastTouchY
		state.JustReleased = true
		state.IsTouching = true
		return state
	}

	state.X, state.Y = ebiten.CursorPosition()
	state.JustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	return state
}
