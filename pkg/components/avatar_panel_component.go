package components

import (
	"image/color"
	"math"
	"time"

	"github.com/gonewx/avatarpanel/pkg/ecs"
	"github.com/gonewx/avatarpanel/pkg/panel"
)

// AvatarFlow 头像排列方向
type AvatarFlow int

const (
	// FlowWrap 横向排列，超出内容宽度自动换行（最近收藏面板）
	FlowWrap AvatarFlow = iota
	// FlowHorizontal 单行横向排列（方形用户列表）
	FlowHorizontal
)

// AvatarPanelStyle 面板样式
type AvatarPanelStyle struct {
	AvatarSize      float64     // 头像边长
	Spacing         float64     // 头像间距
	Padding         float64     // 内边距
	Flow            AvatarFlow  // 排列方向
	ContentWidth    float64     // FlowWrap 时的内容宽度
	OverflowHeight  float64     // 溢出标记所占行高
	OverflowWidth   float64     // FlowHorizontal 时溢出标记所占宽度
	Background      color.Color // 背景色
	BackgroundAlpha float64     // 背景不透明度
}

// Rect 面板内的矩形（相对面板左上角）
type Rect struct {
	X, Y, W, H float64
}

// Contains 点是否在矩形内
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// AvatarPanelComponent 头像浮层面板组件
//
// 同时充当 panel.Renderer：状态机发出的出现/消失/重绘指令
// 在这里转换为淡入淡出和布局数据，由渲染系统在 Draw 阶段读取。
type AvatarPanelComponent struct {
	// Panel 可见性状态机和头像列表
	Panel *panel.Panel
	// Fade 淡入淡出状态（同时作为 ECS 组件挂在实体上）
	Fade *FadeComponent
	// Style 样式
	Style AvatarPanelStyle

	// Layout 最近一次渲染的头像布局
	Layout panel.AvatarLayout
	// Width/Height 面板尺寸（由布局计算）
	Width  float64
	Height float64

	// Anchor 面板依附的触发元素，0 表示无
	Anchor ecs.EntityID
	// OffsetX/OffsetY 相对触发元素左上角的偏移
	OffsetX float64
	OffsetY float64

	// 指针追踪（由系统维护）
	PointerInside bool
	LastPointerX  int
	LastPointerY  int
	HoveredSlot   int // 悬停中的头像槽位，-1 表示无

	// OnAvatarClick 点击头像时的回调
	OnAvatarClick func(user panel.UserEntry)
	// OnAppear 出现时的回调（播放音效等）
	OnAppear func()
}

// NewAvatarPanelComponent 创建面板组件
// 调用者需要随后创建 panel.Panel 并以该组件为 Renderer，赋值给 Panel 字段
func NewAvatarPanelComponent(style AvatarPanelStyle, fadeDuration time.Duration) *AvatarPanelComponent {
	c := &AvatarPanelComponent{
		Style:       style,
		Fade:        &FadeComponent{Duration: fadeDuration},
		HoveredSlot: -1,
	}
	c.relayout()
	return c
}

// Appear 实现 panel.Renderer
func (c *AvatarPanelComponent) Appear() {
	c.Fade.Reset(0)
	c.Fade.FadeTo(1)
	if c.OnAppear != nil {
		c.OnAppear()
	}
}

// Disappear 实现 panel.Renderer
func (c *AvatarPanelComponent) Disappear() {
	c.Fade.FadeTo(0)
	c.HoveredSlot = -1
}

// RenderAvatars 实现 panel.Renderer
func (c *AvatarPanelComponent) RenderAvatars(layout panel.AvatarLayout) {
	c.Layout = layout
	c.HoveredSlot = -1
	c.relayout()
}

// IsDrawn 面板是否需要绘制（可见或正在淡出）
func (c *AvatarPanelComponent) IsDrawn() bool {
	return c.Fade.Alpha > 0
}

// Columns 每行可容纳的头像数
func (c *AvatarPanelComponent) Columns() int {
	count := len(c.Layout.Slots)
	if c.Style.Flow == FlowHorizontal {
		return max(count, 1)
	}
	cell := c.Style.AvatarSize + c.Style.Spacing
	if cell <= 0 {
		return 1
	}
	return max(int(math.Floor((c.contentWidth()+c.Style.Spacing)/cell)), 1)
}

// SlotRect 第 i 个头像的矩形
func (c *AvatarPanelComponent) SlotRect(i int) Rect {
	cols := c.Columns()
	row, col := i/cols, i%cols
	step := c.Style.AvatarSize + c.Style.Spacing
	return Rect{
		X: c.Style.Padding + float64(col)*step,
		Y: c.Style.Padding + float64(row)*step,
		W: c.Style.AvatarSize,
		H: c.Style.AvatarSize,
	}
}

// OverflowRect 溢出标记的矩形，没有溢出时 ok 为 false
func (c *AvatarPanelComponent) OverflowRect() (Rect, bool) {
	if !c.Layout.HasOverflow() {
		return Rect{}, false
	}
	count := len(c.Layout.Slots)
	if c.Style.Flow == FlowHorizontal {
		x := c.Style.Padding
		if count > 0 {
			x += float64(count) * (c.Style.AvatarSize + c.Style.Spacing)
		}
		return Rect{X: x, Y: c.Style.Padding, W: c.Style.OverflowWidth, H: c.Style.AvatarSize}, true
	}
	return Rect{
		X: c.Style.Padding,
		Y: c.overflowTop(),
		W: c.contentWidth(),
		H: c.Style.OverflowHeight,
	}, true
}

// SlotAt 返回面板内坐标 (x, y) 处的头像槽位索引，没有则返回 -1
func (c *AvatarPanelComponent) SlotAt(x, y float64) int {
	for i := range c.Layout.Slots {
		if c.SlotRect(i).Contains(x, y) {
			return i
		}
	}
	return -1
}

// Bounds 返回面板在屏幕上的矩形
func (c *AvatarPanelComponent) Bounds(pos *PositionComponent) Rect {
	return Rect{X: pos.X, Y: pos.Y, W: c.Width, H: c.Height}
}

func (c *AvatarPanelComponent) contentWidth() float64 {
	if c.Layout.Width > 0 {
		return math.Max(c.Layout.Width-c.Style.Padding*2, 0)
	}
	return c.Style.ContentWidth
}

// gridHeight 头像网格的高度（不含内边距和溢出行）
func (c *AvatarPanelComponent) gridHeight() float64 {
	count := len(c.Layout.Slots)
	if count == 0 {
		return 0
	}
	cols := c.Columns()
	rows := (count + cols - 1) / cols
	return float64(rows)*c.Style.AvatarSize + float64(rows-1)*c.Style.Spacing
}

// overflowTop 溢出行相对面板顶部的位置
func (c *AvatarPanelComponent) overflowTop() float64 {
	top := c.Style.Padding + c.gridHeight()
	if len(c.Layout.Slots) > 0 {
		top += c.Style.Spacing
	}
	return top
}

// relayout 根据当前布局重新计算面板尺寸
func (c *AvatarPanelComponent) relayout() {
	count := len(c.Layout.Slots)
	pad := c.Style.Padding

	if c.Style.Flow == FlowHorizontal {
		w := pad * 2
		if count > 0 {
			w += float64(count)*c.Style.AvatarSize + float64(count-1)*c.Style.Spacing
		}
		if c.Layout.HasOverflow() {
			w += c.Style.Spacing + c.Style.OverflowWidth
		}
		if c.Layout.Width > 0 {
			w = c.Layout.Width
		}
		c.Width = w
		c.Height = pad*2 + c.Style.AvatarSize
		return
	}

	c.Width = c.contentWidth() + pad*2
	if c.Layout.HasOverflow() {
		c.Height = c.overflowTop() + c.Style.OverflowHeight + pad
		return
	}
	c.Height = pad*2 + c.gridHeight()
}
