package panel

import "strconv"

// UserEntry 用户条目
// 面板不拥有用户数据，只保存一次渲染投影
type UserEntry struct {
	ID        int64  // 用户 ID
	Username  string // 用户名
	AvatarURL string // 头像地址（加载和缓存由外部负责）
}

// AvatarSlot 一个可渲染的头像槽位
type AvatarSlot struct {
	Index int       // 在输入序列中的位置
	User  UserEntry // 对应的用户
}

// AvatarLayout 一次 SetUsers 的完整渲染结果
type AvatarLayout struct {
	Slots    []AvatarSlot // 按输入顺序排列的槽位，长度不超过容量
	Overflow int          // 被省略的用户数，0 表示没有溢出标记
	Width    float64      // 由宽度策略根据槽位数计算出的宽度
}

// HasOverflow 是否需要显示溢出标记
func (l AvatarLayout) HasOverflow() bool {
	return l.Overflow > 0
}

// OverflowLabel 溢出标记文本，如 "+23"
// 没有溢出时返回空字符串
func (l AvatarLayout) OverflowLabel() string {
	if l.Overflow <= 0 {
		return ""
	}
	return "+" + strconv.Itoa(l.Overflow)
}

// Len 槽位数量
func (l AvatarLayout) Len() int {
	return len(l.Slots)
}

// WidthPolicy 根据头像数量计算面板宽度
type WidthPolicy interface {
	Width(count int) float64
}

// AdaptiveWidth 自适应宽度
//
// 数量不超过 Threshold 时宽度随数量线性增长，超过后固定为 MaxWidth。
// Threshold <= 0 表示始终线性。
type AdaptiveWidth struct {
	ItemSize  float64 // 头像边长
	Spacing   float64 // 头像间距
	Padding   float64 // 左右内边距（单侧）
	Threshold int     // 线性增长的最大数量
	MaxWidth  float64 // 超过阈值后的固定宽度
}

// Width 实现 WidthPolicy
func (w AdaptiveWidth) Width(count int) float64 {
	if count < 0 {
		count = 0
	}
	if w.Threshold > 0 && count > w.Threshold {
		return w.MaxWidth
	}
	width := w.Padding * 2
	if count > 0 {
		width += float64(count)*w.ItemSize + float64(count-1)*w.Spacing
	}
	return width
}

// FixedWidth 固定宽度
type FixedWidth float64

// Width 实现 WidthPolicy
func (w FixedWidth) Width(int) float64 {
	return float64(w)
}

// AvatarList 有上限的头像列表
type AvatarList struct {
	capacity int // 最大槽位数，0 表示不限
	width    WidthPolicy
	layout   AvatarLayout
}

// NewAvatarList 创建头像列表
//
// 参数：
//   - capacity: 最大槽位数，<= 0 表示不限
//   - width: 宽度策略，可为 nil（宽度恒为 0）
func NewAvatarList(capacity int, width WidthPolicy) *AvatarList {
	if capacity < 0 {
		capacity = 0
	}
	return &AvatarList{
		capacity: capacity,
		width:    width,
	}
}

// Capacity 返回容量，0 表示不限
func (l *AvatarList) Capacity() int {
	return l.capacity
}

// SetUsers 用新的用户序列整体替换槽位
//
// 取前 capacity 个用户（保持输入顺序），超出部分汇总为一个溢出标记。
// users 为 nil 或空时清空所有槽位和溢出标记。
func (l *AvatarList) SetUsers(users []UserEntry) AvatarLayout {
	count := len(users)
	if l.capacity > 0 && count > l.capacity {
		count = l.capacity
	}

	slots := make([]AvatarSlot, count)
	for i := 0; i < count; i++ {
		slots[i] = AvatarSlot{Index: i, User: users[i]}
	}

	layout := AvatarLayout{
		Slots:    slots,
		Overflow: len(users) - count,
	}
	if l.width != nil {
		layout.Width = l.width.Width(count)
	}

	l.layout = layout
	return layout
}

// Layout 返回最近一次 SetUsers 的结果
func (l *AvatarList) Layout() AvatarLayout {
	return l.layout
}
