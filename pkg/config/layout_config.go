package config

// 布局配置常量
// 演示场景的窗口尺寸和触发元素位置

const (
	// GameWindowWidth 逻辑屏幕宽度
	GameWindowWidth = 800
	// GameWindowHeight 逻辑屏幕高度
	GameWindowHeight = 600
)

// TriggerLayout 触发元素的位置和尺寸
type TriggerLayout struct {
	X, Y          float64
	Width, Height float64
	// PanelOffsetX/Y 面板相对触发元素左上角的偏移
	PanelOffsetX float64
	PanelOffsetY float64
}

// FavouritesTrigger 最近收藏按钮（面板出现在按钮下方）
var FavouritesTrigger = TriggerLayout{
	X: 60, Y: 60, Width: 120, Height: 32,
	PanelOffsetX: 0, PanelOffsetY: 38,
}

// SquareListTrigger 在线用户按钮
var SquareListTrigger = TriggerLayout{
	X: 60, Y: 420, Width: 120, Height: 32,
	PanelOffsetX: 0, PanelOffsetY: 38,
}
