package components

import "github.com/gonewx/avatarpanel/pkg/ecs"

// HoverTargetComponent 面板的触发元素（关联目标）
//
// 鼠标悬停在触发元素上时：
//   - ShowOnHover 为 true 则显示关联面板
//   - 向关联面板上报 linkedTargetHover
//
// 同时保留持续高亮效果（不闪烁），悬停时 Intensity 渐变到 1.0。
type HoverTargetComponent struct {
	Width  float64 // 可悬停区域宽度
	Height float64 // 可悬停区域高度
	Label  string  // 显示文本，如 "♥ 73"

	// LinkedPanel 关联的面板实体
	LinkedPanel ecs.EntityID
	// ShowOnHover 悬停进入时是否显示面板
	ShowOnHover bool

	// Hovered 当前帧指针是否在触发元素内（由系统维护）
	Hovered bool

	// Intensity 高亮强度（0.0 - 1.0）
	Intensity float64
}

// Contains 判断点 (x, y) 是否在以 (originX, originY) 为左上角的触发区域内
func (c *HoverTargetComponent) Contains(originX, originY, x, y float64) bool {
	return x >= originX && x < originX+c.Width &&
		y >= originY && y < originY+c.Height
}
