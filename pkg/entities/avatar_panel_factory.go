package entities

import (
	"image/color"
	"log"

	"github.com/gonewx/avatarpanel/pkg/components"
	"github.com/gonewx/avatarpanel/pkg/config"
	"github.com/gonewx/avatarpanel/pkg/ecs"
	"github.com/gonewx/avatarpanel/pkg/panel"
)

// 面板背景色（原版 Background6 / Gray3 的近似值）
var (
	favouritedBackground = color.RGBA{R: 36, G: 34, B: 42, A: 255}
	squareBackground     = color.RGBA{R: 51, G: 51, B: 51, A: 255}
)

// panelBackgroundAlpha 面板背景不透明度
const panelBackgroundAlpha = 0.9

// StyleFromVariant 根据面板配置构造样式
func StyleFromVariant(v *config.AvatarPanelVariant) components.AvatarPanelStyle {
	style := components.AvatarPanelStyle{
		AvatarSize:      v.AvatarSize,
		Spacing:         v.Spacing,
		Padding:         v.Padding,
		Flow:            components.FlowWrap,
		ContentWidth:    v.ContentWidth,
		OverflowHeight:  v.OverflowHeight,
		OverflowWidth:   v.OverflowWidth,
		Background:      favouritedBackground,
		BackgroundAlpha: panelBackgroundAlpha,
	}
	if v.Flow == config.FlowHorizontal {
		style.Flow = components.FlowHorizontal
		style.Background = squareBackground
	}
	return style
}

// NewAvatarPanelEntity 创建头像面板实体
//
// 面板组件同时作为状态机的 Renderer，淡入淡出组件同时挂在实体上由 FadeSystem 推进。
//
// 参数：
//   - em: 实体管理器
//   - variant: 面板配置
//   - anchor: 面板依附的触发元素，0 表示不跟随
//   - offsetX/offsetY: 相对触发元素的偏移（anchor 为 0 时为屏幕坐标）
//
// 返回：
//   - ecs.EntityID: 面板实体ID
//   - *components.AvatarPanelComponent: 面板组件
func NewAvatarPanelEntity(
	em *ecs.EntityManager,
	variant *config.AvatarPanelVariant,
	anchor ecs.EntityID,
	offsetX, offsetY float64,
) (ecs.EntityID, *components.AvatarPanelComponent) {
	comp := components.NewAvatarPanelComponent(StyleFromVariant(variant), variant.FadeDuration())
	comp.Panel = panel.New(comp, variant.PanelOptions())
	comp.Anchor = anchor
	comp.OffsetX = offsetX
	comp.OffsetY = offsetY

	entityID := em.CreateEntity()
	ecs.AddComponent(em, entityID, comp)
	ecs.AddComponent(em, entityID, comp.Fade)
	ecs.AddComponent(em, entityID, &components.PositionComponent{X: offsetX, Y: offsetY})

	log.Printf("[AvatarPanelFactory] Created panel %q (entity=%d, capacity=%d, linkedHover=%v)",
		variant.ID, entityID, variant.Capacity, variant.LinkedHover)
	return entityID, comp
}

// NewPanelTriggerEntity 创建面板触发元素
//
// 参数：
//   - em: 实体管理器
//   - layout: 触发元素的位置和尺寸
//   - label: 显示文本
//
// 返回：
//   - ecs.EntityID: 触发元素实体ID（LinkedPanel 需要在面板创建后通过 LinkTrigger 设置）
func NewPanelTriggerEntity(em *ecs.EntityManager, layout config.TriggerLayout, label string) ecs.EntityID {
	entityID := em.CreateEntity()
	ecs.AddComponent(em, entityID, &components.PositionComponent{X: layout.X, Y: layout.Y})
	ecs.AddComponent(em, entityID, &components.HoverTargetComponent{
		Width:       layout.Width,
		Height:      layout.Height,
		Label:       label,
		ShowOnHover: true,
	})
	return entityID
}

// NewTriggeredAvatarPanel 创建触发元素和依附其上的面板，并完成关联
//
// 返回：
//   - trigger: 触发元素实体ID
//   - panelID: 面板实体ID
//   - comp: 面板组件
func NewTriggeredAvatarPanel(
	em *ecs.EntityManager,
	variant *config.AvatarPanelVariant,
	layout config.TriggerLayout,
	label string,
) (trigger, panelID ecs.EntityID, comp *components.AvatarPanelComponent) {
	trigger = NewPanelTriggerEntity(em, layout, label)
	panelID, comp = NewAvatarPanelEntity(em, variant, trigger, layout.PanelOffsetX, layout.PanelOffsetY)
	LinkTrigger(em, trigger, panelID)
	return trigger, panelID, comp
}

// LinkTrigger 把触发元素关联到面板
func LinkTrigger(em *ecs.EntityManager, trigger, panelID ecs.EntityID) {
	if hover, ok := ecs.GetComponent[*components.HoverTargetComponent](em, trigger); ok {
		hover.LinkedPanel = panelID
	}
}
