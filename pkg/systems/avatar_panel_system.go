package systems

import (
	"log"
	"math"
	"time"

	"github.com/gonewx/avatarpanel/pkg/components"
	"github.com/gonewx/avatarpanel/pkg/ecs"
	"github.com/gonewx/avatarpanel/pkg/utils"
)

// highlightSpeed 触发元素高亮强度每秒变化量
const highlightSpeed = 8.0

// PointerSource 返回当前帧的指针状态
type PointerSource func() utils.PointerState

// AvatarPanelSystem 头像面板交互系统
//
// 职责：
//   - 把指针位置转换为触发元素和面板的悬停进入/离开/移动事件
//   - 触发元素悬停时显示关联面板，并上报 linkedTargetHover
//   - 面板跟随触发元素定位
//   - 处理头像点击
//   - 按 deltaTime 推进面板的隐藏计时器
//
// 淡入淡出由 FadeSystem 负责，绘制由 AvatarPanelRenderSystem 负责。
type AvatarPanelSystem struct {
	entityManager *ecs.EntityManager
	pointer       PointerSource
}

// NewAvatarPanelSystem 创建头像面板交互系统
func NewAvatarPanelSystem(em *ecs.EntityManager) *AvatarPanelSystem {
	return &AvatarPanelSystem{
		entityManager: em,
		pointer:       utils.ReadPointer,
	}
}

// SetPointerSource 替换指针来源（测试和脚本回放使用）
func (s *AvatarPanelSystem) SetPointerSource(source PointerSource) {
	s.pointer = source
}

// Update 更新面板交互状态
// deltaTime 单位为秒
func (s *AvatarPanelSystem) Update(deltaTime float64) {
	ptr := s.pointer()
	px, py := float64(ptr.X), float64(ptr.Y)

	s.updateTriggers(px, py, deltaTime)
	s.updatePanels(ptr, DurationFromSeconds(deltaTime))
}

// updateTriggers 处理触发元素悬停
func (s *AvatarPanelSystem) updateTriggers(px, py, deltaTime float64) {
	entities := ecs.GetEntitiesWith2[*components.HoverTargetComponent, *components.PositionComponent](s.entityManager)

	for _, id := range entities {
		trigger, _ := ecs.GetComponent[*components.HoverTargetComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		hovered := trigger.Contains(pos.X, pos.Y, px, py)
		entered := hovered && !trigger.Hovered
		trigger.Hovered = hovered

		target := 0.0
		if hovered {
			target = 1.0
		}
		trigger.Intensity = utils.Approach(trigger.Intensity, target, highlightSpeed*deltaTime)

		comp, ok := ecs.GetComponent[*components.AvatarPanelComponent](s.entityManager, trigger.LinkedPanel)
		if !ok || comp.Panel == nil {
			continue
		}
		if entered && trigger.ShowOnHover {
			comp.Panel.Show()
		}
		// Tracker 只在值变化时重新计时，每帧上报是安全的
		comp.Panel.SetLinkedTargetHover(hovered)
	}
}

// updatePanels 处理面板自身的悬停、移动和点击
func (s *AvatarPanelSystem) updatePanels(ptr utils.PointerState, dt time.Duration) {
	entities := ecs.GetEntitiesWith2[*components.AvatarPanelComponent, *components.PositionComponent](s.entityManager)

	for _, id := range entities {
		comp, _ := ecs.GetComponent[*components.AvatarPanelComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if comp.Panel == nil {
			continue
		}

		s.followAnchor(comp, pos)

		// 隐藏的面板不参与命中检测
		bounds := comp.Bounds(pos)
		inside := comp.Panel.IsVisible() && bounds.Contains(float64(ptr.X), float64(ptr.Y))
		moved := ptr.X != comp.LastPointerX || ptr.Y != comp.LastPointerY

		switch {
		case inside && !comp.PointerInside:
			comp.PointerInside = true
			comp.Panel.OnDirectHoverEnter()
		case !inside && comp.PointerInside:
			comp.PointerInside = false
			comp.Panel.OnDirectHoverExit()
		case inside && moved:
			comp.Panel.OnPointerMove()
		}
		comp.LastPointerX, comp.LastPointerY = ptr.X, ptr.Y

		comp.HoveredSlot = -1
		if inside {
			localX := float64(ptr.X) - pos.X
			localY := float64(ptr.Y) - pos.Y
			comp.HoveredSlot = comp.SlotAt(localX, localY)
			if ptr.JustReleased {
				s.handleClick(comp, comp.HoveredSlot)
			}
		}

		comp.Panel.Update(dt)
	}
}

// followAnchor 面板跟随触发元素
func (s *AvatarPanelSystem) followAnchor(comp *components.AvatarPanelComponent, pos *components.PositionComponent) {
	if comp.Anchor == 0 {
		return
	}
	anchorPos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, comp.Anchor)
	if !ok {
		return
	}
	pos.X = anchorPos.X + comp.OffsetX
	pos.Y = anchorPos.Y + comp.OffsetY
}

func (s *AvatarPanelSystem) handleClick(comp *components.AvatarPanelComponent, slot int) {
	if slot < 0 || slot >= len(comp.Layout.Slots) {
		log.Printf("[AvatarPanelSystem] Panel %s clicked", comp.Panel.Name())
		return
	}
	user := comp.Layout.Slots[slot].User
	log.Printf("[AvatarPanelSystem] Avatar clicked: %s (id=%d)", user.Username, user.ID)
	if comp.OnAvatarClick != nil {
		comp.OnAvatarClick(user)
	}
}

// DurationFromSeconds 把以秒为单位的 deltaTime 转换为 time.Duration（四舍五入到纳秒）
func DurationFromSeconds(seconds float64) time.Duration {
	if seconds <= 0 {
		return 0
	}
	return time.Duration(math.Round(seconds * float64(time.Second)))
}
