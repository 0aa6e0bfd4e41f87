package modules

import (
	"fmt"
	"log"

	"github.com/gonewx/avatarpanel/pkg/components"
	"github.com/gonewx/avatarpanel/pkg/config"
	"github.com/gonewx/avatarpanel/pkg/ecs"
	"github.com/gonewx/avatarpanel/pkg/entities"
	"github.com/gonewx/avatarpanel/pkg/game"
	"github.com/gonewx/avatarpanel/pkg/panel"
	"github.com/gonewx/avatarpanel/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

// PanelPlacement 一个面板在屏幕上的摆放
type PanelPlacement struct {
	VariantID string               // 面板配置 id
	Trigger   config.TriggerLayout // 触发元素位置
	Label     string               // 触发元素文本
}

// AvatarPanelCallbacks 面板模块回调
type AvatarPanelCallbacks struct {
	// OnAvatarClick 点击头像（panelID 为面板配置 id）
	OnAvatarClick func(panelID string, user panel.UserEntry)
	// OnVisibilityChange 面板显示/隐藏（可选）
	OnVisibilityChange func(panelID string, state panel.VisibilityState)
}

// AvatarPanelModule 头像浮层面板模块
// 封装头像面板相关的全部功能：
//   - 按配置创建触发元素和面板实体
//   - 交互系统、淡入淡出系统、渲染系统的调度
//   - 面板出现时播放配置的音效
//
// 场景只需调用 Update/Draw，并通过 SetUsers 提供用户列表。
type AvatarPanelModule struct {
	entityManager *ecs.EntityManager

	panelSystem  *systems.AvatarPanelSystem
	fadeSystem   *systems.FadeSystem
	renderSystem *systems.AvatarPanelRenderSystem // 首次 Draw 时创建

	samplePlayer *game.SamplePlayer // 可为 nil

	panels   map[string]*components.AvatarPanelComponent
	triggers map[string]ecs.EntityID
	order    []string
}

// NewAvatarPanelModule 创建头像面板模块
//
// 参数:
//   - em: EntityManager 实例
//   - cfg: 面板配置
//   - placements: 要创建的面板及其位置
//   - samplePlayer: 音效播放器，可为 nil（不播放音效）
//   - callbacks: 回调函数集合
//
// 返回:
//   - error: placements 引用了不存在的面板配置，或同一面板被摆放两次
func NewAvatarPanelModule(
	em *ecs.EntityManager,
	cfg *config.AvatarPanelConfig,
	placements []PanelPlacement,
	samplePlayer *game.SamplePlayer,
	callbacks AvatarPanelCallbacks,
) (*AvatarPanelModule, error) {
	m := &AvatarPanelModule{
		entityManager: em,
		panelSystem:   systems.NewAvatarPanelSystem(em),
		fadeSystem:    systems.NewFadeSystem(em),
		samplePlayer:  samplePlayer,
		panels:        make(map[string]*components.AvatarPanelComponent, len(placements)),
		triggers:      make(map[string]ecs.EntityID, len(placements)),
	}

	for _, p := range placements {
		variant, ok := cfg.Get(p.VariantID)
		if !ok {
			return nil, fmt.Errorf("unknown avatar panel variant %q", p.VariantID)
		}
		if _, dup := m.panels[p.VariantID]; dup {
			return nil, fmt.Errorf("avatar panel %q placed twice", p.VariantID)
		}

		trigger, _, comp := entities.NewTriggeredAvatarPanel(em, variant, p.Trigger, p.Label)
		m.bind(variant, comp, callbacks)

		m.panels[p.VariantID] = comp
		m.triggers[p.VariantID] = trigger
		m.order = append(m.order, p.VariantID)
	}

	log.Printf("[AvatarPanelModule] Initialized with %d panels", len(m.order))
	return m, nil
}

// bind 连接面板组件和回调、音效
func (m *AvatarPanelModule) bind(variant *config.AvatarPanelVariant, comp *components.AvatarPanelComponent, callbacks AvatarPanelCallbacks) {
	id := variant.ID
	sample := variant.AppearSample

	if !sample.IsZero() && m.samplePlayer != nil {
		comp.OnAppear = func() { m.samplePlayer.Play(sample) }
	}
	if callbacks.OnAvatarClick != nil {
		comp.OnAvatarClick = func(user panel.UserEntry) { callbacks.OnAvatarClick(id, user) }
	}
	if callbacks.OnVisibilityChange != nil {
		comp.Panel.SetStateListener(func(state panel.VisibilityState) { callbacks.OnVisibilityChange(id, state) })
	}
}

// PanelIDs 按创建顺序返回面板 id
func (m *AvatarPanelModule) PanelIDs() []string {
	return append([]string(nil), m.order...)
}

// Panel 返回面板组件
func (m *AvatarPanelModule) Panel(id string) (*components.AvatarPanelComponent, bool) {
	comp, ok := m.panels[id]
	return comp, ok
}

// SetUsers 替换面板的用户列表
func (m *AvatarPanelModule) SetUsers(id string, users []panel.UserEntry) {
	comp, ok := m.panels[id]
	if !ok {
		log.Printf("[AvatarPanelModule] Warning: SetUsers on unknown panel %q", id)
		return
	}
	comp.Panel.SetUsers(users)
}

// SetLabel 修改面板触发元素的文本
func (m *AvatarPanelModule) SetLabel(id, label string) {
	trigger, ok := m.triggers[id]
	if !ok {
		return
	}
	if hover, ok := ecs.GetComponent[*components.HoverTargetComponent](m.entityManager, trigger); ok {
		hover.Label = label
	}
}

// SetPointerSource 替换指针来源（脚本回放使用）
func (m *AvatarPanelModule) SetPointerSource(source systems.PointerSource) {
	m.panelSystem.SetPointerSource(source)
}

// HideAll 立即隐藏所有面板
func (m *AvatarPanelModule) HideAll() {
	for _, id := range m.order {
		m.panels[id].Panel.Hide()
	}
}

// Update 更新模块，deltaTime 单位为秒
func (m *AvatarPanelModule) Update(deltaTime float64) {
	m.panelSystem.Update(deltaTime)
	m.fadeSystem.Update(deltaTime)
}

// Draw 绘制触发元素和面板
func (m *AvatarPanelModule) Draw(screen *ebiten.Image) {
	if m.renderSystem == nil {
		m.renderSystem = systems.NewAvatarPanelRenderSystem(m.entityManager)
	}
	m.renderSystem.Draw(screen)
}
