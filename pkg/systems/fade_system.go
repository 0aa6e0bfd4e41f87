package systems

import (
	"github.com/gonewx/avatarpanel/pkg/components"
	"github.com/gonewx/avatarpanel/pkg/ecs"
)

// FadeSystem 推进所有 FadeComponent 的透明度渐变
type FadeSystem struct {
	entityManager *ecs.EntityManager
}

// NewFadeSystem 创建渐变系统
func NewFadeSystem(em *ecs.EntityManager) *FadeSystem {
	return &FadeSystem{entityManager: em}
}

// Update 推进渐变，deltaTime 单位为秒
func (s *FadeSystem) Update(deltaTime float64) {
	dt := DurationFromSeconds(deltaTime)
	for _, id := range ecs.GetEntitiesWith1[*components.FadeComponent](s.entityManager) {
		fade, _ := ecs.GetComponent[*components.FadeComponent](s.entityManager, id)
		fade.Advance(dt)
	}
}
