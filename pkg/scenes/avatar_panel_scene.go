package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/gonewx/avatarpanel/pkg/config"
	"github.com/gonewx/avatarpanel/pkg/ecs"
	"github.com/gonewx/avatarpanel/pkg/game"
	"github.com/gonewx/avatarpanel/pkg/modules"
	"github.com/gonewx/avatarpanel/pkg/panel"
	"github.com/hajimehoshi/ebiten/v2"
)

// 面板 id（与 data/config/avatar_panels.yaml 对应）
const (
	PanelRecentFavourited = "recent_favourited"
	PanelSquareList       = "square_list"
)

var sceneBackground = color.RGBA{R: 24, G: 24, B: 30, A: 255}

// demoUsernames 首次启动时填充的示例用户
var demoUsernames = []string{
	"peppy", "Cookiezi", "WhiteCat", "Rafis", "Mrekk", "Vaxei", "Angelsim", "Rhythm",
	"chocomint", "Toy", "Dustice", "idke", "Bubbleman", "Ryuk", "Mathi", "Aireu",
}

// AvatarPanelScene 演示两种头像浮层面板
//
//   - 最近收藏：悬停按钮显示，列表来自 RecentUsersStore（最多显示 50 个，其余显示 "+N"）
//   - 在线用户：悬停按钮显示，宽度随人数自适应
//
// 点击在线用户的头像会把该用户加入最近收藏。
type AvatarPanelScene struct {
	entityManager *ecs.EntityManager
	module        *modules.AvatarPanelModule
	store         *game.RecentUsersStore
	online        []panel.UserEntry
}

// NewAvatarPanelScene 创建演示场景
//
// 参数:
//   - cfg: 面板配置
//   - store: 最近收藏用户存储
//   - samplePlayer: 音效播放器，可为 nil
//   - onlineCount: 在线用户数量（示例数据）
func NewAvatarPanelScene(
	cfg *config.AvatarPanelConfig,
	store *game.RecentUsersStore,
	samplePlayer *game.SamplePlayer,
	onlineCount int,
) (*AvatarPanelScene, error) {
	s := &AvatarPanelScene{
		entityManager: ecs.NewEntityManager(),
		store:         store,
		online:        DemoUsers(onlineCount),
	}

	placements := []modules.PanelPlacement{
		{VariantID: PanelRecentFavourited, Trigger: config.FavouritesTrigger},
		{VariantID: PanelSquareList, Trigger: config.SquareListTrigger},
	}
	module, err := modules.NewAvatarPanelModule(s.entityManager, cfg, placements, samplePlayer, modules.AvatarPanelCallbacks{
		OnAvatarClick: s.onAvatarClick,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create avatar panels: %w", err)
	}
	s.module = module

	if store.Len() == 0 {
		for i := len(s.online) - 1; i >= 0; i-- {
			if err := store.Add(s.online[i]); err != nil {
				log.Printf("[AvatarPanelScene] Warning: %v", err)
			}
		}
	}

	s.module.SetUsers(PanelSquareList, s.online)
	s.module.SetLabel(PanelSquareList, fmt.Sprintf("Online (%d)", len(s.online)))
	s.refreshFavourites()
	return s, nil
}

// DemoUsers 生成 n 个示例用户
func DemoUsers(n int) []panel.UserEntry {
	users := make([]panel.UserEntry, n)
	for i := range users {
		name := demoUsernames[i%len(demoUsernames)]
		if i >= len(demoUsernames) {
			name = fmt.Sprintf("%s_%d", name, i/len(demoUsernames))
		}
		users[i] = panel.UserEntry{ID: int64(1000 + i), Username: name}
	}
	return users
}

// Module 返回面板模块
func (s *AvatarPanelScene) Module() *modules.AvatarPanelModule {
	return s.module
}

// onAvatarClick 在线用户列表中点击头像即收藏
func (s *AvatarPanelScene) onAvatarClick(panelID string, user panel.UserEntry) {
	if panelID != PanelSquareList {
		log.Printf("[AvatarPanelScene] Open profile: %s", user.Username)
		return
	}
	if err := s.store.Add(user); err != nil {
		log.Printf("[AvatarPanelScene] Warning: failed to save favourite: %v", err)
	}
	s.refreshFavourites()
}

// refreshFavourites 用存储中的列表刷新最近收藏面板
func (s *AvatarPanelScene) refreshFavourites() {
	users := s.store.Users()
	s.module.SetUsers(PanelRecentFavourited, users)
	s.module.SetLabel(PanelRecentFavourited, fmt.Sprintf("Favourites (%d)", len(users)))
}

// Update 更新场景，deltaTime 单位为秒
func (s *AvatarPanelScene) Update(deltaTime float64) {
	s.module.Update(deltaTime)
}

// Draw 绘制场景
func (s *AvatarPanelScene) Draw(screen *ebiten.Image) {
	screen.Fill(sceneBackground)
	s.module.Draw(screen)
}

// SaveOnExit 实现 game.Saveable
func (s *AvatarPanelScene) SaveOnExit() bool {
	if err := s.store.Save(); err != nil {
		log.Printf("[AvatarPanelScene] Failed to save favourites: %v", err)
		return false
	}
	return true
}
