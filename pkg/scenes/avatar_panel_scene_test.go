package scenes

import (
	"testing"

	"github.com/gonewx/avatarpanel/pkg/config"
	"github.com/gonewx/avatarpanel/pkg/embedded"
	"github.com/gonewx/avatarpanel/pkg/game"
	"github.com/gonewx/avatarpanel/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// loadBundledConfig 读取仓库中的面板配置
func loadBundledConfig(t *testing.T) *config.AvatarPanelConfig {
	t.Helper()
	embedded.InitFromDir("../..")
	cfg, err := config.LoadAvatarPanelConfig(config.AvatarPanelConfigPath)
	if err != nil {
		t.Fatalf("LoadAvatarPanelConfig: %v", err)
	}
	return cfg
}

func TestAvatarPanelScene_SeedsFavourites(t *testing.T) {
	store := game.NewRecentUsersStore(nil, 0)
	s, err := NewAvatarPanelScene(loadBundledConfig(t), store, nil, 73)
	if err != nil {
		t.Fatalf("NewAvatarPanelScene: %v", err)
	}

	if store.Len() != 73 {
		t.Fatalf("store should be seeded with the online users, got %d", store.Len())
	}
	if store.Users()[0].ID != 1000 {
		t.Errorf("first online user should be most recent, got %d", store.Users()[0].ID)
	}

	fav, ok := s.Module().Panel(PanelRecentFavourited)
	if !ok {
		t.Fatal("favourites panel missing")
	}
	layout := fav.Panel.Layout()
	if layout.Len() != 50 || layout.OverflowLabel() != "+23" {
		t.Errorf("favourites layout: %d slots, label %q", layout.Len(), layout.OverflowLabel())
	}

	square, _ := s.Module().Panel(PanelSquareList)
	if square.Panel.Layout().Len() != 73 || square.Panel.Layout().HasOverflow() {
		t.Errorf("square list should show every online user, got %d", square.Panel.Layout().Len())
	}
}

func TestAvatarPanelScene_KeepsExistingFavourites(t *testing.T) {
	store := game.NewRecentUsersStore(nil, 0)
	store.Add(DemoUsers(1)[0])

	if _, err := NewAvatarPanelScene(loadBundledConfig(t), store, nil, 10); err != nil {
		t.Fatalf("NewAvatarPanelScene: %v", err)
	}
	if store.Len() != 1 {
		t.Errorf("existing favourites must not be reseeded, got %d", store.Len())
	}
}

// TestAvatarPanelScene_ClickFavourites 点击在线用户即收藏
func TestAvatarPanelScene_ClickFavourites(t *testing.T) {
	store := game.NewRecentUsersStore(nil, 0)
	store.Add(DemoUsers(1)[0])
	s, err := NewAvatarPanelScene(loadBundledConfig(t), store, nil, 5)
	if err != nil {
		t.Fatalf("NewAvatarPanelScene: %v", err)
	}

	square, _ := s.Module().Panel(PanelSquareList)
	target := square.Panel.Layout().Slots[3].User
	square.OnAvatarClick(target)

	users := store.Users()
	if len(users) != 2 || users[0].ID != target.ID {
		t.Fatalf("store after click: %+v", users)
	}
	fav, _ := s.Module().Panel(PanelRecentFavourited)
	if fav.Panel.Layout().Slots[0].User.ID != target.ID {
		t.Error("favourites panel should be refreshed with the new user first")
	}

	// 收藏面板中的点击不修改列表
	fav.OnAvatarClick(users[1])
	if store.Users()[0].ID != target.ID {
		t.Error("clicking a favourite must not reorder the list")
	}

	if !s.SaveOnExit() {
		t.Error("SaveOnExit without gdata should succeed")
	}
}

func TestAvatarPanelScene_UpdateDraw(t *testing.T) {
	s, err := NewAvatarPanelScene(loadBundledConfig(t), game.NewRecentUsersStore(nil, 0), nil, 8)
	if err != nil {
		t.Fatalf("NewAvatarPanelScene: %v", err)
	}
	fav, _ := s.Module().Panel(PanelRecentFavourited)
	fav.Panel.Show()
	s.Module().SetPointerSource(func() utils.PointerState { return utils.PointerState{X: 70, Y: 70} })

	s.Update(1.0 / 60.0)
	s.Draw(ebiten.NewImage(800, 600))
}

func TestDemoUsers(t *testing.T) {
	users := DemoUsers(len(demoUsernames) + 2)
	seen := map[string]bool{}
	for _, u := range users {
		if seen[u.Username] {
			t.Errorf("duplicate username %q", u.Username)
		}
		seen[u.Username] = true
	}
	if users[len(demoUsernames)].Username != "peppy_1" {
		t.Errorf("wrapped name: got %q", users[len(demoUsernames)].Username)
	}
}
