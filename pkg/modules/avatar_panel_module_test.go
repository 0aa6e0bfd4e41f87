package modules

import (
	"fmt"
	"testing"

	"github.com/gonewx/avatarpanel/pkg/components"
	"github.com/gonewx/avatarpanel/pkg/config"
	"github.com/gonewx/avatarpanel/pkg/ecs"
	"github.com/gonewx/avatarpanel/pkg/panel"
	"github.com/gonewx/avatarpanel/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

const testPanelsYAML = `
panels:
  - id: recent_favourited
    capacity: 50
    linkedHover: true
    flow: wrap
    avatarSize: 30
    spacing: 2
    padding: 4
    contentWidth: 292
    overflowHeight: 16
  - id: square_list
    flow: horizontal
    avatarSize: 40
    spacing: 10
    padding: 10
    overflowWidth: 40
    width:
      policy: adaptive
      threshold: 6
      maxWidth: 400
`

var testPlacements = []PanelPlacement{
	{VariantID: "recent_favourited", Trigger: config.TriggerLayout{X: 0, Y: 0, Width: 100, Height: 20, PanelOffsetY: 30}, Label: "fav"},
	{VariantID: "square_list", Trigger: config.TriggerLayout{X: 0, Y: 400, Width: 100, Height: 20, PanelOffsetY: 30}, Label: "online"},
}

func loadTestConfig(t *testing.T) *config.AvatarPanelConfig {
	t.Helper()
	cfg, err := config.ParseAvatarPanelConfig([]byte(testPanelsYAML))
	if err != nil {
		t.Fatalf("ParseAvatarPanelConfig: %v", err)
	}
	return cfg
}

func makeUsers(n int) []panel.UserEntry {
	users := make([]panel.UserEntry, n)
	for i := range users {
		users[i] = panel.UserEntry{ID: int64(i + 1), Username: fmt.Sprintf("user%d", i+1)}
	}
	return users
}

func TestNewAvatarPanelModule_Errors(t *testing.T) {
	cfg := loadTestConfig(t)
	em := ecs.NewEntityManager()

	if _, err := NewAvatarPanelModule(em, cfg, []PanelPlacement{{VariantID: "missing"}}, nil, AvatarPanelCallbacks{}); err == nil {
		t.Error("unknown variant should fail")
	}
	dup := []PanelPlacement{testPlacements[0], testPlacements[0]}
	if _, err := NewAvatarPanelModule(em, cfg, dup, nil, AvatarPanelCallbacks{}); err == nil {
		t.Error("duplicate placement should fail")
	}
}

// TestAvatarPanelModule_Interaction 指针驱动显示、点击和自动隐藏
func TestAvatarPanelModule_Interaction(t *testing.T) {
	var (
		states  []string
		clicked []string
	)
	m, err := NewAvatarPanelModule(ecs.NewEntityManager(), loadTestConfig(t), testPlacements, nil, AvatarPanelCallbacks{
		OnAvatarClick: func(panelID string, user panel.UserEntry) {
			clicked = append(clicked, fmt.Sprintf("%s:%d", panelID, user.ID))
		},
		OnVisibilityChange: func(panelID string, state panel.VisibilityState) {
			states = append(states, panelID+":"+state.String())
		},
	})
	if err != nil {
		t.Fatalf("NewAvatarPanelModule: %v", err)
	}
	if ids := m.PanelIDs(); len(ids) != 2 || ids[0] != "recent_favourited" {
		t.Fatalf("PanelIDs: %v", ids)
	}

	m.SetUsers("recent_favourited", makeUsers(73))
	m.SetUsers("square_list", makeUsers(3))
	m.SetUsers("nope", makeUsers(1))

	pointer := utils.PointerState{X: 500, Y: 300}
	m.SetPointerSource(func() utils.PointerState {
		p := pointer
		pointer.JustReleased = false
		return p
	})

	// 悬停最近收藏按钮，再移到面板上点击第一个头像
	pointer.X, pointer.Y = 10, 10
	m.Update(0.1)
	pointer.X, pointer.Y = 10, 40
	m.Update(0.1)
	pointer.JustReleased = true
	m.Update(0.1)

	if len(clicked) != 1 || clicked[0] != "recent_favourited:1" {
		t.Errorf("clicked: %v", clicked)
	}

	fav, _ := m.Panel("recent_favourited")
	if fav.Fade.Alpha != 1 {
		t.Errorf("fade should have completed, alpha=%v", fav.Fade.Alpha)
	}

	// 离开后一秒隐藏
	pointer.X, pointer.Y = 500, 300
	for i := 0; i < 12; i++ {
		m.Update(0.1)
	}
	if fav.Panel.IsVisible() {
		t.Error("panel should hide after the idle delay")
	}

	want := []string{"recent_favourited:visible", "recent_favourited:hidden"}
	if len(states) != len(want) || states[0] != want[0] || states[1] != want[1] {
		t.Errorf("states: got %v, want %v", states, want)
	}
}

func TestAvatarPanelModule_SquareListWidth(t *testing.T) {
	m, err := NewAvatarPanelModule(ecs.NewEntityManager(), loadTestConfig(t), testPlacements, nil, AvatarPanelCallbacks{})
	if err != nil {
		t.Fatalf("NewAvatarPanelModule: %v", err)
	}
	square, _ := m.Panel("square_list")

	m.SetUsers("square_list", makeUsers(3))
	// 10*2 + 3*40 + 2*10
	if square.Width != 160 {
		t.Errorf("width for 3 users: got %v, want 160", square.Width)
	}

	m.SetUsers("square_list", makeUsers(9))
	if square.Width != 400 {
		t.Errorf("width above threshold: got %v, want 400", square.Width)
	}
	if square.Layout.HasOverflow() {
		t.Error("unbounded list should not overflow")
	}
}

func TestAvatarPanelModule_LabelAndHideAll(t *testing.T) {
	em := ecs.NewEntityManager()
	m, err := NewAvatarPanelModule(em, loadTestConfig(t), testPlacements, nil, AvatarPanelCallbacks{})
	if err != nil {
		t.Fatalf("NewAvatarPanelModule: %v", err)
	}

	m.SetLabel("square_list", "online (9)")
	found := false
	for _, id := range ecs.GetEntitiesWith1[*components.HoverTargetComponent](em) {
		hover, _ := ecs.GetComponent[*components.HoverTargetComponent](em, id)
		if hover.Label == "online (9)" {
			found = true
		}
	}
	if !found {
		t.Error("SetLabel did not update the trigger")
	}

	for _, id := range m.PanelIDs() {
		comp, _ := m.Panel(id)
		comp.Panel.Show()
	}
	m.HideAll()
	for _, id := range m.PanelIDs() {
		comp, _ := m.Panel(id)
		if comp.Panel.IsVisible() {
			t.Errorf("%s should be hidden", id)
		}
	}

	// 绘制不崩溃
	m.Draw(ebiten.NewImage(800, 600))
}
