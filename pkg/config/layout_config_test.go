package config

import "testing"

// TestTriggersOnScreen 触发元素和其下方的面板起点都在屏幕内
func TestTriggersOnScreen(t *testing.T) {
	tests := []struct {
		name   string
		layout TriggerLayout
	}{
		{"favourites", FavouritesTrigger},
		{"square list", SquareListTrigger},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := tt.layout
			if l.X < 0 || l.Y < 0 || l.X+l.Width > GameWindowWidth || l.Y+l.Height > GameWindowHeight {
				t.Errorf("trigger off screen: %+v", l)
			}
			panelY := l.Y + l.PanelOffsetY
			if panelY < l.Y+l.Height {
				t.Errorf("panel (y=%v) overlaps its trigger", panelY)
			}
			if panelY >= GameWindowHeight {
				t.Errorf("panel starts below the screen: y=%v", panelY)
			}
		})
	}
}

func TestTriggersDoNotOverlap(t *testing.T) {
	a, b := FavouritesTrigger, SquareListTrigger
	overlap := a.X < b.X+b.Width && b.X < a.X+a.Width && a.Y < b.Y+b.Height && b.Y < a.Y+a.Height
	if overlap {
		t.Errorf("triggers overlap: %+v %+v", a, b)
	}
}
