package scenes

import (
	"testing"

	"github.com/decker502/mathtd/pkg/game"
)

// TestMenuScene_Move 上下移动选中项并循环
func TestMenuScene_Move(t *testing.T) {
	tests := []struct {
		name  string
		moves []int
		want  int
	}{
		{"初始选中第一项", nil, 0},
		{"向下移动", []int{1}, 1},
		{"向上循环到末项", []int{-1}, len(menuItems) - 1},
		{"向下循环到首项", []int{1, 1, 1}, 0},
		{"多步移动", []int{2, -1}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMenuScene(&recordingSwitcher{}, nil)
			for _, d := range tt.moves {
				m.Move(d)
			}
			if m.Selected() != tt.want {
				t.Errorf("selected: got %d, want %d", m.Selected(), tt.want)
			}
		})
	}
}

// TestMenuScene_Activate 激活菜单项切换到对应画面
func TestMenuScene_Activate(t *testing.T) {
	targets := []game.ScreenType{game.ScreenGame, game.ScreenMinigame, game.ScreenHelp}

	for i, want := range targets {
		switcher := &recordingSwitcher{}
		m := NewMenuScene(switcher, game.NewPotionManager(nil))
		m.Activate(i)

		screen, ok := switcher.last()
		if !ok || screen.Type != want {
			t.Errorf("item %d: got %+v, want %v", i, switcher.screens, want)
		}
		if m.Selected() != i {
			t.Errorf("item %d: selection not updated", i)
		}
	}

	t.Run("越界下标忽略", func(t *testing.T) {
		switcher := &recordingSwitcher{}
		m := NewMenuScene(switcher, nil)
		m.Activate(-1)
		m.Activate(len(menuItems))
		if len(switcher.screens) != 0 {
			t.Errorf("unexpected switch: %+v", switcher.screens)
		}
	})
}

// TestMenuScene_ItemAt 点击坐标命中菜单项
func TestMenuScene_ItemAt(t *testing.T) {
	m := NewMenuScene(&recordingSwitcher{}, nil)

	tests := []struct {
		name string
		x, y float64
		want int
	}{
		{"第一项中心", 480, menuItemTop + 25, 0},
		{"第三项", 480, menuItemTop + 2*menuItemStep + 10, 2},
		{"项之间的空隙", 480, menuItemTop + menuItemHeight + 5, -1},
		{"左侧外", 100, menuItemTop + 25, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.ItemAt(tt.x, tt.y); got != tt.want {
				t.Errorf("ItemAt(%v, %v) = %d, want %d", tt.x, tt.y, got, tt.want)
			}
		})
	}
}
