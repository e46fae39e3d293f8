package scenes

import (
	"github.com/decker502/mathtd/pkg/game"
)

// recordingSwitcher 记录画面切换请求
type recordingSwitcher struct {
	screens []game.Screen
}

func (s *recordingSwitcher) SwitchToScreen(screen game.Screen) {
	s.screens = append(s.screens, screen)
}

func (s *recordingSwitcher) last() (game.Screen, bool) {
	if len(s.screens) == 0 {
		return game.Screen{}, false
	}
	return s.screens[len(s.screens)-1], true
}
