package scenes

import (
	"fmt"
	"log"

	"github.com/decker502/mathtd/pkg/config"
	"github.com/decker502/mathtd/pkg/game"
	"github.com/decker502/mathtd/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// menuItem is one selectable entry of the main menu.
type menuItem struct {
	label  string
	target game.ScreenType
}

var menuItems = []menuItem{
	{label: "Start Game", target: game.ScreenGame},
	{label: "Potion Minigame", target: game.ScreenMinigame},
	{label: "How to Play", target: game.ScreenHelp},
}

// MenuScene is the title screen.
// Arrow keys or number keys choose an entry, Enter activates it.
type MenuScene struct {
	switcher game.ScreenSwitcher
	potions  *game.PotionManager

	selected int
	elapsed  float64

	pointerX, pointerY int
}

// NewMenuScene creates the main menu.
func NewMenuScene(switcher game.ScreenSwitcher, potions *game.PotionManager) *MenuScene {
	return &MenuScene{
		switcher: switcher,
		potions:  potions,
	}
}

// Selected returns the highlighted entry index.
func (m *MenuScene) Selected() int {
	return m.selected
}

// Move shifts the highlight by delta entries, wrapping around.
func (m *MenuScene) Move(delta int) {
	n := len(menuItems)
	m.selected = ((m.selected+delta)%n + n) % n
}

// Activate switches to the screen of the given entry.
func (m *MenuScene) Activate(index int) {
	if index < 0 || index >= len(menuItems) {
		return
	}
	m.selected = index
	log.Printf("[MenuScene] Selected %q", menuItems[index].label)
	m.switcher.SwitchToScreen(game.Screen{Type: menuItems[index].target})
}

// 菜单项布局
const (
	menuItemWidth  = 360.0
	menuItemHeight = 50.0
	menuItemTop    = 230.0
	menuItemStep   = 70.0
)

// ItemAt returns the entry under (x, y), or -1.
func (m *MenuScene) ItemAt(x, y float64) int {
	left := float64(config.GameWindowWidth)/2 - menuItemWidth/2
	for i := range menuItems {
		if utils.PointInRect(x, y, left, menuItemTop+float64(i)*menuItemStep, menuItemWidth, menuItemHeight) {
			return i
		}
	}
	return -1
}

// Update handles menu navigation.
func (m *MenuScene) Update(deltaTime float64) {
	m.elapsed += deltaTime

	if pressed, x, y := utils.IsJustTouchedOrClicked(); pressed {
		if i := m.ItemAt(float64(x), float64(y)); i >= 0 {
			m.Activate(i)
			return
		}
	}
	// 鼠标移动到菜单项上时跟随高亮
	px, py := utils.GetPointerPosition()
	if px != m.pointerX || py != m.pointerY {
		m.pointerX, m.pointerY = px, py
		if i := m.ItemAt(float64(px), float64(py)); i >= 0 {
			m.selected = i
		}
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		m.Move(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		m.Move(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		m.Activate(m.selected)
	case inpututil.IsKeyJustPressed(ebiten.Key1):
		m.Activate(0)
	case inpututil.IsKeyJustPressed(ebiten.Key2):
		m.Activate(1)
	case inpututil.IsKeyJustPressed(ebiten.Key3):
		m.Activate(2)
	}
}

// Draw renders the title, entries and potion counts.
func (m *MenuScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	cx := float64(config.GameWindowWidth) / 2
	drawCenteredText(screen, "MATH TOWER DEFENSE", cx, 90, 4, colorText)
	drawCenteredText(screen, "Answer the questions before the monsters reach your tower", cx, 160, 1.5, colorDimText)

	// 选中项的呼吸高亮
	pulse := utils.EaseInOutSine((1 + sinTurns(m.elapsed/1.6)) / 2)
	for i, item := range menuItems {
		y := menuItemTop + float64(i)*menuItemStep
		panel := colorPanel
		if i == m.selected {
			panel = utils.LerpColor(colorPanel, colorHighlight, 0.35+0.3*pulse)
		}
		vector.DrawFilledRect(screen, float32(cx-menuItemWidth/2), float32(y), menuItemWidth, menuItemHeight, panel, false)
		drawCenteredText(screen, fmt.Sprintf("%d. %s", i+1, item.label), cx, y+15, 2, colorText)
	}

	if m.potions != nil {
		counts := m.potions.GetCounts()
		drawCenteredText(screen,
			fmt.Sprintf("Potions  -  Heal: %d   Time Slow: %d", counts[game.PotionHeal], counts[game.PotionTimeSlow]),
			cx, 470, 1.5, colorDimText)
	}
}
