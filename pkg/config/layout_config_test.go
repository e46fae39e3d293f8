package config

import "testing"

// TestMonsterPath 路线终点必须是塔的位置，且路线在屏幕内
func TestMonsterPath(t *testing.T) {
	if len(MonsterPath) < 2 {
		t.Fatalf("path needs at least 2 points, got %d", len(MonsterPath))
	}

	last := MonsterPath[len(MonsterPath)-1]
	if last.X != TowerX || last.Y != TowerY {
		t.Errorf("path end: got (%v, %v), want tower (%v, %v)", last.X, last.Y, TowerX, TowerY)
	}

	for i, p := range MonsterPath {
		if p.X < 0 || p.X > GameWindowWidth || p.Y < 0 || p.Y > GameWindowHeight {
			t.Errorf("point %d (%v, %v) is off screen", i, p.X, p.Y)
		}
	}
}

// TestKeypadLayout 数字键盘位于路线下方、答题框上方
func TestKeypadLayout(t *testing.T) {
	if KeypadY+KeypadHeight > QuestionBoxY {
		t.Errorf("keypad bottom %v overlaps question box at %v", KeypadY+KeypadHeight, QuestionBoxY)
	}

	lowest := 0.0
	for _, p := range MonsterPath {
		if p.Y > lowest {
			lowest = p.Y
		}
	}
	if lowest+MonsterRadius > KeypadY {
		t.Errorf("monsters at y=%v would be hidden by the keypad at %v", lowest, KeypadY)
	}
}
