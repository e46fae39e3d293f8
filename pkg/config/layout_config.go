package config

// 布局配置常量
// 本文件定义了游戏窗口尺寸和怪物行进路线，所有坐标均为逻辑屏幕坐标

const (
	// GameWindowWidth 逻辑屏幕宽度
	GameWindowWidth = 960

	// GameWindowHeight 逻辑屏幕高度
	GameWindowHeight = 540

	// MonsterRadius 怪物绘制半径
	MonsterRadius = 14.0

	// TowerX, TowerY 塔的位置（路线终点）
	TowerX = 880.0
	TowerY = 300.0

	// QuestionBoxX, QuestionBoxY 答题框左上角
	QuestionBoxX = 40.0
	QuestionBoxY = 440.0

	// QuestionBoxWidth, QuestionBoxHeight 答题框尺寸
	QuestionBoxWidth  = 880.0
	QuestionBoxHeight = 70.0
)

// PathPoint 路线上的一个拐点
type PathPoint struct {
	X, Y float64
}

// MonsterPath 怪物行进路线（折线），最后一个点为塔的位置
var MonsterPath = []PathPoint{
	{X: 0, Y: 120},
	{X: 260, Y: 120},
	{X: 260, Y: 330},
	{X: 560, Y: 330},
	{X: 560, Y: 160},
	{X: 760, Y: 160},
	{X: 760, Y: 300},
	{X: TowerX, Y: TowerY},
}

// 屏幕数字键盘（触摸设备），位于答题框上方，与答题框等宽
const (
	KeypadX       = QuestionBoxX
	KeypadY       = 386.0
	KeypadWidth   = QuestionBoxWidth
	KeypadHeight  = 42.0
	KeypadSpacing = 6.0
)
