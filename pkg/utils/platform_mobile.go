//go:build mobile

package utils

// IsMobile 移动端编译时始终返回 true
// 游戏画面据此常驻显示屏幕数字键盘
func IsMobile() bool {
	return true
}
