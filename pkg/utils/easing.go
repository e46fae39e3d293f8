package utils

import (
	"image/color"
	"math"
)

// Easing Functions (缓动函数)
//
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
// 答题框闪烁后的褪色、菜单高亮等使用这些曲线。

// EaseLinear 线性缓动（无缓动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutQuad 二次方缓出
// 特点：开始较快，结束慢
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseInOutSine 正弦缓入缓出（用于提示文字的呼吸效果）
// 公式：f(t) = -(cos(πt) - 1) / 2
func EaseInOutSine(t float64) float64 {
	return -(math.Cos(math.Pi*t) - 1) / 2
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 把 t 限制在 [0, 1]
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// LerpColor 在两个颜色之间插值，t 超出 [0, 1] 时取端点
func LerpColor(from, to color.Color, t float64) color.RGBA {
	t = Clamp01(t)
	fr, fg, fb, fa := from.RGBA()
	tr, tg, tb, ta := to.RGBA()
	mix := func(a, b uint32) uint8 {
		return uint8(math.Round(Lerp(float64(a>>8), float64(b>>8), t)))
	}
	return color.RGBA{R: mix(fr, tr), G: mix(fg, tg), B: mix(fb, tb), A: mix(fa, ta)}
}
