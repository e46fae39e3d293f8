package utils

import (
	"math"

	"github.com/decker502/mathtd/pkg/config"
)

// PathLength 返回折线总长度
func PathLength(path []config.PathPoint) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += math.Hypot(path[i].X-path[i-1].X, path[i].Y-path[i-1].Y)
	}
	return total
}

// PointAlongPath 按路线进度（0 = 起点，1 = 终点）返回折线上的坐标
// 进度按长度均匀分布，超出范围时取端点
//
// 参数：
//   - path: 路线拐点
//   - progress: 归一化进度
//
// 返回：
//   - x, y: 逻辑屏幕坐标
func PointAlongPath(path []config.PathPoint, progress float64) (float64, float64) {
	if len(path) == 0 {
		return 0, 0
	}
	if len(path) == 1 {
		return path[0].X, path[0].Y
	}

	remaining := Clamp01(progress) * PathLength(path)
	for i := 1; i < len(path); i++ {
		from, to := path[i-1], path[i]
		segment := math.Hypot(to.X-from.X, to.Y-from.Y)
		if segment == 0 {
			continue
		}
		if remaining <= segment {
			t := remaining / segment
			return Lerp(from.X, to.X, t), Lerp(from.Y, to.Y, t)
		}
		remaining -= segment
	}

	last := path[len(path)-1]
	return last.X, last.Y
}
