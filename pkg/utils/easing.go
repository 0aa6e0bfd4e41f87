package utils

import "math"

// 缓动函数
// 接受进度 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
// 参考：https://easings.net/

// EaseOutQuad 二次方缓出
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	t = Clamp01(t)
	return 1 - (1-t)*(1-t)
}

// EaseOutQuint 五次方缓出（面板尺寸变化使用）
// 公式：f(t) = 1 - (1-t)⁵
func EaseOutQuint(t float64) float64 {
	t = Clamp01(t)
	return 1 - math.Pow(1-t, 5)
}

// Clamp01 把 v 限制在 [0, 1]
func Clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Approach 以 step 为最大步长把 current 移向 target，不会越过 target
func Approach(current, target, step float64) float64 {
	if current < target {
		return math.Min(current+step, target)
	}
	return math.Max(current-step, target)
}
