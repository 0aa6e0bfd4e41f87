package components

import "time"

// FadeComponent 透明度渐变组件
// 用于面板的淡入/淡出，由 FadeSystem 按 deltaTime 推进
type FadeComponent struct {
	Alpha    float64       // 当前透明度 0.0 ~ 1.0
	From     float64       // 渐变起始透明度
	To       float64       // 渐变目标透明度
	Elapsed  time.Duration // 已经过的时间
	Duration time.Duration // 渐变总时长，<= 0 表示立即完成
}

// FadeTo 从当前透明度开始渐变到 target
func (f *FadeComponent) FadeTo(target float64) {
	f.From = f.Alpha
	f.To = target
	f.Elapsed = 0
	if f.Duration <= 0 {
		f.Alpha = target
	}
}

// Reset 清除进行中的渐变并把透明度设为 alpha
func (f *FadeComponent) Reset(alpha float64) {
	f.Alpha = alpha
	f.From = alpha
	f.To = alpha
	f.Elapsed = 0
}

// IsFading 是否正在渐变
func (f *FadeComponent) IsFading() bool {
	return f.Alpha != f.To
}

// Advance 推进渐变
func (f *FadeComponent) Advance(dt time.Duration) {
	if !f.IsFading() {
		return
	}
	f.Elapsed += dt
	if f.Duration <= 0 || f.Elapsed >= f.Duration {
		f.Alpha = f.To
		return
	}
	progress := float64(f.Elapsed) / float64(f.Duration)
	f.Alpha = f.From + (f.To-f.From)*progress
}
