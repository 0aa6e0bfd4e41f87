// Package audio 描述界面和游戏中使用的音效采样
package audio

import "path"

// 采样名称常量
const (
	HitNormal  = "hitnormal"
	HitWhistle = "hitwhistle"
	HitFinish  = "hitfinish"
	HitClap    = "hitclap"
)

// SampleDir 采样查找的根目录
const SampleDir = "Gameplay"

// AllAdditions 所有附加音效名称
func AllAdditions() []string {
	return []string{HitWhistle, HitClap, HitFinish}
}

// SampleInfo 一个音效采样的描述
type SampleInfo struct {
	Name   string `yaml:"name"`   // 采样名称
	Bank   string `yaml:"bank"`   // 采样库，可为空
	Suffix string `yaml:"suffix"` // 可选后缀，优先查找带后缀的文件
	Volume int    `yaml:"volume"` // 音量 0 ~ 100
}

// NewSampleInfo 创建采样描述，音量默认 100
func NewSampleInfo(name, bank string) SampleInfo {
	return SampleInfo{Name: name, Bank: bank, Volume: 100}
}

// IsZero 是否为空描述（未配置音效）
func (s SampleInfo) IsZero() bool {
	return s.Name == ""
}

// LookupNames 按优先级从高到低返回可用作来源的文件名（不含扩展名）
//
// 设置了 Suffix 时先返回带后缀的名称，再回退到不带后缀的名称：
//
//	Gameplay/{bank}-{name}{suffix}
//	Gameplay/{bank}-{name}
func (s SampleInfo) LookupNames() []string {
	base := path.Join(SampleDir, s.Bank+"-"+s.Name)
	if s.Suffix != "" {
		return []string{base + s.Suffix, base}
	}
	return []string{base}
}

// VolumeScale 把 0 ~ 100 的音量转换为 0.0 ~ 1.0
func (s SampleInfo) VolumeScale() float64 {
	switch {
	case s.Volume <= 0:
		return 0
	case s.Volume >= 100:
		return 1
	default:
		return float64(s.Volume) / 100
	}
}

// SampleOption 覆盖 SampleInfo 的某个字段
type SampleOption func(*SampleInfo)

// WithName 覆盖名称
func WithName(name string) SampleOption {
	return func(s *SampleInfo) { s.Name = name }
}

// WithBank 覆盖采样库
func WithBank(bank string) SampleOption {
	return func(s *SampleInfo) { s.Bank = bank }
}

// WithSuffix 覆盖后缀
func WithSuffix(suffix string) SampleOption {
	return func(s *SampleInfo) { s.Suffix = suffix }
}

// WithVolume 覆盖音量
func WithVolume(volume int) SampleOption {
	return func(s *SampleInfo) { s.Volume = volume }
}

// With 返回应用覆盖后的副本，原值不变
func (s SampleInfo) With(opts ...SampleOption) SampleInfo {
	out := s
	for _, opt := range opts {
		opt(&out)
	}
	return out
}
