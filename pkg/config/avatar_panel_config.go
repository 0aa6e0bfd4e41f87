package config

import (
	"fmt"
	"time"

	"github.com/gonewx/avatarpanel/pkg/audio"
	"github.com/gonewx/avatarpanel/pkg/embedded"
	"github.com/gonewx/avatarpanel/pkg/panel"
	"gopkg.in/yaml.v3"
)

// AvatarPanelConfigPath 面板配置文件位置
const AvatarPanelConfigPath = "data/config/avatar_panels.yaml"

// 宽度策略名称
const (
	WidthPolicyNone     = ""         // 不限制，由排列方式决定
	WidthPolicyFixed    = "fixed"    // 固定宽度
	WidthPolicyAdaptive = "adaptive" // 阈值内线性，超过后固定
)

// 排列方式名称
const (
	FlowWrap       = "wrap"
	FlowHorizontal = "horizontal"
)

// AvatarPanelConfig 头像面板配置文件的顶层结构
type AvatarPanelConfig struct {
	Panels []AvatarPanelVariant `yaml:"panels"`
}

// AvatarPanelVariant 一种面板变体的配置
//
// 两种变体（最近收藏列表 / 方形用户列表）共用同一个面板实现，
// 差异全部由这里的参数表达。
type AvatarPanelVariant struct {
	ID string `yaml:"id"`

	// 可见性
	IdleDelayMs int  `yaml:"idleDelayMs"` // 空闲自动隐藏延迟，0 使用默认 1000ms
	FadeMs      int  `yaml:"fadeMs"`      // 淡入淡出时长，0 使用默认 100ms
	LinkedHover bool `yaml:"linkedHover"` // 是否接受触发元素的悬停上报

	// 头像列表
	Capacity int             `yaml:"capacity"` // 最大头像数，0 表示不限
	Width    WidthPolicyConf `yaml:"width"`

	// 样式
	Flow           string  `yaml:"flow"`           // wrap | horizontal
	AvatarSize     float64 `yaml:"avatarSize"`     // 头像边长
	Spacing        float64 `yaml:"spacing"`        // 头像间距
	Padding        float64 `yaml:"padding"`        // 内边距
	ContentWidth   float64 `yaml:"contentWidth"`   // wrap 时的内容宽度
	OverflowHeight float64 `yaml:"overflowHeight"` // 溢出行高度
	OverflowWidth  float64 `yaml:"overflowWidth"`  // horizontal 时溢出标记宽度

	// AppearSample 面板出现时播放的音效，可选
	AppearSample audio.SampleInfo `yaml:"appearSample"`
}

// WidthPolicyConf 宽度策略配置
type WidthPolicyConf struct {
	Policy    string  `yaml:"policy"`    // "" | fixed | adaptive
	Threshold int     `yaml:"threshold"` // adaptive: 线性增长的最大数量
	MaxWidth  float64 `yaml:"maxWidth"`  // adaptive: 超过阈值后的宽度；fixed: 固定宽度
}

// LoadAvatarPanelConfig 从嵌入资源加载面板配置
//
// 参数:
//   - path: 配置文件路径（如 "data/config/avatar_panels.yaml"）
//
// 返回:
//   - *AvatarPanelConfig: 加载成功后的配置
//   - error: 读取、解析或验证失败时返回错误
func LoadAvatarPanelConfig(path string) (*AvatarPanelConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read avatar panel config: %w", err)
	}
	return ParseAvatarPanelConfig(data)
}

// ParseAvatarPanelConfig 解析 YAML 数据并验证
func ParseAvatarPanelConfig(data []byte) (*AvatarPanelConfig, error) {
	var config AvatarPanelConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse avatar panel config: %w", err)
	}

	for i := range config.Panels {
		config.Panels[i].applyDefaults()
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid avatar panel config: %w", err)
	}
	return &config, nil
}

// Validate 验证配置有效性
//
// 检查：
//   - 至少一个面板，id 非空且唯一
//   - 数值字段非负
//   - 排列方式和宽度策略名称合法
func (c *AvatarPanelConfig) Validate() error {
	if len(c.Panels) == 0 {
		return fmt.Errorf("no panels defined")
	}

	seen := make(map[string]bool, len(c.Panels))
	for i, p := range c.Panels {
		if p.ID == "" {
			return fmt.Errorf("panel #%d missing 'id'", i)
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate panel id %q", p.ID)
		}
		seen[p.ID] = true

		if err := p.Validate(); err != nil {
			return fmt.Errorf("panel %q: %w", p.ID, err)
		}
	}
	return nil
}

// Get 按 id 查找面板配置
func (c *AvatarPanelConfig) Get(id string) (*AvatarPanelVariant, bool) {
	for i := range c.Panels {
		if c.Panels[i].ID == id {
			return &c.Panels[i], true
		}
	}
	return nil, false
}

// Validate 验证单个面板配置
func (v *AvatarPanelVariant) Validate() error {
	if v.IdleDelayMs < 0 || v.FadeMs < 0 {
		return fmt.Errorf("durations must not be negative (idleDelayMs=%d, fadeMs=%d)", v.IdleDelayMs, v.FadeMs)
	}
	if v.Capacity < 0 {
		return fmt.Errorf("capacity must not be negative: %d", v.Capacity)
	}
	if v.AvatarSize <= 0 {
		return fmt.Errorf("avatarSize must be positive: %.1f", v.AvatarSize)
	}
	if v.Spacing < 0 || v.Padding < 0 || v.ContentWidth < 0 {
		return fmt.Errorf("spacing, padding and contentWidth must not be negative")
	}

	switch v.Flow {
	case FlowWrap:
		if v.ContentWidth < v.AvatarSize {
			return fmt.Errorf("contentWidth(%.1f) smaller than avatarSize(%.1f)", v.ContentWidth, v.AvatarSize)
		}
	case FlowHorizontal:
	default:
		return fmt.Errorf("unknown flow %q", v.Flow)
	}

	switch v.Width.Policy {
	case WidthPolicyNone:
	case WidthPolicyFixed:
		if v.Width.MaxWidth <= 0 {
			return fmt.Errorf("fixed width requires positive maxWidth")
		}
	case WidthPolicyAdaptive:
		if v.Width.Threshold <= 0 || v.Width.MaxWidth <= 0 {
			return fmt.Errorf("adaptive width requires positive threshold and maxWidth")
		}
	default:
		return fmt.Errorf("unknown width policy %q", v.Width.Policy)
	}
	return nil
}

// IdleDelay 空闲延迟
func (v *AvatarPanelVariant) IdleDelay() time.Duration {
	return time.Duration(v.IdleDelayMs) * time.Millisecond
}

// FadeDuration 淡入淡出时长
func (v *AvatarPanelVariant) FadeDuration() time.Duration {
	return time.Duration(v.FadeMs) * time.Millisecond
}

// WidthPolicy 构造宽度策略，未配置时返回 nil
func (v *AvatarPanelVariant) WidthPolicy() panel.WidthPolicy {
	switch v.Width.Policy {
	case WidthPolicyFixed:
		return panel.FixedWidth(v.Width.MaxWidth)
	case WidthPolicyAdaptive:
		return panel.AdaptiveWidth{
			ItemSize:  v.AvatarSize,
			Spacing:   v.Spacing,
			Padding:   v.Padding,
			Threshold: v.Width.Threshold,
			MaxWidth:  v.Width.MaxWidth,
		}
	default:
		return nil
	}
}

// PanelOptions 转换为 panel.Options
func (v *AvatarPanelVariant) PanelOptions() panel.Options {
	return panel.Options{
		Name:        v.ID,
		IdleDelay:   v.IdleDelay(),
		Capacity:    v.Capacity,
		Width:       v.WidthPolicy(),
		LinkedHover: v.LinkedHover,
	}
}

func (v *AvatarPanelVariant) applyDefaults() {
	if v.IdleDelayMs == 0 {
		v.IdleDelayMs = int(panel.DefaultIdleDelay / time.Millisecond)
	}
	if v.FadeMs == 0 {
		v.FadeMs = int(panel.DefaultFadeDuration / time.Millisecond)
	}
	if v.Flow == "" {
		v.Flow = FlowWrap
	}
	if v.AppearSample.Name != "" && v.AppearSample.Volume == 0 {
		v.AppearSample.Volume = 100
	}
}
