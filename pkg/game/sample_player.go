package game

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"path"
	"strings"

	auformat "github.com/gonewx/avatarpanel/internal/audio"
	"github.com/gonewx/avatarpanel/pkg/audio"
	"github.com/gonewx/avatarpanel/pkg/embedded"
	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// SoundRoot 采样文件的根目录
const SoundRoot = "assets/sounds"

// sampleExtensions 按优先级查找的扩展名
var sampleExtensions = []string{".ogg", ".mp3", ".wav", ".au"}

// SamplePlayer 界面音效播放器
//
// 职责：
//   - 按 SampleInfo.LookupNames() 的优先级在嵌入资源中查找采样文件
//   - 解码并缓存为上下文采样率的 PCM 数据
//   - 按 SampleInfo 的音量播放
//
// 找不到采样时只记录一次日志，不影响调用方。
type SamplePlayer struct {
	audioContext *ebaudio.Context
	cache        map[string][]byte // 资源路径 -> 解码后的 PCM
	missing      map[string]bool   // 已记录过缺失的查找名
	enabled      bool
	masterVolume float64 // 主音量，与采样音量相乘
}

// NewSamplePlayer 创建音效播放器
//
// 参数：
//   - audioContext: 音频上下文，为 nil 时 Play 不发声（无头模式）
func NewSamplePlayer(audioContext *ebaudio.Context) *SamplePlayer {
	return &SamplePlayer{
		audioContext: audioContext,
		cache:        make(map[string][]byte),
		missing:      make(map[string]bool),
		enabled:      true,
		masterVolume: 1,
	}
}

// SetEnabled 开启或关闭音效
func (p *SamplePlayer) SetEnabled(enabled bool) {
	p.enabled = enabled
}

// SetMasterVolume 设置主音量 (0.0 ~ 1.0)
func (p *SamplePlayer) SetMasterVolume(volume float64) {
	p.masterVolume = clampVolume(volume)
}

// Volume 返回采样实际播放的音量
func (p *SamplePlayer) Volume(info audio.SampleInfo) float64 {
	return info.VolumeScale() * p.masterVolume
}

// Resolve 返回采样对应的第一个存在的资源路径
func (p *SamplePlayer) Resolve(info audio.SampleInfo) (string, bool) {
	if info.IsZero() {
		return "", false
	}
	for _, name := range info.LookupNames() {
		for _, ext := range sampleExtensions {
			candidate := path.Join(SoundRoot, name+ext)
			if embedded.Exists(candidate) {
				return candidate, true
			}
		}
	}
	return "", false
}

// Load 查找并解码采样，结果按资源路径缓存
func (p *SamplePlayer) Load(info audio.SampleInfo) ([]byte, error) {
	if p.audioContext == nil {
		return nil, fmt.Errorf("no audio context")
	}
	samplePath, ok := p.Resolve(info)
	if !ok {
		return nil, fmt.Errorf("sample not found: %v", info.LookupNames())
	}
	if pcm, ok := p.cache[samplePath]; ok {
		return pcm, nil
	}

	data, err := embedded.ReadFile(samplePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read sample %s: %w", samplePath, err)
	}
	pcm, err := decodeSample(samplePath, data, p.audioContext.SampleRate())
	if err != nil {
		return nil, err
	}
	p.cache[samplePath] = pcm
	return pcm, nil
}

// Play 播放采样
//
// 返回：
//   - bool: 是否成功播放
func (p *SamplePlayer) Play(info audio.SampleInfo) bool {
	if !p.enabled || info.IsZero() || p.audioContext == nil {
		return false
	}

	pcm, err := p.Load(info)
	if err != nil {
		key := strings.Join(info.LookupNames(), "|")
		if !p.missing[key] {
			p.missing[key] = true
			log.Printf("[SamplePlayer] Warning: %v", err)
		}
		return false
	}

	player := p.audioContext.NewPlayerFromBytes(pcm)
	player.SetVolume(p.Volume(info))
	player.Play()
	return true
}

// decodeSample 按扩展名解码为 16-bit 立体声 PCM，并转换到 sampleRate
func decodeSample(samplePath string, data []byte, sampleRate int) ([]byte, error) {
	reader := bytes.NewReader(data)

	var stream io.Reader
	switch ext := strings.ToLower(path.Ext(samplePath)); ext {
	case ".ogg":
		s, err := vorbis.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG sample %s: %w", samplePath, err)
		}
		stream = s
	case ".mp3":
		s, err := mp3.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 sample %s: %w", samplePath, err)
		}
		stream = s
	case ".wav":
		s, err := wav.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode WAV sample %s: %w", samplePath, err)
		}
		stream = s
	case ".au":
		s, err := auformat.DecodeAU(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode AU sample %s: %w", samplePath, err)
		}
		stream = s
		if rate := int(s.SampleRate()); rate != sampleRate {
			stream = ebaudio.Resample(s, s.Length(), rate, sampleRate)
		}
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: %s)", ext, strings.Join(sampleExtensions, ", "))
	}

	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read decoded sample %s: %w", samplePath, err)
	}
	return pcm, nil
}
