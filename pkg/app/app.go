// Package app 提供应用的核心包装器
//
// 该包把初始化逻辑从 main 包提取出来：加载面板配置、打开存档、
// 创建音效播放器和场景，最后以 ebiten.Game 的形式交给 ebiten.RunGame。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/gonewx/avatarpanel/pkg/config"
	"github.com/gonewx/avatarpanel/pkg/game"
	"github.com/gonewx/avatarpanel/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// AppName gdata 存档目录名
const AppName = "avatarpanel"

// audioSampleRate 音频上下文采样率
const audioSampleRate = 48000

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// OnlineUsers 在线用户列表的示例人数
	OnlineUsers int
	// Mute 关闭音效（不创建音频上下文）
	Mute bool
}

// App 应用包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	settingsManager          *game.SettingsManager
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	panelConfig, err := config.LoadAvatarPanelConfig(config.AvatarPanelConfigPath)
	if err != nil {
		return nil, fmt.Errorf("面板配置加载失败: %w", err)
	}
	log.Printf("[Config] Loaded %d avatar panel variants", len(panelConfig.Panels))

	// 存档不可用时降级为仅内存
	gdataManager, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable: %v (favourites will not persist)", err)
		gdataManager = nil
	}

	settingsManager := game.NewSettingsManager(gdataManager)
	store := game.NewRecentUsersStore(gdataManager, game.DefaultRecentUsersLimit)

	var audioContext *audio.Context
	if !cfg.Mute {
		audioContext = audio.NewContext(audioSampleRate)
	}
	samplePlayer := game.NewSamplePlayer(audioContext)
	settingsManager.ApplyTo(samplePlayer)
	log.Printf("[App] SamplePlayer initialized (muted=%v)", cfg.Mute)

	onlineUsers := cfg.OnlineUsers
	if onlineUsers <= 0 {
		onlineUsers = 73
	}

	sceneManager := game.NewSceneManager()
	var sceneErr error
	sceneManager.SetSceneFactory(func(name string) game.Scene {
		switch name {
		case scenes.SceneAvatarPanels:
			scene, err := scenes.NewAvatarPanelScene(panelConfig, store, samplePlayer, onlineUsers)
			if err != nil {
				sceneErr = err
				return nil
			}
			return scene
		default:
			return nil
		}
	})
	if !sceneManager.Load(scenes.SceneAvatarPanels) {
		return nil, fmt.Errorf("场景创建失败: %w", sceneErr)
	}

	if settingsManager.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return &App{
		sceneManager:    sceneManager,
		settingsManager: settingsManager,
		verbose:         cfg.Verbose,
	}, nil
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		fullscreen := !ebiten.IsFullscreen()
		ebiten.SetFullscreen(fullscreen)
		if !fullscreen {
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		}
		a.settingsManager.SetFullscreen(fullscreen)
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// Shutdown 保存场景状态和设置
// 在 RunGame 返回后调用
func (a *App) Shutdown() {
	if !a.sceneManager.SaveOnExit() {
		log.Printf("[App] Warning: scene state not saved")
	}
	if err := a.settingsManager.Save(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
