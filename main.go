package main

import (
	"flag"
	"log"

	"github.com/gonewx/avatarpanel/pkg/app"
	"github.com/gonewx/avatarpanel/pkg/config"
	"github.com/gonewx/avatarpanel/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	// 命令行参数
	verbose     = flag.Bool("verbose", false, "显示详细调试信息")
	onlineUsers = flag.Int("online", 73, "在线用户列表的示例人数")
	mute        = flag.Bool("mute", false, "关闭音效")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（assetsFS 和 dataFS 在 embed.go 中声明）
	embedded.Init(assetsFS, dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:     *verbose,
		OnlineUsers: *onlineUsers,
		Mute:        *mute,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Avatar Panels")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	// 窗口关闭后保存最近收藏和设置
	if err := ebiten.RunGame(gameApp); err != nil {
		gameApp.Shutdown()
		log.Fatal(err)
	}
	gameApp.Shutdown()
}
