package scenes

import (
	"github.com/gonewx/avatarpanel/pkg/game"
)

// Scene 是 game.Scene 的别名，场景实现只需满足 game.Scene 接口
type Scene = game.Scene

// 场景名称（用于 SceneManager.Load）
const (
	SceneAvatarPanels = "avatar_panels"
)
