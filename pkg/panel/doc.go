// Package panel 实现悬停头像面板的核心逻辑
//
// 面板是一个临时浮层：显示有限数量的用户头像，悬停时出现，空闲一段时间后自动隐藏。
// 本包只负责状态，不依赖 Ebitengine，渲染通过 Renderer 接口交给调用者。
//
// 组成（从底层到上层）：
//   - Scheduler: 单槽可取消的延迟任务（由宿主 tick 推进时间）
//   - Tracker: 汇总直接悬停、指针移动、关联目标悬停三种信号
//   - Panel: Hidden/Visible 状态机，组合以上两者
//   - AvatarList: 把用户序列映射为有上限的头像槽位 + 溢出标记
//
// 所有方法都应在同一个 goroutine（游戏 Update 循环）中调用，包内不加锁。
package panel
