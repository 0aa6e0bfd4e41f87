// verify_avatar_panel 以无头方式回放头像面板的时间线场景
//
// 使用固定 tick 的模拟时钟驱动 panel.Panel，打印每个场景的事件时间线，
// 并检查隐藏时刻是否符合预期。任一场景失败时以状态码 1 退出。
//
// 用法：
//
//	go run ./cmd/verify_avatar_panel -root . -tps 60
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gonewx/avatarpanel/pkg/config"
	"github.com/gonewx/avatarpanel/pkg/embedded"
	"github.com/gonewx/avatarpanel/pkg/panel"
	"github.com/gonewx/avatarpanel/pkg/systems"
)

var (
	// 命令行参数
	verbose = flag.Bool("verbose", false, "显示详细调试信息")
	root    = flag.String("root", ".", "资源根目录（包含 data/）")
	tps     = flag.Int("tps", 60, "每秒 tick 数")
	variant = flag.String("panel", "recent_favourited", "使用的面板配置 id")
)

// step 在 at 时刻执行的动作
type step struct {
	at   time.Duration
	name string
	do   func(p *panel.Panel)
}

// scenario 一个回放场景
type scenario struct {
	name  string
	users int
	steps []step
	until time.Duration
	// hideAt 预期隐藏时刻，<0 表示到 until 仍然可见
	hideAt time.Duration
}

// timelineRenderer 记录 Renderer 调用
type timelineRenderer struct {
	clock  func() time.Duration
	events []string
}

func (r *timelineRenderer) Appear() {
	r.record("appear")
}

func (r *timelineRenderer) Disappear() {
	r.record("disappear")
}

func (r *timelineRenderer) RenderAvatars(layout panel.AvatarLayout) {
	label := ""
	if layout.HasOverflow() {
		label = " " + layout.OverflowLabel()
	}
	r.record(fmt.Sprintf("render %d slots%s", layout.Len(), label))
}

func (r *timelineRenderer) record(event string) {
	r.events = append(r.events, fmt.Sprintf("%8s  %s", r.clock().Round(time.Millisecond), event))
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

func show(p *panel.Panel) { p.Show() }
func move(p *panel.Panel) { p.OnPointerMove() }
func enter(p *panel.Panel) { p.OnDirectHoverEnter() }
func exit(p *panel.Panel) { p.OnDirectHoverExit() }

func scenarios(v *config.AvatarPanelVariant) []scenario {
	idle := v.IdleDelay()
	list := []scenario{
		{
			name:   "auto hide after idle delay",
			users:  73,
			steps:  []step{{0, "show", show}},
			until:  ms(3000),
			hideAt: idle,
		},
		{
			name:   "pointer move resets the deadline",
			users:  10,
			steps:  []step{{0, "show", show}, {ms(900), "move", move}},
			until:  ms(3000),
			hideAt: ms(900) + idle,
		},
		{
			name:  "direct hover keeps the panel open",
			users: 10,
			steps: []step{
				{0, "show", show},
				{ms(500), "hover enter", enter},
				{ms(3000), "hover exit", exit},
			},
			until:  ms(5000),
			hideAt: ms(3000) + idle,
		},
		{
			name:  "show while visible re-arms",
			users: 3,
			steps: []step{
				{0, "show", show},
				{ms(600), "show again", show},
			},
			until:  ms(3000),
			hideAt: ms(600) + idle,
		},
		{
			name:   "still hovered at the end",
			users:  1,
			steps:  []step{{0, "show", show}, {ms(100), "hover enter", enter}},
			until:  ms(3000),
			hideAt: -1,
		},
	}

	if v.LinkedHover {
		list = append(list, scenario{
			name:  "linked target hover keeps the panel open",
			users: 10,
			steps: []step{
				{0, "show", show},
				{ms(200), "linked hover on", func(p *panel.Panel) { p.SetLinkedTargetHover(true) }},
				{ms(2500), "linked hover off", func(p *panel.Panel) { p.SetLinkedTargetHover(false) }},
			},
			until:  ms(4500),
			hideAt: ms(2500) + idle,
		})
	}
	return list
}

// run 回放一个场景，返回是否符合预期
func run(sc scenario, v *config.AvatarPanelVariant, dt time.Duration, out io.Writer) bool {
	var p *panel.Panel
	r := &timelineRenderer{clock: func() time.Duration { return p.Scheduler().Now() }}
	p = panel.New(r, v.PanelOptions())

	hiddenAt := time.Duration(-1)
	p.SetStateListener(func(state panel.VisibilityState) {
		if state == panel.Hidden {
			hiddenAt = p.Scheduler().Now()
		}
	})

	users := make([]panel.UserEntry, sc.users)
	for i := range users {
		users[i] = panel.UserEntry{ID: int64(i + 1), Username: fmt.Sprintf("user%d", i+1)}
	}
	p.SetUsers(users)

	next := 0
	for p.Scheduler().Now() <= sc.until {
		for next < len(sc.steps) && sc.steps[next].at <= p.Scheduler().Now() {
			r.record(sc.steps[next].name)
			sc.steps[next].do(p)
			next++
		}
		p.Update(dt)
	}

	// 动作在到点后的第一个 tick 执行，隐藏在截止时间后的第一个 tick 发生，
	// 因此允许最多两个 tick 的误差
	ok := p.IsVisible()
	if sc.hideAt >= 0 {
		ok = hiddenAt >= sc.hideAt && hiddenAt < sc.hideAt+2*dt
	}

	status := "PASS"
	if !ok {
		status = "FAIL"
	}
	fmt.Fprintf(out, "[%s] %s\n", status, sc.name)
	for _, e := range r.events {
		fmt.Fprintf(out, "    %s\n", e)
	}
	if sc.hideAt >= 0 {
		fmt.Fprintf(out, "    expected hide at %v, hidden at %v\n", sc.hideAt, hiddenAt.Round(time.Millisecond))
	}
	return ok
}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}
	if *tps <= 0 {
		fmt.Fprintln(os.Stderr, "tps must be positive")
		os.Exit(2)
	}

	embedded.InitFromDir(*root)
	cfg, err := config.LoadAvatarPanelConfig(config.AvatarPanelConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(2)
	}
	v, ok := cfg.Get(*variant)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown panel %q\n", *variant)
		os.Exit(2)
	}

	dt := systems.DurationFromSeconds(1 / float64(*tps))
	fmt.Printf("panel=%s idle=%v tick=%v capacity=%d\n\n", v.ID, v.IdleDelay(), dt, v.Capacity)

	failed := 0
	for _, sc := range scenarios(v) {
		if !run(sc, v, dt, os.Stdout) {
			failed++
		}
		fmt.Println()
	}

	if failed > 0 {
		fmt.Printf("%d scenario(s) failed\n", failed)
		os.Exit(1)
	}
	fmt.Println("all scenarios passed")
}
