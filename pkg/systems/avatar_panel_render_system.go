package systems

import (
	"image"
	"image/color"

	"github.com/gonewx/avatarpanel/pkg/components"
	"github.com/gonewx/avatarpanel/pkg/ecs"
	"github.com/gonewx/avatarpanel/pkg/panel"
	"github.com/gonewx/avatarpanel/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// 头像占位图配色（头像加载由外部负责，这里只画首字母色块）
var avatarPalette = []color.RGBA{
	{R: 233, G: 99, B: 121, A: 255},
	{R: 102, G: 204, B: 255, A: 255},
	{R: 179, G: 217, B: 68, A: 255},
	{R: 255, G: 204, B: 34, A: 255},
	{R: 170, G: 136, B: 255, A: 255},
	{R: 255, G: 136, B: 68, A: 255},
}

var (
	triggerColor      = color.RGBA{R: 46, G: 52, B: 64, A: 255}
	triggerHoverColor = color.RGBA{R: 76, G: 86, B: 106, A: 255}
	textColor         = color.RGBA{R: 236, G: 239, B: 244, A: 255}
	slotHoverColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// AvatarPanelRenderSystem 头像面板渲染系统
//
// 绘制顺序：触发元素 → 面板（背景、头像、溢出标记）
type AvatarPanelRenderSystem struct {
	entityManager *ecs.EntityManager
	face          text.Face
}

// NewAvatarPanelRenderSystem 创建渲染系统
func NewAvatarPanelRenderSystem(em *ecs.EntityManager) *AvatarPanelRenderSystem {
	return &AvatarPanelRenderSystem{
		entityManager: em,
		face:          text.NewGoXFace(basicfont.Face7x13),
	}
}

// Draw 绘制所有触发元素和可见（或正在淡出）的面板
func (s *AvatarPanelRenderSystem) Draw(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith2[*components.HoverTargetComponent, *components.PositionComponent](s.entityManager) {
		trigger, _ := ecs.GetComponent[*components.HoverTargetComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		s.drawTrigger(screen, trigger, pos)
	}

	for _, id := range ecs.GetEntitiesWith2[*components.AvatarPanelComponent, *components.PositionComponent](s.entityManager) {
		comp, _ := ecs.GetComponent[*components.AvatarPanelComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if !comp.IsDrawn() {
			continue
		}
		s.drawPanel(screen, comp, pos)
	}
}

func (s *AvatarPanelRenderSystem) drawTrigger(screen *ebiten.Image, trigger *components.HoverTargetComponent, pos *components.PositionComponent) {
	bg := lerpColor(triggerColor, triggerHoverColor, trigger.Intensity)
	s.fillRect(screen, pos.X, pos.Y, trigger.Width, trigger.Height, bg, 1)

	op := &text.DrawOptions{}
	op.GeoM.Translate(pos.X+trigger.Width/2, pos.Y+trigger.Height/2)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, trigger.Label, s.face, op)
}

func (s *AvatarPanelRenderSystem) drawPanel(screen *ebiten.Image, comp *components.AvatarPanelComponent, pos *components.PositionComponent) {
	alpha := utils.EaseOutQuad(comp.Fade.Alpha)

	// 面板内容裁剪到面板范围内
	clip := image.Rect(int(pos.X), int(pos.Y), int(pos.X+comp.Width), int(pos.Y+comp.Height))
	dst, ok := screen.SubImage(clip).(*ebiten.Image)
	if !ok {
		return
	}

	s.fillRect(dst, pos.X, pos.Y, comp.Width, comp.Height, comp.Style.Background, comp.Style.BackgroundAlpha*alpha)

	for i, slot := range comp.Layout.Slots {
		r := comp.SlotRect(i)
		x, y := pos.X+r.X, pos.Y+r.Y
		s.drawAvatar(dst, slot, x, y, r.W, alpha)
		if i == comp.HoveredSlot {
			vector.StrokeRect(dst, float32(x), float32(y), float32(r.W), float32(r.H), 2, withAlpha(slotHoverColor, alpha), true)
		}
	}

	if r, ok := comp.OverflowRect(); ok {
		op := &text.DrawOptions{}
		op.GeoM.Translate(pos.X+r.X+r.W, pos.Y+r.Y+r.H/2)
		op.PrimaryAlign = text.AlignEnd
		op.SecondaryAlign = text.AlignCenter
		op.ColorScale.ScaleWithColor(textColor)
		op.ColorScale.ScaleAlpha(float32(alpha))
		text.Draw(dst, comp.Layout.OverflowLabel(), s.face, op)
	}
}

// drawAvatar 绘制头像占位图：色块 + 首字母
func (s *AvatarPanelRenderSystem) drawAvatar(dst *ebiten.Image, slot panel.AvatarSlot, x, y, size, alpha float64) {
	s.fillRect(dst, x, y, size, size, AvatarColor(slot.User.ID), alpha)

	op := &text.DrawOptions{}
	op.GeoM.Translate(x+size/2, y+size/2)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(textColor)
	op.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(dst, utils.Initials(slot.User.Username), s.face, op)
}

func (s *AvatarPanelRenderSystem) fillRect(dst *ebiten.Image, x, y, w, h float64, clr color.Color, alpha float64) {
	if clr == nil || w <= 0 || h <= 0 || alpha <= 0 {
		return
	}
	vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), withAlpha(clr, alpha), false)
}

// withAlpha 按 alpha 缩放颜色（预乘）
func withAlpha(clr color.Color, alpha float64) color.RGBA {
	alpha = utils.Clamp01(alpha)
	r, g, b, a := clr.RGBA()
	scale := func(v uint32) uint8 {
		return uint8(float64(v>>8) * alpha)
	}
	return color.RGBA{R: scale(r), G: scale(g), B: scale(b), A: scale(a)}
}

// AvatarColor 根据用户 ID 选择占位图颜色（同一用户颜色固定）
func AvatarColor(id int64) color.RGBA {
	idx := id % int64(len(avatarPalette))
	if idx < 0 {
		idx = -idx
	}
	return avatarPalette[idx]
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	t = utils.Clamp01(t)
	mix := func(x, y uint8) uint8 {
		return uint8(utils.Lerp(float64(x), float64(y), t))
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
