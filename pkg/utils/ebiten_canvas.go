package utils

import (
	"image/color"

	"github.com/decker502/invaders/pkg/components"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EbitenCanvas 将世界坐标绘制命令转换为 ebiten 屏幕绘制
// 屏幕尺寸与游戏区域一致，只做 Y 轴翻转
type EbitenCanvas struct {
	Screen      *ebiten.Image
	FieldHeight float64
}

// NewEbitenCanvas 创建绘制到 screen 的画布
func NewEbitenCanvas(screen *ebiten.Image, fieldHeight float64) *EbitenCanvas {
	return &EbitenCanvas{Screen: screen, FieldHeight: fieldHeight}
}

// FillRect 绘制实心矩形
func (c *EbitenCanvas) FillRect(r components.Rect, clr color.Color) {
	x, y, w, h := RectToScreen(r, c.FieldHeight)
	vector.DrawFilledRect(c.Screen, float32(x), float32(y), float32(w), float32(h), clr, false)
}

// StrokeLine 绘制线段
func (c *EbitenCanvas) StrokeLine(x0, y0, x1, y1, width float64, clr color.Color) {
	vector.StrokeLine(c.Screen,
		float32(x0), float32(WorldToScreenY(y0, c.FieldHeight)),
		float32(x1), float32(WorldToScreenY(y1, c.FieldHeight)),
		float32(width), clr, true)
}

// DrawPattern 将像素图案缩放到矩形内绘制
func (c *EbitenCanvas) DrawPattern(r components.Rect, pattern []string, clr color.Color) {
	if len(pattern) == 0 || len(pattern[0]) == 0 {
		c.FillRect(r, clr)
		return
	}

	x, y, w, h := RectToScreen(r, c.FieldHeight)
	cellW := w / float64(len(pattern[0]))
	cellH := h / float64(len(pattern))

	for row, line := range pattern {
		for col, ch := range line {
			if ch != '#' {
				continue
			}
			vector.DrawFilledRect(c.Screen,
				float32(x+float64(col)*cellW), float32(y+float64(row)*cellH),
				float32(cellW), float32(cellH), clr, false)
		}
	}
}
