package systems

import (
	"image/color"

	"github.com/decker502/invaders/pkg/components"
	"github.com/decker502/invaders/pkg/config"
	"github.com/decker502/invaders/pkg/ecs"
)

// Canvas 绘制目标
// 所有坐标均为世界坐标（Y 轴向上），由具体实现负责映射到屏幕或终端
type Canvas interface {
	// FillRect 绘制实心矩形
	FillRect(r components.Rect, clr color.Color)
	// StrokeLine 绘制线段
	StrokeLine(x0, y0, x1, y1, width float64, clr color.Color)
	// DrawPattern 将像素图案缩放到矩形内绘制
	DrawPattern(r components.Rect, pattern []string, clr color.Color)
}

// RenderSystem 将波次中的实体绘制到 Canvas
//
// 绘制顺序决定遮挡关系：外星人、防线、飞船、子弹。
// 本系统只读取组件，不修改任何状态。
type RenderSystem struct {
	em  *ecs.EntityManager
	cfg *config.WaveConfig
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager, cfg *config.WaveConfig) *RenderSystem {
	return &RenderSystem{em: em, cfg: cfg}
}

// Draw 绘制一帧
//
// 参数:
//   - canvas: 绘制目标
//   - grid: 外星人阵列（0 为空格）
//   - shipID: 飞船实体，0 表示飞船当前不在场
//   - bolts: 存活子弹列表
func (s *RenderSystem) Draw(canvas Canvas, grid [][]ecs.EntityID, shipID ecs.EntityID, bolts []ecs.EntityID) {
	for _, row := range grid {
		for _, id := range row {
			if id != 0 {
				s.drawEntity(canvas, id)
			}
		}
	}

	line := s.cfg.Field.DefenseLine
	canvas.StrokeLine(0, line, s.cfg.Field.Width, line, config.DefenseLineWidth, config.DefenseLineColor)

	if shipID != 0 {
		s.drawEntity(canvas, shipID)
	}

	for _, id := range bolts {
		s.drawEntity(canvas, id)
	}
}

// drawEntity 按精灵组件绘制单个实体
func (s *RenderSystem) drawEntity(canvas Canvas, id ecs.EntityID) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.em, id)
	if !ok {
		return
	}
	col, ok := ecs.GetComponent[*components.CollisionComponent](s.em, id)
	if !ok {
		return
	}
	rect := components.RectOf(pos, col)

	sprite, ok := ecs.GetComponent[*components.SpriteComponent](s.em, id)
	if !ok {
		canvas.FillRect(rect, color.White)
		return
	}

	if pattern, found := config.SpritePatterns[sprite.Pattern]; found {
		canvas.DrawPattern(rect, pattern, sprite.Color)
		return
	}
	canvas.FillRect(rect, sprite.Color)
}
