package systems

import (
	"image/color"

	"github.com/decker502/invaders/pkg/components"
	"github.com/decker502/invaders/pkg/config"
	"github.com/decker502/invaders/pkg/ecs"
	"github.com/decker502/invaders/pkg/entities"
)

// scriptedRand 按顺序返回预设值的随机源
// 预设值用完后返回 0；每个值都会对 n 取模以保证落在 [0, n)
type scriptedRand struct {
	values []int
	calls  []int // 记录每次调用的 n
}

func (r *scriptedRand) Intn(n int) int {
	r.calls = append(r.calls, n)
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[0]
	r.values = r.values[1:]
	return v % n
}

// newTestFormation 创建测试用实体管理器、配置和完整阵列
func newTestFormation(rows, cols int) (*ecs.EntityManager, *config.WaveConfig, [][]ecs.EntityID) {
	cfg := config.DefaultWaveConfig()
	cfg.Alien.Rows = rows
	cfg.Alien.Columns = cols
	em := ecs.NewEntityManager()
	grid, err := entities.NewFormation(em, cfg)
	if err != nil {
		panic(err)
	}
	return em, cfg, grid
}

// positionOf 读取实体位置（测试中实体必定存在）
func positionOf(em *ecs.EntityManager, id ecs.EntityID) *components.PositionComponent {
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		panic("entity has no position")
	}
	return pos
}

// drawCall 记录一次绘制调用
type drawCall struct {
	kind  string // "rect" / "line" / "pattern"
	rect  components.Rect
	color color.Color
}

// recordingCanvas 记录所有绘制调用的 Canvas
type recordingCanvas struct {
	calls []drawCall
}

func (c *recordingCanvas) FillRect(r components.Rect, clr color.Color) {
	c.calls = append(c.calls, drawCall{kind: "rect", rect: r, color: clr})
}

func (c *recordingCanvas) StrokeLine(x0, y0, x1, y1, width float64, clr color.Color) {
	c.calls = append(c.calls, drawCall{
		kind:  "line",
		rect:  components.Rect{CenterX: (x0 + x1) / 2, CenterY: (y0 + y1) / 2, Width: x1 - x0, Height: width},
		color: clr,
	})
}

func (c *recordingCanvas) DrawPattern(r components.Rect, pattern []string, clr color.Color) {
	c.calls = append(c.calls, drawCall{kind: "pattern", rect: r, color: clr})
}
