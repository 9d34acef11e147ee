package systems

import (
	"fmt"
	"log"

	"github.com/decker502/invaders/pkg/components"
	"github.com/decker502/invaders/pkg/config"
	"github.com/decker502/invaders/pkg/ecs"
)

// MarchDirection 阵列水平行进方向
type MarchDirection int

const (
	// MarchRight 向右行进
	MarchRight MarchDirection = iota
	// MarchLeft 向左行进
	MarchLeft
)

// String 返回方向名称
func (d MarchDirection) String() string {
	if d == MarchRight {
		return "right"
	}
	return "left"
}

// MarchStep 单次阵列移动的类型
type MarchStep int

const (
	// StepRight 整体右移 HWalk
	StepRight MarchStep = iota
	// StepLeft 整体左移 HWalk
	StepLeft
	// StepDown 触边，整体下移 VWalk 并掉头
	StepDown
)

// FormationSystem 管理外星人阵列的行进、加速和归位
//
// 阵列是固定尺寸的 [row][col] 网格，0 表示该格外星人已被消灭（永不补充）。
// 本系统只读写网格中外星人的组件，不修改网格本身。
type FormationSystem struct {
	em  *ecs.EntityManager
	cfg *config.WaveConfig
}

// NewFormationSystem 创建阵列系统
func NewFormationSystem(em *ecs.EntityManager, cfg *config.WaveConfig) *FormationSystem {
	return &FormationSystem{em: em, cfg: cfg}
}

// Count 返回存活外星人数量
func (s *FormationSystem) Count(grid [][]ecs.EntityID) int {
	n := 0
	for _, row := range grid {
		for _, id := range row {
			if id != 0 {
				n++
			}
		}
	}
	return n
}

// IsColumnEmpty 指定列是否已没有存活外星人
func (s *FormationSystem) IsColumnEmpty(grid [][]ecs.EntityID, col int) bool {
	for row := range grid {
		if grid[row][col] != 0 {
			return false
		}
	}
	return true
}

// NonEmptyColumns 返回仍有外星人的列，按列号升序
func (s *FormationSystem) NonEmptyColumns(grid [][]ecs.EntityID) []int {
	if len(grid) == 0 {
		return nil
	}
	cols := make([]int, 0, len(grid[0]))
	for col := range grid[0] {
		if !s.IsColumnEmpty(grid, col) {
			cols = append(cols, col)
		}
	}
	return cols
}

// LowestInColumn 返回指定列最下方的存活外星人
func (s *FormationSystem) LowestInColumn(grid [][]ecs.EntityID, col int) (ecs.EntityID, bool) {
	for row := len(grid) - 1; row >= 0; row-- {
		if grid[row][col] != 0 {
			return grid[row][col], true
		}
	}
	return 0, false
}

// Foremost 返回行进方向上最外侧的存活外星人
//
// 向右时从最后一列往里扫描，向左时从第 0 列往里扫描；
// 每列自上而下找第一个存活外星人，空列跳过。
// 阵列为空时调用属于逻辑错误。
func (s *FormationSystem) Foremost(grid [][]ecs.EntityID, dir MarchDirection) ecs.EntityID {
	if len(grid) > 0 {
		cols := len(grid[0])
		for i := 0; i < cols; i++ {
			col := i
			if dir == MarchRight {
				col = cols - 1 - i
			}
			for row := range grid {
				if grid[row][col] != 0 {
					return grid[row][col]
				}
			}
		}
	}
	panic(fmt.Sprintf("formation: foremost %s alien requested on an empty formation", dir))
}

// ShouldStep 累计时间是否已超过行进方向最外侧外星人的步进间隔
func (s *FormationSystem) ShouldStep(grid [][]ecs.EntityID, dir MarchDirection, elapsed float64) bool {
	lead := s.Foremost(grid, dir)
	alien, ok := ecs.GetComponent[*components.AlienComponent](s.em, lead)
	if !ok {
		return false
	}
	return elapsed > alien.Speed()
}

// Step 将阵列移动一步
//
// 沿当前方向再走一步不会越界时水平移动；否则整体下移一次并掉头
// （碰左边界转向右，碰右边界转向左）。
//
// 返回:
//   - MarchStep: 本次移动类型
//   - MarchDirection: 移动后的行进方向
func (s *FormationSystem) Step(grid [][]ecs.EntityID, dir MarchDirection) (MarchStep, MarchDirection) {
	rightEdge := s.rect(s.Foremost(grid, MarchRight)).Right()
	leftEdge := s.rect(s.Foremost(grid, MarchLeft)).Left()

	hWalk := s.cfg.Alien.HWalk
	rightBlocked := rightEdge+hWalk > s.cfg.Field.Width
	leftBlocked := leftEdge-hWalk < 0

	switch {
	case dir == MarchRight && !rightBlocked:
		s.translate(grid, hWalk, 0)
		return StepRight, dir
	case dir == MarchLeft && !leftBlocked:
		s.translate(grid, -hWalk, 0)
		return StepLeft, dir
	}

	s.translate(grid, 0, -s.cfg.Alien.VWalk)
	next := dir
	if leftBlocked {
		next = MarchRight
	}
	if rightBlocked {
		next = MarchLeft
	}
	log.Printf("[FormationSystem] 阵列触边下移 %.1f，方向 %s -> %s", s.cfg.Alien.VWalk, dir, next)
	return StepDown, next
}

// SpeedUp 所有存活外星人的步进间隔乘以 SpeedUp（不低于 MinSpeed）
func (s *FormationSystem) SpeedUp(grid [][]ecs.EntityID) {
	s.forEach(grid, func(id ecs.EntityID) {
		if alien, ok := ecs.GetComponent[*components.AlienComponent](s.em, id); ok {
			alien.ApplySpeedFactor(s.cfg.Alien.SpeedUp, s.cfg.Alien.MinSpeed)
		}
	})
}

// ResetToHome 所有存活外星人回到各自的初始格子坐标
func (s *FormationSystem) ResetToHome(grid [][]ecs.EntityID) {
	s.forEach(grid, func(id ecs.EntityID) {
		alien, ok := ecs.GetComponent[*components.AlienComponent](s.em, id)
		if !ok {
			return
		}
		if pos, ok := ecs.GetComponent[*components.PositionComponent](s.em, id); ok {
			pos.X = alien.HomeX
			pos.Y = alien.HomeY
		}
	})
}

// Breached 是否有外星人下沿到达或低于防线
func (s *FormationSystem) Breached(grid [][]ecs.EntityID) bool {
	breached := false
	s.forEach(grid, func(id ecs.EntityID) {
		if s.rect(id).Bottom() <= s.cfg.Field.DefenseLine {
			breached = true
		}
	})
	return breached
}

func (s *FormationSystem) translate(grid [][]ecs.EntityID, dx, dy float64) {
	s.forEach(grid, func(id ecs.EntityID) {
		if pos, ok := ecs.GetComponent[*components.PositionComponent](s.em, id); ok {
			pos.X += dx
			pos.Y += dy
		}
	})
}

func (s *FormationSystem) rect(id ecs.EntityID) components.Rect {
	pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
	col, _ := ecs.GetComponent[*components.CollisionComponent](s.em, id)
	if pos == nil || col == nil {
		return components.Rect{}
	}
	return components.RectOf(pos, col)
}

func (s *FormationSystem) forEach(grid [][]ecs.EntityID, fn func(ecs.EntityID)) {
	for _, row := range grid {
		for _, id := range row {
			if id != 0 {
				fn(id)
			}
		}
	}
}
