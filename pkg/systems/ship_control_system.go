package systems

import (
	"github.com/decker502/invaders/pkg/components"
	"github.com/decker502/invaders/pkg/ecs"
	"github.com/decker502/invaders/pkg/utils"
)

// ShipControlSystem 根据输入水平移动玩家飞船
// 飞船始终完整地留在游戏区域内
type ShipControlSystem struct {
	em         *ecs.EntityManager
	fieldWidth float64
}

// NewShipControlSystem 创建飞船控制系统
func NewShipControlSystem(em *ecs.EntityManager, fieldWidth float64) *ShipControlSystem {
	return &ShipControlSystem{em: em, fieldWidth: fieldWidth}
}

// MoveShip 读取左右键并移动飞船
//
// 只有移动后飞船仍完全在区域内时才移动，否则本方向不动。
// 左右键同时按下时两次移动都会尝试。
func (s *ShipControlSystem) MoveShip(shipID ecs.EntityID, input utils.InputSource) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.em, shipID)
	if !ok {
		return
	}
	col, ok := ecs.GetComponent[*components.CollisionComponent](s.em, shipID)
	if !ok {
		return
	}
	ship, ok := ecs.GetComponent[*components.ShipComponent](s.em, shipID)
	if !ok {
		return
	}

	step := ship.Movement
	half := col.Width / 2

	if input.IsKeyDown(utils.KeyLeft) && pos.X-half-step > 0 {
		pos.X -= step
	}
	if input.IsKeyDown(utils.KeyRight) && pos.X+half+step < s.fieldWidth {
		pos.X += step
	}
}
