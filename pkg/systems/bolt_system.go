package systems

import (
	"github.com/decker502/invaders/pkg/components"
	"github.com/decker502/invaders/pkg/ecs"
)

// BoltSystem 推进激光子弹并判定出界
type BoltSystem struct {
	em          *ecs.EntityManager
	fieldHeight float64
}

// NewBoltSystem 创建子弹系统
func NewBoltSystem(em *ecs.EntityManager, fieldHeight float64) *BoltSystem {
	return &BoltSystem{em: em, fieldHeight: fieldHeight}
}

// Advance 推进一颗子弹
//
// 玩家子弹下沿到达或越过区域顶部、外星人子弹上沿到达或越过区域底部时视为出界，
// 出界子弹不再移动，返回 true 由调用方移除；否则按速度和方向移动一帧并返回 false。
func (s *BoltSystem) Advance(boltID ecs.EntityID) (expired bool) {
	bolt, ok := ecs.GetComponent[*components.BoltComponent](s.em, boltID)
	if !ok {
		return true
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.em, boltID)
	if !ok {
		return true
	}
	col, ok := ecs.GetComponent[*components.CollisionComponent](s.em, boltID)
	if !ok {
		return true
	}

	if bolt.IsPlayerBolt() {
		if pos.Y-col.Height/2 >= s.fieldHeight {
			return true
		}
	} else if pos.Y+col.Height/2 <= 0 {
		return true
	}

	pos.Y += bolt.Velocity() * bolt.Direction()
	return false
}

// AnyAlienBolt 子弹列表中是否有外星人子弹
func (s *BoltSystem) AnyAlienBolt(bolts []ecs.EntityID) bool {
	for _, id := range bolts {
		if bolt, ok := ecs.GetComponent[*components.BoltComponent](s.em, id); ok && bolt.IsAlienBolt() {
			return true
		}
	}
	return false
}
