package systems

import (
	"github.com/decker502/invaders/pkg/components"
	"github.com/decker502/invaders/pkg/ecs"
)

// CollisionSystem 处理子弹与飞船、外星人之间的碰撞判定
//
// 判定规则：目标的碰撞盒包含子弹碰撞盒任一角点即为命中。
// 子弹只会击中对方阵营：玩家子弹只打外星人，外星人子弹只打飞船。
type CollisionSystem struct {
	em *ecs.EntityManager
}

// NewCollisionSystem 创建碰撞系统
func NewCollisionSystem(em *ecs.EntityManager) *CollisionSystem {
	return &CollisionSystem{em: em}
}

// rectOf 获取实体的世界坐标碰撞矩形
func (s *CollisionSystem) rectOf(id ecs.EntityID) (components.Rect, bool) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.em, id)
	if !ok {
		return components.Rect{}, false
	}
	col, ok := ecs.GetComponent[*components.CollisionComponent](s.em, id)
	if !ok {
		return components.Rect{}, false
	}
	return components.RectOf(pos, col), true
}

// overlaps 检查 target 是否包含 bolt 的任一角点，并且子弹归属为 owner
func (s *CollisionSystem) overlaps(targetID, boltID ecs.EntityID, owner components.BoltOwner) bool {
	bolt, ok := ecs.GetComponent[*components.BoltComponent](s.em, boltID)
	if !ok || bolt.Owner() != owner {
		return false
	}

	target, ok := s.rectOf(targetID)
	if !ok {
		return false
	}
	boltRect, ok := s.rectOf(boltID)
	if !ok {
		return false
	}
	return target.ContainsAnyCorner(boltRect)
}

// ShipCollides 外星人子弹是否击中飞船
// 玩家自己的子弹永远不会击中飞船
func (s *CollisionSystem) ShipCollides(shipID, boltID ecs.EntityID) bool {
	return s.overlaps(shipID, boltID, components.BoltOwnerAlien)
}

// AlienCollides 玩家子弹是否击中外星人
// 外星人子弹永远不会击中外星人
func (s *CollisionSystem) AlienCollides(alienID, boltID ecs.EntityID) bool {
	return s.overlaps(alienID, boltID, components.BoltOwnerPlayer)
}

// FindAlienHit 按行优先顺序查找第一个被子弹击中的外星人
//
// 返回:
//   - row, col: 被击中外星人所在格子
//   - ok: 是否有外星人被击中
func (s *CollisionSystem) FindAlienHit(grid [][]ecs.EntityID, boltID ecs.EntityID) (row, col int, ok bool) {
	for r := range grid {
		for c, alienID := range grid[r] {
			if alienID == 0 {
				continue
			}
			if s.AlienCollides(alienID, boltID) {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}
