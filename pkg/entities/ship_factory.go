package entities

import (
	"fmt"

	"github.com/decker502/invaders/pkg/components"
	"github.com/decker502/invaders/pkg/config"
	"github.com/decker502/invaders/pkg/ecs"
)

// NewShip 创建玩家飞船实体
// 飞船位于区域底部中央，下沿距底部 cfg.Ship.Bottom
//
// 参数:
//   - em: 实体管理器
//   - cfg: 波次配置
//
// 返回:
//   - ecs.EntityID: 飞船实体ID，失败时为 0
//   - error: 参数无效时返回错误
func NewShip(em *ecs.EntityManager, cfg *config.WaveConfig) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return 0, fmt.Errorf("wave config cannot be nil")
	}

	x, y := cfg.ShipStart()
	entityID := em.CreateEntity()

	em.AddComponent(entityID, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(entityID, &components.CollisionComponent{
		Width:  cfg.Ship.Width,
		Height: cfg.Ship.Height,
	})
	em.AddComponent(entityID, &components.ShipComponent{Movement: cfg.Ship.Movement})
	em.AddComponent(entityID, &components.SpriteComponent{
		Pattern: config.PatternShip,
		Color:   config.ShipColor,
	})

	return entityID, nil
}
