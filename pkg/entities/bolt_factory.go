package entities

import (
	"fmt"
	"log"

	"github.com/decker502/invaders/pkg/components"
	"github.com/decker502/invaders/pkg/config"
	"github.com/decker502/invaders/pkg/ecs"
)

// NewPlayerBolt 创建玩家激光子弹
// 子弹从飞船机头发射，以恒定速度向上移动
//
// 参数:
//   - em: 实体管理器
//   - cfg: 波次配置（子弹尺寸和速度）
//   - startX, startY: 子弹中心的起始世界坐标
//
// 返回:
//   - ecs.EntityID: 子弹实体ID，失败时为 0
//   - error: 参数无效时返回错误
func NewPlayerBolt(em *ecs.EntityManager, cfg *config.WaveConfig, startX, startY float64) (ecs.EntityID, error) {
	return newBolt(em, cfg, components.BoltOwnerPlayer, startX, startY)
}

// NewAlienBolt 创建外星人激光子弹
// 子弹从外星人底部发射，以恒定速度向下移动
func NewAlienBolt(em *ecs.EntityManager, cfg *config.WaveConfig, startX, startY float64) (ecs.EntityID, error) {
	return newBolt(em, cfg, components.BoltOwnerAlien, startX, startY)
}

func newBolt(em *ecs.EntityManager, cfg *config.WaveConfig, owner components.BoltOwner, startX, startY float64) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return 0, fmt.Errorf("wave config cannot be nil")
	}

	entityID := em.CreateEntity()

	em.AddComponent(entityID, &components.PositionComponent{
		X: startX,
		Y: startY,
	})

	em.AddComponent(entityID, components.NewBoltComponent(owner, cfg.Bolt.Speed))

	em.AddComponent(entityID, &components.CollisionComponent{
		Width:  cfg.Bolt.Width,
		Height: cfg.Bolt.Height,
	})

	boltColor := config.PlayerBoltColor
	if owner == components.BoltOwnerAlien {
		boltColor = config.AlienBoltColor
	}
	em.AddComponent(entityID, &components.SpriteComponent{Color: boltColor})

	log.Printf("[BoltFactory] 创建%s子弹 %d: (%.1f, %.1f)", owner, entityID, startX, startY)

	return entityID, nil
}
