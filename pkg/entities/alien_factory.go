package entities

import (
	"fmt"

	"github.com/decker502/invaders/pkg/components"
	"github.com/decker502/invaders/pkg/config"
	"github.com/decker502/invaders/pkg/ecs"
)

// NewAlien 创建阵列中 (row, col) 位置的外星人实体
//
// 外星人放在该格子的初始坐标上，并记住初始坐标以便飞船被击毁后归位。
func NewAlien(em *ecs.EntityManager, cfg *config.WaveConfig, row, col int) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return 0, fmt.Errorf("wave config cannot be nil")
	}
	if row < 0 || row >= cfg.Alien.Rows || col < 0 || col >= cfg.Alien.Columns {
		return 0, fmt.Errorf("invalid formation cell: row=%d, col=%d (grid %dx%d)",
			row, col, cfg.Alien.Rows, cfg.Alien.Columns)
	}

	homeX, homeY := cfg.AlienHome(row, col)
	variant := config.AlienVariant(row, cfg.Alien.Rows)

	entityID := em.CreateEntity()
	em.AddComponent(entityID, &components.PositionComponent{X: homeX, Y: homeY})
	em.AddComponent(entityID, &components.CollisionComponent{
		Width:  cfg.Alien.Width,
		Height: cfg.Alien.Height,
	})
	em.AddComponent(entityID, components.NewAlienComponent(row, col, homeX, homeY, cfg.Alien.Speed))
	em.AddComponent(entityID, &components.SpriteComponent{
		Pattern: config.AlienPatterns[variant],
		Color:   config.AlienColors[variant],
	})

	return entityID, nil
}

// NewFormation 创建完整的外星人阵列
//
// 返回按行优先排列的二维网格 [row][col]，所有格子都已填满。
// 网格尺寸在波次内固定，被消灭的格子由调用方置为 0。
func NewFormation(em *ecs.EntityManager, cfg *config.WaveConfig) ([][]ecs.EntityID, error) {
	if cfg == nil {
		return nil, fmt.Errorf("wave config cannot be nil")
	}

	grid := make([][]ecs.EntityID, cfg.Alien.Rows)
	for row := range grid {
		grid[row] = make([]ecs.EntityID, cfg.Alien.Columns)
		for col := range grid[row] {
			id, err := NewAlien(em, cfg, row, col)
			if err != nil {
				return nil, fmt.Errorf("failed to create alien at (%d, %d): %w", row, col, err)
			}
			grid[row][col] = id
		}
	}
	return grid, nil
}
