package systems

import (
	"fmt"

	"github.com/decker502/invaders/pkg/components"
	"github.com/decker502/invaders/pkg/config"
	"github.com/decker502/invaders/pkg/ecs"
	"github.com/decker502/invaders/pkg/entities"
)

// RandSource 随机数来源
// *rand.Rand 满足此接口；测试中注入固定种子或脚本化实现以保证可复现
type RandSource interface {
	// Intn 返回 [0, n) 内的随机整数，n > 0
	Intn(n int) int
}

// AlienFireSystem 决定外星人何时、由谁开火
//
// 开火节奏以阵列步数计：阵列每走一步（且场上没有外星人子弹）计数 +1，
// 计数达到随机阈值时开火，然后在 [0, Rate] 内重新抽取阈值。
type AlienFireSystem struct {
	em        *ecs.EntityManager
	cfg       *config.WaveConfig
	rng       RandSource
	formation *FormationSystem
}

// NewAlienFireSystem 创建外星人开火系统
func NewAlienFireSystem(em *ecs.EntityManager, cfg *config.WaveConfig, rng RandSource, formation *FormationSystem) *AlienFireSystem {
	return &AlienFireSystem{
		em:        em,
		cfg:       cfg,
		rng:       rng,
		formation: formation,
	}
}

// InitialThreshold 波次开始时的开火阈值，在 [1, Rate] 内随机
// Rate 为 0 时返回 0（每步都可开火）
func (s *AlienFireSystem) InitialThreshold() int {
	if s.cfg.Bolt.Rate <= 0 {
		return 0
	}
	return 1 + s.rng.Intn(s.cfg.Bolt.Rate)
}

// NextThreshold 开火后的新阈值，在 [0, Rate] 内随机
func (s *AlienFireSystem) NextThreshold() int {
	return s.rng.Intn(s.cfg.Bolt.Rate + 1)
}

// ShouldFire 是否到了开火时机
func (s *AlienFireSystem) ShouldFire(stepsSinceShot, threshold int, alienBoltInFlight bool) bool {
	if alienBoltInFlight {
		return false
	}
	return stepsSinceShot == threshold || threshold == 0
}

// PickShooter 随机选出开火的外星人
//
// 在仍有外星人的列中等概率选一列，由该列最下方的外星人开火。
// 阵列为空时调用属于逻辑错误。
func (s *AlienFireSystem) PickShooter(grid [][]ecs.EntityID) ecs.EntityID {
	cols := s.formation.NonEmptyColumns(grid)
	if len(cols) == 0 {
		panic("alien fire: no alien left to fire")
	}

	col := cols[s.rng.Intn(len(cols))]
	shooter, _ := s.formation.LowestInColumn(grid, col)
	return shooter
}

// Fire 选出开火者并在其底部生成一颗外星人子弹
func (s *AlienFireSystem) Fire(grid [][]ecs.EntityID) (ecs.EntityID, error) {
	shooter := s.PickShooter(grid)

	pos, ok := ecs.GetComponent[*components.PositionComponent](s.em, shooter)
	if !ok {
		return 0, fmt.Errorf("alien %d has no position", shooter)
	}
	col, ok := ecs.GetComponent[*components.CollisionComponent](s.em, shooter)
	if !ok {
		return 0, fmt.Errorf("alien %d has no collision box", shooter)
	}

	return entities.NewAlienBolt(s.em, s.cfg, pos.X, pos.Y-col.Height/2)
}
