package modules

import (
	"fmt"
	"log"

	"github.com/decker502/invaders/pkg/components"
	"github.com/decker502/invaders/pkg/config"
	"github.com/decker502/invaders/pkg/ecs"
	"github.com/decker502/invaders/pkg/entities"
	"github.com/decker502/invaders/pkg/systems"
	"github.com/decker502/invaders/pkg/utils"
)

// WaveStatus 波次整体状态，由外层场景决定后续流程
type WaveStatus int

const (
	// WaveActive 波次进行中
	WaveActive WaveStatus = iota
	// WaveCleared 所有外星人已被消灭
	WaveCleared
	// WaveLost 生命耗尽
	WaveLost
	// WaveBreached 外星人阵列到达防线
	WaveBreached
)

// String 返回状态名称
func (s WaveStatus) String() string {
	switch s {
	case WaveActive:
		return "active"
	case WaveCleared:
		return "cleared"
	case WaveLost:
		return "lost"
	case WaveBreached:
		return "breached"
	default:
		return "unknown"
	}
}

// WaveModule 单个波次的玩法控制器
// 持有飞船、外星人阵列和场上所有子弹，每帧按固定顺序推进：
//  1. 飞船重生（上一帧被击毁时）
//  2. 飞船移动
//  3. 阵列行进
//  4. 玩家开火
//  5. 子弹推进、出界、击中飞船
//  6. 玩家子弹击中外星人
//  7. 外星人开火
//
// 进入下一波时应创建新的 WaveModule，而不是复用旧实例。
// 所有状态只在 Update 中修改，Draw 只读。
type WaveModule struct {
	// ECS 框架
	entityManager *ecs.EntityManager
	cfg           *config.WaveConfig

	// 系统（内部管理）
	shipControlSystem *systems.ShipControlSystem
	collisionSystem   *systems.CollisionSystem
	formationSystem   *systems.FormationSystem
	boltSystem        *systems.BoltSystem
	alienFireSystem   *systems.AlienFireSystem
	renderSystem      *systems.RenderSystem

	// 飞船
	ship      ecs.EntityID
	shipState components.ShipState

	// aliens [row][col]，0 表示该格已空，永不补充
	aliens [][]ecs.EntityID
	// bolts 场上子弹，按发射顺序排列
	bolts []ecs.EntityID

	lives int
	kills int

	// elapsed 距上次阵列移动的累计时间（秒）
	elapsed   float64
	direction systems.MarchDirection

	// fireThreshold 外星人两次开火之间需要的阵列步数
	fireThreshold int
	// stepsSinceShot 上次外星人开火后阵列走过的步数（场上有外星人子弹时不计）
	stepsSinceShot int
}

// NewWaveModule 创建新的波次
//
// 参数:
//   - cfg: 波次配置，创建后不应再修改
//   - rng: 随机数来源，用于外星人开火节奏和开火者选择
//
// 返回:
//   - *WaveModule: 波次实例，飞船在初始位置，阵列满员，向右行进
//   - error: 配置无效或实体创建失败时返回错误
func NewWaveModule(cfg *config.WaveConfig, rng systems.RandSource) (*WaveModule, error) {
	if cfg == nil {
		return nil, fmt.Errorf("wave config cannot be nil")
	}
	if rng == nil {
		return nil, fmt.Errorf("random source cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid wave config: %w", err)
	}

	em := ecs.NewEntityManager()
	formation := systems.NewFormationSystem(em, cfg)

	m := &WaveModule{
		entityManager:     em,
		cfg:               cfg,
		shipControlSystem: systems.NewShipControlSystem(em, cfg.Field.Width),
		collisionSystem:   systems.NewCollisionSystem(em),
		formationSystem:   formation,
		boltSystem:        systems.NewBoltSystem(em, cfg.Field.Height),
		alienFireSystem:   systems.NewAlienFireSystem(em, cfg, rng, formation),
		renderSystem:      systems.NewRenderSystem(em, cfg),
		bolts:             make([]ecs.EntityID, 0, 2),
		lives:             cfg.Ship.Lives,
		direction:         systems.MarchRight,
	}

	ship, err := entities.NewShip(em, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create ship: %w", err)
	}
	m.ship = ship
	m.shipState = components.ShipAlive

	aliens, err := entities.NewFormation(em, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create formation: %w", err)
	}
	m.aliens = aliens

	m.fireThreshold = m.alienFireSystem.InitialThreshold()

	log.Printf("[WaveModule] 新波次: %dx%d 外星人, %d 条命, 开火阈值 %d",
		cfg.Alien.Rows, cfg.Alien.Columns, m.lives, m.fireThreshold)

	return m, nil
}

// Update 推进一帧
//
// 参数:
//   - input: 输入源（左、右、开火）
//   - dt: 距上一帧的时间（秒）
func (m *WaveModule) Update(input utils.InputSource, dt float64) {
	if m.shipState == components.ShipPendingRespawn {
		m.respawnShip()
	}

	if m.shipState == components.ShipAlive {
		m.shipControlSystem.MoveShip(m.ship, input)
	}

	m.elapsed += dt
	if m.formationSystem.Count(m.aliens) > 0 {
		m.marchFormation()
	}

	if len(m.bolts) == 0 || (m.boltSystem.AnyAlienBolt(m.bolts) && len(m.bolts) < 2) {
		m.checkFireKey(input)
	}

	m.updateBolts()

	m.alienShoot()

	if m.shipState == components.ShipDestroyed {
		m.shipState = components.ShipPendingRespawn
	}
	m.entityManager.RemoveMarkedEntities()
}

// Draw 绘制外星人、防线、飞船（在场时）和子弹
func (m *WaveModule) Draw(canvas systems.Canvas) {
	shipID := ecs.EntityID(0)
	if m.shipState == components.ShipAlive {
		shipID = m.ship
	}
	m.renderSystem.Draw(canvas, m.aliens, shipID, m.bolts)
}

// respawnShip 在初始位置重新创建飞船（生命已在被击毁时扣除）
func (m *WaveModule) respawnShip() {
	ship, err := entities.NewShip(m.entityManager, m.cfg)
	if err != nil {
		log.Printf("[WaveModule] 错误: 飞船重生失败: %v", err)
		return
	}
	m.ship = ship
	m.shipState = components.ShipAlive
	log.Printf("[WaveModule] 飞船重生，剩余生命 %d", m.lives)
}

// marchFormation 累计时间超过领头外星人的步进间隔时移动阵列
func (m *WaveModule) marchFormation() {
	if !m.formationSystem.ShouldStep(m.aliens, m.direction, m.elapsed) {
		return
	}

	_, m.direction = m.formationSystem.Step(m.aliens, m.direction)
	m.elapsed = 0
	if !m.boltSystem.AnyAlienBolt(m.bolts) {
		m.stepsSinceShot++
	}
}

// checkFireKey 按下开火键时从机头发射玩家子弹
func (m *WaveModule) checkFireKey(input utils.InputSource) {
	if m.shipState != components.ShipAlive || !input.IsKeyDown(utils.KeyFire) {
		return
	}

	pos, ok := ecs.GetComponent[*components.PositionComponent](m.entityManager, m.ship)
	if !ok {
		return
	}
	col, ok := ecs.GetComponent[*components.CollisionComponent](m.entityManager, m.ship)
	if !ok {
		return
	}

	bolt, err := entities.NewPlayerBolt(m.entityManager, m.cfg, pos.X, pos.Y+col.Height/2)
	if err != nil {
		log.Printf("[WaveModule] 错误: 创建玩家子弹失败: %v", err)
		return
	}
	m.bolts = append(m.bolts, bolt)
}

// updateBolts 推进所有子弹并处理出界和命中
func (m *WaveModule) updateBolts() {
	survivors := make([]ecs.EntityID, 0, len(m.bolts))

	for _, id := range m.bolts {
		if m.boltSystem.Advance(id) {
			m.entityManager.DestroyEntity(id)
			continue
		}

		bolt, ok := ecs.GetComponent[*components.BoltComponent](m.entityManager, id)
		if !ok {
			m.entityManager.DestroyEntity(id)
			continue
		}

		if bolt.IsAlienBolt() {
			if m.shipState == components.ShipAlive && m.collisionSystem.ShipCollides(m.ship, id) {
				// 飞船被击毁会清空全部子弹，本帧剩余子弹无需再处理
				m.destroyShip()
				return
			}
			survivors = append(survivors, id)
			continue
		}

		if row, col, hit := m.collisionSystem.FindAlienHit(m.aliens, id); hit {
			m.destroyAlien(row, col)
			m.entityManager.DestroyEntity(id)
			continue
		}
		survivors = append(survivors, id)
	}

	m.bolts = survivors
}

// destroyShip 飞船被击中：清空子弹、移除飞船、阵列归位、扣一条命
func (m *WaveModule) destroyShip() {
	for _, id := range m.bolts {
		m.entityManager.DestroyEntity(id)
	}
	m.bolts = m.bolts[:0]

	m.entityManager.DestroyEntity(m.ship)
	m.ship = 0
	m.shipState = components.ShipDestroyed

	m.formationSystem.ResetToHome(m.aliens)

	if m.lives > 0 {
		m.lives--
	}
	log.Printf("[WaveModule] 飞船被击毁，剩余生命 %d，阵列归位", m.lives)
}

// destroyAlien 消灭 (row, col) 的外星人，幸存者整体加速
func (m *WaveModule) destroyAlien(row, col int) {
	m.entityManager.DestroyEntity(m.aliens[row][col])
	m.aliens[row][col] = 0
	m.kills++
	m.formationSystem.SpeedUp(m.aliens)
	log.Printf("[WaveModule] 外星人 (%d, %d) 被消灭，剩余 %d", row, col, m.formationSystem.Count(m.aliens))
}

// alienShoot 开火时机已到且场上没有外星人子弹时，随机外星人开火
func (m *WaveModule) alienShoot() {
	if m.formationSystem.Count(m.aliens) == 0 {
		return
	}
	if !m.alienFireSystem.ShouldFire(m.stepsSinceShot, m.fireThreshold, m.boltSystem.AnyAlienBolt(m.bolts)) {
		return
	}

	bolt, err := m.alienFireSystem.Fire(m.aliens)
	if err != nil {
		log.Printf("[WaveModule] 错误: 外星人开火失败: %v", err)
		return
	}
	m.bolts = append(m.bolts, bolt)
	m.fireThreshold = m.alienFireSystem.NextThreshold()
	m.stepsSinceShot = 0
}

// Status 返回波次状态
// 优先级：生命耗尽 > 突破防线 > 全部消灭 > 进行中
func (m *WaveModule) Status() WaveStatus {
	remaining := m.formationSystem.Count(m.aliens)
	switch {
	case m.lives == 0:
		return WaveLost
	case remaining > 0 && m.formationSystem.Breached(m.aliens):
		return WaveBreached
	case remaining == 0:
		return WaveCleared
	default:
		return WaveActive
	}
}

// Lives 返回剩余生命
func (m *WaveModule) Lives() int {
	return m.lives
}

// Kills 返回本波次消灭的外星人数量
func (m *WaveModule) Kills() int {
	return m.kills
}

// AliensRemaining 返回存活外星人数量
func (m *WaveModule) AliensRemaining() int {
	return m.formationSystem.Count(m.aliens)
}

// ShipState 返回飞船生命周期状态
func (m *WaveModule) ShipState() components.ShipState {
	return m.shipState
}

// Ship 返回飞船实体；飞船不在场时 ok 为 false
func (m *WaveModule) Ship() (ecs.EntityID, bool) {
	if m.shipState != components.ShipAlive {
		return 0, false
	}
	return m.ship, true
}

// AlienAt 返回 (row, col) 格子的外星人；空格或越界时 ok 为 false
func (m *WaveModule) AlienAt(row, col int) (ecs.EntityID, bool) {
	if row < 0 || row >= len(m.aliens) || col < 0 || col >= len(m.aliens[row]) {
		return 0, false
	}
	id := m.aliens[row][col]
	return id, id != 0
}

// Bolts 返回场上子弹的副本
func (m *WaveModule) Bolts() []ecs.EntityID {
	out := make([]ecs.EntityID, len(m.bolts))
	copy(out, m.bolts)
	return out
}

// Direction 返回阵列当前行进方向
func (m *WaveModule) Direction() systems.MarchDirection {
	return m.direction
}

// FireThreshold 返回当前外星人开火阈值
func (m *WaveModule) FireThreshold() int {
	return m.fireThreshold
}

// EntityManager 返回波次的实体管理器（只读查询组件用）
func (m *WaveModule) EntityManager() *ecs.EntityManager {
	return m.entityManager
}

// Config 返回波次配置
func (m *WaveModule) Config() *config.WaveConfig {
	return m.cfg
}
