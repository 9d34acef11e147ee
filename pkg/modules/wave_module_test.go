package modules

import (
	"image/color"
	"math"
	"math/rand"
	"testing"

	"github.com/decker502/invaders/pkg/components"
	"github.com/decker502/invaders/pkg/config"
	"github.com/decker502/invaders/pkg/ecs"
	"github.com/decker502/invaders/pkg/entities"
	"github.com/decker502/invaders/pkg/systems"
	"github.com/decker502/invaders/pkg/utils"
)

const frame = 1.0 / 60

// fixedRand 总是返回 value % n 的随机源
type fixedRand struct {
	value int
}

func (r fixedRand) Intn(n int) int {
	return r.value % n
}

// countingCanvas 统计各类绘制调用
type countingCanvas struct {
	rects, lines, patterns int
}

func (c *countingCanvas) FillRect(components.Rect, color.Color) { c.rects++ }

func (c *countingCanvas) StrokeLine(_, _, _, _, _ float64, _ color.Color) { c.lines++ }

func (c *countingCanvas) DrawPattern(components.Rect, []string, color.Color) { c.patterns++ }

// newTestWave 创建默认配置的波次
// 开火阈值固定为 rng 结果，便于控制外星人何时开火
func newTestWave(t *testing.T, cfg *config.WaveConfig, rng systems.RandSource) *WaveModule {
	t.Helper()
	if cfg == nil {
		cfg = config.DefaultWaveConfig()
	}
	if rng == nil {
		rng = fixedRand{value: 4}
	}
	m, err := NewWaveModule(cfg, rng)
	if err != nil {
		t.Fatalf("NewWaveModule failed: %v", err)
	}
	return m
}

func position(t *testing.T, m *WaveModule, id ecs.EntityID) *components.PositionComponent {
	t.Helper()
	pos, ok := ecs.GetComponent[*components.PositionComponent](m.EntityManager(), id)
	if !ok {
		t.Fatalf("entity %d has no position", id)
	}
	return pos
}

func alienSpeed(t *testing.T, m *WaveModule, row, col int) float64 {
	t.Helper()
	id, ok := m.AlienAt(row, col)
	if !ok {
		t.Fatalf("no alien at (%d, %d)", row, col)
	}
	alien, _ := ecs.GetComponent[*components.AlienComponent](m.EntityManager(), id)
	return alien.Speed()
}

func TestNewWaveModule(t *testing.T) {
	m := newTestWave(t, nil, fixedRand{value: 2})

	if m.Lives() != 3 || m.Kills() != 0 {
		t.Errorf("lives/kills = %d/%d, want 3/0", m.Lives(), m.Kills())
	}
	if m.AliensRemaining() != 50 {
		t.Errorf("aliens = %d, want 50", m.AliensRemaining())
	}
	if m.Direction() != systems.MarchRight {
		t.Errorf("direction = %s, want right", m.Direction())
	}
	if m.FireThreshold() != 3 {
		t.Errorf("fire threshold = %d, want 1 + 2", m.FireThreshold())
	}
	if len(m.Bolts()) != 0 {
		t.Errorf("bolts = %d, want 0", len(m.Bolts()))
	}
	if m.Status() != WaveActive {
		t.Errorf("status = %s, want active", m.Status())
	}

	ship, ok := m.Ship()
	if !ok {
		t.Fatal("ship should be present")
	}
	if pos := position(t, m, ship); pos.X != 400 || pos.Y != 54 {
		t.Errorf("ship at (%.1f, %.1f), want (400, 54)", pos.X, pos.Y)
	}
}

func TestNewWaveModule_InvalidArguments(t *testing.T) {
	if _, err := NewWaveModule(nil, fixedRand{}); err == nil {
		t.Error("nil config should fail")
	}
	if _, err := NewWaveModule(config.DefaultWaveConfig(), nil); err == nil {
		t.Error("nil random source should fail")
	}

	bad := config.DefaultWaveConfig()
	bad.Alien.Columns = 0
	if _, err := NewWaveModule(bad, fixedRand{}); err == nil {
		t.Error("invalid config should fail")
	}
}

func TestWaveModule_PlayerFiresOnce(t *testing.T) {
	m := newTestWave(t, nil, nil)
	fire := utils.StaticInput{utils.KeyFire: true}

	m.Update(fire, frame)

	bolts := m.Bolts()
	if len(bolts) != 1 {
		t.Fatalf("bolts = %d, want 1", len(bolts))
	}
	bolt, _ := ecs.GetComponent[*components.BoltComponent](m.EntityManager(), bolts[0])
	if !bolt.IsPlayerBolt() || bolt.Velocity() != 10 || bolt.Direction() != 1 {
		t.Errorf("bolt owner=%s velocity=%.1f direction=%.0f, want player/10/+1", bolt.Owner(), bolt.Velocity(), bolt.Direction())
	}

	// 机头位于 (400, 76)，发射当帧已前进一步
	if pos := position(t, m, bolts[0]); pos.X != 400 || pos.Y != 86 {
		t.Errorf("bolt at (%.1f, %.1f), want (400, 86)", pos.X, pos.Y)
	}

	// 继续按住开火键不会发射第二颗
	m.Update(fire, frame)
	if len(m.Bolts()) != 1 {
		t.Errorf("bolts after holding fire = %d, want 1", len(m.Bolts()))
	}
	if pos := position(t, m, bolts[0]); pos.Y != 96 {
		t.Errorf("bolt y = %.1f, want 96", pos.Y)
	}
}

func TestWaveModule_SecondBoltWhenAlienBoltInFlight(t *testing.T) {
	m := newTestWave(t, nil, nil)
	alienBolt, _ := entities.NewAlienBolt(m.EntityManager(), m.Config(), 100, 500)
	m.bolts = append(m.bolts, alienBolt)
	fire := utils.StaticInput{utils.KeyFire: true}

	m.Update(fire, frame)
	if len(m.Bolts()) != 2 {
		t.Fatalf("bolts = %d, want alien bolt plus one player bolt", len(m.Bolts()))
	}

	m.Update(fire, frame)
	if len(m.Bolts()) != 2 {
		t.Errorf("bolts = %d, want at most 2", len(m.Bolts()))
	}
}

func TestWaveModule_BoltAtTopBoundaryIsRemoved(t *testing.T) {
	m := newTestWave(t, nil, nil)
	bolt, _ := entities.NewPlayerBolt(m.EntityManager(), m.Config(), 700, 708)
	m.bolts = append(m.bolts, bolt)

	m.Update(utils.StaticInput{}, frame)

	if len(m.Bolts()) != 0 {
		t.Errorf("bolts = %d, want 0", len(m.Bolts()))
	}
	if m.EntityManager().Exists(bolt) {
		t.Error("expired bolt entity should be cleaned up")
	}
}

func TestWaveModule_PlayerBoltKillsAlien(t *testing.T) {
	m := newTestWave(t, nil, nil)
	target, _ := m.AlienAt(4, 0)
	x, _ := m.Config().AlienHome(4, 0)

	// 外星人下沿 371，子弹前进一步后上端进入外星人
	bolt, _ := entities.NewPlayerBolt(m.EntityManager(), m.Config(), x, 360)
	m.bolts = append(m.bolts, bolt)

	m.Update(utils.StaticInput{}, frame)

	if _, ok := m.AlienAt(4, 0); ok {
		t.Error("hit alien cell should be empty")
	}
	if m.EntityManager().Exists(target) {
		t.Error("hit alien entity should be cleaned up")
	}
	if m.Kills() != 1 || m.AliensRemaining() != 49 {
		t.Errorf("kills/remaining = %d/%d, want 1/49", m.Kills(), m.AliensRemaining())
	}
	if len(m.Bolts()) != 0 {
		t.Errorf("bolts = %d, want 0", len(m.Bolts()))
	}
	if got := alienSpeed(t, m, 0, 0); math.Abs(got-0.97) > 1e-9 {
		t.Errorf("survivor speed = %f, want 0.97", got)
	}
}

func TestWaveModule_SpeedDecreasesWithEachKill(t *testing.T) {
	m := newTestWave(t, nil, nil)

	prev := alienSpeed(t, m, 0, 9)
	for col := 0; col < 5; col++ {
		m.destroyAlien(4, col)
		got := alienSpeed(t, m, 0, 9)
		if got >= prev {
			t.Fatalf("speed after kill %d = %f, want < %f", col+1, got, prev)
		}
		prev = got
	}
	if m.Kills() != 5 {
		t.Errorf("kills = %d, want 5", m.Kills())
	}
}

func TestWaveModule_OneBoltKillsOneAlien(t *testing.T) {
	m := newTestWave(t, nil, nil)
	x, top := m.Config().AlienHome(0, 0)
	_, bottom := m.Config().AlienHome(1, 0)

	// 前进一步后恰好同时接触第 0、1 行
	bolt, _ := entities.NewPlayerBolt(m.EntityManager(), m.Config(), x, (top+bottom)/2-10)
	m.bolts = append(m.bolts, bolt)

	m.Update(utils.StaticInput{}, frame)

	if m.Kills() != 1 {
		t.Fatalf("kills = %d, want 1", m.Kills())
	}
	if _, ok := m.AlienAt(0, 0); ok {
		t.Error("row-major first hit should be (0, 0)")
	}
	if _, ok := m.AlienAt(1, 0); !ok {
		t.Error("(1, 0) should survive")
	}
}

func TestWaveModule_ShipHitAndRespawn(t *testing.T) {
	m := newTestWave(t, nil, nil)

	// 先让阵列离开初始位置
	for i := 0; i < 3; i++ {
		m.Update(utils.StaticInput{}, 1.1)
	}
	moved, _ := m.AlienAt(2, 2)
	homeX, homeY := m.Config().AlienHome(2, 2)
	if position(t, m, moved).X == homeX {
		t.Fatal("formation should have marched before the hit")
	}

	playerBolt, _ := entities.NewPlayerBolt(m.EntityManager(), m.Config(), 700, 300)
	alienBolt, _ := entities.NewAlienBolt(m.EntityManager(), m.Config(), 400, 64)
	m.bolts = append(m.bolts[:0], playerBolt, alienBolt)
	m.stepsSinceShot = 0

	m.Update(utils.StaticInput{}, frame)

	if m.Lives() != 2 {
		t.Errorf("lives = %d, want 2", m.Lives())
	}
	if len(m.Bolts()) != 0 {
		t.Errorf("bolts = %d, want 0", len(m.Bolts()))
	}
	if m.EntityManager().Exists(playerBolt) || m.EntityManager().Exists(alienBolt) {
		t.Error("all bolt entities should be cleaned up")
	}
	if _, ok := m.Ship(); ok {
		t.Error("ship should be absent after the hit")
	}
	if m.ShipState() != components.ShipPendingRespawn {
		t.Errorf("ship state = %s, want pending-respawn", m.ShipState())
	}
	for row := 0; row < 5; row++ {
		for col := 0; col < 10; col++ {
			id, _ := m.AlienAt(row, col)
			x, y := m.Config().AlienHome(row, col)
			if pos := position(t, m, id); pos.X != x || pos.Y != y {
				t.Fatalf("alien (%d, %d) at (%.1f, %.1f), want home (%.1f, %.1f)", row, col, pos.X, pos.Y, x, y)
			}
		}
	}
	if pos := position(t, m, moved); pos.X != homeX || pos.Y != homeY {
		t.Errorf("alien not reset to home")
	}

	// 缺席期间绘制不包含飞船
	canvas := &countingCanvas{}
	m.Draw(canvas)
	if canvas.patterns != 50 {
		t.Errorf("patterns drawn = %d, want 50 aliens without ship", canvas.patterns)
	}

	// 下一帧在初始位置重生，生命不再减少
	m.Update(utils.StaticInput{utils.KeyFire: true}, frame)
	ship, ok := m.Ship()
	if !ok {
		t.Fatal("ship should respawn on the next update")
	}
	if pos := position(t, m, ship); pos.X != 400 || pos.Y != 54 {
		t.Errorf("respawned ship at (%.1f, %.1f), want (400, 54)", pos.X, pos.Y)
	}
	if m.Lives() != 2 {
		t.Errorf("lives after respawn = %d, want 2", m.Lives())
	}
	if len(m.Bolts()) != 1 {
		t.Errorf("respawned ship should fire, bolts = %d", len(m.Bolts()))
	}
}

// 飞船被击毁只让阵列归位，加速效果在本波次内保持并继续累积
func TestWaveModule_SpeedSurvivesShipHit(t *testing.T) {
	m := newTestWave(t, nil, nil)
	m.destroyAlien(4, 0)

	before := alienSpeed(t, m, 0, 0)
	if math.Abs(before-0.97) > 1e-9 {
		t.Fatalf("speed after one kill = %f, want 0.97", before)
	}

	alienBolt, _ := entities.NewAlienBolt(m.EntityManager(), m.Config(), 400, 64)
	m.bolts = append(m.bolts, alienBolt)
	m.Update(utils.StaticInput{}, frame)

	if m.Lives() != 2 {
		t.Fatalf("lives = %d, want 2 after the hit", m.Lives())
	}
	for row := 0; row < 5; row++ {
		for col := 0; col < 10; col++ {
			if _, ok := m.AlienAt(row, col); !ok {
				continue
			}
			if got := alienSpeed(t, m, row, col); got != before {
				t.Fatalf("alien (%d, %d) speed = %f after ship hit, want %f", row, col, got, before)
			}
		}
	}

	m.destroyAlien(4, 1)
	if got := alienSpeed(t, m, 0, 0); math.Abs(got-0.97*0.97) > 1e-9 {
		t.Errorf("speed after second kill = %f, want %f", got, 0.97*0.97)
	}
}

func TestWaveModule_OwnBoltNeverHitsShip(t *testing.T) {
	m := newTestWave(t, nil, nil)
	bolt, _ := entities.NewPlayerBolt(m.EntityManager(), m.Config(), 400, 44)
	m.bolts = append(m.bolts, bolt)

	m.Update(utils.StaticInput{}, frame)

	if m.Lives() != 3 || m.ShipState() != components.ShipAlive {
		t.Errorf("lives=%d state=%s, want 3/alive", m.Lives(), m.ShipState())
	}
	if len(m.Bolts()) != 1 {
		t.Errorf("own bolt should keep flying, bolts = %d", len(m.Bolts()))
	}
}

func TestWaveModule_AlienBoltNeverHitsAlien(t *testing.T) {
	m := newTestWave(t, nil, nil)
	x, y := m.Config().AlienHome(2, 2)
	bolt, _ := entities.NewAlienBolt(m.EntityManager(), m.Config(), x, y+10)
	m.bolts = append(m.bolts, bolt)

	m.Update(utils.StaticInput{}, frame)

	if m.AliensRemaining() != 50 || m.Kills() != 0 {
		t.Errorf("alien bolt killed an alien: remaining=%d kills=%d", m.AliensRemaining(), m.Kills())
	}
}

func TestWaveModule_ShipStaysInField(t *testing.T) {
	m := newTestWave(t, nil, nil)
	ship, _ := m.Ship()
	half := m.Config().Ship.Width / 2

	for _, key := range []utils.Key{utils.KeyLeft, utils.KeyRight, utils.KeyLeft} {
		for i := 0; i < 150; i++ {
			m.Update(utils.StaticInput{key: true}, 0)
			x := position(t, m, ship).X
			if x < half || x > m.Config().Field.Width-half {
				t.Fatalf("ship x = %.1f left the field", x)
			}
		}
	}
}

func TestWaveModule_MarchReversesWithSingleDownStep(t *testing.T) {
	cfg := config.DefaultWaveConfig()
	cfg.Bolt.Rate = 1000 // 测试期间外星人不开火
	m := newTestWave(t, cfg, fixedRand{value: 999})
	probe, _ := m.AlienAt(0, 0)
	startY := position(t, m, probe).Y

	for i := 0; i < 38; i++ {
		m.Update(utils.StaticInput{}, 1.1)
	}
	if m.Direction() != systems.MarchRight || position(t, m, probe).Y != startY {
		t.Fatalf("formation should still march right at the same height")
	}

	m.Update(utils.StaticInput{}, 1.1)
	if m.Direction() != systems.MarchLeft {
		t.Errorf("direction = %s, want left", m.Direction())
	}
	if got := position(t, m, probe).Y; got != startY-cfg.Alien.VWalk {
		t.Errorf("y = %.1f, want %.1f", got, startY-cfg.Alien.VWalk)
	}

	// 贴着边界继续推进只会水平移动
	x := position(t, m, probe).X
	m.Update(utils.StaticInput{}, 1.1)
	if got := position(t, m, probe); got.Y != startY-cfg.Alien.VWalk || got.X != x-cfg.Alien.HWalk {
		t.Errorf("after reversal alien at (%.1f, %.1f), want (%.1f, %.1f)", got.X, got.Y, x-cfg.Alien.HWalk, startY-cfg.Alien.VWalk)
	}

	// 时间不足时不移动
	m.Update(utils.StaticInput{}, 0.5)
	m.Update(utils.StaticInput{}, 0.5)
	if got := position(t, m, probe).X; got != x-cfg.Alien.HWalk {
		t.Errorf("formation moved before its interval elapsed: x = %.1f", got)
	}
}

func TestWaveModule_AlienFiresAtThreshold(t *testing.T) {
	// 阈值 = 1 + 0 = 1：阵列走一步后开火
	m := newTestWave(t, nil, fixedRand{value: 0})

	m.Update(utils.StaticInput{}, frame)
	if len(m.Bolts()) != 0 {
		t.Fatalf("no alien should fire before the formation steps")
	}

	m.Update(utils.StaticInput{}, 1.1)
	bolts := m.Bolts()
	if len(bolts) != 1 {
		t.Fatalf("bolts = %d, want 1 alien bolt", len(bolts))
	}
	bolt, _ := ecs.GetComponent[*components.BoltComponent](m.EntityManager(), bolts[0])
	if !bolt.IsAlienBolt() {
		t.Error("bolt should be alien-owned")
	}
	if m.FireThreshold() != 0 {
		t.Errorf("next threshold = %d, want 0", m.FireThreshold())
	}
	if m.stepsSinceShot != 0 {
		t.Errorf("steps since shot = %d, want 0", m.stepsSinceShot)
	}

	// 场上已有外星人子弹时阵列步数不计
	m.Update(utils.StaticInput{}, 1.1)
	if m.stepsSinceShot != 0 {
		t.Errorf("steps counted while alien bolt in flight: %d", m.stepsSinceShot)
	}
	if len(m.Bolts()) != 1 {
		t.Errorf("only one alien bolt may be in flight, got %d", len(m.Bolts()))
	}
}

func TestWaveModule_EmptyColumnNeverFires(t *testing.T) {
	m := newTestWave(t, nil, rand.New(rand.NewSource(7)))
	for row := 0; row < 5; row++ {
		m.destroyAlien(row, 3)
	}

	formation := systems.NewFormationSystem(m.EntityManager(), m.Config())
	if !formation.IsColumnEmpty(m.aliens, 3) {
		t.Fatal("column 3 should be empty")
	}

	fire := systems.NewAlienFireSystem(m.EntityManager(), m.Config(), rand.New(rand.NewSource(11)), formation)
	for i := 0; i < 500; i++ {
		shooter := fire.PickShooter(m.aliens)
		alien, _ := ecs.GetComponent[*components.AlienComponent](m.EntityManager(), shooter)
		if alien.Col == 3 {
			t.Fatalf("empty column selected on pick %d", i)
		}
		if alien.Row != 4 {
			t.Fatalf("shooter row = %d, want lowest row 4", alien.Row)
		}
	}
}

func TestWaveModule_Status(t *testing.T) {
	t.Run("全部消灭", func(t *testing.T) {
		m := newTestWave(t, nil, nil)
		for row := 0; row < 5; row++ {
			for col := 0; col < 10; col++ {
				m.destroyAlien(row, col)
			}
		}
		// 空阵列时跳过行进和开火
		m.Update(utils.StaticInput{}, 2)
		if m.Status() != WaveCleared {
			t.Errorf("status = %s, want cleared", m.Status())
		}
	})

	t.Run("突破防线", func(t *testing.T) {
		m := newTestWave(t, nil, nil)
		id, _ := m.AlienAt(4, 4)
		position(t, m, id).Y = m.Config().Field.DefenseLine
		if m.Status() != WaveBreached {
			t.Errorf("status = %s, want breached", m.Status())
		}
	})

	t.Run("生命耗尽优先", func(t *testing.T) {
		m := newTestWave(t, nil, nil)
		id, _ := m.AlienAt(4, 4)
		position(t, m, id).Y = m.Config().Field.DefenseLine
		m.lives = 0
		if m.Status() != WaveLost {
			t.Errorf("status = %s, want lost", m.Status())
		}
	})

	t.Run("最后一条命被击毁", func(t *testing.T) {
		m := newTestWave(t, config.DefaultWaveConfig().WithLives(1), nil)
		bolt, _ := entities.NewAlienBolt(m.EntityManager(), m.Config(), 400, 64)
		m.bolts = append(m.bolts, bolt)

		m.Update(utils.StaticInput{}, frame)
		if m.Lives() != 0 || m.Status() != WaveLost {
			t.Errorf("lives=%d status=%s, want 0/lost", m.Lives(), m.Status())
		}
	})
}

func TestWaveModule_Draw(t *testing.T) {
	m := newTestWave(t, nil, nil)
	m.Update(utils.StaticInput{utils.KeyFire: true}, frame)

	canvas := &countingCanvas{}
	m.Draw(canvas)

	if canvas.patterns != 51 || canvas.lines != 1 || canvas.rects != 1 {
		t.Errorf("draw calls patterns=%d lines=%d rects=%d, want 51/1/1", canvas.patterns, canvas.lines, canvas.rects)
	}
}
