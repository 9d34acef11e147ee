package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WaveConfig 单个波次的全部玩法常量
//
// 所有尺寸单位为像素，坐标系原点在游戏区域左下角，Y 轴向上。
// 默认值见 DefaultWaveConfig()，与 data/wave.yaml 保持一致。
//
// 配置文件位置: data/wave.yaml
type WaveConfig struct {
	Field FieldConfig `yaml:"field"`
	Ship  ShipConfig  `yaml:"ship"`
	Alien AlienConfig `yaml:"alien"`
	Bolt  BoltConfig  `yaml:"bolt"`
}

// FieldConfig 游戏区域配置
type FieldConfig struct {
	Width  float64 `yaml:"width"`  // 游戏区域宽度
	Height float64 `yaml:"height"` // 游戏区域高度

	// DefenseLine 防线高度，外星人阵列下沿触及防线即判负
	DefenseLine float64 `yaml:"defenseLine"`
}

// ShipConfig 玩家飞船配置
type ShipConfig struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Bottom   float64 `yaml:"bottom"`   // 飞船下沿距区域底部的距离
	Movement float64 `yaml:"movement"` // 每帧移动像素
	Lives    int     `yaml:"lives"`    // 初始生命数
}

// AlienConfig 外星人阵列配置
type AlienConfig struct {
	Rows    int     `yaml:"rows"`    // 阵列行数
	Columns int     `yaml:"columns"` // 每行外星人数量
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	HSep    float64 `yaml:"hSep"`    // 水平间距
	VSep    float64 `yaml:"vSep"`    // 竖直间距
	Ceiling float64 `yaml:"ceiling"` // 阵列顶部距区域顶部的距离
	HWalk   float64 `yaml:"hWalk"`   // 每步水平移动距离
	VWalk   float64 `yaml:"vWalk"`   // 触边时下移距离

	// Speed 初始每步间隔（秒），越小越快
	Speed float64 `yaml:"speed"`
	// SpeedUp 每消灭一个外星人，所有幸存者的速度乘数
	SpeedUp float64 `yaml:"speedUp"`
	// MinSpeed 每步间隔下限（秒），0 表示不设下限
	MinSpeed float64 `yaml:"minSpeed"`
}

// BoltConfig 激光子弹配置
type BoltConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"` // 每帧移动像素

	// Rate 外星人开火间隔上限（阵列步数），实际间隔在 [0, Rate] 内随机
	Rate int `yaml:"rate"`
}

// DefaultWaveConfig 返回默认配置
func DefaultWaveConfig() *WaveConfig {
	return &WaveConfig{
		Field: FieldConfig{
			Width:       800,
			Height:      700,
			DefenseLine: 100,
		},
		Ship: ShipConfig{
			Width:    44,
			Height:   44,
			Bottom:   32,
			Movement: 5,
			Lives:    3,
		},
		Alien: AlienConfig{
			Rows:     5,
			Columns:  10,
			Width:    33,
			Height:   33,
			HSep:     16,
			VSep:     16,
			Ceiling:  100,
			HWalk:    8,
			VWalk:    16,
			Speed:    1.0,
			SpeedUp:  0.97,
			MinSpeed: 0.05,
		},
		Bolt: BoltConfig{
			Width:  4,
			Height: 16,
			Speed:  10,
			Rate:   5,
		},
	}
}

// ParseWaveConfig 解析 YAML 配置
//
// 未出现在 YAML 中的字段保留默认值，因此配置文件只需写出要覆盖的项。
func ParseWaveConfig(data []byte) (*WaveConfig, error) {
	cfg := DefaultWaveConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse wave config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid wave config: %w", err)
	}

	return cfg, nil
}

// LoadWaveConfig 从指定路径加载 YAML 格式的波次配置
//
// 参数:
//   - path: 配置文件路径（如 "data/wave.yaml"）
//
// 返回:
//   - *WaveConfig: 加载并验证后的配置
//   - error: 读取、解析或验证失败时返回错误
func LoadWaveConfig(path string) (*WaveConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read wave config: %w", err)
	}
	return ParseWaveConfig(data)
}

// Validate 验证配置有效性
//
// 检查：
//   - 所有尺寸、速度为正
//   - 速度乘数在 (0, 1] 之间
//   - 初始阵列完全位于游戏区域内且在防线之上
//   - 飞船能放进游戏区域
func (c *WaveConfig) Validate() error {
	positives := []struct {
		name  string
		value float64
	}{
		{"field.width", c.Field.Width},
		{"field.height", c.Field.Height},
		{"ship.width", c.Ship.Width},
		{"ship.height", c.Ship.Height},
		{"ship.movement", c.Ship.Movement},
		{"alien.width", c.Alien.Width},
		{"alien.height", c.Alien.Height},
		{"alien.hWalk", c.Alien.HWalk},
		{"alien.vWalk", c.Alien.VWalk},
		{"alien.speed", c.Alien.Speed},
		{"bolt.width", c.Bolt.Width},
		{"bolt.height", c.Bolt.Height},
		{"bolt.speed", c.Bolt.Speed},
	}
	for _, p := range positives {
		if p.value <= 0 {
			return fmt.Errorf("%s must be > 0, got %.2f", p.name, p.value)
		}
	}

	if c.Alien.Rows <= 0 || c.Alien.Columns <= 0 {
		return fmt.Errorf("alien grid must be at least 1x1, got %dx%d", c.Alien.Rows, c.Alien.Columns)
	}
	if c.Alien.SpeedUp <= 0 || c.Alien.SpeedUp > 1 {
		return fmt.Errorf("alien.speedUp must be in (0, 1], got %.3f", c.Alien.SpeedUp)
	}
	if c.Alien.MinSpeed < 0 || c.Alien.MinSpeed > c.Alien.Speed {
		return fmt.Errorf("alien.minSpeed must be in [0, speed], got %.3f", c.Alien.MinSpeed)
	}
	if c.Alien.HSep < 0 || c.Alien.VSep < 0 || c.Alien.Ceiling < 0 {
		return fmt.Errorf("alien separations and ceiling must be >= 0")
	}
	if c.Ship.Lives < 0 {
		return fmt.Errorf("ship.lives must be >= 0, got %d", c.Ship.Lives)
	}
	if c.Ship.Bottom < 0 {
		return fmt.Errorf("ship.bottom must be >= 0, got %.2f", c.Ship.Bottom)
	}
	if c.Bolt.Rate < 0 {
		return fmt.Errorf("bolt.rate must be >= 0, got %d", c.Bolt.Rate)
	}

	if c.Ship.Width >= c.Field.Width {
		return fmt.Errorf("ship width %.1f does not fit field width %.1f", c.Ship.Width, c.Field.Width)
	}

	// 最右列外星人的右边界不能越界
	rightX, _ := c.AlienHome(0, c.Alien.Columns-1)
	if rightX+c.Alien.Width/2 > c.Field.Width {
		return fmt.Errorf("alien formation too wide: right edge %.1f > field width %.1f",
			rightX+c.Alien.Width/2, c.Field.Width)
	}

	// 最下一行外星人必须在防线之上
	_, bottomY := c.AlienHome(c.Alien.Rows-1, 0)
	if bottomY-c.Alien.Height/2 <= c.Field.DefenseLine {
		return fmt.Errorf("alien formation starts below defense line: bottom edge %.1f <= %.1f",
			bottomY-c.Alien.Height/2, c.Field.DefenseLine)
	}

	return nil
}

// AlienHome 计算阵列中 (row, col) 格子的初始中心坐标
//
// 行 0 位于最上方，列 0 位于最左侧。
func (c *WaveConfig) AlienHome(row, col int) (x, y float64) {
	a := c.Alien
	x = float64(col+1)*(a.HSep+a.Width/2) + float64(col)*a.Width/2
	y = c.Field.Height - a.Ceiling - a.Height/2 - float64(row)*(a.Height+a.VSep)
	return x, y
}

// ShipStart 返回飞船的初始（及重生）中心坐标
func (c *WaveConfig) ShipStart() (x, y float64) {
	return c.Field.Width / 2, c.Ship.Bottom + c.Ship.Height/2
}

// WithLives 返回生命数被替换后的配置副本
// 用于进入下一波时继承剩余生命
func (c *WaveConfig) WithLives(lives int) *WaveConfig {
	next := *c
	next.Ship.Lives = lives
	return &next
}
