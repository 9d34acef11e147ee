package config

// 帧驱动与界面常量
const (
	// FixedDeltaTime ebiten 以 60 TPS 调用 Update，每帧固定步长
	FixedDeltaTime = 1.0 / 60.0

	// MaxDeltaTime 终端前端按实际耗时计算步长时的上限，避免卡顿后外星人瞬移
	MaxDeltaTime = 0.06

	// DefenseLineWidth 防线线宽
	DefenseLineWidth = 2.0

	// HUDMargin HUD 文本距窗口边缘的距离
	HUDMargin = 8

	// DefaultConfigPath 默认配置文件路径
	DefaultConfigPath = "data/wave.yaml"
)
