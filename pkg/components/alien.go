package components

// AlienComponent 存储外星人在阵列中的位置和行进速度
type AlienComponent struct {
	Row int // 阵列行索引（0 为最上一行）
	Col int // 阵列列索引（0 为最左一列）

	// HomeX, HomeY 阵列初始坐标，飞船被击毁时外星人回到这里
	HomeX float64
	HomeY float64

	// speed 每走一步所需的秒数，越小越快，始终 > 0
	speed float64
}

// NewAlienComponent 创建外星人组件
func NewAlienComponent(row, col int, homeX, homeY, speed float64) *AlienComponent {
	return &AlienComponent{
		Row:   row,
		Col:   col,
		HomeX: homeX,
		HomeY: homeY,
		speed: speed,
	}
}

// Speed 返回当前每步间隔（秒）
func (a *AlienComponent) Speed() float64 {
	return a.speed
}

// ApplySpeedFactor 将速度乘以 factor，结果不低于 floor
//
// factor 在 (0, 1] 之间时外星人变快。floor <= 0 表示不设下限。
func (a *AlienComponent) ApplySpeedFactor(factor, floor float64) {
	a.speed *= factor
	if floor > 0 && a.speed < floor {
		a.speed = floor
	}
}
