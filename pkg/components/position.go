package components

// PositionComponent 存储实体中心点的世界坐标
// 世界坐标原点在游戏区域左下角，Y 轴向上（玩家子弹 Y 增大，外星人子弹 Y 减小）
type PositionComponent struct {
	X float64
	Y float64
}
