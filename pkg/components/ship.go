package components

// ShipState 飞船生命周期状态
//
// 状态流转：
//
//	ShipAlive --被外星人子弹击中--> ShipDestroyed --本帧结束--> ShipPendingRespawn --下一帧开始--> ShipAlive
type ShipState int

const (
	// ShipAlive 飞船存在，可移动和开火
	ShipAlive ShipState = iota
	// ShipDestroyed 飞船在本帧被击毁，本帧剩余逻辑不再引用飞船
	ShipDestroyed
	// ShipPendingRespawn 飞船缺席，等待下一次 Update 在初始位置重生
	ShipPendingRespawn
)

// String 返回状态名称（用于日志）
func (s ShipState) String() string {
	switch s {
	case ShipAlive:
		return "alive"
	case ShipDestroyed:
		return "destroyed"
	case ShipPendingRespawn:
		return "pending-respawn"
	default:
		return "unknown"
	}
}

// ShipComponent 标识玩家飞船实体
type ShipComponent struct {
	// Movement 每帧按键时水平移动的像素数
	Movement float64
}
