package components

// BoltOwner 子弹归属
type BoltOwner int

const (
	// BoltOwnerPlayer 玩家发射，向上飞行，只能击中外星人
	BoltOwnerPlayer BoltOwner = iota
	// BoltOwnerAlien 外星人发射，向下飞行，只能击中飞船
	BoltOwnerAlien
)

// String 返回归属名称（用于日志）
func (o BoltOwner) String() string {
	if o == BoltOwnerPlayer {
		return "player"
	}
	return "alien"
}

// BoltComponent 标识激光子弹实体
// 速度在创建后不可修改
type BoltComponent struct {
	owner    BoltOwner
	velocity float64
}

// NewBoltComponent 创建子弹组件
func NewBoltComponent(owner BoltOwner, velocity float64) *BoltComponent {
	return &BoltComponent{owner: owner, velocity: velocity}
}

// Owner 返回子弹归属
func (b *BoltComponent) Owner() BoltOwner { return b.owner }

// Velocity 返回每帧移动的像素数（标量）
func (b *BoltComponent) Velocity() float64 { return b.velocity }

// IsPlayerBolt 是否为玩家子弹
func (b *BoltComponent) IsPlayerBolt() bool { return b.owner == BoltOwnerPlayer }

// IsAlienBolt 是否为外星人子弹
func (b *BoltComponent) IsAlienBolt() bool { return b.owner == BoltOwnerAlien }

// Direction 返回竖直方向：玩家子弹 +1（向上），外星人子弹 -1（向下）
func (b *BoltComponent) Direction() float64 {
	if b.owner == BoltOwnerPlayer {
		return 1
	}
	return -1
}
