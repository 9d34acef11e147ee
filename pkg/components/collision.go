package components

// CollisionComponent 定义实体的碰撞检测边界框
// 边界框以实体位置为中心，用于子弹与飞船/外星人的碰撞检测
type CollisionComponent struct {
	Width  float64 // 碰撞盒宽度（像素）
	Height float64 // 碰撞盒高度（像素）
}

// Point 世界坐标中的一个点
type Point struct {
	X, Y float64
}

// Rect 以中心点和尺寸描述的轴对齐矩形
type Rect struct {
	CenterX, CenterY float64
	Width, Height    float64
}

// RectOf 由位置组件和碰撞组件构造矩形
func RectOf(pos *PositionComponent, col *CollisionComponent) Rect {
	return Rect{CenterX: pos.X, CenterY: pos.Y, Width: col.Width, Height: col.Height}
}

// Left 左边界X
func (r Rect) Left() float64 { return r.CenterX - r.Width/2 }

// Right 右边界X
func (r Rect) Right() float64 { return r.CenterX + r.Width/2 }

// Top 上边界Y（Y 轴向上）
func (r Rect) Top() float64 { return r.CenterY + r.Height/2 }

// Bottom 下边界Y
func (r Rect) Bottom() float64 { return r.CenterY - r.Height/2 }

// Contains 检查点是否落在矩形内（含边界）
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left() && p.X <= r.Right() &&
		p.Y >= r.Bottom() && p.Y <= r.Top()
}

// Corners 返回矩形的四个角点
// 顺序：左上、左下、右上、右下
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{X: r.Left(), Y: r.Top()},
		{X: r.Left(), Y: r.Bottom()},
		{X: r.Right(), Y: r.Top()},
		{X: r.Right(), Y: r.Bottom()},
	}
}

// ContainsAnyCorner 检查 other 的任一角点是否落在 r 内
// 子弹远小于飞船和外星人，因此用子弹四角判定即可
func (r Rect) ContainsAnyCorner(other Rect) bool {
	for _, corner := range other.Corners() {
		if r.Contains(corner) {
			return true
		}
	}
	return false
}
