package components

import "testing"

func TestRectContains(t *testing.T) {
	r := Rect{CenterX: 100, CenterY: 50, Width: 40, Height: 20}

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"中心点", Point{100, 50}, true},
		{"左边界", Point{80, 50}, true},
		{"右上角", Point{120, 60}, true},
		{"右侧外", Point{120.01, 50}, false},
		{"下方外", Point{100, 39.9}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := RectOf(&PositionComponent{X: 10, Y: 20}, &CollisionComponent{Width: 4, Height: 16})

	if r.Left() != 8 || r.Right() != 12 {
		t.Errorf("Expected horizontal edges (8, 12), got (%v, %v)", r.Left(), r.Right())
	}
	if r.Bottom() != 12 || r.Top() != 28 {
		t.Errorf("Expected vertical edges (12, 28), got (%v, %v)", r.Bottom(), r.Top())
	}
}

func TestContainsAnyCorner(t *testing.T) {
	target := Rect{CenterX: 0, CenterY: 0, Width: 30, Height: 30}

	tests := []struct {
		name string
		bolt Rect
		want bool
	}{
		{"子弹完全在内部", Rect{CenterX: 0, CenterY: 0, Width: 4, Height: 16}, true},
		{"子弹上端刚进入", Rect{CenterX: 0, CenterY: -22, Width: 4, Height: 16}, true},
		{"子弹在下方", Rect{CenterX: 0, CenterY: -24, Width: 4, Height: 16}, false},
		{"子弹擦过右侧", Rect{CenterX: 16, CenterY: 0, Width: 4, Height: 16}, true},
		{"子弹在右侧外", Rect{CenterX: 18, CenterY: 0, Width: 4, Height: 16}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := target.ContainsAnyCorner(tt.bolt); got != tt.want {
				t.Errorf("ContainsAnyCorner() = %v, want %v", got, tt.want)
			}
		})
	}
}
