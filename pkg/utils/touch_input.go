package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// TouchInput 触屏输入源
// 屏幕按宽度三等分：左侧按住左移，右侧按住右移，中间按住开火
type TouchInput struct {
	screenWidth float64
	touches     []ebiten.TouchID
}

// NewTouchInput 创建触屏输入源
// screenWidth 为逻辑屏幕宽度（与 Layout 返回值一致）
func NewTouchInput(screenWidth float64) *TouchInput {
	return &TouchInput{screenWidth: screenWidth}
}

// IsKeyDown 任一触点落在按键对应区域即视为按下
func (in *TouchInput) IsKeyDown(key Key) bool {
	in.touches = ebiten.AppendTouchIDs(in.touches[:0])
	for _, id := range in.touches {
		x, _ := ebiten.TouchPosition(id)
		if TouchZone(float64(x), in.screenWidth) == key {
			return true
		}
	}
	return false
}

// TouchZone 返回屏幕横坐标 x 所在区域对应的逻辑按键
func TouchZone(x, screenWidth float64) Key {
	switch {
	case x < screenWidth/3:
		return KeyLeft
	case x >= screenWidth*2/3:
		return KeyRight
	default:
		return KeyFire
	}
}

// AnyInput 组合多个输入源，任一输入源按下即视为按下
type AnyInput []InputSource

// IsKeyDown 依次查询各输入源
func (in AnyInput) IsKeyDown(key Key) bool {
	for _, src := range in {
		if src != nil && src.IsKeyDown(key) {
			return true
		}
	}
	return false
}

// IsTouchJustPressed 检查本帧是否有新的触摸点按下
// 触屏设备没有 Enter 键，游戏结束后用点击重新开始
func IsTouchJustPressed() bool {
	return len(inpututil.AppendJustPressedTouchIDs(nil)) > 0
}
