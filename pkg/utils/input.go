// Package utils 提供输入、坐标转换和绘制等通用工具
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Key 逻辑按键
// 玩法代码只关心逻辑按键，具体物理按键由各前端映射
type Key int

const (
	// KeyLeft 飞船左移
	KeyLeft Key = iota
	// KeyRight 飞船右移
	KeyRight
	// KeyFire 开火
	KeyFire
)

// String 返回按键名称
func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyFire:
		return "fire"
	default:
		return "unknown"
	}
}

// InputSource 可轮询的输入源
// IsKeyDown 返回逻辑按键当前是否处于按下状态
type InputSource interface {
	IsKeyDown(key Key) bool
}

// DefaultKeyBindings 桌面端默认按键映射
// 开火同时接受空格和上方向键
var DefaultKeyBindings = map[Key][]ebiten.Key{
	KeyLeft:  {ebiten.KeyArrowLeft, ebiten.KeyA},
	KeyRight: {ebiten.KeyArrowRight, ebiten.KeyD},
	KeyFire:  {ebiten.KeySpace, ebiten.KeyArrowUp, ebiten.KeyW},
}

// KeyboardInput 基于 ebiten 键盘轮询的输入源
type KeyboardInput struct {
	bindings map[Key][]ebiten.Key
}

// NewKeyboardInput 创建键盘输入源
// bindings 为 nil 时使用 DefaultKeyBindings
func NewKeyboardInput(bindings map[Key][]ebiten.Key) *KeyboardInput {
	if bindings == nil {
		bindings = DefaultKeyBindings
	}
	return &KeyboardInput{bindings: bindings}
}

// IsKeyDown 任一绑定的物理按键按下即视为逻辑按键按下
func (in *KeyboardInput) IsKeyDown(key Key) bool {
	for _, k := range in.bindings[key] {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

// IsKeyJustPressed 检查物理按键是否在本帧刚按下
// 用于暂停、重新开始等一次性操作
func IsKeyJustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}

// StaticInput 固定按键状态的输入源
// 用于测试和脚本化演示
type StaticInput map[Key]bool

// IsKeyDown 返回预设的按键状态
func (s StaticInput) IsKeyDown(key Key) bool {
	return s[key]
}
