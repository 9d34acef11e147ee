package components

import "image/color"

// SpriteComponent 存储实体的视觉表现
//
// Pattern 为像素图案名（见 config.SpritePatterns），为空时按纯色矩形绘制。
type SpriteComponent struct {
	Pattern string
	Color   color.RGBA
}
