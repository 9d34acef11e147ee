package utils

import "github.com/decker502/invaders/pkg/components"

// WorldToScreenY 将世界坐标Y（向上）转换为屏幕坐标Y（向下）
func WorldToScreenY(worldY, fieldHeight float64) float64 {
	return fieldHeight - worldY
}

// RectToScreen 将世界坐标矩形转换为屏幕坐标的左上角和尺寸
func RectToScreen(r components.Rect, fieldHeight float64) (x, y, w, h float64) {
	return r.Left(), WorldToScreenY(r.Top(), fieldHeight), r.Width, r.Height
}

// WorldToCell 将世界坐标映射到字符网格坐标
//
// 参数:
//   - worldX, worldY: 世界坐标
//   - fieldWidth, fieldHeight: 游戏区域尺寸
//   - cols, rows: 字符网格尺寸
//
// 返回:
//   - col, row: 字符坐标，已夹到 [0, cols-1] / [0, rows-1]
func WorldToCell(worldX, worldY, fieldWidth, fieldHeight float64, cols, rows int) (col, row int) {
	col = int(worldX / fieldWidth * float64(cols))
	row = int(WorldToScreenY(worldY, fieldHeight) / fieldHeight * float64(rows))

	if col < 0 {
		col = 0
	} else if col >= cols {
		col = cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= rows {
		row = rows - 1
	}
	return col, row
}
