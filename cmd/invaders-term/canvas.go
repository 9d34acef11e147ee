package main

import (
	"image/color"
	"math"

	"github.com/decker502/invaders/pkg/components"
	"github.com/decker502/invaders/pkg/utils"
	"github.com/gdamore/tcell/v2"
)

// termCanvas 把世界坐标绘制命令映射到终端字符格
// 第 0 行留给 HUD，游戏区域从第 top 行开始
type termCanvas struct {
	screen                  tcell.Screen
	fieldWidth, fieldHeight float64
	top                     int
	cols, rows              int
}

func newTermCanvas(screen tcell.Screen, fieldWidth, fieldHeight float64, top int) *termCanvas {
	c := &termCanvas{
		screen:      screen,
		fieldWidth:  fieldWidth,
		fieldHeight: fieldHeight,
		top:         top,
	}
	c.resize()
	return c
}

// resize 按当前终端尺寸更新游戏区域的字符格数
func (c *termCanvas) resize() {
	w, h := c.screen.Size()
	c.cols = max(w, 1)
	c.rows = max(h-c.top, 1)
}

func (c *termCanvas) cell(x, y float64) (col, row int) {
	return utils.WorldToCell(x, y, c.fieldWidth, c.fieldHeight, c.cols, c.rows)
}

// bounds 返回矩形覆盖的字符格范围（含两端）
func (c *termCanvas) bounds(r components.Rect) (c0, r0, c1, r1 int) {
	c0, r0 = c.cell(r.Left(), r.Top())
	c1, r1 = c.cell(r.Right(), r.Bottom())
	return c0, r0, c1, r1
}

func (c *termCanvas) set(col, row int, ch rune, clr color.Color) {
	style := tcell.StyleDefault.Foreground(tcell.FromImageColor(clr))
	c.screen.SetContent(col, row+c.top, ch, nil, style)
}

// FillRect 用实心方块填满矩形覆盖的字符格
func (c *termCanvas) FillRect(r components.Rect, clr color.Color) {
	c0, r0, c1, r1 := c.bounds(r)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			c.set(col, row, '█', clr)
		}
	}
}

// StrokeLine 按较长轴逐格绘制线段，线宽在终端中忽略
func (c *termCanvas) StrokeLine(x0, y0, x1, y1, _ float64, clr color.Color) {
	col0, row0 := c.cell(x0, y0)
	col1, row1 := c.cell(x1, y1)

	ch := '─'
	if col0 == col1 {
		ch = '│'
	}

	steps := max(abs(col1-col0), abs(row1-row0))
	for i := 0; i <= steps; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		col := col0 + int(math.Round(t*float64(col1-col0)))
		row := row0 + int(math.Round(t*float64(row1-row0)))
		c.set(col, row, ch, clr)
	}
}

// DrawPattern 把图案缩到矩形覆盖的字符格上
// 字符格对应的图案区域内只要有一个像素点亮就绘制该格
func (c *termCanvas) DrawPattern(r components.Rect, pattern []string, clr color.Color) {
	if len(pattern) == 0 || len(pattern[0]) == 0 {
		c.FillRect(r, clr)
		return
	}

	c0, r0, c1, r1 := c.bounds(r)
	nc, nr := c1-c0+1, r1-r0+1
	pw, ph := len(pattern[0]), len(pattern)

	for row := 0; row < nr; row++ {
		py0, py1 := span(row, nr, ph)
		for col := 0; col < nc; col++ {
			px0, px1 := span(col, nc, pw)
			if lit(pattern, px0, px1, py0, py1) {
				c.set(c0+col, r0+row, '█', clr)
			}
		}
	}
}

// span 第 i 个（共 n 个）字符格对应的图案区间 [from, to)，至少包含一个像素
func span(i, n, size int) (from, to int) {
	from = i * size / n
	to = (i + 1) * size / n
	if to <= from {
		to = from + 1
	}
	return from, min(to, size)
}

func lit(pattern []string, x0, x1, y0, y1 int) bool {
	for y := y0; y < y1; y++ {
		line := pattern[y]
		for x := x0; x < x1 && x < len(line); x++ {
			if line[x] == '#' {
				return true
			}
		}
	}
	return false
}

// drawText 在指定行写入一行文本
func drawText(screen tcell.Screen, col, row int, msg string, style tcell.Style) {
	for i, ch := range []rune(msg) {
		screen.SetContent(col+i, row, ch, nil, style)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
