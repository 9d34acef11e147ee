package main

import (
	"time"

	"github.com/decker502/invaders/pkg/utils"
	"github.com/gdamore/tcell/v2"
)

// heldKeys 终端输入源
//
// 终端只上报按下（及自动重复），不上报松开，
// 因此按键在最后一次上报后的 window 时间内视为仍按住。
type heldKeys struct {
	window   time.Duration
	now      func() time.Time
	lastSeen map[utils.Key]time.Time
}

func newHeldKeys(window time.Duration) *heldKeys {
	return &heldKeys{
		window:   window,
		now:      time.Now,
		lastSeen: make(map[utils.Key]time.Time),
	}
}

// Press 记录一次按键上报
func (h *heldKeys) Press(key utils.Key) {
	h.lastSeen[key] = h.now()
}

// Reset 清空所有按键（暂停、重新开始时调用）
func (h *heldKeys) Reset() {
	clear(h.lastSeen)
}

// IsKeyDown 实现 utils.InputSource
func (h *heldKeys) IsKeyDown(key utils.Key) bool {
	t, ok := h.lastSeen[key]
	return ok && h.now().Sub(t) <= h.window
}

// command 非移动类的按键命令
type command int

const (
	cmdNone command = iota
	cmdQuit
	cmdPause
	cmdRestart
)

// translateKey 把 tcell 按键事件映射为逻辑按键或命令
// 返回的 ok 表示事件对应一个逻辑按键
func translateKey(ev *tcell.EventKey) (key utils.Key, ok bool, cmd command) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return 0, false, cmdQuit
	case tcell.KeyEnter:
		return 0, false, cmdRestart
	case tcell.KeyLeft:
		return utils.KeyLeft, true, cmdNone
	case tcell.KeyRight:
		return utils.KeyRight, true, cmdNone
	case tcell.KeyUp:
		return utils.KeyFire, true, cmdNone
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'A':
			return utils.KeyLeft, true, cmdNone
		case 'd', 'D':
			return utils.KeyRight, true, cmdNone
		case ' ', 'w', 'W':
			return utils.KeyFire, true, cmdNone
		case 'p', 'P':
			return 0, false, cmdPause
		case 'q', 'Q':
			return 0, false, cmdQuit
		}
	}
	return 0, false, cmdNone
}
