// invaders-term 在终端中运行的外星人入侵
//
// 用法:
//
//	go run ./cmd/invaders-term [-config data/wave.yaml] [-seed 42] [-log invaders.log]
//
// 方向键或 A/D 移动，空格/上方向键/W 开火，P 暂停，Enter 重新开始，Esc/Q 退出。
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/decker502/invaders/pkg/config"
	"github.com/decker502/invaders/pkg/modules"
	"github.com/gdamore/tcell/v2"
)

var (
	configPath = flag.String("config", "", "波次配置文件路径（默认使用内置默认值）")
	seed       = flag.Int64("seed", 0, "随机种子（0 表示使用当前时间）")
	logPath    = flag.String("log", "", "日志文件路径（默认不输出日志）")
	holdWindow = flag.Duration("hold", 200*time.Millisecond, "按键最后一次上报后仍视为按住的时长")
)

// termGame 终端前端
type termGame struct {
	screen  tcell.Screen
	session *modules.SessionModule
	keys    *heldKeys
	canvas  *termCanvas
}

func newTermGame(screen tcell.Screen, session *modules.SessionModule, hold time.Duration) *termGame {
	cfg := session.Config()
	return &termGame{
		screen:  screen,
		session: session,
		keys:    newHeldKeys(hold),
		canvas:  newTermCanvas(screen, cfg.Field.Width, cfg.Field.Height, 1),
	}
}

// handleEvent 处理一个终端事件，返回 false 表示退出
func (g *termGame) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		key, ok, cmd := translateKey(ev)
		if ok {
			g.keys.Press(key)
			return true
		}
		switch cmd {
		case cmdQuit:
			return false
		case cmdPause:
			g.session.TogglePause()
			g.keys.Reset()
		case cmdRestart:
			if g.session.IsGameOver() {
				if err := g.session.Restart(); err != nil {
					log.Printf("[Term] 错误: 重新开始失败: %v", err)
				}
				g.keys.Reset()
			}
		}
	case *tcell.EventResize:
		g.screen.Sync()
		g.canvas.resize()
	}
	return true
}

// tick 推进一帧并重绘
func (g *termGame) tick(dt float64) {
	g.session.Update(g.keys, min(dt, config.MaxDeltaTime))
	g.draw()
}

func (g *termGame) draw() {
	g.screen.Clear()

	g.session.Draw(g.canvas)

	hud := tcell.StyleDefault.Foreground(tcell.FromImageColor(config.HUDTextColor))
	drawText(g.screen, 0, 0, g.session.HUDText(), hud)

	if banner := g.session.BannerText(); banner != "" {
		w, h := g.screen.Size()
		col := max((w-len(banner))/2, 0)
		drawText(g.screen, col, h/2, banner, hud.Bold(true))
	}

	g.screen.Show()
}

// pollEvents 把终端事件转发到 events，直到屏幕关闭或 done 被关闭
// 屏幕关闭时关闭 events
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// run 主循环：事件轮询在单独的 goroutine 中，游戏状态只在本 goroutine 中修改
func (g *termGame) run() {
	fixedDelta := config.FixedDeltaTime
	ticker := time.NewTicker(time.Duration(fixedDelta * float64(time.Second)))
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)

	eventChan := make(chan tcell.Event, 100)
	go pollEvents(g.screen, eventChan, done)

	last := time.Now()
	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !g.handleEvent(ev) {
				return
			}

		case now := <-ticker.C:
			g.tick(now.Sub(last).Seconds())
			last = now
		}
	}
}

func setupLogging(path string) (io.Closer, error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return nil, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	return f, nil
}

func loadConfig(path string) (*config.WaveConfig, error) {
	if path == "" {
		return config.DefaultWaveConfig(), nil
	}
	return config.LoadWaveConfig(path)
}

func main() {
	flag.Parse()

	closer, err := setupLogging(*logPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if closer != nil {
		defer closer.Close()
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
		os.Exit(1)
	}

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	log.Printf("[Term] 随机种子: %d", s)

	session, err := modules.NewSessionModule(cfg, rand.New(rand.NewSource(s)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "游戏初始化失败: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "终端初始化失败: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "终端初始化失败: %v\n", err)
		os.Exit(1)
	}

	game := newTermGame(screen, session, *holdWindow)
	game.run()
	screen.Fini()
}
