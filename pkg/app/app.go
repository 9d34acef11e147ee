// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/decker502/invaders/pkg/config"
	"github.com/decker502/invaders/pkg/game"
	"github.com/decker502/invaders/pkg/scenes"
	"github.com/decker502/invaders/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 波次配置文件路径，为空时使用 DefaultConfig
	ConfigPath string
	// DefaultConfig 内置的 YAML 配置（通常来自嵌入的 data/wave.yaml），为空时使用代码默认值
	DefaultConfig []byte
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	waveConfig               *config.WaveConfig
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	waveConfig, err := LoadConfig(cfg.ConfigPath, cfg.DefaultConfig)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	log.Printf("[App] 随机种子: %d", seed)

	input := newInput(waveConfig.Field.Width)

	// 创建场景管理器
	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func() game.Scene {
		scene, err := scenes.NewGameScene(sceneManager, waveConfig, rng, input)
		if err != nil {
			log.Printf("[App] 错误: 无法创建游戏场景: %v", err)
			return nil
		}
		return scene
	})

	gameScene, err := scenes.NewGameScene(sceneManager, waveConfig, rng, input)
	if err != nil {
		return nil, fmt.Errorf("游戏场景创建失败: %w", err)
	}
	sceneManager.SwitchTo(gameScene)

	return &App{
		sceneManager: sceneManager,
		waveConfig:   waveConfig,
		verbose:      cfg.Verbose,
	}, nil
}

// LoadConfig 按优先级加载波次配置：配置文件 > 内置 YAML > 代码默认值
func LoadConfig(path string, embedded []byte) (*config.WaveConfig, error) {
	switch {
	case path != "":
		waveConfig, err := config.LoadWaveConfig(path)
		if err != nil {
			return nil, fmt.Errorf("配置加载失败: %w", err)
		}
		log.Printf("[Config] 加载配置文件: %s", path)
		return waveConfig, nil
	case len(embedded) > 0:
		waveConfig, err := config.ParseWaveConfig(embedded)
		if err != nil {
			return nil, fmt.Errorf("内置配置解析失败: %w", err)
		}
		log.Printf("[Config] 使用内置配置")
		return waveConfig, nil
	default:
		log.Printf("[Config] 使用默认配置")
		return config.DefaultWaveConfig(), nil
	}
}

// newInput 桌面端使用键盘，移动端额外接受触屏
func newInput(screenWidth float64) utils.InputSource {
	keyboard := utils.NewKeyboardInput(nil)
	if !utils.IsMobile() {
		return keyboard
	}
	log.Printf("[App] 启用触屏输入")
	return utils.AnyInput{keyboard, utils.NewTouchInput(screenWidth)}
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			w, h := a.Layout(0, 0)
			ebiten.SetWindowSize(w, h)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", w, h)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	a.sceneManager.Update(config.FixedDeltaTime)
	return nil
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时左右两边填充黑色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	// 像素风格图案使用最近邻缩放
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸，与游戏区域一致
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(a.waveConfig.Field.Width), int(a.waveConfig.Field.Height)
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// WaveConfig 返回生效的波次配置
func (a *App) WaveConfig() *config.WaveConfig {
	return a.waveConfig
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
