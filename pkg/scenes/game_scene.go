package scenes

import (
	"fmt"
	"log"

	"github.com/decker502/invaders/pkg/config"
	"github.com/decker502/invaders/pkg/game"
	"github.com/decker502/invaders/pkg/modules"
	"github.com/decker502/invaders/pkg/systems"
	"github.com/decker502/invaders/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// GameScene 游戏主场景
//
// 职责：
//   - 驱动一局游戏（SessionModule）
//   - P 键暂停/继续，游戏结束后按 Enter 或点击屏幕重新开始
//   - 绘制波次和 HUD（生命、击杀数、波次、状态横幅）
type GameScene struct {
	sceneManager *game.SceneManager
	session      *modules.SessionModule
	input        utils.InputSource
	fieldHeight  float64
	fieldWidth   float64

	// justPressed 检查物理按键是否本帧刚按下（测试中可替换）
	justPressed func(ebiten.Key) bool
	// justTapped 检查本帧是否有新的触摸（测试中可替换）
	justTapped func() bool

	face text.Face
}

// NewGameScene 创建游戏场景并开始第一波
//
// 参数:
//   - sm: 场景管理器，游戏结束后按 Enter 时通过它重新开始（可为 nil，此时在本场景内重置）
//   - cfg: 波次配置（第一波的生命数即初始生命）
//   - rng: 随机数来源
//   - input: 飞船控制输入源
func NewGameScene(sm *game.SceneManager, cfg *config.WaveConfig, rng systems.RandSource, input utils.InputSource) (*GameScene, error) {
	if input == nil {
		return nil, fmt.Errorf("input source cannot be nil")
	}

	session, err := modules.NewSessionModule(cfg, rng)
	if err != nil {
		return nil, err
	}

	log.Printf("[GameScene] 游戏开始")
	return &GameScene{
		sceneManager: sm,
		session:      session,
		input:        input,
		fieldWidth:   cfg.Field.Width,
		fieldHeight:  cfg.Field.Height,
		justPressed:  utils.IsKeyJustPressed,
		justTapped:   utils.IsTouchJustPressed,
		face:         text.NewGoXFace(basicfont.Face7x13),
	}, nil
}

// Update 更新场景逻辑
func (s *GameScene) Update(deltaTime float64) {
	if s.session.IsGameOver() {
		if s.justPressed(ebiten.KeyEnter) || s.justTapped() {
			s.restart()
		}
		return
	}

	if s.justPressed(ebiten.KeyP) {
		s.session.TogglePause()
	}

	s.session.Update(s.input, deltaTime)
}

// restart 通过场景管理器重新开始；未设置场景工厂时在本场景内重置
func (s *GameScene) restart() {
	if s.sceneManager != nil && s.sceneManager.Restart() {
		return
	}
	if err := s.session.Restart(); err != nil {
		log.Printf("[GameScene] 错误: 重新开始失败: %v", err)
	}
}

// Draw 绘制波次和 HUD
func (s *GameScene) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)

	s.session.Draw(utils.NewEbitenCanvas(screen, s.fieldHeight))

	s.drawText(screen, s.session.HUDText(), config.HUDMargin, config.HUDMargin, text.AlignStart)

	if banner := s.session.BannerText(); banner != "" {
		s.drawText(screen, banner, s.fieldWidth/2, s.fieldHeight/2, text.AlignCenter)
	}
}

func (s *GameScene) drawText(screen *ebiten.Image, msg string, x, y float64, align text.Align) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(config.HUDTextColor)
	op.PrimaryAlign = align
	text.Draw(screen, msg, s.face, op)
}

// Session 返回当前这一局
func (s *GameScene) Session() *modules.SessionModule {
	return s.session
}
