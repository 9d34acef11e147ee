package modules

import (
	"fmt"
	"log"

	"github.com/decker502/invaders/pkg/config"
	"github.com/decker502/invaders/pkg/systems"
	"github.com/decker502/invaders/pkg/utils"
)

// SessionModule 一局游戏的进度控制
//
// 负责波次之间的衔接：清空阵列后开始下一波并继承剩余生命，
// 生命耗尽或外星人突破防线后结束本局。桌面场景和终端前端共用。
type SessionModule struct {
	cfg *config.WaveConfig
	rng systems.RandSource

	wave       *WaveModule
	waveNumber int
	// totalKills 之前各波次的击杀总数（不含当前波次）
	totalKills int

	paused    bool
	gameOver  bool
	endStatus WaveStatus
}

// NewSessionModule 创建新的一局并开始第一波
func NewSessionModule(cfg *config.WaveConfig, rng systems.RandSource) (*SessionModule, error) {
	s := &SessionModule{cfg: cfg, rng: rng}
	if err := s.Restart(); err != nil {
		return nil, err
	}
	return s, nil
}

// Restart 从第一波重新开始
func (s *SessionModule) Restart() error {
	wave, err := NewWaveModule(s.cfg, s.rng)
	if err != nil {
		return fmt.Errorf("failed to start first wave: %w", err)
	}

	s.wave = wave
	s.waveNumber = 1
	s.totalKills = 0
	s.paused = false
	s.gameOver = false
	s.endStatus = WaveActive
	log.Printf("[SessionModule] 新的一局开始")
	return nil
}

// Update 推进当前波次一帧；暂停或已结束时不做任何事
func (s *SessionModule) Update(input utils.InputSource, dt float64) {
	if s.paused || s.gameOver {
		return
	}

	s.wave.Update(input, dt)

	switch status := s.wave.Status(); status {
	case WaveCleared:
		s.startNextWave()
	case WaveLost, WaveBreached:
		s.gameOver = true
		s.endStatus = status
		log.Printf("[SessionModule] 游戏结束 (%s): 第 %d 波, 击杀 %d", status, s.waveNumber, s.Kills())
	}
}

// startNextWave 开始下一波，继承剩余生命
func (s *SessionModule) startNextWave() {
	lives := s.wave.Lives()
	next, err := NewWaveModule(s.cfg.WithLives(lives), s.rng)
	if err != nil {
		log.Printf("[SessionModule] 错误: 无法创建第 %d 波: %v", s.waveNumber+1, err)
		s.gameOver = true
		s.endStatus = WaveLost
		return
	}

	s.totalKills += s.wave.Kills()
	s.wave = next
	s.waveNumber++
	log.Printf("[SessionModule] 第 %d 波开始，剩余生命 %d", s.waveNumber, lives)
}

// TogglePause 切换暂停状态；已结束时无效
func (s *SessionModule) TogglePause() {
	if s.gameOver {
		return
	}
	s.paused = !s.paused
	log.Printf("[SessionModule] 暂停: %v", s.paused)
}

// Draw 绘制当前波次
func (s *SessionModule) Draw(canvas systems.Canvas) {
	s.wave.Draw(canvas)
}

// HUDText 返回状态栏文本
func (s *SessionModule) HUDText() string {
	return fmt.Sprintf("LIVES %d   KILLS %d   WAVE %d", s.wave.Lives(), s.Kills(), s.waveNumber)
}

// BannerText 返回状态横幅，进行中时为空
func (s *SessionModule) BannerText() string {
	switch {
	case s.gameOver && s.endStatus == WaveBreached:
		return "THE ALIENS BREACHED THE DEFENSE LINE - PRESS ENTER"
	case s.gameOver:
		return "GAME OVER - PRESS ENTER"
	case s.paused:
		return "PAUSED - PRESS P"
	default:
		return ""
	}
}

// Kills 返回本局累计击杀数
func (s *SessionModule) Kills() int {
	return s.totalKills + s.wave.Kills()
}

// WaveNumber 返回当前波次编号（从 1 开始）
func (s *SessionModule) WaveNumber() int {
	return s.waveNumber
}

// Wave 返回当前波次
func (s *SessionModule) Wave() *WaveModule {
	return s.wave
}

// Config 返回本局的基础配置
func (s *SessionModule) Config() *config.WaveConfig {
	return s.cfg
}

// IsPaused 是否暂停
func (s *SessionModule) IsPaused() bool {
	return s.paused
}

// IsGameOver 是否已结束
func (s *SessionModule) IsGameOver() bool {
	return s.gameOver
}

// EndStatus 返回结束原因，未结束时为 WaveActive
func (s *SessionModule) EndStatus() WaveStatus {
	return s.endStatus
}
