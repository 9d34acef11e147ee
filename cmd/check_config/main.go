// check_config 校验波次配置文件并打印阵列几何信息
//
// 用法:
//
//	go run ./cmd/check_config [data/wave.yaml ...]
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/decker502/invaders/pkg/config"
)

func main() {
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{config.DefaultConfigPath}
	}

	failed := false
	for _, path := range paths {
		cfg, err := config.LoadWaveConfig(path)
		if err != nil {
			fmt.Printf("FAIL: %s - %v\n", path, err)
			failed = true
			continue
		}
		report(path, cfg)
	}

	if failed {
		os.Exit(1)
	}
}

func report(path string, cfg *config.WaveConfig) {
	a := cfg.Alien
	leftX, topY := cfg.AlienHome(0, 0)
	rightX, bottomY := cfg.AlienHome(a.Rows-1, a.Columns-1)

	left := leftX - a.Width/2
	right := rightX + a.Width/2
	bottom := bottomY - a.Height/2

	// 首次触右边界前可走的步数
	rightSteps := int(math.Floor((cfg.Field.Width - right) / a.HWalk))
	// 阵列下沿降到防线所需的下移次数
	downSteps := int(math.Ceil((bottom - cfg.Field.DefenseLine) / a.VWalk))

	shipX, shipY := cfg.ShipStart()

	fmt.Printf("OK: %s\n", path)
	fmt.Printf("     field %.0fx%.0f, defense line %.0f\n", cfg.Field.Width, cfg.Field.Height, cfg.Field.DefenseLine)
	fmt.Printf("     formation %dx%d, x [%.1f, %.1f], y [%.1f, %.1f]\n", a.Rows, a.Columns, left, right, bottom, topY+a.Height/2)
	fmt.Printf("     right steps before first reversal: %d, down steps to breach: %d\n", rightSteps, downSteps)
	fmt.Printf("     ship start (%.1f, %.1f), lives %d, bolt rate %d\n", shipX, shipY, cfg.Ship.Lives, cfg.Bolt.Rate)
}
