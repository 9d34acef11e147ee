package config

import (
	"image/color"

	"golang.org/x/image/colornames"
)

// 像素图案名
const (
	PatternSquid   = "squid"
	PatternCrab    = "crab"
	PatternOctopus = "octopus"
	PatternShip    = "ship"
)

// AlienPatterns 外星人图案轮换顺序
// 从最下一行开始，每两行换一种图案
var AlienPatterns = []string{PatternOctopus, PatternCrab, PatternSquid}

// SpritePatterns 像素图案，'#' 为实心像素
// 所有行长度相同；渲染时整幅图案缩放到实体碰撞盒大小
var SpritePatterns = map[string][]string{
	PatternSquid: {
		"     ##     ",
		"    ####    ",
		"   ######   ",
		"  ## ## ##  ",
		"  ########  ",
		"   # ## #   ",
		"  #      #  ",
		"   #    #   ",
	},
	PatternCrab: {
		"  #     #   ",
		"   #   #    ",
		"  #######   ",
		" ## ### ##  ",
		"########### ",
		"########### ",
		"# #     # # ",
		"   ## ##    ",
	},
	PatternOctopus: {
		"    ####    ",
		" ########## ",
		"############",
		"###  ##  ###",
		"############",
		"  ###  ###  ",
		" ##  ##  ## ",
		"  ##    ##  ",
	},
	PatternShip: {
		"       #       ",
		"      ###      ",
		"      ###      ",
		" ############# ",
		"###############",
		"###############",
		"###############",
		"###############",
	},
}

// 调色板
var (
	BackgroundColor  = colornames.Black
	ShipColor        = colornames.Limegreen
	DefenseLineColor = colornames.Lightgray
	PlayerBoltColor  = colornames.White
	AlienBoltColor   = colornames.Tomato
	HUDTextColor     = colornames.Whitesmoke

	// AlienColors 与 AlienPatterns 一一对应
	AlienColors = []color.RGBA{
		colornames.Violet,
		colornames.Deepskyblue,
		colornames.Gold,
	}
)

// AlienVariant 根据行号选择图案序号
//
// 从最下一行往上数，每两行换一种图案。
func AlienVariant(row, rows int) int {
	fromBottom := rows - 1 - row
	return (fromBottom / 2) % len(AlienPatterns)
}
