package main

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/automoto/platforming/shared/leveldata"
	"github.com/automoto/platforming/shared/platforming"
	"github.com/automoto/platforming/shared/stage"
)

var (
	styleTerrain  = tcell.StyleDefault.Foreground(tcell.ColorLightGray)
	stylePlatform = tcell.StyleDefault.Foreground(tcell.ColorPurple)
	styleCrate    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	stylePlayer   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleHUD      = tcell.StyleDefault.Foreground(tcell.ColorGreen)

	zoneStyles = map[string]tcell.Style{
		leveldata.ZoneDeath:      tcell.StyleDefault.Background(tcell.NewRGBColor(80, 0, 0)),
		leveldata.ZoneCheckpoint: tcell.StyleDefault.Background(tcell.NewRGBColor(0, 60, 0)),
		leveldata.ZoneFinish:     tcell.StyleDefault.Background(tcell.NewRGBColor(70, 70, 0)),
	}
)

// heights are block glyphs for slope tiles by floor height at the tile centre.
var heights = []rune(" ▁▂▃▄▅▆▇█")

// glyph returns the character for a tile, or 0 for empty.
func glyph(t platforming.Tile) rune {
	switch {
	case t.IsWallUp():
		return '█'
	case t.IsWall():
		return '▔'
	case t.IsFloorSlope():
		left, right := t.FloorRelativeHeight(0), t.FloorRelativeHeight(1)
		switch {
		case left == 0 && right == 1:
			return '◢'
		case left == 1 && right == 0:
			return '◣'
		}
		h := t.FloorRelativeHeight(0.5)
		return heights[int(math.Round(h*float64(len(heights)-1)))]
	}
	return 0
}

// view maps world tiles to terminal cells, one cell per tile, centred on the
// player.
type view struct {
	originX, originY int
}

func newView(s *stage.Stage, width, height int) view {
	o := s.Player.PhysicsObject()
	return view{
		originX: int(math.Floor(o.X)) - width/2,
		originY: int(math.Floor(o.Y)) - height/2,
	}
}

func (v view) cell(x, y float64) (int, int) {
	return int(math.Floor(x)) - v.originX, int(math.Floor(y)) - v.originY
}

// draw renders the stage into screen. The last line holds the HUD.
func draw(screen tcell.Screen, s *stage.Stage) {
	screen.Clear()
	width, height := screen.Size()
	if height < 2 {
		return
	}
	v := newView(s, width, height-1)

	for _, z := range s.Zones.Zones() {
		x0, y0 := v.cell(z.Rect.Left, z.Rect.Top)
		x1, y1 := v.cell(z.Rect.Right-1e-9, z.Rect.Bottom-1e-9)
		for y := max(y0, 0); y <= min(y1, height-2); y++ {
			for x := max(x0, 0); x <= min(x1, width-1); x++ {
				screen.SetContent(x, y, ' ', nil, zoneStyles[z.Kind])
			}
		}
	}

	drawGrid(screen, v, s.Terrain, styleTerrain, height-1)
	for _, p := range s.Platforms {
		drawGrid(screen, v, &p.TileMapObject, stylePlatform, height-1)
	}
	for _, c := range s.Crates {
		r := platforming.CollisionRect(c)
		x, y := v.cell((r.Left+r.Right)/2, (r.Top+r.Bottom)/2)
		screen.SetContent(x, y, '#', nil, styleCrate)
	}
	r := platforming.CollisionRect(s.Player)
	x, y := v.cell((r.Left+r.Right)/2, r.Bottom-1e-6)
	screen.SetContent(x, y, '@', nil, stylePlayer)

	sn := s.Snapshot()
	drawText(screen, 0, height-1, sn.String(), styleHUD)
}

func drawGrid(screen tcell.Screen, v view, grid *platforming.TileMapObject, style tcell.Style, rows int) {
	m := grid.TileGrid()
	// Moving grids snap to the nearest cell.
	ox := int(math.Round(grid.X)) - v.originX
	oy := int(math.Round(grid.Y)) - v.originY
	width, _ := screen.Size()
	for ty := 0; ty < m.Height; ty++ {
		y := oy + ty
		if y < 0 || y >= rows {
			continue
		}
		for tx := 0; tx < m.Width; tx++ {
			x := ox + tx
			if x < 0 || x >= width {
				continue
			}
			if g := glyph(m.Tiles[ty][tx]); g != 0 {
				screen.SetContent(x, y, g, nil, style)
			}
		}
	}
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
