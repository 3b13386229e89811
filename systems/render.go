package systems

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/platforming/components"
	"github.com/automoto/platforming/config"
	"github.com/automoto/platforming/shared/geom"
	"github.com/automoto/platforming/shared/platforming"
	"github.com/automoto/platforming/tags"
)

var (
	colorWall     = color.RGBA{96, 104, 120, 255}
	colorOneWay   = color.RGBA{180, 150, 90, 255}
	colorSlope    = color.RGBA{120, 140, 110, 255}
	colorPlatform = color.RGBA{150, 110, 180, 255}
	colorCrate    = color.RGBA{170, 120, 60, 255}
	colorPlayer   = color.RGBA{80, 170, 255, 255}
	colorAirborne = color.RGBA{255, 210, 80, 255}
)

// view converts world tiles to screen pixels for the current camera.
type view struct {
	tile       float64
	offX, offY float64
	w, h       float64
}

func newView(e *ecs.ECS, screen *ebiten.Image) (view, bool) {
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return view{}, false
	}
	center := components.Camera.Get(cameraEntry).View()
	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	return view{
		tile: config.Camera.TileSize,
		offX: w/2 - center.X,
		offY: h/2 - center.Y,
		w:    w,
		h:    h,
	}, true
}

func (v view) point(x, y float64) (float32, float32) {
	return float32(x*v.tile + v.offX), float32(y*v.tile + v.offY)
}

func (v view) visible(r geom.Rect) bool {
	x0, y0 := v.point(r.Left, r.Top)
	x1, y1 := v.point(r.Right, r.Bottom)
	return x1 >= 0 && y1 >= 0 && float64(x0) <= v.w && float64(y0) <= v.h
}

func (v view) fillRect(screen *ebiten.Image, r geom.Rect, c color.Color) {
	x, y := v.point(r.Left, r.Top)
	vector.DrawFilledRect(screen, x, y, float32(r.Width()*v.tile), float32(r.Height()*v.tile), c, false)
}

func (v view) strokeRect(screen *ebiten.Image, r geom.Rect, c color.Color) {
	x0, y0 := v.point(r.Left, r.Top)
	x1, y1 := v.point(r.Right, r.Bottom)
	vector.StrokeLine(screen, x0, y0, x1, y0, 1, c, false)
	vector.StrokeLine(screen, x1, y0, x1, y1, 1, c, false)
	vector.StrokeLine(screen, x1, y1, x0, y1, 1, c, false)
	vector.StrokeLine(screen, x0, y1, x0, y0, 1, c, false)
}

// DrawLevel renders every tile grid: the terrain and moving platforms.
func DrawLevel(e *ecs.ECS, screen *ebiten.Image) {
	v, ok := newView(e, screen)
	if !ok {
		return
	}
	components.Body.Each(e.World, func(entry *donburi.Entry) {
		grid, ok := components.Body.Get(entry).Body.(platforming.TileCollider)
		if !ok {
			return
		}
		tint := color.Color(nil)
		if entry.HasComponent(tags.Platform) {
			tint = colorPlatform
		}
		drawGrid(screen, v, grid, tint)
	})
}

func drawGrid(screen *ebiten.Image, v view, grid platforming.TileCollider, tint color.Color) {
	o := grid.PhysicsObject()
	m := grid.TileGrid()
	bounds := platforming.CollisionRect(grid)
	if !v.visible(bounds) {
		return
	}

	// Only visit the tiles on screen.
	minX := max(0, int(math.Floor((-v.offX/v.tile)-o.X)))
	minY := max(0, int(math.Floor((-v.offY/v.tile)-o.Y)))
	maxX := min(m.Width-1, int(math.Ceil((v.w-v.offX)/v.tile-o.X)))
	maxY := min(m.Height-1, int(math.Ceil((v.h-v.offY)/v.tile-o.Y)))

	for ty := minY; ty <= maxY; ty++ {
		for tx := minX; tx <= maxX; tx++ {
			t := m.Tiles[ty][tx]
			cell := geom.NewRect(o.X+float64(tx), o.Y+float64(ty), 1, 1)
			switch {
			case t.IsWallUp():
				v.fillRect(screen, cell, pick(tint, colorWall))
			case t.IsWall():
				top := cell
				top.Bottom = top.Top + 0.25
				v.fillRect(screen, top, pick(tint, colorOneWay))
			case t.IsFloorSlope():
				drawSlope(screen, v, t, cell, pick(tint, colorSlope))
			}
		}
	}
}

// drawSlope fills a slope tile one pixel column at a time.
func drawSlope(screen *ebiten.Image, v view, t platforming.Tile, cell geom.Rect, c color.Color) {
	columns := max(1, int(v.tile))
	step := 1 / float64(columns)
	for i := 0; i < columns; i++ {
		local := (float64(i) + 0.5) * step
		h := t.FloorRelativeHeight(local)
		if h <= 0 {
			continue
		}
		col := geom.Rect{
			Left:   cell.Left + float64(i)*step,
			Right:  cell.Left + float64(i+1)*step,
			Top:    cell.Bottom - h,
			Bottom: cell.Bottom,
		}
		v.fillRect(screen, col, c)
	}
}

func pick(tint, fallback color.Color) color.Color {
	if tint != nil {
		return tint
	}
	return fallback
}

// DrawBodies renders crates and the player as boxes. The player is scaled by
// its squash-and-stretch around the feet.
func DrawBodies(e *ecs.ECS, screen *ebiten.Image) {
	v, ok := newView(e, screen)
	if !ok {
		return
	}

	tags.Crate.Each(e.World, func(entry *donburi.Entry) {
		r := platforming.CollisionRect(components.Body.Get(entry).Body)
		if v.visible(r) {
			v.fillRect(screen, r, colorCrate)
			v.strokeRect(screen, r, color.Black)
		}
	})

	tags.Player.Each(e.World, func(entry *donburi.Entry) {
		body := components.Body.Get(entry).Body
		o := body.PhysicsObject()
		r := platforming.CollisionRect(body)
		if ss := components.SquashStretch.Get(entry); ss != nil {
			cx := (r.Left + r.Right) / 2
			w, h := r.Width()*ss.ScaleX, r.Height()*ss.ScaleY
			r = geom.Rect{Left: cx - w/2, Right: cx + w/2, Top: r.Bottom - h, Bottom: r.Bottom}
		}
		c := colorPlayer
		if !o.OnGround {
			c = colorAirborne
		}
		v.fillRect(screen, r, c)
	})
}

// DrawHUD shows the level name, deaths and controls.
func DrawHUD(e *ecs.ECS, screen *ebiten.Image) {
	entry, ok := components.Stage.First(e.World)
	if !ok {
		return
	}
	data := components.Stage.Get(entry)
	s := data.Stage

	status := ""
	switch {
	case s.Finished:
		status = "  FINISHED!"
	case data.Paused:
		status = "  PAUSED (. to step)"
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s (%d/%d)  deaths: %d%s",
		s.Name, data.LevelIndex+1, len(data.Levels), s.Deaths, status), 4, 4)
	ebitenutil.DebugPrintAt(screen, "arrows/WASD move, space jump, R respawn, N/B level, H debug, M mute",
		4, screen.Bounds().Dy()-18)
}
