package main

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/bomb-arena/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	colFloor     = color.RGBA{R: 34, G: 62, B: 34, A: 255}
	colSolid     = color.RGBA{R: 90, G: 90, B: 96, A: 255}
	colSolidEdge = color.RGBA{R: 60, G: 60, B: 66, A: 255}
	colCrate     = color.RGBA{R: 150, G: 100, B: 50, A: 255}
	colCrateEdge = color.RGBA{R: 100, G: 64, B: 30, A: 255}
	colDevice    = color.RGBA{R: 20, G: 20, B: 20, A: 255}
	colFuse      = color.RGBA{R: 255, G: 80, B: 40, A: 255}
	colBlast     = color.RGBA{R: 255, G: 170, B: 40, A: 220}
	colBlastCore = color.RGBA{R: 255, G: 240, B: 160, A: 240}
	colHuman     = color.RGBA{R: 240, G: 240, B: 255, A: 255}
	colComputer  = color.RGBA{R: 220, G: 50, B: 50, A: 255}
	colHUD       = color.RGBA{R: 6, G: 10, B: 6, A: 255}
	colText      = color.RGBA{R: 200, G: 230, B: 200, A: 255}
)

// powerUpColors maps each power-up kind to its pickup colour.
var powerUpColors = map[game.PowerUpKind]color.RGBA{
	game.PowerUpCapacity: {R: 60, G: 140, B: 255, A: 255},
	game.PowerUpRadius:   {R: 255, G: 90, B: 30, A: 255},
	game.PowerUpSpeed:    {R: 80, G: 230, B: 120, A: 255},
}

var hudFace = text.NewGoXFace(basicfont.Face7x13)

func (a *arena) Draw(screen *ebiten.Image) {
	s := a.round.Snapshot()
	ts := float32(s.TileSize)

	a.drawTiles(screen, s, ts)

	for _, b := range s.Blasts {
		drawBlast(screen, b, ts)
	}
	for _, d := range s.Devices {
		cx, cy := game.TileToWorld(d.Tile, s.TileSize)
		r := ts * 0.32
		vector.FillCircle(screen, float32(cx), float32(cy), r, colDevice, true)
		// Fuse ring shrinks as the fuse burns.
		frac := float32(d.Fuse / d.FuseTotal)
		if frac > 0 {
			vector.StrokeCircle(screen, float32(cx), float32(cy), r*frac, 2, colFuse, true)
		}
	}
	for _, ag := range s.Agents {
		if ag.Dead {
			continue
		}
		// Blink while invulnerable.
		if ag.Invulnerable > 0 && (s.Tick/4)%2 == 0 {
			continue
		}
		c := colComputer
		if ag.Control == game.ControlHuman {
			c = colHuman
		}
		vector.FillCircle(screen, float32(ag.X), float32(ag.Y), float32(ag.Size/2), c, true)
	}

	a.drawHUD(screen, s)
	a.feed.draw(screen, int(float64(s.Cols)*s.TileSize), int(float64(s.Rows)*s.TileSize)+hudHeight)
}

func (a *arena) drawTiles(screen *ebiten.Image, s game.Snapshot, ts float32) {
	for row := 0; row < s.Rows; row++ {
		for col := 0; col < s.Cols; col++ {
			t := s.TileAt(game.TilePos{Col: col, Row: row})
			x, y := float32(col)*ts, float32(row)*ts
			switch t.Kind {
			case game.TileSolid:
				vector.FillRect(screen, x, y, ts, ts, colSolid, false)
				vector.StrokeRect(screen, x+1, y+1, ts-2, ts-2, 2, colSolidEdge, false)
			case game.TileBreakable:
				vector.FillRect(screen, x, y, ts, ts, colCrate, false)
				vector.StrokeRect(screen, x+2, y+2, ts-4, ts-4, 2, colCrateEdge, false)
				vector.StrokeLine(screen, x+2, y+2, x+ts-2, y+ts-2, 1, colCrateEdge, false)
			default:
				vector.FillRect(screen, x, y, ts, ts, colFloor, false)
				if c, ok := powerUpColors[t.PowerUp]; ok {
					m := ts * 0.25
					vector.FillRect(screen, x+m, y+m, ts-2*m, ts-2*m, c, false)
				}
			}
		}
	}
}

// drawBlast draws a segment as a bar along its ray, a plus at the centre.
func drawBlast(screen *ebiten.Image, b game.BlastView, ts float32) {
	x, y := float32(b.Tile.Col)*ts, float32(b.Tile.Row)*ts
	w := ts * 0.6
	m := (ts - w) / 2
	switch b.Orientation {
	case game.OrientHorizontal:
		vector.FillRect(screen, x, y+m, ts, w, colBlast, false)
	case game.OrientVertical:
		vector.FillRect(screen, x+m, y, w, ts, colBlast, false)
	default:
		vector.FillRect(screen, x, y+m, ts, w, colBlast, false)
		vector.FillRect(screen, x+m, y, w, ts, colBlast, false)
		vector.FillRect(screen, x+m, y+m, w, w, colBlastCore, false)
	}
}

func (a *arena) drawHUD(screen *ebiten.Image, s game.Snapshot) {
	top := float32(float64(s.Rows) * s.TileSize)
	w, _ := a.Layout(0, 0)
	vector.FillRect(screen, 0, top, float32(w), hudHeight, colHUD, false)

	line1 := fmt.Sprintf("seed %d  tick %d", s.Seed, s.Tick)
	for _, ag := range s.Agents {
		if ag.Control == game.ControlHuman {
			line1 = fmt.Sprintf("lives %d  bombs %d/%d  radius %d  speed %.0f",
				ag.Lives, ag.BombCapacity-ag.BombsInFlight, ag.BombCapacity, ag.BlastRadius, ag.Speed)
			break
		}
	}

	line2 := "arrows/WASD move  space bomb  R reset  C copy"
	switch {
	case a.statusT > 0:
		line2 = a.status
	case s.Outcome == game.OutcomeWon:
		line2 = "YOU WIN  press R"
	case s.Outcome == game.OutcomeLost:
		line2 = "YOU LOSE  press R"
	}
	if a.store != nil {
		line2 += fmt.Sprintf("  [%d won / %d lost]", a.tally.Won, a.tally.Lost)
	}

	for i, l := range []string{line1, line2} {
		drawText(screen, l, 6, float64(top)+4+float64(i)*16, colText)
	}
}
