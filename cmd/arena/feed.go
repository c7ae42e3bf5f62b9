package main

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/bomb-arena/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	feedPanelWidth = 210
	feedMaxEntries = 40
	feedLineHeight = 14
	feedHighlight  = 3 // newest entries drawn on a highlighted row
)

var (
	colFeedBG     = color.RGBA{R: 10, G: 12, B: 10, A: 248}
	colFeedEdge   = color.RGBA{R: 50, G: 70, B: 50, A: 255}
	colFeedTitle  = color.RGBA{R: 20, G: 30, B: 20, A: 255}
	colFeedRecent = color.RGBA{R: 30, G: 40, B: 30, A: 160}
)

// feedEntry is a single line in the event feed.
type feedEntry struct {
	Tick    int
	Label   string
	Side    game.Side
	Message string
}

// eventFeed is a ring buffer of recent round events rendered beside the arena.
type eventFeed struct {
	entries []feedEntry
	head    int
	count   int
}

func newEventFeed() *eventFeed {
	return &eventFeed{entries: make([]feedEntry, feedMaxEntries)}
}

func (f *eventFeed) add(e feedEntry) {
	f.entries[f.head] = e
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// recent returns entries oldest first.
func (f *eventFeed) recent() []feedEntry {
	out := make([]feedEntry, f.count)
	for i := 0; i < f.count; i++ {
		out[i] = f.entries[(f.head-f.count+i+feedMaxEntries)%feedMaxEntries]
	}
	return out
}

func (f *eventFeed) clear() {
	f.head, f.count = 0, 0
}

// attach feeds every event of r into f. Devices are too frequent to list.
func (f *eventFeed) attach(r *game.Round) {
	r.Events().SubscribeAll(func(e game.Event) {
		msg := describeEvent(e)
		if msg == "" {
			return
		}
		entry := feedEntry{Tick: e.Tick, Label: "--", Message: msg}
		if ag := r.AgentByID(e.AgentID); ag != nil {
			entry.Label = ag.Label()
			entry.Side = ag.Side
		}
		f.add(entry)
	})
}

// describeEvent renders e as a short feed message, or "" to skip it.
func describeEvent(e game.Event) string {
	switch e.Kind {
	case game.EventAgentDamaged:
		return fmt.Sprintf("hit, %d lives left", e.Lives)
	case game.EventAgentDied:
		return "eliminated"
	case game.EventBlockDestroyed:
		if e.PowerUp != game.PowerUpNone {
			return fmt.Sprintf("crate %d,%d dropped %s", e.Tile.Col, e.Tile.Row, e.PowerUp)
		}
		return fmt.Sprintf("crate %d,%d", e.Tile.Col, e.Tile.Row)
	case game.EventPowerUpCollected:
		return fmt.Sprintf("picked up %s", e.PowerUp)
	default:
		return ""
	}
}

// draw renders the feed panel at panelX, newest at the bottom.
func (f *eventFeed) draw(screen *ebiten.Image, panelX, panelH int) {
	x := float32(panelX)
	vector.FillRect(screen, x, 0, feedPanelWidth, float32(panelH), colFeedBG, false)
	vector.StrokeLine(screen, x, 0, x, float32(panelH), 1, colFeedEdge, false)
	vector.FillRect(screen, x, 0, feedPanelWidth, 18, colFeedTitle, false)
	drawText(screen, "EVENTS", float64(panelX+8), 2, colText)

	entries := f.recent()
	maxVisible := (panelH - 24) / feedLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	y := 22
	for i, e := range entries {
		if i >= len(entries)-feedHighlight {
			vector.FillRect(screen, x+2, float32(y), feedPanelWidth-4, feedLineHeight, colFeedRecent, false)
		}
		dot := colComputer
		if e.Side == game.SidePlayer {
			dot = colHuman
		}
		vector.FillRect(screen, x+5, float32(y+4), 3, 6, dot, false)
		drawText(screen, fmt.Sprintf("%4d %s %s", e.Tick, e.Label, e.Message), float64(panelX+12), float64(y), colText)
		y += feedLineHeight
	}
}

func drawText(screen *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, hudFace, op)
}
