package game

import (
	"fmt"
	"strings"
)

// AgentView is a read-only copy of an agent.
type AgentView struct {
	ID            int
	Label         string
	Control       Control
	X, Y          float64
	Size          float64
	Tile          TilePos
	Moving        bool
	Speed         float64
	Lives         int
	BombCapacity  int
	BombsInFlight int
	BlastRadius   int
	Invulnerable  float64
	Dead          bool
	State         string // brain state, empty for intent-driven agents
}

// DeviceView is a read-only copy of a device.
type DeviceView struct {
	ID        int
	Tile      TilePos
	Fuse      float64
	FuseTotal float64
	Radius    int
	OwnerID   int
}

// BlastView is a read-only copy of a blast segment.
type BlastView struct {
	Tile        TilePos
	Orientation Orientation
	Terminal    bool
	Remaining   float64
}

// Snapshot is everything a renderer needs for one frame. It shares no memory
// with the round.
type Snapshot struct {
	Tick     int
	Seed     int64
	Outcome  Outcome
	Cols     int
	Rows     int
	TileSize float64
	Tiles    []Tile // row-major
	Agents   []AgentView
	Devices  []DeviceView
	Blasts   []BlastView
}

// Snapshot copies the current state.
func (r *Round) Snapshot() Snapshot {
	s := Snapshot{
		Tick:     r.tick,
		Seed:     r.seed,
		Outcome:  r.outcome,
		Cols:     r.Grid.Cols,
		Rows:     r.Grid.Rows,
		TileSize: r.cfg.TileSize,
		Tiles:    append([]Tile(nil), r.Grid.Tiles...),
		Agents:   make([]AgentView, 0, len(r.Agents)),
		Devices:  make([]DeviceView, 0, len(r.Devices)),
		Blasts:   make([]BlastView, 0, len(r.Blasts)),
	}
	for _, a := range r.Agents {
		v := AgentView{
			ID:            a.ID,
			Label:         a.Label(),
			Control:       a.Control,
			X:             a.X,
			Y:             a.Y,
			Size:          a.Size,
			Tile:          a.Tile,
			Moving:        a.Moving,
			Speed:         a.Speed,
			Lives:         a.Lives,
			BombCapacity:  a.BombCapacity,
			BombsInFlight: a.BombsInFlight,
			BlastRadius:   a.BlastRadius,
			Invulnerable:  a.Invulnerable,
			Dead:          a.Dead,
		}
		if a.Brain != nil {
			v.State = a.Brain.State.String()
		}
		s.Agents = append(s.Agents, v)
	}
	for _, d := range r.Devices {
		s.Devices = append(s.Devices, DeviceView{
			ID: d.ID, Tile: d.Tile, Fuse: d.Fuse, FuseTotal: d.FuseTotal, Radius: d.Radius, OwnerID: d.OwnerID,
		})
	}
	for _, b := range r.Blasts {
		s.Blasts = append(s.Blasts, BlastView{
			Tile: b.Tile, Orientation: b.Orientation, Terminal: b.Terminal, Remaining: b.Remaining,
		})
	}
	return s
}

// TileAt returns the tile at p; out of bounds reads as solid.
func (s Snapshot) TileAt(p TilePos) Tile {
	if p.Col < 0 || p.Row < 0 || p.Col >= s.Cols || p.Row >= s.Rows {
		return Tile{Kind: TileSolid}
	}
	return s.Tiles[p.Row*s.Cols+p.Col]
}

// Report renders the snapshot as plain text: a header, an ASCII map and one
// line per agent.
//
//	# solid  + crate  . floor  * blast  o device  $ power-up  H/C agents
func (s Snapshot) Report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- arena report ---\n")
	fmt.Fprintf(&b, "seed=%d tick=%d outcome=%s devices=%d blasts=%d\n\n",
		s.Seed, s.Tick, s.Outcome, len(s.Devices), len(s.Blasts))

	cells := make([]byte, len(s.Tiles))
	for i, t := range s.Tiles {
		switch {
		case t.Kind == TileSolid:
			cells[i] = '#'
		case t.Kind == TileBreakable:
			cells[i] = '+'
		case t.PowerUp != PowerUpNone:
			cells[i] = '$'
		default:
			cells[i] = '.'
		}
	}
	for _, bl := range s.Blasts {
		cells[bl.Tile.Row*s.Cols+bl.Tile.Col] = '*'
	}
	for _, d := range s.Devices {
		cells[d.Tile.Row*s.Cols+d.Tile.Col] = 'o'
	}
	for _, a := range s.Agents {
		if a.Dead {
			continue
		}
		c := byte('C')
		if a.Control == ControlHuman {
			c = 'H'
		}
		cells[a.Tile.Row*s.Cols+a.Tile.Col] = c
	}
	for row := 0; row < s.Rows; row++ {
		b.Write(cells[row*s.Cols : (row+1)*s.Cols])
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	for _, a := range s.Agents {
		status := "alive"
		if a.Dead {
			status = "dead"
		}
		fmt.Fprintf(&b, "%-4s %-5s tile=(%d,%d) lives=%d bombs=%d/%d radius=%d speed=%.0f",
			a.Label, status, a.Tile.Col, a.Tile.Row, a.Lives, a.BombsInFlight, a.BombCapacity, a.BlastRadius, a.Speed)
		if a.State != "" {
			fmt.Fprintf(&b, " state=%s", a.State)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
