package game

import "math/rand"

// TileKind identifies the terrain of a tile.
type TileKind uint8

const (
	TileEmpty     TileKind = iota // walkable floor
	TileSolid                     // indestructible pillar or border
	TileBreakable                 // crate, destroyed by blasts
)

func (k TileKind) String() string {
	switch k {
	case TileEmpty:
		return "empty"
	case TileSolid:
		return "solid"
	case TileBreakable:
		return "breakable"
	default:
		return "unknown"
	}
}

// PowerUpKind identifies an upgrade lying on a tile.
type PowerUpKind uint8

const (
	PowerUpNone     PowerUpKind = iota // no upgrade
	PowerUpCapacity                    // +1 device in flight
	PowerUpRadius                      // +1 blast radius
	PowerUpSpeed                       // faster movement
	powerUpCount                       // sentinel
)

func (p PowerUpKind) String() string {
	switch p {
	case PowerUpNone:
		return "none"
	case PowerUpCapacity:
		return "capacity"
	case PowerUpRadius:
		return "radius"
	case PowerUpSpeed:
		return "speed"
	default:
		return "unknown"
	}
}

// TilePos is a discrete grid coordinate.
type TilePos struct {
	Col int
	Row int
}

// Add returns p offset by (dc, dr).
func (p TilePos) Add(dc, dr int) TilePos {
	return TilePos{Col: p.Col + dc, Row: p.Row + dr}
}

// Manhattan returns the 4-connected distance between p and q.
func (p TilePos) Manhattan(q TilePos) int {
	return absInt(p.Col-q.Col) + absInt(p.Row-q.Row)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Tile is one cell of the arena.
type Tile struct {
	Kind    TileKind
	PowerUp PowerUpKind
}

// Grid is the authoritative per-cell map state for a round.
type Grid struct {
	Cols  int
	Rows  int
	Tiles []Tile // row-major: index = row*Cols + col

	dropChance float64
	rng        *rand.Rand
}

// NewGrid creates an all-empty grid. dropChance is the probability that a
// destroyed breakable tile leaves a power-up behind.
func NewGrid(cols, rows int, dropChance float64, rng *rand.Rand) *Grid {
	return &Grid{
		Cols:       cols,
		Rows:       rows,
		Tiles:      make([]Tile, cols*rows),
		dropChance: dropChance,
		rng:        rng,
	}
}

// GenerateGrid builds the classic pillar layout: the border and every cell
// with an even row and even column are solid; the rest of the interior is
// breakable with probability cfg.BreakableDensity.
func GenerateGrid(cfg *Config, rng *rand.Rand) *Grid {
	g := NewGrid(cfg.GridCols, cfg.GridRows, cfg.PowerUpDropChance, rng)
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			t := &g.Tiles[row*g.Cols+col]
			border := row == 0 || col == 0 || row == g.Rows-1 || col == g.Cols-1
			switch {
			case border, row%2 == 0 && col%2 == 0:
				t.Kind = TileSolid
			case rng.Float64() < cfg.BreakableDensity:
				t.Kind = TileBreakable
			default:
				t.Kind = TileEmpty
			}
		}
	}
	return g
}

// InBounds returns true if p lies on the grid.
func (g *Grid) InBounds(p TilePos) bool {
	return p.Col >= 0 && p.Col < g.Cols && p.Row >= 0 && p.Row < g.Rows
}

// At returns a pointer to the tile at p, or nil if out of bounds.
func (g *Grid) At(p TilePos) *Tile {
	if !g.InBounds(p) {
		return nil
	}
	return &g.Tiles[p.Row*g.Cols+p.Col]
}

// Kind returns the tile kind at p. Out of bounds reads as solid.
func (g *Grid) Kind(p TilePos) TileKind {
	if !g.InBounds(p) {
		return TileSolid
	}
	return g.Tiles[p.Row*g.Cols+p.Col].Kind
}

// IsPassable returns true only for in-bounds empty tiles.
func (g *Grid) IsPassable(p TilePos) bool {
	return g.Kind(p) == TileEmpty
}

// SetKind overwrites the kind at p and clears any power-up.
func (g *Grid) SetKind(p TilePos, k TileKind) {
	if t := g.At(p); t != nil {
		t.Kind = k
		t.PowerUp = PowerUpNone
	}
}

// SetPowerUp places an upgrade on p.
func (g *Grid) SetPowerUp(p TilePos, pu PowerUpKind) {
	if t := g.At(p); t != nil {
		t.PowerUp = pu
	}
}

// Destroy turns the tile at p into empty floor and, with the configured
// drop chance, leaves a uniformly chosen power-up behind. The caller must
// pass an in-bounds position.
func (g *Grid) Destroy(p TilePos) (PowerUpKind, bool) {
	t := &g.Tiles[p.Row*g.Cols+p.Col]
	t.Kind = TileEmpty
	t.PowerUp = PowerUpNone
	if g.rng == nil || g.rng.Float64() >= g.dropChance {
		return PowerUpNone, false
	}
	t.PowerUp = PowerUpKind(1 + g.rng.Intn(int(powerUpCount)-1))
	return t.PowerUp, true
}

// TakePowerUp removes and returns the upgrade at p.
func (g *Grid) TakePowerUp(p TilePos) PowerUpKind {
	t := g.At(p)
	if t == nil {
		return PowerUpNone
	}
	pu := t.PowerUp
	t.PowerUp = PowerUpNone
	return pu
}

// ClearAround turns breakable tiles at p and its four neighbours into floor.
// Solid tiles are left alone.
func (g *Grid) ClearAround(p TilePos) {
	for _, q := range append([]TilePos{p}, neighbours(p)...) {
		if g.Kind(q) == TileBreakable {
			g.SetKind(q, TileEmpty)
		}
	}
}

// CountKind returns how many tiles currently have kind k.
func (g *Grid) CountKind(k TileKind) int {
	n := 0
	for i := range g.Tiles {
		if g.Tiles[i].Kind == k {
			n++
		}
	}
	return n
}

// TileToWorld returns the pixel centre of tile p.
func TileToWorld(p TilePos, tileSize float64) (float64, float64) {
	return float64(p.Col)*tileSize + tileSize/2, float64(p.Row)*tileSize + tileSize/2
}

// WorldToTile converts a pixel coordinate to the tile containing it.
func WorldToTile(x, y, tileSize float64) TilePos {
	return TilePos{Col: int(x / tileSize), Row: int(y / tileSize)}
}

// cardinal lists the four step directions in the fixed order used by
// evasion and pathfinding.
var cardinal = [4][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
}

func neighbours(p TilePos) []TilePos {
	out := make([]TilePos, 0, 4)
	for _, d := range cardinal {
		out = append(out, p.Add(d[0], d[1]))
	}
	return out
}
