package game

import "fmt"

// Control tags who drives an agent.
type Control int

const (
	ControlHuman    Control = iota // driven by SetIntent (or an autopilot brain)
	ControlComputer                // driven by its Brain
)

func (c Control) String() string {
	switch c {
	case ControlHuman:
		return "human"
	case ControlComputer:
		return "computer"
	default:
		return "unknown"
	}
}

// Side distinguishes the human team from the opponents. Brains target the
// nearest live agent on the other side.
type Side int

const (
	SidePlayer Side = iota
	SideOpponent
)

// Agent is any character occupying the arena.
type Agent struct {
	ID      int
	Control Control
	Side    Side
	Brain   *Brain // nil for agents steered by intent

	// Continuous centre position and collision box edge, in pixels.
	X, Y float64
	Size float64

	Tile           TilePos
	Target         TilePos
	DirCol, DirRow int
	Speed          float64 // pixels per second
	Moving         bool

	Lives         int
	BombCapacity  int
	BombsInFlight int
	BlastRadius   int
	Invulnerable  float64 // seconds of damage immunity left
	Dead          bool
}

// NewAgent creates an agent standing on spawn with the configured defaults.
func NewAgent(id int, ctl Control, side Side, spawn TilePos, cfg *Config) *Agent {
	x, y := TileToWorld(spawn, cfg.TileSize)
	return &Agent{
		ID:           id,
		Control:      ctl,
		Side:         side,
		X:            x,
		Y:            y,
		Size:         cfg.AgentSize,
		Tile:         spawn,
		Target:       spawn,
		Speed:        cfg.AgentSpeed,
		Lives:        cfg.AgentLives,
		BombCapacity: cfg.AgentBombCapacity,
		BlastRadius:  cfg.DefaultBlastRadius,
	}
}

// Label is a short tag used in logs: H0 for humans, C3 for computers.
func (a *Agent) Label() string {
	if a.Control == ControlHuman {
		return fmt.Sprintf("H%d", a.ID)
	}
	return fmt.Sprintf("C%d", a.ID)
}

// Alive returns true while the agent still acts.
func (a *Agent) Alive() bool { return !a.Dead }

// Bounds returns the agent's collision box as min/max corners.
func (a *Agent) Bounds() (x0, y0, x1, y1 float64) {
	h := a.Size / 2
	return a.X - h, a.Y - h, a.X + h, a.Y + h
}

// CanPlace reports whether a device placement would currently be accepted,
// ignoring tile occupancy which only the round knows about.
func (a *Agent) CanPlace() bool {
	return !a.Dead && !a.Moving && a.BombsInFlight < a.BombCapacity
}

// applyPowerUp grants the effect of pu.
func (a *Agent) applyPowerUp(pu PowerUpKind, cfg *Config) {
	switch pu {
	case PowerUpCapacity:
		a.BombCapacity += cfg.CapacityBonus
	case PowerUpRadius:
		a.BlastRadius += cfg.RadiusBonus
	case PowerUpSpeed:
		a.Speed += cfg.SpeedBonus
		if a.Speed > cfg.MaxSpeed {
			a.Speed = cfg.MaxSpeed
		}
	}
}
