package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
)

// Intent is the human player's request for one tick.
type Intent struct {
	DCol, DRow int
	Place      bool
}

// Round owns every piece of mutable state of one match and advances it in a
// fixed phase order. It is not safe for concurrent use.
type Round struct {
	cfg     *Config
	Grid    *Grid
	Agents  []*Agent
	Devices []*Device
	Blasts  []*BlastSegment
	SimLog  *SimLog

	seed         int64
	rng          *rand.Rand
	events       *EventBus
	log          zerolog.Logger
	intent       Intent
	tick         int
	outcome      Outcome
	nextDeviceID int

	// setup state consumed by NewRound
	spawns    []spawnSpec
	autopilot bool
	ownGrid   bool
}

type spawnSpec struct {
	ctl  Control
	tile TilePos
}

// roundOptionKind controls the pass in which an option is applied.
type roundOptionKind int

const (
	roundOptInfra roundOptionKind = iota // seed, grid, bus, logger: applied first
	roundOptAgent                        // spawns: applied after the grid exists
)

// RoundOption is a builder function applied to a Round during construction.
type RoundOption struct {
	kind roundOptionKind
	fn   func(*Round)
}

// WithSeed fixes the RNG seed for grid generation, drops and brains.
func WithSeed(seed int64) RoundOption {
	return RoundOption{roundOptInfra, func(r *Round) {
		r.seed = seed
	}}
}

// WithGrid uses a prebuilt grid instead of generating one. Spawn points on a
// supplied grid are not cleared.
func WithGrid(g *Grid) RoundOption {
	return RoundOption{roundOptInfra, func(r *Round) {
		r.Grid = g
	}}
}

// WithEventBus routes round events to bus.
func WithEventBus(bus *EventBus) RoundOption {
	return RoundOption{roundOptInfra, func(r *Round) {
		r.events = bus
	}}
}

// WithLogger sets the round logger.
func WithLogger(l zerolog.Logger) RoundOption {
	return RoundOption{roundOptInfra, func(r *Round) {
		r.log = l
	}}
}

// WithVerbose records per-tick positions in the SimLog.
func WithVerbose(v bool) RoundOption {
	return RoundOption{roundOptInfra, func(r *Round) {
		r.SimLog = NewSimLog(v)
	}}
}

// WithAutopilot gives human agents a brain so the round plays itself.
func WithAutopilot() RoundOption {
	return RoundOption{roundOptInfra, func(r *Round) {
		r.autopilot = true
	}}
}

// WithHumanAt spawns a human agent on p. Using any spawn option disables the
// default spawn layout.
func WithHumanAt(p TilePos) RoundOption {
	return RoundOption{roundOptAgent, func(r *Round) {
		r.spawns = append(r.spawns, spawnSpec{ctl: ControlHuman, tile: p})
	}}
}

// WithOpponentAt spawns a computer agent on p.
func WithOpponentAt(p TilePos) RoundOption {
	return RoundOption{roundOptAgent, func(r *Round) {
		r.spawns = append(r.spawns, spawnSpec{ctl: ControlComputer, tile: p})
	}}
}

// NewRound builds a round from cfg in ordered passes:
//  1. Infrastructure (seed, grid, bus, logger)
//  2. Grid generation when none was supplied
//  3. Agents, default layout unless spawn options were given
func NewRound(cfg *Config, opts ...RoundOption) *Round {
	r := &Round{
		cfg:    cfg,
		seed:   cfg.Seed,
		events: NewEventBus(),
		log:    zerolog.Nop(),
		SimLog: NewSimLog(false),
	}
	for _, o := range opts {
		if o.kind == roundOptInfra {
			o.fn(r)
		}
	}
	if r.seed == 0 {
		r.seed = time.Now().UnixNano()
	}
	r.rng = rand.New(rand.NewSource(r.seed)) // #nosec G404 -- gameplay randomness

	if r.Grid == nil {
		r.Grid = GenerateGrid(cfg, r.rng)
		r.ownGrid = true
	} else if r.Grid.rng == nil {
		r.Grid.rng = r.rng
	}

	for _, o := range opts {
		if o.kind == roundOptAgent {
			o.fn(r)
		}
	}
	if len(r.spawns) == 0 {
		r.spawns = defaultSpawns(r.Grid, cfg.OpponentCount)
	}
	for i, s := range r.spawns {
		r.addAgent(i, s)
	}

	r.events.SubscribeAll(r.recordEvent)
	r.log.Info().
		Int64("seed", r.seed).
		Int("cols", r.Grid.Cols).
		Int("rows", r.Grid.Rows).
		Int("agents", len(r.Agents)).
		Msg("round started")
	return r
}

func (r *Round) addAgent(id int, s spawnSpec) {
	side := SidePlayer
	if s.ctl == ControlComputer {
		side = SideOpponent
	}
	if r.ownGrid {
		r.Grid.ClearAround(s.tile)
	}
	a := NewAgent(id, s.ctl, side, s.tile, r.cfg)
	if s.ctl == ControlComputer || r.autopilot {
		a.Brain = NewBrain(rand.New(rand.NewSource(r.rng.Int63()))) // #nosec G404 -- gameplay randomness
	}
	r.Agents = append(r.Agents, a)
}

// defaultSpawns puts the human in the top-left corner and opponents in the
// other corners, then on edge midpoints, then round-robin.
func defaultSpawns(g *Grid, opponents int) []spawnSpec {
	odd := func(v int) int {
		if v%2 == 0 {
			v--
		}
		return v
	}
	right, bottom := odd(g.Cols-2), odd(g.Rows-2)
	midC, midR := odd(g.Cols/2), odd(g.Rows/2)
	points := []TilePos{
		{Col: right, Row: bottom},
		{Col: right, Row: 1},
		{Col: 1, Row: bottom},
		{Col: midC, Row: bottom},
		{Col: right, Row: midR},
		{Col: midC, Row: 1},
		{Col: 1, Row: midR},
	}
	out := []spawnSpec{{ctl: ControlHuman, tile: TilePos{Col: 1, Row: 1}}}
	for i := 0; i < opponents; i++ {
		out = append(out, spawnSpec{ctl: ControlComputer, tile: points[i%len(points)]})
	}
	return out
}

// Config returns the round configuration.
func (r *Round) Config() *Config { return r.cfg }

// Seed returns the seed the round was built with.
func (r *Round) Seed() int64 { return r.seed }

// Events returns the bus the round emits on.
func (r *Round) Events() *EventBus { return r.events }

// CurrentTick returns the number of ticks played.
func (r *Round) CurrentTick() int { return r.tick }

// Outcome returns the current outcome.
func (r *Round) Outcome() Outcome { return r.outcome }

// SetIntent stores the human request applied on the next tick.
func (r *Round) SetIntent(in Intent) { r.intent = in }

// AgentByID returns the agent with id, or nil.
func (r *Round) AgentByID(id int) *Agent {
	for _, a := range r.Agents {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// Human returns the first human agent, or nil.
func (r *Round) Human() *Agent {
	for _, a := range r.Agents {
		if a.Control == ControlHuman {
			return a
		}
	}
	return nil
}

// Tick advances the round by dt seconds:
//  1. agents: countdowns, decisions or intent, motion
//  2. device fuses and detonations
//  3. blast lifetimes
//  4. damage and pickups
//  5. outcome
//
// Once the round is decided Tick does nothing and keeps returning the outcome.
func (r *Round) Tick(dt float64) Outcome {
	if r.outcome != OutcomePlaying {
		return r.outcome
	}
	r.tick++
	r.updateAgents(dt)
	r.updateDevices(dt)
	r.updateBlasts(dt)
	r.resolveDamage()
	r.resolvePickups()

	res := DetermineOutcome(r.Agents)
	if res.Outcome != OutcomePlaying {
		r.outcome = res.Outcome
		r.log.Info().
			Int("tick", r.tick).
			Str("outcome", res.Outcome.String()).
			Str("reason", res.Description).
			Msg("round over")
	}
	return r.outcome
}

func (r *Round) updateAgents(dt float64) {
	for _, a := range r.Agents {
		if a.Dead {
			continue
		}
		if a.Invulnerable > 0 {
			a.Invulnerable -= dt
			if a.Invulnerable < 0 {
				a.Invulnerable = 0
			}
		}

		switch a.Control {
		case ControlComputer:
			r.think(a, dt)
		case ControlHuman:
			if a.Brain != nil {
				r.think(a, dt)
			} else {
				r.applyIntent(a)
			}
		}

		a.Advance(dt, r.cfg.TileSize)
		r.SimLog.AddVerbose(SimLogEntry{
			Tick:     r.tick,
			Agent:    a.Label(),
			Category: "move",
			Key:      "position",
			Value:    fmt.Sprintf("(%.2f,%.2f)", a.X, a.Y),
			Tile:     a.Tile,
		})
	}
	r.intent = Intent{}
}

// think runs a's brain and records state changes.
func (r *Round) think(a *Agent, dt float64) {
	if a.Brain == nil {
		return
	}
	prev := a.Brain.State
	a.Brain.Decide(r, a, dt)
	if a.Brain.State != prev {
		r.SimLog.Add(SimLogEntry{
			Tick:     r.tick,
			Agent:    a.Label(),
			Category: "brain",
			Key:      "state",
			Value:    fmt.Sprintf("%s → %s", prev, a.Brain.State),
			Tile:     a.Tile,
		})
	}
}

// applyIntent places before moving: a placement requires a stationary agent.
func (r *Round) applyIntent(a *Agent) {
	if r.intent.Place {
		r.Place(a)
	}
	if r.intent.DCol != 0 || r.intent.DRow != 0 {
		a.AttemptMove(r.Grid, r.intent.DCol, r.intent.DRow)
	}
}

func (r *Round) emit(e Event) {
	e.Tick = r.tick
	r.events.Emit(e)
}

// RunTicks advances the round n ticks of dt seconds, stopping early once
// the round is decided.
func (r *Round) RunTicks(n int, dt float64) Outcome {
	for i := 0; i < n && r.outcome == OutcomePlaying; i++ {
		r.Tick(dt)
	}
	return r.outcome
}

// RunUntil advances the round up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate held, or -1.
func (r *Round) RunUntil(predicate func(*Round) bool, maxTicks int, dt float64) int {
	for i := 0; i < maxTicks; i++ {
		r.Tick(dt)
		if predicate(r) {
			return r.tick
		}
		if r.outcome != OutcomePlaying {
			break
		}
	}
	return -1
}
