package game

import "math/rand"

// BrainState is what a computer-driven agent is trying to do this tick.
type BrainState int

const (
	BrainExplore       BrainState = iota // no target: dig toward crates or wander
	BrainEvade                           // standing in danger: step out of it
	BrainBombPlacement                   // target lined up: plant and step away
	BrainChase                           // walk a safe route toward the target
)

func (s BrainState) String() string {
	switch s {
	case BrainExplore:
		return "explore"
	case BrainEvade:
		return "evade"
	case BrainBombPlacement:
		return "bomb"
	case BrainChase:
		return "chase"
	default:
		return "unknown"
	}
}

// exploreAttempts bounds how many random crates are tried per replan.
const exploreAttempts = 4

// Brain is the decision engine of one agent. The state is recomputed every
// tick; only the cached route and the placement cooldown carry over.
type Brain struct {
	State    BrainState
	path     []TilePos
	cooldown float64
	rng      *rand.Rand
}

func NewBrain(rng *rand.Rand) *Brain {
	return &Brain{rng: rng}
}

// Path returns the cached route, if any.
func (b *Brain) Path() []TilePos { return b.path }

// Cooldown returns the seconds left before the next planned placement.
func (b *Brain) Cooldown() float64 { return b.cooldown }

// Decide evaluates the situation for a and issues at most one move and one
// placement through the round.
func (b *Brain) Decide(r *Round, a *Agent, dt float64) {
	if b.cooldown > 0 {
		b.cooldown -= dt
	}
	threats := r.Threats()
	target := r.nearestEnemy(a)
	b.State = b.selectState(r, a, target, threats)

	switch b.State {
	case BrainEvade:
		b.evade(r, a, threats)
	case BrainBombPlacement:
		b.plantAndEvade(r, a, threats)
	case BrainChase:
		if !b.chase(r, a, target, threats) {
			b.explore(r, a, threats)
		}
	default:
		b.explore(r, a, threats)
	}
}

// selectState applies the fixed priority: danger, attack, chase, explore.
func (b *Brain) selectState(r *Round, a *Agent, target *Agent, threats DangerCheck) BrainState {
	if threats.IsDangerous(a.Tile) {
		return BrainEvade
	}
	if target != nil &&
		b.cooldown <= 0 &&
		a.CanPlace() && r.DeviceAt(a.Tile) == nil &&
		a.Tile.Manhattan(target.Tile) <= r.cfg.AttackWindow &&
		clearLine(r.Grid, a.Tile, target.Tile, a.BlastRadius) {
		return BrainBombPlacement
	}
	if target != nil {
		return BrainChase
	}
	return BrainExplore
}

// clearLine reports whether to is on a cardinal line from from, within
// radius, with only empty tiles in between.
func clearLine(g *Grid, from, to TilePos, radius int) bool {
	if from.Row != to.Row && from.Col != to.Col {
		return false
	}
	dist := from.Manhattan(to)
	if dist > radius {
		return false
	}
	dc, dr := 0, 0
	switch {
	case to.Col > from.Col:
		dc = 1
	case to.Col < from.Col:
		dc = -1
	case to.Row > from.Row:
		dr = 1
	case to.Row < from.Row:
		dr = -1
	}
	for i := 1; i < dist; i++ {
		if !g.IsPassable(from.Add(dc*i, dr*i)) {
			return false
		}
	}
	return true
}

// evade steps into the first neighbour, in fixed order, that is passable
// and not dangerous. It does nothing when none qualifies.
func (b *Brain) evade(r *Round, a *Agent, threats DangerCheck) {
	for _, d := range cardinal {
		n := a.Tile.Add(d[0], d[1])
		if r.Grid.IsPassable(n) && !threats.IsDangerous(n) {
			if a.AttemptMove(r.Grid, d[0], d[1]) {
				b.path = nil
			}
			return
		}
	}
}

func (b *Brain) plantAndEvade(r *Round, a *Agent, threats DangerCheck) {
	if r.Place(a) != nil {
		b.cooldown = r.cfg.PlacementCooldown
	}
	b.evade(r, a, threats)
}

// chase follows a safe route to the target, replanning when there is none
// cached, the target has moved off its end, or the next step went bad.
func (b *Brain) chase(r *Round, a *Agent, target *Agent, threats DangerCheck) bool {
	goal := target.Tile
	if len(b.path) == 0 || b.path[len(b.path)-1] != goal || !b.nextStepOK(r, a, threats) {
		b.path = SafePath(a.Tile, goal, r.Grid, threats)
	}
	if len(b.path) == 0 {
		return false
	}
	b.step(r, a)
	return true
}

// explore plants next to crates when it can, otherwise walks toward a
// random crate, otherwise wanders.
func (b *Brain) explore(r *Round, a *Agent, threats DangerCheck) {
	b.State = BrainExplore
	if b.cooldown <= 0 && a.CanPlace() && r.DeviceAt(a.Tile) == nil && nextToBreakable(r.Grid, a.Tile) {
		b.plantAndEvade(r, a, threats)
		return
	}
	if !b.nextStepOK(r, a, threats) || !nextToBreakable(r.Grid, b.path[len(b.path)-1]) {
		b.path = b.planExplore(r, a, threats)
	}
	if len(b.path) > 0 {
		b.step(r, a)
		return
	}
	b.wander(r, a)
}

// planExplore routes to a free tile beside a randomly chosen crate.
func (b *Brain) planExplore(r *Round, a *Agent, threats DangerCheck) []TilePos {
	var crates []TilePos
	for row := 0; row < r.Grid.Rows; row++ {
		for col := 0; col < r.Grid.Cols; col++ {
			p := TilePos{Col: col, Row: row}
			if r.Grid.Kind(p) == TileBreakable {
				crates = append(crates, p)
			}
		}
	}
	if len(crates) == 0 {
		return nil
	}
	for i := 0; i < exploreAttempts; i++ {
		crate := crates[b.rng.Intn(len(crates))]
		for _, n := range neighbours(crate) {
			if path := SafePath(a.Tile, n, r.Grid, threats); len(path) > 0 {
				return path
			}
		}
	}
	return nil
}

// wander takes a uniformly random passable step.
func (b *Brain) wander(r *Round, a *Agent) {
	var open [][2]int
	for _, d := range cardinal {
		if r.Grid.IsPassable(a.Tile.Add(d[0], d[1])) {
			open = append(open, d)
		}
	}
	if len(open) == 0 {
		return
	}
	d := open[b.rng.Intn(len(open))]
	a.AttemptMove(r.Grid, d[0], d[1])
}

// nextStepOK reports whether the cached route still starts from a's tile
// and its next tile is still walkable and safe.
func (b *Brain) nextStepOK(r *Round, a *Agent, threats DangerCheck) bool {
	i := indexOf(b.path, a.Tile)
	if i < 0 {
		return false
	}
	if i == len(b.path)-1 {
		return true
	}
	next := b.path[i+1]
	return r.Grid.IsPassable(next) && !threats.IsDangerous(next)
}

// step advances one tile along the cached route.
func (b *Brain) step(r *Round, a *Agent) {
	i := indexOf(b.path, a.Tile)
	if i < 0 {
		b.path = nil
		return
	}
	if i == len(b.path)-1 {
		return
	}
	next := b.path[i+1]
	a.AttemptMove(r.Grid, next.Col-a.Tile.Col, next.Row-a.Tile.Row)
}

func nextToBreakable(g *Grid, p TilePos) bool {
	for _, n := range neighbours(p) {
		if g.Kind(n) == TileBreakable {
			return true
		}
	}
	return false
}

// nearestEnemy returns the closest live agent on the other side, or nil.
func (r *Round) nearestEnemy(a *Agent) *Agent {
	var best *Agent
	bestDist := 0
	for _, o := range r.Agents {
		if o.Dead || o.Side == a.Side {
			continue
		}
		if d := a.Tile.Manhattan(o.Tile); best == nil || d < bestDist {
			best, bestDist = o, d
		}
	}
	return best
}
