package game

import "testing"

// brainRound places a human at human and an opponent at opp on an open
// grid. The opponent's brain is returned for direct Decide calls.
func brainRound(t *testing.T, g *Grid, human, opp TilePos) (*Round, *Agent) {
	t.Helper()
	cfg := DefaultConfig()
	r := NewRound(&cfg, WithSeed(5), WithGrid(g), WithHumanAt(human), WithOpponentAt(opp))
	return r, r.AgentByID(1)
}

func TestBrain_EvadesOnTheSameTick(t *testing.T) {
	r, a := brainRound(t, openGrid(15, 15, 0), TilePos{1, 1}, TilePos{5, 5})
	a.Brain.State = BrainChase
	r.Devices = append(r.Devices, &Device{ID: 9, Tile: TilePos{3, 5}, Fuse: 0.5, FuseTotal: 3, Radius: 2, OwnerID: 0})

	a.Brain.Decide(r, a, testDT)
	if a.Brain.State != BrainEvade {
		t.Fatalf("state = %s, want evade", a.Brain.State)
	}
	// (6,5) is the first neighbour out of the device's reach.
	if !a.Moving || a.Target != (TilePos{6, 5}) {
		t.Fatalf("expected a step to (6,5), moving=%v target=%v", a.Moving, a.Target)
	}
}

func TestBrain_BombPlacement(t *testing.T) {
	r, a := brainRound(t, openGrid(15, 15, 0), TilePos{3, 1}, TilePos{5, 1})

	a.Brain.Decide(r, a, testDT)
	if a.Brain.State != BrainBombPlacement {
		t.Fatalf("state = %s, want bomb", a.Brain.State)
	}
	d := r.DeviceAt(TilePos{5, 1})
	if d == nil || d.OwnerID != a.ID {
		t.Fatal("opponent should have planted on its tile")
	}
	if a.Brain.Cooldown() != r.Config().PlacementCooldown {
		t.Fatalf("cooldown = %f", a.Brain.Cooldown())
	}
	if !a.Moving {
		t.Fatal("opponent should step away after planting")
	}
}

func TestBrain_CooldownBlocksPlacement(t *testing.T) {
	r, a := brainRound(t, openGrid(15, 15, 0), TilePos{3, 1}, TilePos{5, 1})
	a.BombCapacity = 2
	a.Brain.cooldown = 1

	a.Brain.Decide(r, a, testDT)
	if a.Brain.State == BrainBombPlacement || len(r.Devices) != 0 {
		t.Fatal("placement during cooldown should not happen")
	}
}

func TestBrain_ObstructedLineChases(t *testing.T) {
	g := openGrid(15, 15, 0)
	g.SetKind(TilePos{4, 1}, TileBreakable)
	r, a := brainRound(t, g, TilePos{3, 1}, TilePos{5, 1})

	a.Brain.Decide(r, a, testDT)
	if a.Brain.State != BrainChase {
		t.Fatalf("state = %s, want chase", a.Brain.State)
	}
	if len(r.Devices) != 0 {
		t.Fatal("no placement through a crate")
	}
	path := a.Brain.Path()
	if len(path) == 0 || path[len(path)-1] != (TilePos{3, 1}) {
		t.Fatalf("chase route should end at the human, got %v", path)
	}
}

func TestBrain_ChaseReusesRoute(t *testing.T) {
	r, a := brainRound(t, openGrid(15, 15, 0), TilePos{1, 1}, TilePos{9, 1})

	a.Brain.Decide(r, a, testDT)
	if a.Brain.State != BrainChase {
		t.Fatalf("state = %s, want chase", a.Brain.State)
	}
	first := a.Brain.Path()
	a.Brain.Decide(r, a, testDT)
	second := a.Brain.Path()
	if len(first) == 0 || &first[0] != &second[0] {
		t.Fatal("a still valid route should not be recomputed")
	}

	// Target moved off the end of the route.
	r.Human().Tile = TilePos{1, 3}
	a.Brain.Decide(r, a, testDT)
	if p := a.Brain.Path(); p[len(p)-1] != (TilePos{1, 3}) {
		t.Fatalf("route should follow the target, ends at %v", p[len(p)-1])
	}
}

func TestBrain_ExplorePlantsNextToCrate(t *testing.T) {
	g := openGrid(15, 15, 0)
	g.SetKind(TilePos{6, 5}, TileBreakable)
	cfg := DefaultConfig()
	r := NewRound(&cfg, WithSeed(5), WithGrid(g), WithOpponentAt(TilePos{5, 5}))
	a := r.Agents[0]

	a.Brain.Decide(r, a, testDT)
	if a.Brain.State != BrainExplore {
		t.Fatalf("state = %s, want explore", a.Brain.State)
	}
	if r.DeviceAt(TilePos{5, 5}) == nil {
		t.Fatal("explorer beside a crate should plant")
	}
}

func TestBrain_ExploreWalksTowardCrate(t *testing.T) {
	g := openGrid(15, 15, 0)
	g.SetKind(TilePos{9, 5}, TileBreakable)
	cfg := DefaultConfig()
	r := NewRound(&cfg, WithSeed(5), WithGrid(g), WithOpponentAt(TilePos{3, 5}))
	a := r.Agents[0]

	a.Brain.Decide(r, a, testDT)
	path := a.Brain.Path()
	if len(path) == 0 || !nextToBreakable(g, path[len(path)-1]) {
		t.Fatalf("explore route should end beside the crate, got %v", path)
	}
	if !a.Moving {
		t.Fatal("explorer should start walking")
	}
}

func TestBrain_Wanders(t *testing.T) {
	cfg := DefaultConfig()
	r := NewRound(&cfg, WithSeed(5), WithGrid(openGrid(15, 15, 0)), WithOpponentAt(TilePos{5, 5}))
	a := r.Agents[0]

	a.Brain.Decide(r, a, testDT)
	if a.Brain.State != BrainExplore || !a.Moving {
		t.Fatalf("lone agent without crates should wander, state=%s moving=%v", a.Brain.State, a.Moving)
	}
}

func TestBrain_BoxedInDoesNothing(t *testing.T) {
	g := openGrid(15, 15, 0)
	boxIn(g, TilePos{13, 13})
	r, a := brainRound(t, g, TilePos{1, 1}, TilePos{13, 13})

	a.Brain.Decide(r, a, testDT)
	if a.Moving || len(r.Devices) != 0 {
		t.Fatal("walled-in agent has nothing to do")
	}
}

func TestClearLine(t *testing.T) {
	g := openGrid(15, 15, 0)
	g.SetKind(TilePos{5, 3}, TileBreakable)
	cases := []struct {
		from, to TilePos
		radius   int
		want     bool
	}{
		{TilePos{1, 1}, TilePos{3, 1}, 2, true},
		{TilePos{1, 1}, TilePos{4, 1}, 2, false},
		{TilePos{1, 1}, TilePos{3, 3}, 4, false},
		{TilePos{3, 3}, TilePos{7, 3}, 4, false},
		{TilePos{1, 1}, TilePos{1, 5}, 4, true},
	}
	for _, c := range cases {
		if got := clearLine(g, c.from, c.to, c.radius); got != c.want {
			t.Fatalf("clearLine(%v,%v,%d) = %v, want %v", c.from, c.to, c.radius, got, c.want)
		}
	}
}

func TestNearestEnemy(t *testing.T) {
	r, a := brainRound(t, openGrid(15, 15, 0), TilePos{3, 1}, TilePos{5, 1})
	if got := r.nearestEnemy(a); got != r.Human() {
		t.Fatal("opponent should target the human")
	}
	r.Human().Dead = true
	if r.nearestEnemy(a) != nil {
		t.Fatal("dead agents are not targets")
	}
}
