package game

import (
	"math/rand"
	"testing"
)

// dangerSet marks a fixed set of tiles as dangerous.
type dangerSet map[TilePos]bool

func (d dangerSet) IsDangerous(p TilePos) bool { return d[p] }

func checkPath(t *testing.T, g *Grid, path []TilePos, start, goal TilePos, danger DangerCheck) {
	t.Helper()
	if path[0] != start || path[len(path)-1] != goal {
		t.Fatalf("path %v does not run from %v to %v", path, start, goal)
	}
	for i := 1; i < len(path); i++ {
		if path[i-1].Manhattan(path[i]) != 1 {
			t.Fatalf("path %v jumps between %v and %v", path, path[i-1], path[i])
		}
		if !g.IsPassable(path[i]) {
			t.Fatalf("path crosses impassable %v", path[i])
		}
		if danger != nil && danger.IsDangerous(path[i]) {
			t.Fatalf("path crosses dangerous %v", path[i])
		}
	}
}

func TestSafePath_Straight(t *testing.T) {
	g := openGrid(15, 15, 0)
	path := SafePath(TilePos{1, 1}, TilePos{5, 1}, g, nil)
	if len(path) != 5 {
		t.Fatalf("expected 5 tiles, got %v", path)
	}
	checkPath(t, g, path, TilePos{1, 1}, TilePos{5, 1}, nil)
}

func TestSafePath_DetoursAroundDanger(t *testing.T) {
	g := openGrid(15, 15, 0)
	danger := dangerSet{{3, 1}: true}
	path := SafePath(TilePos{1, 1}, TilePos{5, 1}, g, danger)
	if path == nil {
		t.Fatal("a detour exists")
	}
	checkPath(t, g, path, TilePos{1, 1}, TilePos{5, 1}, danger)
	// down to row 3, across, and back up
	if len(path) != 9 {
		t.Fatalf("expected the 9 tile detour, got %v", path)
	}
}

func TestSafePath_StartIsNotChecked(t *testing.T) {
	g := openGrid(15, 15, 0)
	danger := dangerSet{{1, 1}: true}
	if SafePath(TilePos{1, 1}, TilePos{3, 1}, g, danger) == nil {
		t.Fatal("standing in danger must not prevent leaving")
	}
}

func TestSafePath_NoRoute(t *testing.T) {
	g := openGrid(15, 15, 0)
	cases := []struct {
		name        string
		start, goal TilePos
		danger      DangerCheck
	}{
		{"goal solid", TilePos{1, 1}, TilePos{2, 2}, nil},
		{"goal dangerous", TilePos{1, 1}, TilePos{3, 1}, dangerSet{{3, 1}: true}},
		{"goal out of bounds", TilePos{1, 1}, TilePos{20, 1}, nil},
		{"start out of bounds", TilePos{-1, 1}, TilePos{1, 1}, nil},
		{"walled off", TilePos{1, 1}, TilePos{13, 13}, dangerSet{{2, 1}: true, {1, 2}: true}},
	}
	for _, c := range cases {
		if p := SafePath(c.start, c.goal, g, c.danger); p != nil {
			t.Fatalf("%s: expected nil, got %v", c.name, p)
		}
	}
}

func TestSafePath_StartEqualsGoal(t *testing.T) {
	g := openGrid(9, 9, 0)
	p := SafePath(TilePos{3, 3}, TilePos{3, 3}, g, nil)
	if len(p) != 1 || p[0] != (TilePos{3, 3}) {
		t.Fatalf("expected single tile path, got %v", p)
	}
}

func TestSafePath_RandomGrids(t *testing.T) {
	cfg := DefaultConfig()
	for seed := int64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		g := GenerateGrid(&cfg, rng)

		var empty []TilePos
		for row := 0; row < g.Rows; row++ {
			for col := 0; col < g.Cols; col++ {
				if p := (TilePos{col, row}); g.IsPassable(p) {
					empty = append(empty, p)
				}
			}
		}
		if len(empty) < 2 {
			continue
		}
		for i := 0; i < 30; i++ {
			a := empty[rng.Intn(len(empty))]
			b := empty[rng.Intn(len(empty))]
			ab := SafePath(a, b, g, nil)
			ba := SafePath(b, a, g, nil)
			if (ab == nil) != (ba == nil) {
				t.Fatalf("seed %d: reachability of %v and %v is not symmetric", seed, a, b)
			}
			if ab == nil {
				continue
			}
			checkPath(t, g, ab, a, b, nil)
			if len(ab) != len(ba) {
				t.Fatalf("seed %d: shortest routes differ in length %d vs %d", seed, len(ab), len(ba))
			}
		}
	}
}
