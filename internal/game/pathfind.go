package game

// SafePath returns the shortest 4-connected route from start to goal,
// inclusive of both ends, that only crosses empty tiles not classified
// dangerous by danger (which may be nil). The start tile itself is not
// checked. It returns nil when no such route exists; that is an ordinary
// outcome, not an error. Among equal-length routes the one found first in
// neighbour order wins, which callers should not depend on.
func SafePath(start, goal TilePos, g *Grid, danger DangerCheck) []TilePos {
	if !g.InBounds(start) || !g.InBounds(goal) {
		return nil
	}
	if start == goal {
		return []TilePos{start}
	}
	walkable := func(p TilePos) bool {
		return g.IsPassable(p) && (danger == nil || !danger.IsDangerous(p))
	}
	if !walkable(goal) {
		return nil
	}

	key := func(p TilePos) int { return p.Row*g.Cols + p.Col }
	parent := make([]int, g.Cols*g.Rows)
	for i := range parent {
		parent[i] = -1
	}
	parent[key(start)] = key(start)

	queue := []TilePos{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range cardinal {
			n := cur.Add(d[0], d[1])
			if !g.InBounds(n) || parent[key(n)] >= 0 || !walkable(n) {
				continue
			}
			parent[key(n)] = key(cur)
			if n == goal {
				return buildPath(parent, key(start), key(goal), g.Cols)
			}
			queue = append(queue, n)
		}
	}
	return nil
}

func buildPath(parent []int, from, to, cols int) []TilePos {
	var path []TilePos
	for k := to; ; k = parent[k] {
		path = append(path, TilePos{Col: k % cols, Row: k / cols})
		if k == from {
			break
		}
	}
	// Reverse
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// indexOf returns the position of p in path, or -1.
func indexOf(path []TilePos, p TilePos) int {
	for i, q := range path {
		if q == p {
			return i
		}
	}
	return -1
}
