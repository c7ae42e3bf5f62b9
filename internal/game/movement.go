package game

// AttemptMove asks the agent to step one tile by (dCol, dRow). It is
// rejected while already moving, for anything but a single cardinal step, or
// when the destination is off the grid or not passable. Acceptance only
// starts the move; Advance completes it.
func (a *Agent) AttemptMove(g *Grid, dCol, dRow int) bool {
	if a.Dead || a.Moving || absInt(dCol)+absInt(dRow) != 1 {
		return false
	}
	dest := a.Tile.Add(dCol, dRow)
	if !g.InBounds(dest) || !g.IsPassable(dest) {
		return false
	}
	a.Target = dest
	a.DirCol, a.DirRow = dCol, dRow
	a.Moving = true
	return true
}

// Advance moves the agent toward its target tile at Speed for dt seconds.
// Each axis snaps onto the target the moment it would overshoot; once both
// axes are there the move completes and Tile becomes Target.
func (a *Agent) Advance(dt, tileSize float64) {
	if !a.Moving {
		return
	}
	tx, ty := TileToWorld(a.Target, tileSize)
	step := a.Speed * dt

	var reachedX, reachedY bool
	a.X, reachedX = approach(a.X, tx, float64(a.DirCol)*step)
	a.Y, reachedY = approach(a.Y, ty, float64(a.DirRow)*step)

	if reachedX && reachedY {
		a.Moving = false
		a.Tile = a.Target
		a.DirCol, a.DirRow = 0, 0
	}
}

// approach displaces cur by delta and snaps onto target if that would reach
// or pass it.
func approach(cur, target, delta float64) (float64, bool) {
	if cur == target {
		return target, true
	}
	next := cur + delta
	if (cur < target && next >= target) || (cur > target && next <= target) {
		return target, true
	}
	return next, false
}
