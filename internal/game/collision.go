package game

// tileBounds returns the pixel rectangle covered by tile p.
func tileBounds(p TilePos, tileSize float64) (x0, y0, x1, y1 float64) {
	x0 = float64(p.Col) * tileSize
	y0 = float64(p.Row) * tileSize
	return x0, y0, x0 + tileSize, y0 + tileSize
}

// overlaps is a strict AABB test; touching edges do not count.
func overlaps(ax0, ay0, ax1, ay1, bx0, by0, bx1, by1 float64) bool {
	return ax0 < bx1 && ax1 > bx0 && ay0 < by1 && ay1 > by0
}

// touchesBlast reports whether a's box intersects any live segment.
func (r *Round) touchesBlast(a *Agent) bool {
	ax0, ay0, ax1, ay1 := a.Bounds()
	for _, b := range r.Blasts {
		bx0, by0, bx1, by1 := tileBounds(b.Tile, r.cfg.TileSize)
		if overlaps(ax0, ay0, ax1, ay1, bx0, by0, bx1, by1) {
			return true
		}
	}
	return false
}

// resolveDamage costs every exposed, vulnerable agent one life and starts
// its invulnerability window.
func (r *Round) resolveDamage() {
	for _, a := range r.Agents {
		if a.Dead || a.Invulnerable > 0 || !r.touchesBlast(a) {
			continue
		}
		a.Lives--
		a.Invulnerable = r.cfg.InvulnerabilityDuration
		r.emit(Event{Kind: EventAgentDamaged, AgentID: a.ID, Tile: a.Tile, Lives: a.Lives})
		if a.Lives <= 0 {
			a.Lives = 0
			a.Dead = true
			// Dead agents rest on the tile they occupied.
			a.Moving = false
			a.Target = a.Tile
			a.X, a.Y = TileToWorld(a.Tile, r.cfg.TileSize)
			r.log.Info().Int("tick", r.tick).Str("agent", a.Label()).Msg("agent died")
			r.emit(Event{Kind: EventAgentDied, AgentID: a.ID, Tile: a.Tile})
		}
	}
}

// resolvePickups hands the power-up under each live agent to that agent.
func (r *Round) resolvePickups() {
	for _, a := range r.Agents {
		if a.Dead {
			continue
		}
		pu := r.Grid.TakePowerUp(a.Tile)
		if pu == PowerUpNone {
			continue
		}
		a.applyPowerUp(pu, r.cfg)
		r.emit(Event{Kind: EventPowerUpCollected, AgentID: a.ID, Tile: a.Tile, PowerUp: pu})
	}
}
