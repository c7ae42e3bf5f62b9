package game

// Orientation describes how a blast segment is drawn.
type Orientation int

const (
	OrientCenter Orientation = iota
	OrientHorizontal
	OrientVertical
)

func (o Orientation) String() string {
	switch o {
	case OrientCenter:
		return "center"
	case OrientHorizontal:
		return "horizontal"
	case OrientVertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// BlastSegment is a short-lived hazard covering one tile.
type BlastSegment struct {
	Tile        TilePos
	Orientation Orientation
	Terminal    bool    // last tile of its ray
	Remaining   float64 // seconds until it fades
	DeviceID    int
}

// Detonate explodes d: the owner gets its device back, a centre segment and
// up to Radius segments per cardinal ray are created, breakable tiles hit by
// a ray are destroyed and stop it, solid tiles stop a ray without a segment,
// and other devices caught in the blast are primed. Detonating a device that
// is no longer active does nothing.
func (r *Round) Detonate(d *Device) []*BlastSegment {
	if !r.removeDevice(d) {
		return nil
	}
	if owner := r.AgentByID(d.OwnerID); owner != nil {
		if owner.BombsInFlight > 0 {
			owner.BombsInFlight--
		}
	} else {
		r.log.Debug().Int("device", d.ID).Int("owner", d.OwnerID).Msg("detonated device has no owner")
	}

	life := r.cfg.BlastLifetime
	segs := []*BlastSegment{{Tile: d.Tile, Orientation: OrientCenter, Remaining: life, DeviceID: d.ID}}
	for _, dir := range cardinal {
		orient := OrientVertical
		if dir[0] != 0 {
			orient = OrientHorizontal
		}
		for i := 1; i <= d.Radius; i++ {
			p := d.Tile.Add(dir[0]*i, dir[1]*i)
			kind := r.Grid.Kind(p)
			if kind == TileSolid {
				break
			}
			segs = append(segs, &BlastSegment{
				Tile:        p,
				Orientation: orient,
				Terminal:    i == d.Radius || kind == TileBreakable,
				Remaining:   life,
				DeviceID:    d.ID,
			})
			if other := r.DeviceAt(p); other != nil {
				other.prime()
			}
			if kind == TileBreakable {
				pu, _ := r.Grid.Destroy(p)
				r.emit(Event{Kind: EventBlockDestroyed, AgentID: d.OwnerID, DeviceID: d.ID, Tile: p, PowerUp: pu})
				break
			}
		}
	}
	r.Blasts = append(r.Blasts, segs...)

	r.log.Debug().Int("tick", r.tick).Int("device", d.ID).Int("segments", len(segs)).Msg("device detonated")
	r.emit(Event{Kind: EventDeviceDetonated, AgentID: d.OwnerID, DeviceID: d.ID, Tile: d.Tile})
	return segs
}

// updateBlasts ages every segment and drops the expired ones.
func (r *Round) updateBlasts(dt float64) {
	kept := r.Blasts[:0]
	for _, b := range r.Blasts {
		b.Remaining -= dt
		if b.Remaining > 0 {
			kept = append(kept, b)
		}
	}
	for i := len(kept); i < len(r.Blasts); i++ {
		r.Blasts[i] = nil
	}
	r.Blasts = kept
}

// BlastAt reports whether any live segment covers p.
func (r *Round) BlastAt(p TilePos) bool {
	for _, b := range r.Blasts {
		if b.Tile == p {
			return true
		}
	}
	return false
}
