package game

// IsDangerous reports whether p lies on the row or column of a device whose
// fuse has entered its final cfg.DangerFuseFraction, within that device's
// radius. Solid tiles between the device and p are not considered, so this
// over-approximates the real blast.
func IsDangerous(cfg *Config, p TilePos, devices []*Device) bool {
	for _, d := range devices {
		if d.Imminent(cfg.DangerFuseFraction) && inBlastLine(d.Tile, p, d.Radius) {
			return true
		}
	}
	return false
}

func inBlastLine(center, p TilePos, radius int) bool {
	switch {
	case center.Row == p.Row:
		return absInt(center.Col-p.Col) <= radius
	case center.Col == p.Col:
		return absInt(center.Row-p.Row) <= radius
	default:
		return false
	}
}

// DangerCheck classifies tiles for the planner.
type DangerCheck interface {
	IsDangerous(p TilePos) bool
}

// ThreatMap is the danger view a brain plans against: imminent devices plus
// tiles still covered by a live blast segment.
type ThreatMap struct {
	cfg     *Config
	devices []*Device
	blasts  []*BlastSegment
}

func NewThreatMap(cfg *Config, devices []*Device, blasts []*BlastSegment) *ThreatMap {
	return &ThreatMap{cfg: cfg, devices: devices, blasts: blasts}
}

// IsDangerous implements DangerCheck.
func (tm *ThreatMap) IsDangerous(p TilePos) bool {
	if IsDangerous(tm.cfg, p, tm.devices) {
		return true
	}
	for _, b := range tm.blasts {
		if b.Tile == p {
			return true
		}
	}
	return false
}

// Threats returns the current threat view of the round.
func (r *Round) Threats() *ThreatMap {
	return NewThreatMap(r.cfg, r.Devices, r.Blasts)
}
