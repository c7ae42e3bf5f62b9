package game

// Device is a planted explosive counting down to detonation.
type Device struct {
	ID        int
	Tile      TilePos
	Fuse      float64 // seconds left
	FuseTotal float64
	Radius    int
	OwnerID   int
}

// Tick burns dt seconds of fuse and reports whether the device is due.
func (d *Device) Tick(dt float64) bool {
	d.Fuse -= dt
	return d.Fuse <= 0
}

// Imminent reports whether the fuse has entered its final fraction.
func (d *Device) Imminent(fraction float64) bool {
	return d.Fuse <= fraction*d.FuseTotal
}

// prime forces the fuse to zero so the device goes off at its next check.
func (d *Device) prime() {
	if d.Fuse > 0 {
		d.Fuse = 0
	}
}

// DeviceAt returns the device occupying p, or nil.
func (r *Round) DeviceAt(p TilePos) *Device {
	for _, d := range r.Devices {
		if d.Tile == p {
			return d
		}
	}
	return nil
}

// Place plants a device on the agent's tile. It returns nil when the agent
// is at capacity, mid-move, dead, or the tile already holds a device.
func (r *Round) Place(a *Agent) *Device {
	if !a.CanPlace() || r.DeviceAt(a.Tile) != nil {
		return nil
	}
	a.BombsInFlight++
	r.nextDeviceID++
	d := &Device{
		ID:        r.nextDeviceID,
		Tile:      a.Tile,
		Fuse:      r.cfg.FuseDuration,
		FuseTotal: r.cfg.FuseDuration,
		Radius:    a.BlastRadius,
		OwnerID:   a.ID,
	}
	r.Devices = append(r.Devices, d)
	r.emit(Event{Kind: EventDevicePlaced, AgentID: a.ID, DeviceID: d.ID, Tile: d.Tile})
	return d
}

// updateDevices burns every fuse, then detonates the devices that were due
// at the start of the pass. Devices primed by those detonations wait for
// their own check on the next pass.
func (r *Round) updateDevices(dt float64) {
	var due []*Device
	for _, d := range r.Devices {
		if d.Tick(dt) {
			due = append(due, d)
		}
	}
	for _, d := range due {
		r.Detonate(d)
	}
}

func (r *Round) removeDevice(d *Device) bool {
	for i, other := range r.Devices {
		if other == d {
			r.Devices = append(r.Devices[:i], r.Devices[i+1:]...)
			return true
		}
	}
	return false
}
