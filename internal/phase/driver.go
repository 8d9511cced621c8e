package phase

import "time"

// Phase maps elapsed time onto [0,1) with period loop. Integer nanosecond
// modulo keeps the wrap exact at every multiple of loop.
func Phase(elapsed, loop time.Duration) float64 {
	if loop <= 0 || elapsed <= 0 {
		return 0
	}
	return float64(elapsed%loop) / float64(loop)
}

// Driver measures animation time since a start instant, minus time spent
// paused. Elapsed is always derived from the clock, never summed from
// per-frame deltas.
type Driver struct {
	clock Clock

	start       time.Time
	paused      bool
	pausedAt    time.Time
	pausedTotal time.Duration
}

func NewDriver(clock Clock) *Driver {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Driver{clock: clock, start: clock.Now()}
}

// Reset restarts the loop at phase 0, keeping the pause state.
func (d *Driver) Reset() {
	now := d.clock.Now()
	d.start = now
	d.pausedTotal = 0
	if d.paused {
		d.pausedAt = now
	}
}

func (d *Driver) Pause() {
	if d.paused {
		return
	}
	d.paused = true
	d.pausedAt = d.clock.Now()
}

func (d *Driver) Resume() {
	if !d.paused {
		return
	}
	d.paused = false
	d.pausedTotal += d.clock.Now().Sub(d.pausedAt)
	d.pausedAt = time.Time{}
}

// SetPaused follows an externally owned pause flag.
func (d *Driver) SetPaused(paused bool) {
	if paused {
		d.Pause()
	} else {
		d.Resume()
	}
}

func (d *Driver) Paused() bool { return d.paused }

// Elapsed is the animation time, frozen while paused.
func (d *Driver) Elapsed() time.Duration {
	now := d.clock.Now()
	if d.paused {
		now = d.pausedAt
	}
	e := now.Sub(d.start) - d.pausedTotal
	if e < 0 {
		return 0
	}
	return e
}

// Phase returns the loop phase, pinned to 0 when animation is off.
func (d *Driver) Phase(loop time.Duration, animated bool) float64 {
	if !animated {
		return 0
	}
	return Phase(d.Elapsed(), loop)
}
