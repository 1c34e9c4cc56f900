// Package timer provides frame-driven repeating tasks.
//
// A Repeating timer never runs on its own goroutine: the owner advances it
// once per frame with the elapsed time and acts when it reports a fire.
// Because there is exactly one schedule per Repeating value, restarting it
// can never leave a second schedule behind.
package timer

import "time"

// Repeating fires once every period while running.
type Repeating struct {
	period  time.Duration
	elapsed time.Duration
	running bool
}

// NewRepeating creates a stopped timer with the given period.
func NewRepeating(period time.Duration) *Repeating {
	return &Repeating{period: period}
}

// Start (re)starts the schedule from zero with the current period.
func (r *Repeating) Start() {
	r.elapsed = 0
	r.running = r.period > 0
}

// Stop cancels the schedule. Time that passes while stopped is not counted.
func (r *Repeating) Stop() {
	r.running = false
	r.elapsed = 0
}

// Reset replaces the period and restarts the schedule.
func (r *Repeating) Reset(period time.Duration) {
	r.period = period
	r.Start()
}

// Running reports whether the timer is scheduled.
func (r *Repeating) Running() bool {
	return r.running
}

// Period returns the configured period.
func (r *Repeating) Period() time.Duration {
	return r.period
}

// Advance moves the timer forward by dt and reports whether it fired.
// It fires at most once per call; a long stall does not produce a burst of
// catch-up fires.
func (r *Repeating) Advance(dt time.Duration) bool {
	if !r.running {
		return false
	}
	r.elapsed += dt
	if r.elapsed < r.period {
		return false
	}
	r.elapsed -= r.period
	if r.elapsed >= r.period {
		r.elapsed = 0
	}
	return true
}
