package services

import (
	"sync"
	"time"
)

// Debouncer runs fn once the delay has passed without another Trigger.
// Runs of fn never overlap.
type Debouncer struct {
	delay time.Duration
	fn    func()

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64

	run sync.Mutex
}

// NewDebouncer creates a Debouncer for fn.
func NewDebouncer(delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Trigger restarts the delay. It reports whether a pending run was replaced.
func (d *Debouncer) Trigger() (coalesced bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		coalesced = d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
	return coalesced
}

// Cancel drops a pending run without executing it.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

// Flush runs a pending fn immediately and reports whether one was pending.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	if d.timer == nil {
		d.mu.Unlock()
		return false
	}
	d.timer.Stop()
	d.timer = nil
	d.gen++
	d.mu.Unlock()

	d.exec()
	return true
}

// Pending reports whether a run is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.exec()
}

func (d *Debouncer) exec() {
	d.run.Lock()
	defer d.run.Unlock()
	d.fn()
}
