package core

import "time"

// RepeatMode selects how a Repeater paces its ticks.
type RepeatMode uint8

const (
	// RepeatInterval accumulates elapsed time and fires once per poll while a
	// full interval is banked, so a late loop replays missed ticks.
	RepeatInterval RepeatMode = iota
	// RepeatFrame fires at most once per poll when more than one interval has
	// elapsed and drops the remainder, like a throttled animation frame.
	RepeatFrame
)

// Repeater is a cancellable recurring-step handle polled by a single loop.
// At most one schedule is armed at a time; arming again replaces it.
type Repeater struct {
	mode        RepeatMode
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	armed       bool
	generation  uint64
}

// NewRepeater returns a disarmed Repeater.
func NewRepeater() *Repeater { return &Repeater{} }

// IntervalForTPS converts a ticks-per-second rate to an interval, defaulting
// to 60 TPS.
func IntervalForTPS(tps int) time.Duration {
	if tps <= 0 {
		tps = 60
	}
	return time.Second / time.Duration(tps)
}

// Arm cancels any previous schedule and starts a new one at now.
func (r *Repeater) Arm(mode RepeatMode, interval time.Duration, now time.Time) {
	r.Cancel()
	if interval <= 0 {
		interval = IntervalForTPS(0)
	}
	r.mode = mode
	r.step = interval
	r.last = now
	r.accumulator = 0
	r.armed = true
	r.generation++
}

// Cancel disarms the schedule. It is safe to call when nothing is armed.
func (r *Repeater) Cancel() {
	r.armed = false
	r.accumulator = 0
}

// Armed reports whether a schedule is active.
func (r *Repeater) Armed() bool { return r.armed }

// Generation increments every time Arm is called; it identifies the active
// schedule.
func (r *Repeater) Generation() uint64 { return r.generation }

// Interval returns the armed step interval.
func (r *Repeater) Interval() time.Duration { return r.step }

// Due reports whether one step should run at now.
func (r *Repeater) Due(now time.Time) bool {
	if !r.armed {
		return false
	}
	delta := now.Sub(r.last)
	if delta < 0 {
		delta = 0
	}
	switch r.mode {
	case RepeatFrame:
		if delta > r.step {
			r.last = now.Add(-(delta % r.step))
			return true
		}
		return false
	default:
		r.last = now
		r.accumulator += delta
		if r.accumulator >= r.step {
			r.accumulator -= r.step
			return true
		}
		return false
	}
}

// Next returns the earliest time at which Due may fire, for loops that sleep
// between polls.
func (r *Repeater) Next() time.Time {
	if r.mode == RepeatFrame {
		return r.last.Add(r.step + time.Nanosecond)
	}
	wait := r.step - r.accumulator
	if wait < 0 {
		wait = 0
	}
	return r.last.Add(wait)
}
