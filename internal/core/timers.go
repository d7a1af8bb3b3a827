package core

// Scheduler runs tick-based callbacks on the simulation loop.
// There is no goroutine behind it: callbacks fire from Advance, which the
// owner calls once per tick. Cancellation is cooperative; a stopped
// scheduler or a cancelled timer never runs its callback.
type Scheduler struct {
	now     uint64
	timers  []*Timer
	stopped bool
}

// Timer is a handle to a scheduled callback.
type Timer struct {
	at        uint64
	every     uint64
	fn        func()
	cancelled bool
}

// Cancel prevents the callback from running. Safe on nil.
func (t *Timer) Cancel() {
	if t != nil {
		t.cancelled = true
	}
}

// Active reports whether the timer may still fire.
func (t *Timer) Active() bool {
	return t != nil && !t.cancelled
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the number of ticks advanced so far.
func (s *Scheduler) Now() uint64 {
	return s.now
}

// After schedules fn to run once, ticks ticks from now.
func (s *Scheduler) After(ticks int, fn func()) *Timer {
	if ticks < 1 {
		ticks = 1
	}
	t := &Timer{at: s.now + uint64(ticks), fn: fn}
	if s.stopped {
		t.cancelled = true
		return t
	}
	s.timers = append(s.timers, t)
	return t
}

// Every schedules fn to run every ticks ticks until cancelled.
func (s *Scheduler) Every(ticks int, fn func()) *Timer {
	t := s.After(ticks, fn)
	t.every = t.at - s.now
	return t
}

// Advance moves time forward one tick and runs due callbacks.
func (s *Scheduler) Advance() {
	if s.stopped {
		return
	}
	s.now++

	due := s.timers[:0:0]
	pending := s.timers[:0]
	for _, t := range s.timers {
		switch {
		case t.cancelled:
		case t.at <= s.now:
			due = append(due, t)
			if t.every > 0 {
				t.at = s.now + t.every
				pending = append(pending, t)
			}
		default:
			pending = append(pending, t)
		}
	}
	s.timers = pending

	for _, t := range due {
		// A callback may cancel later timers or stop the scheduler.
		if s.stopped || t.cancelled {
			continue
		}
		t.fn()
	}
}

// Pending returns the number of live timers.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// CancelAll cancels every pending timer but keeps the scheduler usable.
func (s *Scheduler) CancelAll() {
	for _, t := range s.timers {
		t.cancelled = true
	}
	s.timers = nil
}

// Stop cancels everything and refuses future timers.
func (s *Scheduler) Stop() {
	s.CancelAll()
	s.stopped = true
}

// Stopped reports whether Stop has been called.
func (s *Scheduler) Stopped() bool {
	return s.stopped
}

// Countdown is a tick-based timer that only moves when ticked.
type Countdown struct {
	remaining int
	tickRate  int
}

// NewCountdown creates a countdown of the given length in seconds.
func NewCountdown(seconds, tickRate int) Countdown {
	if tickRate <= 0 {
		tickRate = 60
	}
	return Countdown{remaining: seconds * tickRate, tickRate: tickRate}
}

// Tick consumes one tick and returns true when the countdown has just expired.
func (c *Countdown) Tick() bool {
	if c.remaining <= 0 {
		return false
	}
	c.remaining--
	return c.remaining == 0
}

// Expired reports whether the countdown reached zero.
func (c Countdown) Expired() bool {
	return c.remaining <= 0
}

// Seconds returns the whole seconds left, rounded up.
func (c Countdown) Seconds() int {
	if c.remaining <= 0 {
		return 0
	}
	return (c.remaining + c.tickRate - 1) / c.tickRate
}

// Remaining returns the ticks left.
func (c Countdown) Remaining() int {
	return c.remaining
}

// Penalty is the transient "shake" shown after a rejected move.
// It carries no game state; it only affects rendering.
type Penalty struct {
	ticks int
}

// DefaultPenaltyTicks is how long a shake lasts at 60 ticks per second.
const DefaultPenaltyTicks = 18

// Trigger starts (or restarts) the shake.
func (p *Penalty) Trigger() {
	p.ticks = DefaultPenaltyTicks
}

// Tick advances the effect.
func (p *Penalty) Tick() {
	if p.ticks > 0 {
		p.ticks--
	}
}

// Active reports whether the shake is running.
func (p Penalty) Active() bool {
	return p.ticks > 0
}

// Offset returns the horizontal shake offset in cells.
func (p Penalty) Offset() int {
	if p.ticks == 0 {
		return 0
	}
	if (p.ticks/3)%2 == 0 {
		return 1
	}
	return -1
}

// Reset clears the effect.
func (p *Penalty) Reset() {
	p.ticks = 0
}
