package conductor

import "time"

type (
	// Ticker fans one base tick source out to any number of registered update
	// functions, each with its own interval. The GUI event loop owns the base
	// time.Ticker and calls Tick on every beat; entries whose deadline has
	// passed run right there, so update functions never run concurrently with
	// each other or with model code. Features that need periodic work (the
	// autopan sweep, the mixer progress bar) register an entry while active
	// and unregister it when switched off, so an idle screen costs nothing.
	Ticker struct {
		entries []*TickerEntry
		due     []*TickerEntry
	}

	// TickerEntry is a handle to a registered update function; keep it to
	// Unregister the function later.
	TickerEntry struct {
		interval time.Duration
		deadline time.Time
		fn       func(now time.Time)
	}
)

// TickerInterval is the base tick period. Entry intervals at or below it run
// once per base tick.
const TickerInterval = 16 * time.Millisecond

func NewTicker() *Ticker {
	return &Ticker{}
}

// Register adds fn to the tick set. It first runs on the next Tick and then
// once per interval.
func (t *Ticker) Register(interval time.Duration, fn func(now time.Time)) *TickerEntry {
	e := &TickerEntry{interval: interval, fn: fn}
	t.entries = append(t.entries, e)
	return e
}

// Unregister removes e from the tick set. Unregistering nil or an entry that
// was already removed is a no-op.
func (t *Ticker) Unregister(e *TickerEntry) {
	if e == nil {
		return
	}
	for i, x := range t.entries {
		if x == e {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			return
		}
	}
}

// Tick runs every entry whose deadline has elapsed. The due set is collected
// before any function runs, so an update function may safely register and
// unregister entries, itself included.
func (t *Ticker) Tick(now time.Time) {
	t.due = t.due[:0]
	for _, e := range t.entries {
		if e.deadline.After(now) {
			continue
		}
		e.deadline = now.Add(e.interval)
		t.due = append(t.due, e)
	}
	for _, e := range t.due {
		e.fn(now)
	}
}

// Len returns the number of registered entries.
func (t *Ticker) Len() int {
	return len(t.entries)
}
