package conductor_test

import (
	"testing"
	"time"

	"github.com/nsscreencast/595-audiokit-6/conductor"
)

func TestTickerFiresOnNextTickAndThenPerInterval(t *testing.T) {
	t.Parallel()
	ticker := conductor.NewTicker()
	calls := 0
	ticker.Register(50*time.Millisecond, func(now time.Time) { calls++ })

	base := time.Unix(100, 0)
	for i := 0; i < 5; i++ {
		ticker.Tick(base.Add(time.Duration(i) * 16 * time.Millisecond))
	}
	// fires at +0ms and again at +64ms, the first base tick past the 50 ms
	// deadline
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestTickerEntriesKeepTheirOwnIntervals(t *testing.T) {
	t.Parallel()
	ticker := conductor.NewTicker()
	var fast, slow int
	ticker.Register(16*time.Millisecond, func(now time.Time) { fast++ })
	ticker.Register(100*time.Millisecond, func(now time.Time) { slow++ })

	base := time.Unix(100, 0)
	for i := 0; i < 10; i++ {
		ticker.Tick(base.Add(time.Duration(i) * 16 * time.Millisecond))
	}
	if fast != 10 {
		t.Errorf("fast calls = %d, want 10", fast)
	}
	// +0ms and +112ms
	if slow != 2 {
		t.Errorf("slow calls = %d, want 2", slow)
	}
}

func TestTickerUnregister(t *testing.T) {
	t.Parallel()
	ticker := conductor.NewTicker()
	calls := 0
	e := ticker.Register(time.Millisecond, func(now time.Time) { calls++ })

	base := time.Unix(100, 0)
	ticker.Tick(base)
	ticker.Unregister(e)
	if ticker.Len() != 0 {
		t.Errorf("Len() = %d, want 0", ticker.Len())
	}
	ticker.Tick(base.Add(16 * time.Millisecond))
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	ticker.Unregister(e) // second time is a no-op
	ticker.Unregister(nil)
}

func TestTickerEntryMayUnregisterItself(t *testing.T) {
	t.Parallel()
	ticker := conductor.NewTicker()
	calls := 0
	var e *conductor.TickerEntry
	e = ticker.Register(time.Millisecond, func(now time.Time) {
		calls++
		ticker.Unregister(e)
	})

	base := time.Unix(100, 0)
	ticker.Tick(base)
	ticker.Tick(base.Add(16 * time.Millisecond))
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if ticker.Len() != 0 {
		t.Errorf("Len() = %d, want 0", ticker.Len())
	}
}

func TestTickerEntryRegisteredDuringTickRunsNextTick(t *testing.T) {
	t.Parallel()
	ticker := conductor.NewTicker()
	var second int
	ticker.Register(time.Hour, func(now time.Time) {
		ticker.Register(time.Millisecond, func(now time.Time) { second++ })
	})

	base := time.Unix(100, 0)
	ticker.Tick(base)
	if second != 0 {
		t.Fatalf("second entry ran on the tick that registered it")
	}
	ticker.Tick(base.Add(16 * time.Millisecond))
	if second != 1 {
		t.Errorf("second entry calls = %d, want 1", second)
	}
}
