package conductor_test

import (
	"testing"
	"time"

	"github.com/nsscreencast/595-audiokit-6/conductor"
)

func collectAlerts(a *conductor.Alerts) []conductor.Alert {
	var got []conductor.Alert
	for alert := range a.Iterate {
		got = append(got, alert)
	}
	return got
}

func TestAlertsStackOldestFirst(t *testing.T) {
	t.Parallel()
	var a conductor.Alerts
	a.Add("first", conductor.Info)
	a.Add("second", conductor.Warning)

	got := collectAlerts(&a)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Message != "first" || got[1].Message != "second" {
		t.Errorf("order = %q, %q; want first, second", got[0].Message, got[1].Message)
	}
	if got[1].Priority != conductor.Warning {
		t.Errorf("Priority = %v, want %v", got[1].Priority, conductor.Warning)
	}
}

func TestNamedAlertReplacesInPlace(t *testing.T) {
	t.Parallel()
	var a conductor.Alerts
	a.AddNamed("MidiInput", "no such device", conductor.Warning)
	a.Add("unrelated", conductor.Info)
	a.AddNamed("MidiInput", "still no such device", conductor.Warning)

	got := collectAlerts(&a)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (named alert must not stack)", len(got))
	}
	if got[0].Message != "still no such device" {
		t.Errorf("named alert = %q, want the replacement, in the original slot", got[0].Message)
	}
}

func TestAlertsExpire(t *testing.T) {
	t.Parallel()
	var a conductor.Alerts
	a.AddAlert(conductor.Alert{Message: "short", Duration: 10 * time.Millisecond})
	a.AddAlert(conductor.Alert{Message: "long", Duration: time.Hour})

	if !a.Update(time.Now()) {
		t.Fatal("Update() = false right after adding")
	}
	if showing := a.Update(time.Now().Add(time.Second)); !showing {
		t.Fatal("Update() = false while the long alert remains")
	}
	got := collectAlerts(&a)
	if len(got) != 1 || got[0].Message != "long" {
		t.Fatalf("alerts after expiry = %v, want just the long one", got)
	}
	if showing := a.Update(time.Now().Add(2 * time.Hour)); showing {
		t.Error("Update() = true after everything expired")
	}
}

func TestAlertDefaultDuration(t *testing.T) {
	t.Parallel()
	var a conductor.Alerts
	a.AddAlert(conductor.Alert{Message: "zero duration"})

	// the default duration is applied, so it is still showing well after the
	// add but gone a few seconds later
	if !a.Update(time.Now().Add(time.Second)) {
		t.Error("alert with zero duration expired immediately")
	}
	if a.Update(time.Now().Add(time.Minute)) {
		t.Error("alert with zero duration never expired")
	}
}
