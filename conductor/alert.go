package conductor

import "time"

type (
	// Alert is a message briefly shown to the user in the alert bar at the
	// bottom of the window. An Alert with a Name replaces any previous alert
	// with the same name instead of stacking, so a repeating condition does
	// not flood the bar.
	Alert struct {
		Name     string
		Priority AlertPriority
		Message  string
		Duration time.Duration
	}

	AlertPriority int

	// Alerts holds the alerts currently showing, oldest first. It is owned by
	// the model and only touched from the GUI event loop.
	Alerts struct {
		list []alertInstance
	}

	alertInstance struct {
		Alert
		expires time.Time
	}
)

const (
	None AlertPriority = iota
	Info
	Warning
	Error
)

const defaultAlertDuration = 3 * time.Second

// Add shows an unnamed alert with the default duration.
func (a *Alerts) Add(message string, priority AlertPriority) {
	a.AddAlert(Alert{Message: message, Priority: priority, Duration: defaultAlertDuration})
}

// AddNamed shows a named alert with the default duration, replacing any
// previous alert with the same name.
func (a *Alerts) AddNamed(name, message string, priority AlertPriority) {
	a.AddAlert(Alert{Name: name, Message: message, Priority: priority, Duration: defaultAlertDuration})
}

func (a *Alerts) AddAlert(n Alert) {
	if n.Duration <= 0 {
		n.Duration = defaultAlertDuration
	}
	inst := alertInstance{Alert: n, expires: time.Now().Add(n.Duration)}
	if n.Name != "" {
		for i := range a.list {
			if a.list[i].Name == n.Name {
				a.list[i] = inst
				return
			}
		}
	}
	a.list = append(a.list, inst)
}

// Update drops the alerts whose duration has passed. It returns true if any
// alert is still showing, so the caller knows to keep redrawing.
func (a *Alerts) Update(now time.Time) bool {
	keep := a.list[:0]
	for _, inst := range a.list {
		if inst.expires.After(now) {
			keep = append(keep, inst)
		}
	}
	for i := len(keep); i < len(a.list); i++ {
		a.list[i] = alertInstance{}
	}
	a.list = keep
	return len(a.list) > 0
}

// Iterate can be ranged over to get the active alerts, oldest first.
func (a *Alerts) Iterate(yield func(a Alert) bool) {
	for _, inst := range a.list {
		if !yield(inst.Alert) {
			return
		}
	}
}
