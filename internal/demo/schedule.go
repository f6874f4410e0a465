package demo

import "time"

// Window describes when the order scheduler is allowed to place demo orders:
// between StartHour (inclusive) and EndHour (exclusive) on the listed
// weekdays.
type Window struct {
	StartHour int
	EndHour   int
	Days      []time.Weekday
}

// DefaultWindow is Monday-Friday, 09:00-21:00.
func DefaultWindow() Window {
	return Window{
		StartHour: 9,
		EndHour:   21,
		Days: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
		},
	}
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if !w.activeDay(t.Weekday()) {
		return false
	}
	h := t.Hour()
	return h >= w.StartHour && h < w.EndHour
}

// NextStart returns the next window opening at or after t. When t is already
// inside the window, t itself is returned.
func (w Window) NextStart(t time.Time) time.Time {
	if w.Contains(t) {
		return t
	}

	// Same day, before opening.
	if w.activeDay(t.Weekday()) && t.Hour() < w.StartHour {
		return time.Date(t.Year(), t.Month(), t.Day(), w.StartHour, 0, 0, 0, t.Location())
	}

	next := t.AddDate(0, 0, 1)
	for !w.activeDay(next.Weekday()) {
		next = next.AddDate(0, 0, 1)
	}
	return time.Date(next.Year(), next.Month(), next.Day(), w.StartHour, 0, 0, 0, t.Location())
}

func (w Window) activeDay(d time.Weekday) bool {
	for _, day := range w.Days {
		if day == d {
			return true
		}
	}
	return false
}
