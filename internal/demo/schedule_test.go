package demo

import (
	"testing"
	"time"
)

func TestWindowContains(t *testing.T) {
	w := DefaultWindow()

	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"monday morning", time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), true},
		{"monday last hour", time.Date(2025, 6, 2, 20, 59, 0, 0, time.UTC), true},
		{"monday closing time", time.Date(2025, 6, 2, 21, 0, 0, 0, time.UTC), false},
		{"monday before opening", time.Date(2025, 6, 2, 8, 59, 0, 0, time.UTC), false},
		{"friday afternoon", time.Date(2025, 6, 6, 15, 30, 0, 0, time.UTC), true},
		{"saturday", time.Date(2025, 6, 7, 12, 0, 0, 0, time.UTC), false},
		{"sunday", time.Date(2025, 6, 8, 12, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.Contains(tt.t); got != tt.want {
				t.Errorf("Contains(%v): got %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestWindowNextStart(t *testing.T) {
	w := DefaultWindow()

	tests := []struct {
		name string
		t    time.Time
		want time.Time
	}{
		{
			"inside window returns input",
			time.Date(2025, 6, 2, 10, 15, 0, 0, time.UTC),
			time.Date(2025, 6, 2, 10, 15, 0, 0, time.UTC),
		},
		{
			"same day before opening",
			time.Date(2025, 6, 2, 7, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
		},
		{
			"after closing rolls to next day",
			time.Date(2025, 6, 2, 22, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC),
		},
		{
			"friday night rolls to monday",
			time.Date(2025, 6, 6, 22, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC),
		},
		{
			"saturday rolls to monday",
			time.Date(2025, 6, 7, 12, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.NextStart(tt.t); !got.Equal(tt.want) {
				t.Errorf("NextStart(%v): got %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestWindowCustomDays(t *testing.T) {
	w := Window{StartHour: 0, EndHour: 24, Days: []time.Weekday{time.Sunday}}

	sunday := time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)
	if !w.Contains(sunday) {
		t.Errorf("expected sunday midnight inside a 0-24 sunday window")
	}
	monday := time.Date(2025, 6, 9, 12, 0, 0, 0, time.UTC)
	if next := w.NextStart(monday); next.Weekday() != time.Sunday {
		t.Errorf("NextStart from monday: got %v, want a Sunday", next)
	}
}
