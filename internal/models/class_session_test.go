package models

import (
	"errors"
	"testing"
	"time"

	weekerrors "github.com/campuswellness/weekplan/internal/errors"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestClassSession_Validate(t *testing.T) {
	valid := ClassSession{
		Name:      "CS 101",
		Weekdays:  []time.Weekday{time.Monday, time.Wednesday},
		Start:     NewTimeOfDay(9, 0),
		End:       NewTimeOfDay(10, 0),
		FirstDate: date(2024, 9, 2),
	}

	tests := []struct {
		name    string
		mutate  func(c *ClassSession)
		wantErr bool
	}{
		{"valid session", func(c *ClassSession) {}, false},
		{"empty name", func(c *ClassSession) { c.Name = " " }, true},
		{"missing second weekday", func(c *ClassSession) { c.Weekdays = []time.Weekday{time.Monday} }, true},
		{"no weekdays", func(c *ClassSession) { c.Weekdays = nil }, true},
		{"duplicate weekday", func(c *ClassSession) { c.Weekdays = []time.Weekday{time.Friday, time.Friday} }, true},
		{"start equals end", func(c *ClassSession) { c.End = c.Start }, true},
		{"start after end", func(c *ClassSession) { c.Start, c.End = c.End, c.Start }, true},
		{"missing first date", func(c *ClassSession) { c.FirstDate = time.Time{} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			c.Weekdays = append([]time.Weekday(nil), valid.Weekdays...)
			tt.mutate(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, weekerrors.ErrValidation) {
				t.Errorf("Validate() error = %v, want a validation error", err)
			}
		})
	}
}

func TestClassSession_ActiveOn(t *testing.T) {
	c := ClassSession{
		Weekdays:  []time.Weekday{time.Tuesday, time.Thursday},
		FirstDate: date(2024, 9, 3),
	}

	tests := []struct {
		name string
		day  time.Time
		want bool
	}{
		{"first tuesday", date(2024, 9, 3), true},
		{"thursday", date(2024, 9, 5), true},
		{"wednesday", date(2024, 9, 4), false},
		{"tuesday before first date", date(2024, 8, 27), false},
		{"later tuesday with time", time.Date(2024, 10, 1, 15, 30, 0, 0, time.UTC), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.ActiveOn(tt.day); got != tt.want {
				t.Errorf("ActiveOn(%s) = %v, want %v", tt.day.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestClassSession_Covers(t *testing.T) {
	c := ClassSession{Start: NewTimeOfDay(9, 0), End: NewTimeOfDay(10, 0)}
	if !c.Covers(NewTimeOfDay(9, 0)) {
		t.Error("Covers(09:00) = false, want true")
	}
	if !c.Covers(NewTimeOfDay(9, 59)) {
		t.Error("Covers(09:59) = false, want true")
	}
	if c.Covers(NewTimeOfDay(10, 0)) {
		t.Error("Covers(10:00) = true, want false (end is exclusive)")
	}
}

func TestParseWeekdays(t *testing.T) {
	tests := []struct {
		in      string
		want    []time.Weekday
		wantErr bool
	}{
		{"mon,wed", []time.Weekday{time.Monday, time.Wednesday}, false},
		{"Tuesday, Thursday", []time.Weekday{time.Tuesday, time.Thursday}, false},
		{"0,6", []time.Weekday{time.Sunday, time.Saturday}, false},
		{"mon,funday", nil, true},
		{"7", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWeekdays(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseWeekdays(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseWeekdays(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseWeekdays(%q)[%d] = %v, want %v", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseClassSession(t *testing.T) {
	today := time.Date(2024, 10, 7, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		days      string
		start     string
		end       string
		first     string
		wantErr   error
		wantFirst time.Time
	}{
		{"valid", "mon,wed", "09:00", "10:15", "2024-09-02", nil, date(2024, 9, 2)},
		{"first defaults to today", "tue,thu", "13:00", "14:00", "", nil, date(2024, 10, 7)},
		{"one weekday", "mon", "09:00", "10:00", "", weekerrors.ErrValidation, time.Time{}},
		{"unknown weekday", "mon,funday", "09:00", "10:00", "", weekerrors.ErrParse, time.Time{}},
		{"bad start", "mon,wed", "9am", "10:00", "", weekerrors.ErrParse, time.Time{}},
		{"end before start", "mon,wed", "10:00", "09:00", "", weekerrors.ErrValidation, time.Time{}},
		{"bad first date", "mon,wed", "09:00", "10:00", "2024-02-30", weekerrors.ErrParse, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseClassSession("alice", " Calculus ", tt.days, tt.start, tt.end, tt.first, time.UTC, today)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseClassSession() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseClassSession() unexpected error: %v", err)
			}
			if s.Name != "Calculus" || s.Username != "alice" {
				t.Errorf("got name %q user %q", s.Name, s.Username)
			}
			if !s.FirstDate.Equal(tt.wantFirst) {
				t.Errorf("FirstDate = %v, want %v", s.FirstDate, tt.wantFirst)
			}
		})
	}
}
