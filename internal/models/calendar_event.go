package models

import "time"

// CalendarEvent is a one-off event ingested from a calendar file.
type CalendarEvent struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	UID      string    `json:"uid,omitempty"`
	Name     string    `json:"name"`
	Begin    time.Time `json:"begin"`
}

// EventKind tags where a CalendarEventInstance came from.
type EventKind string

const (
	EventKindClass      EventKind = "class"
	EventKindAssignment EventKind = "assignment"
	EventKindMeal       EventKind = "meal"
	EventKindExercise   EventKind = "exercise"
	EventKindImported   EventKind = "imported"
)

// CalendarEventInstance is a display-ready event. It is never persisted.
type CalendarEventInstance struct {
	Title  string    `json:"title"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Color  string    `json:"color"`
	AllDay bool      `json:"allDay"`
	Kind   EventKind `json:"kind"`
}
