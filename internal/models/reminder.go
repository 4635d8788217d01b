package models

import "time"

// ReminderKind identifies what triggered a reminder.
type ReminderKind string

const (
	ReminderClass      ReminderKind = "class"
	ReminderAssignment ReminderKind = "assignment_due"
	ReminderSuggestion ReminderKind = "suggestion"
	ReminderWorkSlot   ReminderKind = "assignment_slot"
)

// Reminder is produced at evaluation time and never persisted.
type Reminder struct {
	Username string       `json:"username"`
	Kind     ReminderKind `json:"kind"`
	Message  string       `json:"message"`
	At       time.Time    `json:"at"`
}
