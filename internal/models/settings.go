package models

// Settings represents application-wide settings
type Settings struct {
	DayStart          string `json:"day_start"`           // first grid point, e.g. "07:00"
	DayEnd            string `json:"day_end"`             // last grid point (inclusive), e.g. "22:00"
	SlotIntervalMin   int    `json:"slot_interval_min"`   // grid step in minutes
	RemindersEnabled  bool   `json:"reminders_enabled"`   // whether the reminder job delivers anything
	ReminderWindowMin int    `json:"reminder_window_min"` // how far ahead a class start triggers a reminder
	WeekHorizonDays   int    `json:"week_horizon_days"`   // days from today covered by the week view
	Timezone          string `json:"timezone"`            // IANA timezone name, or "Local"
}
