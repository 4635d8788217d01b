package constants

const (
	// General Settings
	SettingDayStart          = "day_start"
	SettingDayEnd            = "day_end"
	SettingSlotIntervalMin   = "slot_interval_min"
	SettingRemindersEnabled  = "reminders_enabled"
	SettingReminderWindowMin = "reminder_window_min"
	SettingWeekHorizonDays   = "week_horizon_days"
	SettingTimezone          = "timezone"

	// Default Settings Values
	DefaultDayStart          = "07:00"
	DefaultDayEnd            = "22:00"
	DefaultSlotIntervalMin   = 60
	DefaultRemindersEnabled  = true
	DefaultReminderWindowMin = 60
	DefaultWeekHorizonDays   = 7
	DefaultTimezone          = "Local" // Use system local timezone by default

	// Daemon defaults
	DefaultListenAddr     = "127.0.0.1:8085"
	DefaultReminderSpec   = "@hourly"
	DefaultMQTTTopic      = "weekplan/reminders"
	DefaultKafkaTopic     = "weekplan.reminders"
	DefaultMQTTClientID   = "weekplan"
	DefaultSinkTimeoutSec = 10
)
