package models

import (
	"fmt"

	"github.com/campuswellness/weekplan/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingDayStart:
			settings.DayStart = value
		case constants.SettingDayEnd:
			settings.DayEnd = value
		case constants.SettingSlotIntervalMin:
			if _, err := fmt.Sscanf(value, "%d", &settings.SlotIntervalMin); err != nil {
				return Settings{}, fmt.Errorf("parsing slot_interval_min: %w", err)
			}
		case constants.SettingRemindersEnabled:
			settings.RemindersEnabled = value == "true"
		case constants.SettingReminderWindowMin:
			if _, err := fmt.Sscanf(value, "%d", &settings.ReminderWindowMin); err != nil {
				return Settings{}, fmt.Errorf("parsing reminder_window_min: %w", err)
			}
		case constants.SettingWeekHorizonDays:
			if _, err := fmt.Sscanf(value, "%d", &settings.WeekHorizonDays); err != nil {
				return Settings{}, fmt.Errorf("parsing week_horizon_days: %w", err)
			}
		case constants.SettingTimezone:
			settings.Timezone = value
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingDayStart:          settings.DayStart,
		constants.SettingDayEnd:            settings.DayEnd,
		constants.SettingSlotIntervalMin:   fmt.Sprintf("%d", settings.SlotIntervalMin),
		constants.SettingRemindersEnabled:  fmt.Sprintf("%v", settings.RemindersEnabled),
		constants.SettingReminderWindowMin: fmt.Sprintf("%d", settings.ReminderWindowMin),
		constants.SettingWeekHorizonDays:   fmt.Sprintf("%d", settings.WeekHorizonDays),
		constants.SettingTimezone:          settings.Timezone,
	}
}

// DefaultSettings returns the settings written by init.
func DefaultSettings() Settings {
	return Settings{
		DayStart:          constants.DefaultDayStart,
		DayEnd:            constants.DefaultDayEnd,
		SlotIntervalMin:   constants.DefaultSlotIntervalMin,
		RemindersEnabled:  constants.DefaultRemindersEnabled,
		ReminderWindowMin: constants.DefaultReminderWindowMin,
		WeekHorizonDays:   constants.DefaultWeekHorizonDays,
		Timezone:          constants.DefaultTimezone,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.DayStart == "" {
		settings.DayStart = constants.DefaultDayStart
	}
	if settings.DayEnd == "" {
		settings.DayEnd = constants.DefaultDayEnd
	}
	if settings.SlotIntervalMin == 0 {
		settings.SlotIntervalMin = constants.DefaultSlotIntervalMin
	}
	if settings.ReminderWindowMin == 0 {
		settings.ReminderWindowMin = constants.DefaultReminderWindowMin
	}
	if settings.WeekHorizonDays == 0 {
		settings.WeekHorizonDays = constants.DefaultWeekHorizonDays
	}
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
}
