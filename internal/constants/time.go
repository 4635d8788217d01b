package constants

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// TimeFormatSeconds is the ISO time-of-day format used for persisted suggestion fields
	TimeFormatSeconds = "15:04:05"

	// Meal and exercise windows, inclusive on both ends
	BreakfastWindowStart = "07:00"
	BreakfastWindowEnd   = "09:00"
	LunchWindowStart     = "12:00"
	LunchWindowEnd       = "14:00"
	DinnerWindowStart    = "18:00"
	DinnerWindowEnd      = "20:00"
	ExerciseWindowStart  = "07:00"
	ExerciseWindowEnd    = "22:00"
)
