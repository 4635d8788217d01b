package constants

import "time"

// ConflictType represents the type of validation conflict
type ConflictType string

// SuggestionCategory names a slot category produced by the allocator
type SuggestionCategory string

const (
	AppName            = "weekplan"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/weekplan/weekplan.db"
	DefaultConfigFile  = "weekplan.yaml"
	DBConnectionEnvVar = "WEEKPLAN_DB_CONNECTION"
	Version            = "v0.3.0"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "weekplan-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "weekplan-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.campuswellness.weekplan"

	// Suggestion categories
	CategoryBreakfast SuggestionCategory = "breakfast"
	CategoryLunch     SuggestionCategory = "lunch"
	CategoryDinner    SuggestionCategory = "dinner"
	CategoryExercise  SuggestionCategory = "exercise"

	// Calendar event color tags
	ColorClass      = "#3DD56"
	ColorAssignment = "#00FF00"
	ColorMeal       = "#FFA500"
	ColorExercise   = "#FF6347"
	ColorImported   = "#1E90FF"

	// Suggested activities are shown as one-hour blocks
	SuggestionBlockDuration = time.Hour

	// ReminderClassWindow is how far ahead a class start triggers a reminder
	ReminderClassWindow = time.Hour

	// Conflict Types
	ConflictOverlappingClasses  ConflictType = "overlapping_classes"
	ConflictInvalidTime         ConflictType = "invalid_time"
	ConflictDuplicateClassName  ConflictType = "duplicate_class_name"
	ConflictInvalidDueDate      ConflictType = "invalid_due_date"
	ConflictDuplicateAssignment ConflictType = "duplicate_assignment"
)
