package scheduler

import (
	"github.com/campuswellness/weekplan/internal/constants"
	"github.com/campuswellness/weekplan/internal/errors"
	"github.com/campuswellness/weekplan/internal/models"
)

// GridConfig bounds the candidate time points of a day. End is inclusive.
type GridConfig struct {
	Start       models.TimeOfDay
	End         models.TimeOfDay
	IntervalMin int
}

// DefaultGridConfig is 07:00 to 22:00 in one-hour steps.
func DefaultGridConfig() GridConfig {
	return GridConfig{
		Start:       models.MustTimeOfDay(constants.DefaultDayStart),
		End:         models.MustTimeOfDay(constants.DefaultDayEnd),
		IntervalMin: constants.DefaultSlotIntervalMin,
	}
}

// GridConfigFromSettings reads the grid bounds from stored settings,
// falling back to defaults for anything unset.
func GridConfigFromSettings(settings models.Settings) (GridConfig, error) {
	models.ApplyDefaultSettings(&settings)
	start, err := models.ParseTimeOfDay(settings.DayStart)
	if err != nil {
		return GridConfig{}, errors.NewConfigurationError("day start %q is not a time of day", settings.DayStart)
	}
	end, err := models.ParseTimeOfDay(settings.DayEnd)
	if err != nil {
		return GridConfig{}, errors.NewConfigurationError("day end %q is not a time of day", settings.DayEnd)
	}
	cfg := GridConfig{Start: start, End: end, IntervalMin: settings.SlotIntervalMin}
	return cfg, cfg.Validate()
}

func (c GridConfig) Validate() error {
	if c.IntervalMin <= 0 {
		return errors.NewConfigurationError("interval must be positive, got %d minutes", c.IntervalMin)
	}
	if c.Start > c.End {
		return errors.NewConfigurationError("day start %s is after day end %s", c.Start, c.End)
	}
	return nil
}

// TimeGrid is an ascending sequence of candidate time points for one day.
type TimeGrid []models.TimeOfDay

// BuildGrid returns start, start+interval, ... while the value is <= end.
func BuildGrid(cfg GridConfig) (TimeGrid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	n := int(cfg.End-cfg.Start)/cfg.IntervalMin + 1
	grid := make(TimeGrid, 0, n)
	for t := cfg.Start; t <= cfg.End; t += models.TimeOfDay(cfg.IntervalMin) {
		grid = append(grid, t)
	}
	return grid, nil
}

// Strings renders the grid as HH:MM values.
func (g TimeGrid) Strings() []string {
	out := make([]string, len(g))
	for i, t := range g {
		out[i] = t.String()
	}
	return out
}
