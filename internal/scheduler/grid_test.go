package scheduler

import (
	"errors"
	"testing"

	weekerrors "github.com/campuswellness/weekplan/internal/errors"
	"github.com/campuswellness/weekplan/internal/models"
)

func tod(s string) models.TimeOfDay {
	return models.MustTimeOfDay(s)
}

func TestBuildGrid(t *testing.T) {
	tests := []struct {
		name     string
		cfg      GridConfig
		wantLen  int
		wantLast string
	}{
		{"default day", DefaultGridConfig(), 16, "22:00"},
		{"half hours", GridConfig{tod("07:00"), tod("09:00"), 30}, 5, "09:00"},
		{"end not on step", GridConfig{tod("07:00"), tod("08:45"), 30}, 4, "08:30"},
		{"single point", GridConfig{tod("12:00"), tod("12:00"), 60}, 1, "12:00"},
		{"interval larger than span", GridConfig{tod("07:00"), tod("07:30"), 60}, 1, "07:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid, err := BuildGrid(tt.cfg)
			if err != nil {
				t.Fatalf("BuildGrid() error = %v", err)
			}
			if len(grid) != tt.wantLen {
				t.Errorf("len(BuildGrid()) = %d, want %d", len(grid), tt.wantLen)
			}
			if got := grid[len(grid)-1].String(); got != tt.wantLast {
				t.Errorf("last grid point = %s, want %s", got, tt.wantLast)
			}
		})
	}
}

func TestBuildGridLengthProperty(t *testing.T) {
	for start := 0; start <= 600; start += 37 {
		for end := start; end <= start+900; end += 53 {
			for _, interval := range []int{1, 5, 15, 30, 45, 60, 90, 120} {
				cfg := GridConfig{models.TimeOfDay(start), models.TimeOfDay(end), interval}
				grid, err := BuildGrid(cfg)
				if err != nil {
					t.Fatalf("BuildGrid(%+v) error = %v", cfg, err)
				}
				want := (end-start)/interval + 1
				if len(grid) != want {
					t.Fatalf("len(BuildGrid(%+v)) = %d, want %d", cfg, len(grid), want)
				}
				if grid[0] != cfg.Start {
					t.Fatalf("BuildGrid(%+v)[0] = %v, want %v", cfg, grid[0], cfg.Start)
				}
				for i := 1; i < len(grid); i++ {
					if int(grid[i]-grid[i-1]) != interval {
						t.Fatalf("BuildGrid(%+v) step %d = %d, want %d", cfg, i, grid[i]-grid[i-1], interval)
					}
				}
				if grid[len(grid)-1] > cfg.End {
					t.Fatalf("BuildGrid(%+v) exceeds end", cfg)
				}
			}
		}
	}
}

func TestBuildGridInvalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  GridConfig
	}{
		{"start after end", GridConfig{tod("22:00"), tod("07:00"), 60}},
		{"zero interval", GridConfig{tod("07:00"), tod("22:00"), 0}},
		{"negative interval", GridConfig{tod("07:00"), tod("22:00"), -15}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildGrid(tt.cfg)
			if err == nil {
				t.Fatal("BuildGrid() error = nil, want configuration error")
			}
			if !errors.Is(err, weekerrors.ErrConfiguration) {
				t.Errorf("BuildGrid() error = %v, want configuration error", err)
			}
		})
	}
}

func TestGridConfigFromSettings(t *testing.T) {
	cfg, err := GridConfigFromSettings(models.Settings{DayStart: "08:00", DayEnd: "20:00", SlotIntervalMin: 30})
	if err != nil {
		t.Fatalf("GridConfigFromSettings() error = %v", err)
	}
	if cfg.Start != tod("08:00") || cfg.End != tod("20:00") || cfg.IntervalMin != 30 {
		t.Errorf("GridConfigFromSettings() = %+v", cfg)
	}

	cfg, err = GridConfigFromSettings(models.Settings{})
	if err != nil {
		t.Fatalf("GridConfigFromSettings(empty) error = %v", err)
	}
	if cfg != DefaultGridConfig() {
		t.Errorf("GridConfigFromSettings(empty) = %+v, want defaults", cfg)
	}

	if _, err := GridConfigFromSettings(models.Settings{DayStart: "late"}); !errors.Is(err, weekerrors.ErrConfiguration) {
		t.Errorf("GridConfigFromSettings(bad start) error = %v, want configuration error", err)
	}
}
