package utils

import (
	"testing"
	"time"

	"github.com/campuswellness/weekplan/internal/models"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{
			name:     "empty string returns local",
			timezone: "",
			wantErr:  false,
		},
		{
			name:     "Local returns local",
			timezone: "Local",
			wantErr:  false,
		},
		{
			name:     "valid timezone UTC",
			timezone: "UTC",
			wantErr:  false,
		},
		{
			name:     "valid timezone America/New_York",
			timezone: "America/New_York",
			wantErr:  false,
		},
		{
			name:     "invalid timezone",
			timezone: "Invalid/Timezone",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestResolveInstant(t *testing.T) {
	settings := models.Settings{Timezone: "UTC"}

	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr bool
	}{
		{"rfc3339", "2024-10-06T07:00:00Z", time.Date(2024, 10, 6, 7, 0, 0, 0, time.UTC), false},
		{"local wall clock", "2024-10-06T07:00:00", time.Date(2024, 10, 6, 7, 0, 0, 0, time.UTC), false},
		{"garbage", "tomorrow morning", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveInstant(tt.in, settings)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveInstant(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("ResolveInstant(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestResolveDate(t *testing.T) {
	settings := models.Settings{Timezone: "UTC"}
	got, err := ResolveDate("2024-09-03", settings)
	if err != nil {
		t.Fatalf("ResolveDate() error = %v", err)
	}
	if FormatDate(got) != "2024-09-03" || got.Hour() != 0 {
		t.Errorf("ResolveDate() = %v, want midnight 2024-09-03", got)
	}

	today, err := ResolveDate("", settings)
	if err != nil {
		t.Fatalf("ResolveDate(\"\") error = %v", err)
	}
	if today.Hour() != 0 || today.Minute() != 0 {
		t.Errorf("ResolveDate(\"\") = %v, want midnight", today)
	}

	if _, err := ResolveDate("09/03/2024", settings); err == nil {
		t.Error("ResolveDate() with bad format should fail")
	}
}

func TestValidateTimezone(t *testing.T) {
	if !ValidateTimezone("Local") || !ValidateTimezone("Europe/London") {
		t.Error("ValidateTimezone() rejected a valid zone")
	}
	if ValidateTimezone("Mars/Olympus") {
		t.Error("ValidateTimezone() accepted an invalid zone")
	}
}
