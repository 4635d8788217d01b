package scheduler

import (
	"testing"
	"time"

	"github.com/campuswellness/weekplan/internal/models"
)

func TestComputeAvailabilityMonWed(t *testing.T) {
	grid, err := BuildGrid(DefaultGridConfig())
	if err != nil {
		t.Fatalf("BuildGrid() error = %v", err)
	}
	sessions := []models.ClassSession{{
		Name:     "Chem",
		Weekdays: []time.Weekday{time.Monday, time.Wednesday},
		Start:    tod("09:00"),
		End:      tod("10:00"),
	}}

	avail := ComputeAvailability(grid, sessions, time.Monday)

	if len(avail.Free) != 15 {
		t.Errorf("len(Free) = %d, want 15", len(avail.Free))
	}
	if len(avail.Occupied) != 1 || avail.Occupied[0] != tod("09:00") {
		t.Errorf("Occupied = %v, want [09:00]", avail.Occupied)
	}
	for _, v := range avail.Free {
		if v == tod("09:00") {
			t.Error("09:00 should not be free")
		}
	}
	found := false
	for _, v := range avail.Free {
		if v == tod("10:00") {
			found = true
		}
	}
	if !found {
		t.Error("10:00 should be free (end is exclusive)")
	}

	tuesday := ComputeAvailability(grid, sessions, time.Tuesday)
	if len(tuesday.Free) != 16 || len(tuesday.Occupied) != 0 {
		t.Errorf("Tuesday free=%d occupied=%d, want 16/0", len(tuesday.Free), len(tuesday.Occupied))
	}
}

func TestComputeAvailabilityPartition(t *testing.T) {
	grid, err := BuildGrid(GridConfig{tod("07:00"), tod("22:00"), 30})
	if err != nil {
		t.Fatalf("BuildGrid() error = %v", err)
	}
	sessions := []models.ClassSession{
		{Name: "A", Weekdays: []time.Weekday{time.Monday, time.Thursday}, Start: tod("08:15"), End: tod("10:45")},
		{Name: "B", Weekdays: []time.Weekday{time.Monday, time.Friday}, Start: tod("10:00"), End: tod("12:00")},
		{Name: "C", Weekdays: []time.Weekday{time.Tuesday, time.Thursday}, Start: tod("06:00"), End: tod("07:30")},
		{Name: "D", Weekdays: []time.Weekday{time.Wednesday, time.Saturday}, Start: tod("21:00"), End: tod("23:00")},
	}

	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		avail := ComputeAvailability(grid, sessions, wd)
		if len(avail.Free)+len(avail.Occupied) != len(grid) {
			t.Errorf("%s: free %d + occupied %d != grid %d", wd, len(avail.Free), len(avail.Occupied), len(grid))
		}
		seen := make(map[models.TimeOfDay]int)
		for _, v := range avail.Free {
			seen[v]++
		}
		for _, v := range avail.Occupied {
			seen[v]++
		}
		for _, v := range grid {
			if seen[v] != 1 {
				t.Errorf("%s: grid point %s appears %d times across free/occupied", wd, v, seen[v])
			}
		}
		for i := 1; i < len(avail.Free); i++ {
			if avail.Free[i] <= avail.Free[i-1] {
				t.Errorf("%s: free slots not ascending at %d", wd, i)
			}
		}
	}
}

func TestBackToBackSessions(t *testing.T) {
	grid, _ := BuildGrid(DefaultGridConfig())
	sessions := []models.ClassSession{
		{Name: "A", Weekdays: []time.Weekday{time.Monday, time.Wednesday}, Start: tod("09:00"), End: tod("10:00")},
		{Name: "B", Weekdays: []time.Weekday{time.Monday, time.Wednesday}, Start: tod("10:00"), End: tod("11:00")},
	}
	avail := ComputeAvailability(grid, sessions, time.Wednesday)
	if len(avail.Occupied) != 2 {
		t.Errorf("Occupied = %v, want [09:00 10:00]", avail.Occupied)
	}
}
