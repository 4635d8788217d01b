package scheduler

import (
	"time"

	"github.com/campuswellness/weekplan/internal/models"
)

// Availability partitions a grid into occupied and free points for one weekday.
type Availability struct {
	Grid     TimeGrid
	Occupied []models.TimeOfDay
	Free     []models.TimeOfDay
}

// OccupiedSet marks every grid point v with start <= v < end for each
// session that meets on the weekday.
func OccupiedSet(grid TimeGrid, sessions []models.ClassSession, weekday time.Weekday) map[models.TimeOfDay]bool {
	occupied := make(map[models.TimeOfDay]bool)
	for _, s := range sessions {
		if !s.MeetsOn(weekday) {
			continue
		}
		for _, v := range grid {
			if s.Covers(v) {
				occupied[v] = true
			}
		}
	}
	return occupied
}

// FreeSlots is the grid minus the occupied set, in grid order.
func FreeSlots(grid TimeGrid, occupied map[models.TimeOfDay]bool) []models.TimeOfDay {
	free := make([]models.TimeOfDay, 0, len(grid))
	for _, v := range grid {
		if !occupied[v] {
			free = append(free, v)
		}
	}
	return free
}

// ComputeAvailability builds both halves of the partition in grid order.
func ComputeAvailability(grid TimeGrid, sessions []models.ClassSession, weekday time.Weekday) Availability {
	occupiedSet := OccupiedSet(grid, sessions, weekday)
	occupied := make([]models.TimeOfDay, 0, len(occupiedSet))
	for _, v := range grid {
		if occupiedSet[v] {
			occupied = append(occupied, v)
		}
	}
	return Availability{
		Grid:     grid,
		Occupied: occupied,
		Free:     FreeSlots(grid, occupiedSet),
	}
}
