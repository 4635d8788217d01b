package postgres

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/campuswellness/weekplan/internal/models"
)

func (s *Store) AddCalendarEvents(username string, events []models.CalendarEvent) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	inserted := 0
	for _, e := range events {
		if e.UID != "" {
			var exists bool
			if err := tx.QueryRow(
				"SELECT EXISTS(SELECT 1 FROM calendar_events WHERE username = $1 AND uid = $2 AND begin_at = $3)",
				username, e.UID, e.Begin,
			).Scan(&exists); err != nil {
				return 0, fmt.Errorf("failed to check calendar event: %w", err)
			}
			if exists {
				continue
			}
		}
		if e.ID == "" {
			e.ID = uuid.New().String()
		}
		if _, err := tx.Exec(`
			INSERT INTO calendar_events (id, username, uid, name, begin_at)
			VALUES ($1, $2, $3, $4, $5)
		`, e.ID, username, e.UID, e.Name, e.Begin); err != nil {
			return 0, fmt.Errorf("failed to insert calendar event: %w", err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

func (s *Store) GetCalendarEvents(username string) ([]models.CalendarEvent, error) {
	rows, err := s.db.Query(`
		SELECT id, username, uid, name, begin_at
		FROM calendar_events
		WHERE username = $1
		ORDER BY begin_at ASC
	`, username)
	if err != nil {
		return nil, fmt.Errorf("failed to query calendar events: %w", err)
	}
	defer rows.Close()

	var events []models.CalendarEvent
	for rows.Next() {
		var e models.CalendarEvent
		if err := rows.Scan(&e.ID, &e.Username, &e.UID, &e.Name, &e.Begin); err != nil {
			return nil, fmt.Errorf("failed to scan calendar event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating calendar events: %w", err)
	}
	return events, nil
}

func (s *Store) ClearCalendarEvents(username string) error {
	if _, err := s.db.Exec("DELETE FROM calendar_events WHERE username = $1", username); err != nil {
		return fmt.Errorf("failed to clear calendar events: %w", err)
	}
	return nil
}
