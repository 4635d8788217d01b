package sqlite

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/campuswellness/weekplan/internal/errors"
	"github.com/campuswellness/weekplan/internal/models"
)

// AddCalendarEvents stores events, skipping any whose (uid, begin) pair is
// already stored for the user. It returns how many rows were inserted.
func (s *Store) AddCalendarEvents(username string, events []models.CalendarEvent) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	inserted := 0
	for _, e := range events {
		begin := e.Begin.Format(time.RFC3339)
		if e.UID != "" {
			var n int
			if err := tx.QueryRow(
				"SELECT COUNT(*) FROM calendar_events WHERE username = ? AND uid = ? AND begin_at = ?",
				username, e.UID, begin,
			).Scan(&n); err != nil {
				return 0, fmt.Errorf("failed to check calendar event: %w", err)
			}
			if n > 0 {
				continue
			}
		}
		if e.ID == "" {
			e.ID = uuid.New().String()
		}
		if _, err := tx.Exec(`
			INSERT INTO calendar_events (id, username, uid, name, begin_at)
			VALUES (?, ?, ?, ?, ?)
		`, e.ID, username, e.UID, e.Name, begin); err != nil {
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
		WHERE username = ?
		ORDER BY begin_at ASC
	`, username)
	if err != nil {
		return nil, fmt.Errorf("failed to query calendar events: %w", err)
	}
	defer rows.Close()

	var events []models.CalendarEvent
	for rows.Next() {
		var e models.CalendarEvent
		var beginStr string
		if err := rows.Scan(&e.ID, &e.Username, &e.UID, &e.Name, &beginStr); err != nil {
			return nil, fmt.Errorf("failed to scan calendar event: %w", err)
		}
		if e.Begin, err = time.Parse(time.RFC3339, beginStr); err != nil {
			return nil, errors.NewParseError("begin", beginStr, err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating calendar events: %w", err)
	}
	return events, nil
}

func (s *Store) ClearCalendarEvents(username string) error {
	if _, err := s.db.Exec("DELETE FROM calendar_events WHERE username = ?", username); err != nil {
		return fmt.Errorf("failed to clear calendar events: %w", err)
	}
	return nil
}
