package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/campuswellness/weekplan/internal/constants"
	"github.com/campuswellness/weekplan/internal/errors"
	"github.com/campuswellness/weekplan/internal/logger"
	"github.com/campuswellness/weekplan/internal/models"
)

func (s *Store) AddClassSession(c models.ClassSession) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}

	weekdaysJSON, err := json.Marshal(c.Weekdays)
	if err != nil {
		return fmt.Errorf("failed to marshal weekdays: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO class_sessions (
			id, username, name, weekdays, start_time, end_time, first_date, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		c.ID, c.Username, c.Name, string(weekdaysJSON),
		c.Start.String(), c.End.String(),
		c.FirstDate.Format(constants.DateFormat), c.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert class session: %w", err)
	}
	return nil
}

func (s *Store) GetClassSessions(username string) ([]models.ClassSession, error) {
	rows, err := s.db.Query(`
		SELECT id, username, name, weekdays, start_time, end_time, first_date, created_at
		FROM class_sessions
		WHERE username = ?
		ORDER BY start_time ASC, name ASC
	`, username)
	if err != nil {
		return nil, fmt.Errorf("failed to query class sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.ClassSession
	for rows.Next() {
		var c models.ClassSession
		var weekdaysJSON, startStr, endStr, firstDateStr, createdAtStr string

		if err := rows.Scan(
			&c.ID, &c.Username, &c.Name, &weekdaysJSON,
			&startStr, &endStr, &firstDateStr, &createdAtStr,
		); err != nil {
			return nil, fmt.Errorf("failed to scan class session: %w", err)
		}

		// Malformed rows are logged and skipped.
		if err := decodeClassSession(&c, weekdaysJSON, startStr, endStr, firstDateStr, createdAtStr); err != nil {
			logger.Warn("skipping malformed class session", "store", "sqlite", "id", c.ID, "err", err)
			continue
		}
		sessions = append(sessions, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating class sessions: %w", err)
	}
	return sessions, nil
}

func decodeClassSession(c *models.ClassSession, weekdaysJSON, startStr, endStr, firstDateStr, createdAtStr string) error {
	var err error
	if err = json.Unmarshal([]byte(weekdaysJSON), &c.Weekdays); err != nil {
		return errors.NewParseError("weekdays", weekdaysJSON, err)
	}
	if c.Start, err = models.ParseTimeOfDay(startStr); err != nil {
		return fmt.Errorf("class %q: %w", c.Name, err)
	}
	if c.End, err = models.ParseTimeOfDay(endStr); err != nil {
		return fmt.Errorf("class %q: %w", c.Name, err)
	}
	if c.FirstDate, err = models.ParseDate(firstDateStr, time.Local); err != nil {
		return fmt.Errorf("class %q: %w", c.Name, err)
	}
	if c.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return errors.NewParseError("created_at", createdAtStr, err)
	}
	return nil
}

func (s *Store) DeleteClassSession(username, id string) error {
	result, err := s.db.Exec("DELETE FROM class_sessions WHERE id = ? AND username = ?", id, username)
	if err != nil {
		return fmt.Errorf("failed to delete class session: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError("class session", id)
	}
	return nil
}
