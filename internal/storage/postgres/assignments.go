package postgres

import (
	"fmt"
	"time"

	"github.com/campuswellness/weekplan/internal/models"
)

func (s *Store) AddAssignment(a models.Assignment) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO assignments (id, username, name, due_date, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, a.ID, a.Username, a.Name, a.DueDate, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert assignment: %w", err)
	}
	return nil
}

func (s *Store) GetAssignments(username string) ([]models.Assignment, error) {
	rows, err := s.db.Query(`
		SELECT id, username, name, due_date, created_at
		FROM assignments
		WHERE username = $1
		ORDER BY due_date ASC, name ASC
	`, username)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []models.Assignment
	for rows.Next() {
		var a models.Assignment
		if err := rows.Scan(&a.ID, &a.Username, &a.Name, &a.DueDate, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}
	return assignments, nil
}

func (s *Store) ReplaceAssignments(username string, assignments []models.Assignment) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM assignments WHERE username = $1", username); err != nil {
		return fmt.Errorf("failed to clear assignments: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO assignments (id, username, name, due_date, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, a := range assignments {
		if a.CreatedAt.IsZero() {
			a.CreatedAt = time.Now()
		}
		if _, err := stmt.Exec(a.ID, username, a.Name, a.DueDate, a.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert assignment %q: %w", a.Name, err)
		}
	}

	return tx.Commit()
}
