package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/campuswellness/weekplan/internal/errors"
	"github.com/campuswellness/weekplan/internal/models"
)

const profileColumns = `username, email, sleep_habit, sports_interest, dietary_preference, exercise_frequency, created_at`

func (s *Store) AddProfile(p models.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO profiles (`+profileColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		p.Username, p.Email, p.SleepHabit, p.SportsInterest,
		p.DietaryPreference, p.ExerciseFrequency, p.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(row scanner) (models.Profile, error) {
	var p models.Profile
	var createdAtStr string
	if err := row.Scan(
		&p.Username, &p.Email, &p.SleepHabit, &p.SportsInterest,
		&p.DietaryPreference, &p.ExerciseFrequency, &createdAtStr,
	); err != nil {
		return models.Profile{}, err
	}
	createdAt, err := time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return models.Profile{}, errors.NewParseError("created_at", createdAtStr, err)
	}
	p.CreatedAt = createdAt
	return p, nil
}

func (s *Store) GetProfile(username string) (models.Profile, error) {
	row := s.db.QueryRow(`SELECT `+profileColumns+` FROM profiles WHERE username = ?`, username)
	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return models.Profile{}, errors.NewNotFoundError("profile", username)
	}
	if err != nil {
		return models.Profile{}, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

func (s *Store) UpdateProfile(p models.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}

	result, err := s.db.Exec(`
		UPDATE profiles SET
			email = ?, sleep_habit = ?, sports_interest = ?,
			dietary_preference = ?, exercise_frequency = ?
		WHERE username = ?
	`,
		p.Email, p.SleepHabit, p.SportsInterest,
		p.DietaryPreference, p.ExerciseFrequency, p.Username,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError("profile", p.Username)
	}
	return nil
}

func (s *Store) GetAllProfiles() ([]models.Profile, error) {
	rows, err := s.db.Query(`SELECT ` + profileColumns + ` FROM profiles ORDER BY username ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profiles: %w", err)
	}
	return profiles, nil
}
