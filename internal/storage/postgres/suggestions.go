package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/campuswellness/weekplan/internal/errors"
	"github.com/campuswellness/weekplan/internal/models"
)

func (s *Store) SaveSuggestion(rec models.SuggestionRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal suggestion: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO daily_suggestions (username, date, payload, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (username, date) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at
	`, rec.Username, rec.Date, string(payload), time.Now())
	if err != nil {
		return fmt.Errorf("failed to save suggestion: %w", err)
	}
	return nil
}

func (s *Store) GetSuggestion(username, date string) (models.SuggestionRecord, error) {
	var payload []byte
	err := s.db.QueryRow(
		"SELECT payload FROM daily_suggestions WHERE username = $1 AND date = $2",
		username, date,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return models.SuggestionRecord{}, errors.NewNotFoundError("suggestion", username+"/"+date)
	}
	if err != nil {
		return models.SuggestionRecord{}, fmt.Errorf("failed to get suggestion: %w", err)
	}

	var rec models.SuggestionRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return models.SuggestionRecord{}, errors.NewParseError("suggestion payload", username+"/"+date, err)
	}
	rec.Username, rec.Date = username, date
	return rec, nil
}
