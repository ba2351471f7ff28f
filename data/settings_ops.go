package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"highway_inspector/models"

	"github.com/apex/log"
	json "github.com/goccy/go-json"
	"github.com/jmoiron/sqlx"
)

const upsertSettingsQuery = `INSERT INTO Settings (Key, Value) VALUES (?, ?)
	ON CONFLICT(Key) DO UPDATE SET Value = excluded.Value`

// GetSettings returns the stored settings, or models.DefaultSettings when
// nothing has ever been saved.
func (s *Store) GetSettings(ctx context.Context) (models.AppSettings, error) {
	return getSettings(ctx, s.db)
}

// SaveSettings overwrites the single settings row.
func (s *Store) SaveSettings(ctx context.Context, settings models.AppSettings) error {
	return saveSettings(ctx, s.db, settings)
}

// UpdateSettings replaces the sections present in update and returns the
// resulting settings. The read and the write happen in one transaction.
func (s *Store) UpdateSettings(ctx context.Context, update models.SettingsUpdate) (models.AppSettings, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.AppSettings{}, fmt.Errorf("UpdateSettings: failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	current, err := getSettings(ctx, tx)
	if err != nil {
		return models.AppSettings{}, err
	}
	next := update.Apply(current)
	if err := saveSettings(ctx, tx, next); err != nil {
		return models.AppSettings{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.AppSettings{}, fmt.Errorf("UpdateSettings: failed to commit: %w", err)
	}
	return next, nil
}

func getSettings(ctx context.Context, q sqlx.QueryerContext) (models.AppSettings, error) {
	var value string
	err := sqlx.GetContext(ctx, q, &value, `SELECT Value FROM Settings WHERE Key = ?`, models.SettingsKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.DefaultSettings(), nil
		}
		return models.AppSettings{}, fmt.Errorf("GetSettings: failed to read settings: %w", err)
	}

	var settings models.AppSettings
	if err := json.Unmarshal([]byte(value), &settings); err != nil {
		return models.AppSettings{}, fmt.Errorf("GetSettings: failed to decode settings: %w", err)
	}
	return settings, nil
}

func saveSettings(ctx context.Context, e sqlx.ExecerContext, settings models.AppSettings) error {
	value, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("SaveSettings: failed to encode settings: %w", err)
	}
	if _, err := e.ExecContext(ctx, upsertSettingsQuery, models.SettingsKey, string(value)); err != nil {
		return fmt.Errorf("SaveSettings: failed to write settings: %w", err)
	}
	log.Debug("settings saved")
	return nil
}
