package data

import (
	"context"
	"fmt"
	"time"

	"highway_inspector/models"

	"github.com/apex/log"
)

// Export returns a snapshot of every photo and the settings row.
func (s *Store) Export(ctx context.Context) (*models.BackupData, error) {
	photos, err := s.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("Export: %w", err)
	}
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("Export: %w", err)
	}
	return &models.BackupData{
		Photos:    photos,
		Settings:  settings,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Import writes every photo and the settings of backup in a single
// transaction. Photos with an ID already present are replaced; photos not in
// the backup are kept.
func (s *Store) Import(ctx context.Context, backup *models.BackupData) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Import: failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i := range backup.Photos {
		if err := putPhoto(ctx, tx, &backup.Photos[i]); err != nil {
			return fmt.Errorf("Import: %w", err)
		}
	}
	if err := saveSettings(ctx, tx, backup.Settings); err != nil {
		return fmt.Errorf("Import: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Import: failed to commit: %w", err)
	}
	log.WithField("photos", len(backup.Photos)).Info("backup imported")
	return nil
}
