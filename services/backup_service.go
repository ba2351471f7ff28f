package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"highway_inspector/models"

	"github.com/apex/log"
	json "github.com/goccy/go-json"
)

// Backup returns every photo and the settings.
func (s *PhotoService) Backup(ctx context.Context) (*models.BackupData, error) {
	return s.store.Export(ctx)
}

// Restore writes a backup into the store.
func (s *PhotoService) Restore(ctx context.Context, backup *models.BackupData) error {
	if backup == nil {
		return fmt.Errorf("Restore: empty backup")
	}
	return s.store.Import(ctx, backup)
}

// WriteBackup writes a full snapshot to the backup directory and returns its path.
func (s *PhotoService) WriteBackup(ctx context.Context) (string, error) {
	if s.backupDir == "" {
		return "", fmt.Errorf("WriteBackup: no backup directory configured")
	}
	backup, err := s.store.Export(ctx)
	if err != nil {
		return "", fmt.Errorf("WriteBackup: %w", err)
	}
	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		return "", fmt.Errorf("WriteBackup: failed to create %s: %w", s.backupDir, err)
	}

	body, err := json.Marshal(backup)
	if err != nil {
		return "", fmt.Errorf("WriteBackup: failed to encode backup: %w", err)
	}
	name := fmt.Sprintf("backup_%s.json", s.now().UTC().Format("20060102T150405.000"))
	path := filepath.Join(s.backupDir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, body, 0o644); err != nil {
		return "", fmt.Errorf("WriteBackup: failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("WriteBackup: failed to move %s: %w", tmp, err)
	}
	return path, nil
}

// autoBackup never fails the save that triggered it.
func (s *PhotoService) autoBackup(ctx context.Context) {
	path, err := s.WriteBackup(ctx)
	if err != nil {
		log.WithError(err).Error("automatic backup failed")
		return
	}
	log.WithField("path", path).Info("automatic backup written")
}
