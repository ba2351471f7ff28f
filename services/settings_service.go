package services

import (
	"context"

	"highway_inspector/models"
)

// Settings returns the stored settings or the defaults.
func (s *PhotoService) Settings(ctx context.Context) (models.AppSettings, error) {
	return s.store.GetSettings(ctx)
}

// SaveSettings replaces the whole settings row.
func (s *PhotoService) SaveSettings(ctx context.Context, settings models.AppSettings) error {
	return s.store.SaveSettings(ctx, settings)
}

// UpdateSettings replaces only the sections present in update.
func (s *PhotoService) UpdateSettings(ctx context.Context, update models.SettingsUpdate) (models.AppSettings, error) {
	return s.store.UpdateSettings(ctx, update)
}
