package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"highway_inspector/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/apex/log"
	"github.com/jmoiron/sqlx"
)

const photoColumns = `Id, Filename, Highway, Direction, Km, Meters, Activity, SubActivity, Notes,
	Timestamp, CoordinatesJson, ImageData, WatermarkJson`

const upsertPhotoQuery = `INSERT INTO Photos (Id, Filename, Highway, Direction, Km, Meters, Activity, SubActivity, Notes,
	Timestamp, CoordinatesJson, ImageData, WatermarkJson)
	VALUES (:Id, :Filename, :Highway, :Direction, :Km, :Meters, :Activity, :SubActivity, :Notes,
	:Timestamp, :CoordinatesJson, :ImageData, :WatermarkJson)
	ON CONFLICT(Id) DO UPDATE SET
	    Filename = excluded.Filename, Highway = excluded.Highway, Direction = excluded.Direction,
	    Km = excluded.Km, Meters = excluded.Meters, Activity = excluded.Activity,
	    SubActivity = excluded.SubActivity, Notes = excluded.Notes, Timestamp = excluded.Timestamp,
	    CoordinatesJson = excluded.CoordinatesJson, ImageData = excluded.ImageData,
	    WatermarkJson = excluded.WatermarkJson`

// Put inserts photo or fully replaces the stored record with the same ID.
func (s *Store) Put(ctx context.Context, photo *models.Photo) error {
	return putPhoto(ctx, s.db, photo)
}

func putPhoto(ctx context.Context, ext sqlx.ExtContext, photo *models.Photo) error {
	if err := photo.UpdateJsonProperties(); err != nil {
		return fmt.Errorf("Put: failed to encode JSON properties for photo %s: %w", photo.ID, err)
	}
	if _, err := sqlx.NamedExecContext(ctx, ext, upsertPhotoQuery, photo); err != nil {
		return fmt.Errorf("Put: failed to write photo %s: %w", photo.ID, err)
	}
	log.WithField("id", photo.ID).Debug("photo stored")
	return nil
}

// Get returns the photo with the given ID, or nil when there is none.
func (s *Store) Get(ctx context.Context, id string) (*models.Photo, error) {
	photo := &models.Photo{}
	query := `SELECT ` + photoColumns + ` FROM Photos WHERE Id = ?`
	if err := s.db.GetContext(ctx, photo, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("Get: failed to read photo %s: %w", id, err)
	}
	if err := photo.LoadJsonProperties(); err != nil {
		return nil, fmt.Errorf("Get: failed to decode JSON properties for photo %s: %w", id, err)
	}
	return photo, nil
}

// ListAll returns every stored photo, newest first.
func (s *Store) ListAll(ctx context.Context) ([]models.Photo, error) {
	return s.QueryByFilter(ctx, models.PhotoFilter{})
}

// Delete removes the photo with the given ID. Deleting an unknown ID is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM Photos WHERE Id = ?`, id)
	if err != nil {
		return fmt.Errorf("Delete: failed to delete photo %s: %w", id, err)
	}
	if n, _ := result.RowsAffected(); n > 0 {
		log.WithField("id", id).Info("photo deleted")
	}
	return nil
}

// QueryByFilter returns the photos matching every present field of filter,
// newest first. The timestamp range is inclusive on both ends.
func (s *Store) QueryByFilter(ctx context.Context, filter models.PhotoFilter) ([]models.Photo, error) {
	query, args, err := buildFilterQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("QueryByFilter: failed to build query: %w", err)
	}

	photos := []models.Photo{}
	if err := s.db.SelectContext(ctx, &photos, query, args...); err != nil {
		return nil, fmt.Errorf("QueryByFilter: failed to read photos: %w", err)
	}
	for i := range photos {
		if err := photos[i].LoadJsonProperties(); err != nil {
			return nil, fmt.Errorf("QueryByFilter: failed to decode JSON properties for photo %s: %w", photos[i].ID, err)
		}
	}
	return photos, nil
}

// GetMany returns the photos with the given IDs in the order the IDs were
// given. Unknown IDs are skipped.
func (s *Store) GetMany(ctx context.Context, ids []string) ([]models.Photo, error) {
	if len(ids) == 0 {
		return []models.Photo{}, nil
	}
	query, args, err := sqlx.In(`SELECT `+photoColumns+` FROM Photos WHERE Id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("GetMany: failed to build IN query: %w", err)
	}
	query = s.db.Rebind(query)

	var found []models.Photo
	if err := s.db.SelectContext(ctx, &found, query, args...); err != nil {
		return nil, fmt.Errorf("GetMany: failed to read photos: %w", err)
	}
	byID := make(map[string]models.Photo, len(found))
	for _, p := range found {
		if err := p.LoadJsonProperties(); err != nil {
			return nil, fmt.Errorf("GetMany: failed to decode JSON properties for photo %s: %w", p.ID, err)
		}
		byID[p.ID] = p
	}

	photos := make([]models.Photo, 0, len(found))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			photos = append(photos, p)
			delete(byID, id)
		}
	}
	return photos, nil
}

func buildFilterQuery(filter models.PhotoFilter) (string, []interface{}, error) {
	q := sq.Select(photoColumns).From("Photos").OrderBy("Timestamp DESC", "Id")
	if filter.Highway != "" {
		q = q.Where(sq.Eq{"Highway": filter.Highway})
	}
	if filter.Activity != "" {
		q = q.Where(sq.Eq{"Activity": filter.Activity})
	}
	if filter.DateFrom != nil {
		q = q.Where(sq.GtOrEq{"Timestamp": filter.DateFrom.UnixMilli()})
	}
	if filter.DateTo != nil {
		q = q.Where(sq.LtOrEq{"Timestamp": filter.DateTo.UnixMilli()})
	}
	return q.ToSql()
}
