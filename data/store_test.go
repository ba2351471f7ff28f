package data

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"highway_inspector/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newPhoto(id, highway, activity string, ts time.Time) *models.Photo {
	return &models.Photo{
		ID:                id,
		Filename:          id + ".jpg",
		Highway:           highway,
		Direction:         models.DirectionNorth,
		Km:                12,
		Meters:            7,
		Activity:          activity,
		SubActivity:       "Remendo",
		Timestamp:         ts.UnixMilli(),
		ImageData:         "data:image/jpeg;base64,AAEC",
		Coordinates:       &models.Coordinates{Latitude: -22.123456, Longitude: -47.654321},
		WatermarkSettings: models.DefaultSettings().Watermark,
	}
}

func TestPutGet_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p := newPhoto("a", "SP-310", "pavimento", time.Now())
	p.Notes = "acostamento"
	require.NoError(t, s.Put(ctx, p))

	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestPutGet_WithoutCoordinates(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p := newPhoto("a", "SP-310", "pavimento", time.Now())
	p.Coordinates = nil
	require.NoError(t, s.Put(ctx, p))

	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, got.Coordinates)
}

func TestPut_SameIDReplaces(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p := newPhoto("a", "SP-310", "pavimento", time.Now())
	require.NoError(t, s.Put(ctx, p))
	p.Highway = "SP-333"
	require.NoError(t, s.Put(ctx, p))
	require.NoError(t, s.Put(ctx, p))

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "SP-333", all[0].Highway)
}

func TestGet_Missing(t *testing.T) {
	s := openTestStore(t)
	got, err := s.Get(context.Background(), "nope")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, newPhoto("a", "SP-310", "pavimento", time.Now())))
	require.NoError(t, s.Put(ctx, newPhoto("b", "SP-310", "pavimento", time.Now())))

	require.NoError(t, s.Delete(ctx, "missing"))
	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, s.Delete(ctx, "a"))
	all, err = s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "b", all[0].ID)
}

func TestQueryByFilter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	day := time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)
	photos := []*models.Photo{
		newPhoto("a", "SP-310", "pavimento", day.Add(-48*time.Hour)),
		newPhoto("b", "SP-310", "drenagem", day),
		newPhoto("c", "SP-333", "pavimento", day),
		newPhoto("d", "SP-310", "pavimento", day.Add(48*time.Hour)),
	}
	for _, p := range photos {
		require.NoError(t, s.Put(ctx, p))
	}

	ids := func(ps []models.Photo) []string {
		out := make([]string, 0, len(ps))
		for _, p := range ps {
			out = append(out, p.ID)
		}
		return out
	}

	from := day
	to := day
	tests := []struct {
		name   string
		filter models.PhotoFilter
		want   []string
	}{
		{"empty", models.PhotoFilter{}, []string{"d", "b", "c", "a"}},
		{"highway", models.PhotoFilter{Highway: "SP-310"}, []string{"d", "b", "a"}},
		{"activity", models.PhotoFilter{Activity: "pavimento"}, []string{"d", "c", "a"}},
		{"highway and activity", models.PhotoFilter{Highway: "SP-310", Activity: "pavimento"}, []string{"d", "a"}},
		{"inclusive range", models.PhotoFilter{DateFrom: &from, DateTo: &to}, []string{"b", "c"}},
		{"from only", models.PhotoFilter{DateFrom: &from}, []string{"d", "b", "c"}},
		{"no match", models.PhotoFilter{Highway: "SP-999"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.QueryByFilter(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
			for _, p := range got {
				assert.True(t, tt.filter.Match(p))
			}
		})
	}
}

func TestGetMany_KeepsRequestedOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.Put(ctx, newPhoto(id, "SP-310", "pavimento", time.Now())))
	}

	got, err := s.GetMany(ctx, []string{"c", "missing", "a", "c"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
	assert.NotNil(t, got[0].Coordinates)

	none, err := s.GetMany(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSettings_DefaultsOnFreshStore(t *testing.T) {
	s := openTestStore(t)
	got, err := s.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings(), got)
}

func TestSettings_SaveAndUpdate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	saved := models.DefaultSettings()
	saved.Highways = []string{"BR-116", "BR-101"}
	require.NoError(t, s.SaveSettings(ctx, saved))

	got, err := s.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, got)

	storage := models.StorageOptions{AutoBackup: true}
	updated, err := s.UpdateSettings(ctx, models.SettingsUpdate{Storage: &storage})
	require.NoError(t, err)

	want := saved
	want.Storage = storage
	assert.Equal(t, want, updated)

	got, err = s.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	src := openTestStore(t)
	require.NoError(t, src.Put(ctx, newPhoto("a", "SP-310", "pavimento", time.Now())))
	settings := models.DefaultSettings()
	settings.FileNaming.Pattern = "km_rodovia.jpg"
	require.NoError(t, src.SaveSettings(ctx, settings))

	backup, err := src.Export(ctx)
	require.NoError(t, err)
	require.Len(t, backup.Photos, 1)
	assert.False(t, backup.CreatedAt.IsZero())

	dst := openTestStore(t)
	require.NoError(t, dst.Put(ctx, newPhoto("z", "SP-326", "drenagem", time.Now())))
	require.NoError(t, dst.Import(ctx, backup))

	all, err := dst.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	got, err := dst.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "km_rodovia.jpg", got.FileNaming.Pattern)
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, newPhoto("a", "SP-310", "pavimento", time.Now())))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.NotNil(t, got)
}
