package watermark

import (
	"testing"
	"time"

	"highway_inspector/models"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func allOn() models.WatermarkOptions {
	return models.WatermarkOptions{
		Position:           models.PositionBottomLeft,
		IncludeDateTime:    true,
		IncludeCoordinates: true,
		IncludeHighway:     true,
		IncludeDirection:   true,
		IncludeLocation:    true,
		IncludeUser:        true,
		IncludeNotes:       true,
	}
}

func fullFields() Fields {
	return Fields{
		Highway:     "SP-310",
		Direction:   models.DirectionNorth,
		Km:          intPtr(45),
		Meters:      intPtr(230),
		Activity:    "pavimento",
		SubActivity: "Remendo",
		Timestamp:   time.Date(2024, time.January, 2, 3, 4, 5, 0, time.UTC).UnixMilli(),
		Coordinates: &models.Coordinates{Latitude: -22.9, Longitude: -47.0612344},
		Notes:       "faixa da direita",
	}
}

func TestLines_FixedOrder(t *testing.T) {
	got := Lines(fullFields(), allOn(), time.UTC)
	assert.Equal(t, []string{
		"SP-310 Norte Km 45+230",
		"02/01/2024 03:04:05",
		"pavimento - Remendo",
		"GPS: -22.900000, -47.061234",
		"faixa da direita",
	}, got)
}

func TestLines_NoFlagsAndNoActivity(t *testing.T) {
	f := fullFields()
	f.Activity = ""
	got := Lines(f, models.WatermarkOptions{Position: models.PositionTopLeft}, time.UTC)
	assert.Empty(t, got)
}

func TestLines_ActivityLineIsUngated(t *testing.T) {
	got := Lines(fullFields(), models.WatermarkOptions{}, time.UTC)
	assert.Equal(t, []string{"pavimento - Remendo"}, got)
}

func TestLines_ActivityNeedsBothParts(t *testing.T) {
	f := fullFields()
	f.SubActivity = ""
	got := Lines(f, models.WatermarkOptions{}, time.UTC)
	assert.Empty(t, got)
}

func TestLines_LocationLineParts(t *testing.T) {
	f := Fields{Highway: "SP-333", Direction: models.DirectionSouth, Km: intPtr(12), Meters: intPtr(7)}

	tests := []struct {
		name string
		opts models.WatermarkOptions
		want []string
	}{
		{"highway only", models.WatermarkOptions{IncludeHighway: true}, []string{"SP-333"}},
		{"with direction", models.WatermarkOptions{IncludeHighway: true, IncludeDirection: true}, []string{"SP-333 Sul"}},
		{"with location", models.WatermarkOptions{IncludeHighway: true, IncludeLocation: true}, []string{"SP-333 Km 12+007"}},
		{"location without highway flag", models.WatermarkOptions{IncludeDirection: true, IncludeLocation: true}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Lines(f, tt.opts, time.UTC))
		})
	}
}

func TestLines_MissingFieldsAreOmitted(t *testing.T) {
	got := Lines(Fields{Highway: "SP-351"}, allOn(), time.UTC)
	assert.Equal(t, []string{"SP-351"}, got)
}

func TestLines_KmNeedsMeters(t *testing.T) {
	opts := models.WatermarkOptions{IncludeHighway: true, IncludeLocation: true}

	got := Lines(Fields{Highway: "SP-333", Km: intPtr(12)}, opts, time.UTC)
	assert.Equal(t, []string{"SP-333"}, got)

	got = Lines(Fields{Highway: "SP-333", Meters: intPtr(7)}, opts, time.UTC)
	assert.Equal(t, []string{"SP-333"}, got)
}

func TestLines_DateTimeUsesLocation(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	f := Fields{Timestamp: time.Date(2024, time.January, 2, 3, 4, 5, 0, time.UTC).UnixMilli()}
	got := Lines(f, models.WatermarkOptions{IncludeDateTime: true}, loc)
	assert.Equal(t, []string{"02/01/2024 00:04:05"}, got)
}

func TestFieldsFor(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	coords := &models.Coordinates{Latitude: 1, Longitude: 2}
	req := models.CaptureRequest{Highway: "SP-310", Direction: models.DirectionEast, Km: 1, Meters: 2, Activity: "a", SubActivity: "b", Notes: "n"}

	f := FieldsFor(req, coords, now)
	assert.Equal(t, "SP-310", f.Highway)
	assert.Equal(t, 1, *f.Km)
	assert.Equal(t, 2, *f.Meters)
	assert.Equal(t, int64(1700000000000), f.Timestamp)
	assert.Same(t, coords, f.Coordinates)
	assert.Equal(t, "n", f.Notes)
}
