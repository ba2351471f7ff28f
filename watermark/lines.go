package watermark

import (
	"fmt"
	"strings"
	"time"

	"highway_inspector/models"
	"highway_inspector/naming"
)

// DateTimeLayout is the pt-BR date and time format of the datetime line.
const DateTimeLayout = "02/01/2006 15:04:05"

// Fields are the record values a watermark can show. Every field is optional;
// a zero value means absent.
type Fields struct {
	Highway     string
	Direction   models.Direction
	Km          *int
	Meters      *int
	Activity    string
	SubActivity string
	Timestamp   int64 // epoch milliseconds
	Coordinates *models.Coordinates
	Notes       string
}

// FieldsFor collects the watermark fields of a capture request taken at t.
func FieldsFor(req models.CaptureRequest, coords *models.Coordinates, t time.Time) Fields {
	km, meters := req.Km, req.Meters
	return Fields{
		Highway:     req.Highway,
		Direction:   req.Direction,
		Km:          &km,
		Meters:      &meters,
		Activity:    req.Activity,
		SubActivity: req.SubActivity,
		Timestamp:   t.UnixMilli(),
		Coordinates: coords,
		Notes:       req.Notes,
	}
}

// Lines builds the watermark text in its fixed order: location, datetime,
// activity, GPS, notes. A line whose fields are missing is left out, and the
// Km marker needs both km and meters.
// The activity line does not depend on any flag.
func Lines(f Fields, opts models.WatermarkOptions, loc *time.Location) []string {
	if loc == nil {
		loc = time.Local
	}
	var lines []string

	if opts.IncludeHighway && f.Highway != "" {
		parts := []string{f.Highway}
		if opts.IncludeDirection && f.Direction != "" {
			parts = append(parts, string(f.Direction))
		}
		if opts.IncludeLocation && f.Km != nil && f.Meters != nil {
			parts = append(parts, "Km "+naming.KmMarker(*f.Km, *f.Meters))
		}
		lines = append(lines, strings.Join(parts, " "))
	}

	if opts.IncludeDateTime && f.Timestamp != 0 {
		lines = append(lines, time.UnixMilli(f.Timestamp).In(loc).Format(DateTimeLayout))
	}

	if f.Activity != "" && f.SubActivity != "" {
		lines = append(lines, f.Activity+" - "+f.SubActivity)
	}

	if opts.IncludeCoordinates && f.Coordinates != nil {
		lines = append(lines, fmt.Sprintf("GPS: %.6f, %.6f", f.Coordinates.Latitude, f.Coordinates.Longitude))
	}

	if opts.IncludeNotes && f.Notes != "" {
		lines = append(lines, f.Notes)
	}

	return lines
}
