// Package report turns stored photos into files that leave the device:
// the occurrence spreadsheet and the share archive.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"highway_inspector/models"
)

const dateTimeLayout = "02/01/2006 15:04:05"

// Header is the fixed column order of the occurrence report.
var Header = []string{
	"ID", "Filename", "Highway", "Direction", "Km", "Meters",
	"Activity", "SubActivity", "DateTime", "GPSCoordinates", "Notes",
}

// Row returns the report columns of p.
func Row(p models.Photo, loc *time.Location) []string {
	if loc == nil {
		loc = time.Local
	}
	coords := ""
	if p.Coordinates != nil {
		coords = fmt.Sprintf("%s, %s",
			strconv.FormatFloat(p.Coordinates.Latitude, 'f', -1, 64),
			strconv.FormatFloat(p.Coordinates.Longitude, 'f', -1, 64))
	}
	return []string{
		p.ID,
		p.Filename,
		p.Highway,
		string(p.Direction),
		strconv.Itoa(p.Km),
		strconv.Itoa(p.Meters),
		p.Activity,
		p.SubActivity,
		time.UnixMilli(p.Timestamp).In(loc).Format(dateTimeLayout),
		coords,
		p.Notes,
	}
}

// ExportCSV renders photos as the occurrence report: a bare header line and
// one row per photo with every field double-quoted. Lines end with "\n".
func ExportCSV(photos []models.Photo, loc *time.Location) []byte {
	var b strings.Builder
	b.WriteString(strings.Join(Header, ","))
	for _, p := range photos {
		b.WriteByte('\n')
		for i, field := range Row(p, loc) {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quote(field))
		}
	}
	return []byte(b.String())
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Filename is the suggested download name of a report generated at now.
func Filename(now time.Time) string {
	return "relatorio_ocorrencias_" + now.UTC().Format("2006-01-02") + ".csv"
}
