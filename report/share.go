package report

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"highway_inspector/imagedata"
	"highway_inspector/models"

	"github.com/apex/log"
)

// ArchiveName is the suggested download name of a share archive built at now.
func ArchiveName(now time.Time) string {
	return "ocorrencias_" + now.UTC().Format("2006-01-02") + ".zip"
}

// EntryName is the path of p inside a share archive. Folders are added per
// the storage organization flags: date first, then highway.
func EntryName(p models.Photo, opts models.StorageOptions, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	var parts []string
	if opts.OrganizeByDate {
		parts = append(parts, time.UnixMilli(p.Timestamp).In(loc).Format("2006-01-02"))
	}
	if opts.OrganizeByHighway && p.Highway != "" {
		parts = append(parts, p.Highway)
	}
	name := path.Base(strings.ReplaceAll(p.Filename, `\`, "/"))
	if name == "" || name == "." || name == "/" {
		name = p.ID + ".jpg"
	}
	return path.Join(append(parts, name)...)
}

// Share writes the photos' images into a zip archive on w. Duplicate entry
// names get a numeric suffix. Photos whose image cannot be decoded fail the
// whole archive.
func Share(w io.Writer, photos []models.Photo, opts models.StorageOptions, loc *time.Location) error {
	zw := zip.NewWriter(w)
	seen := make(map[string]int, len(photos))

	for _, p := range photos {
		raw, _, err := imagedata.Decode(p.ImageData)
		if err != nil {
			return fmt.Errorf("Share: photo %s: %w", p.ID, err)
		}

		name := uniqueName(EntryName(p, opts, loc), seen)

		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     name,
			Method:   zip.Store, // already JPEG-compressed
			Modified: time.UnixMilli(p.Timestamp),
		})
		if err != nil {
			return fmt.Errorf("Share: failed to add %s: %w", name, err)
		}
		if _, err := fw.Write(raw); err != nil {
			return fmt.Errorf("Share: failed to write %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("Share: failed to finish archive: %w", err)
	}
	log.WithField("photos", len(photos)).Info("share archive written")
	return nil
}

// uniqueName returns name, or name with the first free numeric suffix, and
// marks the result as taken in seen.
func uniqueName(name string, seen map[string]int) string {
	base := name
	if n := seen[base]; n > 0 {
		ext := path.Ext(base)
		stem := strings.TrimSuffix(base, ext)
		for {
			name = fmt.Sprintf("%s_%d%s", stem, n, ext)
			n++
			if seen[name] == 0 {
				break
			}
		}
		seen[base] = n
	}
	seen[name] = 1
	return name
}
