package report

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
	"time"

	"highway_inspector/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readArchive(t *testing.T, b []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	require.NoError(t, err)
	files := make(map[string][]byte)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		files[f.Name] = content
	}
	return files
}

func TestEntryName(t *testing.T) {
	p := samplePhoto()
	assert.Equal(t, p.Filename, EntryName(p, models.StorageOptions{}, time.UTC))
	assert.Equal(t, "2024-01-02/"+p.Filename, EntryName(p, models.StorageOptions{OrganizeByDate: true}, time.UTC))
	assert.Equal(t, "2024-01-02/SP-310/"+p.Filename,
		EntryName(p, models.StorageOptions{OrganizeByDate: true, OrganizeByHighway: true}, time.UTC))

	p.Filename = "../../etc/passwd"
	assert.Equal(t, "passwd", EntryName(p, models.StorageOptions{}, time.UTC))
}

func TestShare(t *testing.T) {
	a := samplePhoto()
	b := samplePhoto()
	b.ID = "def"

	var buf bytes.Buffer
	require.NoError(t, Share(&buf, []models.Photo{a, b}, models.StorageOptions{OrganizeByHighway: true}, time.UTC))

	files := readArchive(t, buf.Bytes())
	require.Len(t, files, 2)
	assert.Equal(t, []byte{0, 1, 2}, files["SP-310/SP310_Norte_20240102_030405_Remendo.jpg"])
	assert.Equal(t, []byte{0, 1, 2}, files["SP-310/SP310_Norte_20240102_030405_Remendo_1.jpg"])
}

func TestShare_SuffixedNameAlreadyTaken(t *testing.T) {
	photo := func(id, name, data string) models.Photo {
		p := samplePhoto()
		p.ID, p.Filename, p.ImageData = id, name, "data:image/jpeg;base64,"+data
		return p
	}

	tests := []struct {
		name   string
		photos []models.Photo
		want   map[string][]byte
	}{
		{
			name:   "suffixed name arrives after collision",
			photos: []models.Photo{photo("a", "x.jpg", "AAEC"), photo("b", "x.jpg", "AwQF"), photo("c", "x_1.jpg", "BgcI")},
			want:   map[string][]byte{"x.jpg": {0, 1, 2}, "x_1.jpg": {3, 4, 5}, "x_1_1.jpg": {6, 7, 8}},
		},
		{
			name:   "suffixed name arrives first",
			photos: []models.Photo{photo("c", "x_1.jpg", "BgcI"), photo("a", "x.jpg", "AAEC"), photo("b", "x.jpg", "AwQF")},
			want:   map[string][]byte{"x_1.jpg": {6, 7, 8}, "x.jpg": {0, 1, 2}, "x_2.jpg": {3, 4, 5}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Share(&buf, tt.photos, models.StorageOptions{}, time.UTC))

			zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
			require.NoError(t, err)
			assert.Len(t, zr.File, len(tt.photos))
			assert.Equal(t, tt.want, readArchive(t, buf.Bytes()))
		})
	}
}

func TestShare_BadImage(t *testing.T) {
	p := samplePhoto()
	p.ImageData = "data:image/jpeg;base64,!!!"
	var buf bytes.Buffer
	assert.Error(t, Share(&buf, []models.Photo{p}, models.StorageOptions{}, time.UTC))
}

func TestArchiveName(t *testing.T) {
	assert.Equal(t, "ocorrencias_2024-01-02.zip", ArchiveName(time.Date(2024, time.January, 2, 10, 0, 0, 0, time.UTC)))
}
