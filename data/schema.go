package data

const photosSchema = `
CREATE TABLE IF NOT EXISTS Photos (
    Id TEXT PRIMARY KEY,
    Filename TEXT NOT NULL,
    Highway TEXT NOT NULL,
    Direction TEXT NOT NULL,
    Km INTEGER NOT NULL,
    Meters INTEGER NOT NULL,
    Activity TEXT NOT NULL,
    SubActivity TEXT NOT NULL,
    Notes TEXT NOT NULL DEFAULT '',
    Timestamp INTEGER NOT NULL,      -- epoch milliseconds
    CoordinatesJson TEXT NOT NULL DEFAULT '', -- empty when GPS was unavailable
    ImageData TEXT NOT NULL,         -- data URL of the composited JPEG
    WatermarkJson TEXT NOT NULL      -- watermark options in effect at save time
);

CREATE INDEX IF NOT EXISTS idx_photos_timestamp ON Photos (Timestamp);
CREATE INDEX IF NOT EXISTS idx_photos_highway ON Photos (Highway);
CREATE INDEX IF NOT EXISTS idx_photos_activity ON Photos (Activity);
`

const settingsSchema = `
CREATE TABLE IF NOT EXISTS Settings (
    Key TEXT PRIMARY KEY,
    Value TEXT NOT NULL
);
`

// GetSchema returns the full schema of the photo database.
func GetSchema() string {
	return photosSchema + settingsSchema
}
