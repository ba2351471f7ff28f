package models

import "time"

// BackupData is a full snapshot of the local store: every photo plus the settings row.
type BackupData struct {
	Photos    []Photo     `json:"photos"`
	Settings  AppSettings `json:"settings"`
	CreatedAt time.Time   `json:"createdAt"`
}
