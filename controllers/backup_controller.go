package controllers

import (
	"fmt"
	"net/http"

	"highway_inspector/models"
	"highway_inspector/services"

	"github.com/apex/log"
)

const maxBackupSize = 512 << 20

// BackupController dumps and restores the whole store.
type BackupController struct {
	svc *services.PhotoService
}

// NewBackupController creates a BackupController.
func NewBackupController(svc *services.PhotoService) *BackupController {
	return &BackupController{svc: svc}
}

// Download sends a full snapshot of photos and settings as JSON.
func (c *BackupController) Download(w http.ResponseWriter, r *http.Request) {
	backup, err := c.svc.Backup(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	name := fmt.Sprintf("backup_%s.json", backup.CreatedAt.Format("20060102T150405"))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	respondJSON(w, http.StatusOK, backup)
}

// Restore imports a snapshot produced by Download. Existing photos with other
// IDs are kept.
func (c *BackupController) Restore(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBackupSize)
	var backup models.BackupData
	if err := decodeJSON(r, &backup); err != nil {
		respondError(w, http.StatusBadRequest, "Arquivo de backup inválido: "+err.Error())
		return
	}
	if err := validateStruct(&backup.Settings); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := c.svc.Restore(r.Context(), &backup); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"photos": len(backup.Photos)})
}

// Write stores a snapshot in the configured backup directory.
func (c *BackupController) Write(w http.ResponseWriter, r *http.Request) {
	path, err := c.svc.WriteBackup(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	log.WithField("path", path).Info("backup written on request")
	respondJSON(w, http.StatusCreated, map[string]string{"path": path})
}
