package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"highway_inspector/models"
	"highway_inspector/report"
	"highway_inspector/services"
)

// ExportController serves CSV reports and share archives.
type ExportController struct {
	svc *services.PhotoService
}

// NewExportController creates an ExportController.
func NewExportController(svc *services.PhotoService) *ExportController {
	return &ExportController{svc: svc}
}

// selection reads the optional {"ids": [...]} body; without IDs the query
// string filter picks the photos.
func (c *ExportController) selection(w http.ResponseWriter, r *http.Request) ([]models.Photo, bool) {
	var sel models.SelectionRequest
	if err := decodeJSON(r, &sel); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "Formato de requisição inválido: "+err.Error())
		return nil, false
	}
	filter, err := parseFilter(r, c.svc.Location())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	photos, err := c.svc.Select(r.Context(), sel.IDs, filter)
	if err != nil {
		respondServiceError(w, err)
		return nil, false
	}
	return photos, true
}

// CSV handles POST /api/export/csv.
func (c *ExportController) CSV(w http.ResponseWriter, r *http.Request) {
	photos, ok := c.selection(w, r)
	if !ok {
		return
	}
	body := report.ExportCSV(photos, c.svc.Location())

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename(c.svc.Now())))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// Share handles POST /api/export/share: a zip with the selected photos laid
// out per the storage settings.
func (c *ExportController) Share(w http.ResponseWriter, r *http.Request) {
	photos, ok := c.selection(w, r)
	if !ok {
		return
	}
	if len(photos) == 0 {
		respondError(w, http.StatusBadRequest, "Nenhuma foto selecionada.")
		return
	}
	settings, err := c.svc.Settings(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := report.Share(&buf, photos, settings.Storage, c.svc.Location()); err != nil {
		respondServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.ArchiveName(c.svc.Now())))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
