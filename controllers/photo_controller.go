package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"highway_inspector/imagedata"
	"highway_inspector/models"
	"highway_inspector/services"

	"github.com/gorilla/mux"
)

// PhotoController serves the capture, browse and edit flows.
type PhotoController struct {
	svc           *services.PhotoService
	maxUploadSize int64
}

// NewPhotoController limits multipart uploads to maxUploadSize bytes.
func NewPhotoController(svc *services.PhotoService, maxUploadSize int64) *PhotoController {
	return &PhotoController{svc: svc, maxUploadSize: maxUploadSize}
}

// List handles GET /api/photos with optional highway, activity, from and to filters.
func (c *PhotoController) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r, c.svc.Location())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	photos, err := c.svc.List(r.Context(), filter)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, photos)
}

// Get returns one photo record.
func (c *PhotoController) Get(w http.ResponseWriter, r *http.Request) {
	photo, err := c.svc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, photo)
}

// Image writes the stored image bytes of a photo.
func (c *PhotoController) Image(w http.ResponseWriter, r *http.Request) {
	photo, err := c.svc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	raw, mime, err := imagedata.Decode(photo.ImageData)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", photo.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(raw)))
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}

// Upload handles POST /api/photos: a multipart form with the frame in "file"
// and the inspection form fields.
func (c *PhotoController) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, c.maxUploadSize)
	if err := r.ParseMultipartForm(c.maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("O arquivo não pode exceder %dMB.", c.maxUploadSize/1024/1024))
		} else {
			respondError(w, http.StatusBadRequest, "Formulário inválido: "+err.Error())
		}
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "A imagem é obrigatória no campo 'file'.")
		return
	}
	defer file.Close()
	frame, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Falha ao ler a imagem.")
		return
	}

	req, err := captureRequestFromForm(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validateStruct(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	photo, err := c.svc.Capture(r.Context(), frame, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, photo)
}

// Capture handles POST /api/photos/capture: the frame comes from the camera.
func (c *PhotoController) Capture(w http.ResponseWriter, r *http.Request) {
	var req models.CaptureRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Formato de requisição inválido: "+err.Error())
		return
	}
	if err := validateStruct(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	photo, err := c.svc.CaptureFromCamera(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, photo)
}

// Update edits the metadata of a photo. The image is left as it was.
func (c *PhotoController) Update(w http.ResponseWriter, r *http.Request) {
	var update models.PhotoUpdate
	if err := decodeJSON(r, &update); err != nil {
		respondError(w, http.StatusBadRequest, "Formato de requisição inválido: "+err.Error())
		return
	}
	if err := validateStruct(&update); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	photo, err := c.svc.Update(r.Context(), mux.Vars(r)["id"], update)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, photo)
}

// Delete always answers 204, also for unknown IDs.
func (c *PhotoController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.svc.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func captureRequestFromForm(r *http.Request) (models.CaptureRequest, error) {
	req := models.CaptureRequest{
		Highway:     strings.TrimSpace(r.FormValue("highway")),
		Direction:   models.Direction(strings.TrimSpace(r.FormValue("direction"))),
		Activity:    strings.TrimSpace(r.FormValue("activity")),
		SubActivity: strings.TrimSpace(r.FormValue("subActivity")),
		Notes:       r.FormValue("notes"),
	}

	var err error
	if req.Km, err = formInt(r, "km"); err != nil {
		return req, err
	}
	if req.Meters, err = formInt(r, "meters"); err != nil {
		return req, err
	}

	lat, lon := r.FormValue("latitude"), r.FormValue("longitude")
	if lat != "" || lon != "" {
		la, err1 := strconv.ParseFloat(lat, 64)
		lo, err2 := strconv.ParseFloat(lon, 64)
		if err1 != nil || err2 != nil {
			return req, fmt.Errorf("coordenadas inválidas")
		}
		req.Coordinates = &models.Coordinates{Latitude: la, Longitude: lo}
	}
	return req, nil
}

func formInt(r *http.Request, name string) (int, error) {
	v := strings.TrimSpace(r.FormValue(name))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("campo %s deve ser um número inteiro", name)
	}
	return n, nil
}

// parseFilter reads the photo filter from the query string. Dates are
// RFC3339 timestamps, epoch milliseconds or plain YYYY-MM-DD days; a plain
// "to" day includes the whole day.
func parseFilter(r *http.Request, loc *time.Location) (models.PhotoFilter, error) {
	q := r.URL.Query()
	filter := models.PhotoFilter{
		Highway:  q.Get("highway"),
		Activity: q.Get("activity"),
	}
	var err error
	if filter.DateFrom, err = parseDate(q.Get("from"), loc, false); err != nil {
		return filter, fmt.Errorf("data inicial inválida: %q", q.Get("from"))
	}
	if filter.DateTo, err = parseDate(q.Get("to"), loc, true); err != nil {
		return filter, fmt.Errorf("data final inválida: %q", q.Get("to"))
	}
	return filter, nil
}

func parseDate(s string, loc *time.Location, endOfDay bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		t := time.UnixMilli(ms)
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	day, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		day = day.AddDate(0, 0, 1).Add(-time.Millisecond)
	}
	return &day, nil
}
