package controllers

import (
	"net/http"

	"highway_inspector/models"
	"highway_inspector/services"
)

// SettingsController serves the global settings row.
type SettingsController struct {
	svc *services.PhotoService
}

// NewSettingsController creates a SettingsController.
func NewSettingsController(svc *services.PhotoService) *SettingsController {
	return &SettingsController{svc: svc}
}

// Get returns the stored settings, or the defaults when none were saved.
func (c *SettingsController) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := c.svc.Settings(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

// Replace overwrites every setting.
func (c *SettingsController) Replace(w http.ResponseWriter, r *http.Request) {
	var settings models.AppSettings
	if err := decodeJSON(r, &settings); err != nil {
		respondError(w, http.StatusBadRequest, "Formato de requisição inválido: "+err.Error())
		return
	}
	if err := validateStruct(&settings); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := c.svc.SaveSettings(r.Context(), settings); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

// Patch replaces only the sections present in the body.
func (c *SettingsController) Patch(w http.ResponseWriter, r *http.Request) {
	var update models.SettingsUpdate
	if err := decodeJSON(r, &update); err != nil {
		respondError(w, http.StatusBadRequest, "Formato de requisição inválido: "+err.Error())
		return
	}
	if err := validateStruct(&update); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	settings, err := c.svc.UpdateSettings(r.Context(), update)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}
