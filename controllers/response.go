package controllers

import (
	"errors"
	"net/http"

	"highway_inspector/capture"
	"highway_inspector/imagedata"
	"highway_inspector/services"
	"highway_inspector/watermark"

	"github.com/apex/log"
	json "github.com/goccy/go-json"
)

func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.WithError(err).Error("failed to encode JSON response")
		}
	}
}

func respondError(w http.ResponseWriter, statusCode int, message string) {
	respondJSON(w, statusCode, map[string]string{"error": message})
}

// respondServiceError maps service errors onto short user-facing messages.
// Server side failures are logged here, once, with the underlying error.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		respondError(w, http.StatusNotFound, "Foto não encontrada.")
	case errors.Is(err, capture.ErrCameraUnavailable), errors.Is(err, capture.ErrNotOpen):
		log.WithError(err).Warn("camera unavailable")
		respondError(w, http.StatusServiceUnavailable, "Câmera indisponível.")
	case errors.Is(err, services.ErrSingleCamera):
		respondError(w, http.StatusConflict, "Apenas uma câmera disponível.")
	case errors.Is(err, watermark.ErrRender):
		respondError(w, http.StatusUnprocessableEntity, "Não foi possível aplicar a marca d'água.")
	case errors.Is(err, imagedata.ErrInvalid):
		respondError(w, http.StatusBadRequest, "Imagem inválida.")
	default:
		log.WithError(err).Error("request failed")
		respondError(w, http.StatusInternalServerError, "Erro ao acessar o armazenamento local.")
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}
