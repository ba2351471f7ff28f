package controllers

import (
	"net/http"

	"highway_inspector/middleware"
	"highway_inspector/services"

	"github.com/gorilla/mux"
)

// NewRouter wires every HTTP route onto the photo service.
func NewRouter(svc *services.PhotoService, maxUploadSize int64) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.RequestID, middleware.Recoverer, middleware.RequestLogger)

	router.HandleFunc("/api/Service/status", HealthCheck).Methods(http.MethodGet)

	photos := NewPhotoController(svc, maxUploadSize)
	photoRouter := router.PathPrefix("/api/photos").Subrouter()
	photoRouter.HandleFunc("", photos.List).Methods(http.MethodGet)
	photoRouter.HandleFunc("", photos.Upload).Methods(http.MethodPost)
	photoRouter.HandleFunc("/capture", photos.Capture).Methods(http.MethodPost)
	photoRouter.HandleFunc("/{id}", photos.Get).Methods(http.MethodGet)
	photoRouter.HandleFunc("/{id}", photos.Update).Methods(http.MethodPut)
	photoRouter.HandleFunc("/{id}", photos.Delete).Methods(http.MethodDelete)
	photoRouter.HandleFunc("/{id}/image", photos.Image).Methods(http.MethodGet)

	settings := NewSettingsController(svc)
	router.HandleFunc("/api/settings", settings.Get).Methods(http.MethodGet)
	router.HandleFunc("/api/settings", settings.Replace).Methods(http.MethodPut)
	router.HandleFunc("/api/settings", settings.Patch).Methods(http.MethodPatch)

	camera := NewCameraController(svc)
	router.HandleFunc("/api/camera", camera.Status).Methods(http.MethodGet)
	router.HandleFunc("/api/camera/switch", camera.Switch).Methods(http.MethodPost)

	export := NewExportController(svc)
	router.HandleFunc("/api/export/csv", export.CSV).Methods(http.MethodPost)
	router.HandleFunc("/api/export/share", export.Share).Methods(http.MethodPost)

	backup := NewBackupController(svc)
	router.HandleFunc("/api/backup", backup.Download).Methods(http.MethodGet)
	router.HandleFunc("/api/backup", backup.Restore).Methods(http.MethodPost)
	router.HandleFunc("/api/backup/files", backup.Write).Methods(http.MethodPost)

	return router
}
