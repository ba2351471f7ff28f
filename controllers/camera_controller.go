package controllers

import (
	"net/http"

	"highway_inspector/services"
)

// CameraController exposes the camera facing state.
type CameraController struct {
	svc *services.PhotoService
}

// NewCameraController creates a CameraController.
func NewCameraController(svc *services.PhotoService) *CameraController {
	return &CameraController{svc: svc}
}

type cameraStatus struct {
	Facing   string `json:"facing"`
	Multiple bool   `json:"multiple"`
}

// Status reports the current facing and whether it can be switched.
func (c *CameraController) Status(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, cameraStatus{
		Facing:   string(c.svc.Facing()),
		Multiple: c.svc.HasMultipleCameras(r.Context()),
	})
}

// Switch moves to the other camera.
func (c *CameraController) Switch(w http.ResponseWriter, r *http.Request) {
	facing, err := c.svc.SwitchFacing(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cameraStatus{Facing: string(facing), Multiple: true})
}
