package models

// CaptureRequest is the inspection form submitted together with a captured frame.
type CaptureRequest struct {
	Highway     string       `json:"highway" validate:"required"`
	Direction   Direction    `json:"direction" validate:"required,direction"`
	Km          int          `json:"km" validate:"gte=0"`
	Meters      int          `json:"meters" validate:"gte=0,lte=999"`
	Activity    string       `json:"activity" validate:"required"`
	SubActivity string       `json:"subActivity" validate:"required"`
	Notes       string       `json:"notes,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// SelectionRequest names the photos an export or share acts on.
type SelectionRequest struct {
	IDs []string `json:"ids"`
}
