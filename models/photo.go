package models

import (
	json "github.com/goccy/go-json"
)

// Direction is the travel direction of the carriageway where the occurrence was photographed.
type Direction string

const (
	DirectionNorth   Direction = "Norte"
	DirectionSouth   Direction = "Sul"
	DirectionEast    Direction = "Leste"
	DirectionWest    Direction = "Oeste"
	DirectionCentral Direction = "Central"
)

// Directions lists every accepted direction in display order.
var Directions = []Direction{DirectionNorth, DirectionSouth, DirectionEast, DirectionWest, DirectionCentral}

// Valid reports whether d is one of the fixed directions.
func (d Direction) Valid() bool {
	for _, v := range Directions {
		if d == v {
			return true
		}
	}
	return false
}

// Coordinates is a GPS fix taken at capture time.
type Coordinates struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// Photo is one captured, classified and watermarked occurrence.
// ImageData always holds the composited image as it was at save time.
type Photo struct {
	ID          string    `json:"id" db:"Id"`
	Filename    string    `json:"filename" db:"Filename"`
	Highway     string    `json:"highway" db:"Highway"`
	Direction   Direction `json:"direction" db:"Direction"`
	Km          int       `json:"km" db:"Km"`
	Meters      int       `json:"meters" db:"Meters"`
	Activity    string    `json:"activity" db:"Activity"`
	SubActivity string    `json:"subActivity" db:"SubActivity"`
	Notes       string    `json:"notes,omitempty" db:"Notes"`
	Timestamp   int64     `json:"timestamp" db:"Timestamp"`
	ImageData   string    `json:"imageData" db:"ImageData"`

	CoordinatesJson string `json:"-" db:"CoordinatesJson"`
	WatermarkJson   string `json:"-" db:"WatermarkJson"`

	Coordinates       *Coordinates     `json:"coordinates,omitempty" db:"-"`
	WatermarkSettings WatermarkOptions `json:"watermarkSettings" db:"-"`
}

// UpdateJsonProperties serializes Coordinates and WatermarkSettings into their JSON columns.
func (p *Photo) UpdateJsonProperties() error {
	p.CoordinatesJson = ""
	if p.Coordinates != nil {
		b, err := json.Marshal(p.Coordinates)
		if err != nil {
			return err
		}
		p.CoordinatesJson = string(b)
	}

	b, err := json.Marshal(p.WatermarkSettings)
	if err != nil {
		return err
	}
	p.WatermarkJson = string(b)
	return nil
}

// LoadJsonProperties hydrates Coordinates and WatermarkSettings from their JSON columns.
// An empty coordinates column means GPS was not available at capture time.
func (p *Photo) LoadJsonProperties() error {
	p.Coordinates = nil
	if p.CoordinatesJson != "" {
		var c Coordinates
		if err := json.Unmarshal([]byte(p.CoordinatesJson), &c); err != nil {
			return err
		}
		p.Coordinates = &c
	}

	p.WatermarkSettings = WatermarkOptions{}
	if p.WatermarkJson != "" {
		if err := json.Unmarshal([]byte(p.WatermarkJson), &p.WatermarkSettings); err != nil {
			return err
		}
	}
	return nil
}

// PhotoUpdate is the edit-flow patch. Only classification and notes can change;
// the image, its watermark snapshot, filename, timestamp and coordinates are frozen.
type PhotoUpdate struct {
	Highway     *string    `json:"highway,omitempty" validate:"omitempty,min=1"`
	Direction   *Direction `json:"direction,omitempty" validate:"omitempty,direction"`
	Km          *int       `json:"km,omitempty" validate:"omitempty,gte=0"`
	Meters      *int       `json:"meters,omitempty" validate:"omitempty,gte=0,lte=999"`
	Activity    *string    `json:"activity,omitempty" validate:"omitempty,min=1"`
	SubActivity *string    `json:"subActivity,omitempty" validate:"omitempty,min=1"`
	Notes       *string    `json:"notes,omitempty"`
}

// Apply copies the present fields of u onto p.
func (u PhotoUpdate) Apply(p *Photo) {
	if u.Highway != nil {
		p.Highway = *u.Highway
	}
	if u.Direction != nil {
		p.Direction = *u.Direction
	}
	if u.Km != nil {
		p.Km = *u.Km
	}
	if u.Meters != nil {
		p.Meters = *u.Meters
	}
	if u.Activity != nil {
		p.Activity = *u.Activity
	}
	if u.SubActivity != nil {
		p.SubActivity = *u.SubActivity
	}
	if u.Notes != nil {
		p.Notes = *u.Notes
	}
}
