// Package capture defines the camera boundary the capture flow consumes.
// The core only ever sees the still frames a Controller hands back.
package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"
)

// Facing selects the front or back camera.
type Facing string

const (
	FacingUser        Facing = "user"
	FacingEnvironment Facing = "environment"
)

var (
	// ErrCameraUnavailable is terminal for a capture session: no device or no permission.
	ErrCameraUnavailable = errors.New("camera unavailable")
	// ErrNotOpen is returned when frames are requested from a closed controller.
	ErrNotOpen = errors.New("camera is not open")
)

// Config selects the device and the maximum frame size for a session.
type Config struct {
	Resolution string
	Facing     Facing
}

// Controller is a camera that produces still frames.
type Controller interface {
	Open(ctx context.Context, cfg Config) error
	CaptureFrame(ctx context.Context) (image.Image, error)
	SwitchFacing(ctx context.Context) error
	// Facing is the device the controller currently has selected.
	Facing() Facing
	HasMultipleSources(ctx context.Context) bool
	Close() error
}

// ParseResolution parses "WIDTHxHEIGHT".
func ParseResolution(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid resolution %q", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil || w <= 0 {
		return 0, 0, fmt.Errorf("invalid resolution width %q", s)
	}
	h, err := strconv.Atoi(hs)
	if err != nil || h <= 0 {
		return 0, 0, fmt.Errorf("invalid resolution height %q", s)
	}
	return w, h, nil
}

func (f Facing) other() Facing {
	if f == FacingUser {
		return FacingEnvironment
	}
	return FacingUser
}
