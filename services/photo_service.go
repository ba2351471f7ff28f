// Package services holds the capture, edit and settings flows on top of the
// record store.
package services

import (
	"context"
	"errors"
	"fmt"
	"image"
	"net/http"
	"sync"
	"time"

	"highway_inspector/capture"
	"highway_inspector/imagedata"
	"highway_inspector/location"
	"highway_inspector/models"
	"highway_inspector/naming"
	"highway_inspector/watermark"

	"github.com/apex/log"
	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned for photo IDs the store does not hold.
	ErrNotFound = errors.New("photo not found")
	// ErrSingleCamera is returned when switching facing on a device with one camera.
	ErrSingleCamera = errors.New("only one camera available")
)

// Store is the persistence the services need.
type Store interface {
	Put(ctx context.Context, photo *models.Photo) error
	Get(ctx context.Context, id string) (*models.Photo, error)
	Delete(ctx context.Context, id string) error
	QueryByFilter(ctx context.Context, filter models.PhotoFilter) ([]models.Photo, error)
	GetMany(ctx context.Context, ids []string) ([]models.Photo, error)
	GetSettings(ctx context.Context) (models.AppSettings, error)
	SaveSettings(ctx context.Context, settings models.AppSettings) error
	UpdateSettings(ctx context.Context, update models.SettingsUpdate) (models.AppSettings, error)
	Export(ctx context.Context) (*models.BackupData, error)
	Import(ctx context.Context, backup *models.BackupData) error
}

// Options wires a PhotoService. Store and Compositor are required.
type Options struct {
	Store      Store
	Compositor *watermark.Compositor
	Locator    location.Locator
	// LocateTimeout bounds the GPS lookup of a capture.
	LocateTimeout time.Duration
	// Camera is optional; without it only uploaded frames can be saved.
	Camera capture.Controller
	Facing capture.Facing
	// BackupDir receives automatic backups when the setting is on.
	BackupDir string
	Now       func() time.Time
}

// PhotoService runs the capture flow and the record operations on top of a Store.
type PhotoService struct {
	store      Store
	compositor *watermark.Compositor
	locator    location.Locator
	timeout    time.Duration
	camera     capture.Controller
	backupDir  string
	now        func() time.Time

	mu     sync.Mutex
	facing capture.Facing

	// cameraMu serializes camera sessions; the controller is shared by all requests.
	cameraMu sync.Mutex
}

// NewPhotoService fills in defaults for the optional Options fields.
func NewPhotoService(opts Options) *PhotoService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Locator == nil {
		opts.Locator = location.Unavailable{}
	}
	if opts.Facing == "" {
		opts.Facing = capture.FacingEnvironment
	}
	return &PhotoService{
		store:      opts.Store,
		compositor: opts.Compositor,
		locator:    opts.Locator,
		timeout:    opts.LocateTimeout,
		camera:     opts.Camera,
		backupDir:  opts.BackupDir,
		now:        opts.Now,
		facing:     opts.Facing,
	}
}

// Capture watermarks an uploaded JPEG or PNG frame, names it and stores the
// new record. Nothing is written when compositing fails.
func (s *PhotoService) Capture(ctx context.Context, frame []byte, req models.CaptureRequest) (*models.Photo, error) {
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("Capture: %w", err)
	}

	coords := req.Coordinates
	if coords == nil {
		coords = location.Lookup(ctx, s.locator, s.timeout)
	}

	now := s.now().In(s.compositor.Location())
	source := imagedata.Encode(frame, http.DetectContentType(frame))
	img, err := s.compositor.Apply(source, watermark.FieldsFor(req, coords, now), settings.Watermark)
	if err != nil {
		return nil, fmt.Errorf("Capture: %w", err)
	}

	photo := &models.Photo{
		ID:                uuid.NewString(),
		Filename:          naming.Build(settings.FileNaming.Pattern, naming.TokensFor(req, now)),
		Highway:           req.Highway,
		Direction:         req.Direction,
		Km:                req.Km,
		Meters:            req.Meters,
		Activity:          req.Activity,
		SubActivity:       req.SubActivity,
		Notes:             req.Notes,
		Timestamp:         now.UnixMilli(),
		ImageData:         img,
		Coordinates:       coords,
		WatermarkSettings: settings.Watermark,
	}
	if err := s.store.Put(ctx, photo); err != nil {
		return nil, fmt.Errorf("Capture: %w", err)
	}
	log.WithFields(log.Fields{"id": photo.ID, "filename": photo.Filename}).Info("photo captured")

	if settings.Storage.AutoBackup {
		s.autoBackup(ctx)
	}
	return photo, nil
}

// CaptureFromCamera takes a frame from the configured camera at the resolution
// from settings and saves it like Capture. Camera failures are returned as is
// and not retried.
func (s *PhotoService) CaptureFromCamera(ctx context.Context, req models.CaptureRequest) (*models.Photo, error) {
	if s.camera == nil {
		return nil, capture.ErrCameraUnavailable
	}
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("CaptureFromCamera: %w", err)
	}

	cfg := capture.Config{Resolution: settings.PhotoQuality.Resolution, Facing: s.Facing()}
	frame, err := s.grabFrame(ctx, cfg)
	if err != nil {
		return nil, err
	}
	raw, err := imagedata.EncodeJPEG(frame, watermark.DefaultQuality)
	if err != nil {
		return nil, fmt.Errorf("CaptureFromCamera: %w", err)
	}
	return s.Capture(ctx, raw, req)
}

// grabFrame runs one Open, CaptureFrame, Close session on the camera.
func (s *PhotoService) grabFrame(ctx context.Context, cfg capture.Config) (image.Image, error) {
	s.cameraMu.Lock()
	defer s.cameraMu.Unlock()

	if err := s.camera.Open(ctx, cfg); err != nil {
		return nil, err
	}
	defer s.camera.Close()
	return s.camera.CaptureFrame(ctx)
}

// Facing is the camera used by the next capture.
func (s *PhotoService) Facing() capture.Facing {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.facing
}

// HasMultipleCameras reports whether SwitchFacing can succeed.
func (s *PhotoService) HasMultipleCameras(ctx context.Context) bool {
	return s.camera != nil && s.camera.HasMultipleSources(ctx)
}

// SwitchFacing asks the camera to move to the other device and returns the
// facing it ended up on. The choice is kept for the next capture.
func (s *PhotoService) SwitchFacing(ctx context.Context) (capture.Facing, error) {
	if s.camera == nil {
		return "", capture.ErrCameraUnavailable
	}
	if !s.camera.HasMultipleSources(ctx) {
		return "", ErrSingleCamera
	}
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return "", fmt.Errorf("SwitchFacing: %w", err)
	}

	s.cameraMu.Lock()
	defer s.cameraMu.Unlock()

	cfg := capture.Config{Resolution: settings.PhotoQuality.Resolution, Facing: s.Facing()}
	if err := s.camera.Open(ctx, cfg); err != nil {
		return "", err
	}
	defer s.camera.Close()
	if err := s.camera.SwitchFacing(ctx); err != nil {
		return "", err
	}
	next := s.camera.Facing()

	s.mu.Lock()
	s.facing = next
	s.mu.Unlock()
	return next, nil
}

// Get returns ErrNotFound for unknown IDs.
func (s *PhotoService) Get(ctx context.Context, id string) (*models.Photo, error) {
	photo, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if photo == nil {
		return nil, ErrNotFound
	}
	return photo, nil
}

// Update changes the classification and notes of a stored photo. The image
// keeps the watermark it was captured with.
func (s *PhotoService) Update(ctx context.Context, id string, update models.PhotoUpdate) (*models.Photo, error) {
	photo, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	update.Apply(photo)
	if err := s.store.Put(ctx, photo); err != nil {
		return nil, fmt.Errorf("Update: %w", err)
	}
	log.WithField("id", id).Info("photo updated")
	return photo, nil
}

// List returns the photos matching filter, newest first.
func (s *PhotoService) List(ctx context.Context, filter models.PhotoFilter) ([]models.Photo, error) {
	return s.store.QueryByFilter(ctx, filter)
}

// Select returns the photos with the given IDs, or those matching filter when
// no IDs are given.
func (s *PhotoService) Select(ctx context.Context, ids []string, filter models.PhotoFilter) ([]models.Photo, error) {
	if len(ids) > 0 {
		return s.store.GetMany(ctx, ids)
	}
	return s.store.QueryByFilter(ctx, filter)
}

// Delete removes a photo. Unknown IDs are not an error.
func (s *PhotoService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// Location is the time zone dates are rendered in.
func (s *PhotoService) Location() *time.Location {
	return s.compositor.Location()
}

// Now is the service clock.
func (s *PhotoService) Now() time.Time {
	return s.now()
}
