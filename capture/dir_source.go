package capture

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"highway_inspector/imagedata"

	"github.com/apex/log"
	"golang.org/x/image/draw"
)

var frameExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

// DirSource is a camera backed by a directory a device driver writes frames
// into. Each facing is a sub-directory of Root named after it; the newest
// frame in the open device is the captured one.
type DirSource struct {
	Root string

	mu     sync.Mutex
	open   bool
	cfg    Config
	width  int
	height int
}

// NewDirSource creates a closed DirSource over root.
func NewDirSource(root string) *DirSource {
	return &DirSource{Root: root}
}

func (d *DirSource) deviceDir(f Facing) string {
	return filepath.Join(d.Root, string(f))
}

func (d *DirSource) deviceExists(f Facing) bool {
	info, err := os.Stat(d.deviceDir(f))
	return err == nil && info.IsDir()
}

// Open selects the device for cfg.Facing. Environment is used when no facing is given.
func (d *DirSource) Open(_ context.Context, cfg Config) error {
	if cfg.Facing == "" {
		cfg.Facing = FacingEnvironment
	}
	w, h, err := ParseResolution(cfg.Resolution)
	if err != nil {
		return err
	}
	if !d.deviceExists(cfg.Facing) {
		return fmt.Errorf("%w: no %s device under %s", ErrCameraUnavailable, cfg.Facing, d.Root)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.open, d.cfg, d.width, d.height = true, cfg, w, h
	log.WithFields(log.Fields{"facing": cfg.Facing, "resolution": cfg.Resolution}).Info("camera opened")
	return nil
}

// CaptureFrame decodes the newest frame, turns it upright and scales it down
// to fit the configured resolution.
func (d *DirSource) CaptureFrame(ctx context.Context) (image.Image, error) {
	d.mu.Lock()
	open, facing, w, h := d.open, d.cfg.Facing, d.width, d.height
	d.mu.Unlock()
	if !open {
		return nil, ErrNotOpen
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := d.newestFrame(facing)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCameraUnavailable, err)
	}
	img, err := imagedata.DecodeImage(raw)
	if err != nil {
		return nil, err
	}
	return fit(img, w, h), nil
}

func (d *DirSource) newestFrame(f Facing) (string, error) {
	dir := d.deviceDir(f)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCameraUnavailable, err)
	}

	var newest string
	var newestMod int64
	for _, e := range entries {
		if e.IsDir() || !frameExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if mod := info.ModTime().UnixNano(); newest == "" || mod > newestMod || (mod == newestMod && e.Name() > filepath.Base(newest)) {
			newest, newestMod = filepath.Join(dir, e.Name()), mod
		}
	}
	if newest == "" {
		return "", fmt.Errorf("%w: no frame in %s", ErrCameraUnavailable, dir)
	}
	return newest, nil
}

// SwitchFacing reopens on the other device. It fails, leaving the current
// device selected, when the other device does not exist.
func (d *DirSource) SwitchFacing(_ context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open {
		return ErrNotOpen
	}
	next := d.cfg.Facing.other()
	if !d.deviceExists(next) {
		return fmt.Errorf("%w: no %s device under %s", ErrCameraUnavailable, next, d.Root)
	}
	d.cfg.Facing = next
	log.WithField("facing", next).Info("camera switched")
	return nil
}

// HasMultipleSources reports whether both devices are present.
func (d *DirSource) HasMultipleSources(_ context.Context) bool {
	return d.deviceExists(FacingUser) && d.deviceExists(FacingEnvironment)
}

// Facing returns the currently selected device.
func (d *DirSource) Facing() Facing {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg.Facing
}

// Close ends the session. Closing twice is fine.
func (d *DirSource) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open = false
	return nil
}

// fit scales img down, keeping its aspect ratio, so that it fits w x h.
// Smaller images are returned as they are.
func fit(img image.Image, w, h int) image.Image {
	b := img.Bounds()
	if b.Dx() <= w && b.Dy() <= h {
		return img
	}
	scale := min(float64(w)/float64(b.Dx()), float64(h)/float64(b.Dy()))
	dw := max(1, int(float64(b.Dx())*scale))
	dh := max(1, int(float64(b.Dy())*scale))

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
