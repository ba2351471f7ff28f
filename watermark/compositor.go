// Package watermark burns inspection data into captured photos.
package watermark

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"
	"time"

	"highway_inspector/imagedata"
	"highway_inspector/models"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// DefaultQuality is the JPEG quality of composited photos.
const DefaultQuality = 90

// ErrRender is returned when a photo cannot be decoded, drawn or re-encoded.
var ErrRender = errors.New("watermark rendering failed")

var (
	background = color.RGBA{0, 0, 0, 178} // black at 70% opacity
	outline    = color.Black
	fill       = color.White
)

// outline offsets, a 2px ring around each glyph
var strokeOffsets = [][2]float64{
	{-2, 0}, {2, 0}, {0, -2}, {0, 2},
	{-1, -1}, {1, -1}, {-1, 1}, {1, 1},
}

// Config sets the JPEG quality of composed images and the zone timestamps are shown in.
type Config struct {
	Quality  int
	Location *time.Location
}

// Compositor draws watermark boxes. It is safe for concurrent use.
type Compositor struct {
	quality  int
	location *time.Location

	font  *opentype.Font
	mu    sync.Mutex
	faces map[float64]font.Face
}

// New loads the watermark font. Out of range qualities fall back to DefaultQuality.
func New(cfg Config) (*Compositor, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse watermark font: %w", err)
	}
	if cfg.Quality <= 0 || cfg.Quality > 100 {
		cfg.Quality = DefaultQuality
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &Compositor{
		quality:  cfg.Quality,
		location: cfg.Location,
		font:     f,
		faces:    make(map[float64]font.Face),
	}, nil
}

// Location is the time zone the datetime line is rendered in.
func (c *Compositor) Location() *time.Location {
	return c.location
}

func (c *Compositor) face(size float64) (font.Face, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if f, ok := c.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(c.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	c.faces[size] = f
	return f, nil
}

// Compose draws the watermark for f onto a copy of img and returns it with the
// rendered lines. When no line applies the copy is returned untouched.
func (c *Compositor) Compose(img image.Image, f Fields, opts models.WatermarkOptions) (*image.RGBA, []string, error) {
	if img == nil {
		return nil, nil, fmt.Errorf("%w: no source image", ErrRender)
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)

	lines := Lines(f, opts, c.location)
	if len(lines) == 0 {
		return dst, nil, nil
	}
	if dst.Bounds().Empty() {
		return nil, nil, fmt.Errorf("%w: empty image", ErrRender)
	}

	fontSize := FontSize(b.Dx())
	face, err := c.face(fontSize)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	dc := gg.NewContextForRGBA(dst)
	c.mu.Lock()
	defer c.mu.Unlock()
	dc.SetFontFace(face)

	var textW float64
	for _, line := range lines {
		if w, _ := dc.MeasureString(line); w > textW {
			textW = w
		}
	}
	boxW, boxH := BoxSize(textW, len(lines), fontSize)
	x, y := Position(opts.Position, b.Dx(), b.Dy(), boxW, boxH)

	dc.SetColor(background)
	dc.DrawRectangle(x, y, boxW, boxH)
	dc.Fill()

	lineHeight := fontSize * LineSpacing
	for i, line := range lines {
		tx := x + Padding
		ty := y + Padding + float64(i+1)*lineHeight
		dc.SetColor(outline)
		for _, o := range strokeOffsets {
			dc.DrawString(line, tx+o[0], ty+o[1])
		}
		dc.SetColor(fill)
		dc.DrawString(line, tx, ty)
	}
	return dst, lines, nil
}

// Apply watermarks a photo stored as a data URL and returns the result as a
// JPEG data URL. A photo that gets no lines is returned unchanged.
func (c *Compositor) Apply(imageData string, f Fields, opts models.WatermarkOptions) (string, error) {
	if len(Lines(f, opts, c.location)) == 0 {
		return imageData, nil
	}

	src, err := imagedata.DecodeDataURL(imageData)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	out, _, err := c.Compose(src, f, opts)
	if err != nil {
		return "", err
	}
	raw, err := imagedata.EncodeJPEG(out, c.quality)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	return imagedata.Encode(raw, imagedata.MimeJPEG), nil
}
