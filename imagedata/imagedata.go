// Package imagedata converts between raw image bytes, decoded images and the
// self-contained data URL strings photos are stored as.
package imagedata

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // decode PNG frames
	"strings"
)

const (
	MimeJPEG = "image/jpeg"
	MimePNG  = "image/png"
)

// ErrInvalid is returned for strings that are not a base64 image payload.
var ErrInvalid = errors.New("invalid image data")

// Encode wraps raw image bytes into a data URL.
func Encode(raw []byte, mime string) string {
	if mime == "" {
		mime = MimeJPEG
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(raw)
}

// Decode unwraps a data URL into raw bytes and its MIME type. A bare base64
// payload without the data: prefix is accepted and assumed to be JPEG.
func Decode(s string) ([]byte, string, error) {
	mime := MimeJPEG
	payload := s
	if strings.HasPrefix(s, "data:") {
		header, body, ok := strings.Cut(s, ",")
		if !ok {
			return nil, "", fmt.Errorf("%w: missing payload separator", ErrInvalid)
		}
		meta := strings.TrimPrefix(header, "data:")
		if !strings.HasSuffix(meta, ";base64") {
			return nil, "", fmt.Errorf("%w: only base64 data URLs are supported", ErrInvalid)
		}
		if m := strings.TrimSuffix(meta, ";base64"); m != "" {
			mime = m
		}
		payload = body
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return raw, mime, nil
}

// DecodeImage decodes JPEG or PNG bytes and rotates the result upright
// according to its EXIF orientation tag, if any.
func DecodeImage(raw []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if orientation := Orientation(raw); orientation != 1 {
		img = CorrectOrientation(img, orientation)
	}
	return img, nil
}

// DecodeDataURL decodes a data URL straight into an upright image.
func DecodeDataURL(s string) (image.Image, error) {
	raw, _, err := Decode(s)
	if err != nil {
		return nil, err
	}
	return DecodeImage(raw)
}

// EncodeJPEG encodes img as JPEG at the given quality (1-100).
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
