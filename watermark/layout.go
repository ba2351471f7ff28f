package watermark

import (
	"math"

	"highway_inspector/models"
)

const (
	minFontSize = 12.0
	maxFontSize = 24.0

	// LineSpacing is the line height as a multiple of the font size.
	LineSpacing = 1.2
	// Padding is the space between the box edge and its text.
	Padding = 10.0
	// Margin is the distance between the box and the image edge.
	Margin = 20.0
)

// FontSize scales the font with the image width, clamped to [12, 24].
func FontSize(width int) float64 {
	return math.Max(minFontSize, math.Min(maxFontSize, float64(width)/40))
}

// BoxSize returns the background box dimensions for lines whose widest
// rendered width is textW.
func BoxSize(textW float64, lineCount int, fontSize float64) (float64, float64) {
	return textW + Padding*2, float64(lineCount)*fontSize*LineSpacing + Padding*2
}

// Position returns the top-left corner of a boxW x boxH box anchored to the
// given corner of an imgW x imgH image. Unknown positions fall back to
// bottom-left.
func Position(pos string, imgW, imgH int, boxW, boxH float64) (float64, float64) {
	w, h := float64(imgW), float64(imgH)
	switch pos {
	case models.PositionTopLeft:
		return Margin, Margin
	case models.PositionTopRight:
		return w - boxW - Margin, Margin
	case models.PositionBottomRight:
		return w - boxW - Margin, h - boxH - Margin
	default:
		return Margin, h - boxH - Margin
	}
}
