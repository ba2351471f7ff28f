package watermark

import (
	"testing"

	"highway_inspector/models"

	"github.com/stretchr/testify/assert"
)

func TestFontSize(t *testing.T) {
	assert.Equal(t, 12.0, FontSize(100))
	assert.Equal(t, 16.0, FontSize(640))
	assert.Equal(t, 24.0, FontSize(1920))
}

func TestBoxSize(t *testing.T) {
	w, h := BoxSize(100, 2, 20)
	assert.Equal(t, 120.0, w)
	assert.InDelta(t, 68.0, h, 1e-9)
}

func TestPosition(t *testing.T) {
	tests := []struct {
		pos  string
		x, y float64
	}{
		{models.PositionTopLeft, 20, 20},
		{models.PositionTopRight, 780, 20},
		{models.PositionBottomRight, 780, 530},
		{models.PositionBottomLeft, 20, 530},
		{"middle", 20, 530},
	}
	for _, tt := range tests {
		x, y := Position(tt.pos, 1000, 600, 200, 50)
		assert.Equal(t, tt.x, x, tt.pos)
		assert.Equal(t, tt.y, y, tt.pos)
	}
}
