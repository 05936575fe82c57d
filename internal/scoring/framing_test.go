package scoring

import (
	"PresenceCoach/internal/entity"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckFacePosition(t *testing.T) {
	tests := []struct {
		name     string
		x, y     float64
		centered bool
		message  string
	}{
		{"center", 0.5, 0.5, true, MessageCentered},
		{"too far left", 0.2, 0.5, false, "Move your face more to the right"},
		{"on left bound", 0.3, 0.5, false, "Move your face more to the right"},
		{"too far right", 0.8, 0.5, false, "Move your face more to the left"},
		{"on right bound", 0.7, 0.5, false, "Move your face more to the left"},
		{"on top bound", 0.5, 0.2, false, "Move your face down"},
		{"on bottom bound", 0.5, 0.8, false, "Move your face up"},
		{"too high", 0.5, 0.1, false, "Move your face down"},
		{"too low", 0.5, 0.9, false, "Move your face up"},
		{"horizontal wins over vertical", 0.2, 0.1, false, "Move your face more to the right"},
		{"right and low", 0.75, 0.95, false, "Move your face more to the left"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CheckFacePosition(entity.LandmarkSet{{X: tt.x, Y: tt.y}})
			require.NoError(t, err)
			assert.Equal(t, entity.FacePosition{IsCentered: tt.centered, Message: tt.message}, got)
		})
	}
}

func TestCheckFacePosition_NoFace(t *testing.T) {
	got, err := CheckFacePosition(nil)
	assert.NoError(t, err)
	assert.Equal(t, entity.FacePosition{IsCentered: false, Message: MessageNoFace}, got)

	got, err = CheckFacePosition(entity.LandmarkSet{})
	assert.ErrorIs(t, err, ErrDegenerateGeometry)
	assert.Equal(t, MessageNoFace, got.Message)
}
