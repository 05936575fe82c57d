package scoring

import (
	"PresenceCoach/internal/entity"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shiftEyes moves both eye centers while the corners and lids stay put.
func shiftEyes(face entity.LandmarkSet, dx, dy float64) entity.LandmarkSet {
	face[FaceLeftEyeCenter].X += dx
	face[FaceLeftEyeCenter].Y += dy
	face[FaceRightEyeCenter].X += dx
	face[FaceRightEyeCenter].Y += dy
	return face
}

func TestAnalyzeEyeContact(t *testing.T) {
	tests := []struct {
		name      string
		dx, dy    float64
		direction entity.LookingDirection
		score     int
	}{
		{"direct", 0, 0, entity.LookingDirect, 100},
		{"below threshold", 0.0078125, -0.0078125, entity.LookingDirect, 100},
		{"left", 0.015625, 0, entity.LookingLeft, 34},
		{"right", -0.015625, 0, entity.LookingRight, 34},
		{"down", 0, 0.03125, entity.LookingDown, 18},
		{"up", 0, -0.015625, entity.LookingUp, 34},
		{"horizontal dominates vertical", 0.015625, 0.03125, entity.LookingLeft, 34},
		{"far off clamps to zero", -0.0625, 0, entity.LookingRight, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AnalyzeEyeContact(shiftEyes(centeredFace(), tt.dx, tt.dy))
			require.NoError(t, err)
			assert.Equal(t, tt.direction, got.LookingDirection)
			assert.Equal(t, tt.score, got.Score)
		})
	}
}

func TestAnalyzeEyeContact_Fallbacks(t *testing.T) {
	got, err := AnalyzeEyeContact(nil)
	assert.NoError(t, err)
	assert.Equal(t, entity.EyeContactResult{Score: 0, LookingDirection: entity.LookingNotDetected}, got)

	got, err = AnalyzeEyeContact(uniformSet(100, 0.5, 0.5))
	assert.ErrorIs(t, err, ErrLandmarkIndex)
	assert.Equal(t, entity.EyeContactResult{Score: 0, LookingDirection: entity.LookingNotDetected}, got)
}
