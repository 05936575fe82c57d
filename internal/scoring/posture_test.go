package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScorePosture(t *testing.T) {
	score, err := ScorePosture(levelPose())
	require.NoError(t, err)
	assert.Equal(t, 100, score)

	tilted := levelPose()
	tilted[PoseLeftShoulder].Y = 0.5
	tilted[PoseRightShoulder].Y = 0.53125
	score, err = ScorePosture(tilted)
	require.NoError(t, err)
	assert.Equal(t, 68, score)

	slumped := levelPose()
	slumped[PoseRightShoulder].Y = 0.9
	score, err = ScorePosture(slumped)
	require.NoError(t, err)
	assert.Equal(t, 0, score)
}

func TestScorePosture_Absent(t *testing.T) {
	score, err := ScorePosture(nil)
	assert.NoError(t, err)
	assert.Equal(t, 0, score)
}

func TestScorePosture_Malformed(t *testing.T) {
	score, err := ScorePosture(uniformSet(5, 0.5, 0.5))
	assert.ErrorIs(t, err, ErrLandmarkIndex)
	assert.Equal(t, 0, score)
}
