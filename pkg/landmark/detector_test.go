package landmark

import (
	"PresenceCoach/internal/entity"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeReply(t *testing.T) {
	snapshot, err := decodeReply([]byte(`{
		"faces": [[{"x": 0.5, "y": 0.4}, {"x": 0.6, "y": 0.45}]],
		"pose": null,
		"hands": []
	}`))
	require.NoError(t, err)

	assert.Equal(t, []entity.LandmarkSet{{{X: 0.5, Y: 0.4}, {X: 0.6, Y: 0.45}}}, snapshot.Faces)
	assert.False(t, snapshot.HasPose())
	assert.Empty(t, snapshot.Hands)
}

func TestDecodeReply_Errors(t *testing.T) {
	_, err := decodeReply([]byte(`{"error": "model not loaded"}`))
	assert.ErrorIs(t, err, ErrRejected)
	assert.Contains(t, err.Error(), "model not loaded")

	_, err = decodeReply([]byte(`not json`))
	assert.Error(t, err)
}
