// Package landmark talks to the external landmark detector that turns a frame
// into face mesh, body pose and hand keypoints.
package landmark

import (
	"PresenceCoach/internal/entity"
	"errors"
	"golang.org/x/net/context"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	ErrNotConnected = errors.New("not connected to landmark detector")
	ErrRejected     = errors.New("landmark detector rejected frame")
)

// Detector produces a fresh DetectionSnapshot for one encoded frame.
type Detector interface {
	Detect(ctx context.Context, frame []byte) (*entity.DetectionSnapshot, error)
	Close() error
}

// detectorReply is the JSON message the detector answers each frame with.
type detectorReply struct {
	Faces []entity.LandmarkSet `json:"faces"`
	Pose  entity.LandmarkSet   `json:"pose"`
	Hands []entity.LandmarkSet `json:"hands"`
	Error string               `json:"error,omitempty"`
}

func decodeReply(message []byte) (*entity.DetectionSnapshot, error) {
	var reply detectorReply
	if err := json.Unmarshal(message, &reply); err != nil {
		return nil, err
	}
	if reply.Error != "" {
		return nil, errors.Join(ErrRejected, errors.New(reply.Error))
	}

	return &entity.DetectionSnapshot{
		Faces: reply.Faces,
		Pose:  reply.Pose,
		Hands: reply.Hands,
	}, nil
}
