package scoring

import (
	"PresenceCoach/internal/entity"
	"math"
)

// shoulderPenalty turns a normalized shoulder height gap into score points;
// a 0.1 gap costs the full 100.
const shoulderPenalty = 1000.0

// ScorePosture rates shoulder levelness. A missing pose scores 0.
func ScorePosture(pose entity.LandmarkSet) (int, error) {
	if len(pose) == 0 {
		return 0, nil
	}

	shoulders, err := pick(pose, PoseLeftShoulder, PoseRightShoulder)
	if err != nil {
		return 0, err
	}

	slope := math.Abs(shoulders[0].Y - shoulders[1].Y)
	return clampScore(100 - slope*shoulderPenalty), nil
}
