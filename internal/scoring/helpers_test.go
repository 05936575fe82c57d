package scoring

import (
	"PresenceCoach/internal/entity"
)

func uniformSet(n int, x, y float64) entity.LandmarkSet {
	set := make(entity.LandmarkSet, n)
	for i := range set {
		set[i] = entity.Point{X: x, Y: y}
	}
	return set
}

// centeredFace is a full face mesh collapsed onto the frame center: centered,
// looking straight ahead, neutral expression.
func centeredFace() entity.LandmarkSet {
	return uniformSet(FaceMeshLandmarkCount, 0.5, 0.5)
}

func levelPose() entity.LandmarkSet {
	return uniformSet(PoseLandmarkCount, 0.5, 0.6)
}

func handAt(x, y float64) entity.LandmarkSet {
	return uniformSet(HandLandmarkCount, x, y)
}
