package entity

// Point is a landmark coordinate normalized to the frame, y grows downward.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LandmarkSet is an ordered list of points indexed by the detector's anatomical scheme.
type LandmarkSet []Point

// DetectionSnapshot is what the landmark detector returns for a single frame.
// A nil Pose means no body was found.
type DetectionSnapshot struct {
	Faces []LandmarkSet `json:"faces"`
	Pose  LandmarkSet   `json:"pose"`
	Hands []LandmarkSet `json:"hands"`
}

func (s DetectionSnapshot) HasPose() bool {
	return len(s.Pose) > 0
}
