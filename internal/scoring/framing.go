package scoring

import (
	"PresenceCoach/internal/entity"
)

const (
	MessageNoFace        = "No face detected"
	MessageMultipleFaces = "Multiple faces detected"
	MessageCentered      = "Face is well positioned"
)

// framingRule is one entry of the ordered "which way to move" list.
type framingRule struct {
	message string
	match   func(c entity.Point) bool
}

// Instructions are phrased for the user, so they point opposite to the offset.
var framingRules = []framingRule{
	{"Move your face more to the right", func(c entity.Point) bool { return c.X <= 0.3 }},
	{"Move your face more to the left", func(c entity.Point) bool { return c.X >= 0.7 }},
	{"Move your face down", func(c entity.Point) bool { return c.Y <= 0.2 }},
	{"Move your face up", func(entity.Point) bool { return true }},
}

var noFacePosition = entity.FacePosition{IsCentered: false, Message: MessageNoFace}

// CheckFacePosition decides whether the face centroid sits in the central
// region of the frame and otherwise returns a single move instruction.
func CheckFacePosition(face entity.LandmarkSet) (entity.FacePosition, error) {
	if face == nil {
		return noFacePosition, nil
	}

	c, err := Centroid(face)
	if err != nil {
		return noFacePosition, err
	}

	if c.X > 0.3 && c.X < 0.7 && c.Y > 0.2 && c.Y < 0.8 {
		return entity.FacePosition{IsCentered: true, Message: MessageCentered}, nil
	}

	for _, rule := range framingRules {
		if rule.match(c) {
			return entity.FacePosition{IsCentered: false, Message: rule.message}, nil
		}
	}
	return noFacePosition, nil
}
