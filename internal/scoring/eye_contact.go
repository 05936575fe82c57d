package scoring

import (
	"PresenceCoach/internal/entity"
	"math"
)

const (
	gazeThreshold = 0.01
	gazePenalty   = 1000.0
	gazeBaseScore = 50.0
)

var noEyeContact = entity.EyeContactResult{Score: 0, LookingDirection: entity.LookingNotDetected}

// gazeOffset is the averaged eye-center displacement from the eye socket midpoint.
type gazeOffset struct {
	horizontal float64
	vertical   float64
}

// gazeRule returns the offset that triggered it, or false when it does not apply.
type gazeRule struct {
	direction entity.LookingDirection
	match     func(g gazeOffset) (float64, bool)
}

// Horizontal rules come first so they win when both axes are off.
var gazeRules = []gazeRule{
	{entity.LookingLeft, func(g gazeOffset) (float64, bool) {
		return g.horizontal, math.Abs(g.horizontal) > gazeThreshold && g.horizontal > 0
	}},
	{entity.LookingRight, func(g gazeOffset) (float64, bool) {
		return g.horizontal, math.Abs(g.horizontal) > gazeThreshold && g.horizontal < 0
	}},
	{entity.LookingDown, func(g gazeOffset) (float64, bool) {
		return g.vertical, math.Abs(g.vertical) > gazeThreshold && g.vertical > 0
	}},
	{entity.LookingUp, func(g gazeOffset) (float64, bool) {
		return g.vertical, math.Abs(g.vertical) > gazeThreshold && g.vertical < 0
	}},
}

// AnalyzeEyeContact estimates where the subject is looking from the eye landmarks.
// Malformed face data yields the not-detected result together with the fault.
func AnalyzeEyeContact(face entity.LandmarkSet) (entity.EyeContactResult, error) {
	if face == nil {
		return noEyeContact, nil
	}

	g, err := measureGaze(face)
	if err != nil {
		return noEyeContact, err
	}

	for _, rule := range gazeRules {
		if offset, ok := rule.match(g); ok {
			return entity.EyeContactResult{
				Score:            clampScore(gazeBaseScore - math.Abs(offset)*gazePenalty),
				LookingDirection: rule.direction,
			}, nil
		}
	}
	return entity.EyeContactResult{Score: 100, LookingDirection: entity.LookingDirect}, nil
}

func measureGaze(face entity.LandmarkSet) (gazeOffset, error) {
	p, err := pick(face,
		FaceLeftEyeCenter, FaceLeftEyeOuter, FaceLeftEyeInner, FaceLeftEyeUpperLid, FaceLeftEyeLowerLid,
		FaceRightEyeCenter, FaceRightEyeInner, FaceRightEyeOuter, FaceRightEyeUpperLid, FaceRightEyeLowerLid,
	)
	if err != nil {
		return gazeOffset{}, err
	}
	left, right := p[:5], p[5:]

	leftH := left[0].X - (left[1].X+left[2].X)/2
	rightH := right[0].X - (right[1].X+right[2].X)/2
	leftV := left[0].Y - (left[3].Y+left[4].Y)/2
	rightV := right[0].Y - (right[3].Y+right[4].Y)/2

	return gazeOffset{
		horizontal: (leftH + rightH) / 2,
		vertical:   (leftV + rightV) / 2,
	}, nil
}
