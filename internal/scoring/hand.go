package scoring

import (
	"PresenceCoach/internal/entity"
	"fmt"
	"math"
)

var neutralHands = entity.HandResult{Score: 70, Movement: entity.HandNeutral, FaceTouch: false}

var faceTouching = entity.HandResult{Score: 30, Movement: entity.HandFaceTouching, FaceTouch: true}

// handPose is what the position rules look at once face touching is ruled out.
type handPose struct {
	wrist  entity.Point
	spread float64
}

type handRule struct {
	movement entity.HandMovement
	score    int
	match    func(h handPose) bool
}

// First match wins.
var handRules = []handRule{
	{entity.HandTooHigh, 40, func(h handPose) bool { return h.wrist.Y < 0.3 }},
	{entity.HandTooLow, 50, func(h handPose) bool { return h.wrist.Y > 0.8 }},
	{entity.HandTooWide, 60, func(h handPose) bool { return math.Abs(h.wrist.X-0.5) > 0.4 }},
	{entity.HandExpressive, 90, func(h handPose) bool { return h.spread > 0.2 }},
	{entity.HandNatural, 85, func(handPose) bool { return true }},
}

// AnalyzeHands scores hand placement relative to the face. Every hand is
// classified on its own and the lowest scoring hand is reported; on a tie the
// earlier hand is kept. FaceTouch is set when any hand touches the face.
// Without a face or without hands the neutral result is returned.
func AnalyzeHands(hands []entity.LandmarkSet, face entity.LandmarkSet) (entity.HandResult, error) {
	if face == nil || len(hands) == 0 {
		return neutralHands, nil
	}

	box, err := BoundingBox(face, DefaultBoxMargin)
	if err != nil {
		return neutralHands, err
	}

	var (
		worst   entity.HandResult
		touched bool
	)
	for i, hand := range hands {
		result, err := classifyHand(hand, box)
		if err != nil {
			return neutralHands, fmt.Errorf("hand %d: %w", i, err)
		}
		touched = touched || result.FaceTouch
		if i == 0 || result.Score < worst.Score {
			worst = result
		}
	}
	worst.FaceTouch = touched
	return worst, nil
}

func classifyHand(hand entity.LandmarkSet, face Box) (entity.HandResult, error) {
	tips, err := pick(hand, fingertips...)
	if err != nil {
		return entity.HandResult{}, err
	}
	for _, tip := range tips {
		if face.Contains(tip) {
			return faceTouching, nil
		}
	}

	p, err := pick(hand, HandWrist, HandIndexTip, HandPinkyTip)
	if err != nil {
		return entity.HandResult{}, err
	}
	pose := handPose{wrist: p[0], spread: math.Abs(p[1].X - p[2].X)}

	for _, rule := range handRules {
		if rule.match(pose) {
			return entity.HandResult{Score: rule.score, Movement: rule.movement}, nil
		}
	}
	return neutralHands, nil
}
