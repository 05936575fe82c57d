package scoring

import (
	"PresenceCoach/internal/entity"
	"math"
)

var neutralEmotion = entity.EmotionResult{Score: 50, Emotion: entity.EmotionNeutral}

// expression holds the mouth and brow measurements the classifier works on.
type expression struct {
	mouthHeight   float64
	mouthCurve    float64 // mean corner y minus upper lip y
	teethVisible  float64
	eyebrowHeight float64
}

type emotionRule struct {
	emotion entity.Emotion
	score   int
	match   func(e expression) bool
}

// Evaluated top to bottom, first match wins.
var emotionRules = []emotionRule{
	{entity.EmotionBigSmile, 95, func(e expression) bool { return e.mouthCurve > 0.01 && e.teethVisible > 0.03 }},
	{entity.EmotionHappy, 90, func(e expression) bool { return e.mouthCurve > 0.01 && e.mouthHeight > 0.03 }},
	{entity.EmotionPleasant, 85, func(e expression) bool { return e.mouthCurve > 0.005 }},
	{entity.EmotionEngaging, 80, func(e expression) bool { return e.mouthHeight > 0.07 }},
	{entity.EmotionConcerned, 40, func(e expression) bool { return e.eyebrowHeight < 0.25 && e.mouthCurve < -0.01 }},
	{entity.EmotionFocused, 75, func(e expression) bool { return e.eyebrowHeight < 0.25 }},
	{entity.EmotionNegative, 30, func(e expression) bool { return e.mouthCurve < -0.01 }},
	{entity.EmotionNeutral, 60, func(expression) bool { return true }},
}

// AnalyzeEmotion classifies the facial expression from mouth and eyebrow geometry.
func AnalyzeEmotion(face entity.LandmarkSet) (entity.EmotionResult, error) {
	if face == nil {
		return neutralEmotion, nil
	}

	e, err := measureExpression(face)
	if err != nil {
		return neutralEmotion, err
	}
	return classifyExpression(e), nil
}

func classifyExpression(e expression) entity.EmotionResult {
	for _, rule := range emotionRules {
		if rule.match(e) {
			return entity.EmotionResult{Score: rule.score, Emotion: rule.emotion}
		}
	}
	return neutralEmotion
}

func measureExpression(face entity.LandmarkSet) (expression, error) {
	p, err := pick(face,
		FaceMouthLeftCorner, FaceMouthRightCorner,
		FaceUpperLip, FaceLowerLip,
		FaceUpperTeeth, FaceLowerTeeth,
		FaceLeftEyebrow, FaceRightEyebrow,
	)
	if err != nil {
		return expression{}, err
	}

	return expression{
		mouthHeight:   math.Abs(p[2].Y - p[3].Y),
		mouthCurve:    (p[0].Y+p[1].Y)/2 - p[2].Y,
		teethVisible:  math.Abs(p[4].Y - p[5].Y),
		eyebrowHeight: (p[6].Y + p[7].Y) / 2,
	}, nil
}
