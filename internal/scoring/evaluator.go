// Package scoring turns landmark coordinates and pixel statistics into
// presentation feedback for a single frame. Nothing here keeps state between
// calls, so one Evaluator can serve any number of goroutines.
package scoring

import (
	"PresenceCoach/internal/entity"
	"image"

	"github.com/sirupsen/logrus"
)

type Evaluator struct {
	log logrus.FieldLogger
}

func NewEvaluator(log logrus.FieldLogger) *Evaluator {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return &Evaluator{log: log}
}

// EvaluateFrame checks lighting on the decoded frame and then scores the
// detector output for it. A nil or empty frame is rejected before anything
// else runs.
func (e *Evaluator) EvaluateFrame(frame image.Image, snapshot entity.DetectionSnapshot) (entity.FrameEvaluation, error) {
	if frame == nil || frame.Bounds().Empty() {
		return entity.FrameEvaluation{}, ErrInvalidFrame
	}
	return e.Evaluate(snapshot, CheckLighting(frame)), nil
}

// Evaluate assembles the frame result from an already computed lighting status.
//
// Zero faces leaves every face-bound modality at its default but still scores
// posture. Two or more faces override everything that assumes a single subject,
// posture included. Exactly one face runs the full set of analyzers.
func (e *Evaluator) Evaluate(snapshot entity.DetectionSnapshot, lighting entity.LightingResult) entity.FrameEvaluation {
	result := entity.FrameEvaluation{
		EyeContact:   noEyeContact,
		Emotion:      neutralEmotion,
		Hand:         neutralHands,
		FacePosition: noFacePosition,
		Lighting:     lighting,
	}

	switch len(snapshot.Faces) {
	case 0:
		result.Posture = e.posture(snapshot)
	case 1:
		face := snapshot.Faces[0]
		if face == nil {
			face = entity.LandmarkSet{}
		}

		position, err := CheckFacePosition(face)
		e.contain("face_position", err)
		result.FacePosition = position

		eyes, err := AnalyzeEyeContact(face)
		e.contain("eye_contact", err)
		result.EyeContact = eyes

		emotion, err := AnalyzeEmotion(face)
		e.contain("emotion", err)
		result.Emotion = emotion

		if len(snapshot.Hands) > 0 {
			hands, err := AnalyzeHands(snapshot.Hands, face)
			e.contain("hand", err)
			result.Hand = hands
		}

		result.Posture = e.posture(snapshot)
	default:
		result.MultipleFaces = true
		result.FacePosition = entity.FacePosition{IsCentered: false, Message: MessageMultipleFaces}
	}

	return result
}

func (e *Evaluator) posture(snapshot entity.DetectionSnapshot) int {
	if !snapshot.HasPose() {
		return 0
	}
	score, err := ScorePosture(snapshot.Pose)
	e.contain("posture", err)
	return score
}

// contain logs an analyzer fault; the analyzer has already substituted its default.
func (e *Evaluator) contain(modality string, err error) {
	if err == nil {
		return
	}
	e.log.WithFields(logrus.Fields{
		"modality": modality,
		"error":    err.Error(),
	}).Warn("Malformed landmarks, using default result")
}
