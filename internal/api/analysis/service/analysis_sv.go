package analysisService

import (
	"PresenceCoach/internal/api/analysis"
	"PresenceCoach/internal/entity"
	"PresenceCoach/pkg/log"
	"errors"
	"golang.org/x/net/context"
)

// AnalyzeFrame decodes the uploaded frame, asks the detector for landmarks and
// scores them. Lighting is measured on the decoded pixels, not on the resized
// copy the detector receives.
func (s *analysisService) AnalyzeFrame(ctx context.Context, frame []byte) (*entity.FrameEvaluation, error) {
	img, err := s.utils.DecodeFrame(frame)
	if err != nil {
		log.WithRequestID(ctx, s.log).WithFields(log.Fields{
			"error":      err.Error(),
			"frame_size": len(frame),
		}).Warn("Rejected undecodable frame")
		return nil, analysis.ErrInvalidFrame
	}

	detectorFrame, err := s.utils.PrepareDetectorFrame(img)
	if err != nil {
		log.WithRequestID(ctx, s.log).WithField("error", err.Error()).Error("Failed to encode frame for detector")
		return nil, analysis.ErrInternalServerError
	}

	snapshot, err := s.detector.Detect(ctx, detectorFrame)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, err
		}
		log.WithRequestID(ctx, s.log).WithField("error", err.Error()).Error("Landmark detection failed")
		return nil, analysis.ErrDetectorUnavailable
	}

	evaluation, err := s.evaluator.EvaluateFrame(img, *snapshot)
	if err != nil {
		return nil, analysis.ErrInvalidFrame
	}

	log.WithRequestID(ctx, s.log).WithFields(log.Fields{
		"faces":          len(snapshot.Faces),
		"hands":          len(snapshot.Hands),
		"multiple_faces": evaluation.MultipleFaces,
		"lighting":       evaluation.Lighting.Status,
	}).Debug("Frame evaluated")

	return &evaluation, nil
}
