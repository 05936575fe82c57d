package analysisService

import (
	"PresenceCoach/internal/entity"
	"PresenceCoach/internal/scoring"
	"PresenceCoach/pkg/landmark"
	"PresenceCoach/pkg/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IAnalysisService interface {
	AnalyzeFrame(ctx context.Context, frame []byte) (*entity.FrameEvaluation, error)
}

type analysisService struct {
	log       *logrus.Logger
	detector  landmark.Detector
	evaluator *scoring.Evaluator
	utils     utils.IUtils
}

func NewAnalysisService(
	log *logrus.Logger,
	detector landmark.Detector,
	evaluator *scoring.Evaluator,
	utils utils.IUtils,
) IAnalysisService {
	return &analysisService{
		log:       log,
		detector:  detector,
		evaluator: evaluator,
		utils:     utils,
	}
}
