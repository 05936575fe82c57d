package analysis

import "PresenceCoach/internal/entity"

type AnalyzeRequest struct {
	ImageBase64 string `json:"image_base64" validate:"required"`
}

type Scores struct {
	Posture    int `json:"posture"`
	EyeContact int `json:"eye_contact"`
	Emotion    int `json:"emotion"`
	Hand       int `json:"hand"`
}

type AnalyzeResponse struct {
	Scores           Scores                  `json:"scores"`
	Emotion          entity.Emotion          `json:"emotion"`
	HandMovement     entity.HandMovement     `json:"hand_movement"`
	FaceTouching     bool                    `json:"face_touching"`
	LookingDirection entity.LookingDirection `json:"looking_direction"`
	FacePosition     entity.FacePosition     `json:"face_position"`
	Lighting         entity.LightingResult   `json:"lighting"`
	MultipleFaces    bool                    `json:"multiple_faces"`
}

func NewAnalyzeResponse(e *entity.FrameEvaluation) AnalyzeResponse {
	return AnalyzeResponse{
		Scores: Scores{
			Posture:    e.Posture,
			EyeContact: e.EyeContact.Score,
			Emotion:    e.Emotion.Score,
			Hand:       e.Hand.Score,
		},
		Emotion:          e.Emotion.Emotion,
		HandMovement:     e.Hand.Movement,
		FaceTouching:     e.Hand.FaceTouch,
		LookingDirection: e.EyeContact.LookingDirection,
		FacePosition:     e.FacePosition,
		Lighting:         e.Lighting,
		MultipleFaces:    e.MultipleFaces,
	}
}

type ErrorMessage struct {
	Error string `json:"error"`
}
