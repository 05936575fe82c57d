package entity

type LightingStatus string

const (
	LightingTooDark     LightingStatus = "too_dark"
	LightingTooBright   LightingStatus = "too_bright"
	LightingLowContrast LightingStatus = "low_contrast"
	LightingGood        LightingStatus = "good"
)

type LookingDirection string

const (
	LookingLeft        LookingDirection = "looking_left"
	LookingRight       LookingDirection = "looking_right"
	LookingUp          LookingDirection = "looking_up"
	LookingDown        LookingDirection = "looking_down"
	LookingDirect      LookingDirection = "direct"
	LookingNotDetected LookingDirection = "not_detected"
)

type Emotion string

const (
	EmotionBigSmile  Emotion = "big smile"
	EmotionHappy     Emotion = "happy"
	EmotionPleasant  Emotion = "pleasant"
	EmotionEngaging  Emotion = "engaging"
	EmotionConcerned Emotion = "concerned"
	EmotionFocused   Emotion = "focused"
	EmotionNegative  Emotion = "negative"
	EmotionNeutral   Emotion = "neutral"
)

type HandMovement string

const (
	HandFaceTouching HandMovement = "face touching"
	HandTooHigh      HandMovement = "too high"
	HandTooLow       HandMovement = "too low"
	HandTooWide      HandMovement = "too wide"
	HandExpressive   HandMovement = "expressive"
	HandNatural      HandMovement = "natural"
	HandNeutral      HandMovement = "neutral"
)

type LightingResult struct {
	Status  LightingStatus `json:"status"`
	Message string         `json:"message"`
}

type FacePosition struct {
	IsCentered bool   `json:"is_centered"`
	Message    string `json:"message"`
}

type EyeContactResult struct {
	Score            int              `json:"score"`
	LookingDirection LookingDirection `json:"looking_direction"`
}

type EmotionResult struct {
	Score   int     `json:"score"`
	Emotion Emotion `json:"emotion"`
}

type HandResult struct {
	Score     int          `json:"score"`
	Movement  HandMovement `json:"movement"`
	FaceTouch bool         `json:"face_touch"`
}

// FrameEvaluation is the aggregate feedback for one frame. It is rebuilt from
// scratch on every evaluation.
type FrameEvaluation struct {
	Posture       int              `json:"posture"`
	EyeContact    EyeContactResult `json:"eye_contact"`
	Emotion       EmotionResult    `json:"emotion"`
	Hand          HandResult       `json:"hand"`
	FacePosition  FacePosition     `json:"face_position"`
	Lighting      LightingResult   `json:"lighting"`
	MultipleFaces bool             `json:"multiple_faces"`
}
