package scoring

// Face mesh indices, MediaPipe 468-point topology.
const (
	FaceUpperTeeth        = 0
	FaceUpperLip          = 13
	FaceLowerLip          = 14
	FaceLowerTeeth        = 17
	FaceLeftEyeCenter     = 33
	FaceRightEyebrow      = 52
	FaceMouthLeftCorner   = 61
	FaceLeftEyeOuter      = 130
	FaceLeftEyeLowerLid   = 145
	FaceLeftEyeUpperLid   = 159
	FaceLeftEyeInner      = 243
	FaceRightEyeCenter    = 263
	FaceLeftEyebrow       = 282
	FaceMouthRightCorner  = 291
	FaceRightEyeOuter     = 359
	FaceRightEyeLowerLid  = 374
	FaceRightEyeUpperLid  = 386
	FaceRightEyeInner     = 463
	FaceMeshLandmarkCount = 468
)

// Pose indices, MediaPipe 33-point body topology.
const (
	PoseLeftShoulder  = 11
	PoseRightShoulder = 12
	PoseLandmarkCount = 33
)

// Hand indices, MediaPipe 21-point hand topology.
const (
	HandWrist         = 0
	HandThumbTip      = 4
	HandIndexTip      = 8
	HandMiddleTip     = 12
	HandRingTip       = 16
	HandPinkyTip      = 20
	HandLandmarkCount = 21
)

// fingertips are checked against the face box for face touching.
var fingertips = []int{HandIndexTip, HandMiddleTip, HandRingTip, HandPinkyTip, HandThumbTip}
