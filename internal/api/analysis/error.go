package analysis

import (
	"PresenceCoach/pkg/response"
	"net/http"
)

var (
	ErrFrameMissing         = response.NewError(http.StatusBadRequest, "no frame uploaded")
	ErrInvalidFrame         = response.NewError(http.StatusBadRequest, "invalid frame data")
	ErrFrameTooLarge        = response.NewError(http.StatusBadRequest, "frame too large")
	ErrUnsupportedFrameType = response.NewError(http.StatusBadRequest, "unsupported frame type")
	ErrDetectorUnavailable  = response.NewError(http.StatusServiceUnavailable, "landmark detector unavailable")
	ErrInternalServerError  = response.NewError(http.StatusInternalServerError, "internal server error")
)
