package analysisHandler

import (
	"PresenceCoach/internal/api/analysis"
	contextPkg "PresenceCoach/pkg/context"
	"PresenceCoach/pkg/handlerUtil"
	"PresenceCoach/pkg/log"
	"PresenceCoach/pkg/response"
	"PresenceCoach/pkg/utils"
	"errors"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"golang.org/x/net/context"
	"strings"
	"time"
)

// frameFields are the multipart field names a frame may be uploaded under.
var frameFields = []string{"frame", "image"}

func (h *AnalysisHandler) AnalyzeFrame(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), h.timeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing frame analysis request")

	frame, err := h.readFrame(ctx, requestID)
	if err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
		}
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "read_frame")
	}

	result, err := h.analysisService.AnalyzeFrame(c, frame)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "analyze_frame")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		h.log.WithFields(log.Fields{
			"request_id":     requestID,
			"path":           ctx.Path(),
			"posture":        result.Posture,
			"eye_contact":    result.EyeContact.Score,
			"emotion":        result.Emotion.Emotion,
			"hand_movement":  result.Hand.Movement,
			"multiple_faces": result.MultipleFaces,
		}).Info("Frame analysis successful")
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, analysis.NewAnalyzeResponse(result))
	}
}

// readFrame accepts a multipart upload, a raw image body or a JSON body
// carrying base64 image data.
func (h *AnalysisHandler) readFrame(ctx *fiber.Ctx, requestID string) ([]byte, error) {
	contentType := strings.ToLower(string(ctx.Request().Header.ContentType()))

	if strings.HasPrefix(contentType, fiber.MIMEMultipartForm) {
		for _, field := range frameFields {
			file, err := ctx.FormFile(field)
			if err != nil {
				continue
			}

			h.log.WithFields(log.Fields{
				"request_id": requestID,
				"field":      field,
				"file_name":  file.Filename,
				"file_size":  file.Size,
			}).Debug("Processing file upload")

			if err := h.utils.ValidateImageFile(file); err != nil {
				return nil, frameError(err)
			}

			fileContent, err := file.Open()
			if err != nil {
				return nil, err
			}
			defer fileContent.Close()

			frame, err := h.utils.ReadFile(fileContent)
			if err != nil {
				return nil, frameError(err)
			}
			return frame, nil
		}
		return nil, analysis.ErrFrameMissing
	}

	body := ctx.Body()
	if len(body) == 0 {
		return nil, analysis.ErrFrameMissing
	}

	if strings.HasPrefix(contentType, "image/") || strings.HasPrefix(contentType, fiber.MIMEOctetStream) {
		if int64(len(body)) > h.utils.MaxFileSize() {
			return nil, analysis.ErrFrameTooLarge
		}
		frame := make([]byte, len(body))
		copy(frame, body)
		return frame, nil
	}

	var req analysis.AnalyzeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return nil, analysis.ErrInvalidFrame
	}

	if err := h.validator.Struct(req); err != nil {
		return nil, err
	}

	frame, err := h.utils.DecodeBase64Frame(req.ImageBase64)
	if err != nil {
		return nil, frameError(err)
	}
	return frame, nil
}

func frameError(err error) error {
	switch {
	case errors.Is(err, utils.ErrNoFile):
		return analysis.ErrFrameMissing
	case errors.Is(err, utils.ErrFileTooLarge):
		return analysis.ErrFrameTooLarge
	case errors.Is(err, utils.ErrNotAnImage):
		return analysis.ErrUnsupportedFrameType
	case errors.Is(err, utils.ErrUndecodableData):
		return analysis.ErrInvalidFrame
	}
	return err
}

func (h *AnalysisHandler) handleWebSocket(c *websocket.Conn) {
	connID, _ := c.Locals(contextPkg.FiberRequestIDKey).(string)
	if connID == "" {
		connID = "unknown"
	}

	h.log.WithField("request_id", connID).Info("Analysis WebSocket client connected")
	defer h.log.WithField("request_id", connID).Info("Analysis WebSocket client disconnected")

	c.SetPingHandler(func(data string) error {
		if err := c.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(5*time.Second)); err != nil {
			h.log.Errorf("Error sending pong: %v", err)
		}
		return nil
	})

	maxReadTimeout := 60 * time.Second

	for {
		if err := c.SetReadDeadline(time.Now().Add(maxReadTimeout)); err != nil {
			h.log.Errorf("Error setting read deadline: %v", err)
			break
		}

		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Errorf("Analysis WebSocket error: %v", err)
			}
			break
		}

		if messageType != websocket.BinaryMessage {
			h.log.Warnf("Received unexpected message type: %d", messageType)
			continue
		}

		var reply interface{}
		if int64(len(message)) > h.utils.MaxFileSize() {
			reply = analysis.ErrorMessage{Error: errorText(analysis.ErrFrameTooLarge)}
		} else {
			reply = h.analyzeStreamFrame(connID, message)
		}

		if err := c.SetWriteDeadline(time.Now().Add(10 * time.Second)); err != nil {
			h.log.Errorf("Error setting write deadline: %v", err)
			break
		}

		if err := c.WriteJSON(reply); err != nil {
			h.log.Errorf("Error writing JSON response: %v", err)
			break
		}

		if err := c.SetWriteDeadline(time.Time{}); err != nil {
			h.log.Errorf("Error resetting write deadline: %v", err)
			break
		}
	}
}

func (h *AnalysisHandler) analyzeStreamFrame(connID string, frame []byte) interface{} {
	ctx, cancel := context.WithTimeout(contextPkg.WithRequestID(context.Background(), connID), h.timeout)
	defer cancel()

	result, err := h.analysisService.AnalyzeFrame(ctx, frame)
	if err != nil {
		h.log.WithFields(log.Fields{
			"request_id": connID,
			"error":      err.Error(),
		}).Warn("Error processing streamed frame")
		return analysis.ErrorMessage{Error: errorText(err)}
	}
	return analysis.NewAnalyzeResponse(result)
}

func errorText(err error) string {
	var respErr *response.Error
	if errors.As(err, &respErr) {
		return respErr.Err.Error()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "request timeout"
	}
	return "internal server error"
}
