package config

import (
	"PresenceCoach/internal/entity"
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"
)

type stubDetector struct {
	closed bool
}

func (d *stubDetector) Detect(context.Context, []byte) (*entity.DetectionSnapshot, error) {
	return &entity.DetectionSnapshot{}, nil
}

func (d *stubDetector) Close() error {
	d.closed = true
	return nil
}

type stubCache struct {
	closed bool
}

func (c *stubCache) Get(context.Context, string) ([]byte, error) { return nil, io.EOF }

func (c *stubCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (c *stubCache) Close() error {
	c.closed = true
	return nil
}

func newTestServer(t *testing.T, options ...ServerOption) *Server {
	t.Helper()
	t.Setenv("APP_ENV", "test")
	logger, _ := test.NewNullLogger()

	base := []ServerOption{
		WithFiber(NewFiber(logger)),
		WithLogger(logger),
		WithValidator(NewValidator()),
		WithMiddleware(),
		WithUtils(),
	}
	server, err := NewServer(append(base, options...)...)
	require.NoError(t, err)

	server.RegisterHandler()
	server.Mount()
	return server
}

func pngFrame(t *testing.T) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 4)
	}
	img.SetGray(0, 0, color.Gray{Y: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestNewServer_RequiresDetector(t *testing.T) {
	logger, _ := test.NewNullLogger()
	_, err := NewServer(WithFiber(NewFiber(logger)), WithLogger(logger))
	assert.Error(t, err)
}

func TestWithSnapshotCache_RequiresDetector(t *testing.T) {
	logger, _ := test.NewNullLogger()
	_, err := NewServer(WithFiber(NewFiber(logger)), WithLogger(logger), WithSnapshotCache(&stubCache{}, time.Second))
	assert.Error(t, err)
}

func TestServer_HealthCheck(t *testing.T) {
	server := newTestServer(t, WithLandmarkDetector(&stubDetector{}))

	resp, err := server.engine.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestServer_AnalyzeEndToEnd(t *testing.T) {
	server := newTestServer(t, WithLandmarkDetector(&stubDetector{}))

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("frame", "frame.png")
	require.NoError(t, err)
	_, err = part.Write(pngFrame(t))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := server.engine.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, jsoniter.Unmarshal(raw, &got))
	assert.Equal(t, "not_detected", got["looking_direction"])
	assert.Equal(t, false, got["multiple_faces"])
}

func TestServer_AnalyzeRejectsOversizedDimensions(t *testing.T) {
	t.Setenv("MAX_FRAME_PIXELS", "10000")
	server := newTestServer(t, WithLandmarkDetector(&stubDetector{}))

	var frame bytes.Buffer
	require.NoError(t, png.Encode(&frame, image.NewGray(image.Rect(0, 0, 4000, 4000))))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", &frame)
	req.Header.Set("Content-Type", "image/png")

	resp, err := server.engine.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "invalid frame data")
}

func TestServer_ShutdownClosesCollaborators(t *testing.T) {
	detector := &stubDetector{}
	cache := &stubCache{}
	server := newTestServer(t, WithLandmarkDetector(detector), WithSnapshotCache(cache, time.Second))

	require.NoError(t, server.Shutdown(time.Second))
	assert.True(t, detector.closed)
	assert.True(t, cache.closed)
}
