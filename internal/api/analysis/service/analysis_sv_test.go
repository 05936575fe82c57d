package analysisService

import (
	"PresenceCoach/internal/api/analysis"
	"PresenceCoach/internal/entity"
	"PresenceCoach/internal/scoring"
	"PresenceCoach/pkg/utils"
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDetector struct {
	snapshot  entity.DetectionSnapshot
	err       error
	lastFrame []byte
}

func (f *fakeDetector) Detect(_ context.Context, frame []byte) (*entity.DetectionSnapshot, error) {
	f.lastFrame = frame
	if f.err != nil {
		return nil, f.err
	}
	s := f.snapshot
	return &s, nil
}

func (f *fakeDetector) Close() error { return nil }

func checkerJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(60)
			if (x/8+y/8)%2 == 0 {
				v = 160
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}))
	return buf.Bytes()
}

func face(x, y float64) entity.LandmarkSet {
	set := make(entity.LandmarkSet, scoring.FaceMeshLandmarkCount)
	for i := range set {
		set[i] = entity.Point{X: x, Y: y}
	}
	return set
}

func newService(t *testing.T, d *fakeDetector) IAnalysisService {
	logger, _ := test.NewNullLogger()
	return NewAnalysisService(logger, d, scoring.NewEvaluator(logger), utils.New())
}

func TestAnalyzeFrame(t *testing.T) {
	d := &fakeDetector{snapshot: entity.DetectionSnapshot{Faces: []entity.LandmarkSet{face(0.5, 0.5)}}}

	got, err := newService(t, d).AnalyzeFrame(context.Background(), checkerJPEG(t, 64, 48))
	require.NoError(t, err)

	assert.Equal(t, entity.LightingGood, got.Lighting.Status)
	assert.True(t, got.FacePosition.IsCentered)
	assert.Equal(t, entity.LookingDirect, got.EyeContact.LookingDirection)
	assert.NotEmpty(t, d.lastFrame)
}

func TestAnalyzeFrame_DownscalesForDetector(t *testing.T) {
	t.Setenv("MAX_FRAME_DIMENSION", "32")
	d := &fakeDetector{}

	_, err := newService(t, d).AnalyzeFrame(context.Background(), checkerJPEG(t, 128, 64))
	require.NoError(t, err)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(d.lastFrame))
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Width)
	assert.Equal(t, 16, cfg.Height)
}

func TestAnalyzeFrame_InvalidFrame(t *testing.T) {
	d := &fakeDetector{}

	_, err := newService(t, d).AnalyzeFrame(context.Background(), []byte("definitely not a jpeg"))
	assert.ErrorIs(t, err, analysis.ErrInvalidFrame)
	assert.Nil(t, d.lastFrame)
}

func TestAnalyzeFrame_RejectsOversizedDimensions(t *testing.T) {
	t.Setenv("MAX_FRAME_PIXELS", "10000")
	d := &fakeDetector{}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 2000, 2000))))

	_, err := newService(t, d).AnalyzeFrame(context.Background(), buf.Bytes())
	assert.ErrorIs(t, err, analysis.ErrInvalidFrame)
	assert.Nil(t, d.lastFrame)
}

func TestAnalyzeFrame_DetectorFailure(t *testing.T) {
	d := &fakeDetector{err: errors.New("connection reset")}

	_, err := newService(t, d).AnalyzeFrame(context.Background(), checkerJPEG(t, 16, 16))
	assert.ErrorIs(t, err, analysis.ErrDetectorUnavailable)
}

func TestAnalyzeFrame_DetectorTimeout(t *testing.T) {
	d := &fakeDetector{err: context.DeadlineExceeded}

	_, err := newService(t, d).AnalyzeFrame(context.Background(), checkerJPEG(t, 16, 16))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
