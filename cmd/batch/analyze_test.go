package main

import (
	"PresenceCoach/internal/api/analysis"
	"PresenceCoach/internal/entity"
	"bufio"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedService struct {
	fail map[string]bool
}

func (s *scriptedService) AnalyzeFrame(_ context.Context, frame []byte) (*entity.FrameEvaluation, error) {
	if s.fail[string(frame)] {
		return nil, analysis.ErrInvalidFrame
	}
	return &entity.FrameEvaluation{
		Posture:    50,
		EyeContact: entity.EyeContactResult{Score: 100, LookingDirection: entity.LookingDirect},
		Emotion:    entity.EmotionResult{Score: 70, Emotion: entity.EmotionNeutral},
		Hand:       entity.HandResult{Score: 70, Movement: entity.HandNeutral},
		Lighting:   entity.LightingResult{Status: entity.LightingGood},
	}, nil
}

func writeFrames(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.jpg"), 0o755))
	return dir
}

func readLines(t *testing.T, out *bytes.Buffer) []frameResult {
	t.Helper()
	var lines []frameResult
	scanner := bufio.NewScanner(out)
	for scanner.Scan() {
		var line frameResult
		require.NoError(t, jsoniter.Unmarshal(scanner.Bytes(), &line))
		lines = append(lines, line)
	}
	require.NoError(t, scanner.Err())
	return lines
}

func TestListFrames(t *testing.T) {
	dir := writeFrames(t, "b.png", "a.JPG", "notes.txt", "c.webp", "d.jpeg")

	files, err := listFrames(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.JPG", "b.png", "c.webp", "d.jpeg"}, files)
}

func TestRunAnalyze(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	dir := writeFrames(t, "002.jpg", "001.jpg", "003.png")
	svc := &scriptedService{fail: map[string]bool{"002.jpg": true}}

	var out bytes.Buffer
	failed, err := runAnalyze(context.Background(), analyzeOptions{Dir: dir}, svc, &out, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 1, failed)

	lines := readLines(t, &out)
	require.Len(t, lines, 3)

	assert.Equal(t, "001.jpg", lines[0].File)
	require.NotNil(t, lines[0].Result)
	assert.Equal(t, 50, lines[0].Result.Scores.Posture)

	assert.Equal(t, "002.jpg", lines[1].File)
	assert.Nil(t, lines[1].Result)
	assert.Equal(t, "invalid frame data", lines[1].Error)

	assert.Equal(t, "003.png", lines[2].File)
	assert.Empty(t, lines[2].Error)
}

func TestRunAnalyze_StopsWhenCancelled(t *testing.T) {
	dir := writeFrames(t, "001.jpg", "002.jpg")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	failed, err := runAnalyze(ctx, analyzeOptions{Dir: dir}, &scriptedService{}, &out, io.Discard)
	require.NoError(t, err)
	assert.Zero(t, failed)
	assert.Zero(t, out.Len())
}

func TestRunAnalyze_MissingDir(t *testing.T) {
	_, err := runAnalyze(context.Background(), analyzeOptions{Dir: filepath.Join(t.TempDir(), "missing")}, &scriptedService{}, io.Discard, io.Discard)
	assert.Error(t, err)
}
