package main

import (
	"PresenceCoach/internal/api/analysis"
	analysisService "PresenceCoach/internal/api/analysis/service"
	"PresenceCoach/internal/scoring"
	"PresenceCoach/pkg/landmark"
	"PresenceCoach/pkg/log"
	"PresenceCoach/pkg/utils"
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

type analyzeOptions struct {
	Dir         string
	DetectorURL string
	OutPath     string
	Timeout     time.Duration
}

// frameResult is one JSON line of batch output.
type frameResult struct {
	File   string                    `json:"file"`
	Result *analysis.AnalyzeResponse `json:"result,omitempty"`
	Error  string                    `json:"error,omitempty"`
}

var frameExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

var analyzeOpts analyzeOptions

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Evaluate every frame in a directory and write JSON lines",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := log.NewLogger()
		u := utils.New()

		detector := landmark.NewWebSocketDetectorWithURL(analyzeOpts.DetectorURL, analyzeOpts.Timeout, logger)
		defer detector.Close()

		service := analysisService.NewAnalysisService(logger, detector, scoring.NewEvaluator(logger), u)

		out := io.Writer(os.Stdout)
		if analyzeOpts.OutPath != "" {
			f, err := os.Create(analyzeOpts.OutPath)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		failed, err := runAnalyze(cmd.Context(), analyzeOpts, service, out, os.Stderr)
		if err != nil {
			return err
		}
		if failed > 0 {
			log.Warn(log.Fields{"failed": failed, "dir": analyzeOpts.Dir}, "Some frames could not be evaluated")
		}
		return nil
	},
}

func init() {
	defaultURL := os.Getenv("LANDMARK_DETECTOR_URL")
	if defaultURL == "" {
		defaultURL = "ws://localhost:8000/api/v1/landmarks/ws"
	}

	analyzeCmd.Flags().StringVarP(&analyzeOpts.Dir, "dir", "d", "", "Directory of JPEG, PNG or WebP frames")
	analyzeCmd.Flags().StringVar(&analyzeOpts.DetectorURL, "detector", defaultURL, "Landmark detector websocket URL")
	analyzeCmd.Flags().StringVarP(&analyzeOpts.OutPath, "out", "o", "", "Write JSON lines here instead of stdout")
	analyzeCmd.Flags().DurationVar(&analyzeOpts.Timeout, "timeout", 10*time.Second, "Per-frame detector timeout")

	_ = analyzeCmd.MarkFlagRequired("dir")
	rootCmd.AddCommand(analyzeCmd)
}

// listFrames returns the frame files in dir in lexical order.
func listFrames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if frameExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// runAnalyze evaluates each frame in order and returns how many failed.
// Per-frame failures are written as error lines; only setup and output
// errors abort the run.
func runAnalyze(
	ctx context.Context,
	opts analyzeOptions,
	service analysisService.IAnalysisService,
	out io.Writer,
	progress io.Writer,
) (int, error) {
	files, err := listFrames(opts.Dir)
	if err != nil {
		return 0, fmt.Errorf("failed to list frames: %w", err)
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription("Evaluating frames"),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionShowCount(),
	)

	w := bufio.NewWriter(out)
	enc := jsoniter.NewEncoder(w)

	failed := 0
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			break
		}

		line := frameResult{File: name}
		if resp, err := analyzeFile(ctx, opts, service, filepath.Join(opts.Dir, name)); err != nil {
			log.Debug(log.Fields{"file": name, "error": err.Error()}, "Frame evaluation failed")
			line.Error = errorText(err)
			failed++
		} else {
			line.Result = resp
		}

		if err := enc.Encode(line); err != nil {
			return failed, fmt.Errorf("failed to write result: %w", err)
		}
		_ = bar.Add(1)
	}

	_ = bar.Finish()
	if err := w.Flush(); err != nil {
		return failed, fmt.Errorf("failed to flush results: %w", err)
	}
	return failed, nil
}

func analyzeFile(
	ctx context.Context,
	opts analyzeOptions,
	service analysisService.IAnalysisService,
	path string,
) (*analysis.AnalyzeResponse, error) {
	frame, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, err := service.AnalyzeFrame(c, frame)
	if err != nil {
		return nil, err
	}
	resp := analysis.NewAnalyzeResponse(result)
	return &resp, nil
}

func errorText(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "detector timeout"
	}
	return err.Error()
}
