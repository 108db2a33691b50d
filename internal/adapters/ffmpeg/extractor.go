// Package ffmpeg provides the AudioExtractor adapter backed by an external
// ffmpeg binary.
package ffmpeg

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/opencaption/captiond/internal/adapters/cmdrunner"
)

// Extractor converts video containers into mp3 audio artifacts via ffmpeg.
type Extractor struct {
	binaryPath string
	runner     cmdrunner.Runner
	logger     *slog.Logger
}

// ExtractorOptions groups dependencies for NewExtractor.
type ExtractorOptions struct {
	// BinaryPath locates the ffmpeg binary. Required: the path comes from
	// configuration, never compiled in.
	BinaryPath string
	// Runner executes the command. Optional; defaults to os/exec.
	Runner cmdrunner.Runner
	// Logger is the structured logger. Optional.
	Logger *slog.Logger
}

// NewExtractor creates an ffmpeg-backed extractor.
func NewExtractor(opts ExtractorOptions) *Extractor {
	runner := opts.Runner
	if runner == nil {
		runner = &cmdrunner.ExecRunner{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		binaryPath: opts.BinaryPath,
		runner:     runner,
		logger:     logger,
	}
}

// Extract strips the video stream and encodes the audio track to destPath.
// The -y flag makes ffmpeg deterministically overwrite an existing artifact.
func (e *Extractor) Extract(ctx context.Context, sourcePath, destPath string) error {
	if strings.TrimSpace(sourcePath) == "" {
		return fmt.Errorf("source path is required")
	}
	if strings.TrimSpace(destPath) == "" {
		return fmt.Errorf("dest path is required")
	}

	args := []string{
		"-i", sourcePath,
		"-vn",
		"-acodec", "libmp3lame",
		"-y",
		destPath,
	}

	result, err := e.runner.Run(ctx, e.binaryPath, args...)
	if err != nil {
		e.logger.ErrorContext(ctx, "ffmpeg extraction failed",
			"source", sourcePath,
			"exit_code", result.ExitCode,
			"stderr", tail(result.Stderr, maxStderrLog))
		return fmt.Errorf("ffmpeg (exit %d): %w", result.ExitCode, err)
	}
	return nil
}

// maxStderrLog bounds how much ffmpeg stderr ends up in one log record.
const maxStderrLog = 2048

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
