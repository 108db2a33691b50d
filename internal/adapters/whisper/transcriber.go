// Package whisper provides the Transcriber adapter backed by a whisper CLI
// that emits timed segments as JSON on stdout.
package whisper

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/opencaption/captiond/config"
	"github.com/opencaption/captiond/internal/adapters/cmdrunner"
	"github.com/opencaption/captiond/internal/domain/model"
)

// rawSegment mirrors the whisper JSON segment shape. avg_logprob doubles
// as the segment confidence proxy.
type rawSegment struct {
	ID         int       `json:"id"`
	Start      float64   `json:"start"`
	End        float64   `json:"end"`
	Text       string    `json:"text"`
	Confidence float64   `json:"confidence"`
	Words      []rawWord `json:"words"`
}

type rawWord struct {
	Word        string  `json:"word"`
	Start       float64 `json:"start"`
	End         float64 `json:"end"`
	Probability float64 `json:"probability"`
}

// Transcriber runs the whisper CLI with fixed decoding parameters.
type Transcriber struct {
	cfg    config.WhisperConfig
	runner cmdrunner.Runner
	logger *slog.Logger
}

// TranscriberOptions groups dependencies for NewTranscriber.
type TranscriberOptions struct {
	Config config.WhisperConfig
	Runner cmdrunner.Runner // Optional; defaults to os/exec.
	Logger *slog.Logger     // Optional.
}

// NewTranscriber creates a whisper-backed transcriber.
func NewTranscriber(opts TranscriberOptions) *Transcriber {
	runner := opts.Runner
	if runner == nil {
		runner = &cmdrunner.ExecRunner{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Transcriber{cfg: opts.Config, runner: runner, logger: logger}
}

// Transcribe invokes whisper on the audio artifact and maps its JSON
// output into caption segments, preserving the decoder's temporal order.
func (t *Transcriber) Transcribe(ctx context.Context, audioPath string) ([]model.CaptionSegment, error) {
	if strings.TrimSpace(audioPath) == "" {
		return nil, fmt.Errorf("audio path is required")
	}

	args := []string{
		audioPath,
		"--model", t.cfg.Model,
		"--language", t.cfg.Language,
		"--beam-size", strconv.Itoa(t.cfg.BeamSize),
		"--no-speech-threshold", strconv.FormatFloat(t.cfg.NoSpeechThreshold, 'f', -1, 64),
		"--word-timestamps",
		"--output-json",
	}

	result, err := t.runner.Run(ctx, t.cfg.BinaryPath, args...)
	if err != nil {
		t.logger.ErrorContext(ctx, "whisper transcription failed",
			"audio", audioPath,
			"exit_code", result.ExitCode,
			"stderr", strings.TrimSpace(result.Stderr))
		return nil, fmt.Errorf("whisper (exit %d): %w", result.ExitCode, err)
	}

	segments, err := parseSegments(result.Stdout)
	if err != nil {
		return nil, fmt.Errorf("parse whisper output: %w", err)
	}
	return segments, nil
}

// parseSegments decodes the whisper JSON array into domain segments.
func parseSegments(output string) ([]model.CaptionSegment, error) {
	output = strings.TrimSpace(output)
	if output == "" {
		return []model.CaptionSegment{}, nil
	}

	var raw []rawSegment
	if err := json.Unmarshal([]byte(output), &raw); err != nil {
		return nil, err
	}

	segments := make([]model.CaptionSegment, 0, len(raw))
	for _, seg := range raw {
		words := make([]model.WordTiming, 0, len(seg.Words))
		for _, w := range seg.Words {
			words = append(words, model.WordTiming{
				Word:        w.Word,
				Start:       w.Start,
				End:         w.End,
				Probability: w.Probability,
			})
		}
		segments = append(segments, model.CaptionSegment{
			Start:      seg.Start,
			End:        seg.End,
			Text:       seg.Text,
			Confidence: seg.Confidence,
			Words:      words,
		})
	}
	return segments, nil
}
