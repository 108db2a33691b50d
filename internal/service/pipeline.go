// Package service provides the business logic of the captiond orchestration
// layer: job submission and the background pipeline executor.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/opencaption/captiond/internal/core"
	"github.com/opencaption/captiond/internal/domain/model"
	apperrors "github.com/opencaption/captiond/internal/errors"
	"golang.org/x/sync/semaphore"
)

// segmentSeparator joins segment texts before refinement, preserving the
// original segment order.
const segmentSeparator = " "

// Collaborators bundles the three stage collaborators the executor drives.
// All of them are injected so tests can substitute doubles.
type Collaborators struct {
	Extractor   core.AudioExtractor
	Transcriber core.Transcriber
	Refiner     core.Refiner
}

// PipelineConfig holds executor tuning.
type PipelineConfig struct {
	// MaxConcurrent caps simultaneously running pipelines. Zero or
	// negative means unbounded.
	MaxConcurrent int
}

// PipelineServiceOptions groups dependencies for NewPipelineService.
type PipelineServiceOptions struct {
	Registry      core.JobRegistry
	Collaborators Collaborators
	Config        PipelineConfig
	Logger        *slog.Logger // Optional
}

// PipelineService runs the fixed extract → transcribe → refine sequence for
// one job per Launch call, on its own goroutine, isolated from every other
// job. The registry is the only shared mutable state, and each executor
// only ever writes the record it owns.
type PipelineService struct {
	registry core.JobRegistry
	collab   Collaborators
	logger   *slog.Logger
	sem      *semaphore.Weighted
	wg       sync.WaitGroup
	now      func() time.Time
}

// NewPipelineService creates a pipeline executor. Registry and all three
// collaborators are required.
func NewPipelineService(opts PipelineServiceOptions) (*PipelineService, error) {
	if opts.Registry == nil {
		return nil, errors.New("JobRegistry is required")
	}
	if opts.Collaborators.Extractor == nil ||
		opts.Collaborators.Transcriber == nil ||
		opts.Collaborators.Refiner == nil {
		return nil, errors.New("all stage collaborators are required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var sem *semaphore.Weighted
	if opts.Config.MaxConcurrent > 0 {
		sem = semaphore.NewWeighted(int64(opts.Config.MaxConcurrent))
	}

	return &PipelineService{
		registry: opts.Registry,
		collab:   opts.Collaborators,
		logger:   logger,
		sem:      sem,
		now:      time.Now,
	}, nil
}

// Launch schedules the pipeline for one job and returns immediately; the
// submitting request never waits for pipeline completion. Cancellation of
// ctx must not reach the stages: the submitting request's context dies as
// soon as its response is written, while the pipeline keeps running until
// it finishes or Shutdown drains it.
func (s *PipelineService) Launch(ctx context.Context, jobID, sourcePath string) {
	ctx = context.WithoutCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		if s.sem != nil {
			if err := s.sem.Acquire(ctx, 1); err != nil {
				s.fail(ctx, jobID, apperrors.Wrap(err, apperrors.ErrCodeInternal, "pipeline admission"))
				return
			}
			defer s.sem.Release(1)
		}

		s.run(ctx, jobID, sourcePath)
	}()
}

// Shutdown waits for in-flight pipelines to finish or the context to expire.
func (s *PipelineService) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run executes the stage sequence for exactly one job. Stages are strictly
// sequential within a job; exactly one terminal transition occurs, and
// nothing runs after it.
func (s *PipelineService) run(ctx context.Context, jobID, sourcePath string) {
	audioPath := sourcePath + ".mp3"

	// Stage 1: extract audio (fatal).
	s.setStage(ctx, jobID, model.StageExtract)
	s.logger.InfoContext(ctx, "extracting audio", "job_id", jobID)
	if err := s.collab.Extractor.Extract(ctx, sourcePath, audioPath); err != nil {
		s.fail(ctx, jobID, apperrors.StageFailed(string(model.StageExtract), err))
		return
	}

	// Stage 2: transcribe (fatal). Success of this stage defines job success.
	s.setStage(ctx, jobID, model.StageTranscribe)
	s.logger.InfoContext(ctx, "transcribing audio", "job_id", jobID)
	segments, err := s.collab.Transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		s.fail(ctx, jobID, apperrors.StageFailed(string(model.StageTranscribe), err))
		return
	}

	// Stage 3: refine (best-effort). A failure here is recovered locally:
	// the job still completes with the original unrefined segments.
	s.setStage(ctx, jobID, model.StageRefine)
	refined := s.refine(ctx, jobID, segments)

	s.complete(ctx, jobID, segments, refined)
	s.logger.InfoContext(ctx, "job completed", "job_id", jobID, "segments", len(segments))
}

// refine joins the segment texts and asks the refiner for a corrected
// version. The result is advisory: it is recorded on the job but never
// written back into the segments.
func (s *PipelineService) refine(ctx context.Context, jobID string, segments []model.CaptionSegment) string {
	texts := make([]string, 0, len(segments))
	for _, seg := range segments {
		texts = append(texts, seg.Text)
	}

	refined, err := s.collab.Refiner.Refine(ctx, strings.Join(texts, segmentSeparator))
	if err != nil {
		s.logger.WarnContext(ctx, "refinement failed, keeping unrefined captions",
			"job_id", jobID, "error", err)
		return ""
	}
	return refined
}

// setStage records pipeline progress while the job is still PROCESSING.
func (s *PipelineService) setStage(ctx context.Context, jobID string, stage model.Stage) {
	if err := s.registry.Update(ctx, jobID, func(job *model.Job) {
		job.Stage = stage
	}); err != nil {
		s.logger.ErrorContext(ctx, "record stage transition", "job_id", jobID, "error", err)
	}
}

// complete applies the single successful terminal transition: segments and
// status become visible to readers atomically.
func (s *PipelineService) complete(ctx context.Context, jobID string, segments []model.CaptionSegment, refined string) {
	completedAt := s.now()
	if err := s.registry.Update(ctx, jobID, func(job *model.Job) {
		job.Segments = segments
		job.RefinedText = refined
		job.Status = model.JobStatusCompleted
		job.Stage = ""
		job.CompletedAt = &completedAt
	}); err != nil {
		s.logger.ErrorContext(ctx, "record job completion", "job_id", jobID, "error", err)
	}
}

// fail applies the single failing terminal transition. Stage failures are
// never surfaced to the submitter; they are only observable via status polls.
func (s *PipelineService) fail(ctx context.Context, jobID string, stageErr error) {
	s.logger.ErrorContext(ctx, "pipeline stage failed",
		"job_id", jobID,
		"stage", apperrors.GetStage(stageErr),
		"error", stageErr)

	failedAt := s.now()
	msg := stageErr.Error()
	if err := s.registry.Update(ctx, jobID, func(job *model.Job) {
		job.Status = model.JobStatusFailed
		job.Stage = ""
		job.Error = &msg
		job.CompletedAt = &failedAt
	}); err != nil {
		s.logger.ErrorContext(ctx, "record job failure", "job_id", jobID, "error", err)
	}
}
