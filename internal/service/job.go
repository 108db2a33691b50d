package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/opencaption/captiond/internal/core"
	"github.com/opencaption/captiond/internal/domain/model"
	apperrors "github.com/opencaption/captiond/internal/errors"
)

// PipelineLauncher is the minimal behavior JobService needs from the
// pipeline executor. Defined here so tests can substitute a double.
type PipelineLauncher interface {
	Launch(ctx context.Context, jobID, sourcePath string)
}

// JobServiceConfig holds submission configuration.
type JobServiceConfig struct {
	// UploadDir is the staging directory for raw uploads.
	UploadDir string
	// AllowedExtensions is the case-insensitive extension allow-list.
	AllowedExtensions []string
}

// JobServiceOptions groups dependencies for NewJobService.
type JobServiceOptions struct {
	Registry core.JobRegistry
	Pipeline PipelineLauncher
	Config   JobServiceConfig
	Logger   *slog.Logger // Optional
}

// JobService handles job submission and status reads. Submission stages
// the upload, registers the job at PROCESSING, and hands it to the
// pipeline executor without waiting for completion.
type JobService struct {
	registry core.JobRegistry
	pipeline PipelineLauncher
	cfg      JobServiceConfig
	logger   *slog.Logger
	newID    func() string
	now      func() time.Time
}

// NewJobService creates a job service. Registry and pipeline are required.
func NewJobService(opts JobServiceOptions) (*JobService, error) {
	if opts.Registry == nil {
		return nil, errors.New("JobRegistry is required")
	}
	if opts.Pipeline == nil {
		return nil, errors.New("PipelineLauncher is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &JobService{
		registry: opts.Registry,
		pipeline: opts.Pipeline,
		cfg:      opts.Config,
		logger:   logger,
		newID:    uuid.NewString,
		now:      time.Now,
	}, nil
}

// SubmitRequest carries one uploaded media file.
type SubmitRequest struct {
	// SourceName is the original filename as sent by the client.
	SourceName string
	// Content is the raw upload body.
	Content io.Reader
}

// Submit validates, stages, and registers one upload, then launches its
// pipeline. It returns the initial PROCESSING snapshot; the pipeline keeps
// running after Submit returns.
func (s *JobService) Submit(ctx context.Context, req SubmitRequest) (*model.Job, error) {
	name := filepath.Base(strings.TrimSpace(req.SourceName))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return nil, apperrors.Validation("filename is required")
	}
	if !s.extensionAllowed(name) {
		return nil, apperrors.Validationf("unsupported media format: %s", filepath.Ext(name))
	}
	if req.Content == nil {
		return nil, apperrors.Validation("upload body is required")
	}

	id := s.newID()
	sourcePath, err := s.stageUpload(id, name, req.Content)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "stage upload")
	}

	job := &model.Job{
		ID:         id,
		SourceName: name,
		Status:     model.JobStatusProcessing,
		Segments:   []model.CaptionSegment{},
		CreatedAt:  s.now(),
	}
	if err := s.registry.Create(ctx, job); err != nil {
		// A duplicate here means id generation is broken; surface it as
		// an internal defect rather than a client error.
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "register job")
	}

	s.logger.InfoContext(ctx, "job submitted", "job_id", id, "source", name)
	s.pipeline.Launch(ctx, id, sourcePath)

	return job.Clone(), nil
}

// Get returns the current snapshot for the job id.
func (s *JobService) Get(ctx context.Context, id string) (*model.Job, error) {
	return s.registry.Get(ctx, id)
}

// List returns snapshots of all jobs, newest first.
func (s *JobService) List(ctx context.Context) ([]*model.Job, error) {
	return s.registry.List(ctx)
}

// Stats returns per-status job counts.
func (s *JobService) Stats(ctx context.Context) (*model.JobStats, error) {
	return s.registry.Stats(ctx)
}

// extensionAllowed checks the filename against the configured allow-list,
// case-insensitively.
func (s *JobService) extensionAllowed(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return false
	}
	for _, allowed := range s.cfg.AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// stageUpload persists the raw upload under the staging directory as
// "<id>_<name>" and returns its path.
func (s *JobService) stageUpload(id, name string, content io.Reader) (string, error) {
	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	path := filepath.Join(s.cfg.UploadDir, id+"_"+name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create staging file: %w", err)
	}

	if _, err := io.Copy(f, content); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write staging file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close staging file: %w", err)
	}
	return path, nil
}
