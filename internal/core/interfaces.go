// Package core defines the ports of the captiond orchestration layer.
// Services depend on these interfaces; the data layer and collaborator
// adapters provide the implementations.
package core

import (
	"context"

	"github.com/opencaption/captiond/internal/domain/model"
)

// JobRegistry is the single source of truth for job records. It must be
// safe for many concurrent readers and one writer per job id, and reads
// must never observe a partially applied mutation.
type JobRegistry interface {
	// Create inserts a new record. Returns a conflict error if the id
	// already exists.
	Create(ctx context.Context, job *model.Job) error

	// Get returns a consistent snapshot of the record, or a not-found
	// error if the id is unknown.
	Get(ctx context.Context, id string) (*model.Job, error)

	// Update applies mutate to the record under its lock. Returns a
	// not-found error if the id is unknown. The mutation is atomic with
	// respect to concurrent Get calls.
	Update(ctx context.Context, id string, mutate func(*model.Job)) error

	// List returns snapshots of all records, newest first.
	List(ctx context.Context) ([]*model.Job, error)

	// Stats returns per-status job counts.
	Stats(ctx context.Context) (*model.JobStats, error)
}

// AudioExtractor converts source media into an audio artifact at destPath,
// overwriting any existing file. Failures are reported as errors, never a
// crash of the caller.
type AudioExtractor interface {
	Extract(ctx context.Context, sourcePath, destPath string) error
}

// Transcriber converts an audio artifact into ordered caption segments.
// Language and decoding parameters are configuration of the collaborator,
// not of the orchestrator.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) ([]model.CaptionSegment, error)
}

// Refiner polishes transcribed text. Its output is advisory; absence of
// credentials is a valid degraded mode in which the input is returned
// unchanged rather than failing.
type Refiner interface {
	Refine(ctx context.Context, text string) (string, error)
}
