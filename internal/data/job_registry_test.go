package data

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/opencaption/captiond/internal/domain/model"
	apperrors "github.com/opencaption/captiond/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJob(id string) *model.Job {
	return &model.Job{
		ID:         id,
		SourceName: id + ".mp4",
		Status:     model.JobStatusProcessing,
		Segments:   []model.CaptionSegment{},
		CreatedAt:  time.Now(),
	}
}

func TestJobRegistryCreate(t *testing.T) {
	ctx := context.Background()
	reg := NewJobRegistry()

	t.Run("inserts new record", func(t *testing.T) {
		require.NoError(t, reg.Create(ctx, newJob("j1")))

		got, err := reg.Get(ctx, "j1")
		require.NoError(t, err)
		assert.Equal(t, "j1", got.ID)
		assert.Equal(t, model.JobStatusProcessing, got.Status)
	})

	t.Run("duplicate id is a conflict", func(t *testing.T) {
		err := reg.Create(ctx, newJob("j1"))
		require.Error(t, err)
		assert.True(t, apperrors.IsConflict(err))
	})

	t.Run("missing id is a validation error", func(t *testing.T) {
		err := reg.Create(ctx, &model.Job{})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})
}

func TestJobRegistryGet(t *testing.T) {
	ctx := context.Background()
	reg := NewJobRegistry()

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := reg.Get(ctx, "missing")
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("snapshots do not alias the stored record", func(t *testing.T) {
		job := newJob("j2")
		job.Segments = []model.CaptionSegment{{Start: 0, End: 1, Text: "hi"}}
		require.NoError(t, reg.Create(ctx, job))

		first, err := reg.Get(ctx, "j2")
		require.NoError(t, err)
		first.Segments[0].Text = "mutated"
		first.Status = model.JobStatusFailed

		second, err := reg.Get(ctx, "j2")
		require.NoError(t, err)
		assert.Equal(t, "hi", second.Segments[0].Text)
		assert.Equal(t, model.JobStatusProcessing, second.Status)
	})
}

func TestJobRegistryUpdate(t *testing.T) {
	ctx := context.Background()
	reg := NewJobRegistry()
	require.NoError(t, reg.Create(ctx, newJob("j3")))

	t.Run("applies mutation", func(t *testing.T) {
		require.NoError(t, reg.Update(ctx, "j3", func(j *model.Job) {
			j.Stage = model.StageTranscribe
		}))

		got, err := reg.Get(ctx, "j3")
		require.NoError(t, err)
		assert.Equal(t, model.StageTranscribe, got.Stage)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		err := reg.Update(ctx, "missing", func(*model.Job) {})
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("terminal records are immutable", func(t *testing.T) {
		require.NoError(t, reg.Update(ctx, "j3", func(j *model.Job) {
			j.Status = model.JobStatusCompleted
			j.Stage = ""
		}))

		require.NoError(t, reg.Update(ctx, "j3", func(j *model.Job) {
			j.Status = model.JobStatusFailed
			j.Stage = model.StageExtract
		}))

		got, err := reg.Get(ctx, "j3")
		require.NoError(t, err)
		assert.Equal(t, model.JobStatusCompleted, got.Status)
		assert.Empty(t, got.Stage)
	})
}

func TestJobRegistryListAndStats(t *testing.T) {
	ctx := context.Background()
	reg := NewJobRegistry()

	base := time.Now()
	for i := range 5 {
		job := newJob(fmt.Sprintf("job-%d", i))
		job.CreatedAt = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, reg.Create(ctx, job))
	}
	require.NoError(t, reg.Update(ctx, "job-0", func(j *model.Job) {
		j.Status = model.JobStatusCompleted
	}))
	require.NoError(t, reg.Update(ctx, "job-1", func(j *model.Job) {
		j.Status = model.JobStatusFailed
	}))

	jobs, err := reg.List(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 5)
	assert.Equal(t, "job-4", jobs[0].ID, "list should be newest first")
	assert.Equal(t, "job-0", jobs[4].ID)

	stats, err := reg.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &model.JobStats{Processing: 3, Completed: 1, Failed: 1}, stats)
}

func TestJobRegistryConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	reg := NewJobRegistry()

	const jobCount = 32
	const updatesPerJob = 50

	for i := range jobCount {
		require.NoError(t, reg.Create(ctx, newJob(fmt.Sprintf("job-%d", i))))
	}

	var wg sync.WaitGroup
	for i := range jobCount {
		id := fmt.Sprintf("job-%d", i)

		// One writer per job, many readers across all jobs.
		wg.Add(2)
		go func() {
			defer wg.Done()
			for range updatesPerJob {
				_ = reg.Update(ctx, id, func(j *model.Job) {
					j.Segments = append(j.Segments, model.CaptionSegment{Text: "x"})
				})
			}
		}()
		go func() {
			defer wg.Done()
			for range updatesPerJob {
				job, err := reg.Get(ctx, id)
				if assert.NoError(t, err) {
					assert.Equal(t, id, job.ID)
				}
			}
		}()
	}
	wg.Wait()

	for i := range jobCount {
		job, err := reg.Get(ctx, fmt.Sprintf("job-%d", i))
		require.NoError(t, err)
		assert.Len(t, job.Segments, updatesPerJob)
	}
}
