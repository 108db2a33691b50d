// Package data provides the in-memory job registry backing the captiond
// orchestration core. Jobs live for the process lifetime; persistence
// across restarts is intentionally out of scope.
package data

import (
	"context"
	"hash/fnv"
	"sort"
	"sync"

	"github.com/opencaption/captiond/internal/domain/model"
	apperrors "github.com/opencaption/captiond/internal/errors"
)

// shardCount fixes the number of registry shards. Unrelated jobs hash to
// different shards so one job's writer never contends with another's
// readers on the same lock.
const shardCount = 16

type registryShard struct {
	mu   sync.RWMutex
	jobs map[string]*model.Job
}

// JobRegistry is a sharded in-memory implementation of core.JobRegistry.
// Stored records are owned exclusively by the registry: Get and List
// return deep copies, and mutations only happen through Update while the
// record's shard lock is held, so readers never observe a torn record.
type JobRegistry struct {
	shards [shardCount]*registryShard
}

// NewJobRegistry creates an empty registry.
func NewJobRegistry() *JobRegistry {
	r := &JobRegistry{}
	for i := range r.shards {
		r.shards[i] = &registryShard{jobs: make(map[string]*model.Job)}
	}
	return r
}

func (r *JobRegistry) shard(id string) *registryShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return r.shards[h.Sum32()%shardCount]
}

// Create inserts a new job record. A duplicate id indicates an
// id-generation defect and is reported as a conflict.
func (r *JobRegistry) Create(_ context.Context, job *model.Job) error {
	if job == nil || job.ID == "" {
		return apperrors.Validation("job id is required")
	}

	s := r.shard(job.ID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[job.ID]; exists {
		return apperrors.Conflictf("job %s already exists", job.ID)
	}
	s.jobs[job.ID] = job.Clone()
	return nil
}

// Get returns a snapshot of the job record.
func (r *JobRegistry) Get(_ context.Context, id string) (*model.Job, error) {
	s := r.shard(id)
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, apperrors.NotFoundf("job %s not found", id)
	}
	return job.Clone(), nil
}

// Update applies mutate to the stored record under the shard lock.
// Terminal records are immutable: mutations against them are ignored so
// finished jobs cannot be re-processed.
func (r *JobRegistry) Update(_ context.Context, id string, mutate func(*model.Job)) error {
	s := r.shard(id)
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return apperrors.NotFoundf("job %s not found", id)
	}
	if job.Status.Terminal() {
		return nil
	}
	mutate(job)
	return nil
}

// List returns snapshots of all jobs ordered by creation time, newest first.
func (r *JobRegistry) List(_ context.Context) ([]*model.Job, error) {
	var jobs []*model.Job
	for _, s := range r.shards {
		s.mu.RLock()
		for _, job := range s.jobs {
			jobs = append(jobs, job.Clone())
		}
		s.mu.RUnlock()
	}

	sort.Slice(jobs, func(i, j int) bool {
		if jobs[i].CreatedAt.Equal(jobs[j].CreatedAt) {
			return jobs[i].ID < jobs[j].ID
		}
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})
	return jobs, nil
}

// Stats returns per-status counts across all shards.
func (r *JobRegistry) Stats(_ context.Context) (*model.JobStats, error) {
	stats := &model.JobStats{}
	for _, s := range r.shards {
		s.mu.RLock()
		for _, job := range s.jobs {
			switch job.Status {
			case model.JobStatusProcessing:
				stats.Processing++
			case model.JobStatusCompleted:
				stats.Completed++
			case model.JobStatusFailed:
				stats.Failed++
			}
		}
		s.mu.RUnlock()
	}
	return stats, nil
}
