// Package model defines the core data types used throughout the captiond pipeline.
package model

import (
	"time"
)

// JobStatus represents the current status of a captioning job.
type JobStatus string

// Stage identifies one step of the captioning pipeline.
type Stage string

const (
	// JobStatusProcessing indicates the pipeline is still running for the job.
	JobStatusProcessing JobStatus = "PROCESSING"
	// JobStatusCompleted indicates the mandatory pipeline stages finished successfully.
	JobStatusCompleted JobStatus = "COMPLETED"
	// JobStatusFailed indicates a fatal pipeline stage failed.
	JobStatusFailed JobStatus = "FAILED"

	// StageExtract is the audio extraction stage.
	StageExtract Stage = "extract"
	// StageTranscribe is the speech-to-text stage.
	StageTranscribe Stage = "transcribe"
	// StageRefine is the best-effort text refinement stage.
	StageRefine Stage = "refine"
)

// Valid returns true if the JobStatus is one of the known states.
func (s JobStatus) Valid() bool {
	return s == JobStatusProcessing || s == JobStatusCompleted || s == JobStatusFailed
}

// Terminal returns true once the status can no longer change.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// WordTiming carries sub-segment timing and confidence for one recognized token.
type WordTiming struct {
	Word        string  `json:"word"`
	Start       float64 `json:"start"`
	End         float64 `json:"end"`
	Probability float64 `json:"probability"`
}

// CaptionSegment is a time-bounded span of recognized text.
// Confidence is a proxy for recognition certainty; higher is better.
type CaptionSegment struct {
	Start      float64      `json:"start"`
	End        float64      `json:"end"`
	Text       string       `json:"text"`
	Confidence float64      `json:"confidence"`
	Words      []WordTiming `json:"words"`
}

// Job represents one submitted media file and its processing state.
// Once Status is terminal the record is immutable for the process lifetime.
type Job struct {
	ID          string           `json:"id"`
	SourceName  string           `json:"source_name"`
	Status      JobStatus        `json:"status"`
	Stage       Stage            `json:"stage,omitempty"`
	Segments    []CaptionSegment `json:"segments"`
	RefinedText string           `json:"refined_text,omitempty"`
	Error       *string          `json:"error,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	CompletedAt *time.Time       `json:"completed_at,omitempty"`
}

// Clone returns a deep copy of the job so registry snapshots never alias
// the stored record's slices.
func (j *Job) Clone() *Job {
	if j == nil {
		return nil
	}
	cp := *j
	if j.Segments != nil {
		cp.Segments = make([]CaptionSegment, len(j.Segments))
		copy(cp.Segments, j.Segments)
		for i := range cp.Segments {
			if ws := j.Segments[i].Words; ws != nil {
				cp.Segments[i].Words = make([]WordTiming, len(ws))
				copy(cp.Segments[i].Words, ws)
			}
		}
	}
	if j.Error != nil {
		errCopy := *j.Error
		cp.Error = &errCopy
	}
	if j.CompletedAt != nil {
		at := *j.CompletedAt
		cp.CompletedAt = &at
	}
	return &cp
}

// JobStats counts jobs per status.
type JobStats struct {
	Processing int `json:"processing"`
	Completed  int `json:"completed"`
	Failed     int `json:"failed"`
}
