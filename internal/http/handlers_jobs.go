// Package httpx provides the HTTP handlers and router for the captiond API.
package httpx

import (
	"errors"
	"net/http"

	"github.com/opencaption/captiond/internal/domain/model"
	apperrors "github.com/opencaption/captiond/internal/errors"
	"github.com/opencaption/captiond/internal/export"
	"github.com/opencaption/captiond/internal/service"
)

// uploadField is the multipart form field carrying the media file.
const uploadField = "file"

// JobHandlers provides HTTP handlers for job submission and status reads.
type JobHandlers struct {
	Svc            *service.JobService
	MaxUploadBytes int64
}

// SubmitJob accepts a multipart media upload, registers the job, and
// returns the initial PROCESSING snapshot without waiting for the pipeline.
func (h *JobHandlers) SubmitJob(w http.ResponseWriter, r *http.Request) {
	if h.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	}

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			WriteError(w, ErrorParams{
				Code:    http.StatusRequestEntityTooLarge,
				ErrCode: "upload_too_large",
				Err:     err,
			})
			return
		}
		WriteAppError(w, apperrors.Wrap(err, apperrors.ErrCodeValidation, "multipart file field is required"))
		return
	}
	defer func() { _ = file.Close() }()

	job, err := h.Svc.Submit(r.Context(), service.SubmitRequest{
		SourceName: header.Filename,
		Content:    file,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusAccepted, job)
}

// GetJob returns the current snapshot for one job id.
func (h *JobHandlers) GetJob(w http.ResponseWriter, r *http.Request) {
	job, err := h.Svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, job)
}

// ListJobs returns snapshots of all jobs, newest first.
func (h *JobHandlers) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.Svc.List(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, jobs)
}

// JobStats returns per-status job counts.
func (h *JobHandlers) JobStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Svc.Stats(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}

// ExportCaptions renders a completed job's segments as SRT or WebVTT.
func (h *JobHandlers) ExportCaptions(w http.ResponseWriter, r *http.Request) {
	job, err := h.Svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if job.Status != model.JobStatusCompleted {
		WriteAppError(w, apperrors.Conflictf("job %s is %s, captions are only available once completed",
			job.ID, job.Status))
		return
	}

	format := export.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = export.FormatSRT
	}
	if !format.Valid() {
		WriteAppError(w, apperrors.Validationf("unsupported caption format: %s", format))
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(export.Render(format, job.Segments))); err != nil {
		// Nothing more to do if the client connection is gone.
		return
	}
}
