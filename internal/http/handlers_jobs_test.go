package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/opencaption/captiond/internal/data"
	"github.com/opencaption/captiond/internal/domain/model"
	"github.com/opencaption/captiond/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noopLauncher satisfies service.PipelineLauncher; handler tests drive the
// registry directly instead of running a pipeline.
type noopLauncher struct {
	mu     sync.Mutex
	jobIDs []string
}

func (l *noopLauncher) Launch(_ context.Context, jobID, _ string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.jobIDs = append(l.jobIDs, jobID)
}

type handlerFixture struct {
	registry *data.JobRegistry
	launcher *noopLauncher
	server   *httptest.Server
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	registry := data.NewJobRegistry()
	launcher := &noopLauncher{}
	jobs, err := service.NewJobService(service.JobServiceOptions{
		Registry: registry,
		Pipeline: launcher,
		Config: service.JobServiceConfig{
			UploadDir:         t.TempDir(),
			AllowedExtensions: []string{".mp4", ".mkv", ".avi", ".mov"},
		},
	})
	require.NoError(t, err)

	server := httptest.NewServer(NewRouter(RouterServices{Jobs: jobs}))
	t.Cleanup(server.Close)
	return &handlerFixture{registry: registry, launcher: launcher, server: server}
}

func multipartUpload(t *testing.T, url, filename string, content []byte) *http.Response {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(uploadField, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(url+"/jobs", mw.FormDataContentType(), &body)
	require.NoError(t, err)
	return resp
}

func decodeJob(t *testing.T, r io.Reader) model.Job {
	t.Helper()
	var job model.Job
	require.NoError(t, json.NewDecoder(r).Decode(&job))
	return job
}

func TestSubmitJob(t *testing.T) {
	t.Run("accepted upload returns processing snapshot", func(t *testing.T) {
		f := newHandlerFixture(t)

		resp := multipartUpload(t, f.server.URL, "clip.mp4", []byte("media"))
		defer func() { _ = resp.Body.Close() }()

		require.Equal(t, http.StatusAccepted, resp.StatusCode)
		job := decodeJob(t, resp.Body)
		assert.NotEmpty(t, job.ID)
		assert.Equal(t, "clip.mp4", job.SourceName)
		assert.Equal(t, model.JobStatusProcessing, job.Status)
		assert.Empty(t, job.Segments)
		assert.Equal(t, []string{job.ID}, f.launcher.jobIDs)
	})

	t.Run("unsupported extension is rejected without creating a job", func(t *testing.T) {
		f := newHandlerFixture(t)

		resp := multipartUpload(t, f.server.URL, "clip.txt", []byte("not media"))
		defer func() { _ = resp.Body.Close() }()

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var errBody map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
		assert.Equal(t, "validation", errBody["error"])
		assert.Empty(t, f.launcher.jobIDs)

		jobs, err := f.registry.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, jobs)
	})

	t.Run("missing file field is rejected", func(t *testing.T) {
		f := newHandlerFixture(t)

		resp, err := http.Post(f.server.URL+"/jobs", "multipart/form-data; boundary=x", bytes.NewReader(nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

// Stage collaborators for end-to-end tests through the real pipeline
// executor.
type stubExtractor struct{}

func (stubExtractor) Extract(_ context.Context, _, _ string) error { return nil }

type stubTranscriber struct {
	segments []model.CaptionSegment
}

func (s stubTranscriber) Transcribe(_ context.Context, _ string) ([]model.CaptionSegment, error) {
	return s.segments, nil
}

type stubRefiner struct{}

func (stubRefiner) Refine(_ context.Context, text string) (string, error) { return text, nil }

func TestSubmitJobRunsPipelineToCompletion(t *testing.T) {
	registry := data.NewJobRegistry()
	segments := []model.CaptionSegment{
		{Start: 0, End: 1.5, Text: "hello", Confidence: -0.3, Words: []model.WordTiming{}},
	}

	pipeline, err := service.NewPipelineService(service.PipelineServiceOptions{
		Registry: registry,
		Collaborators: service.Collaborators{
			Extractor:   stubExtractor{},
			Transcriber: stubTranscriber{segments: segments},
			Refiner:     stubRefiner{},
		},
		Config: service.PipelineConfig{MaxConcurrent: 4},
	})
	require.NoError(t, err)

	jobs, err := service.NewJobService(service.JobServiceOptions{
		Registry: registry,
		Pipeline: pipeline,
		Config: service.JobServiceConfig{
			UploadDir:         t.TempDir(),
			AllowedExtensions: []string{".mp4"},
		},
	})
	require.NoError(t, err)

	server := httptest.NewServer(NewRouter(RouterServices{Jobs: jobs}))
	t.Cleanup(server.Close)

	resp := multipartUpload(t, server.URL, "clip.mp4", []byte("media"))
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	submitted := decodeJob(t, resp.Body)
	_ = resp.Body.Close()

	// The pipeline keeps running after the submit response is written and
	// its request context is gone; polling must converge on COMPLETED.
	var polled model.Job
	require.Eventually(t, func() bool {
		statusResp, err := http.Get(server.URL + "/jobs/" + submitted.ID)
		if err != nil {
			return false
		}
		defer func() { _ = statusResp.Body.Close() }()
		if json.NewDecoder(statusResp.Body).Decode(&polled) != nil {
			return false
		}
		return polled.Status == model.JobStatusCompleted
	}, 5*time.Second, 5*time.Millisecond)

	assert.Equal(t, segments, polled.Segments)
	assert.Nil(t, polled.Error)
}

func TestGetJob(t *testing.T) {
	t.Run("unknown id returns not found", func(t *testing.T) {
		f := newHandlerFixture(t)

		resp, err := http.Get(f.server.URL + "/jobs/never-submitted")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("poll after completion returns segments", func(t *testing.T) {
		f := newHandlerFixture(t)

		resp := multipartUpload(t, f.server.URL, "clip.mp4", []byte("media"))
		submitted := decodeJob(t, resp.Body)
		_ = resp.Body.Close()

		require.NoError(t, f.registry.Update(context.Background(), submitted.ID, func(j *model.Job) {
			j.Status = model.JobStatusCompleted
			j.Segments = []model.CaptionSegment{
				{Start: 0.0, End: 2.0, Text: "hello", Confidence: -0.3, Words: []model.WordTiming{}},
			}
		}))

		statusResp, err := http.Get(f.server.URL + "/jobs/" + submitted.ID)
		require.NoError(t, err)
		defer func() { _ = statusResp.Body.Close() }()

		require.Equal(t, http.StatusOK, statusResp.StatusCode)
		job := decodeJob(t, statusResp.Body)
		assert.Equal(t, model.JobStatusCompleted, job.Status)
		require.Len(t, job.Segments, 1)
		assert.Equal(t, "hello", job.Segments[0].Text)
		assert.InDelta(t, 2.0, job.Segments[0].End, 1e-9)
	})
}

func TestListJobsAndStats(t *testing.T) {
	f := newHandlerFixture(t)

	for _, name := range []string{"a.mp4", "b.mov"} {
		resp := multipartUpload(t, f.server.URL, name, []byte("media"))
		_ = resp.Body.Close()
	}

	listResp, err := http.Get(f.server.URL + "/jobs")
	require.NoError(t, err)
	defer func() { _ = listResp.Body.Close() }()
	require.Equal(t, http.StatusOK, listResp.StatusCode)

	var jobs []model.Job
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&jobs))
	assert.Len(t, jobs, 2)

	statsResp, err := http.Get(f.server.URL + "/jobs/stats")
	require.NoError(t, err)
	defer func() { _ = statsResp.Body.Close() }()
	require.Equal(t, http.StatusOK, statsResp.StatusCode)

	var stats model.JobStats
	require.NoError(t, json.NewDecoder(statsResp.Body).Decode(&stats))
	assert.Equal(t, model.JobStats{Processing: 2}, stats)
}

func TestExportCaptions(t *testing.T) {
	newCompletedJob := func(t *testing.T, f *handlerFixture) string {
		t.Helper()
		resp := multipartUpload(t, f.server.URL, "clip.mp4", []byte("media"))
		job := decodeJob(t, resp.Body)
		_ = resp.Body.Close()

		require.NoError(t, f.registry.Update(context.Background(), job.ID, func(j *model.Job) {
			j.Status = model.JobStatusCompleted
			j.Segments = []model.CaptionSegment{
				{Start: 0, End: 2, Text: "hello"},
				{Start: 2, End: 4.5, Text: "world"},
			}
			now := time.Now()
			j.CompletedAt = &now
		}))
		return job.ID
	}

	t.Run("srt by default", func(t *testing.T) {
		f := newHandlerFixture(t)
		id := newCompletedJob(t, f)

		resp, err := http.Get(f.server.URL + "/jobs/" + id + "/captions")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "1\n00:00:00,000 --> 00:00:02,000\nhello")
	})

	t.Run("vtt on request", func(t *testing.T) {
		f := newHandlerFixture(t)
		id := newCompletedJob(t, f)

		resp, err := http.Get(f.server.URL + "/jobs/" + id + "/captions?format=vtt")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(body, []byte("WEBVTT")))
	})

	t.Run("unknown format is rejected", func(t *testing.T) {
		f := newHandlerFixture(t)
		id := newCompletedJob(t, f)

		resp, err := http.Get(f.server.URL + "/jobs/" + id + "/captions?format=ass")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("processing job is a conflict", func(t *testing.T) {
		f := newHandlerFixture(t)
		resp := multipartUpload(t, f.server.URL, "clip.mp4", []byte("media"))
		job := decodeJob(t, resp.Body)
		_ = resp.Body.Close()

		exportResp, err := http.Get(f.server.URL + "/jobs/" + job.ID + "/captions")
		require.NoError(t, err)
		defer func() { _ = exportResp.Body.Close() }()
		assert.Equal(t, http.StatusConflict, exportResp.StatusCode)
	})
}

func TestHealthz(t *testing.T) {
	f := newHandlerFixture(t)

	resp, err := http.Get(f.server.URL + "/healthz")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}
