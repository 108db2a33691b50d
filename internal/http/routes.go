package httpx

import (
	"log/slog"
	"net/http"

	"github.com/opencaption/captiond/internal/service"
)

// RouterServices holds the services needed by the HTTP router.
type RouterServices struct {
	Jobs           *service.JobService
	MaxUploadBytes int64
	Logger         *slog.Logger // Optional
}

// NewRouter creates and configures the API router with logging and panic
// recovery middleware applied.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	jobHandlers := &JobHandlers{
		Svc:            services.Jobs,
		MaxUploadBytes: services.MaxUploadBytes,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /jobs", jobHandlers.SubmitJob)
	mux.HandleFunc("GET /jobs", jobHandlers.ListJobs)
	mux.HandleFunc("GET /jobs/stats", jobHandlers.JobStats)
	mux.HandleFunc("GET /jobs/{id}", jobHandlers.GetJob)
	mux.HandleFunc("GET /jobs/{id}/captions", jobHandlers.ExportCaptions)
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return Logging(logger)(Recover(logger)(mux))
}
