package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/opencaption/captiond/config"
	"github.com/opencaption/captiond/internal/adapters/ffmpeg"
	"github.com/opencaption/captiond/internal/adapters/gemini"
	"github.com/opencaption/captiond/internal/adapters/whisper"
	"github.com/opencaption/captiond/internal/data"
	"github.com/opencaption/captiond/internal/service"
)

// ServiceContainer holds the constructed application services.
type ServiceContainer struct {
	Jobs     *service.JobService
	Pipeline *service.PipelineService
}

// ServiceDeps bundles what NewServices needs to wire the application.
type ServiceDeps struct {
	Config *config.AppConfig
	Logger *slog.Logger
}

// NewServices constructs the registry, the collaborator adapters, and the
// services on top of them. Collaborators are injected into the pipeline
// executor here and nowhere else, so tests can rebuild the same graph with
// doubles.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	registry := data.NewJobRegistry()

	pipeline, err := service.NewPipelineService(service.PipelineServiceOptions{
		Registry: registry,
		Collaborators: service.Collaborators{
			Extractor: ffmpeg.NewExtractor(ffmpeg.ExtractorOptions{
				BinaryPath: cfg.Media.FFmpegPath,
				Logger:     logger,
			}),
			Transcriber: whisper.NewTranscriber(whisper.TranscriberOptions{
				Config: cfg.Whisper,
				Logger: logger,
			}),
			Refiner: gemini.NewRefiner(gemini.RefinerOptions{
				Config: cfg.Gemini,
				Logger: logger,
			}),
		},
		Config: service.PipelineConfig{MaxConcurrent: cfg.Media.MaxConcurrentPipelines},
		Logger: logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create pipeline service: %w", err)
	}

	jobs, err := service.NewJobService(service.JobServiceOptions{
		Registry: registry,
		Pipeline: pipeline,
		Config: service.JobServiceConfig{
			UploadDir:         cfg.Media.UploadDir,
			AllowedExtensions: cfg.Media.AllowedExtensions,
		},
		Logger: logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create job service: %w", err)
	}

	return ServiceContainer{Jobs: jobs, Pipeline: pipeline}, nil
}
