package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/opencaption/captiond/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting captiond",
		"addr", cfg.HTTP.Addr,
		"upload_dir", cfg.Media.UploadDir,
		"whisper_model", cfg.Whisper.Model,
		"max_pipelines", cfg.Media.MaxConcurrentPipelines)

	services, err := bootstrap.NewServices(&bootstrap.ServiceDeps{
		Config: &cfg,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	return bootstrap.Run(&bootstrap.RunConfig{
		Config:   &cfg,
		Services: services,
		Logger:   logger,
	})
}
