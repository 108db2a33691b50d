package config

import "strings"

// MediaConfig contains upload staging and pipeline execution configuration.
type MediaConfig struct {
	// UploadDir is where raw uploads are staged. One raw file and one
	// derived audio artifact accumulate per job for the process lifetime.
	UploadDir string `env:"UPLOAD_DIR" envDefault:"uploads"`

	// FFmpegPath locates the ffmpeg binary used for audio extraction.
	FFmpegPath string `env:"FFMPEG_PATH" envDefault:"ffmpeg"`

	// AllowedExtensions is the comma-separated allow-list of upload
	// extensions (video container formats), matched case-insensitively.
	AllowedExtensions []string `env:"ALLOWED_EXTENSIONS" envSeparator:"," envDefault:".mp4,.mkv,.avi,.mov"`

	// MaxConcurrentPipelines caps how many job pipelines run at once.
	// Zero or negative means unbounded.
	MaxConcurrentPipelines int `env:"MAX_CONCURRENT_PIPELINES" envDefault:"4"`
}

// Sanitize applies guardrails to media configuration values.
func (m *MediaConfig) Sanitize() {
	if strings.TrimSpace(m.UploadDir) == "" {
		m.UploadDir = "uploads"
	}
	if strings.TrimSpace(m.FFmpegPath) == "" {
		m.FFmpegPath = "ffmpeg"
	}

	exts := make([]string, 0, len(m.AllowedExtensions))
	for _, ext := range m.AllowedExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	if len(exts) == 0 {
		exts = []string{".mp4", ".mkv", ".avi", ".mov"}
	}
	m.AllowedExtensions = exts
}
