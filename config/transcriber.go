package config

import "strings"

// WhisperConfig contains whisper transcriber configuration. Language and
// decoding parameters are tuning of the collaborator; the orchestrator
// never renegotiates them per job.
type WhisperConfig struct {
	// BinaryPath locates the whisper CLI binary.
	BinaryPath string `env:"BINARY_PATH" envDefault:"whisper"`

	// Model is the whisper model name to load (tiny, base, small, ...).
	Model string `env:"MODEL" envDefault:"base"`

	// Language is the fixed target language passed to the decoder.
	Language string `env:"LANGUAGE" envDefault:"ko"`

	// BeamSize is the decoder beam width.
	BeamSize int `env:"BEAM_SIZE" envDefault:"5"`

	// NoSpeechThreshold is the silence probability above which a segment
	// is dropped by the decoder.
	NoSpeechThreshold float64 `env:"NO_SPEECH_THRESHOLD" envDefault:"0.6"`
}

// Sanitize applies guardrails to whisper configuration values.
func (w *WhisperConfig) Sanitize() {
	if strings.TrimSpace(w.BinaryPath) == "" {
		w.BinaryPath = "whisper"
	}
	if strings.TrimSpace(w.Model) == "" {
		w.Model = "base"
	}
	if strings.TrimSpace(w.Language) == "" {
		w.Language = "ko"
	}
	if w.BeamSize < 1 {
		w.BeamSize = 5
	}
	if w.NoSpeechThreshold <= 0 || w.NoSpeechThreshold > 1 {
		w.NoSpeechThreshold = 0.6
	}
}
