// Package config holds the captiond application configuration.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config files
// for the available variables:
//   - http.go: HTTP server configuration
//   - media.go: upload staging and pipeline configuration
//   - transcriber.go: whisper transcriber configuration
//   - refiner.go: Gemini refiner configuration
package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
type AppConfig struct {
	// IsDev controls development mode behavior (plain-text logs, etc.).
	IsDev bool `env:"DEV" envDefault:"false"`

	// HTTP server configuration
	HTTP HTTPConfig

	// Media pipeline configuration
	Media MediaConfig `envPrefix:"MEDIA_"`

	// Whisper transcriber configuration
	Whisper WhisperConfig `envPrefix:"WHISPER_"`

	// Gemini refiner configuration
	Gemini GeminiConfig `envPrefix:"GEMINI_"`
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.HTTP.Sanitize()
	c.Media.Sanitize()
	c.Whisper.Sanitize()
	c.Gemini.Sanitize()
	c.detectDevMode()
}

// detectDevMode checks APP_ENV as a fallback for the DEV flag.
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		appEnv := strings.ToLower(os.Getenv("APP_ENV"))
		c.IsDev = appEnv == "development" || appEnv == "dev"
	}
}
