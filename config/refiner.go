package config

import (
	"strings"
	"time"
)

// GeminiConfig contains text refiner configuration. An empty APIKey is a
// valid degraded mode in which refinement returns its input unchanged.
type GeminiConfig struct {
	// APIKey authenticates against the Generative Language API.
	APIKey string `env:"API_KEY"`

	// Model is the generative model used for caption refinement.
	Model string `env:"MODEL" envDefault:"gemini-1.5-flash"`

	// BaseURL overrides the API endpoint, mainly for tests.
	BaseURL string `env:"BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`

	// Timeout bounds one refinement request.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

// Sanitize applies guardrails to refiner configuration values.
func (g *GeminiConfig) Sanitize() {
	if strings.TrimSpace(g.Model) == "" {
		g.Model = "gemini-1.5-flash"
	}
	g.BaseURL = strings.TrimRight(strings.TrimSpace(g.BaseURL), "/")
	if g.BaseURL == "" {
		g.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if g.Timeout <= 0 {
		g.Timeout = 30 * time.Second
	}
}
