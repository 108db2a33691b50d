// Package gemini provides the Refiner adapter backed by the Generative
// Language API.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/opencaption/captiond/config"
)

// refinePrompt asks the model to correct transcription mistakes without
// changing the meaning of the text.
const refinePrompt = "The following is raw caption text extracted from a video. " +
	"Fix typos and make the sentences read naturally without changing their meaning.\n\n" +
	"Original: %s\n\nCorrected:"

// Refiner polishes caption text through the Gemini generateContent API.
// Without an API key it runs in degraded mode and returns its input
// unchanged, which is a valid outcome rather than a failure.
type Refiner struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// RefinerOptions groups dependencies for NewRefiner.
type RefinerOptions struct {
	Config config.GeminiConfig
	Client *http.Client // Optional; defaults to a timeout-bounded client.
	Logger *slog.Logger // Optional.
}

// NewRefiner creates a Gemini-backed refiner.
func NewRefiner(opts RefinerOptions) *Refiner {
	timeout := opts.Config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	hc := opts.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Refiner{
		apiKey:  strings.TrimSpace(opts.Config.APIKey),
		model:   opts.Config.Model,
		baseURL: strings.TrimRight(opts.Config.BaseURL, "/"),
		client:  hc,
		logger:  logger,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Refine sends the concatenated caption text for correction and returns the
// corrected version.
func (r *Refiner) Refine(ctx context.Context, text string) (string, error) {
	if r.apiKey == "" {
		r.logger.DebugContext(ctx, "gemini api key not set, skipping refinement")
		return text, nil
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: fmt.Sprintf(refinePrompt, text)}}}},
	})
	if err != nil {
		return "", fmt.Errorf("encode gemini request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", r.baseURL, r.model, r.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call gemini: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	return strings.TrimSpace(decoded.Candidates[0].Content.Parts[0].Text), nil
}
