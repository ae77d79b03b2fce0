package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/farahcakes/bakery-engine/pkg/logger"
)

const (
	defaultModel = "gemini-2.0-flash"
	endpointFmt  = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"

	// Served whenever the model is unconfigured, unreachable, or returns
	// nothing usable. Description generation never fails a request.
	fallbackDescription = "Handcrafted with heavenly ingredients and a touch of magic."
)

// Describer generates short cake descriptions with the Gemini API.
type Describer struct {
	apiKey string
	model  string
	client *http.Client
	logger *logger.Logger
}

func NewDescriber(apiKey, model string, logger *logger.Logger) *Describer {
	if model == "" {
		model = defaultModel
	}
	return &Describer{
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
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

// Describe returns a one-sentence description for the named cake. Any failure
// degrades to the fallback copy.
func (d *Describer) Describe(ctx context.Context, name, category string) string {
	if d.apiKey == "" {
		return fallbackDescription
	}

	prompt := fmt.Sprintf(
		"Write a short, delicious, one-sentence description for a bakery cake called %q", name)
	if category != "" {
		prompt += fmt.Sprintf(" in the %q category", category)
	}
	prompt += ". Respond with the sentence only."

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return fallbackDescription
	}

	url := fmt.Sprintf(endpointFmt, d.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fallbackDescription
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", d.apiKey)

	resp, err := d.client.Do(req)
	if err != nil {
		d.logger.Warn("gemini request failed", zap.Error(err))
		return fallbackDescription
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		d.logger.Warn("gemini returned non-OK status", zap.Int("status", resp.StatusCode))
		return fallbackDescription
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		d.logger.Warn("failed to decode gemini response", zap.Error(err))
		return fallbackDescription
	}

	for _, candidate := range out.Candidates {
		for _, p := range candidate.Content.Parts {
			if text := strings.TrimSpace(p.Text); text != "" {
				return text
			}
		}
	}
	return fallbackDescription
}
