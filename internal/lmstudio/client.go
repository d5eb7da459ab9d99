// Package lmstudio talks to a local LM Studio instance and filters the
// model list it reports.
package lmstudio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	. "github.com/roelfdiedericks/lmconf/internal/logging"
)

const defaultModelsEndpoint = "http://localhost:1234/api/v1/models"

// Client fetches model metadata from LM Studio's native REST API.
type Client struct {
	// Endpoint is the full URL of the models listing.
	Endpoint string

	httpClient *http.Client
}

// New builds a Client from an OpenAI-style base URL (what clients will
// connect to, e.g. http://localhost:1234/v1). The models endpoint lives
// on the same host under /api/v1/models.
func New(baseURL string) *Client {
	return &Client{
		Endpoint:   modelsEndpoint(baseURL),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// modelsEndpoint derives the native API models URL from the OpenAI base URL.
func modelsEndpoint(baseURL string) string {
	base := strings.TrimRight(baseURL, "/")
	base = strings.TrimRight(strings.TrimSuffix(base, "/v1"), "/")

	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return defaultModelsEndpoint
	}
	return u.Scheme + "://" + u.Host + "/api/v1/models"
}

// NormalizeBaseURL ensures a base URL ends with /v1 for
// OpenAI-compatible endpoints.
func NormalizeBaseURL(rawURL string) string {
	base := strings.TrimRight(rawURL, "/")
	if strings.HasSuffix(base, "/v1") {
		return base
	}
	return base + "/v1"
}

// modelsEnvelope is the wrapper object LM Studio returns.
type modelsEnvelope struct {
	Models []json.RawMessage `json:"models"`
}

// FetchModels retrieves the model list. Individual entries that don't
// decode or carry no model key are skipped with a warning; a response
// that isn't a {"models": [...]} object is an error.
func (c *Client) FetchModels(ctx context.Context) ([]Model, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", c.Endpoint, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", c.Endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: HTTP %d", c.Endpoint, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", c.Endpoint, err)
	}

	var envelope modelsEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("parsing model list from %s: %w", c.Endpoint, err)
	}
	if envelope.Models == nil {
		return nil, fmt.Errorf("unexpected model list response from %s: expected 'models' array", c.Endpoint)
	}

	models := make([]Model, 0, len(envelope.Models))
	for i, raw := range envelope.Models {
		var m Model
		if err := json.Unmarshal(raw, &m); err != nil {
			L_warn("skipping malformed model entry", "index", i, "error", err)
			continue
		}
		if m.Key == "" {
			L_warn("skipping model entry without a key", "index", i)
			continue
		}
		models = append(models, m)
	}

	L_debug("fetched models", "endpoint", c.Endpoint, "count", len(models))
	return models, nil
}
