package harness

import (
	"errors"

	"github.com/roelfdiedericks/lmconf/internal/lmstudio"
)

// ErrNoModels is returned by the renderers when no LLM model survives
// the active filters.
var ErrNoModels = errors.New("no LLM models matched the selected filters")

// OpenCodeProviderID is the tool-owned provider key in opencode.json.
const OpenCodeProviderID = "lmstudio"

// OpenCodeProvider is the generated provider entry for opencode.json.
type OpenCodeProvider struct {
	NPM     string                   `json:"npm"`
	Name    string                   `json:"name"`
	Options OpenCodeOptions          `json:"options"`
	Models  map[string]OpenCodeModel `json:"models"`
}

type OpenCodeOptions struct {
	BaseURL string `json:"baseURL"`
}

type OpenCodeModel struct {
	Name       string             `json:"name"`
	Limit      OpenCodeLimit      `json:"limit"`
	Modalities OpenCodeModalities `json:"modalities"`
}

type OpenCodeLimit struct {
	Context int `json:"context"`
	Output  int `json:"output"`
}

type OpenCodeModalities struct {
	Input  []string `json:"input"`
	Output []string `json:"output"`
}

// GenerateOpenCodeProvider renders the lmstudio provider block for
// opencode.json from the filtered model list.
func GenerateOpenCodeProvider(models []lmstudio.Model, baseURL string) (OpenCodeProvider, error) {
	entries := make(map[string]OpenCodeModel)
	for i := range models {
		m := &models[i]
		if !m.IsLLM() {
			continue
		}

		maxContext := m.MaxContextLength
		if maxContext <= 0 {
			maxContext = defaultContextLength
		}

		input := []string{"text"}
		if m.SupportsVision() {
			input = []string{"text", "image"}
		}

		entries[m.Key] = OpenCodeModel{
			Name:  m.Key,
			Limit: OpenCodeLimit{Context: maxContext, Output: maxContext},
			Modalities: OpenCodeModalities{
				Input:  input,
				Output: []string{"text"},
			},
		}
	}

	if len(entries) == 0 {
		return OpenCodeProvider{}, ErrNoModels
	}

	return OpenCodeProvider{
		NPM:     "@ai-sdk/openai-compatible",
		Name:    "LM Studio (local)",
		Options: OpenCodeOptions{BaseURL: lmstudio.NormalizeBaseURL(baseURL)},
		Models:  entries,
	}, nil
}
