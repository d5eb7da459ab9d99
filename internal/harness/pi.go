package harness

import (
	"sort"

	"github.com/roelfdiedericks/lmconf/internal/lmstudio"
)

// PiProviderID is the tool-owned provider key in Pi's models.json.
const PiProviderID = "lmstudio"

// PiProvider is the generated provider entry for Pi's models.json.
type PiProvider struct {
	BaseURL string    `json:"baseUrl"`
	API     string    `json:"api"`
	APIKey  string    `json:"apiKey"`
	Models  []PiModel `json:"models"`
}

type PiModel struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Input         []string `json:"input"`
	ContextWindow int      `json:"contextWindow"`
	MaxTokens     int      `json:"maxTokens"`
}

// GeneratePiProvider renders the lmstudio provider block for Pi,
// sorted by model id.
func GeneratePiProvider(models []lmstudio.Model, baseURL string) (PiProvider, error) {
	var entries []PiModel
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

		entries = append(entries, PiModel{
			ID:            m.Key,
			Name:          m.Key,
			Input:         input,
			ContextWindow: maxContext,
			MaxTokens:     maxContext,
		})
	}

	if len(entries) == 0 {
		return PiProvider{}, ErrNoModels
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })

	return PiProvider{
		BaseURL: lmstudio.NormalizeBaseURL(baseURL),
		API:     "openai-completions",
		APIKey:  "lm-studio",
		Models:  entries,
	}, nil
}
