package harness

import "github.com/roelfdiedericks/lmconf/internal/lmstudio"

// CopilotModel is one entry under github.copilot.chat.customOAIModels
// in VS Code settings.json. Fields are declared alphabetically so the
// serialized form is stable.
type CopilotModel struct {
	MaxInputTokens  int    `json:"maxInputTokens"`
	MaxOutputTokens int    `json:"maxOutputTokens"`
	Name            string `json:"name"`
	RequiresAPIKey  bool   `json:"requiresAPIKey"`
	Thinking        bool   `json:"thinking"`
	ToolCalling     bool   `json:"toolCalling"`
	URL             string `json:"url"`
	Vision          bool   `json:"vision"`
}

// CopilotConfig maps model id to its Copilot entry. encoding/json
// serializes map keys sorted, which keeps output order deterministic.
type CopilotConfig map[string]CopilotModel

const defaultContextLength = 8192

// GenerateCopilotConfig renders the customOAIModels section for the
// filtered model list. Only LLM models are included.
func GenerateCopilotConfig(models []lmstudio.Model, openaiURL string) (CopilotConfig, error) {
	config := make(CopilotConfig)
	for i := range models {
		m := &models[i]
		if !m.IsLLM() {
			continue
		}

		maxContext := m.MaxContextLength
		if maxContext <= 0 {
			maxContext = defaultContextLength
		}

		config[m.Key] = CopilotModel{
			MaxInputTokens:  maxContext,
			MaxOutputTokens: maxContext,
			Name:            m.Key,
			RequiresAPIKey:  false,
			Thinking:        true, // default on; adjust per model by hand if needed
			ToolCalling:     m.SupportsToolCalling(),
			URL:             openaiURL,
			Vision:          m.SupportsVision(),
		}
	}

	if len(config) == 0 {
		return nil, ErrNoModels
	}
	return config, nil
}
